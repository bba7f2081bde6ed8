package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jackzampolin/scrapbook/internal/scene"
)

var (
	accent = lipgloss.Color("#FF8FAB")
	muted  = lipgloss.Color("#8A7F8D")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	statusStyle = lipgloss.NewStyle().
			Foreground(muted)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5484D"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5D4E37")).
			Background(lipgloss.Color("#FFC8DD")).
			Padding(0, 1)

	typingStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	chatBoxFocused = chatBoxStyle.
			BorderForeground(accent)

	noteColors = map[string]lipgloss.Color{
		"yellow": lipgloss.Color("#FFF3A3"),
		"green":  lipgloss.Color("#C8F7C5"),
		"blue":   lipgloss.Color("#C5E3F7"),
		"pink":   lipgloss.Color("#FFC8DD"),
	}
)

// pageStyle is the card a page face is drawn on.
func pageStyle(pose scene.PagePose, width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(pose.TextColor)).
		Background(lipgloss.Color(pose.PageColor)).
		Foreground(lipgloss.Color(pose.TextColor)).
		Width(width-2).
		Height(height-2).
		Padding(0, 1)
}

// blankStyle stands in for the empty half of an open spread.
func blankStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder()).
		Width(width - 2).
		Height(height - 2)
}

// glyphs stand in for the decorations the browser draws as meshes.
var glyphs = map[scene.Kind]string{
	scene.KindSticker:        "✿",
	scene.KindWashi:          "▤",
	scene.KindPhoto:          "▣",
	scene.KindStamp:          "✉",
	scene.KindPostmark:       "◎",
	scene.KindVintagePhone:   "☎",
	scene.KindPostcardBorder: "",
}
