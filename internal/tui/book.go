package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jackzampolin/scrapbook/internal/flipbook"
	"github.com/jackzampolin/scrapbook/internal/pages"
	"github.com/jackzampolin/scrapbook/internal/scene"
)

// renderSpread draws the open book: the back of the last turned page on the
// left and the front of the current page on the right.
func renderSpread(snap flipbook.Snapshot, width, height int) string {
	pageW := max(width/2, 16)

	left := blankStyle(pageW, height).Render("")
	if snap.Current > 0 && snap.Pages[snap.Current-1].Flipped {
		prev := snap.Pages[snap.Current-1]
		pose := scene.Pose(prev)
		left = renderFace(pose, pose.Back, nil, pageW, height)
	}

	right := blankStyle(pageW, height).Render("")
	if cur := snap.Pages[snap.Current]; !cur.Flipped {
		pose := scene.Pose(cur)
		right = renderFace(pose, pose.Front, frontExtras(cur.Spec), pageW, height)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderFace draws one side of a page with its extras and decoration glyphs.
func renderFace(pose scene.PagePose, face scene.Face, extras []string, width, height int) string {
	var b strings.Builder
	if face.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(face.Title))
		b.WriteString("\n")
	}
	if face.Subtitle != "" {
		b.WriteString(face.Subtitle)
		b.WriteString("\n")
	}
	if face.Message != "" {
		b.WriteString("\n")
		b.WriteString(face.Message)
		b.WriteString("\n")
	}
	for _, line := range extras {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if g := decorationLine(face.Decorations); g != "" {
		b.WriteString("\n\n")
		b.WriteString(g)
	}
	return pageStyle(pose, width, height).Render(b.String())
}

// frontExtras lists what the descriptor adds to a front face beyond its
// title block: sticky notes, the photo caption and the postcard address.
func frontExtras(d pages.Descriptor) []string {
	var out []string
	if d.Header != "" && d.Front != nil {
		out = append(out, d.Header)
	}
	for _, n := range d.Notes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#5D4E37")).Padding(0, 1)
		if c, ok := noteColors[n.Color]; ok {
			style = style.Background(c)
		}
		out = append(out, style.Render(n.Text))
	}
	if d.Image != nil && d.Image.Caption != "" {
		out = append(out, "[ "+d.Image.Caption+" ]")
	}
	if d.Postcard != nil {
		if d.Postcard.To != "" {
			out = append(out, "To: "+d.Postcard.To)
		}
		if d.Postcard.From != "" {
			out = append(out, "From: "+d.Postcard.From)
		}
	}
	return out
}

func decorationLine(decos []scene.Decoration) string {
	var parts []string
	for _, d := range decos {
		g := glyphs[d.Kind]
		if d.Kind == scene.KindLetterSticker {
			g = d.Letter
		}
		if g != "" {
			parts = append(parts, g)
		}
	}
	return strings.Join(parts, " ")
}
