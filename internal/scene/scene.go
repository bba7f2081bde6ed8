package scene

import (
	"math"

	"github.com/jackzampolin/scrapbook/internal/flipbook"
	"github.com/jackzampolin/scrapbook/internal/pages"
)

// Theme is a page colour scheme.
type Theme string

const (
	ThemeDefault  Theme = "default"
	ThemeBirthday Theme = "birthday"
	ThemePostcard Theme = "postcard"
	ThemeNight    Theme = "night"
)

var themeCycle = []Theme{ThemeDefault, ThemeBirthday, ThemePostcard, ThemeNight}

type palette struct {
	page string
	text string
}

var palettes = map[Theme]palette{
	ThemeDefault:  {page: "#F8F9FA", text: "#2D3250"},
	ThemeBirthday: {page: "#A2D2FF", text: "#1B263B"},
	ThemePostcard: {page: "#FFF8E7", text: "#2D3250"},
	ThemeNight:    {page: "#1B263B", text: "#F8F9FA"},
}

// ThemeFor returns the theme of page index. Themes cycle through default,
// birthday, postcard and night.
func ThemeFor(index int) Theme {
	if index < 0 {
		index = -index
	}
	return themeCycle[index%len(themeCycle)]
}

// PageColor returns the paper colour of the theme.
func (t Theme) PageColor() string {
	return palettes[t].page
}

// TextColor returns the ink colour of the theme.
func (t Theme) TextColor() string {
	return palettes[t].text
}

// Colours shared by every page.
const (
	SubtitleColor     = "#EF233C"
	PostcardCardColor = "#FFF8F0"
	PostcardTextColor = "#5D4E37"
)

// Page geometry and flip animation.
const (
	PageWidth     = 3.8
	PageHeight    = 4.8
	PageThickness = 0.02

	pageBaseZ = -0.3
	pageStepZ = 0.02

	FlipDuration = 0.8
	FlipEase     = "power2.inOut"
)

// Box is a plain coloured block.
type Box struct {
	Position Vec3   `json:"position"`
	Size     Vec3   `json:"size"`
	Color    string `json:"color"`
}

// Card is a loose card stacked behind the book.
type Card struct {
	Box
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// Props is everything drawn around the pages.
type Props struct {
	Cards    []Card       `json:"cards"`
	Base     Box          `json:"base"`
	Spine    Box          `json:"spine"`
	Stickers []Decoration `json:"stickers"`
}

// BookProps returns the background cards, the book body and the stickers on
// its side.
func BookProps() Props {
	stacked := []struct {
		color    string
		x, y     float64
		rotation float64
		scale    float64
	}{
		{"#3B5998", -0.4, 0.3, -0.15, 0.95},
		{"#E8E0D5", 0.35, 0.2, 0.12, 0.97},
		{"#F5F0E6", -0.2, 0.15, -0.08, 0.98},
	}

	props := Props{
		Base:  Box{Position: Vec3{0, 0, -0.5}, Size: Vec3{4.2, 5.2, 0.3}, Color: "#A67B5B"},
		Spine: Box{Position: Vec3{-2.1, 0, -0.35}, Size: Vec3{0.2, 5.2, 0.6}, Color: "#8B6B4F"},
		Stickers: []Decoration{
			newDecoration(Decoration{
				Kind:     KindVintagePhone,
				Position: Vec3{2.3, -0.5, 0.1},
				Size:     Vec3{0.7, 1.0, 0.02},
				Rotation: Vec3{0, 0, 0.1},
				Color:    "#DDA0DD",
			}, "props"),
			newDecoration(Decoration{
				Kind:     KindLetterSticker,
				Position: Vec3{2.0, -1.8, 0.05},
				Size:     Vec3{0.35, 0.35, 0.008},
				Rotation: Vec3{0, 0, -0.15},
				Color:    "#E8D4B8",
				Letter:   "h",
			}, "props"),
		},
	}
	for i, c := range stacked {
		props.Cards = append(props.Cards, Card{
			Box: Box{
				Position: Vec3{c.x, c.y, -0.8 - float64(i)*0.15},
				Size:     Vec3{PageWidth, PageHeight, PageThickness},
				Color:    c.color,
			},
			Rotation: c.rotation,
			Scale:    c.scale,
		})
	}
	return props
}

// Face is what is drawn on one side of a page.
type Face struct {
	Title       string       `json:"title,omitempty"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Message     string       `json:"message,omitempty"`
	Decorations []Decoration `json:"decorations"`
}

// Animation tells the renderer how to move a page to its target pose.
type Animation struct {
	Duration float64 `json:"duration"`
	Ease     string  `json:"ease"`
}

// PagePose is one page ready to draw.
type PagePose struct {
	Index     int           `json:"index"`
	Variant   pages.Variant `json:"variant"`
	Theme     Theme         `json:"theme"`
	PageColor string        `json:"page_color"`
	TextColor string        `json:"text_color"`
	Position  Vec3          `json:"position"`
	RotationY float64       `json:"rotation_y"`
	Flipped   bool          `json:"flipped"`
	Front     Face          `json:"front"`
	Back      Face          `json:"back"`
	Animation Animation     `json:"animation"`
}

// Scene is the full drawable state of the book.
type Scene struct {
	Current int        `json:"current"`
	Pages   []PagePose `json:"pages"`
	Props   Props      `json:"props"`
}

// Compose lays out every page of snap.
func Compose(snap flipbook.Snapshot) Scene {
	s := Scene{
		Current: snap.Current,
		Pages:   make([]PagePose, 0, len(snap.Pages)),
		Props:   BookProps(),
	}
	for _, p := range snap.Pages {
		s.Pages = append(s.Pages, Pose(p))
	}
	return s
}

// Pose lays out a single page.
func Pose(p flipbook.Page) PagePose {
	theme := ThemeFor(p.Index)
	pose := PagePose{
		Index:     p.Index,
		Variant:   p.Variant,
		Theme:     theme,
		PageColor: theme.PageColor(),
		TextColor: theme.TextColor(),
		Position:  Vec3{0, 0, pageBaseZ + float64(p.Index)*pageStepZ},
		Flipped:   p.Flipped,
		Animation: Animation{Duration: FlipDuration, Ease: FlipEase},
	}
	if p.Flipped {
		pose.RotationY = math.Pi
	}

	front, back := p.Spec.FrontSide(), p.Spec.BackSide()
	pose.Front = Face{Title: front.Title, Subtitle: front.Subtitle, Message: front.Message}
	pose.Back = Face{Title: back.Title, Subtitle: back.Subtitle, Message: back.Message}

	if p.Variant == pages.VariantPostcard {
		pose.PageColor = PostcardCardColor
		pose.TextColor = PostcardTextColor
		pose.Front.Decorations = PostcardDecorations(p.Index, SideFront)
		pose.Back.Decorations = PostcardDecorations(p.Index, SideBack)
		return pose
	}

	pose.Front.Decorations = PageDecorations(p.Index, SideFront, theme)
	pose.Back.Decorations = PageDecorations(p.Index, SideBack, theme)
	return pose
}
