// Package scene turns flip state into a description of what to draw: page
// poses, themed colours and the decorations stuck on each face. It does not
// render anything; the web frontend and the terminal UI consume the result.
package scene

import (
	"hash/fnv"
	"math"
	"strconv"
)

// Vec3 is an x, y, z triple.
type Vec3 [3]float64

// Kind is a decoration type.
type Kind string

const (
	KindSticker        Kind = "sticker"
	KindWashi          Kind = "washi"
	KindPhoto          Kind = "photo"
	KindStamp          Kind = "stamp"
	KindPostmark       Kind = "postmark"
	KindVintagePhone   Kind = "vintagePhone"
	KindLetterSticker  Kind = "letterSticker"
	KindPostcardBorder Kind = "postcardBorder"
)

// Side names a face of a page.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// Decoration is one item stuck on a page or beside the book.
type Decoration struct {
	Kind     Kind    `json:"kind"`
	Position Vec3    `json:"position"`
	Size     Vec3    `json:"size"`
	Rotation Vec3    `json:"rotation"`
	Color    string  `json:"color,omitempty"`
	Text     string  `json:"text,omitempty"`
	Letter   string  `json:"letter,omitempty"`
	Opacity  float64 `json:"opacity"`
}

const (
	defaultDecorationColor = "#FFC8DD"
	maxJitter              = 0.15
)

var defaultDecorationSize = Vec3{0.5, 0.5, 0.01}

// newDecoration fills in defaults and the hand-placed tilt for kind.
func newDecoration(d Decoration, seed string) Decoration {
	if d.Size == (Vec3{}) {
		d.Size = defaultDecorationSize
	}
	if d.Color == "" {
		d.Color = defaultDecorationColor
	}
	if d.Opacity == 0 {
		d.Opacity = 1
	}
	d.Rotation[2] += tilt(d.Kind, seed)
	return d
}

// tilt returns the extra z rotation a decoration gets so it looks placed by
// hand. It is derived from seed so the same page always looks the same.
func tilt(kind Kind, seed string) float64 {
	switch kind {
	case KindPostmark:
		return 0.15
	case KindPostcardBorder:
		return 0
	}

	j := jitter(seed+"/"+string(kind)) * maxJitter
	switch kind {
	case KindStamp:
		return j * 0.5
	case KindVintagePhone:
		return j * 0.3
	}
	return j
}

// jitter maps s to [-0.5, 0.5).
func jitter(s string) float64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return float64(h.Sum64()%10000)/10000 - 0.5
}

// PageDecorations returns the decorations on one face of a regular page.
func PageDecorations(index int, side Side, theme Theme) []Decoration {
	seed := index * 10
	if side == SideBack {
		seed += 5
	}
	key := faceKey(index, side)

	stickerColor := "#EF233C"
	if seed%2 == 0 {
		stickerColor = "#FFC8DD"
	}
	washiColor := "#A2D2FF"
	if theme == ThemeBirthday {
		washiColor = "#FFC8DD"
	}

	decs := []Decoration{
		newDecoration(Decoration{
			Kind:     KindSticker,
			Position: Vec3{-1.2 + float64(seed%3)*0.5, 1.2 - float64(seed%2)*0.5, 0.011},
			Size:     Vec3{0.3, 0.3, 0.01},
			Color:    stickerColor,
			Text:     "♥",
		}, key),
		newDecoration(Decoration{
			Kind:     KindWashi,
			Position: Vec3{1.3, 0.5, 0.011},
			Size:     Vec3{0.8, 0.15, 0.001},
			Rotation: Vec3{0, 0, math.Pi / 6},
			Color:    washiColor,
			Opacity:  0.7,
		}, key),
	}

	if index == 1 || index == 2 {
		decs = append(decs, newDecoration(Decoration{
			Kind:     KindPhoto,
			Position: Vec3{0, -1.5, 0.011},
			Size:     Vec3{1.2, 0.8, 0.01},
			Color:    "#FFFFFF",
		}, key))
	}
	return decs
}

// PostcardDecorations returns the decorations on one face of a postcard page.
func PostcardDecorations(index int, side Side) []Decoration {
	key := faceKey(index, side)

	if side == SideBack {
		return []Decoration{
			newDecoration(Decoration{
				Kind:     KindSticker,
				Position: Vec3{-1.2, -1.5, 0.01},
				Size:     Vec3{0.4, 0.4, 0.01},
				Color:    "#FFC8DD",
				Text:     "♥",
			}, key+"/left"),
			newDecoration(Decoration{
				Kind:     KindSticker,
				Position: Vec3{1.2, -1.5, 0.01},
				Size:     Vec3{0.4, 0.4, 0.01},
				Color:    "#A2D2FF",
				Text:     "★",
			}, key+"/right"),
		}
	}

	border := Vec3{3.8, 0.15, 0.002}
	return []Decoration{
		newDecoration(Decoration{Kind: KindPostcardBorder, Position: Vec3{0, 2.25, 0.001}, Size: border, Color: "#C41E3A"}, key),
		newDecoration(Decoration{Kind: KindPostcardBorder, Position: Vec3{0, -2.25, 0.001}, Size: border, Color: "#C41E3A"}, key),
		newDecoration(Decoration{
			Kind:     KindStamp,
			Position: Vec3{1.35, 1.4, 0.005},
			Size:     Vec3{0.5, 0.6, 0.008},
			Color:    "#F0E0E8",
		}, key),
		newDecoration(Decoration{
			Kind:     KindPostmark,
			Position: Vec3{1.0, 1.3, 0.008},
			Size:     Vec3{0.5, 0.5, 0.005},
			Color:    "#8B7355",
			Opacity:  0.3,
		}, key),
	}
}

func faceKey(index int, side Side) string {
	return string(side) + "/" + strconv.Itoa(index)
}
