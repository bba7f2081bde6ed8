package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/scrapbook/internal/flipbook"
	"github.com/jackzampolin/scrapbook/internal/pages"
)

func TestThemeFor(t *testing.T) {
	want := []Theme{ThemeDefault, ThemeBirthday, ThemePostcard, ThemeNight, ThemeDefault}
	for i, w := range want {
		assert.Equal(t, w, ThemeFor(i), "index %d", i)
	}
	assert.Equal(t, "#1B263B", ThemeNight.PageColor())
	assert.Equal(t, "#F8F9FA", ThemeNight.TextColor())
	assert.Equal(t, "#A2D2FF", ThemeBirthday.PageColor())
}

func TestPageDecorations(t *testing.T) {
	t.Run("sticker position follows seed", func(t *testing.T) {
		front := PageDecorations(0, SideFront, ThemeDefault)
		require.Len(t, front, 2)
		assert.Equal(t, KindSticker, front[0].Kind)
		assert.InDelta(t, -1.2, front[0].Position[0], 1e-9)
		assert.InDelta(t, 1.2, front[0].Position[1], 1e-9)
		assert.Equal(t, "#FFC8DD", front[0].Color)

		// Page 0 back: seed 5.
		back := PageDecorations(0, SideBack, ThemeDefault)
		assert.InDelta(t, -0.2, back[0].Position[0], 1e-9)
		assert.InDelta(t, 0.7, back[0].Position[1], 1e-9)
		assert.Equal(t, "#EF233C", back[0].Color)
	})

	t.Run("washi colour follows theme", func(t *testing.T) {
		assert.Equal(t, "#FFC8DD", PageDecorations(1, SideFront, ThemeBirthday)[1].Color)
		assert.Equal(t, "#A2D2FF", PageDecorations(3, SideFront, ThemeNight)[1].Color)
		assert.InDelta(t, 0.7, PageDecorations(3, SideFront, ThemeNight)[1].Opacity, 1e-9)
	})

	t.Run("photos on pages 1 and 2 only", func(t *testing.T) {
		assert.Len(t, PageDecorations(1, SideFront, ThemeBirthday), 3)
		assert.Len(t, PageDecorations(2, SideBack, ThemePostcard), 3)
		assert.Len(t, PageDecorations(3, SideFront, ThemeNight), 2)
	})

	t.Run("tilt is stable and bounded", func(t *testing.T) {
		a := PageDecorations(4, SideFront, ThemeDefault)
		b := PageDecorations(4, SideFront, ThemeDefault)
		assert.Equal(t, a, b)

		for i := 0; i < 20; i++ {
			for _, side := range []Side{SideFront, SideBack} {
				for _, d := range PageDecorations(i, side, ThemeFor(i)) {
					base := 0.0
					if d.Kind == KindWashi {
						base = math.Pi / 6
					}
					assert.LessOrEqual(t, math.Abs(d.Rotation[2]-base), 0.075)
				}
			}
		}
	})
}

func TestPostcardDecorations(t *testing.T) {
	front := PostcardDecorations(1, SideFront)
	kinds := make([]Kind, 0, len(front))
	for _, d := range front {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []Kind{KindPostcardBorder, KindPostcardBorder, KindStamp, KindPostmark}, kinds)
	assert.Equal(t, 0.0, front[0].Rotation[2])
	assert.InDelta(t, 0.15, front[3].Rotation[2], 1e-9)

	back := PostcardDecorations(1, SideBack)
	require.Len(t, back, 2)
	assert.Equal(t, "★", back[1].Text)
}

func TestBookProps(t *testing.T) {
	props := BookProps()
	require.Len(t, props.Cards, 3)
	assert.Equal(t, "#3B5998", props.Cards[0].Color)
	assert.InDelta(t, -1.1, props.Cards[2].Position[2], 1e-9)
	assert.Equal(t, "#A67B5B", props.Base.Color)
	assert.Equal(t, "#8B6B4F", props.Spine.Color)
	require.Len(t, props.Stickers, 2)
	assert.Equal(t, KindVintagePhone, props.Stickers[0].Kind)
	assert.Equal(t, "h", props.Stickers[1].Letter)
}

func TestCompose(t *testing.T) {
	book, err := flipbook.New(pages.Default())
	require.NoError(t, err)
	_, err = book.Flip(0)
	require.NoError(t, err)

	s := Compose(book.Snapshot())
	require.Len(t, s.Pages, 8)
	assert.Equal(t, 1, s.Current)

	cover := s.Pages[0]
	assert.True(t, cover.Flipped)
	assert.InDelta(t, math.Pi, cover.RotationY, 1e-9)
	assert.InDelta(t, -0.3, cover.Position[2], 1e-9)
	assert.Equal(t, "Welcome to", cover.Front.Title)
	assert.Equal(t, "Page 1", cover.Back.Title)
	assert.Equal(t, Animation{Duration: 0.8, Ease: "power2.inOut"}, cover.Animation)

	postcard := s.Pages[1]
	assert.False(t, postcard.Flipped)
	assert.Equal(t, 0.0, postcard.RotationY)
	assert.Equal(t, PostcardCardColor, postcard.PageColor)
	assert.Equal(t, KindPostcardBorder, postcard.Front.Decorations[0].Kind)

	last := s.Pages[7]
	assert.InDelta(t, -0.16, last.Position[2], 1e-9)
	assert.Equal(t, ThemeNight, last.Theme)
}
