package flipbook

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/scrapbook/internal/pages"
)

func newBook(t *testing.T) *Book {
	t.Helper()
	b, err := New(pages.Default())
	require.NoError(t, err)
	return b
}

func flippedSet(b *Book) []int {
	var out []int
	for _, p := range b.Pages() {
		if p.Flipped {
			out = append(out, p.Index)
		}
	}
	return out
}

func TestNew(t *testing.T) {
	b := newBook(t)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 0, b.Current())
	assert.Empty(t, flippedSet(b))
	assert.True(t, b.CanNext())
	assert.False(t, b.CanPrevious())

	p, err := b.Page(1)
	require.NoError(t, err)
	assert.Equal(t, pages.VariantPostcard, p.Variant)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestFlipThenPrevious(t *testing.T) {
	b := newBook(t)

	tr, err := b.Flip(0)
	require.NoError(t, err)
	assert.Equal(t, Transition{Index: 0, Flipped: true, FromCurrent: 0, ToCurrent: 1}, tr)
	assert.Equal(t, 1, b.Current())
	assert.Equal(t, []int{0}, flippedSet(b))

	tr, ok := b.Previous()
	require.True(t, ok)
	assert.Equal(t, Transition{Index: 0, Flipped: false, FromCurrent: 1, ToCurrent: 0}, tr)
	assert.Equal(t, 0, b.Current())
	assert.Empty(t, flippedSet(b))
}

func TestFlipUnflipRestoresCurrent(t *testing.T) {
	b := newBook(t)
	for i := 0; i < 3; i++ {
		_, ok := b.Next()
		require.True(t, ok)
	}
	require.Equal(t, 3, b.Current())

	_, err := b.Flip(3)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Current())

	_, err = b.Flip(3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Current())
}

func TestOutOfOrderFlip(t *testing.T) {
	b := newBook(t)

	_, err := b.Flip(5)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Current(), "flipping a later page leaves current")

	// Walk up to the already turned page; Next then has nothing to do.
	for i := 0; i < 5; i++ {
		_, ok := b.Next()
		require.True(t, ok)
	}
	assert.Equal(t, 5, b.Current())
	assert.False(t, b.CanNext())
	_, ok := b.Next()
	assert.False(t, ok)
	assert.Equal(t, 5, b.Current())

	_, err = b.JumpTo(7)
	assert.ErrorIs(t, err, ErrJumpBlocked)

	// Turning page 5 back does not move current since 5 is not before it.
	_, err = b.Flip(5)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Current())
	assert.True(t, b.CanNext())
}

func TestFlipInvalidIndex(t *testing.T) {
	b := newBook(t)
	for _, i := range []int{-1, 8, 100} {
		_, err := b.Flip(i)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndex)

		var idxErr *IndexError
		require.True(t, errors.As(err, &idxErr))
		assert.Equal(t, i, idxErr.Index)
		assert.Equal(t, 8, idxErr.Len)
	}
	assert.Equal(t, 0, b.Current())
	assert.Empty(t, flippedSet(b))

	_, err := b.Page(8)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = b.JumpTo(-2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestBoundsAreIdempotent(t *testing.T) {
	b := newBook(t)

	_, ok := b.Previous()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Current())

	_, err := b.JumpTo(7)
	require.NoError(t, err)
	require.Equal(t, 7, b.Current())
	before := flippedSet(b)

	for i := 0; i < 3; i++ {
		_, ok := b.Next()
		assert.False(t, ok)
	}
	assert.Equal(t, 7, b.Current())
	assert.Equal(t, before, flippedSet(b))
}

func TestJumpTo(t *testing.T) {
	b := newBook(t)

	steps, err := b.JumpTo(4)
	require.NoError(t, err)
	assert.Len(t, steps, 4)
	assert.Equal(t, 4, b.Current())
	assert.Equal(t, []int{0, 1, 2, 3}, flippedSet(b))

	steps, err = b.JumpTo(1)
	require.NoError(t, err)
	assert.Len(t, steps, 3)
	assert.Equal(t, 1, b.Current())
	assert.Equal(t, []int{0}, flippedSet(b))

	steps, err = b.JumpTo(1)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestSnapshot(t *testing.T) {
	b := newBook(t)
	_, err := b.Flip(0)
	require.NoError(t, err)

	snap := b.Snapshot()
	assert.Equal(t, 1, snap.Current)
	assert.True(t, snap.CanNext)
	assert.True(t, snap.CanPrevious)
	assert.True(t, snap.Pages[0].Flipped)

	snap.Pages[0].Flipped = false
	p, _ := b.Page(0)
	assert.True(t, p.Flipped, "snapshot must not alias book state")
}

func TestRandomSequencesKeepCurrentInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(10)
		descs := make([]pages.Descriptor, n)
		for i := range descs {
			descs[i] = pages.Descriptor{Variant: pages.VariantContent}
		}
		b, err := New(descs)
		require.NoError(t, err)

		for step := 0; step < 100; step++ {
			switch rng.Intn(4) {
			case 0:
				b.Next()
			case 1:
				b.Previous()
			case 2:
				b.Flip(rng.Intn(n+2) - 1)
			case 3:
				b.JumpTo(rng.Intn(n))
			}
			cur := b.Current()
			require.GreaterOrEqual(t, cur, 0)
			require.Less(t, cur, n)
		}
	}
}

func TestConcurrentFlips(t *testing.T) {
	b := newBook(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				b.Next()
			} else {
				b.Previous()
			}
		}(i)
	}
	wg.Wait()

	snap := b.Snapshot()
	assert.GreaterOrEqual(t, snap.Current, 0)
	assert.Less(t, snap.Current, 8)

	// Driven only by Next/Previous, exactly the pages before current are turned.
	for _, p := range snap.Pages {
		assert.Equal(t, p.Index < snap.Current, p.Flipped, "page %d", p.Index)
	}
}
