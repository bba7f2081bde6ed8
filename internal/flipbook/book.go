// Package flipbook tracks which pages of the scrapbook are turned and which
// page is current.
//
// Any page may be flipped directly, but the current page only moves when the
// current page itself is flipped forward or an earlier page is flipped back.
// Flipping a later page out of order leaves current where it was, so Next and
// Previous can find themselves with nothing to do. That behaviour is kept on
// purpose; callers that want a strict stack should only use Next and Previous.
package flipbook

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jackzampolin/scrapbook/internal/pages"
)

var (
	// ErrInvalidIndex is matched by every *IndexError.
	ErrInvalidIndex = errors.New("invalid page index")

	// ErrNoPages is returned by New for an empty page list.
	ErrNoPages = errors.New("a book needs at least one page")

	// ErrJumpBlocked is returned by JumpTo when an out-of-order flip stops
	// Next or Previous from making progress.
	ErrJumpBlocked = errors.New("jump blocked by out-of-order flip")
)

// IndexError reports a page index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrInvalidIndex) true.
func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// Page is one page of the book.
type Page struct {
	Index   int              `json:"index"`
	Variant pages.Variant    `json:"variant"`
	Flipped bool             `json:"flipped"`
	Spec    pages.Descriptor `json:"spec"`
}

// Transition describes one completed flip.
type Transition struct {
	Index       int  `json:"index"`
	Flipped     bool `json:"flipped"`
	FromCurrent int  `json:"from_current"`
	ToCurrent   int  `json:"to_current"`
}

// Snapshot is an immutable view of the book.
type Snapshot struct {
	Pages       []Page `json:"pages"`
	Current     int    `json:"current"`
	CanNext     bool   `json:"can_next"`
	CanPrevious bool   `json:"can_previous"`
}

// Book is the flip state of an ordered set of pages. It is safe for
// concurrent use; every method applies its whole change under one lock.
type Book struct {
	mu      sync.Mutex
	pages   []Page
	current int
}

// New creates a book with every page unflipped and page 0 current.
func New(descs []pages.Descriptor) (*Book, error) {
	if len(descs) == 0 {
		return nil, ErrNoPages
	}
	b := &Book{pages: make([]Page, len(descs))}
	for i, d := range descs {
		b.pages[i] = Page{Index: i, Variant: d.Variant, Spec: d}
	}
	return b, nil
}

// Len returns the number of pages.
func (b *Book) Len() int {
	return len(b.pages)
}

// Current returns the index of the current page.
func (b *Book) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Page returns page i.
func (b *Book) Page(i int) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(i); err != nil {
		return Page{}, err
	}
	return b.pages[i], nil
}

// Pages returns a copy of all pages.
func (b *Book) Pages() []Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Page(nil), b.pages...)
}

// Flip toggles page i.
//
// Flipping the current page forward advances current by one, stopping at the
// last page. Flipping back a page before current makes it current. Any other
// flip leaves current alone.
func (b *Book) Flip(i int) (Transition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(i); err != nil {
		return Transition{}, err
	}
	return b.flip(i), nil
}

// Next turns the current page forward. It does nothing at the last page, or
// when the current page is already turned.
func (b *Book) Next() (Transition, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.canNext() {
		return Transition{}, false
	}
	return b.flip(b.current), true
}

// Previous turns back the page before current. It does nothing at page 0, or
// when that page is not turned.
func (b *Book) Previous() (Transition, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.canPrevious() {
		return Transition{}, false
	}
	return b.flip(b.current - 1), true
}

// CanNext reports whether Next would flip a page.
func (b *Book) CanNext() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canNext()
}

// CanPrevious reports whether Previous would flip a page.
func (b *Book) CanPrevious() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canPrevious()
}

// JumpTo steps towards target one flip at a time and returns the flips made.
// If a step cannot be taken it stops and returns ErrJumpBlocked along with
// the flips made so far.
func (b *Book) JumpTo(target int) ([]Transition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(target); err != nil {
		return nil, err
	}

	var steps []Transition
	for b.current != target {
		switch {
		case b.current < target && b.canNext():
			steps = append(steps, b.flip(b.current))
		case b.current > target && b.canPrevious():
			steps = append(steps, b.flip(b.current-1))
		default:
			return steps, fmt.Errorf("%w: at page %d, target %d", ErrJumpBlocked, b.current, target)
		}
	}
	return steps, nil
}

// Snapshot returns the current state.
func (b *Book) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Pages:       append([]Page(nil), b.pages...),
		Current:     b.current,
		CanNext:     b.canNext(),
		CanPrevious: b.canPrevious(),
	}
}

func (b *Book) check(i int) error {
	if i < 0 || i >= len(b.pages) {
		return &IndexError{Index: i, Len: len(b.pages)}
	}
	return nil
}

func (b *Book) canNext() bool {
	return b.current < len(b.pages)-1 && !b.pages[b.current].Flipped
}

func (b *Book) canPrevious() bool {
	return b.current > 0 && b.pages[b.current-1].Flipped
}

// flip must be called with mu held and i in range.
func (b *Book) flip(i int) Transition {
	from := b.current
	p := &b.pages[i]
	p.Flipped = !p.Flipped

	switch {
	case p.Flipped && i == b.current:
		b.current = min(b.current+1, len(b.pages)-1)
	case !p.Flipped && i < b.current:
		b.current = i
	}

	return Transition{Index: i, Flipped: p.Flipped, FromCurrent: from, ToCurrent: b.current}
}
