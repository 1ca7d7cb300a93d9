// Package gallery holds the per-room photo navigation state: a keyed cursor
// store for listing-card carousels and a lightbox for the detail page. State
// is owned by the view instance that renders a listing; nothing here is
// persisted or shared across unrelated views.
package gallery

import "errors"

// ErrNoPhotos is returned when navigation is attempted on an empty photo
// sequence. Callers must guard and render a placeholder instead.
var ErrNoPhotos = errors.New("gallery: no photos to navigate")

// Cursors maps a room id to its current photo index. A missing entry means
// "unset": displayed as 0, but navigated from as the implicit default — the
// first advance lands on index 1, the first retreat on N-1.
type Cursors struct {
	idx map[string]int
}

func NewCursors() *Cursors {
	return &Cursors{idx: make(map[string]int)}
}

// Current returns the display index for id, defaulting to 0 when unset.
func (c *Cursors) Current(id string) int {
	return c.idx[id]
}

// Set pins the cursor for id, e.g. when a thumbnail is clicked directly.
func (c *Cursors) Set(id string, i int) {
	c.idx[id] = i
}

// Advance moves the cursor one photo forward, wrapping at n.
// From the unset state the result is 1 mod n, not 0: the implicit default is
// already showing photo 0, so the first click shows the second photo.
func (c *Cursors) Advance(id string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrNoPhotos
	}
	i, ok := c.idx[id]
	if !ok {
		c.idx[id] = 1 % n
		return c.idx[id], nil
	}
	c.idx[id] = (i + 1) % n
	return c.idx[id], nil
}

// Retreat moves the cursor one photo back, wrapping at n.
// From the unset state the result is n-1.
func (c *Cursors) Retreat(id string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrNoPhotos
	}
	i, ok := c.idx[id]
	if !ok {
		c.idx[id] = n - 1
		return c.idx[id], nil
	}
	c.idx[id] = (i - 1 + n) % n
	return c.idx[id], nil
}

// RemovePhoto keeps the cursor valid after the photo at position p is removed
// from a sequence that previously had n entries. Removing a photo before the
// cursor shifts it down by one; a cursor at or past the new length clamps to
// the last photo. When no photos remain the cursor is unset.
func (c *Cursors) RemovePhoto(id string, p, n int) {
	i, ok := c.idx[id]
	if !ok {
		return
	}
	nNew := n - 1
	if nNew <= 0 {
		delete(c.idx, id)
		return
	}
	if i > p {
		i--
	}
	if i >= nNew {
		i = nNew - 1
	}
	c.idx[id] = i
}

// Reset forgets the cursor for id, e.g. when the room itself is deleted.
func (c *Cursors) Reset(id string) {
	delete(c.idx, id)
}

// DisplayPhoto resolves the photo to render for the current cursor. An empty
// sequence yields the empty-string placeholder; callers must not navigate in
// that case.
func DisplayPhoto(photos []string, idx int) string {
	if len(photos) == 0 {
		return ""
	}
	if idx < 0 || idx >= len(photos) {
		idx = 0
	}
	return photos[idx]
}
