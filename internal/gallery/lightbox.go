package gallery

// Lightbox is the detail-page photo preview: either closed or open on one
// index. It shares the cursor arithmetic but closes outright when the photo
// being previewed is removed.
type Lightbox struct {
	idx  int
	open bool
}

func (l *Lightbox) Open(i int) {
	l.idx = i
	l.open = true
}

func (l *Lightbox) Close() {
	l.open = false
	l.idx = 0
}

// Index reports the previewed photo, if any.
func (l *Lightbox) Index() (int, bool) {
	if !l.open {
		return 0, false
	}
	return l.idx, true
}

// Advance and Retreat cycle through n photos while open; they are no-ops on a
// closed lightbox.

func (l *Lightbox) Advance(n int) (int, error) {
	if !l.open {
		return 0, nil
	}
	if n <= 0 {
		return 0, ErrNoPhotos
	}
	l.idx = (l.idx + 1) % n
	return l.idx, nil
}

func (l *Lightbox) Retreat(n int) (int, error) {
	if !l.open {
		return 0, nil
	}
	if n <= 0 {
		return 0, ErrNoPhotos
	}
	l.idx = (l.idx - 1 + n) % n
	return l.idx, nil
}

// RemovePhoto reacts to the photo at position p being removed from a sequence
// of n. Previewing the removed photo closes the preview; previews past it
// shift down; anything left out of range clamps to the last photo.
func (l *Lightbox) RemovePhoto(p, n int) {
	if !l.open {
		return
	}
	if l.idx == p || n-1 <= 0 {
		l.Close()
		return
	}
	nNew := n - 1
	if l.idx > p {
		l.idx--
	}
	if l.idx >= nNew {
		l.idx = nNew - 1
	}
}
