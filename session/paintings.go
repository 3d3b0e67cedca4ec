package session

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/beka-birhanu/vinom-walker/config"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
)

// paintingBoard is the agent's view of the session's walls. The agent only calls it from
// inside Tick, so the session lock is already held.
type paintingBoard struct {
	s *Session
}

func (b paintingBoard) PaintingAt(c grid.Cell) (agent.Painting, bool) {
	for _, f := range b.s.layout.Faces(c) {
		if p, ok := b.s.paintings[f]; ok {
			return p, true
		}
	}
	return agent.Painting{}, false
}

func (b paintingBoard) RequestPaintings(c grid.Cell) bool {
	return b.s.requestPaintings(c)
}

// RequestPaintings starts loading images for the bare faces around c. It reports whether
// any load is in flight for the cell.
func (s *Session) RequestPaintings(c grid.Cell) bool {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return false
	}
	return s.requestPaintings(c)
}

func (s *Session) requestPaintings(c grid.Cell) bool {
	if s.images == nil {
		return false
	}
	if s.loading[c] > 0 {
		return true
	}

	launched := 0
	for _, f := range s.layout.Faces(c) {
		if _, ok := s.paintings[f]; ok {
			continue
		}
		go s.load(s.loadCtx, s.generation, c, f)
		launched++
	}
	if launched == 0 {
		return false
	}

	s.loading[c] = launched
	s.pending += launched
	return true
}

// load fetches one image and reports it back. It runs without the lock.
func (s *Session) load(ctx context.Context, generation uint64, c grid.Cell, f layout.Face) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	img, err := s.images.NextImage(ctx)
	select {
	case s.completions <- imageResult{generation: generation, cell: c, face: f, image: img, err: err}:
	case <-s.done:
	}
}

// drain applies every completion that has arrived. The caller holds the lock.
func (s *Session) drain() {
	for {
		select {
		case r := <-s.completions:
			s.apply(r)
		default:
			return
		}
	}
}

func (s *Session) apply(r imageResult) {
	if r.generation != s.generation {
		s.stale++
		return
	}

	s.pending--
	s.loading[r.cell]--

	switch {
	case r.err != nil:
		s.failed++
		if !errors.Is(r.err, dmn.ErrImageUnavailable) && !errors.Is(r.err, context.Canceled) {
			s.logger.Printf("%s[ERROR]%s loading image for %s: %s", config.LogErrorColor, config.LogColorReset, r.cell, r.err)
		}
	case r.image == nil:
		s.failed++
	default:
		s.loaded++
		x, z := s.layout.FaceCenter(r.face)
		s.paintings[r.face] = agent.Painting{Face: r.face, URL: r.image.URL, Title: r.image.Title, X: x, Z: z}
	}

	if s.loading[r.cell] > 0 {
		return
	}
	delete(s.loading, r.cell)
	_, hung := paintingBoard{s}.PaintingAt(r.cell)
	s.agent.OnPaintingsLoaded(r.cell, hung)
}
