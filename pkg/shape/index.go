package shape

import (
	"github.com/chazu/kerf/pkg/geom"
	"github.com/dhconnelly/rtreego"
)

// minExtent pads degenerate bounds so every shape occupies a valid r-tree
// rectangle.
const minExtent = 0.001

// indexEntry pairs a resolved shape with its r-tree rectangle.
type indexEntry struct {
	shape Shape
	rect  rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// Index is a spatial index of resolved shapes, used by the editor for
// point picking. It must be rebuilt whenever shapes are re-resolved; it
// indexes concrete geometry, not symbolic shapes.
type Index struct {
	tree    *rtreego.Rtree
	entries map[string]*indexEntry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[string]*indexEntry),
	}
}

// Insert adds a resolved shape, replacing any previous entry with the
// same id.
func (ix *Index) Insert(s Shape) error {
	ix.Remove(s.ID())
	b := Bounds(s)
	w, h := b.Width, b.Height
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.X, b.Y}, []float64{w, h})
	if err != nil {
		return err
	}
	e := &indexEntry{shape: s, rect: rect}
	ix.entries[s.ID()] = e
	ix.tree.Insert(e)
	return nil
}

// Remove drops a shape from the index.
func (ix *Index) Remove(shapeID string) {
	if e, ok := ix.entries[shapeID]; ok {
		ix.tree.Delete(e)
		delete(ix.entries, shapeID)
	}
}

// At returns the shapes whose bounds contain the given point.
func (ix *Index) At(p geom.Vec2) []Shape {
	probe := rtreego.Point{p.X, p.Y}.ToRect(minExtent)
	var hits []Shape
	for _, sp := range ix.tree.SearchIntersect(probe) {
		hits = append(hits, sp.(*indexEntry).shape)
	}
	return hits
}

// Len returns the number of indexed shapes.
func (ix *Index) Len() int {
	return len(ix.entries)
}
