package site

import "math"

// Rect is the rendered vertical extent of a block, in the same coordinate
// space as the pointer.
type Rect struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DropTarget resolves where a dragged block lands. The block whose top or
// bottom edge is nearest to pointerY wins; a nearer top edge means before it,
// a nearer bottom edge means after it. Ties keep the earlier rect and prefer
// the top edge. ok is false when there are no rects.
func DropTarget(rects []Rect, pointerY float64) (id string, after bool, ok bool) {
	best := math.Inf(1)
	for _, r := range rects {
		if d := math.Abs(pointerY - r.Top); d < best {
			best, id, after, ok = d, r.ID, false, true
		}
		if d := math.Abs(pointerY - r.Bottom); d < best {
			best, id, after, ok = d, r.ID, true, true
		}
	}
	return id, after, ok
}

// DropIndex maps a drop onto a position in d. Rects naming unknown blocks are
// ignored; when nothing matches the block is appended.
func (d *Document) DropIndex(rects []Rect, pointerY float64) int {
	known := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if d.Index(r.ID) >= 0 {
			known = append(known, r)
		}
	}
	id, after, ok := DropTarget(known, pointerY)
	if !ok {
		return d.Len()
	}
	i := d.Index(id)
	if after {
		i++
	}
	return i
}
