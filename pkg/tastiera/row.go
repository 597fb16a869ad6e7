package tastiera

import "github.com/veandco/go-sdl2/sdl"

// Row is one horizontal strip of keys. Rows exist to split pointer
// lookup in two stages: a cheap vertical check here, then a horizontal
// scan of this row's keys only.
type Row struct {
	Keys []*Key

	// Space points at the row's space key when it has one; its extra
	// width shifts the row's centering.
	Space *Key

	Rect sdl.Rect
}

// AddKey appends or prepends; there is no arbitrary-index insertion,
// which is what keeps special-key distribution simple.
func (r *Row) AddKey(key *Key, atFront bool) {
	if atFront {
		r.Keys = append([]*Key{key}, r.Keys...)
	} else {
		r.Keys = append(r.Keys, key)
	}
	if key.Kind == KeySpace {
		r.Space = key
	}
}

func (r *Row) Len() int {
	return len(r.Keys)
}

// Layout assigns geometry to every key: square edge×edge cells, except
// the space key which spans edge×Length. Keys start at x+padding and
// advance by key width plus padding.
func (r *Row) Layout(x, y, edge, padding int32) {
	r.Rect.X = x
	r.Rect.Y = y
	r.Rect.H = edge

	cx := x + padding
	for _, key := range r.Keys {
		w := edge
		if key.Kind == KeySpace {
			w = edge * key.Length
		}
		key.Rect = sdl.Rect{X: cx, Y: y, W: w, H: edge}
		cx += w + padding
	}
	r.Rect.W = cx - x
}

func (r *Row) ContainsY(y int32) bool {
	return y >= r.Rect.Y && y <= r.Rect.Y+r.Rect.H
}

// KeyAt returns the key under the given x coordinate, nil when the
// pointer falls in padding or outside the row.
func (r *Row) KeyAt(x int32) *Key {
	for _, key := range r.Keys {
		if key.HitTestX(x) {
			return key
		}
	}
	return nil
}
