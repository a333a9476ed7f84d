// Package reconcile matches the previous frame's rendered points against the
// next frame's and classifies each as entered, updated or exited.
//
// Matching is by identity key. Points with a malformed (empty) identity are
// matched by their position in the frame instead, under the key "#i".
// Every surviving point is reported as updated on every sync, whether or not
// its geometry changed.
package reconcile

import (
	"strconv"
	"sync"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Diff is the result of reconciling two frames.
type Diff struct {
	Entered []model.PositionedPoint `json:"entered"`
	Updated []model.PositionedPoint `json:"updated"`
	Exited  []model.PositionedPoint `json:"exited"`
}

// Len returns the number of points in the next frame.
func (d Diff) Len() int { return len(d.Entered) + len(d.Updated) }

// Key returns the reconciliation key of p.
func Key(p model.PositionedPoint) string {
	if id := p.Identity(); id.Valid() {
		return id.Key
	}
	return "#" + strconv.Itoa(p.Index)
}

// Reconcile classifies points. Entered and Updated follow next's order;
// Exited follows previous's order. When a key repeats, each occurrence in
// next consumes one unmatched occurrence in previous.
func Reconcile(previous, next []model.PositionedPoint) Diff {
	pending := make(map[string]int, len(previous))
	for _, p := range previous {
		pending[Key(p)]++
	}

	var d Diff
	for _, p := range next {
		k := Key(p)
		if pending[k] > 0 {
			pending[k]--
			d.Updated = append(d.Updated, p)
			continue
		}
		d.Entered = append(d.Entered, p)
	}

	// Exited: the trailing unmatched occurrences of each key.
	for i := len(previous) - 1; i >= 0; i-- {
		k := Key(previous[i])
		if pending[k] > 0 {
			pending[k]--
			d.Exited = append(d.Exited, previous[i])
		}
	}
	for i, j := 0, len(d.Exited)-1; i < j; i, j = i+1, j-1 {
		d.Exited[i], d.Exited[j] = d.Exited[j], d.Exited[i]
	}
	return d
}

// Syncer holds the last synced frame. It is safe for concurrent use.
type Syncer struct {
	mu       sync.Mutex
	previous []model.PositionedPoint
}

// Sync reconciles next against the previously synced frame and makes next
// the new previous frame.
func (s *Syncer) Sync(next []model.PositionedPoint) Diff {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Reconcile(s.previous, next)
	s.previous = append([]model.PositionedPoint(nil), next...)
	return d
}

// Previous returns a copy of the last synced frame.
func (s *Syncer) Previous() []model.PositionedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PositionedPoint(nil), s.previous...)
}

// Reset forgets the previous frame.
func (s *Syncer) Reset() {
	s.mu.Lock()
	s.previous = nil
	s.mu.Unlock()
}
