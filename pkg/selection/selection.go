package selection

import (
	"slices"
	"strings"

	"github.com/ErikKalkoken/go-set"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Selection is an immutable snapshot of selected identity keys.
// The zero value is an empty selection.
type Selection struct {
	keys set.Set[string]
}

// New snapshots ids. Malformed identities (empty keys) are dropped and
// duplicate keys collapse.
func New(ids ...model.Identity) Selection {
	var keys set.Set[string]
	for _, id := range ids {
		if id.Valid() {
			keys.Add(id.Key)
		}
	}
	return Selection{keys: keys}
}

// FromKeys snapshots raw keys.
func FromKeys(keys ...string) Selection {
	ids := make([]model.Identity, len(keys))
	for i, k := range keys {
		ids[i] = model.ID(k)
	}
	return New(ids...)
}

// Contains reports whether id is selected. Malformed identities never match.
func (s Selection) Contains(id model.Identity) bool {
	return id.Valid() && s.keys.Contains(id.Key)
}

// Len returns the number of distinct selected keys.
func (s Selection) Len() int { return s.keys.Size() }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return s.keys.Size() == 0 }

// Keys returns the selected keys in sorted order.
func (s Selection) Keys() []string {
	return slices.Sorted(s.keys.All())
}

// Equal reports whether both snapshots select the same keys.
func (s Selection) Equal(other Selection) bool {
	return s.keys.Equal(other.keys)
}

// Toggled returns a new snapshot with id's membership flipped.
// The receiver is left unchanged.
func (s Selection) Toggled(id model.Identity) Selection {
	if !id.Valid() {
		return s
	}
	if s.Contains(id) {
		return Selection{keys: set.Difference(s.keys, set.Of(id.Key))}
	}
	keys := s.keys.Clone()
	keys.Add(id.Key)
	return Selection{keys: keys}
}

// Changed returns the keys whose membership differs between s and other.
func (s Selection) Changed(other Selection) []string {
	return slices.Sorted(set.Union(
		set.Difference(s.keys, other.keys),
		set.Difference(other.keys, s.keys),
	).All())
}

func (s Selection) String() string {
	return "{" + strings.Join(s.Keys(), ", ") + "}"
}
