package selection

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/imagewall/pkg/model"
)

// ToggleIntent is a proposed membership flip for one identity. The core
// emits it; a selection transport commits it.
type ToggleIntent struct {
	ID          uuid.UUID      `json:"id"`
	Identity    model.Identity `json:"identity"`
	Cycle       uint64         `json:"cycle"`
	RequestedAt time.Time      `json:"requested_at"`
}

// NewToggleIntent creates an intent for id raised during update cycle.
func NewToggleIntent(id model.Identity, cycle uint64) ToggleIntent {
	return ToggleIntent{
		ID:          uuid.New(),
		Identity:    id,
		Cycle:       cycle,
		RequestedAt: time.Now(),
	}
}

// StaleFor reports whether the intent was raised before cycle, meaning a
// newer update has superseded it.
func (t ToggleIntent) StaleFor(cycle uint64) bool { return t.Cycle < cycle }
