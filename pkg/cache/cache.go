// Package cache memoizes layout results and rendered artifacts in process.
//
// Layout is a pure function of the points, the viewport and the settings, so
// the same update repeated with an unchanged dataset (a selection change, a
// re-render in another format) can reuse the geometry. Nothing here outlives
// the process.
package cache

import (
	"context"
	"time"
)

// Cache TTLs by entry kind.
const (
	TTLLayout   = 10 * time.Minute
	TTLArtifact = 2 * time.Minute
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey keys positioned geometry for a dataset hash.
	LayoutKey(pointsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact for a frame hash.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the points that changes a layout.
type LayoutKeyOpts struct {
	Mode          string  `json:"mode"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MaxColumns    int     `json:"max_columns"`
	TopListWeight float64 `json:"top_list_weight"`
	Threshold     float64 `json:"resolution_threshold"`
}

// ArtifactKeyOpts holds everything besides the frame that changes an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key options into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(pointsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", pointsHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, frameHash, opts)
}
