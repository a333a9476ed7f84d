package sink

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
)

// drawable reports whether p should appear in rendered output. A point
// without an image reference renders as nothing. A point whose reference
// fails validation is logged and skipped; the rest of the frame still
// renders.
func drawable(p model.PositionedPoint, logger *log.Logger) bool {
	if p.Image == "" {
		return false
	}
	if err := errors.ValidateImageRef(p.Image); err != nil {
		logger.Warn("skipped point", "key", p.Identity().Key, "index", p.Index, "err", err)
		return false
	}
	return true
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
