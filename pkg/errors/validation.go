package errors

import (
	"strings"
	"unicode"
)

const (
	maxIdentityKeyLength = 512
	maxImageRefLength    = 8 << 20
)

// ValidateIdentityKey validates a selection identity key.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 512 bytes
//   - No control characters
func ValidateIdentityKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "identity key cannot be empty")
	}
	if len(key) > maxIdentityKeyLength {
		return New(ErrCodeInvalidInput, "identity key too long (max %d bytes)", maxIdentityKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identity key contains invalid control characters")
		}
	}
	return nil
}

// allowedImageSchemes lists the URL schemes an image reference may use.
// References without a scheme are treated as relative paths.
var allowedImageSchemes = []string{"http://", "https://", "file://", "data:image/"}

// ValidateImageRef validates an image reference before it is emitted into
// rendered output. References are URLs, image data URIs or plain paths.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidImageRef, "image reference cannot be empty")
	}
	if len(ref) > maxImageRefLength {
		return New(ErrCodeInvalidImageRef, "image reference too long (max %d bytes)", maxImageRefLength)
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidImageRef, "image reference contains invalid control characters")
		}
	}

	lower := strings.ToLower(ref)
	for _, scheme := range allowedImageSchemes {
		if strings.HasPrefix(lower, scheme) {
			return nil
		}
	}
	// A single letter before the colon is a Windows drive, not a scheme.
	if i := strings.Index(lower, ":"); i > 1 && !strings.ContainsAny(lower[:i], "/\\.") {
		return New(ErrCodeInvalidImageRef, "unsupported image reference scheme %q", ref[:i])
	}
	return nil
}
