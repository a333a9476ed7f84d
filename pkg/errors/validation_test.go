package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentityKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "row-1", false},
		{"valid unicode", "Zürich", false},
		{"valid with spaces", "New York", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 513), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentityKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentityKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateImageRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/a.png", false},
		{"http", "http://example.com/a.png", false},
		{"file url", "file:///tmp/a.png", false},
		{"data uri", "data:image/png;base64,AAAA", false},
		{"relative path", "images/a.png", false},
		{"absolute path", "/srv/images/a.png", false},
		{"windows drive", "C:\\images\\a.png", false},

		{"empty", "", true},
		{"javascript", "javascript:alert(1)", true},
		{"non-image data", "data:text/html,<b>x</b>", true},
		{"control char", "a\x01.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
