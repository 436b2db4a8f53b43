package validators

import (
	"errors"
	"strings"
)

var (
	ErrTextEmpty   = errors.New("text is required")
	ErrTextTooLong = errors.New("text must be at most 5000 characters")
)

const maxTextLength = 5000

// TextValidator checks the input text for speech generation. Length is
// counted on the raw text, only the emptiness check ignores whitespace.
func TextValidator(t string) error {
	if strings.TrimSpace(t) == "" {
		return ErrTextEmpty
	}

	if len(t) > maxTextLength {
		return ErrTextTooLong
	}

	return nil
}
