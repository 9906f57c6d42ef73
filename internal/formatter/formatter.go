package formatter

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/mcncl/coercekit/internal/errors"
)

// Formatter is responsible for formatting Go code according to standard conventions
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Go code as a string and returns properly formatted Go code
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", errors.NewFormatError(fmt.Sprintf("failed to parse Go code: %v", err), err)
	}
	return string(formatted), nil
}
