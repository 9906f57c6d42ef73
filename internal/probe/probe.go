// Package probe runs fixtures through JSON decoders so their behaviour can
// be compared with the lenient coercion contract.
package probe

import (
	"github.com/mcncl/coercekit/internal/models"
)

// Result is what a decoder produced for one case.
type Result struct {
	Value any
	Err   error
}

// Prober decodes a fixture into the Go type for its target.
type Prober interface {
	Name() string
	Decode(target models.TargetType, tc models.TestCase) Result
}
