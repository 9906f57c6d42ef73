package probe

import (
	"github.com/mcncl/coercekit/internal/coerce"
	"github.com/mcncl/coercekit/internal/models"
)

// ReferenceName is the name of the prober that implements the contract.
const ReferenceName = "lenient"

// Lenient wraps the coerce package.
type Lenient struct{}

// Name implements Prober.
func (Lenient) Name() string { return ReferenceName }

// Decode implements Prober.
func (Lenient) Decode(target models.TargetType, tc models.TestCase) Result {
	v, err := coerce.Decode(tc.RawInput, tc.Path, target)
	return Result{Value: v, Err: err}
}
