// Package oracle decides whether a decoder's result satisfies a fixture's
// expected outcome.
package oracle

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
	"github.com/mcncl/coercekit/internal/probe"
)

// Mismatch describes a result that does not satisfy a case.
type Mismatch struct {
	Label    string
	Target   models.TargetType
	Expected models.Outcome
	Observed models.OutcomeKind
	Value    any
	Err      error
}

func (m *Mismatch) Error() string {
	if m.Err != nil {
		return fmt.Sprintf("%s [%s]: expected %s, got %s: %v", m.Label, m.Target, m.Expected.Kind, m.Observed, m.Err)
	}
	if m.Expected.Kind == models.OutcomeExact {
		return fmt.Sprintf("%s [%s]: expected %s %#v, got %s %#v", m.Label, m.Target, m.Expected.Kind, m.Expected.Value, m.Observed, m.Value)
	}
	return fmt.Sprintf("%s [%s]: expected %s, got %s %#v", m.Label, m.Target, m.Expected.Kind, m.Observed, m.Value)
}

// Check returns nil when res satisfies tc's expectation for target, and a
// *Mismatch otherwise.
func Check(target models.TargetType, tc models.TestCase, res probe.Result) error {
	if satisfies(tc, res) {
		return nil
	}
	return &Mismatch{
		Label:    tc.Label,
		Target:   target,
		Expected: tc.Expect,
		Observed: observe(tc, res),
		Value:    res.Value,
		Err:      res.Err,
	}
}

// Classify names the outcome res represents for tc. When res satisfies the
// expectation the expected kind is reported, even if the value is also a
// default or the raw input.
func Classify(target models.TargetType, tc models.TestCase, res probe.Result) models.OutcomeKind {
	if satisfies(tc, res) {
		return tc.Expect.Kind
	}
	return observe(tc, res)
}

func satisfies(tc models.TestCase, res probe.Result) bool {
	if tc.Expect.Kind == models.OutcomeFailure {
		return res.Err != nil
	}
	if res.Err != nil {
		return false
	}
	switch tc.Expect.Kind {
	case models.OutcomeDefault:
		return isZero(res.Value)
	case models.OutcomePassThrough:
		raw, _ := rawValue(tc)
		return sameJSON(res.Value, raw)
	case models.OutcomeExact:
		return sameValue(res.Value, tc.Expect.Value)
	}
	return false
}

func observe(tc models.TestCase, res probe.Result) models.OutcomeKind {
	if res.Err != nil {
		return models.OutcomeFailure
	}
	if isZero(res.Value) {
		return models.OutcomeDefault
	}
	if raw, ok := rawValue(tc); ok && sameJSON(res.Value, raw) {
		return models.OutcomePassThrough
	}
	return models.OutcomeExact
}

// rawValue is the parsed JSON found at the case's path.
func rawValue(tc models.TestCase) (models.JSONValue, bool) {
	ir, err := parser.ParseString(tc.RawInput)
	if err != nil {
		return nil, false
	}
	return parser.Lookup(ir.Root, tc.Path)
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

// sameValue requires scalars to match in type as well as value. Containers
// may differ in Go type as long as they hold the same JSON.
func sameValue(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	if !isContainer(got) || !isContainer(want) {
		return false
	}
	return sameJSON(got, want)
}

func isContainer(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct, reflect.Pointer:
		return true
	}
	return false
}

// sameJSON compares two values by their JSON encodings, reparsed so that
// key order and number formatting do not matter.
func sameJSON(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	na, ok := normalize(a)
	if !ok {
		return false
	}
	nb, ok := normalize(b)
	if !ok {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

func normalize(v any) (models.JSONValue, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	ir, err := parser.ParseString(string(data))
	if err != nil {
		return nil, false
	}
	return ir.Root, true
}
