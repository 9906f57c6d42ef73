// Package analyzer describes what kind of JSON a fixture actually sends for
// the field under test, so reports can say "given a quoted integer" without
// relying on labels.
package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
)

// InputKind names the JSON shape found at a case's path.
type InputKind string

const (
	KindNull          InputKind = "null"
	KindBoolean       InputKind = "boolean"
	KindInteger       InputKind = "integer"
	KindFloat         InputKind = "float"
	KindEmptyString   InputKind = "empty-string"
	KindBooleanString InputKind = "boolean-string"
	KindIntegerString InputKind = "integer-string"
	KindFloatString   InputKind = "float-string"
	KindEscapedObject InputKind = "escaped-object"
	KindEscapedArray  InputKind = "escaped-array"
	KindString        InputKind = "string"
	KindObject        InputKind = "object"
	KindArray         InputKind = "array"
	KindMissing       InputKind = "missing"
	KindNotJSON       InputKind = "not-json"
)

// Patterns for strings that carry another JSON type
var (
	integerRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	floatRegex   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Analyze parses the case's document and classifies the value at its path.
func Analyze(tc models.TestCase) InputKind {
	ir, err := parser.ParseString(tc.RawInput)
	if err != nil {
		return KindNotJSON
	}
	v, ok := parser.Lookup(ir.Root, tc.Path)
	if !ok {
		return KindMissing
	}
	return Classify(v)
}

// Classify names the kind of a parsed JSON value.
func Classify(v models.JSONValue) InputKind {
	switch val := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case json.Number:
		if strings.ContainsAny(string(val), ".eE") {
			return KindFloat
		}
		return KindInteger
	case string:
		return classifyString(val)
	case models.JSONObject:
		return KindObject
	case models.JSONArray:
		return KindArray
	}
	return KindNotJSON
}

func classifyString(s string) InputKind {
	switch {
	case s == "":
		return KindEmptyString
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "false"):
		return KindBooleanString
	case integerRegex.MatchString(s):
		return KindIntegerString
	case floatRegex.MatchString(s):
		return KindFloatString
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return KindString
	}
	ir, err := parser.ParseString(trimmed)
	if err != nil {
		return KindString
	}
	switch ir.Root.(type) {
	case models.JSONObject:
		return KindEscapedObject
	case models.JSONArray:
		return KindEscapedArray
	}
	return KindString
}
