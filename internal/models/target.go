package models

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// TargetType selects the declared type a fixture category coerces into.
type TargetType int

const (
	TargetUnknown TargetType = iota
	TargetBoolean
	TargetInt8
	TargetInt16
	TargetInt32
	TargetInt64
	TargetFloat32
	TargetFloat64
	TargetText
	TargetObject
	TargetArray
	TargetMap
	TargetNullField
	TargetNotJSON
)

// AllTargets lists every recognized target in display order.
var AllTargets = []TargetType{
	TargetBoolean,
	TargetInt8,
	TargetInt16,
	TargetInt32,
	TargetInt64,
	TargetFloat32,
	TargetFloat64,
	TargetText,
	TargetObject,
	TargetArray,
	TargetMap,
	TargetNullField,
	TargetNotJSON,
}

var targetNames = map[TargetType]string{
	TargetBoolean:   "boolean",
	TargetInt8:      "integer8",
	TargetInt16:     "integer16",
	TargetInt32:     "integer32",
	TargetInt64:     "integer64",
	TargetFloat32:   "float32",
	TargetFloat64:   "float64",
	TargetText:      "text",
	TargetObject:    "object",
	TargetArray:     "array",
	TargetMap:       "map",
	TargetNullField: "null-field",
	TargetNotJSON:   "not-json",
}

// aliases accepted in addition to the canonical names, mostly the
// primitive names of JVM-style type systems
var targetAliases = map[string]TargetType{
	"bool":    TargetBoolean,
	"byte":    TargetInt8,
	"int8":    TargetInt8,
	"short":   TargetInt16,
	"int16":   TargetInt16,
	"int":     TargetInt32,
	"int32":   TargetInt32,
	"long":    TargetInt64,
	"int64":   TargetInt64,
	"float":   TargetFloat32,
	"double":  TargetFloat64,
	"string":  TargetText,
	"null":    TargetNullField,
	"illegal": TargetNotJSON,
	"nojson":  TargetNotJSON,
}

// String returns the canonical kebab-case name of the target.
func (t TargetType) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is one of the recognized targets.
func (t TargetType) Valid() bool {
	_, ok := targetNames[t]
	return ok
}

// IsInteger reports whether t is one of the fixed-width integer targets.
func (t TargetType) IsInteger() bool {
	switch t {
	case TargetInt8, TargetInt16, TargetInt32, TargetInt64:
		return true
	}
	return false
}

// IsFloat reports whether t is one of the floating point targets.
func (t TargetType) IsFloat() bool {
	return t == TargetFloat32 || t == TargetFloat64
}

// BitSize returns the width of a numeric target, or 0 for anything else.
func (t TargetType) BitSize() int {
	switch t {
	case TargetInt8:
		return 8
	case TargetInt16:
		return 16
	case TargetInt32, TargetFloat32:
		return 32
	case TargetInt64, TargetFloat64:
		return 64
	}
	return 0
}

// Zero returns the default value a lenient decoder yields for the target.
func (t TargetType) Zero() any {
	switch t {
	case TargetBoolean:
		return false
	case TargetInt8:
		return int8(0)
	case TargetInt16:
		return int16(0)
	case TargetInt32:
		return int32(0)
	case TargetInt64:
		return int64(0)
	case TargetFloat32:
		return float32(0)
	case TargetFloat64:
		return float64(0)
	case TargetText:
		return ""
	case TargetObject, TargetMap:
		return JSONObject(nil)
	case TargetArray:
		return JSONArray(nil)
	case TargetNullField:
		return NullRecord{}
	}
	return nil
}

// ParseTargetType resolves a category name. Casing and separators are
// ignored, so "NullField", "null_field" and "null-field" are equivalent.
func ParseTargetType(name string) (TargetType, bool) {
	key := normalizeName(name)
	if key == "" {
		return TargetUnknown, false
	}
	for t, n := range targetNames {
		if normalizeName(n) == key {
			return t, true
		}
	}
	if t, ok := targetAliases[key]; ok {
		return t, true
	}
	return TargetUnknown, false
}

// normalizeName folds a name to lower case without word separators.
// strcase splits digit runs into their own words, which is why the
// separators are stripped rather than compared.
func normalizeName(name string) string {
	return strings.ReplaceAll(strcase.ToKebab(strings.TrimSpace(name)), "-", "")
}

// GoName returns the exported Go identifier for the target, e.g. NullField.
func (t TargetType) GoName() string {
	return strcase.ToCamel(t.String())
}

// MarshalText implements encoding.TextMarshaler.
func (t TargetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
