// Package coerce is a lenient JSON decoder. Type mismatches never fail a
// document; they decode to the target's default instead. Only input that is
// not JSON at all is rejected.
package coerce

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
)

// Decode parses raw, walks path and coerces the value found there into
// target. A missing field decodes to the target's default. The null-field
// target decodes the whole document into a models.NullRecord.
func Decode(raw string, path string, target models.TargetType) (any, error) {
	if target == models.TargetNullField {
		var rec models.NullRecord
		if err := Unmarshal([]byte(raw), &rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	ir, err := parser.ParseString(raw)
	if err != nil {
		return nil, err
	}
	v, ok := parser.Lookup(ir.Root, path)
	if !ok {
		return target.Zero(), nil
	}
	return Value(v, target), nil
}

// Value coerces one parsed JSON value into target.
func Value(v models.JSONValue, target models.TargetType) any {
	switch {
	case target == models.TargetBoolean:
		return toBool(v)
	case target.IsInteger():
		return toInteger(v, target)
	case target.IsFloat():
		return toFloat(v, target)
	case target == models.TargetText:
		return toText(v)
	case target == models.TargetObject, target == models.TargetMap:
		return toObject(v)
	case target == models.TargetArray:
		return toArray(v)
	case target == models.TargetNullField:
		var rec models.NullRecord
		if err := assign(v, &rec); err != nil {
			return models.NullRecord{}
		}
		return rec
	}
	return v
}

func toBool(v models.JSONValue) bool {
	switch val := v.(type) {
	case bool:
		return val
	case json.Number:
		// Overflow yields ±Inf, which is still non-zero.
		f, _ := strconv.ParseFloat(string(val), 64)
		return f != 0
	case string:
		return strings.EqualFold(val, "true")
	}
	return false
}

func toInteger(v models.JSONValue, target models.TargetType) any {
	var n int64
	switch val := v.(type) {
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			n = parseInt(s, target.BitSize())
		}
	case string:
		n = parseInt(val, target.BitSize())
	}
	switch target {
	case models.TargetInt8:
		return int8(n)
	case models.TargetInt16:
		return int16(n)
	case models.TargetInt32:
		return int32(n)
	}
	return n
}

// parseInt returns 0 for anything that is not a base-10 integer within bits.
func parseInt(s string, bits int) int64 {
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0
	}
	return n
}

func toFloat(v models.JSONValue, target models.TargetType) any {
	var f float64
	switch val := v.(type) {
	case json.Number:
		f = parseFloat(string(val), target.BitSize())
	case string:
		f = parseFloat(val, target.BitSize())
	}
	if target == models.TargetFloat32 {
		return float32(f)
	}
	return f
}

// parseFloat rounds to bits directly; rounding through float64 first can
// differ in the last place.
func parseFloat(s string, bits int) float64 {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toText(v models.JSONValue) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case models.JSONObject:
		if len(val) == 0 {
			return ""
		}
		return compact(val)
	case models.JSONArray:
		if len(val) == 0 {
			return ""
		}
		return compact(val)
	}
	return ""
}

// compact renders v as JSON text with sorted keys and no HTML escaping.
func compact(v models.JSONValue) string {
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

func toObject(v models.JSONValue) models.JSONObject {
	switch val := v.(type) {
	case models.JSONObject:
		return val
	case string:
		if obj, ok := unescape(val).(models.JSONObject); ok {
			return obj
		}
	}
	return nil
}

func toArray(v models.JSONValue) models.JSONArray {
	switch val := v.(type) {
	case models.JSONArray:
		return val
	case string:
		if arr, ok := unescape(val).(models.JSONArray); ok {
			return arr
		}
	}
	return nil
}

// unescape runs the second parse pass over a string that may hold a
// JSON document. It returns nil when the string is not one.
func unescape(s string) models.JSONValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil
	}
	ir, err := parser.ParseString(trimmed)
	if err != nil {
		return nil
	}
	return ir.Root
}
