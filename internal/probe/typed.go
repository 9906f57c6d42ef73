package probe

import (
	stdjson "encoding/json"
	"fmt"
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
)

// UnmarshalFunc has the signature shared by encoding/json and its
// drop-in replacements.
type UnmarshalFunc func(data []byte, v any) error

// Typed decodes each case into a struct shaped after the case's path, the
// way application code declares its response types.
type Typed struct {
	name      string
	unmarshal UnmarshalFunc
}

// NewTyped returns a prober named name that decodes with unmarshal.
func NewTyped(name string, unmarshal UnmarshalFunc) *Typed {
	return &Typed{name: name, unmarshal: unmarshal}
}

// StdJSON probes encoding/json.
func StdJSON() *Typed { return NewTyped("encoding/json", stdjson.Unmarshal) }

// GoJSON probes github.com/goccy/go-json.
func GoJSON() *Typed { return NewTyped("go-json", gojson.Unmarshal) }

// JSONIter probes github.com/json-iterator/go in its standard-library
// compatible configuration.
func JSONIter() *Typed {
	return NewTyped("jsoniter", jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal)
}

// Name implements Prober.
func (p *Typed) Name() string { return p.name }

// Decode implements Prober.
func (p *Typed) Decode(target models.TargetType, tc models.TestCase) Result {
	dst, err := newDestination(target, tc.Path)
	if err != nil {
		return Result{Err: err}
	}
	if err := p.unmarshal([]byte(tc.RawInput), dst.holder.Interface()); err != nil {
		return Result{Err: err}
	}
	return Result{Value: dst.value()}
}

// Destination is the Go shape an application would declare for the object
// and map categories' nested documents.
type Destination struct {
	URL        string            `json:"url"`
	IntentData map[string]string `json:"intentData"`
}

// goType maps a target onto the field type a typed decoder fills.
func goType(target models.TargetType) reflect.Type {
	switch target {
	case models.TargetBoolean:
		return reflect.TypeOf(false)
	case models.TargetInt8:
		return reflect.TypeOf(int8(0))
	case models.TargetInt16:
		return reflect.TypeOf(int16(0))
	case models.TargetInt32:
		return reflect.TypeOf(int32(0))
	case models.TargetInt64:
		return reflect.TypeOf(int64(0))
	case models.TargetFloat32:
		return reflect.TypeOf(float32(0))
	case models.TargetFloat64:
		return reflect.TypeOf(float64(0))
	case models.TargetText:
		return reflect.TypeOf("")
	case models.TargetObject:
		return reflect.TypeOf((*Destination)(nil))
	case models.TargetMap:
		return reflect.TypeOf(map[string]any(nil))
	case models.TargetArray:
		return reflect.TypeOf([]any(nil))
	case models.TargetNullField:
		return reflect.TypeOf(models.NullRecord{})
	}
	return reflect.TypeOf((*any)(nil)).Elem()
}

type destination struct {
	holder   reflect.Value
	segments []string
	leaf     reflect.Type
}

// newDestination wraps the target type in one single-field struct per
// path segment, or one slice per numeric segment. "status" becomes
// struct{ V bool `json:"status"` } and "0.list3" a slice of such structs.
func newDestination(target models.TargetType, path string) (*destination, error) {
	leaf := goType(target)
	var segments []string
	if path != "" {
		segments = strings.Split(path, ".")
	}
	t := leaf
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" {
			return nil, errors.NewProbeError(fmt.Sprintf("empty segment in path %q", path), errors.ErrInvalidPath)
		}
		if _, ok := parser.ArrayIndex(seg); ok {
			t = reflect.SliceOf(t)
			continue
		}
		t = reflect.StructOf([]reflect.StructField{{
			Name: "V",
			Type: t,
			Tag:  reflect.StructTag(`json:"` + seg + `"`),
		}})
	}
	return &destination{holder: reflect.New(t), segments: segments, leaf: leaf}, nil
}

// value walks the decoded holder back down to the field under test. An
// index past the end of a decoded slice yields the zero value.
func (d *destination) value() any {
	v := d.holder.Elem()
	for _, seg := range d.segments {
		if v.Kind() == reflect.Slice {
			idx, _ := parser.ArrayIndex(seg)
			if idx >= v.Len() {
				return reflect.Zero(d.leaf).Interface()
			}
			v = v.Index(idx)
			continue
		}
		v = v.Field(0)
	}
	return v.Interface()
}
