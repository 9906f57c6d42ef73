package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/models"
)

func typedProbers() []*Typed {
	return []*Typed{StdJSON(), GoJSON(), JSONIter()}
}

func TestTypedDecode(t *testing.T) {
	tests := []struct {
		name   string
		target models.TargetType
		tc     models.TestCase
		want   any
	}{
		{
			name:   "bool field",
			target: models.TargetBoolean,
			tc:     models.TestCase{RawInput: `{"id":100,"status":true}`, Path: "status"},
			want:   true,
		},
		{
			name:   "int8 field",
			target: models.TargetInt8,
			tc:     models.TestCase{RawInput: `{"id":1,"name":"sssss"}`, Path: "id"},
			want:   int8(1),
		},
		{
			name:   "text field",
			target: models.TargetText,
			tc:     models.TestCase{RawInput: `{"id":"sdssdfs"}`, Path: "id"},
			want:   "sdssdfs",
		},
		{
			name:   "field inside a root array",
			target: models.TargetArray,
			tc:     models.TestCase{RawInput: `[{"id":"111","list2":["a","b"]}]`, Path: "0.list2"},
			want:   []any{"a", "b"},
		},
		{
			name:   "empty root array yields default",
			target: models.TargetArray,
			tc:     models.TestCase{RawInput: `[]`, Path: "0.list2"},
			want:   []any(nil),
		},
		{
			name:   "missing field yields default",
			target: models.TargetInt64,
			tc:     models.TestCase{RawInput: `{"name":"x"}`, Path: "id"},
			want:   int64(0),
		},
		{
			name:   "object field",
			target: models.TargetObject,
			tc: models.TestCase{
				RawInput: `{"data2":{"url":"u","intentData":{"k":"v"}}}`,
				Path:     "data2",
			},
			want: &Destination{URL: "u", IntentData: map[string]string{"k": "v"}},
		},
		{
			name:   "whole document record",
			target: models.TargetNullField,
			tc:     models.TestCase{RawInput: `{"key":"k","testInt":null,"persistent":true}`},
			want:   models.NullRecord{Key: "k", Persistent: true},
		},
	}

	for _, p := range typedProbers() {
		for _, tt := range tests {
			t.Run(p.Name()+"/"+tt.name, func(t *testing.T) {
				res := p.Decode(tt.target, tt.tc)
				require.NoError(t, res.Err)
				assert.Equal(t, tt.want, res.Value)
			})
		}
	}
}

func TestTypedDecodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		target models.TargetType
		tc     models.TestCase
	}{
		{"plain text", models.TargetNotJSON, models.TestCase{RawInput: "sfdsfsfs"}},
		{"malformed object", models.TargetText, models.TestCase{RawInput: `{"id":"1111""name":"x"}`, Path: "id"}},
		{"string into int", models.TargetInt32, models.TestCase{RawInput: `{"id":"sdssdfs"}`, Path: "id"}},
		{"object into bool", models.TargetBoolean, models.TestCase{RawInput: `{"status":{"id":"888"}}`, Path: "status"}},
	}

	for _, p := range typedProbers() {
		for _, tt := range tests {
			t.Run(p.Name()+"/"+tt.name, func(t *testing.T) {
				assert.Error(t, p.Decode(tt.target, tt.tc).Err)
			})
		}
	}
}

func TestTypedDecodeBadPath(t *testing.T) {
	res := StdJSON().Decode(models.TargetText, models.TestCase{RawInput: `{}`, Path: "a..b"})
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errors.ErrInvalidPath)
}

func TestTypedDecodeSignedSegmentIsAField(t *testing.T) {
	for _, p := range typedProbers() {
		t.Run(p.Name(), func(t *testing.T) {
			var res Result
			require.NotPanics(t, func() {
				res = p.Decode(models.TargetText, models.TestCase{RawInput: `[{"a":"x"}]`, Path: "-1.a"})
			})
			assert.Error(t, res.Err, "an array cannot fill an object keyed \"-1\"")

			res = p.Decode(models.TargetText, models.TestCase{RawInput: `{"-1":{"a":"x"}}`, Path: "-1.a"})
			require.NoError(t, res.Err)
			assert.Equal(t, "x", res.Value)
		})
	}
}

func TestLenientDecode(t *testing.T) {
	res := Lenient{}.Decode(models.TargetInt32, models.TestCase{RawInput: `{"id":"16"}`, Path: "id"})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(16), res.Value)

	res = Lenient{}.Decode(models.TargetInt32, models.TestCase{RawInput: `{"id":"sdssdfs"}`, Path: "id"})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(0), res.Value)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"lenient", "encoding/json", "go-json", "jsoniter"}, r.Names())

	t.Run("lookup ignores case", func(t *testing.T) {
		p, err := r.Lookup("JSONITER")
		require.NoError(t, err)
		assert.Equal(t, "jsoniter", p.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.Lookup("easyjson")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrNoSuchProbe)
	})

	t.Run("resolve defaults to all", func(t *testing.T) {
		ps, err := r.Resolve(nil)
		require.NoError(t, err)
		assert.Len(t, ps, 4)
	})

	t.Run("resolve keeps order and drops duplicates", func(t *testing.T) {
		ps, err := r.Resolve([]string{"go-json", "lenient", "go-json"})
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, "go-json", ps[0].Name())
		assert.Equal(t, "lenient", ps[1].Name())
	})

	t.Run("resolve fails on unknown", func(t *testing.T) {
		_, err := r.Resolve([]string{"lenient", "nope"})
		assert.Error(t, err)
	})
}
