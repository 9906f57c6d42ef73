package analyzer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/coercekit/internal/corpus"
	"github.com/mcncl/coercekit/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input models.JSONValue
		want  InputKind
	}{
		{"null", nil, KindNull},
		{"bool", true, KindBoolean},
		{"integer", json.Number("21474836475"), KindInteger},
		{"negative integer", json.Number("-1"), KindInteger},
		{"fraction", json.Number("1.6"), KindFloat},
		{"exponent", json.Number("1e3"), KindFloat},
		{"empty string", "", KindEmptyString},
		{"quoted boolean", "TRUE", KindBooleanString},
		{"quoted integer", "16", KindIntegerString},
		{"quoted float", "16.33", KindFloatString},
		{"leading zero is not a number", "0016", KindString},
		{"escaped object", `{"id":"888"}`, KindEscapedObject},
		{"escaped array", `[{"id":"888"}]`, KindEscapedArray},
		{"broken escaped object", `{"id":`, KindString},
		{"whitespace", "   ", KindString},
		{"plain string", "sdssdfs", KindString},
		{"object", models.JSONObject{}, KindObject},
		{"array", models.JSONArray{}, KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestAnalyze(t *testing.T) {
	assert.Equal(t, KindNotJSON, Analyze(models.TestCase{RawInput: "sfdsfsfs"}))
	assert.Equal(t, KindMissing, Analyze(models.TestCase{RawInput: `{"id":1}`, Path: "status"}))
	assert.Equal(t, KindEscapedArray, Analyze(models.TestCase{RawInput: `[{"list3":"[1]"}]`, Path: "0.list3"}))
	assert.Equal(t, KindObject, Analyze(models.TestCase{RawInput: `{"key":"k"}`}))
}

// givenKinds maps the "given ..." phrase of fixture labels to the kind of
// JSON the fixture must actually contain.
var givenKinds = map[string]InputKind{
	"a boolean":                          KindBoolean,
	"a float":                            KindFloat,
	"an integer":                         KindInteger,
	"an in-range integer":                KindInteger,
	"an integer outside its range":       KindInteger,
	"a number":                           KindInteger,
	"an empty string":                    KindEmptyString,
	"a string":                           KindString,
	"a non-JSON string":                  KindString,
	"a quoted boolean":                   KindBooleanString,
	"a quoted integer":                   KindIntegerString,
	"a quoted in-range integer":          KindIntegerString,
	"a quoted integer outside its range": KindIntegerString,
	"a quoted number":                    KindIntegerString,
	"a quoted float":                     KindFloatString,
	"an object":                          KindObject,
	"an array":                           KindArray,
	"an array of string arrays":          KindArray,
	"an array of object arrays":          KindArray,
	"an escaped object":                  KindEscapedObject,
	"an escaped array":                   KindEscapedArray,
	"an escaped array of string arrays":  KindEscapedArray,
	"an escaped array of object arrays":  KindEscapedArray,
}

func TestFixtureLabelsMatchTheirInputs(t *testing.T) {
	checked := 0
	for _, cat := range corpus.All() {
		for _, tc := range cat.Cases {
			_, rest, ok := strings.Cut(tc.Label, " given ")
			if !ok {
				continue
			}
			phrase, _, _ := strings.Cut(rest, ",")
			want, known := givenKinds[phrase]
			require.True(t, known, "unmapped phrase %q in %s", phrase, tc.Label)
			assert.Equal(t, want, Analyze(tc), "%s: %s", cat.Target, tc.Label)
			checked++
		}
	}
	assert.Positive(t, checked)
}
