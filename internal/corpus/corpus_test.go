package corpus

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/coercekit/internal/models"
)

func TestEveryCategoryIsNonEmpty(t *testing.T) {
	require.Len(t, Categories(), len(models.AllTargets))
	for _, target := range Categories() {
		cases, ok := Get(target)
		require.True(t, ok, target.String())
		assert.NotEmpty(t, cases, target.String())
	}
}

func TestCategorySizes(t *testing.T) {
	want := map[models.TargetType]int{
		models.TargetBoolean:   15,
		models.TargetInt8:      15,
		models.TargetInt16:     15,
		models.TargetInt32:     15,
		models.TargetInt64:     13,
		models.TargetFloat32:   13,
		models.TargetFloat64:   13,
		models.TargetText:      13,
		models.TargetObject:    13,
		models.TargetArray:     17,
		models.TargetMap:       13,
		models.TargetNullField: 3,
		models.TargetNotJSON:   3,
	}
	for target, n := range want {
		cases, ok := Get(target)
		require.True(t, ok)
		assert.Len(t, cases, n, target.String())
	}
}

func TestCategoriesEndWithInvalidInputs(t *testing.T) {
	invalid := InvalidInputs()
	for _, target := range Categories() {
		if target == models.TargetNullField {
			continue
		}
		t.Run(target.String(), func(t *testing.T) {
			cases, _ := Get(target)
			require.GreaterOrEqual(t, len(cases), 3)
			n := len(cases) - 3
			for i, raw := range invalid {
				tc := cases[n+i]
				assert.Equal(t, raw, tc.RawInput)
				assert.True(t, strings.HasPrefix(tc.Label, fmt.Sprintf("%d. ", n+i+1)), tc.Label)
				assert.Equal(t, models.OutcomeFailure, tc.Expect.Kind)
				assert.Empty(t, tc.Path)
			}
		})
	}
}

func TestLabelsAreNumbered(t *testing.T) {
	for _, cat := range All() {
		for i, tc := range cat.Cases {
			assert.True(t, strings.HasPrefix(tc.Label, fmt.Sprintf("%d. ", i+1)), "%s: %s", cat.Target, tc.Label)
		}
	}
}

func TestValidInputsParse(t *testing.T) {
	for _, cat := range All() {
		for _, tc := range cat.Cases {
			valid := json.Valid([]byte(tc.RawInput))
			if tc.Expect.Kind == models.OutcomeFailure {
				assert.False(t, valid, "%s: %s should not parse", cat.Target, tc.Label)
			} else {
				assert.True(t, valid, "%s: %s should parse", cat.Target, tc.Label)
			}
		}
	}
}

func TestNotJSONIsOnlyInvalidInputs(t *testing.T) {
	cases, ok := Get(models.TargetNotJSON)
	require.True(t, ok)
	require.Len(t, cases, 3)
	for i, raw := range InvalidInputs() {
		assert.Equal(t, raw, cases[i].RawInput)
		assert.True(t, strings.HasPrefix(cases[i].Label, fmt.Sprintf("%d. ", i+1)))
	}
}

func TestInteger32Boundaries(t *testing.T) {
	cases, ok := Get(models.TargetInt32)
	require.True(t, ok)
	require.Len(t, cases, 15)
	assert.Equal(t, `{"id":21474836475,"name":"sssss"}`, cases[2].RawInput)
	assert.Equal(t, `{"id":"1111""name":"我不是一个json"}`, cases[14].RawInput)
	assert.Equal(t, models.Exact(int32(100)), cases[0].Expect)
}

func TestNullFieldHasNoInvalidInputs(t *testing.T) {
	cases, ok := Get(models.TargetNullField)
	require.True(t, ok)
	require.Len(t, cases, 3)
	for _, tc := range cases {
		assert.NotContains(t, InvalidInputs(), tc.RawInput)
		assert.Equal(t, models.OutcomeExact, tc.Expect.Kind)
		assert.IsType(t, models.NullRecord{}, tc.Expect.Value)
	}
}

func TestUnknownSelectorIsAbsent(t *testing.T) {
	for _, target := range []models.TargetType{models.TargetUnknown, models.TargetType(99)} {
		cases, ok := Get(target)
		assert.False(t, ok)
		assert.Nil(t, cases)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	first, _ := Get(models.TargetArray)
	first[0].Label = "changed"
	first[2].Expect.Value.(models.JSONArray)[0] = "changed"

	second, _ := Get(models.TargetArray)
	assert.NotEqual(t, "changed", second[0].Label)
	assert.Equal(t, models.JSONObject{"cc": "1111"}, second[2].Expect.Value.(models.JSONArray)[0])
}

func TestSelect(t *testing.T) {
	c := Select([]models.TargetType{models.TargetText, models.TargetUnknown, models.TargetBoolean})
	require.Len(t, c, 2)
	assert.Equal(t, models.TargetText, c[0].Target)
	assert.Equal(t, models.TargetBoolean, c[1].Target)

	all := All()
	assert.Equal(t, Categories()[0], all[0].Target)
}

func TestAppendInvalid(t *testing.T) {
	t.Run("does not modify its input", func(t *testing.T) {
		in := make([]models.TestCase, 2, 10)
		in[0] = models.TestCase{Label: "1. a"}
		in[1] = models.TestCase{Label: "2. b"}

		out := AppendInvalid(in)
		require.Len(t, out, 5)
		assert.Len(t, in, 2)
		assert.Equal(t, "1. a", out[0].Label)
		assert.True(t, strings.HasPrefix(out[2].Label, "3. "))
		assert.True(t, strings.HasPrefix(out[4].Label, "5. "))

		extended := in[:3]
		assert.Empty(t, extended[2].RawInput, "spare capacity must stay untouched")
	})

	t.Run("empty input", func(t *testing.T) {
		out := AppendInvalid(nil)
		require.Len(t, out, 3)
		assert.Equal(t, PlainText, out[1].RawInput)
		assert.Equal(t, MalformedJSON, out[2].RawInput)
	})
}

func TestNotFoundPage(t *testing.T) {
	page := NotFoundPage()
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>404</title>")
	assert.False(t, json.Valid([]byte(page)))
}
