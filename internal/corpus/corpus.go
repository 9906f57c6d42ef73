// Package corpus holds the coercion fixtures, grouped by target type.
package corpus

import (
	"fmt"

	"github.com/mcncl/coercekit/internal/models"
)

// fixture is an unnumbered table row; numbered turns rows into TestCases.
type fixture struct {
	label  string
	raw    string
	path   string
	expect models.Outcome
}

func numbered(rows ...fixture) []models.TestCase {
	cases := make([]models.TestCase, len(rows))
	for i, row := range rows {
		cases[i] = models.TestCase{
			Label:    fmt.Sprintf("%d. %s", i+1, row.label),
			RawInput: row.raw,
			Path:     row.path,
			Expect:   row.expect,
		}
	}
	return cases
}

// Get returns the ordered cases for target. The second result is false when
// target names no category; callers should treat that as nothing to show.
func Get(target models.TargetType) ([]models.TestCase, bool) {
	if !target.Valid() {
		return nil, false
	}
	return cloneCases(categories[target]), true
}

// Categories lists the recognized categories in display order.
func Categories() []models.TargetType {
	out := make([]models.TargetType, 0, len(categories))
	for _, t := range models.AllTargets {
		if _, ok := categories[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// All returns every category in display order.
func All() models.Corpus {
	return Select(Categories())
}

// Select returns the named categories in the order given, skipping unknown ones.
func Select(targets []models.TargetType) models.Corpus {
	c := make(models.Corpus, 0, len(targets))
	for _, t := range targets {
		if cases, ok := Get(t); ok {
			c = append(c, models.Category{Target: t, Cases: cases})
		}
	}
	return c
}

func cloneCases(cases []models.TestCase) []models.TestCase {
	out := make([]models.TestCase, len(cases))
	for i, tc := range cases {
		out[i] = tc
		out[i].Expect.Value = cloneValue(tc.Expect.Value)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case models.JSONObject:
		if val == nil {
			return val
		}
		obj := make(models.JSONObject, len(val))
		for k, item := range val {
			obj[k] = cloneValue(item)
		}
		return obj
	case models.JSONArray:
		if val == nil {
			return val
		}
		arr := make(models.JSONArray, len(val))
		for i, item := range val {
			arr[i] = cloneValue(item)
		}
		return arr
	case models.NullRecord:
		val.Maps, _ = cloneValue(val.Maps).(models.JSONObject)
		val.DataReq, _ = cloneValue(val.DataReq).(models.JSONObject)
		val.DataReqs, _ = cloneValue(val.DataReqs).(models.JSONArray)
		return val
	default:
		return v
	}
}
