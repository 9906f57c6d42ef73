package corpus

import (
	_ "embed"
	"fmt"

	"github.com/mcncl/coercekit/internal/models"
)

//go:embed fixtures/notfound.html
var notFoundPage string

// The three documents appended to every category. None of them is JSON.
const (
	PlainText     = "sfdsfsfs"
	MalformedJSON = `{"id":"1111""name":"我不是一个json"}`
)

// NotFoundPage returns the HTML error page served in place of a JSON body.
func NotFoundPage() string {
	return notFoundPage
}

// InvalidInputs returns the raw inputs AppendInvalid adds, in order.
func InvalidInputs() []string {
	return []string{notFoundPage, PlainText, MalformedJSON}
}

var invalidLabels = []string{
	"markup (an HTML error page) instead of JSON, deserialization fails",
	"a bare string instead of JSON, deserialization fails",
	"syntactically broken JSON, deserialization fails",
}

// AppendInvalid returns a new slice holding cases followed by the three
// non-JSON documents. Their labels continue the numbering at len(cases)+1.
func AppendInvalid(cases []models.TestCase) []models.TestCase {
	out := make([]models.TestCase, 0, len(cases)+len(invalidLabels))
	out = append(out, cases...)
	for i, raw := range InvalidInputs() {
		out = append(out, models.TestCase{
			Label:    fmt.Sprintf("%d. %s", len(cases)+i+1, invalidLabels[i]),
			RawInput: raw,
			Expect:   models.Failure(),
		})
	}
	return out
}
