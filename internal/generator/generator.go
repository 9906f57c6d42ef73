package generator

import (
	"bytes"
	"fmt"
	"go/token"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/mcncl/coercekit/internal/corpus"
	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/models"
)

// Generator renders a corpus as Go source so other modules can vendor the
// fixtures into their own tests.
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateCorpus emits a Go file declaring one []Case variable per
// category, plus Categories and Cases indexes over them.
func (g *Generator) GenerateCorpus(c models.Corpus, packageName string) (string, error) {
	if !token.IsIdentifier(packageName) || token.IsKeyword(packageName) {
		return "", errors.NewGenerateError(fmt.Sprintf("invalid package name %q", packageName), nil)
	}
	if len(c) == 0 {
		return "", errors.NewGenerateError("nothing to export", errors.ErrNoSuchCategory)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by coercekit export. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", packageName)

	buf.WriteString("// Case is one coercion fixture. Expect is exact, default, pass-through or\n")
	buf.WriteString("// failure; Value holds the JSON of the expected value for exact cases.\n")
	buf.WriteString("type Case struct {\n\tLabel string\n\tInput string\n\tPath string\n\tExpect string\n\tValue string\n}\n\n")

	buf.WriteString("// notFoundPage is the HTML body a misrouted request returns.\n")
	fmt.Fprintf(&buf, "const notFoundPage = %s\n\n", strconv.Quote(corpus.NotFoundPage()))

	buf.WriteString("// Categories lists the fixture categories in display order.\n")
	buf.WriteString("var Categories = []string{\n")
	for _, cat := range c {
		fmt.Fprintf(&buf, "\t%q,\n", cat.Target.String())
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// Cases indexes the fixtures by category name.\n")
	buf.WriteString("var Cases = map[string][]Case{\n")
	for _, cat := range c {
		fmt.Fprintf(&buf, "\t%q: %s,\n", cat.Target.String(), cat.Target.GoName())
	}
	buf.WriteString("}\n")

	for _, cat := range c {
		if err := writeCategory(&buf, cat); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func writeCategory(buf *bytes.Buffer, cat models.Category) error {
	name := cat.Target.GoName()
	fmt.Fprintf(buf, "\n// %s holds the %s fixtures.\n", name, cat.Target)
	fmt.Fprintf(buf, "var %s = []Case{\n", name)
	for _, tc := range cat.Cases {
		value, err := expectedValue(tc.Expect)
		if err != nil {
			return errors.NewGenerateError(fmt.Sprintf("cannot encode expected value of %q", tc.Label), err)
		}
		fmt.Fprintf(buf, "\t{Label: %s, Input: %s, Path: %q, Expect: %q, Value: %s},\n",
			strconv.Quote(tc.Label), input(tc.RawInput), tc.Path, string(tc.Expect.Kind), value)
	}
	buf.WriteString("}\n")
	return nil
}

func input(raw string) string {
	if raw == corpus.NotFoundPage() {
		return "notFoundPage"
	}
	return strconv.Quote(raw)
}

func expectedValue(o models.Outcome) (string, error) {
	if o.Kind != models.OutcomeExact {
		return `""`, nil
	}
	data, err := json.Marshal(o.Value)
	if err != nil {
		return "", err
	}
	return strconv.Quote(string(data)), nil
}
