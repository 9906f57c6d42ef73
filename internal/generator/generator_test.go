package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/coercekit/internal/corpus"
	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/formatter"
	"github.com/mcncl/coercekit/internal/models"
)

func TestGenerateCorpus_SmallCorpus(t *testing.T) {
	c := models.Corpus{{
		Target: models.TargetInt32,
		Cases: []models.TestCase{
			{Label: "1. in range", RawInput: `{"id":100}`, Path: "id", Expect: models.Exact(int32(100))},
			{Label: "2. overflow", RawInput: `{"id":21474836475}`, Path: "id", Expect: models.Default()},
		},
	}}

	code, err := NewGenerator().GenerateCorpus(c, "fixtures")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "// Code generated by coercekit export. DO NOT EDIT."))
	assert.Contains(t, code, "package fixtures\n")
	assert.Contains(t, code, "var Integer32 = []Case{")
	assert.Contains(t, code, `{Label: "1. in range", Input: "{\"id\":100}", Path: "id", Expect: "exact", Value: "100"},`)
	assert.Contains(t, code, `{Label: "2. overflow", Input: "{\"id\":21474836475}", Path: "id", Expect: "default", Value: ""},`)
	assert.Contains(t, code, `"integer32": Integer32,`)
}

func TestGenerateCorpus_FullCorpusParses(t *testing.T) {
	code, err := NewGenerator().GenerateCorpus(corpus.All(), "coercion")
	require.NoError(t, err)

	formatted, err := formatter.NewFormatter().Format(code)
	require.NoError(t, err)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixtures.go", formatted, 0)
	require.NoError(t, err)
	assert.Equal(t, "coercion", file.Name.Name)

	declared := map[string]bool{}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, item := range gen.Specs {
			switch s := item.(type) {
			case *ast.ValueSpec:
				for _, n := range s.Names {
					declared[n.Name] = true
				}
			case *ast.TypeSpec:
				declared[s.Name.Name] = true
			}
		}
	}
	for _, want := range []string{"Case", "Categories", "Cases", "notFoundPage", "Boolean", "Integer32", "NullField", "NotJson"} {
		assert.True(t, declared[want], "missing declaration %s", want)
	}

	// The 404 page is emitted once and referenced by name.
	assert.Equal(t, 1, strings.Count(formatted, "<!DOCTYPE"))
	assert.Contains(t, formatted, "Input: notFoundPage")
}

func TestGenerateCorpus_Errors(t *testing.T) {
	tests := []struct {
		name        string
		corpus      models.Corpus
		packageName string
	}{
		{"empty package name", corpus.All(), ""},
		{"keyword package name", corpus.All(), "func"},
		{"invalid package name", corpus.All(), "my-fixtures"},
		{"empty corpus", models.Corpus{}, "fixtures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator().GenerateCorpus(tt.corpus, tt.packageName)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.NewGenerateError("", nil))
		})
	}
}
