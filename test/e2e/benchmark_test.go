package e2e_test

import (
	"context"
	"testing"

	"github.com/mcncl/coercekit/internal/corpus"
	"github.com/mcncl/coercekit/internal/harness"
	"github.com/mcncl/coercekit/internal/probe"
)

// BenchmarkProbes measures one pass of the full corpus per decoder.
func BenchmarkProbes(b *testing.B) {
	c := corpus.All()
	for _, p := range probe.DefaultRegistry().All() {
		b.Run(p.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				for _, cat := range c {
					for _, tc := range cat.Cases {
						_ = p.Decode(cat.Target, tc)
					}
				}
			}
		})
	}
}

// BenchmarkHarness measures a full run including oracle classification.
func BenchmarkHarness(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}
	c := corpus.All()
	probers := probe.DefaultRegistry().All()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := harness.Run(context.Background(), c, probers, harness.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
