// Package harness runs a corpus through a set of probers and collects how
// each one compares with the expected outcomes.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mcncl/coercekit/internal/analyzer"
	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/oracle"
	"github.com/mcncl/coercekit/internal/probe"
)

// Options tunes a run.
type Options struct {
	// Logger receives per-case debug records. Nil discards them.
	Logger *slog.Logger
	// Now is the clock used for timestamps. Nil uses time.Now.
	Now func() time.Time
}

// CaseResult is the outcome of one case under one prober.
type CaseResult struct {
	Category string             `json:"category" yaml:"category"`
	Index    int                `json:"index" yaml:"index"`
	Label    string             `json:"label" yaml:"label"`
	Given    string             `json:"given" yaml:"given"`
	Probe    string             `json:"probe" yaml:"probe"`
	Expected models.OutcomeKind `json:"expected" yaml:"expected"`
	Observed models.OutcomeKind `json:"observed" yaml:"observed"`
	Passed   bool               `json:"passed" yaml:"passed"`
	Value    string             `json:"value,omitempty" yaml:"value,omitempty"`
	Error    string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary totals the results of one prober.
type Summary struct {
	Probe    string `json:"probe" yaml:"probe"`
	Total    int    `json:"total" yaml:"total"`
	Agreed   int    `json:"agreed" yaml:"agreed"`
	Deviated int    `json:"deviated" yaml:"deviated"`
}

// Report is the result of a run.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Results   []CaseResult  `json:"results" yaml:"results"`
	Summaries []Summary     `json:"summaries" yaml:"summaries"`
}

// ReferenceFailures returns the cases the lenient reference got wrong.
func (r *Report) ReferenceFailures() []CaseResult {
	var out []CaseResult
	for _, res := range r.Results {
		if res.Probe == probe.ReferenceName && !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Run evaluates every case of c under every prober. Cancelling ctx stops
// the run between cases; the partial report is returned with ctx's error.
func Run(ctx context.Context, c models.Corpus, probers []probe.Prober, opts Options) (*Report, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rep := &Report{
		RunID:     uuid.NewString(),
		StartedAt: now(),
		Results:   make([]CaseResult, 0, c.Len()*len(probers)),
	}
	summaries := make(map[string]*Summary, len(probers))
	for _, p := range probers {
		s := &Summary{Probe: p.Name()}
		summaries[p.Name()] = s
	}

	logger.Debug("run started", "run_id", rep.RunID, "cases", c.Len(), "probes", len(probers))

	var runErr error
loop:
	for _, cat := range c {
		for i, tc := range cat.Cases {
			if err := ctx.Err(); err != nil {
				runErr = fmt.Errorf("run %s interrupted: %w", rep.RunID, err)
				break loop
			}
			given := analyzer.Analyze(tc)
			for _, p := range probers {
				res := evaluate(cat.Target, i+1, tc, p)
				res.Given = string(given)
				rep.Results = append(rep.Results, res)

				s := summaries[p.Name()]
				s.Total++
				if res.Passed {
					s.Agreed++
				} else {
					s.Deviated++
				}
				logger.Debug("case evaluated",
					"category", res.Category,
					"index", res.Index,
					"probe", res.Probe,
					"expected", res.Expected,
					"observed", res.Observed,
					"passed", res.Passed,
				)
			}
		}
	}

	for _, p := range probers {
		rep.Summaries = append(rep.Summaries, *summaries[p.Name()])
	}
	rep.Duration = now().Sub(rep.StartedAt)

	if n := len(rep.ReferenceFailures()); n > 0 {
		logger.Warn("reference decoder deviates from expected outcomes", "run_id", rep.RunID, "failures", n)
	}
	logger.Info("run finished", "run_id", rep.RunID, "results", len(rep.Results), "duration", rep.Duration)
	return rep, runErr
}

func evaluate(target models.TargetType, index int, tc models.TestCase, p probe.Prober) CaseResult {
	res := p.Decode(target, tc)
	out := CaseResult{
		Category: target.String(),
		Index:    index,
		Label:    tc.Label,
		Probe:    p.Name(),
		Expected: tc.Expect.Kind,
		Observed: oracle.Classify(target, tc, res),
		Passed:   oracle.Check(target, tc, res) == nil,
	}
	if res.Err != nil {
		out.Error = firstLine(res.Err.Error())
	} else {
		out.Value = render(res.Value)
	}
	return out
}

// render writes v as JSON text, falling back to Go syntax for values that
// cannot be encoded.
func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
