package models

// OutcomeKind classifies what a lenient decoder should produce for a case.
type OutcomeKind string

const (
	// OutcomeExact means the field decodes to Outcome.Value.
	OutcomeExact OutcomeKind = "exact"
	// OutcomeDefault means the field decodes to the target's zero value.
	OutcomeDefault OutcomeKind = "default"
	// OutcomePassThrough means the field decodes to the JSON value as given.
	OutcomePassThrough OutcomeKind = "pass-through"
	// OutcomeFailure means the document cannot be deserialized at all.
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the structured expectation attached to a TestCase.
type Outcome struct {
	Kind  OutcomeKind `json:"kind" yaml:"kind"`
	Value any         `json:"value,omitempty" yaml:"value,omitempty"`
}

// Exact builds an OutcomeExact expectation.
func Exact(v any) Outcome { return Outcome{Kind: OutcomeExact, Value: v} }

// Default builds an OutcomeDefault expectation.
func Default() Outcome { return Outcome{Kind: OutcomeDefault} }

// PassThrough builds an OutcomePassThrough expectation.
func PassThrough() Outcome { return Outcome{Kind: OutcomePassThrough} }

// Failure builds an OutcomeFailure expectation.
func Failure() Outcome { return Outcome{Kind: OutcomeFailure} }

// TestCase is a single fixture: a labelled raw document, the path of the
// field under test and the expected lenient outcome.
type TestCase struct {
	Label    string  `json:"label" yaml:"label"`
	RawInput string  `json:"raw_input" yaml:"raw_input"`
	Path     string  `json:"path,omitempty" yaml:"path,omitempty"`
	Expect   Outcome `json:"expect" yaml:"expect"`
}

// Category is one entry of a Corpus.
type Category struct {
	Target TargetType
	Cases  []TestCase
}

// Corpus is the ordered set of fixture categories.
type Corpus []Category

// Lookup returns the cases of target, or false when the corpus has no such category.
func (c Corpus) Lookup(target TargetType) ([]TestCase, bool) {
	for _, cat := range c {
		if cat.Target == target {
			return cat.Cases, true
		}
	}
	return nil, false
}

// Len returns the total number of cases across all categories.
func (c Corpus) Len() int {
	n := 0
	for _, cat := range c {
		n += len(cat.Cases)
	}
	return n
}

// NullRecord is the document shape exercised by the null-field category:
// one field per target type, any of which a server may send as null.
type NullRecord struct {
	Key         string     `json:"key"`
	TestInt     int32      `json:"testInt"`
	TestShort   int16      `json:"testShort"`
	TestByte    int8       `json:"testByte"`
	TestLong    int64      `json:"testLong"`
	TestFloat   float32    `json:"testFloat"`
	TestDouble  float64    `json:"testDouble"`
	TestString  string     `json:"testString"`
	TestBoolean bool       `json:"testBoolean"`
	Maps        JSONObject `json:"maps"`
	DataReq     JSONObject `json:"dataReq"`
	DataReqs    JSONArray  `json:"dataReqs"`
	Persistent  bool       `json:"persistent"`
}
