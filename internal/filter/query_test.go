package filter

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/solatis/docsieve/internal/document"
)

func TestMatches_EmptySpecMatchesEverything(t *testing.T) {
	q := mustCompile(t, map[string]any{})

	docs := []document.Document{
		{},
		{"price": float64(1)},
		{"nested": map[string]any{"deep": []any{1, 2}}},
		{"tag": nil},
	}
	for i, doc := range docs {
		if !q.Matches(doc) {
			t.Errorf("doc %d: empty spec must match every document", i)
		}
	}
}

func TestCompile_NilTypedMap(t *testing.T) {
	// A nil map still is a mapping and compiles to match-all.
	var spec map[string]any
	q, err := Compile(spec)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if !q.Matches(document.Document{"x": float64(1)}) {
		t.Errorf("nil mapping spec must match every document")
	}
}

// Property-based test: compiling the same spec twice and evaluating against
// the same document yields the same boolean both times.
func TestCompile_PropertyIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("parse and evaluate are deterministic", prop.ForAll(
		func(price float64, tag string, useOr bool) bool {
			var spec map[string]any
			if useOr {
				spec = map[string]any{
					"$or": []any{
						map[string]any{"price": map[string]any{"$gt": 10}},
						map[string]any{"tag": map[string]any{"$eq": "a"}},
					},
				}
			} else {
				spec = map[string]any{
					"price": map[string]any{"$gt": 10, "$lt": 100},
					"tag":   map[string]any{"$in": []any{"a", "b"}},
				}
			}

			doc := document.Document{"price": price, "tag": tag}

			q1, err1 := Compile(spec)
			q2, err2 := Compile(spec)
			if err1 != nil || err2 != nil {
				return false
			}
			first := q1.Matches(doc)
			return first == q2.Matches(doc) && first == q1.Matches(doc)
		},
		gen.Float64Range(-1000, 1000),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property-based test: evaluation never panics regardless of document shape.
func TestMatches_PropertyNeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	specs := []map[string]any{
		{"price": map[string]any{"$gt": 10}},
		{"price": map[string]any{"$eq": nil}},
		{"labels": map[string]any{"$size": 2}},
		{"name": map[string]any{"$regex": "^a"}},
		{"tag": map[string]any{"$nin": []any{"a"}}},
		{"tag": map[string]any{"$exists": true}},
		{"a.b.c": map[string]any{"$lte": 0}},
	}
	queries := make([]*Query, len(specs))
	for i, spec := range specs {
		q, err := Compile(spec)
		if err != nil {
			t.Fatalf("Compile() error = %v, want nil", err)
		}
		queries[i] = q
	}

	properties.Property("evaluation is total over arbitrary values", prop.ForAll(
		func(shape int, s string, n float64, b bool) bool {
			values := []any{
				s, n, b, nil,
				[]any{s, n},
				map[string]any{"b": map[string]any{"c": n}},
			}
			doc := document.Document{
				"price":  values[shape%len(values)],
				"labels": values[(shape+1)%len(values)],
				"name":   values[(shape+2)%len(values)],
				"tag":    values[(shape+3)%len(values)],
				"a":      values[(shape+4)%len(values)],
			}

			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Matches() panicked: %v", r)
				}
			}()

			for _, q := range queries {
				_ = q.Matches(doc)
			}
			return true
		},
		gen.IntRange(0, 5),
		gen.AlphaString(),
		gen.Float64Range(-100, 100),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property-based test: $neq is the exact negation of $eq for present fields,
// and $nin the exact negation of $in.
func TestMatches_PropertyNegationPairs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("neq mirrors eq, nin mirrors in", prop.ForAll(
		func(value string, operand string) bool {
			doc := document.Document{"tag": value}

			eq := mustCompileProp(map[string]any{"tag": map[string]any{"$eq": operand}})
			neq := mustCompileProp(map[string]any{"tag": map[string]any{"$neq": operand}})
			in := mustCompileProp(map[string]any{"tag": map[string]any{"$in": []any{operand}}})
			nin := mustCompileProp(map[string]any{"tag": map[string]any{"$nin": []any{operand}}})

			return eq.Matches(doc) != neq.Matches(doc) &&
				in.Matches(doc) != nin.Matches(doc)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func mustCompileProp(spec any) *Query {
	q, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return q
}
