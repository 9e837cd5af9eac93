package collection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/solatis/docsieve/internal/document"
	"github.com/solatis/docsieve/internal/types"
)

func TestCollection_Mutation(t *testing.T) {
	c := New(
		document.Document{"n": float64(1)},
		document.Document{"n": float64(3)},
	)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	if err := c.Insert(1, document.Document{"n": float64(2)}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	c.Append(document.Document{"n": float64(4)})

	for i, want := range []float64{1, 2, 3, 4} {
		doc, err := c.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		if doc["n"] != want {
			t.Errorf("Get(%d) n = %v, want %v", i, doc["n"], want)
		}
	}

	removed, err := c.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt() error = %v", err)
	}
	if removed["n"] != float64(2) {
		t.Errorf("RemoveAt(1) n = %v, want 2", removed["n"])
	}
	if c.Len() != 3 {
		t.Errorf("Len() after remove = %d, want 3", c.Len())
	}
}

func TestCollection_IndexOutOfRange(t *testing.T) {
	c := New(document.Document{"n": float64(1)})

	if _, err := c.Get(5); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("Get(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := c.Get(-1); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("Get(-1) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := c.RemoveAt(1); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(1) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := c.Insert(3, document.Document{}); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("Insert(3) error = %v, want ErrIndexOutOfRange", err)
	}

	// Insert at Len() appends.
	if err := c.Insert(1, document.Document{"n": float64(2)}); err != nil {
		t.Errorf("Insert(Len()) error = %v, want nil", err)
	}
}

func TestCollection_Find(t *testing.T) {
	c := New(
		document.Document{"price": float64(5), "tag": "a"},
		document.Document{"price": float64(50), "tag": "b"},
		document.Document{"price": float64(500), "tag": "a"},
	)

	matched, err := c.Find(map[string]any{"price": map[string]any{"$gt": 10}})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("Find() matched %d documents, want 2", len(matched))
	}
	// Collection order is preserved.
	if matched[0]["price"] != float64(50) || matched[1]["price"] != float64(500) {
		t.Errorf("Find() order = %v, %v", matched[0]["price"], matched[1]["price"])
	}
}

func TestCollection_FindEmptySpec(t *testing.T) {
	c := New(
		document.Document{"n": float64(1)},
		document.Document{"n": float64(2)},
	)

	matched, err := c.Find(map[string]any{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(matched) != c.Len() {
		t.Errorf("Find({}) matched %d documents, want %d", len(matched), c.Len())
	}
}

func TestCollection_FindCompileError(t *testing.T) {
	c := New(document.Document{"n": float64(1)})

	if _, err := c.Find(map[string]any{"n": map[string]any{"$frob": 1}}); !errors.Is(err, types.ErrUnsupportedOperator) {
		t.Errorf("Find() error = %v, want ErrUnsupportedOperator", err)
	}
	if _, _, err := c.FindOne(map[string]any{"n": 1}); !errors.Is(err, types.ErrMalformedCondition) {
		t.Errorf("FindOne() error = %v, want ErrMalformedCondition", err)
	}
	if _, err := c.FindParallel(42, 4); !errors.Is(err, types.ErrMalformedCondition) {
		t.Errorf("FindParallel() error = %v, want ErrMalformedCondition", err)
	}
}

func TestCollection_FindOne(t *testing.T) {
	c := New(
		document.Document{"tag": "a", "n": float64(1)},
		document.Document{"tag": "b", "n": float64(2)},
		document.Document{"tag": "b", "n": float64(3)},
	)

	doc, found, err := c.FindOne(map[string]any{"tag": map[string]any{"$eq": "b"}})
	if err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	if !found {
		t.Fatalf("FindOne() found = false, want true")
	}
	if doc["n"] != float64(2) {
		t.Errorf("FindOne() n = %v, want 2 (first match in order)", doc["n"])
	}

	_, found, err = c.FindOne(map[string]any{"tag": map[string]any{"$eq": "z"}})
	if err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	if found {
		t.Errorf("FindOne() found = true, want false")
	}
}

func TestCollection_FindParallelEquivalence(t *testing.T) {
	c := New()
	for i := 0; i < 500; i++ {
		c.Append(document.Document{
			"n":   float64(i),
			"tag": fmt.Sprintf("t%d", i%7),
		})
	}

	spec := map[string]any{
		"$or": []any{
			map[string]any{"n": map[string]any{"$lt": 50}},
			map[string]any{"tag": map[string]any{"$eq": "t3"}},
		},
	}

	sequential, err := c.Find(spec)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	for _, workers := range []int{0, 1, 4, 64} {
		parallel, err := c.FindParallel(spec, workers)
		if err != nil {
			t.Fatalf("FindParallel(workers=%d) error = %v", workers, err)
		}
		if len(parallel) != len(sequential) {
			t.Fatalf("FindParallel(workers=%d) matched %d, want %d", workers, len(parallel), len(sequential))
		}
		for i := range sequential {
			if parallel[i]["n"] != sequential[i]["n"] {
				t.Errorf("workers=%d: result %d = %v, want %v", workers, i, parallel[i]["n"], sequential[i]["n"])
			}
		}
	}
}
