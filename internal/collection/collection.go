// Package collection provides the mutable document sequence hosting the
// filter engine.
//
// A Collection is an ordered, in-memory sequence of documents. Find-style
// operations compile the condition spec once and run a pure per-document
// linear scan; there is no index acceleration. Reads take a snapshot under a
// read lock, so a long scan never blocks writers.
package collection

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/solatis/docsieve/internal/document"
	"github.com/solatis/docsieve/internal/filter"
	"github.com/solatis/docsieve/internal/types"
)

// Collection is an ordered, mutable sequence of documents.
type Collection struct {
	mu   sync.RWMutex
	docs []document.Document
}

// New creates a collection seeded with the given documents.
func New(docs ...document.Document) *Collection {
	c := &Collection{}
	c.docs = append(c.docs, docs...)
	return c
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Append adds documents to the end of the sequence.
func (c *Collection) Append(docs ...document.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, docs...)
}

// Insert places doc at position i, shifting later documents right.
func (c *Collection) Insert(i int, doc document.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i > len(c.docs) {
		return fmt.Errorf("%w: %d", types.ErrIndexOutOfRange, i)
	}
	c.docs = append(c.docs, nil)
	copy(c.docs[i+1:], c.docs[i:])
	c.docs[i] = doc
	return nil
}

// Get returns the document at position i.
func (c *Collection) Get(i int) (document.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.docs) {
		return nil, fmt.Errorf("%w: %d", types.ErrIndexOutOfRange, i)
	}
	return c.docs[i], nil
}

// RemoveAt deletes and returns the document at position i.
func (c *Collection) RemoveAt(i int) (document.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.docs) {
		return nil, fmt.Errorf("%w: %d", types.ErrIndexOutOfRange, i)
	}
	doc := c.docs[i]
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return doc, nil
}

// Find compiles spec once and returns the documents matching it, in
// collection order. An empty spec returns every document.
func (c *Collection) Find(spec any) ([]document.Document, error) {
	query, err := filter.Compile(spec)
	if err != nil {
		return nil, err
	}

	snapshot := c.snapshot()
	var matched []document.Document
	for _, doc := range snapshot {
		if query.Matches(doc) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// FindOne returns the first document matching spec, if any.
func (c *Collection) FindOne(spec any) (document.Document, bool, error) {
	query, err := filter.Compile(spec)
	if err != nil {
		return nil, false, err
	}
	for _, doc := range c.snapshot() {
		if query.Matches(doc) {
			return doc, true, nil
		}
	}
	return nil, false, nil
}

// FindParallel shards the linear scan across a bounded worker pool.
// Evaluation of a compiled query is pure and lock-free, so documents can be
// partitioned freely; results preserve collection order. workers <= 0 uses
// one worker per CPU.
func (c *Collection) FindParallel(spec any, workers int) ([]document.Document, error) {
	query, err := filter.Compile(spec)
	if err != nil {
		return nil, err
	}

	snapshot := c.snapshot()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 1 || len(snapshot) < 2*workers {
		// Pool overhead dominates for small scans.
		var matched []document.Document
		for _, doc := range snapshot {
			if query.Matches(doc) {
				matched = append(matched, doc)
			}
		}
		return matched, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	// Per-document match flags keep result assembly order-stable without
	// cross-worker coordination.
	flags := make([]bool, len(snapshot))
	chunk := (len(snapshot) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(snapshot); start += chunk {
		end := start + chunk
		if end > len(snapshot) {
			end = len(snapshot)
		}

		wg.Add(1)
		lo, hi := start, end
		task := func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				flags[i] = query.Matches(snapshot[i])
			}
		}
		if err := pool.Submit(task); err != nil {
			// Pool refused the task; run the shard inline instead.
			task()
		}
	}
	wg.Wait()

	var matched []document.Document
	for i, ok := range flags {
		if ok {
			matched = append(matched, snapshot[i])
		}
	}
	return matched, nil
}

// snapshot copies the document slice under the read lock so scans never
// observe concurrent mutation.
func (c *Collection) snapshot() []document.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]document.Document, len(c.docs))
	copy(snapshot, c.docs)
	return snapshot
}
