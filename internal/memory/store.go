package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/philippgille/chromem-go"
)

// Embedder resolves text to an embedding vector. Forward-reference
// interface onto internal/llm's createEmbedding collaborator contract
// (spec §4.3); kept narrow so this package never imports internal/llm.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

const collectionName = "events"

// Store is the append-only event-fragment memory of spec §4.10.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// New builds an empty Store whose fragments are embedded through embedder.
func New(embedder Embedder) (*Store, error) {
	db := chromem.NewDB()
	embedFunc := chromem.EmbeddingFunc(func(ctx context.Context, text string) ([]float32, error) {
		return embedder.CreateEmbedding(ctx, text)
	})

	collection, err := db.CreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("memory: create collection: %w", err)
	}
	return &Store{db: db, collection: collection, embedFunc: embedFunc}, nil
}

// Open builds a Store and, if path names an existing snapshot file,
// restores it immediately. A missing file is not an error — it means
// this is a fresh world with nothing to recall yet.
func Open(embedder Embedder, path string) (*Store, error) {
	s, err := New(embedder)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return s, nil
	} else if statErr != nil {
		return nil, fmt.Errorf("memory: stat snapshot %s: %w", path, statErr)
	}
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Remember appends a text fragment with optional metadata (spec §4.10
// "remember(text, metadata)"). id is caller-supplied so re-remembering the
// same fragment id overwrites rather than duplicates it.
func (s *Store) Remember(ctx context.Context, id, text string, metadata map[string]string) error {
	err := s.collection.AddDocument(ctx, chromem.Document{
		ID:       id,
		Content:  text,
		Metadata: metadata,
	})
	if err != nil {
		return fmt.Errorf("memory: remember %s: %w", id, err)
	}
	return nil
}

// Recall returns the top-k texts by cosine similarity to query (spec
// §4.10 "recall(query, k) -> top-k texts"). k is capped at the current
// size so querying more than exists doesn't error.
func (s *Store) Recall(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("memory: recall %q: %w", query, err)
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Content
	}
	return texts, nil
}

// ClearAll drops every remembered fragment (spec §4.10 "clearAll"). The
// collection is dropped and recreated rather than relying on an
// empty-filter delete-all, so the semantics are unambiguous.
func (s *Store) ClearAll() error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("memory: clear all: %w", err)
	}
	collection, err := s.db.CreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("memory: recreate collection after clear: %w", err)
	}
	s.collection = collection
	return nil
}

// Size returns the number of remembered fragments (spec §4.10 "size").
func (s *Store) Size() int {
	return s.collection.Count()
}

// Snapshot writes the full store to path as a flat file (spec §4.10
// "Persistence is a flat file snapshot").
func (s *Store) Snapshot(path string) error {
	if err := s.db.ExportToFile(path, false, ""); err != nil {
		return fmt.Errorf("memory: snapshot to %s: %w", path, err)
	}
	return nil
}

// Load replaces the store's contents from a previously written snapshot.
// Reload is idempotent (spec §4.10): chromem-go keys documents by id, so
// importing the same snapshot twice leaves the store in the same state
// rather than duplicating fragments.
func (s *Store) Load(path string) error {
	if err := s.db.ImportFromFile(path, ""); err != nil {
		return fmt.Errorf("memory: load %s: %w", path, err)
	}
	collection := s.db.GetCollection(collectionName, s.embedFunc)
	if collection == nil {
		return fmt.Errorf("memory: load %s: collection %s missing after import", path, collectionName)
	}
	s.collection = collection
	return nil
}
