package vectordb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"docchat/internal/embeddings"
)

const (
	collectionName = "docchat"
	storeFileName  = "docchat.gob.gz"
)

// ErrNotLoaded is returned by write operations that require a live index.
var ErrNotLoaded = errors.New("vector index not loaded")

// Status describes the lifecycle state of the index.
type Status string

const (
	StatusNotInitialized Status = "not_initialized"
	StatusInitialized    Status = "initialized"
	StatusError          Status = "error"
)

// Info is a point-in-time summary of the index.
type Info struct {
	Status         Status `json:"status"`
	DocumentCount  int    `json:"document_count,omitempty"`
	EmbeddingModel string `json:"embedding_model"`
	Path           string `json:"path"`
}

// Index owns the persisted (chunk, embedding) store. It wraps a chromem
// collection persisted as a single gob file under the configured directory.
//
// Writes (Create, Add, Delete, Load) take the write lock; Search and Info
// only the read lock, so searches can run concurrently with each other but
// never with a write.
type Index struct {
	mu        sync.RWMutex
	db        *chromem.DB
	col       *chromem.Collection
	embedder  embeddings.Embedder
	embedFunc chromem.EmbeddingFunc
	path      string
	live      bool
}

// New creates an Index handle over the store directory. The index starts
// absent; call Load to open a persisted store or Create to build one.
func New(embedder embeddings.Embedder, path string) (*Index, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{
		db:        db,
		col:       col,
		embedder:  embedder,
		embedFunc: ef,
		path:      path,
	}, nil
}

func (ix *Index) storeFile() string {
	return filepath.Join(ix.path, storeFileName)
}

// Load opens a previously persisted store. It returns false — not an
// error — when nothing has been persisted at the configured path yet.
func (ix *Index) Load(ctx context.Context) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, err := os.Stat(ix.storeFile()); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("checking store at %s: %w", ix.storeFile(), err)
	}

	if err := ix.db.ImportFromFile(ix.storeFile(), ""); err != nil {
		return false, fmt.Errorf("importing store from %s: %w", ix.storeFile(), err)
	}

	// Re-acquire the collection reference after import.
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return false, fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.col = col
	ix.live = true
	return true, nil
}

// Create embeds the given documents and persists a fresh store. An
// embedding-service failure propagates: a knowledge base cannot be built
// without embeddings.
func (ix *Index) Create(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return fmt.Errorf("create requires at least one document")
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.addLocked(ctx, docs); err != nil {
		return err
	}
	ix.live = true
	return ix.persistLocked()
}

// Add embeds and appends documents to a live index. It fails with
// ErrNotLoaded when neither Load nor Create has succeeded.
func (ix *Index) Add(ctx context.Context, docs []Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !ix.live {
		return ErrNotLoaded
	}
	if len(docs) == 0 {
		return nil
	}

	if err := ix.addLocked(ctx, docs); err != nil {
		return err
	}
	return ix.persistLocked()
}

func (ix *Index) addLocked(ctx context.Context, docs []Document) error {
	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("%s#%d", doc.Metadata.Source, doc.Metadata.ChunkIndex)
		}
		chromDocs[i] = chromem.Document{
			ID:       id,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	if err := ix.col.AddDocuments(ctx, chromDocs, 1); err != nil {
		return fmt.Errorf("embedding documents: %w", err)
	}
	return nil
}

func (ix *Index) persistLocked() error {
	if err := os.MkdirAll(ix.path, 0o755); err != nil {
		return fmt.Errorf("creating store directory %s: %w", ix.path, err)
	}
	if err := ix.db.ExportToFile(ix.storeFile(), true, ""); err != nil {
		return fmt.Errorf("persisting store to %s: %w", ix.storeFile(), err)
	}
	return nil
}

// Search returns the k nearest documents for the query. An absent index
// yields an empty result, never an error.
func (ix *Index) Search(ctx context.Context, query string, k int, filter *Filter) ([]Document, error) {
	results, err := ix.SearchWithScore(ctx, query, k, filter)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = r.Document
	}
	return docs, nil
}

// SearchWithScore is Search plus a cosine similarity per result (higher is
// more similar).
func (ix *Index) SearchWithScore(ctx context.Context, query string, k int, filter *Filter) ([]SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.live {
		return nil, nil
	}

	// chromem requires nResults <= collection size.
	count := ix.col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := ix.col.Query(ctx, query, k, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of stored documents (0 when absent).
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.live {
		return 0
	}
	return ix.col.Count()
}

// Info reports the index status for diagnostics.
func (ix *Index) Info() Info {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	info := Info{
		EmbeddingModel: ix.embedder.Name(),
		Path:           ix.path,
	}
	if !ix.live {
		info.Status = StatusNotInitialized
		return info
	}

	info.Status = StatusInitialized
	info.DocumentCount = ix.col.Count()
	return info
}

// Delete removes the persisted store and resets the index to absent.
func (ix *Index) Delete(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := os.RemoveAll(ix.path); err != nil {
		return fmt.Errorf("removing store at %s: %w", ix.path, err)
	}

	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, ix.embedFunc)
	if err != nil {
		return fmt.Errorf("resetting collection: %w", err)
	}
	ix.db = db
	ix.col = col
	ix.live = false
	return nil
}
