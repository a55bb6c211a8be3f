package vectordb

import "strconv"

// SourceKind categorizes where a document's text came from.
type SourceKind string

const (
	KindWebpage SourceKind = "webpage"
	KindFile    SourceKind = "file"
)

// Metadata holds provenance information about a chunk.
type Metadata struct {
	Source     string     // URL or file path the chunk was extracted from.
	Kind       SourceKind // webpage or file.
	Title      string     // Human-readable title derived from the source.
	ChunkIndex int        // Position of the chunk within its document.
}

// Document is a bounded-size text chunk plus its provenance, the unit
// stored and retrieved by the index.
type Document struct {
	ID       string
	Content  string
	Metadata Metadata
}

// SearchResult pairs a document with its similarity score.
// Scores are cosine similarities as reported by chromem: higher means
// more similar, with 1.0 an exact match.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// Filter narrows search candidates by metadata equality before ranking.
type Filter struct {
	Source *string
	Kind   *SourceKind
}

// metadataToMap converts Metadata to the flat map chromem stores.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"source":      m.Source,
		"kind":        string(m.Kind),
		"title":       m.Title,
		"chunk_index": strconv.Itoa(m.ChunkIndex),
	}
}

// mapToMetadata converts a flat chromem map back to Metadata.
func mapToMetadata(m map[string]string) Metadata {
	idx, _ := strconv.Atoi(m["chunk_index"])
	return Metadata{
		Source:     m["source"],
		Kind:       SourceKind(m["kind"]),
		Title:      m["title"],
		ChunkIndex: idx,
	}
}

// buildWhereClause converts a Filter to a chromem where clause.
func buildWhereClause(filter *Filter) map[string]string {
	if filter == nil {
		return nil
	}

	where := make(map[string]string)
	if filter.Source != nil {
		where["source"] = *filter.Source
	}
	if filter.Kind != nil {
		where["kind"] = string(*filter.Kind)
	}

	if len(where) == 0 {
		return nil
	}
	return where
}
