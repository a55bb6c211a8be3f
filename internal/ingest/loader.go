package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"

	"docchat/internal/config"
	"docchat/internal/progress"
	"docchat/internal/textutil"
	"docchat/internal/vectordb"
)

// fetchTimeout bounds each webpage fetch.
const fetchTimeout = 30 * time.Second

// SourceDocument is a fetched or read source reduced to normalized text.
// It exists only between loading and chunking; chunks are the durable unit.
type SourceDocument struct {
	Content string
	Source  string
	Kind    vectordb.SourceKind
	Title   string
}

// Loader turns configured sources into normalized, chunked documents.
type Loader struct {
	cfg      *config.Config
	client   *http.Client
	reporter progress.Reporter
}

// New creates a Loader. reporter may be nil to disable progress output.
func New(cfg *config.Config, reporter progress.Reporter) *Loader {
	return &Loader{
		cfg:      cfg,
		client:   &http.Client{Timeout: fetchTimeout},
		reporter: reporter,
	}
}

// LoadSources aggregates every configured source: the primary URL list,
// the optional extra-URLs side file, and local files under the sources
// directory. Individual failures are logged and skipped; the batch is
// best-effort.
func (l *Loader) LoadSources(ctx context.Context) []SourceDocument {
	urls := append([]string{}, l.cfg.Sources...)

	extra, err := readExtraURLs(l.cfg.ExtraSourcesFile)
	if err != nil {
		log.Printf("ingest: skipping extra sources file: %v", err)
	} else if len(extra) > 0 {
		log.Printf("ingest: %d extra URLs from %s", len(extra), l.cfg.ExtraSourcesFile)
		urls = append(urls, extra...)
	}

	files := l.discoverFiles()

	total := len(urls) + len(files)
	if l.reporter != nil {
		l.reporter.Start(total)
		defer l.reporter.Finish()
	}

	var docs []SourceDocument
	done := 0

	for _, u := range urls {
		done++
		l.report(done, u)
		doc, err := l.loadURL(ctx, u)
		if err != nil {
			log.Printf("ingest: skipping %s: %v", u, err)
			continue
		}
		docs = append(docs, doc)
	}

	for _, path := range files {
		done++
		l.report(done, path)
		doc, err := l.loadFile(path)
		if err != nil {
			log.Printf("ingest: skipping %s: %v", path, err)
			continue
		}
		docs = append(docs, doc)
	}

	log.Printf("ingest: loaded %d of %d sources", len(docs), total)
	return docs
}

func (l *Loader) report(current int, message string) {
	if l.reporter != nil {
		l.reporter.Update(current, message)
	}
}

// loadURL fetches a webpage and normalizes its text.
func (l *Loader) loadURL(ctx context.Context, url string) (SourceDocument, error) {
	text, err := fetchWebpage(ctx, l.client, url)
	if err != nil {
		return SourceDocument{}, err
	}

	content := textutil.Normalize(text)
	if content == "" {
		return SourceDocument{}, fmt.Errorf("no text content at %s", url)
	}

	return SourceDocument{
		Content: content,
		Source:  url,
		Kind:    vectordb.KindWebpage,
		Title:   titleFromURL(url),
	}, nil
}

// loadFile reads a local file and normalizes its text. Markdown is
// rendered first so heading markers and link syntax never reach the index.
func (l *Loader) loadFile(path string) (SourceDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SourceDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(raw)
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".md" || ext == ".markdown" {
		text, err = markdownToText(raw)
		if err != nil {
			return SourceDocument{}, fmt.Errorf("rendering %s: %w", path, err)
		}
	}

	content := textutil.Normalize(text)
	if content == "" {
		return SourceDocument{}, fmt.Errorf("no text content in %s", path)
	}

	return SourceDocument{
		Content: content,
		Source:  path,
		Kind:    vectordb.KindFile,
		Title:   titleFromPath(path),
	}, nil
}

// markdownToText renders markdown to HTML with goldmark, then strips the
// markup the same way fetched webpages are stripped.
func markdownToText(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", err
	}
	return extractHTMLText(&buf)
}

// discoverFiles matches local files under the sources directory against
// the configured doublestar patterns.
func (l *Loader) discoverFiles() []string {
	if l.cfg.SourcesDir == "" {
		return nil
	}
	if _, err := os.Stat(l.cfg.SourcesDir); err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var files []string

	fsys := os.DirFS(l.cfg.SourcesDir)
	for _, pattern := range l.cfg.SourceGlobs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			log.Printf("ingest: bad source glob %q: %v", pattern, err)
			continue
		}
		for _, m := range matches {
			full := filepath.Join(l.cfg.SourcesDir, m)
			if !seen[full] {
				seen[full] = true
				files = append(files, full)
			}
		}
	}
	return files
}

// readExtraURLs reads one URL per line, skipping blanks and # comments.
// A missing file is not an error.
func readExtraURLs(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// ChunkDocuments splits each source document into overlapping chunks
// tagged with provenance metadata, ready for the vector index.
func (l *Loader) ChunkDocuments(docs []SourceDocument) []vectordb.Document {
	var out []vectordb.Document

	for _, doc := range docs {
		pieces := textutil.Split(doc.Content, l.cfg.ChunkSize, l.cfg.ChunkOverlap)
		for i, piece := range pieces {
			out = append(out, vectordb.Document{
				ID:      fmt.Sprintf("%s#%d", doc.Source, i),
				Content: piece,
				Metadata: vectordb.Metadata{
					Source:     doc.Source,
					Kind:       doc.Kind,
					Title:      doc.Title,
					ChunkIndex: i,
				},
			})
		}
	}

	log.Printf("ingest: split %d documents into %d chunks", len(docs), len(out))
	return out
}
