package chat

import (
	"context"
	"fmt"
	"log"
	"sync"

	"docchat/internal/config"
	"docchat/internal/ingest"
	"docchat/internal/llm"
	"docchat/internal/vectordb"
)

// snippetLen bounds the quoted excerpt attached to each cited source.
const snippetLen = 200

// Source is a citation attached to an answer.
type Source struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Source  string `json:"source"`
}

// Result is the outcome of one conversational turn. Ask never fails as a
// Go error; degraded turns carry an explanation in Err alongside a usable
// Answer.
type Result struct {
	Answer  string   `json:"response"`
	Sources []Source `json:"sources"`
	Err     string   `json:"error,omitempty"`
}

// Exchange is one past user/assistant pair.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Bot orchestrates retrieval, generation, and conversation memory. A Bot
// without a live model handle still answers every question through the
// offline responder.
//
// The mutex serializes the retrieve-generate-remember sequence so
// concurrent Ask calls cannot interleave their memory appends.
type Bot struct {
	cfg      *config.Config
	index    *vectordb.Index
	loader   *ingest.Loader
	registry *llm.Registry

	mu     sync.Mutex
	handle llm.Handle
	memory []llm.Message
}

// New builds a Bot and resolves the configured provider. A missing
// credential leaves the bot in offline mode rather than failing.
func New(cfg *config.Config, index *vectordb.Index, loader *ingest.Loader, registry *llm.Registry) *Bot {
	b := &Bot{
		cfg:      cfg,
		index:    index,
		loader:   loader,
		registry: registry,
	}
	b.handle = registry.CreateActive()
	if b.handle == nil {
		if names := registry.AvailableNames(); len(names) > 1 {
			log.Printf("chat: provider %q not live, available: %v", cfg.Provider, names)
		} else {
			log.Printf("chat: no provider credentials found, using offline answers")
		}
	}
	return b
}

// Setup prepares the knowledge base. Without forceRebuild it reuses a
// previously persisted index when one exists; otherwise it loads every
// configured source, chunks it, and builds a fresh index.
func (b *Bot) Setup(ctx context.Context, forceRebuild bool) error {
	if !forceRebuild {
		loaded, err := b.index.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading vector index: %w", err)
		}
		if loaded {
			log.Printf("chat: using existing vector index (%d documents)", b.index.Count())
			return nil
		}
	}

	docs := b.loader.LoadSources(ctx)
	if len(docs) == 0 {
		return fmt.Errorf("no documents loaded from configured sources")
	}

	chunks := b.loader.ChunkDocuments(docs)
	if err := b.index.Create(ctx, chunks); err != nil {
		return fmt.Errorf("building vector index: %w", err)
	}

	log.Printf("chat: knowledge base ready with %d chunks", len(chunks))
	return nil
}

// LoadIndex opens a persisted knowledge base without building one. It
// reports whether a store existed.
func (b *Bot) LoadIndex(ctx context.Context) (bool, error) {
	return b.index.Load(ctx)
}

// Ask processes one conversational turn. It never returns a Go error: the
// offline responder covers the no-model case, and generation failures
// degrade into an apologetic answer with Err set.
func (b *Bot) Ask(ctx context.Context, message string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle == nil {
		// Offline turns are stateless; they never touch memory.
		return offlineAnswer(message)
	}

	results, err := b.index.SearchWithScore(ctx, message, b.cfg.RetrievalK, nil)
	if err != nil {
		log.Printf("chat: retrieval failed: %v", err)
		results = nil
	}

	messages := b.buildPrompt(message, results)

	resp, err := b.handle.Generate(ctx, messages)
	if err != nil {
		log.Printf("chat: generation failed: %v", err)
		if llm.IsQuotaError(err) {
			return Result{
				Answer: "I'm currently experiencing high demand. Here's a helpful response based on " +
					"my knowledge: I can help you with LangChain, Python programming, and AI " +
					"development questions. For detailed responses, please try again later or check " +
					"your API quota.",
				Sources: []Source{{
					Content: "Fallback response due to quota limits",
					Title:   "System",
					Source:  "fallback",
				}},
				Err: "Quota exceeded - using fallback response",
			}
		}
		return Result{
			Answer: "I'm sorry, I encountered an error while processing your message. Please try again.",
			Err:    err.Error(),
		}
	}

	b.memory = append(b.memory,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
	)

	return Result{
		Answer:  resp.Content,
		Sources: citeSources(results),
	}
}

// buildPrompt assembles the system instruction with retrieved context, the
// conversation so far, and the new question.
func (b *Bot) buildPrompt(message string, results []vectordb.SearchResult) []llm.Message {
	system := "You are a helpful documentation assistant. Answer the user's question using the " +
		"context below. If the context does not contain the answer, say so rather than guessing."
	if len(results) > 0 {
		system += "\n\nContext:"
		for _, r := range results {
			system += fmt.Sprintf("\n[%s] %s", r.Document.Metadata.Title, r.Document.Content)
		}
	}

	messages := make([]llm.Message, 0, len(b.memory)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, b.memory...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})
	return messages
}

func citeSources(results []vectordb.SearchResult) []Source {
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		content := r.Document.Content
		if len(content) > snippetLen {
			content = content[:snippetLen] + "..."
		}
		sources = append(sources, Source{
			Content: content,
			Title:   r.Document.Metadata.Title,
			Source:  r.Document.Metadata.Source,
		})
	}
	return sources
}

// SearchDocuments runs a plain similarity search against the knowledge
// base. An absent index yields an empty result.
func (b *Bot) SearchDocuments(ctx context.Context, query string, k int) ([]vectordb.SearchResult, error) {
	if k < 1 {
		k = b.cfg.RetrievalK
	}
	return b.index.SearchWithScore(ctx, query, k, nil)
}

// AddDocuments chunks and appends new sources to an existing knowledge
// base.
func (b *Bot) AddDocuments(ctx context.Context, docs []ingest.SourceDocument) error {
	chunks := b.loader.ChunkDocuments(docs)
	if err := b.index.Add(ctx, chunks); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}
	return nil
}

// History returns the conversation as user/assistant pairs, oldest first.
func (b *Bot) History() []Exchange {
	b.mu.Lock()
	defer b.mu.Unlock()

	var history []Exchange
	for i := 0; i+1 < len(b.memory); i += 2 {
		history = append(history, Exchange{
			User:      b.memory[i].Content,
			Assistant: b.memory[i+1].Content,
		})
	}
	return history
}

// ClearMemory forgets the conversation without touching the knowledge base.
func (b *Bot) ClearMemory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memory = nil
}

// Reset clears the conversation and drops the live model handle, returning
// the bot to its pre-setup state.
func (b *Bot) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memory = nil
	b.handle = nil
}

// SystemInfo reports the bot's configuration and runtime state.
func (b *Bot) SystemInfo() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	info := b.index.Info()
	return map[string]any{
		"model_name":        b.cfg.ActiveModel(),
		"temperature":       b.cfg.Temperature,
		"max_tokens":        b.cfg.MaxTokens,
		"embedding_model":   info.EmbeddingModel,
		"vector_store":      info,
		"memory_size":       len(b.memory),
		"chain_initialized": b.handle != nil,
	}
}

// ProviderStatus reports availability of every registered provider.
func (b *Bot) ProviderStatus() []llm.Descriptor {
	return b.registry.Status()
}
