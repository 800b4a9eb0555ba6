package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Chunking parameters for the offline index build. Overlap keeps a rule
// that straddles a chunk boundary findable from either side.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// Ingestor builds the embedding index from source documents
type Ingestor struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// NewIngestor creates a new ingestor
func NewIngestor(pool *pgxpool.Pool, embedder Embedder) *Ingestor {
	return &Ingestor{pool: pool, embedder: embedder}
}

// EnsureSchema creates the pgvector extension and index table
func (in *Ingestor) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kb_documents (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			content    TEXT NOT NULL,
			embedding  vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, VectorDimension),
	}

	for _, stmt := range statements {
		if _, err := in.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// IngestDocument splits a document into chunks, embeds each one and
// upserts them keyed by (source, chunk index) so re-ingesting a changed
// document replaces its old chunks in place. Returns the chunk count.
func (in *Ingestor) IngestDocument(ctx context.Context, source, text string) (int, error) {
	chunks := SplitText(text, ChunkSize, ChunkOverlap)

	for i, chunk := range chunks {
		vec, err := in.embedder.Embed(ctx, chunk)
		if err != nil {
			return i, fmt.Errorf("embedding chunk %d of %s: %w", i, source, err)
		}

		id := fmt.Sprintf("%s#%d", source, i)
		_, err = in.pool.Exec(ctx,
			`INSERT INTO kb_documents (id, source, content, embedding)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET content = excluded.content, embedding = excluded.embedding`,
			id, source, chunk, pgvector.NewVector(vec))
		if err != nil {
			return i, fmt.Errorf("upserting chunk %d of %s: %w", i, source, err)
		}
	}

	return len(chunks), nil
}

// SplitText cuts text into chunks of at most chunkSize runes with the
// given overlap, preferring to break at a newline or space near the end
// of each chunk.
func SplitText(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		// Back up to the nearest break point so chunks end on whole words
		cut := end
		minCut := start + chunkSize - overlap
		for cut > minCut && runes[cut-1] != '\n' && runes[cut-1] != ' ' {
			cut--
		}
		if cut == minCut {
			cut = end // no break point found, hard cut
		}

		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}
