// Package knowledge implements the precomputed document embedding index
// behind the assistant: a pgvector table built offline by the ingest
// command and queried by nearest-neighbour search at answer time.
package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

// VectorDimension is the embedding size stored in the index. Must match
// the embedder's output dimensionality.
const VectorDimension = 768

const retrieveTimeout = 10 * time.Second

// Embedder turns free text into an embedding vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers nearest-passage queries against the kb_documents
// table. Safe for concurrent use.
type Retriever struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// Connect opens a pgx pool with pgvector types registered
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// NewRetriever creates a retriever over an existing pool
func NewRetriever(pool *pgxpool.Pool, embedder Embedder) *Retriever {
	return &Retriever{pool: pool, embedder: embedder}
}

// Retrieve embeds the query and returns the content of the k nearest
// passages, in similarity order.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, retrieveTimeout)
	defer cancel()

	vec, err := r.embedder.Embed(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := r.pool.Query(queryCtx,
		`SELECT content FROM kb_documents ORDER BY embedding <=> $1 LIMIT $2`,
		pgvector.NewVector(vec), k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var passages []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		passages = append(passages, content)
	}

	return passages, rows.Err()
}

// Count returns the number of indexed passages
func (r *Retriever) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM kb_documents`).Scan(&count)
	return count, err
}
