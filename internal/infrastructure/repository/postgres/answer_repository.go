package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

// AnswerRepository is the audit log of finished answer results. The pipeline
// itself is stateless; rows are written after a terminal state is reached.
type AnswerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *AnswerRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS qa_answers (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	status TEXT NOT NULL,
	primary_domain TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	searched_domains JSONB NOT NULL DEFAULT '[]'::jsonb,
	sources JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_qa_answers_status ON qa_answers(status);
CREATE INDEX IF NOT EXISTS idx_qa_answers_created_at ON qa_answers(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *AnswerRepository) Save(ctx context.Context, result *domain.AnswerResult) error {
	searchedJSON, err := json.Marshal(result.SearchedDomains)
	if err != nil {
		return fmt.Errorf("marshal searched domains: %w", err)
	}
	sourcesJSON, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO qa_answers (
	id, question, answer, status, primary_domain, confidence, searched_domains, sources, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
	answer = EXCLUDED.answer,
	status = EXCLUDED.status,
	primary_domain = EXCLUDED.primary_domain,
	confidence = EXCLUDED.confidence,
	searched_domains = EXCLUDED.searched_domains,
	sources = EXCLUDED.sources
`,
		result.ID, result.Question, result.Answer, string(result.Status), string(result.PrimaryDomain),
		result.Confidence, searchedJSON, sourcesJSON, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *AnswerRepository) GetByID(ctx context.Context, id string) (*domain.AnswerResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, question, answer, status, primary_domain, confidence, searched_domains, sources, created_at
FROM qa_answers
WHERE id = $1
`, id)

	var result domain.AnswerResult
	var status, primaryDomain string
	var searchedRaw, sourcesRaw []byte

	err := row.Scan(
		&result.ID, &result.Question, &result.Answer, &status, &primaryDomain,
		&result.Confidence, &searchedRaw, &sourcesRaw, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrAnswerNotFound, "get answer", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan answer: %w", err)
	}

	if err := json.Unmarshal(searchedRaw, &result.SearchedDomains); err != nil {
		return nil, fmt.Errorf("unmarshal searched domains: %w", err)
	}
	if err := json.Unmarshal(sourcesRaw, &result.Sources); err != nil {
		return nil, fmt.Errorf("unmarshal sources: %w", err)
	}
	result.Status = domain.AnswerStatus(status)
	result.PrimaryDomain = domain.Domain(primaryDomain)
	return &result, nil
}
