// Package metastore persists off-chain submission metadata in Postgres,
// keyed by the ledger-assigned submission ID.
package metastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scigate/scigate/internal/model"
)

// ErrNotFound is returned when no metadata exists for a submission ID.
var ErrNotFound = errors.New("metadata not found")

// PostgresStore wraps all SQL used for submission metadata. List columns
// (keywords, coauthors, affiliations) are text[]; pgx encodes []string
// natively, so entries containing commas round-trip intact.
type PostgresStore struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresStore connects a pool and prepares the statement builder for
// Postgres placeholders.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Connect opens a pgx pool from a DSN.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect metadata store: %w", err)
	}
	return pool, nil
}

// Store upserts the metadata row for a submission.
func (s *PostgresStore) Store(ctx context.Context, submissionID, author string, md model.Metadata) error {
	query, args, err := s.storeQuery(submissionID, author, md, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("build metadata insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}
	return nil
}

func (s *PostgresStore) storeQuery(submissionID, author string, md model.Metadata, now time.Time) (string, []interface{}, error) {
	return s.sb.
		Insert("paper_metadata").
		Columns("paper_id", "user_id", "abstract", "keywords", "coauthors",
			"affiliations", "funding", "acknowledgements", "originality_score", "created_at").
		Values(submissionID, author, md.Abstract, md.Keywords, md.Coauthors,
			md.Affiliations, md.Funding, md.Acknowledgements, md.OriginalityScore, now).
		Suffix(`ON CONFLICT (paper_id) DO UPDATE
			SET abstract = EXCLUDED.abstract,
			    keywords = EXCLUDED.keywords,
			    coauthors = EXCLUDED.coauthors,
			    affiliations = EXCLUDED.affiliations,
			    funding = EXCLUDED.funding,
			    acknowledgements = EXCLUDED.acknowledgements,
			    originality_score = EXCLUDED.originality_score`).
		ToSql()
}

// Get returns the metadata stored for a submission.
func (s *PostgresStore) Get(ctx context.Context, submissionID string) (*model.Metadata, error) {
	query, args, err := s.getQuery(submissionID)
	if err != nil {
		return nil, fmt.Errorf("build metadata select: %w", err)
	}

	var md model.Metadata
	row := s.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&md.Abstract, &md.Keywords, &md.Coauthors, &md.Affiliations,
		&md.Funding, &md.Acknowledgements, &md.OriginalityScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select metadata: %w", err)
	}

	return &md, nil
}

func (s *PostgresStore) getQuery(submissionID string) (string, []interface{}, error) {
	return s.sb.
		Select("abstract", "keywords", "coauthors", "affiliations",
			"funding", "acknowledgements", "originality_score").
		From("paper_metadata").
		Where(sq.Eq{"paper_id": submissionID}).
		ToSql()
}
