package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docvault/docvault/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, doc *Document) (*Document, error) {

	query :=
		`INSERT INTO documents (filename, s3_key, is_encrypted, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, upload_date
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.Filename, doc.S3Key, doc.IsEncrypted, doc.OwnerID).
		Scan(&doc.ID, &doc.UploadDate)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Document, error) {
	query :=
		`SELECT id, filename, s3_key, upload_date, is_encrypted, owner_id FROM documents
		 WHERE owner_id = $1
		 ORDER BY upload_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	docs := make([]*Document, 0)
	for rows.Next() {
		doc := &Document{}
		err := rows.Scan(&doc.ID, &doc.Filename, &doc.S3Key, &doc.UploadDate, &doc.IsEncrypted, &doc.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return docs, nil
}
