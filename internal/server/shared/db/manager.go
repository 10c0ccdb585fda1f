package db

import (
	"context"
	"database/sql"

	"github.com/docvault/docvault/internal/server/documents"
	"github.com/docvault/docvault/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Documents() documents.Repository
	Close() error
}
