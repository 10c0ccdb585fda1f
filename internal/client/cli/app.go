package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/docvault/docvault/internal/client/api"
	"github.com/docvault/docvault/internal/client/config"
)

// vaultAPI is the backend surface the CLI commands use. The real api.Client
// satisfies it; tests provide a lightweight fake.
type vaultAPI interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	IsAuthenticated() bool
	Me(ctx context.Context) (string, error)
	ListDocuments(ctx context.Context) (*api.DocumentList, error)
	UploadDocument(ctx context.Context, path string) (*api.Document, error)
}

type App struct {
	config   *config.Config
	api      vaultAPI
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status is shown in the REPL prompt.
func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}
