package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/config"
	"github.com/dmitrijs2005/gophprofile/internal/client/services"
	"github.com/dmitrijs2005/gophprofile/internal/client/tokenstore"
)

// Session is what the REPL needs from services.Session.
type Session interface {
	Signup(ctx context.Context, email, password, name string) (*client.User, error)
	Login(ctx context.Context, email, password string) (*client.User, error)
	Refresh(ctx context.Context) (*client.User, error)
	Me(ctx context.Context) (*client.User, error)
	Update(ctx context.Context, name, email *string) (*client.User, error)
	Delete(ctx context.Context) (bool, error)
	Logout() error
	LoggedIn() bool
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	session Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGraphQLClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	s := services.NewSession(apiClient, tokenstore.NewFileStore(c.TokenFile))

	return &App{config: c, session: s, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run checks connectivity once and starts the REPL.
func (a *App) Run(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.session.Ping(pingCtx)
	cancel()
	if err != nil {
		a.printf("Server %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	a.Root(ctx)
}
