// Package services holds the CLI-side session logic between the REPL and
// the GraphQL client.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
)

// ErrNotLoggedIn is returned when a command needs a token and none is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// API is the subset of the GraphQL client used by Session.
type API interface {
	Signup(ctx context.Context, email, password, name string) (*client.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*client.AuthPayload, error)
	RefreshToken(ctx context.Context, token string) (*client.AuthPayload, error)
	Me(ctx context.Context, token string) (*client.User, error)
	UpdateProfile(ctx context.Context, token string, name, email *string) (*client.User, error)
	DeleteAccount(ctx context.Context, token string) (bool, error)
	Ping(ctx context.Context) error
}

// TokenStore persists the access token between CLI runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type Session struct {
	api   API
	store TokenStore
}

func NewSession(api API, store TokenStore) *Session {
	return &Session{api: api, store: store}
}

func (s *Session) Signup(ctx context.Context, email, password, name string) (*client.User, error) {
	p, err := s.api.Signup(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return &p.User, s.store.Save(p.AccessToken)
}

func (s *Session) Login(ctx context.Context, email, password string) (*client.User, error) {
	p, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &p.User, s.store.Save(p.AccessToken)
}

// LoggedIn reports whether a token is stored. It does not contact the server.
func (s *Session) LoggedIn() bool {
	tok, err := s.store.Load()
	return err == nil && tok != ""
}

// Refresh exchanges the stored token for a fresh one.
func (s *Session) Refresh(ctx context.Context) (*client.User, error) {
	tok, err := s.token()
	if err != nil {
		return nil, err
	}
	p, err := s.api.RefreshToken(ctx, tok)
	if err != nil {
		return nil, s.dropIfRejected(err)
	}
	return &p.User, s.store.Save(p.AccessToken)
}

func (s *Session) Me(ctx context.Context) (*client.User, error) {
	tok, err := s.token()
	if err != nil {
		return nil, err
	}
	u, err := s.api.Me(ctx, tok)
	if err != nil {
		return nil, s.dropIfRejected(err)
	}
	return u, nil
}

func (s *Session) Update(ctx context.Context, name, email *string) (*client.User, error) {
	tok, err := s.token()
	if err != nil {
		return nil, err
	}
	u, err := s.api.UpdateProfile(ctx, tok, name, email)
	if err != nil {
		return nil, s.dropIfRejected(err)
	}
	return u, nil
}

// Delete removes the account and, on success, the stored token.
func (s *Session) Delete(ctx context.Context) (bool, error) {
	tok, err := s.token()
	if err != nil {
		return false, err
	}
	ok, err := s.api.DeleteAccount(ctx, tok)
	if err != nil {
		return false, s.dropIfRejected(err)
	}
	if ok {
		return true, s.store.Clear()
	}
	return false, nil
}

func (s *Session) Logout() error {
	return s.store.Clear()
}

func (s *Session) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

func (s *Session) token() (string, error) {
	tok, err := s.store.Load()
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}

// dropIfRejected clears the stored token when the server refused it.
func (s *Session) dropIfRejected(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if cerr := s.store.Clear(); cerr != nil {
			return errors.Join(err, cerr)
		}
	}
	return err
}
