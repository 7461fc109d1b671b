// Package auth holds the credential hasher, the access token manager and
// the request identity resolver.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	"github.com/dmitrijs2005/gophprofile/internal/common"
)

// Identity is the caller of a single request: anonymous, or a user id.
type Identity struct {
	userID int64
}

func Anonymous() Identity { return Identity{} }

func Authenticated(userID int64) Identity { return Identity{userID: userID} }

// UserID returns the caller's id and whether the caller is authenticated.
func (i Identity) UserID() (int64, bool) {
	return i.userID, i.userID > 0
}

// TokenVerifier is the subset of TokenManager the resolver needs.
type TokenVerifier interface {
	Verify(token string) (int64, bool)
}

// Resolver turns an Authorization header into an Identity. It never
// rejects a request: every failure degrades to Anonymous.
type Resolver struct {
	verifier TokenVerifier
}

func NewResolver(v TokenVerifier) *Resolver {
	return &Resolver{verifier: v}
}

func (r *Resolver) Resolve(header string) Identity {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return Anonymous()
	}

	token := header[len(common.BearerPrefix):]
	if token == "" {
		return Anonymous()
	}

	id, ok := r.verifier.Verify(token)
	if !ok {
		return Anonymous()
	}
	return Authenticated(id)
}

// Middleware stores the resolved Identity on the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := r.Resolve(req.Header.Get(common.AuthorizationHeaderName))
		next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), id)))
	})
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns Anonymous when no identity was attached.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	return IdentityFromContext(ctx).UserID()
}

// RequireUser returns the caller's id or an Auth error.
func RequireUser(ctx context.Context) (int64, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, apperror.Auth("Authentication required")
	}
	return id, nil
}
