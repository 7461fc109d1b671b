// Package graphql exposes the auth and profile services as a GraphQL API.
package graphql

import (
	"context"
	_ "embed"
	"math"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/dmitrijs2005/gophprofile/internal/server/services"
	graphqlgo "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// AuthOperations is implemented by services.AuthService.
type AuthOperations interface {
	Signup(ctx context.Context, email, password string, name *string) (*services.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*services.AuthPayload, error)
	RefreshToken(ctx context.Context) (*services.AuthPayload, error)
}

// ProfileOperations is implemented by services.UserService.
type ProfileOperations interface {
	Me(ctx context.Context) (*models.Profile, error)
	GetUser(ctx context.Context, id int64) (*models.Profile, error)
	ListUsers(ctx context.Context) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, in services.UpdateProfileInput) (*models.Profile, error)
	DeleteAccount(ctx context.Context) (bool, error)
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	auth   AuthOperations
	users  ProfileOperations
	logger logging.Logger
}

func NewResolver(a AuthOperations, u ProfileOperations, l logging.Logger) *Resolver {
	return &Resolver{auth: a, users: u, logger: l.With("module", "graphql")}
}

// NewSchema parses the embedded schema against r. It panics if the schema
// and the resolver methods disagree.
func NewSchema(r *Resolver) *graphqlgo.Schema {
	return graphqlgo.MustParseSchema(schemaSDL, r,
		graphqlgo.MaxDepth(8),
		graphqlgo.Logger(panicLogger{logger: r.logger}),
	)
}

// Query

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	p, err := r.users.Me(ctx)
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "me", err)
	}
	return newUserResolver(p), nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID int32 }) (*userResolver, error) {
	p, err := r.users.GetUser(ctx, int64(args.ID))
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "user", err)
	}
	return newUserResolver(p), nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	list, err := r.users.ListUsers(ctx)
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "users", err)
	}
	out := make([]*userResolver, 0, len(list))
	for _, p := range list {
		out = append(out, newUserResolver(p))
	}
	return out, nil
}

// Mutation

type signupArgs struct {
	Email    string
	Password string
	Name     *string
}

func (r *Resolver) Signup(ctx context.Context, args signupArgs) (*authPayloadResolver, error) {
	p, err := r.auth.Signup(ctx, args.Email, args.Password, args.Name)
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "signup", err)
	}
	return &authPayloadResolver{p: p}, nil
}

type loginArgs struct {
	Email    string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*authPayloadResolver, error) {
	p, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "login", err)
	}
	return &authPayloadResolver{p: p}, nil
}

func (r *Resolver) RefreshToken(ctx context.Context) (*authPayloadResolver, error) {
	p, err := r.auth.RefreshToken(ctx)
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "refreshToken", err)
	}
	return &authPayloadResolver{p: p}, nil
}

type updateProfileArgs struct {
	Name  *string
	Email *string
}

func (r *Resolver) UpdateProfile(ctx context.Context, args updateProfileArgs) (*userResolver, error) {
	p, err := r.users.UpdateProfile(ctx, services.UpdateProfileInput{Name: args.Name, Email: args.Email})
	if err != nil {
		return nil, toGraphQLError(ctx, r.logger, "updateProfile", err)
	}
	return newUserResolver(p), nil
}

func (r *Resolver) DeleteAccount(ctx context.Context) (bool, error) {
	ok, err := r.users.DeleteAccount(ctx)
	if err != nil {
		return false, toGraphQLError(ctx, r.logger, "deleteAccount", err)
	}
	return ok, nil
}

// Types

type authPayloadResolver struct {
	p *services.AuthPayload
}

func (a *authPayloadResolver) AccessToken() string { return a.p.AccessToken }

func (a *authPayloadResolver) User() *userResolver { return newUserResolver(a.p.User) }

type userResolver struct {
	p *models.Profile
}

// newUserResolver returns nil for a nil profile so that nullable fields
// resolve to null.
func newUserResolver(p *models.Profile) *userResolver {
	if p == nil {
		return nil
	}
	return &userResolver{p: p}
}

// ID fails for ids that do not fit a GraphQL Int.
func (u *userResolver) ID() (int32, error) {
	if u.p.ID > math.MaxInt32 || u.p.ID < math.MinInt32 {
		return 0, &Error{Message: msgInternal, Code: CodeInternal, Status: http.StatusInternalServerError}
	}
	return int32(u.p.ID), nil
}

func (u *userResolver) Email() string { return u.p.Email }

func (u *userResolver) Name() *string { return u.p.Name }

func (u *userResolver) CreatedAt() string { return formatTime(u.p.CreatedAt) }

func (u *userResolver) UpdatedAt() string { return formatTime(u.p.UpdatedAt) }

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// panicLogger routes resolver panics recovered by graphql-go to the
// application logger.
type panicLogger struct {
	logger logging.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error(ctx, "panic while resolving", "panic", value)
}
