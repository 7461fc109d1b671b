// Package client implements the GraphQL HTTP client used by the CLI.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/dmitrijs2005/gophprofile/internal/common"
)

const userFields = `id email name createdAt updatedAt`

const (
	signupMutation = `mutation Signup($email: String!, $password: String!, $name: String) {
  signup(email: $email, password: $password, name: $name) { accessToken user { ` + userFields + ` } }
}`
	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { accessToken user { ` + userFields + ` } }
}`
	refreshMutation = `mutation { refreshToken { accessToken user { ` + userFields + ` } } }`
	meQuery         = `query { me { ` + userFields + ` } }`
	updateMutation  = `mutation Update($name: String, $email: String) {
  updateProfile(name: $name, email: $email) { ` + userFields + ` }
}`
	deleteMutation = `mutation { deleteAccount }`
	pingQuery      = `query { __typename }`
)

// GraphQLClient talks to the profile API over HTTP.
type GraphQLClient struct {
	gql *graphql.Client
}

// NewGraphQLClient returns a client for the GraphQL endpoint at url.
func NewGraphQLClient(url string, timeout time.Duration) (*GraphQLClient, error) {
	if url == "" {
		return nil, errors.New("empty server url")
	}
	return &GraphQLClient{gql: graphql.NewClient(url, &http.Client{Timeout: timeout})}, nil
}

// do runs the operation and decodes data into out. token may be empty.
func (c *GraphQLClient) do(ctx context.Context, token, query string, vars map[string]any, out any) error {
	gql := c.gql.WithRequestModifier(func(r *http.Request) {
		if token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	})

	raw, err := gql.ExecRaw(ctx, query, vars)
	if err != nil {
		return translateError(err)
	}

	if out == nil {
		return nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return errors.New("empty response data")
	}
	return json.Unmarshal(raw, out)
}

// Signup creates an account. An empty name is sent as null.
func (c *GraphQLClient) Signup(ctx context.Context, email, password, name string) (*AuthPayload, error) {
	vars := map[string]any{"email": email, "password": password, "name": nil}
	if name != "" {
		vars["name"] = name
	}
	var out struct {
		Signup AuthPayload `json:"signup"`
	}
	if err := c.do(ctx, "", signupMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Signup, nil
}

func (c *GraphQLClient) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out struct {
		Login AuthPayload `json:"login"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, "", loginMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Login, nil
}

func (c *GraphQLClient) RefreshToken(ctx context.Context, token string) (*AuthPayload, error) {
	var out struct {
		RefreshToken AuthPayload `json:"refreshToken"`
	}
	if err := c.do(ctx, token, refreshMutation, nil, &out); err != nil {
		return nil, err
	}
	return &out.RefreshToken, nil
}

// Me returns the caller's profile, or nil when the server reports no user.
func (c *GraphQLClient) Me(ctx context.Context, token string) (*User, error) {
	var out struct {
		Me *User `json:"me"`
	}
	if err := c.do(ctx, token, meQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Me, nil
}

// UpdateProfile sends only the non-nil fields.
func (c *GraphQLClient) UpdateProfile(ctx context.Context, token string, name, email *string) (*User, error) {
	vars := map[string]any{}
	if name != nil {
		vars["name"] = *name
	}
	if email != nil {
		vars["email"] = *email
	}
	var out struct {
		UpdateProfile User `json:"updateProfile"`
	}
	if err := c.do(ctx, token, updateMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.UpdateProfile, nil
}

func (c *GraphQLClient) DeleteAccount(ctx context.Context, token string) (bool, error) {
	var out struct {
		DeleteAccount bool `json:"deleteAccount"`
	}
	if err := c.do(ctx, token, deleteMutation, nil, &out); err != nil {
		return false, err
	}
	return out.DeleteAccount, nil
}

// Ping checks that the endpoint answers GraphQL requests.
func (c *GraphQLClient) Ping(ctx context.Context) error {
	return c.do(ctx, "", pingQuery, nil, nil)
}
