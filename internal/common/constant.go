// Package common contains shared constants, sentinel errors and small helpers
// used by both the server and the CLI client.
package common

// AuthorizationHeaderName is the HTTP header that carries the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "
