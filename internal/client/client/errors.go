package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	graphql "github.com/hasura/go-graphql-client"
)

var (
	// ErrUnavailable reports that the server could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized reports a missing, expired or rejected access token.
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	codeUnauthenticated = "UNAUTHENTICATED"
	// codeRequestError is set by go-graphql-client on transport failures.
	codeRequestError = "request_error"
)

// APIError is the first error of a GraphQL response envelope.
type APIError struct {
	Message string
	Code    string
	Status  int
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Is lets callers match UNAUTHENTICATED responses with errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == codeUnauthenticated
}

// envelope is the error part of a response body.
type envelope struct {
	Errors []graphql.Error `json:"errors"`
}

// translateError turns go-graphql-client errors into APIError or
// ErrUnavailable. Error responses from the server carry a non-200 status,
// which the library reports as a NetworkError holding the raw body, so the
// envelope is decoded from that body.
func translateError(err error) error {
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || len(gqlErrs) == 0 {
		return err
	}
	first := gqlErrs[0]

	var netErr graphql.NetworkError
	if errors.As(first, &netErr) {
		return fromResponse(netErr.StatusCode(), []byte(netErr.Body()))
	}

	code, _ := first.Extensions["code"].(string)
	if code == codeRequestError {
		return fmt.Errorf("%w: %s", ErrUnavailable, first.Message)
	}
	return fromGraphQLError(first, 0)
}

func fromResponse(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		return fromGraphQLError(env.Errors[0], status)
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return &APIError{Message: http.StatusText(status), Status: status}
}

func fromGraphQLError(e graphql.Error, fallbackStatus int) *APIError {
	apiErr := &APIError{Message: e.Message, Status: fallbackStatus}
	apiErr.Code, _ = e.Extensions["code"].(string)
	if h, ok := e.Extensions["http"].(map[string]any); ok {
		if st, ok := h["status"].(float64); ok {
			apiErr.Status = int(st)
		}
	}
	return apiErr
}
