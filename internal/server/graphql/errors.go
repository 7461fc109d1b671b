package graphql

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// Error codes reported in extensions.code.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

const msgInternal = "Internal server error"

// Error is a resolver error as seen by clients. graphql-go copies the
// result of Extensions into the response.
type Error struct {
	Message string
	Code    string
	Status  int
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
		"http": map[string]interface{}{"status": e.Status},
	}
}

// toGraphQLError maps err to the client envelope by its kind. Internal
// errors are logged and replaced by a generic message.
func toGraphQLError(ctx context.Context, logger logging.Logger, op string, err error) *Error {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict:
		return &Error{Message: publicMessage(err), Code: CodeBadUserInput, Status: http.StatusBadRequest}
	case apperror.KindAuth:
		return &Error{Message: publicMessage(err), Code: CodeUnauthenticated, Status: http.StatusUnauthorized}
	case apperror.KindNotFound:
		return &Error{Message: publicMessage(err), Code: CodeNotFound, Status: http.StatusNotFound}
	default:
		logger.Error(ctx, "operation failed", "op", op, "error", err)
		return &Error{Message: msgInternal, Code: CodeInternal, Status: http.StatusInternalServerError}
	}
}

// publicMessage drops the wrapped cause, which may carry driver detail.
func publicMessage(err error) string {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Message
	}
	return msgInternal
}
