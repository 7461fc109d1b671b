package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	graphqlgo "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

const maxBodyBytes = 1 << 20

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL over HTTP: POST with a JSON body, or GET with
// query, operationName and variables URL parameters. The response status
// follows the first error's extensions.http.status.
type Handler struct {
	schema *graphqlgo.Schema
	logger logging.Logger
}

func NewHandler(schema *graphqlgo.Schema, logger logging.Logger) *Handler {
	return &Handler{schema: schema, logger: logger.With("module", "graphql")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = statusOf(resp)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error(r.Context(), "error encoding response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*request, bool) {
	req := &request{}

	switch r.Method {
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			writeRequestError(w, "Invalid request body")
			return nil, false
		}
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				writeRequestError(w, "Invalid variables")
				return nil, false
			}
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	if req.Query == "" {
		writeRequestError(w, "Must provide query string")
		return nil, false
	}
	return req, true
}

// statusOf returns the HTTP status for a response with errors. Resolver
// errors carry their own status; errors without one are document-level
// (syntax, validation) and map to 400 when nothing was executed.
func statusOf(resp *graphqlgo.Response) int {
	if s, ok := errorStatus(resp.Errors[0]); ok {
		return s
	}
	if resp.Data == nil || string(resp.Data) == "null" {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

func errorStatus(qe *gqlerrors.QueryError) (int, bool) {
	if qe == nil || qe.Extensions == nil {
		return 0, false
	}
	h, ok := qe.Extensions["http"].(map[string]interface{})
	if !ok {
		return 0, false
	}
	s, ok := h["status"].(int)
	return s, ok
}

func writeRequestError(w http.ResponseWriter, msg string) {
	body, _ := json.Marshal(map[string]interface{}{
		"errors": []map[string]interface{}{{
			"message":    msg,
			"extensions": map[string]interface{}{"code": CodeBadUserInput},
		}},
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(body)
}
