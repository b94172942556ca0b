package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// Pagination is the paging block attached to every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// newPagination builds the response paging block from the request params and
// the total match count.
func newPagination(p domain.PaginationParams, total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: p.Pages(total)}
}

// pathUUID parses the named chi URL parameter as a UUID.
// ok is false after an error response has already been written.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		requestError(w, fmt.Sprintf("invalid %s: must be a UUID", name))
		return uuid.UUID{}, false
	}
	return id, true
}

// queryInt returns the named query parameter as *int, or nil when absent or
// not a number. Invalid values silently fall back to the pagination defaults.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// queryDate parses an optional YYYY-MM-DD query parameter.
// ok is false after an error response has already been written.
func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		requestError(w, fmt.Sprintf("invalid %s: use YYYY-MM-DD", name))
		return nil, false
	}
	return &t, true
}

// pagination reads ?page= and ?limit= with defaults and capping.
func pagination(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}

// decodeBody strictly decodes the JSON request body into v.
// Unknown fields are rejected so shape errors surface at the boundary
// instead of silently dropping data.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
