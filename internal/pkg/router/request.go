package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
)

// Request wraps http.Request with decoding helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a named path parameter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 reads a named path parameter as an int64.
func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("path parameter must be an integer")
	}
	return value, nil
}

// GetQuery reads a trimmed query parameter.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt reads a query parameter as an int; empty values return zero.
func (r *Request) GetQueryInt(key string) (int, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerror.NewInvalidFormat("query " + key + " must be an integer")
	}
	return value, nil
}

// DecodeBody strictly decodes the JSON body into dst. Unknown fields and
// trailing content are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
