package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// maxBodyBytes bounds request bodies read by the handlers.
const maxBodyBytes = 1 << 20

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

// writeRaw writes an upstream JSON body unchanged.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError maps err onto an HTTP response.
//
// Validation failures become 400 {"errors": fields}. Upstream failures
// mirror the upstream status with {error, status_code, detail}. Everything
// else is a 500 {error}.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verr.Fields})
		return
	}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode > 0 {
		writeJSON(w, upErr.StatusCode, map[string]any{
			"error":       http.StatusText(upErr.StatusCode),
			"status_code": upErr.StatusCode,
			"detail":      upstreamDetail(upErr.Body),
		})
		return
	}

	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrUpstream) {
		status = http.StatusBadGateway
	}
	logger.Error("Request failed: %v", err)
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// upstreamDetail returns the upstream body as JSON when it parses, else as text.
func upstreamDetail(body []byte) any {
	if len(body) > 0 && gjson.ValidBytes(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

// requestParams reads named parameters from the query string, a form body
// or a JSON body, in that order of precedence for each name.
func requestParams(r *http.Request, names ...string) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")

	var body []byte
	if r.Method == http.MethodPost && (isJSON(contentType) || isForm(contentType)) {
		var err error
		body, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
	}

	var form url.Values
	if body != nil && isForm(contentType) {
		form = parseQuery(string(body))
	}
	query := parseQuery(r.URL.RawQuery)

	params := make(map[string]string, len(names))
	for _, name := range names {
		if body != nil && isJSON(contentType) {
			if v := gjson.GetBytes(body, name); v.Exists() {
				params[name] = paramString(v)
			}
		}
		if v := form.Get(name); v != "" {
			params[name] = v
		}
		if v := query.Get(name); v != "" {
			params[name] = v
		}
	}
	return params, nil
}

// queryParam returns the first value of name in the request's query string.
func queryParam(r *http.Request, name string) string {
	return parseQuery(r.URL.RawQuery).Get(name)
}

// parseQuery decodes an application/x-www-form-urlencoded string. Unlike
// url.ParseQuery it keeps raw semicolons inside values, since list
// parameters are semicolon-delimited. Pairs that fail to unescape are skipped.
func parseQuery(raw string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		values.Add(key, value)
	}
	return values
}

// paramString flattens a JSON array into the semicolon-delimited form
// accepted by the query-string variant of the same parameter.
func paramString(v gjson.Result) string {
	if !v.IsArray() {
		return v.String()
	}
	items := v.Array()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, ";")
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), "application/json")
}

func isForm(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), "application/x-www-form-urlencoded")
}

// wantsHTML reports whether a browser is asking for a page rather than a stream.
func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
