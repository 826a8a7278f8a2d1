package notion

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordedRequest is one request seen by the fake Notion server.
type recordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Body    map[string]any
	RawBody []byte
}

// fakeNotion records requests and answers with canned responses keyed by
// "METHOD /path".
type fakeNotion struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeNotion) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Header:  r.Header.Clone(),
		Body:    body,
		RawBody: raw,
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		resp = fakeResponse{status: http.StatusOK, body: `{"object":"page","id":"ok"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (f *fakeNotion) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

// rewriteTransport sends every request to the test server, whatever its host.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newFakeClient(t *testing.T, responses map[string]fakeResponse) (*Client, *fakeNotion) {
	t.Helper()
	fake := &fakeNotion{responses: responses}
	server := httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := NewClient(Config{
		Token:             "secret_test",
		RequestsPerSecond: 1000,
		HTTPClient:        &http.Client{Transport: rewriteTransport{target: target}},
	})
	require.NoError(t, err)
	return client, fake
}
