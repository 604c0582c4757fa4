package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-card/internal/cache"
)

// credentialTransport attaches a bearer token when one is configured at request time.
type credentialTransport struct {
	base   http.RoundTripper
	lookup func() string
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.lookup()
	if token == "" {
		return t.base.RoundTrip(req)
	}
	authed := &oauth2.Transport{
		Base:   t.base,
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}
	return authed.RoundTrip(req)
}

// cachedResponse is the stored form of a successful GET.
type cachedResponse struct {
	StatusCode int         `json:"status"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
}

// cachingTransport serves repeated GETs from a Store for ttl.
// Only 200 responses are stored; cache failures never fail the request.
type cachingTransport struct {
	base   http.RoundTripper
	store  cache.Store
	ttl    time.Duration
	logger *log.Logger
}

func (t *cachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}
	ctx := req.Context()
	key := req.Method + " " + req.URL.String() + " " + req.Header.Get("Accept")

	data, ok, err := t.store.Get(ctx, key)
	if err != nil {
		t.logger.Warn("Cache read failed", "url", req.URL.String(), "err", err)
	}
	if ok {
		var cached cachedResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			t.logger.Debug("Cache hit", "url", req.URL.String())
			return cached.response(req), nil
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	encoded, err := json.Marshal(cachedResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: body})
	if err == nil {
		err = t.store.Set(ctx, key, encoded, t.ttl)
	}
	if err != nil {
		t.logger.Warn("Cache write failed", "url", req.URL.String(), "err", err)
	}
	return resp, nil
}

func (c cachedResponse) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", c.StatusCode, http.StatusText(c.StatusCode)),
		StatusCode:    c.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        c.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(c.Body)),
		ContentLength: int64(len(c.Body)),
		Request:       req,
	}
}
