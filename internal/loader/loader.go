// Package loader fetches shielded activity samples from a data URL.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// HTTPLoader loads samples over HTTP(S), or from disk for file:// URLs.
type HTTPLoader struct {
	client       *http.Client
	maxBodyBytes int64
}

var _ contract.Loader = &HTTPLoader{} // Compile-time check

// NewHTTPLoader creates a loader with the given request timeout and body limit.
// Zero values fall back to the configuration defaults.
func NewHTTPLoader(timeout time.Duration, maxBodyBytes int64) *HTTPLoader {
	if timeout <= 0 {
		timeout = contract.DefaultTimeout
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = contract.DefaultMaxBodyBytes
	}
	return &HTTPLoader{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
	}
}

// NewFromConfig creates a loader from the validated configuration.
func NewFromConfig(cfg *contract.Config) *HTTPLoader {
	return NewHTTPLoader(cfg.Timeout, cfg.MaxBodyBytes)
}

// Load implements the contract.Loader interface.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string) ([]schema.RawSample, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &schema.FetchError{URL: rawURL, Err: err}
	}

	var body []byte
	if u.Scheme == "file" {
		body, err = l.readFile(u.Path)
	} else {
		body, err = l.fetch(ctx, rawURL)
	}
	if err != nil {
		var parseErr *schema.ParseError
		if errors.As(err, &parseErr) {
			parseErr.URL = rawURL
			return nil, parseErr
		}
		var fetchErr *schema.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}
		return nil, &schema.FetchError{URL: rawURL, Err: err}
	}

	samples, err := Decode(body)
	if err != nil {
		return nil, &schema.ParseError{URL: rawURL, Err: err}
	}
	return samples, nil
}

// fetch performs the GET request and reads the bounded body.
func (l *HTTPLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &schema.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", resp.Status),
		}
	}
	return l.readBounded(resp.Body)
}

// readFile reads a local sample file with the same size bound as HTTP bodies.
func (l *HTTPLoader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return l.readBounded(f)
}

// readBounded reads at most maxBodyBytes; anything larger is a ParseError.
func (l *HTTPLoader) readBounded(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, l.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > l.maxBodyBytes {
		return nil, &schema.ParseError{Err: fmt.Errorf("response body exceeds %d bytes", l.maxBodyBytes)}
	}
	return body, nil
}

// wireSample mirrors schema.RawSample with pointer fields so a missing key
// can be told apart from a zero value.
type wireSample struct {
	Height          *int64   `json:"height"`
	Sapling         *float64 `json:"sapling"`
	SaplingFiltered *float64 `json:"sapling_filter"`
	Orchard         *float64 `json:"orchard"`
	OrchardFiltered *float64 `json:"orchard_filter"`
}

func (w *wireSample) sample(i int) (schema.RawSample, error) {
	if w == nil {
		return schema.RawSample{}, fmt.Errorf("sample %d is null", i)
	}
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"height", w.Height != nil},
		{"sapling", w.Sapling != nil},
		{"sapling_filter", w.SaplingFiltered != nil},
		{"orchard", w.Orchard != nil},
		{"orchard_filter", w.OrchardFiltered != nil},
	} {
		if !f.present {
			return schema.RawSample{}, fmt.Errorf("sample %d is missing %q", i, f.name)
		}
	}
	return schema.RawSample{
		Height:          *w.Height,
		Sapling:         *w.Sapling,
		SaplingFiltered: *w.SaplingFiltered,
		Orchard:         *w.Orchard,
		OrchardFiltered: *w.OrchardFiltered,
	}, nil
}

// Decode parses a JSON array of samples. A top-level null, any non-array
// value, unknown keys, null elements and elements missing a field are rejected.
func Decode(body []byte) ([]schema.RawSample, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of samples")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var wire []*wireSample
	if err := dec.Decode(&wire); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the sample array")
	}

	samples := make([]schema.RawSample, len(wire))
	for i, w := range wire {
		s, err := w.sample(i)
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}
	return samples, nil
}
