package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/core/donate"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/log"
	"github.com/shieldstats/shieldstats/internal/outwriter"
	"github.com/shieldstats/shieldstats/schema"
)

var contentTypes = map[schema.OutputMode]string{
	schema.JSONOut: "application/json",
	schema.CSVOut:  "text/csv; charset=utf-8",
	schema.TextOut: "text/plain; charset=utf-8",
}

var chartContentTypes = map[schema.ChartFormat]string{
	schema.SVGFormat: "image/svg+xml",
	schema.PNGFormat: "image/png",
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSeries serves the aggregated points. ?output= picks json (default), csv or text.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	output := schema.OutputMode(strings.ToLower(r.URL.Query().Get("output")))
	if output == "" {
		output = schema.JSONOut
	}
	contentType, ok := contentTypes[output]
	if !ok {
		writeError(w, r, http.StatusBadRequest, errors.New("output must be json, csv or text"))
		return
	}
	cfg.Output = output

	start := time.Now()
	result, err := core.GetSeriesResult(core.WithSuppressHeader(r.Context()), cfg, s.loader)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := outwriter.WriteSeriesResults(&buf, result, cfg, time.Since(start)); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

// handleChart renders the chart as SVG or PNG, chosen by the route suffix.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	format := schema.SVGFormat
	if strings.HasSuffix(r.URL.Path, ".png") {
		format = schema.PNGFormat
	}

	c := core.NewComponent(core.Options{DataURL: cfg.DataURL, Params: cfg.Params}, s.loader, s.renderer)
	defer c.Close()
	if err := c.Load(r.Context()); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := c.Chart().WriteTo(&buf, format); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", chartContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=60")
	_, _ = w.Write(buf.Bytes())
}

// handleDonate builds a payment request from ?amount= and ?memo=.
func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var amount float64
	if v := strings.TrimSpace(q.Get("amount")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, errors.New("amount must be a number"))
			return
		}
		amount = parsed
	}

	view, err := core.BuildDonation(s.cfg, amount, q.Get("memo"))
	switch {
	case errors.Is(err, donate.ErrNoAddress):
		writeError(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleIndex renders the page with the chart, a point table with hover
// text and, when an address is configured, the donation widget.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data := indexData{
		Params:   cfg.Params,
		ChartURL: template.URL("/chart.svg?" + encodeParams(cfg.Params)),
		Pools:    []schema.PoolFilter{schema.AllPools, schema.OrchardOnly, schema.SaplingOnly},
	}
	result, err := core.GetSeriesResult(core.WithSuppressHeader(r.Context()), cfg, s.loader)
	if err != nil {
		log.FromContext(r.Context()).Warn("Series unavailable for page", log.FieldError, err)
		data.Error = err.Error()
	} else {
		data.setResult(result, cfg.Precision)
	}
	if cfg.DonationAddress != "" {
		if view, err := core.BuildDonation(cfg, 0, ""); err == nil {
			data.Donation = &view
		}
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.FromContext(r.Context()).Error("Index template execution failed", log.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// requestConfig applies the query parameters to a copy of the server config.
func (s *Server) requestConfig(r *http.Request) (*contract.Config, error) {
	params, err := parseParams(r.URL.Query(), s.cfg.Params)
	if err != nil {
		return nil, err
	}
	cfg := s.cfg.CloneWithParams(params)
	cfg.UseColors = false
	cfg.OutputFile = ""
	return cfg, nil
}

// statusFor maps a pipeline error onto an HTTP status.
func statusFor(err error) int {
	var fetchErr *schema.FetchError
	var parseErr *schema.ParseError
	switch {
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrNoDataURL):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", log.FieldStatusCode, status, log.FieldError, err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
