package server

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// parseParams reads pool, cumulative and filter from the query. Missing
// values fall back to defaults.
func parseParams(q url.Values, defaults schema.AggregateParams) (schema.AggregateParams, error) {
	pool := string(defaults.Pool)
	if v := strings.TrimSpace(q.Get("pool")); v != "" {
		pool = v
	}
	cumulative, err := queryBool(q, "cumulative", defaults.Mode != schema.PeriodicMode)
	if err != nil {
		return schema.AggregateParams{}, err
	}
	filter, err := queryBool(q, "filter", defaults.ShowFiltered)
	if err != nil {
		return schema.AggregateParams{}, err
	}
	return contract.ParseParams(pool, cumulative, filter)
}

func queryBool(q url.Values, key string, def bool) (bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value '%s'", key, v)
	}
	return b, nil
}

// encodeParams is the inverse of parseParams.
func encodeParams(p schema.AggregateParams) string {
	q := url.Values{}
	q.Set("pool", string(p.Pool))
	q.Set("cumulative", strconv.FormatBool(p.Mode == schema.CumulativeMode))
	q.Set("filter", strconv.FormatBool(p.ShowFiltered))
	return q.Encode()
}

// indexData feeds templates/index.html.
type indexData struct {
	Params   schema.AggregateParams
	ChartURL template.URL
	Pools    []schema.PoolFilter
	Error    string

	DataURL string
	Samples int
	Labels  []string
	Rows    []indexRow

	Donation *schema.DonationView
}

type indexRow struct {
	Height  int64
	Cells   []string
	Tooltip string
}

func (d *indexData) setResult(result schema.SeriesResult, precision int) {
	d.DataURL = result.DataURL
	d.Samples = result.Samples
	for _, s := range result.Chart.Series {
		d.Labels = append(d.Labels, s.Label)
	}

	enriched := schema.EnrichPoints(result.Points, result.Chart.Series, precision)
	d.Rows = make([]indexRow, len(result.Chart.Heights))
	for i, h := range result.Chart.Heights {
		cells := make([]string, len(result.Chart.Series))
		for j, s := range result.Chart.Series {
			cells[j] = schema.FormatOptional(s.Values[i], precision)
		}
		d.Rows[i] = indexRow{
			Height:  h,
			Cells:   cells,
			Tooltip: strings.Join(enriched[i].Tooltips, "\n"),
		}
	}
}

var templateFuncs = template.FuncMap{
	"amount": schema.FormatAmount,
	"withPool": func(p schema.AggregateParams, pool schema.PoolFilter) template.URL {
		p.Pool = pool
		return pageURL(p)
	},
	"toggle": func(p schema.AggregateParams, key string) template.URL {
		switch key {
		case "cumulative":
			p.Mode = schema.ModeFromCumulative(p.Mode != schema.CumulativeMode)
		case "filter":
			p.ShowFiltered = !p.ShowFiltered
		}
		return pageURL(p)
	},
	// walletURI marks the zcash: URI as safe; it is built from a validated address.
	"walletURI": func(v schema.DonationView) template.URL {
		return template.URL(v.URI)
	},
}

func pageURL(p schema.AggregateParams) template.URL {
	return template.URL("/?" + encodeParams(p))
}
