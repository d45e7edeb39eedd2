package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUpstreamStatus is returned when the forecast service answers with a
// non-200 status.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Client talks to the JMA forecast endpoints.
type Client struct {
	http        *http.Client
	areaURL     string
	forecastURL string
}

// NewClient builds a client. forecastURL is a fmt template taking the area
// code, e.g. ".../forecast/%s.json".
func NewClient(areaURL, forecastURL string, timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		areaURL:     areaURL,
		forecastURL: forecastURL,
	}
}

type areaTable struct {
	Centers map[string]struct {
		Name     string   `json:"name"`
		Children []string `json:"children"`
	} `json:"centers"`
	Offices map[string]struct {
		Name string `json:"name"`
	} `json:"offices"`
}

type forecastDocument []struct {
	TimeSeries []struct {
		TimeDefines []string `json:"timeDefines"`
		Areas       []struct {
			Weathers []string `json:"weathers"`
		} `json:"areas"`
	} `json:"timeSeries"`
}

// FetchAreas downloads the area table and flattens it to offices with their
// center. Children that are not offices are skipped.
func (c *Client) FetchAreas(ctx context.Context) ([]Area, error) {
	var table areaTable
	if err := c.getJSON(ctx, c.areaURL, &table); err != nil {
		return nil, fmt.Errorf("fetch areas: %w", err)
	}

	centerCodes := make([]string, 0, len(table.Centers))
	for code := range table.Centers {
		centerCodes = append(centerCodes, code)
	}
	sort.Strings(centerCodes)

	var areas []Area
	for _, cc := range centerCodes {
		center := table.Centers[cc]
		for _, oc := range center.Children {
			office, ok := table.Offices[oc]
			if !ok {
				continue
			}
			areas = append(areas, Area{Code: oc, Name: office.Name, Center: center.Name})
		}
	}

	return areas, nil
}

// FetchForecast downloads the short-term forecast for one area and returns
// one line per time define, dated by its first ten characters.
func (c *Client) FetchForecast(ctx context.Context, areaCode string) ([]DayForecast, error) {
	var doc forecastDocument
	if err := c.getJSON(ctx, fmt.Sprintf(c.forecastURL, areaCode), &doc); err != nil {
		return nil, fmt.Errorf("fetch forecast %s: %w", areaCode, err)
	}

	if len(doc) == 0 || len(doc[0].TimeSeries) == 0 {
		return nil, nil
	}

	series := doc[0].TimeSeries[0]
	if len(series.Areas) == 0 {
		return nil, nil
	}
	weathers := series.Areas[0].Weathers

	n := min(len(series.TimeDefines), len(weathers))
	days := make([]DayForecast, 0, n)
	for i := 0; i < n; i++ {
		date := series.TimeDefines[i]
		if len(date) > 10 {
			date = date[:10]
		}
		days = append(days, DayForecast{Date: date, Weather: weathers[i], Icon: IconFor(weathers[i])})
	}

	return days, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", ErrUpstreamStatus, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
