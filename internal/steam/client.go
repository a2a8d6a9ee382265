package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnavailable indicates the storefront could not be reached or
	// returned an unusable response.
	ErrUnavailable = errors.New("steam store unavailable")
	// ErrNotFound indicates the storefront has no data for the app id.
	ErrNotFound = errors.New("steam app not found")
)

// Candidate is one discovery result: an app id plus the tentative release
// date scraped from the search listing. ReleaseDate is nil when the listing
// shows no parseable date ("Coming soon", "TBA", quarter labels, ...).
type Candidate struct {
	AppID       int64
	ReleaseDate *time.Time
}

// Detail is the per-app enrichment payload. Followers is an approximate
// popularity estimate taken from the storefront's recommendation total; the
// source defines no accuracy contract for it.
type Detail struct {
	Name             string
	ReleaseDate      *time.Time
	Followers        *int
	StoreURL         string
	ImageURL         string
	ShortDescription string
	Windows          bool
	Mac              bool
	Linux            bool
	Tags             []string
}

// Source defines the external catalog source operations to enable mocking.
type Source interface {
	// ListUpcoming discovers candidate releases for the [start, end) window.
	ListUpcoming(ctx context.Context, start, end time.Time) ([]Candidate, error)
	// FetchDetail fetches the enrichment detail for a single app.
	FetchDetail(ctx context.Context, appID int64) (*Detail, error)
}

// Client talks to the Steam storefront: the coming-soon search page for
// discovery and the appdetails JSON API for enrichment.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxResults int
}

// NewClient creates a storefront client. The timeout applies per request;
// maxResults bounds one discovery run.
func NewClient(baseURL string, timeout time.Duration, maxResults int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
	}
}

var (
	rowPattern      = regexp.MustCompile(`(?s)<a[^>]*search_result_row[^>]*>.*?</a>`)
	appIDPattern    = regexp.MustCompile(`/app/(\d+)/`)
	releasedPattern = regexp.MustCompile(`search_released[^>]*>\s*([^<]*?)\s*<`)
)

// ListUpcoming scrapes the coming-soon search listing and returns at most
// maxResults candidates. Candidates whose tentative date is known and falls
// outside [start, end) are dropped; unknown dates are kept for enrichment
// to resolve.
func (c *Client) ListUpcoming(ctx context.Context, start, end time.Time) ([]Candidate, error) {
	url := c.baseURL + "/search/?filter=comingsoon&category1=998&supportedlang=english&page=1"

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var candidates []Candidate

	// The listing is one anchor element per result row; the app id sits in
	// the href and the tentative date in the search_released column.
	for _, row := range rowPattern.FindAllString(string(body), -1) {
		m := appIDPattern.FindStringSubmatch(row)
		if m == nil {
			continue
		}
		appID, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || seen[appID] {
			continue
		}

		var tentative *time.Time
		if rm := releasedPattern.FindStringSubmatch(row); rm != nil {
			tentative = ParseReleaseDate(rm[1])
		}
		if tentative != nil && (tentative.Before(start) || !tentative.Before(end)) {
			continue
		}

		seen[appID] = true
		candidates = append(candidates, Candidate{AppID: appID, ReleaseDate: tentative})
		if len(candidates) >= c.maxResults {
			break
		}
	}

	return candidates, nil
}

type appDetailsEnvelope struct {
	Success bool           `json:"success"`
	Data    appDetailsData `json:"data"`
}

type appDetailsData struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	HeaderImage      string `json:"header_image"`
	Platforms        struct {
		Windows bool `json:"windows"`
		Mac     bool `json:"mac"`
		Linux   bool `json:"linux"`
	} `json:"platforms"`
	Genres []struct {
		Description string `json:"description"`
	} `json:"genres"`
	ReleaseDate struct {
		ComingSoon bool   `json:"coming_soon"`
		Date       string `json:"date"`
	} `json:"release_date"`
	Recommendations struct {
		Total int `json:"total"`
	} `json:"recommendations"`
}

// FetchDetail calls the appdetails API for one app id.
func (c *Client) FetchDetail(ctx context.Context, appID int64) (*Detail, error) {
	url := fmt.Sprintf("%s/api/appdetails?appids=%d&l=en&cc=us", c.baseURL, appID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var response map[string]appDetailsEnvelope
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decoding appdetails response: %v", ErrUnavailable, err)
	}

	envelope, ok := response[strconv.FormatInt(appID, 10)]
	if !ok || !envelope.Success {
		return nil, ErrNotFound
	}
	data := envelope.Data

	tags := make([]string, 0, len(data.Genres))
	for _, g := range data.Genres {
		if g.Description != "" {
			tags = append(tags, g.Description)
		}
	}

	var followers *int
	if data.Recommendations.Total > 0 {
		total := data.Recommendations.Total
		followers = &total
	}

	return &Detail{
		Name:             data.Name,
		ReleaseDate:      ParseReleaseDate(data.ReleaseDate.Date),
		Followers:        followers,
		StoreURL:         fmt.Sprintf("%s/app/%d/", c.baseURL, appID),
		ImageURL:         data.HeaderImage,
		ShortDescription: data.ShortDescription,
		Windows:          data.Platforms.Windows,
		Mac:              data.Platforms.Mac,
		Linux:            data.Platforms.Linux,
		Tags:             tags,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	return body, nil
}

// releaseDateLayouts covers the date formats the storefront is known to use.
var releaseDateLayouts = []string{
	"2 Jan, 2006",
	"Jan 2, 2006",
	"2 January, 2006",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
	"2006-01-02",
	"2006",
}

// ParseReleaseDate parses a storefront release-date string. Placeholder
// values like "Coming soon" or "TBA" yield nil: the date is unknown.
func ParseReleaseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "coming soon") || strings.Contains(lower, "tba") ||
		strings.Contains(lower, "to be announced") {
		return nil
	}

	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
