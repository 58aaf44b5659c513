package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-feed-digest/internal/core/constants"
	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

const (
	homeTimelinePath    = "statuses/home_timeline.json"
	accountSettingsPath = "account/settings.json"
	defaultHTTPTimeout  = 30 * time.Second
)

// HTTPConfig configures an HTTPProvider.
type HTTPConfig struct {
	BaseURL  string
	Token    string
	PageSize int
	Client   *http.Client
}

// HTTPProvider reads the home timeline of a REST API that pages with an
// inclusive max_id parameter.
type HTTPProvider struct {
	baseURL    *url.URL
	token      string
	pageSize   int
	httpClient *http.Client
}

type tweetHeader struct {
	IDStr     string `json:"id_str"`
	CreatedAt string `json:"created_at"`
}

type apiErrorPayload struct {
	Errors []APIErrorDetail `json:"errors"`
}

type accountSettings struct {
	TimeZone struct {
		Name         string  `json:"name"`
		TZInfoName   *string `json:"tzinfo_name"`
		UTCOffsetSec int     `json:"utc_offset"`
	} `json:"time_zone"`
}

// NewHTTPProvider validates cfg and creates a provider.
func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > constants.MaxTimelineCount {
		pageSize = constants.MaxTimelineCount
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &HTTPProvider{
		baseURL:    base,
		token:      cfg.Token,
		pageSize:   pageSize,
		httpClient: client,
	}, nil
}

func (p *HTTPProvider) Name() string {
	return "http:" + p.baseURL.Host
}

// Fetch requests one home timeline page.
func (p *HTTPProvider) Fetch(ctx context.Context, cursor model.Cursor) ([]model.TimelineItem, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(p.pageSize))
	if id, ok := cursor.ID(); ok {
		query.Set("max_id", id)
	}

	body, err := p.get(ctx, homeTimelinePath, query)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := sonic.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("%w: timeline: %v", ErrMalformedResponse, err)
	}

	items := make([]model.TimelineItem, 0, len(raws))
	for i, raw := range raws {
		var header tweetHeader
		if err := sonic.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("%w: timeline item %d: %v", ErrMalformedResponse, i, err)
		}
		if header.IDStr == "" {
			return nil, fmt.Errorf("%w: timeline item %d has no id_str", ErrMalformedResponse, i)
		}
		createdAt, err := ParseProviderDate(header.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: timeline item %s: %v", ErrMalformedResponse, header.IDStr, err)
		}
		items = append(items, model.TimelineItem{ID: header.IDStr, CreatedAt: createdAt, Payload: raw})
	}

	util.LogDebugf("HTTP provider fetched %d items for cursor %s", len(items), cursor)
	return items, nil
}

// FetchTimeZone returns the IANA timezone configured on the account.
func (p *HTTPProvider) FetchTimeZone(ctx context.Context) (string, error) {
	body, err := p.get(ctx, accountSettingsPath, nil)
	if err != nil {
		return "", err
	}

	var settings accountSettings
	if err := sonic.Unmarshal(body, &settings); err != nil {
		return "", fmt.Errorf("%w: account settings: %v", ErrMalformedResponse, err)
	}
	if settings.TimeZone.TZInfoName == nil || *settings.TimeZone.TZInfoName == "" {
		return "", ErrNoTimeZone
	}
	return *settings.TimeZone.TZInfoName, nil
}

func (p *HTTPProvider) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := p.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload apiErrorPayload
		if err := sonic.Unmarshal(body, &payload); err == nil {
			apiErr.Errors = payload.Errors
		}
		util.LogDebugf("Request to %s failed: %v", path, apiErr)
		return nil, apiErr
	}

	return body, nil
}
