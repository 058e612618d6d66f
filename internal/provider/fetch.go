package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"traitbase/internal/domain"
)

const userAgent = "traitbase/0.1"

// httpClient is shared by all built-in providers. The generous timeout
// covers the larger archive downloads on slow mirrors.
var httpClient = &http.Client{Timeout: 10 * time.Minute}

// fetch downloads a dataset URL and returns its body. The caller closes it.
func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// fetchTable downloads a delimited dataset and parses it with parseTable.
func fetchTable(ctx context.Context, url string, spec tableSpec) (*domain.Result, error) {
	body, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	parsed, err := parseTable(body, spec)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return parsed, nil
}
