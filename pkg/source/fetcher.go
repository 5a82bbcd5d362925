// Package source reads a portfolio content document from a file or URL.
package source

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/pkg/errors"
)

// MaxDocumentSize caps how much of a content document is read.
const MaxDocumentSize = 4 << 20

// DefaultTimeout bounds a URL fetch when the caller has no deadline.
const DefaultTimeout = 30 * time.Second

// Load returns the dataset at input, or the built-in dataset when input is empty.
func Load(ctx context.Context, input string) (data content.Dataset, err error) {
	if input == "" {
		data, err = content.LoadDefault()
		return data, err
	}

	raw, err := FetchWithContext(ctx, input)
	if err != nil {
		return data, err
	}

	data, err = content.Parse(raw)
	if err != nil {
		err = errors.Wrapf(err, "invalid content document: %s", input)
		return data, err
	}

	return data, err
}

// FetchWithContext retrieves a content document with context.
func FetchWithContext(ctx context.Context, input string) (raw []byte, err error) {
	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		raw, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch content from URL: %s", input)
			return raw, err
		}
		return raw, err
	}

	raw, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch content from file: %s", input)
		return raw, err
	}

	return raw, err
}

// fetchFromFile reads a content document from a file.
func fetchFromFile(path string) (raw []byte, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat file: %s", path)
		return raw, err
	}
	if info.Size() > MaxDocumentSize {
		err = errors.Errorf("file is larger than %d bytes", MaxDocumentSize)
		return raw, err
	}

	raw, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return raw, err
	}

	if len(raw) == 0 {
		err = errors.New("file is empty")
		return raw, err
	}

	return raw, err
}

// fetchFromURL retrieves a content document from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (raw []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return raw, err
	}

	req.Header.Set("User-Agent", "portfolio/1.0")
	req.Header.Set("Accept", "application/yaml, application/json, text/plain")

	client := &http.Client{
		Timeout: DefaultTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return raw, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return raw, err
	}

	if mediaType, _, mimeErr := mime.ParseMediaType(resp.Header.Get("Content-Type")); mimeErr == nil && mediaType == "text/html" {
		err = errors.New("URL returned an HTML page, not a content document")
		return raw, err
	}

	raw, err = io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return raw, err
	}

	if len(raw) > MaxDocumentSize {
		err = errors.Errorf("response is larger than %d bytes", MaxDocumentSize)
		return raw, err
	}

	if len(raw) == 0 {
		err = errors.New("fetched content is empty")
		return raw, err
	}

	return raw, err
}
