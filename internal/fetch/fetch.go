// Package fetch retrieves FAQ sources from standard input, local files and URLs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Size limits for a single FAQ source
const (
	MaxFileSizeBytes = 10 * 1024 * 1024 // 10MB limit for files and stdin
	MaxHTTPSizeBytes = 20 * 1024 * 1024 // 20MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole HTTP fetch
const HTTPRequestTimeout = 30 * time.Second

// phase timeouts derived from HTTPRequestTimeout
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6
	HTTPTLSTimeout            = HTTPRequestTimeout / 6
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// media types reported for sources without better information
const (
	MediaTypeText = "text/plain"
	MediaTypeHTML = "text/html"
)

// Content is an open FAQ source.
type Content struct {
	io.ReadCloser
	Source    string // source as given by the caller
	MediaType string // e.g. "text/plain" or "text/html", without parameters
}

// IsHTML reports whether the content should be parsed as an HTML page.
func (c *Content) IsHTML() bool {
	return c.MediaType == MediaTypeHTML || c.MediaType == "application/xhtml+xml"
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared across fetches and safe for concurrent use
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// GetContent opens a FAQ source. It supports three kinds of sources:
//   - "-" reads from standard input (reported as plain text)
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// The caller must close the returned Content.
func GetContent(ctx context.Context, source string) (*Content, error) {
	switch {
	case source == "-":
		return &Content{
			ReadCloser: &limitedReadCloser{
				ReadCloser: io.NopCloser(os.Stdin),
				N:          MaxFileSizeBytes,
				source:     "stdin",
			},
			Source:    source,
			MediaType: MediaTypeText,
		}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetchURL(ctx, source)
	default:
		return fetchFile(ctx, source)
	}
}

// fetchURL retrieves content from an HTTP or HTTPS URL
func fetchURL(ctx context.Context, url string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "faqbot/0.1")
	req.Header.Set("Accept", "text/plain, text/html;q=0.9, */*;q=0.5")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	mediaType := mediaTypeFromHeader(resp.Header.Get("Content-Type"))
	if mediaType == "" {
		mediaType = mediaTypeFromPath(req.URL.Path)
	}

	return &Content{
		ReadCloser: &limitedReadCloser{
			ReadCloser: resp.Body,
			N:          MaxHTTPSizeBytes,
			source:     url,
		},
		Source:    url,
		MediaType: mediaType,
	}, nil
}

// fetchFile opens a local file for reading
// ctx is accepted for API consistency but not used for local file operations
func fetchFile(ctx context.Context, path string) (*Content, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return &Content{
		ReadCloser: file,
		Source:     path,
		MediaType:  mediaTypeFromPath(path),
	}, nil
}

// mediaTypeFromHeader strips parameters from a Content-Type header value
func mediaTypeFromHeader(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

// mediaTypeFromPath guesses the media type from a file extension, defaulting to plain text
func mediaTypeFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm", ".xhtml":
		return MediaTypeHTML
	case "", ".txt", ".faq":
		return MediaTypeText
	}
	if guessed := mediaTypeFromHeader(mime.TypeByExtension(ext)); guessed != "" {
		return guessed
	}
	return MediaTypeText
}
