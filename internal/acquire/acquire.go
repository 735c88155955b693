// Package acquire turns external sources (web pages, PDFs) into a single
// text blob plus metadata. Acquisition is load-bearing: unlike enrichment,
// failures here surface to the caller because nothing downstream works
// without content.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout is the HTTP request timeout for light-mode scraping.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent is sent with light-mode HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// minFragmentLength discards menu noise and other short fragments.
	minFragmentLength = 30
)

// ErrUnsupportedScheme rejects URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("URL must start with http:// or https://")

// Page is the result of scraping a URL.
type Page struct {
	URL        string
	Domain     string
	Text       string
	HTMLLength int
}

// Error wraps a failed acquisition with its source URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("acquire error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("acquire error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures scraping behavior.
type Options struct {
	// Rendered uses a headless browser instead of a plain HTTP fetch.
	Rendered bool
	// Timeout overrides the default HTTP timeout (light mode only;
	// rendered mode has its own longer fixed timeout).
	Timeout time.Duration
	// UserAgent overrides the default user agent.
	UserAgent string
}

// Scrape fetches readable content from a URL. The scheme must be http or
// https; anything else returns ErrUnsupportedScheme. In light mode the raw
// HTML is fetched and title/heading/paragraph/list text extracted, dropping
// fragments under the minimum length. In rendered mode a headless browser
// returns the visible body text.
func Scrape(ctx context.Context, rawURL string, opts *Options) (*Page, error) {
	if opts == nil {
		opts = &Options{}
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrUnsupportedScheme
	}

	if opts.Rendered {
		text, err := renderedBodyText(ctx, rawURL)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
		}
		return &Page{URL: rawURL, Domain: parsed.Host, Text: text}, nil
	}

	html, err := fetchHTML(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractReadableText(html)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
	}

	return &Page{
		URL:        rawURL,
		Domain:     parsed.Host,
		Text:       text,
		HTMLLength: len(html),
	}, nil
}

// fetchHTML retrieves raw HTML over plain HTTP.
func fetchHTML(ctx context.Context, rawURL string, opts *Options) (string, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	return string(body), nil
}

// ExtractReadableText pulls title, heading, paragraph and list text out of
// raw HTML, discarding scripts, styles, navigation chrome and fragments
// shorter than the minimum length.
func ExtractReadableText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, footer, nav, header").Remove()

	var parts []string

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		parts = append(parts, title)
	}

	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) >= minFragmentLength {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n"), nil
}

// Domain returns the authority component of a URL, or "" when unparsable.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
