package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pageza/ladle/backend/internal/types"
)

const (
	// DefaultMaxBytes caps the decoded response body size.
	DefaultMaxBytes = 2_000_000

	// DefaultTimeout bounds one complete fetch, redirects included.
	DefaultTimeout = 15 * time.Second

	maxRedirects = 5
	retryBackoff = 500 * time.Millisecond

	userAgent = "ladle-scraper/1.0 (+https://github.com/pageza/ladle)"
)

// Result is a successfully fetched HTML page.
type Result struct {
	HTML       string
	FinalURL   string
	StatusCode int
}

// Fetcher retrieves untrusted third-party URLs with SSRF and resource
// exhaustion defenses applied to every request and every redirect hop.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	timeout  time.Duration

	// lookupIP is swappable so tests can simulate DNS answers.
	lookupIP func(ctx context.Context, host string) ([]netip.Addr, error)

	// allowPrivate disables the address checks. Only set by tests that
	// fetch from loopback httptest servers.
	allowPrivate bool
}

// New creates a Fetcher. maxBytes and timeout fall back to the package
// defaults when zero.
func New(maxBytes int64, timeout time.Duration) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			// Redirects are followed manually so every hop can be
			// re-validated before the request goes out.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxBytes: maxBytes,
		timeout:  timeout,
		lookupIP: func(ctx context.Context, host string) ([]netip.Addr, error) {
			return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		},
	}
}

// Fetch retrieves rawURL and returns its HTML. Transient network failures
// are retried once after a short fixed backoff; timeouts and validation
// failures are not.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	res, err := f.fetchOnce(ctx, rawURL)
	if err != nil && isTransient(err) && ctx.Err() == nil {
		slog.Warn("fetch failed, retrying once", "url", rawURL, "error", err)
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return nil, types.NewScrapeError(types.ErrNetwork, "fetch timed out", ctx.Err())
		}
		res, err = f.fetchOnce(ctx, rawURL)
	}
	return res, err
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*Result, error) {
	current, err := f.validateURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	for hop := 0; ; hop++ {
		resp, err := f.do(ctx, current)
		if err != nil {
			return nil, err
		}

		if isRedirect(resp.StatusCode) {
			resp.Body.Close()
			if hop == maxRedirects {
				return nil, types.NewScrapeError(types.ErrScrapeFailed,
					fmt.Sprintf("more than %d redirects", maxRedirects), nil)
			}
			location := resp.Header.Get("Location")
			if location == "" {
				return nil, types.NewScrapeError(types.ErrScrapeFailed,
					"redirect response without Location header", nil)
			}
			target, err := current.Parse(location)
			if err != nil {
				return nil, types.NewScrapeError(types.ErrScrapeFailed,
					"invalid redirect target", err)
			}
			// Every hop goes through the same safety checks as the
			// original URL.
			current, err = f.validateURL(ctx, target.String())
			if err != nil {
				return nil, err
			}
			continue
		}

		return f.readResponse(current, resp)
	}
}

func (f *Fetcher) do(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, types.NewScrapeError(types.ErrInvalidURL, "could not build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, types.NewScrapeError(types.ErrNetwork, "fetch timed out", ctx.Err())
		}
		return nil, types.NewScrapeError(types.ErrNetwork, "request failed", err)
	}
	return resp, nil
}

func (f *Fetcher) readResponse(u *url.URL, resp *http.Response) (*Result, error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, types.NewScrapeError(types.ErrBlockedBySite,
			fmt.Sprintf("site returned HTTP %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, types.NewScrapeError(types.ErrRecipeNotFound, "page not found", nil)
	case resp.StatusCode >= 500:
		return nil, types.NewScrapeError(types.ErrScrapeFailed,
			fmt.Sprintf("server error HTTP %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		return nil, types.NewScrapeError(types.ErrScrapeFailed,
			fmt.Sprintf("unexpected HTTP %d", resp.StatusCode), nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, types.NewScrapeError(types.ErrScrapeFailed,
			fmt.Sprintf("unsupported content type %q", contentType), nil)
	}

	// Content-Length is advisory only; the counting reader below is the
	// enforcement that matters.
	if resp.ContentLength > f.maxBytes {
		return nil, types.NewScrapeError(types.ErrScrapeFailed,
			fmt.Sprintf("response of %d bytes exceeds limit of %d", resp.ContentLength, f.maxBytes), nil)
	}

	counted := &countingReader{r: resp.Body, limit: f.maxBytes}
	decoded, err := charset.NewReader(counted, contentType)
	if err != nil {
		decoded = counted
	}

	body, err := io.ReadAll(decoded)
	if counted.exceeded {
		return nil, types.NewScrapeError(types.ErrScrapeFailed,
			fmt.Sprintf("response body exceeds limit of %d bytes", f.maxBytes), nil)
	}
	if err != nil {
		return nil, types.NewScrapeError(types.ErrNetwork, "failed to read response body", err)
	}

	return &Result{
		HTML:       string(body),
		FinalURL:   u.String(),
		StatusCode: resp.StatusCode,
	}, nil
}

// validateURL applies every safety check to rawURL and returns the parsed
// form when it is acceptable to fetch.
func (f *Fetcher) validateURL(ctx context.Context, rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, types.NewScrapeError(types.ErrInvalidURL, "unparseable URL", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, types.NewScrapeError(types.ErrInvalidURL,
			fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	if u.User != nil {
		return nil, types.NewScrapeError(types.ErrInvalidURL, "URLs with embedded credentials are not allowed", nil)
	}

	host := u.Hostname()
	if host == "" {
		return nil, types.NewScrapeError(types.ErrInvalidURL, "missing host", nil)
	}
	if isBlockedHostname(host) {
		return nil, types.NewScrapeError(types.ErrInvalidURL,
			fmt.Sprintf("host %q is not fetchable", host), nil)
	}

	if f.allowPrivate {
		return u, nil
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if isDisallowedIP(addr) {
			return nil, types.NewScrapeError(types.ErrInvalidURL,
				fmt.Sprintf("address %s is in a private or reserved range", addr), nil)
		}
		return u, nil
	}

	// Resolve every record and reject if any lands in a private range. A
	// public name that also resolves privately is a rebinding attempt.
	addrs, err := f.lookupIP(ctx, host)
	if err != nil {
		return nil, types.NewScrapeError(types.ErrNetwork,
			fmt.Sprintf("could not resolve host %q", host), err)
	}
	if len(addrs) == 0 {
		return nil, types.NewScrapeError(types.ErrNetwork,
			fmt.Sprintf("host %q has no addresses", host), nil)
	}
	for _, addr := range addrs {
		if isDisallowedIP(addr) {
			return nil, types.NewScrapeError(types.ErrInvalidURL,
				fmt.Sprintf("host %q resolves to private address %s", host, addr), nil)
		}
	}

	return u, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func isHTMLContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// isTransient reports whether err is a network-class failure worth one
// retry. Timeouts and validation rejections are excluded.
func isTransient(err error) bool {
	var se *types.ScrapeError
	if !errors.As(err, &se) || se.Code != types.ErrNetwork {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	return se.Err != nil
}

// countingReader counts raw bytes off the wire and flags the moment the
// limit is crossed, independent of what Content-Length claimed.
type countingReader struct {
	r        io.Reader
	limit    int64
	count    int64
	exceeded bool
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	if c.count > c.limit {
		c.exceeded = true
		return n, io.EOF
	}
	return n, err
}
