package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// followRedirectsKey carries the per-request redirect flag through the
// request context, so one shared Client applies each config's policy
// identically in sequential and parallel modes.
type followRedirectsKey struct{}

// Client executes RequestConfigs over a shared connection pool. A single
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient   *http.Client
	diag         io.Writer
	userAgent    string
	maxRedirects int
	validateSSL  bool
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		diag:         os.Stderr,
		maxRedirects: DefaultMaxRedirects,
		validateSSL:  true,
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	// The per-request deadline comes from the request context, so the
	// client itself carries no Timeout.
	c.httpClient = &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if follow, ok := req.Context().Value(followRedirectsKey{}).(bool); ok && !follow {
				return http.ErrUseLastResponse
			}
			if len(via) >= c.maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return c
}

// WithDiagWriter sets the destination for verbose request/response lines.
func WithDiagWriter(w io.Writer) ClientOption {
	return func(c *Client) {
		c.diag = w
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithValidateSSL enables or disables TLS certificate validation.
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// Execute performs one network round trip for the given config and returns
// a normalized Response. Any status the server returns, including 4xx and
// 5xx, is a normal Response; only configuration and transport failures
// produce an error.
func (c *Client) Execute(cfg *RequestConfig) (*Response, error) {
	if err := validateURL(cfg.URL); err != nil {
		return nil, err
	}
	for _, h := range cfg.Headers {
		if err := validateHeader(h); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout())
	defer cancel()
	ctx = context.WithValue(ctx, followRedirectsKey{}, cfg.FollowRedirects)

	var body io.Reader
	if cfg.Body != "" {
		body = strings.NewReader(cfg.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(cfg.Method), cfg.URL, body)
	if err != nil {
		return nil, &InvalidURLError{URL: cfg.URL, Reason: err.Error()}
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for _, h := range cfg.Headers {
		req.Header.Add(h.Name, h.Value)
	}
	if !cfg.Compression {
		// Setting Accept-Encoding explicitly also disables the
		// transport's automatic gzip handling for this request.
		req.Header.Set("Accept-Encoding", "identity")
	}

	if cfg.Verbose {
		c.printRequest(cfg)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: cfg.URL, Err: err}
	}
	defer httpResp.Body.Close()

	// HEAD responses carry no body regardless of Content-Length.
	var respBody []byte
	if cfg.Method != MethodHead {
		respBody, err = io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, &TransportError{URL: cfg.URL, Err: err}
		}
	}
	duration := time.Since(start)

	headers := make(map[string]string, len(httpResp.Header))
	for name, values := range httpResp.Header {
		if len(values) == 0 {
			continue
		}
		headers[strings.ToLower(name)] = values[len(values)-1]
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		StatusText: statusText(httpResp),
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}

	if cfg.Verbose {
		c.printResponse(resp)
	}

	if cfg.OutputFile != "" {
		if err := writeOutputFile(cfg, resp); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (c *Client) printRequest(cfg *RequestConfig) {
	fmt.Fprintf(c.diag, "> %s %s\n", cfg.Method, cfg.URL)
	for _, h := range cfg.Headers {
		fmt.Fprintf(c.diag, "> %s: %s\n", h.Name, h.Value)
	}
	fmt.Fprintln(c.diag, ">")
}

func (c *Client) printResponse(resp *Response) {
	fmt.Fprintf(c.diag, "< HTTP/1.1 %d %s\n", resp.StatusCode, resp.StatusText)
	for _, name := range resp.HeaderNames() {
		fmt.Fprintf(c.diag, "< %s: %s\n", name, resp.Headers[name])
	}
	fmt.Fprintln(c.diag, "<")
}

// validateURL rejects empty, malformed or non-HTTP URLs before any
// network I/O.
func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &InvalidURLError{Reason: "URL cannot be empty"}
	}

	u, err := neturl.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{URL: rawURL, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidURLError{URL: rawURL, Reason: "unsupported scheme " + u.Scheme}
	}
	if u.Host == "" {
		return &InvalidURLError{URL: rawURL, Reason: "URL must have a host"}
	}
	return nil
}

func statusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if text, found := strings.CutPrefix(resp.Status, prefix); found && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func writeOutputFile(cfg *RequestConfig, resp *Response) error {
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return &FileWriteError{Path: cfg.OutputFile, Err: err}
	}

	var sb strings.Builder
	if cfg.IncludeHeaders {
		fmt.Fprintf(&sb, "HTTP/1.1 %d %s\n", resp.StatusCode, resp.StatusText)
		for _, name := range resp.HeaderNames() {
			fmt.Fprintf(&sb, "%s: %s\n", name, resp.Headers[name])
		}
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(f, sb.String()); err != nil {
		_ = f.Close()
		return &FileWriteError{Path: cfg.OutputFile, Err: err}
	}
	if _, err := f.Write(resp.Body); err != nil {
		_ = f.Close()
		return &FileWriteError{Path: cfg.OutputFile, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileWriteError{Path: cfg.OutputFile, Err: err}
	}
	return nil
}
