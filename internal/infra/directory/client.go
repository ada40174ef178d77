package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
)

const (
	defaultRequestTimeout = domain.DefaultRequestTimeoutSeconds * time.Second
	maxErrorBodyBytes     = 512
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    domain.Metrics
	UserAgent  string
}

// Client talks to the API directory service.
type Client struct {
	mu      sync.RWMutex
	baseURL *url.URL

	http      *http.Client
	timeout   time.Duration
	logger    *zap.Logger
	metrics   domain.Metrics
	userAgent string
}

// NewClient validates the base URL and builds a client.
func NewClient(opts Options) (*Client, error) {
	base, err := ParseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = domain.UserAgentProduct
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		timeout:   timeout,
		logger:    logger.Named("directory"),
		metrics:   metrics,
		userAgent: userAgent,
	}, nil
}

// ParseBaseURL accepts absolute http(s) URLs; a trailing slash is dropped.
func ParseBaseURL(raw string) (*url.URL, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, domain.InvalidArgumentError("parse base url", "base url is required")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return nil, domain.E(domain.CodeInvalidArgument, "parse base url", "", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, domain.InvalidArgumentError("parse base url", fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	}
	if parsed.Host == "" {
		return nil, domain.InvalidArgumentError("parse base url", "base url has no host")
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed, nil
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL.String()
}

// SetBaseURL swaps the base URL for subsequent requests.
func (c *Client) SetBaseURL(raw string) error {
	base, err := ParseBaseURL(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	previous := c.baseURL.String()
	c.baseURL = base
	c.mu.Unlock()
	if previous != base.String() {
		c.logger.Info("base url changed", zap.String("previous", previous), telemetry.URLField(base.String()))
	}
	return nil
}

// ListProviders fetches the provider ids in directory order.
func (c *Client) ListProviders(ctx context.Context) ([]domain.ProviderID, error) {
	const op = "list providers"

	var doc domain.DirectoryDocument
	if err := c.getJSON(ctx, op, domain.FetchKindDirectory, domain.DirectoryDocumentName, &doc); err != nil {
		return nil, err
	}
	return domain.ProviderIDs(doc.Data), nil
}

// FetchDescriptorSet fetches the provider document and returns its apis map.
func (c *Client) FetchDescriptorSet(ctx context.Context, id domain.ProviderID) (domain.DescriptorSet, error) {
	const op = "fetch descriptor"

	if err := id.Validate(); err != nil {
		return domain.DescriptorSet{}, domain.Wrap(domain.CodeInvalidArgument, op, err)
	}
	var doc domain.ProviderDocument
	name := url.PathEscape(string(id)) + domain.DescriptorDocumentExtension
	if err := c.getJSON(ctx, op, domain.FetchKindDescriptor, name, &doc); err != nil {
		return domain.DescriptorSet{}, err
	}
	return doc.APIs, nil
}

// FetchDescriptor fetches the provider document and resolves one descriptor.
func (c *Client) FetchDescriptor(ctx context.Context, id domain.ProviderID) (domain.Resolution, error) {
	set, err := c.FetchDescriptorSet(ctx, id)
	if err != nil {
		return domain.Resolution{}, err
	}
	res, err := domain.ResolveDescriptor(set, id)
	if err != nil {
		return domain.Resolution{}, domain.Wrap(domain.CodeNotFound, "fetch descriptor", err)
	}
	if res.Fallback {
		c.logger.Debug("descriptor resolved by fallback",
			telemetry.EventField(telemetry.EventResolveFallback),
			telemetry.ProviderField(string(id)),
			zap.String("key", res.Key),
		)
	}
	return res, nil
}

func (c *Client) endpoint(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL.String() + "/" + name
}

func (c *Client) getJSON(ctx context.Context, op string, kind domain.FetchKind, name string, out any) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, meta := telemetry.EnsureRequestMeta(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.endpoint(name)
	logger := telemetry.LoggerWithRequest(ctx, c.logger).With(telemetry.URLField(endpoint))
	started := time.Now()
	logger.Debug("fetch started", telemetry.EventField(telemetry.EventFetchStart))

	defer func() {
		duration := time.Since(started)
		c.metrics.ObserveFetch(domain.FetchMetric{
			Kind:     kind,
			Status:   domain.FetchStatusFrom(err),
			Duration: duration,
		})
		if err != nil {
			logger.Debug("fetch failed", telemetry.EventField(telemetry.EventFetchFailure), telemetry.DurationField(duration), zap.Error(err))
			return
		}
		logger.Debug("fetch succeeded", telemetry.EventField(telemetry.EventFetchSuccess), telemetry.DurationField(duration))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.E(domain.CodeInternal, op, "", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(telemetry.RequestIDHeader, meta.RequestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		cause := fmt.Errorf("unexpected status: %s", resp.Status)
		if body := strings.TrimSpace(string(snippet)); body != "" {
			cause = fmt.Errorf("unexpected status: %s: %s", resp.Status, body)
		}
		e := domain.NetworkError(op, cause)
		e.Meta = map[string]string{"status": fmt.Sprint(resp.StatusCode)}
		return e
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NetworkError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
