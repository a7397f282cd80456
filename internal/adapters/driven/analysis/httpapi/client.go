package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AnalysisClient = (*Client)(nil)

const (
	// FieldFiles is the multipart field every file is sent under.
	FieldFiles = "files"

	// HeaderRequestID carries the correlation id of one analysis run.
	HeaderRequestID = "X-Request-ID"

	// MaxResponseBytes bounds the body read from the server.
	MaxResponseBytes = 64 << 20

	defaultContentType = "application/octet-stream"
)

// Config holds configuration for the analysis client.
type Config struct {
	// BaseURL is the analysis service root, e.g. http://localhost:5000.
	BaseURL string

	// APIToken is sent as a bearer token when non-empty.
	APIToken string

	// Timeout bounds the whole request, zero means no limit.
	Timeout time.Duration

	// RateLimitKBps throttles the upload, zero means unlimited.
	RateLimitKBps int

	// HTTPClient overrides the underlying client. Its Timeout is replaced.
	HTTPClient *http.Client
}

// Client posts selections to the analysis endpoint.
type Client struct {
	http     *http.Client
	baseURL  string
	endpoint string
	throttle *Throttle
}

// NewClient creates a new analysis client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := domain.ValidateBaseURL(base); err != nil {
		return nil, fmt.Errorf("httpapi: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	endpoint, err := url.JoinPath(base, domain.ProcessPath)
	if err != nil {
		return nil, fmt.Errorf("httpapi: build endpoint: %w", err)
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	httpClient.Timeout = cfg.Timeout

	if cfg.APIToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIToken,
			TokenType:   "Bearer",
		}))
	}

	return &Client{
		http:     httpClient,
		baseURL:  base,
		endpoint: endpoint,
		throttle: NewThrottle(cfg.RateLimitKBps),
	}, nil
}

// BaseURL returns the service root used to resolve relative image URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Process uploads files as one request and decodes the snapshot.
// Failures are returned as *domain.AnalysisError.
func (c *Client) Process(ctx context.Context, requestID string, files []domain.InputFile) (*domain.AnalysisResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, c.throttle.Reader(ctx, pr))
	if err != nil {
		pr.CloseWithError(err)
		return nil, domain.NewTransportError(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(HeaderRequestID, requestID)
	}

	logger.Debug("POST %s (%d file(s), request %s)", c.endpoint, len(files), requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		pr.CloseWithError(err)
		return nil, domain.NewTransportError(unwrapURLError(err))
	}
	defer resp.Body.Close()
	defer pr.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("read response: %w", err))
	}

	logger.Debug("analysis response: %d, %d bytes", resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewServerError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	parsed, err := domain.ParseAnalysisResponse(body)
	if err != nil {
		return nil, domain.NewMalformedError(err)
	}
	return parsed, nil
}

// writeParts streams every file into the multipart body.
func writeParts(mw *multipart.Writer, files []domain.InputFile) error {
	for _, f := range files {
		if err := writePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, f domain.InputFile) error {
	if f.Open == nil {
		return fmt.Errorf("%s: no content", f.Name)
	}

	contentType := f.MIMEType
	if contentType == "" {
		contentType = defaultContentType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldFiles, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// unwrapURLError strips the method and URL prefix net/http adds.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
