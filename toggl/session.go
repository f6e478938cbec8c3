// Package toggl is a client for the Toggl Track API v9. A Session carries
// the credentials and issues one blocking request per operation; it keeps no
// cache and performs no retries.
package toggl

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultUserAgent = "toggl-go"
	defaultTimeout   = 30 * time.Second
)

// Config holds the settings for a Session. The zero value targets the
// production API with a 30 second timeout.
type Config struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string

	// Timeout bounds each request when no HTTPClient is supplied.
	Timeout time.Duration

	// UserAgent is sent as the User-Agent header, the user_agent query
	// parameter and the created_with field of created entries.
	UserAgent string

	// CABundle is an optional path to a PEM file added to the system trust
	// store. Certificate verification is never disabled.
	CABundle string

	// Logger receives debug-level request logs. Nil discards them.
	Logger *slog.Logger

	// HTTPClient replaces the built-in client; Timeout and CABundle are
	// ignored when it is set.
	HTTPClient *http.Client
}

// Session holds the header set shared by all requests. Credentials may be
// swapped at any time via SetAPIKey or SetAuthCredentials, but the Session
// does no internal locking: callers must not change credentials while
// requests are in flight on other goroutines.
type Session struct {
	baseURL   string
	headers   map[string]string
	userAgent string
	http      *http.Client
	log       *slog.Logger
	now       func() time.Time
}

// NewSession builds an unauthenticated Session; authenticate it with
// SetAPIKey or SetAuthCredentials before issuing requests.
func NewSession(cfg Config) (*Session, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.CABundle != "" {
			pool, err := loadCABundle(cfg.CABundle)
			if err != nil {
				return nil, err
			}
			transport.TLSClientConfig = &tls.Config{RootCAs: pool}
		}
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	}

	return &Session{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "*/*",
		},
		userAgent: cfg.UserAgent,
		http:      httpClient,
		log:       cfg.Logger,
		now:       time.Now,
	}, nil
}

// loadCABundle returns the system roots extended with the certificates from
// the PEM file at path.
func loadCABundle(path string) (*x509.CertPool, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CA bundle: %w", err)
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("CA bundle %s contains no PEM certificates", path)
	}
	return pool, nil
}

// SetAPIKey authenticates subsequent requests with an API token. The
// Authorization header becomes Basic base64(key:api_token), replacing any
// email/password credentials.
func (s *Session) SetAPIKey(key string) {
	s.headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(key+":api_token"))
}

// SetAuthCredentials authenticates subsequent requests with an email and
// password pair, replacing any previously set API key. Credentials are not
// validated locally; bad ones surface as an HTTPError from the API.
func (s *Session) SetAuthCredentials(email, password string) {
	s.headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

// SetUserAgent overrides the default user agent.
func (s *Session) SetUserAgent(agent string) {
	s.userAgent = agent
}
