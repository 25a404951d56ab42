package spacedock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/publishing"
)

const (
	providerName  = entities.ProviderSpaceDock
	loginPath     = "api/login"
	updateModPath = "api/mod/%s/update"
	formMediaType = "application/x-www-form-urlencoded"
)

var errSessionClosed = errors.New("session is closed")

// SpaceDockProviderRepository implements repositories.ProviderRepository for SpaceDock.
// Authentication is an explicit login establishing a cookie session.
type SpaceDockProviderRepository struct {
	baseURL  string
	login    string
	password string
	client   repositories.HTTPClient
	timeout  time.Duration
}

// NewProviderRepository creates a SpaceDock provider. A nil client selects
// the default HTTP client.
func NewProviderRepository(
	settings *entities.Settings,
	credentials entities.Credentials,
	client repositories.HTTPClient,
) repositories.ProviderRepository {
	timeout := settings.Timeouts.HTTP
	return &SpaceDockProviderRepository{
		baseURL:  strings.TrimSuffix(settings.Providers.SpaceDockURL, "/"),
		login:    credentials.SpaceDockLogin,
		password: credentials.SpaceDockPassword,
		client:   publishing.ClientOrDefault(client, timeout),
		timeout:  timeout,
	}
}

func (p *SpaceDockProviderRepository) Name() string { return providerName }

// Open logs in and returns a session holding the authentication cookies.
func (p *SpaceDockProviderRepository) Open(ctx context.Context) (repositories.ProviderSession, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}
	s := &session{provider: p, jar: jar}

	form := neturl.Values{}
	form.Set("username", p.login)
	form.Set("password", p.password)

	if _, loginErr := s.do(
		ctx, http.MethodPost, loginPath, bytes.NewBufferString(form.Encode()), formMediaType,
	); loginErr != nil {
		return nil, loginErr
	}
	logger.Infof("[%s] Successfully logged in", providerName)
	return s, nil
}

type session struct {
	provider *SpaceDockProviderRepository
	jar      *cookiejar.Jar
	closed   bool
}

// apiStatus is the error envelope SpaceDock returns with a 2xx status.
type apiStatus struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Publish submits a mod update with the archive as "zipball".
func (s *session) Publish(
	ctx context.Context,
	release entities.Release,
) (*entities.PublishResult, error) {
	if s.closed {
		return nil, &entities.PublishError{Provider: providerName, Err: errSessionClosed}
	}

	notify := "no"
	if release.NotifyFollowers {
		notify = "yes"
	}

	form := publishing.NewMultipartForm()
	fields := [][2]string{
		{"version", release.Version},
		{"changelog", release.Changelog.Markdown()},
		{"game-version", release.GameVersion},
		{"notify-followers", notify},
	}
	for _, field := range fields {
		if err := form.AddField(field[0], field[1]); err != nil {
			return nil, &entities.PublishError{Provider: providerName, Err: err}
		}
	}
	if err := form.AddFile("zipball", release.ArchivePath); err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}
	body, contentType, err := form.Close()
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}

	path := fmt.Sprintf(updateModPath, release.ModID)
	logger.Infof("[%s] Posting version %s of mod %s", providerName, release.Version, release.ModID)

	resp, err := s.do(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return nil, err
	}
	logger.Infof("[%s] %s returned %s", providerName, path, string(resp.Body))
	return &entities.PublishResult{Provider: providerName, Status: resp.Status, Body: string(resp.Body)}, nil
}

// Close ends the session. SpaceDock has no logout endpoint, so the cookies
// are dropped locally.
func (s *session) Close() error {
	s.closed = true
	s.jar = nil
	publishing.CloseIdle(s.provider.client)
	return nil
}

func (s *session) do(
	ctx context.Context,
	method, path string,
	body *bytes.Buffer,
	contentType string,
) (*publishing.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.provider.timeout)
	defer cancel()

	target, err := neturl.Parse(s.provider.baseURL + "/" + path)
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}

	var reader io.Reader
	if body != nil {
		reader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range s.jar.Cookies(target) {
		req.AddCookie(cookie)
	}

	resp, err := publishing.Do(s.provider.client, req, providerName, s.provider.timeout)
	if err != nil {
		return nil, err
	}
	s.jar.SetCookies(target, resp.Cookies)

	var status apiStatus
	if json.Unmarshal(resp.Body, &status) == nil && status.Error {
		return nil, &entities.PublishError{
			Provider: providerName,
			Status:   resp.Status,
			Body:     string(resp.Body),
			Err:      fmt.Errorf("api error: %s", status.Reason),
		}
	}
	return resp, nil
}
