package curseforge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/publishing"
)

const (
	providerName   = entities.ProviderCurseForge
	tokenHeader    = "X-Api-Token"
	versionsPath   = "api/game/versions"
	uploadFilePath = "api/projects/%s/upload-file"
	changelogType  = "markdown"
)

// CurseForgeProviderRepository implements repositories.ProviderRepository for CurseForge.
// Authentication is a static token sent with every request.
type CurseForgeProviderRepository struct {
	baseURL string
	token   string
	client  repositories.HTTPClient
	timeout time.Duration
}

// NewProviderRepository creates a CurseForge provider. A nil client selects
// the default HTTP client.
func NewProviderRepository(
	settings *entities.Settings,
	credentials entities.Credentials,
	client repositories.HTTPClient,
) repositories.ProviderRepository {
	timeout := settings.Timeouts.HTTP
	return &CurseForgeProviderRepository{
		baseURL: strings.TrimSuffix(settings.Providers.CurseForgeURL, "/"),
		token:   credentials.CurseForgeToken,
		client:  publishing.ClientOrDefault(client, timeout),
		timeout: timeout,
	}
}

func (p *CurseForgeProviderRepository) Name() string { return providerName }

// Open needs no login: the token travels in a header on every request.
func (p *CurseForgeProviderRepository) Open(_ context.Context) (repositories.ProviderSession, error) {
	if p.token == "" {
		logger.Warnf("[%s] No API token configured, requests will be rejected", providerName)
	}
	return &session{provider: p}, nil
}

type session struct {
	provider *CurseForgeProviderRepository
}

// gameVersion is one entry of the CurseForge version catalog.
type gameVersion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// uploadMetadata is the JSON document sent alongside the archive.
type uploadMetadata struct {
	Changelog     string `json:"changelog"`
	ChangelogType string `json:"changelogType"`
	GameVersions  []int  `json:"gameVersions"`
	ReleaseType   string `json:"releaseType"`
}

// Publish resolves the CurseForge game version id and uploads the archive.
func (s *session) Publish(
	ctx context.Context,
	release entities.Release,
) (*entities.PublishResult, error) {
	versionID, err := s.ResolveGameVersion(ctx, release.GameVersion)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(uploadMetadata{
		Changelog:     release.Changelog.Markdown(),
		ChangelogType: changelogType,
		GameVersions:  []int{versionID},
		ReleaseType:   string(release.ReleaseType),
	})
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}

	form := publishing.NewMultipartForm()
	if fieldErr := form.AddField("metadata", string(metadata)); fieldErr != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: fieldErr}
	}
	if fileErr := form.AddFile("file", release.ArchivePath); fileErr != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: fileErr}
	}
	body, contentType, err := form.Close()
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: err}
	}

	url := s.provider.baseURL + "/" + fmt.Sprintf(uploadFilePath, release.ModID)
	logger.Infof("[%s] Posting %s (game version id %d) to %s", providerName, release.ArchivePath, versionID, url)

	resp, err := s.do(ctx, http.MethodPost, url, body, contentType)
	if err != nil {
		return nil, err
	}
	logger.Infof("[%s] %s returned %s", providerName, url, string(resp.Body))
	return &entities.PublishResult{Provider: providerName, Status: resp.Status, Body: string(resp.Body)}, nil
}

// ResolveGameVersion maps a game version string to its catalog id by exact name.
func (s *session) ResolveGameVersion(ctx context.Context, name string) (int, error) {
	url := s.provider.baseURL + "/" + versionsPath
	resp, err := s.do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return 0, err
	}

	var versions []gameVersion
	if unmarshalErr := json.Unmarshal(resp.Body, &versions); unmarshalErr != nil {
		return 0, &entities.PublishError{
			Provider: providerName,
			Status:   resp.Status,
			Body:     string(resp.Body),
			Err:      fmt.Errorf("failed to parse version catalog: %w", unmarshalErr),
		}
	}

	found := false
	versionID := 0
	for _, version := range versions {
		if version.Name == name {
			found = true
			versionID = version.ID
		}
	}
	if !found {
		return 0, &entities.VersionResolutionError{Provider: providerName, GameVersion: name}
	}

	logger.Infof("[%s] Found game version %d from string version %s", providerName, versionID, name)
	return versionID, nil
}

func (s *session) do(
	ctx context.Context,
	method, url string,
	body *bytes.Buffer,
	contentType string,
) (*publishing.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.provider.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &entities.PublishError{Provider: providerName, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set(tokenHeader, s.provider.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return publishing.Do(s.provider.client, req, providerName, s.provider.timeout)
}

// Close releases pooled connections; there is no remote session to end.
func (s *session) Close() error {
	publishing.CloseIdle(s.provider.client)
	return nil
}
