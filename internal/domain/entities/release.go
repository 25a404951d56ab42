package entities

// ReleaseType is the provider-side classification of an upload.
type ReleaseType string

const (
	ReleaseTypeRelease ReleaseType = "release"
	ReleaseTypeBeta    ReleaseType = "beta"
	ReleaseTypeAlpha   ReleaseType = "alpha"
)

// Valid reports whether the release type is one providers accept.
func (r ReleaseType) Valid() bool {
	switch r {
	case ReleaseTypeRelease, ReleaseTypeBeta, ReleaseTypeAlpha:
		return true
	default:
		return false
	}
}

// Release is everything a provider needs to publish one archive.
type Release struct {
	ModID           string
	Version         string
	GameVersion     string
	Changelog       Changelog
	ReleaseType     ReleaseType
	ArchivePath     string
	NotifyFollowers bool
}

// PublishResult is the successful response of a provider upload.
type PublishResult struct {
	Provider string
	Status   int
	Body     string
}

// PublishOutcome is the per-provider result of a deploy run.
type PublishOutcome struct {
	Provider string
	Result   *PublishResult
	Err      error
}

// Succeeded reports whether the provider accepted the upload.
func (o PublishOutcome) Succeeded() bool {
	return o.Err == nil
}
