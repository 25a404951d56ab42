package entities

import "os"

const (
	envCurseForgeToken   = "CURSEFORGE_TOKEN"
	envSpaceDockLogin    = "SPACEDOCK_LOGIN"
	envSpaceDockPassword = "SPACEDOCK_PASSWORD"
)

// Credentials holds provider secrets. They are resolved once at dispatch time
// and must never be logged or written to disk.
type Credentials struct {
	CurseForgeToken   string
	SpaceDockLogin    string
	SpaceDockPassword string
}

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// NewCredentialsFromEnv reads provider secrets through the given lookup.
// A nil lookup falls back to the process environment.
func NewCredentialsFromEnv(lookup LookupFunc) Credentials {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		value, _ := lookup(key)
		return value
	}
	return Credentials{
		CurseForgeToken:   get(envCurseForgeToken),
		SpaceDockLogin:    get(envSpaceDockLogin),
		SpaceDockPassword: get(envSpaceDockPassword),
	}
}

// String never prints secret values.
func (c Credentials) String() string {
	return "Credentials{redacted}"
}
