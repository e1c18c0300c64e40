// Package store persists the credential pair across sessions.
//
// Two backends implement the same two-key contract: bbolt (default) and
// SQLite, selected at runtime via the AZPANEL_STORE environment variable.
// The access token is sealed via internal/secret before it is written.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/azpanel/internal/model"
	"github.com/inovacc/azpanel/internal/params"
)

const (
	// keyOrganizationURL and keyAccessToken are the two fixed storage keys.
	keyOrganizationURL = "organization_url"
	keyAccessToken     = "access_token"

	// backendEnv selects the storage backend ("bolt" or "sqlite").
	backendEnv = "AZPANEL_STORE"
)

// Store is durable key-value storage for the credential pair. It is the
// sole source of truth across process restarts.
type Store interface {
	// SaveCredentials writes both credential fields under the fixed keys.
	SaveCredentials(creds *model.Credentials) error

	// LoadCredentials returns the stored pair, or (nil, nil) when either
	// key is missing or empty. Partial state is never returned.
	LoadCredentials() (*model.Credentials, error)

	// ClearCredentials removes both keys.
	ClearCredentials() error

	Close() error
}

// Open opens the configured backend under the application data directory.
func Open() (Store, error) {
	switch backend := os.Getenv(backendEnv); backend {
	case "", "bolt":
		return OpenBolt(filepath.Join(params.AppdataDir, "azpanel.bolt"))
	case "sqlite":
		return OpenSQLite(filepath.Join(params.AppdataDir, "azpanel.sqlite"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want bolt or sqlite)", backend)
	}
}
