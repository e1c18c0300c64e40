package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/inovacc/azpanel/internal/model"
	"github.com/inovacc/azpanel/internal/secret"
)

// SQLite is the alternate SQLite-backed Store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite store at the specified path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	const schema = `CREATE TABLE IF NOT EXISTS credentials (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveCredentials writes both credential fields, sealing the token.
func (s *SQLite) SaveCredentials(creds *model.Credentials) error {
	sealed, err := secret.SealToken(creds.AccessToken)
	if err != nil {
		return err
	}

	const upsert = `INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.Exec(upsert, keyOrganizationURL, creds.OrganizationURL); err != nil {
		return err
	}

	_, err = s.db.Exec(upsert, keyAccessToken, sealed)

	return err
}

// LoadCredentials returns the stored pair, or (nil, nil) when absent.
func (s *SQLite) LoadCredentials() (*model.Credentials, error) {
	orgURL, err := s.get(keyOrganizationURL)
	if err != nil {
		return nil, err
	}

	sealed, err := s.get(keyAccessToken)
	if err != nil {
		return nil, err
	}

	if orgURL == "" || sealed == "" {
		return nil, nil
	}

	token, err := secret.OpenToken(sealed)
	if err != nil {
		return nil, err
	}

	if token == "" {
		return nil, nil
	}

	return &model.Credentials{OrganizationURL: orgURL, AccessToken: token}, nil
}

// ClearCredentials removes both keys.
func (s *SQLite) ClearCredentials() error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`,
		keyOrganizationURL, keyAccessToken)

	return err
}

func (s *SQLite) get(key string) (string, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return value, nil
}
