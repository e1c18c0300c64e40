package store

import (
	"time"

	"go.etcd.io/bbolt"

	"github.com/inovacc/azpanel/internal/model"
	"github.com/inovacc/azpanel/internal/secret"
)

const boltBucketCredentials = "credentials" // key: organization_url / access_token

// Bolt is the default bbolt-backed Store.
type Bolt struct {
	storage *bbolt.DB
}

// OpenBolt opens (or creates) a Bolt store at the specified path.
func OpenBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketCredentials))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

// SaveCredentials writes both credential fields, sealing the token.
func (b *Bolt) SaveCredentials(creds *model.Credentials) error {
	sealed, err := secret.SealToken(creds.AccessToken)
	if err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketCredentials))

		if err := bucket.Put([]byte(keyOrganizationURL), []byte(creds.OrganizationURL)); err != nil {
			return err
		}

		return bucket.Put([]byte(keyAccessToken), []byte(sealed))
	})
}

// LoadCredentials returns the stored pair, or (nil, nil) when absent.
func (b *Bolt) LoadCredentials() (*model.Credentials, error) {
	var orgURL, sealed string

	if err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketCredentials))
		orgURL = string(bucket.Get([]byte(keyOrganizationURL)))
		sealed = string(bucket.Get([]byte(keyAccessToken)))

		return nil
	}); err != nil {
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
func (b *Bolt) ClearCredentials() error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketCredentials))

		if err := bucket.Delete([]byte(keyOrganizationURL)); err != nil {
			return err
		}

		return bucket.Delete([]byte(keyAccessToken))
	})
}
