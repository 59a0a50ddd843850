package services

import (
	"errors"
	"testing"

	"cabin-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Cabin{},
		&models.Guest{},
		&models.Booking{},
	))
	return db
}

// fakeStore records uploads instead of writing to disk and can be told to
// reject them, to drive the compensation path.
type fakeStore struct {
	baseURL     string
	uploads     []string // "bucket/name"
	failUploads bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{baseURL: "https://example.test"}
}

func (f *fakeStore) Upload(bucket, name string, data []byte) error {
	if f.failUploads {
		return errors.New("bucket unavailable")
	}
	f.uploads = append(f.uploads, bucket+"/"+name)
	return nil
}

func (f *fakeStore) Remove(bucket, name string) error { return nil }

func (f *fakeStore) PublicURL(bucket, name string) string {
	return f.baseURL + "/storage/v1/object/public/" + bucket + "/" + name
}

func (f *fakeStore) BaseURL() string { return f.baseURL }
