package services

import (
	"errors"
	"strings"
	"testing"

	"cabin-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCabinService(t *testing.T) (*CabinService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewCabinService(newTestDB(t), store), store
}

func forestPayload() CabinPayload {
	return CabinPayload{
		Name:         "001",
		MaxCapacity:  4,
		RegularPrice: 450,
		Discount:     50,
		Description:  "Cozy forest cabin",
		ImageData:    []byte("fake image bytes"),
		ImageName:    "forest.jpg",
	}
}

func TestCreateCabinUploadsNewImage(t *testing.T) {
	svc, store := newCabinService(t)

	cabin, err := svc.CreateOrUpdateCabin(forestPayload(), 0)
	require.NoError(t, err)
	require.NotZero(t, cabin.ID)

	prefix := store.baseURL + "/storage/v1/object/public/cabin-images/"
	require.True(t, strings.HasPrefix(cabin.Image, prefix), "image URL %q", cabin.Image)

	name := strings.TrimPrefix(cabin.Image, prefix)
	assert.True(t, strings.HasSuffix(name, "-forest.jpg"))
	assert.NotContains(t, name, "/")

	// exactly one upload, under the same name the row references
	require.Len(t, store.uploads, 1)
	assert.Equal(t, "cabin-images/"+name, store.uploads[0])
}

func TestCreateCabinStripsSlashesFromImageName(t *testing.T) {
	svc, store := newCabinService(t)

	payload := forestPayload()
	payload.ImageName = "nested/path/forest.jpg"

	cabin, err := svc.CreateOrUpdateCabin(payload, 0)
	require.NoError(t, err)

	name := strings.TrimPrefix(cabin.Image, store.baseURL+"/storage/v1/object/public/cabin-images/")
	assert.NotContains(t, name, "/")
	assert.True(t, strings.HasSuffix(name, "nestedpathforest.jpg"))
}

func TestSaveCabinKeepsStoredImage(t *testing.T) {
	svc, store := newCabinService(t)

	stored := store.baseURL + "/storage/v1/object/public/cabin-images/existing.jpg"
	payload := forestPayload()
	payload.ImageData = nil
	payload.ImageName = ""
	payload.ImageURL = stored

	created, err := svc.CreateOrUpdateCabin(payload, 0)
	require.NoError(t, err)
	assert.Equal(t, stored, created.Image)
	assert.Empty(t, store.uploads, "no upload call for an already stored image")

	// update keeps it unchanged too
	payload.Name = "001 renamed"
	updated, err := svc.CreateOrUpdateCabin(payload, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "001 renamed", updated.Name)
	assert.Equal(t, stored, updated.Image)
	assert.Empty(t, store.uploads)
}

func TestUploadFailureRollsBackCreatedRow(t *testing.T) {
	svc, store := newCabinService(t)
	store.failUploads = true

	cabin, state, err := svc.saveCabin(forestPayload(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageUpload), "want the upload kind, got %v", err)
	assert.False(t, errors.Is(err, ErrPersistence))
	assert.Equal(t, stateRolledBack, state)
	assert.Zero(t, cabin.ID)

	// the transiently persisted row must be gone
	var count int64
	require.NoError(t, svc.DB.Model(&models.Cabin{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadFailureRollsBackUpdatedRow(t *testing.T) {
	svc, store := newCabinService(t)

	stored := store.baseURL + "/storage/v1/object/public/cabin-images/existing.jpg"
	seed := forestPayload()
	seed.ImageData = nil
	seed.ImageName = ""
	seed.ImageURL = stored
	created, err := svc.CreateOrUpdateCabin(seed, 0)
	require.NoError(t, err)

	store.failUploads = true
	_, state, err := svc.saveCabin(forestPayload(), created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageUpload))
	assert.Equal(t, stateRolledBack, state)

	var reloaded models.Cabin
	err = svc.DB.First(&reloaded, created.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteCabinZeroIDIsNoop(t *testing.T) {
	svc, store := newCabinService(t)

	stored := store.baseURL + "/storage/v1/object/public/cabin-images/existing.jpg"
	payload := forestPayload()
	payload.ImageData = nil
	payload.ImageURL = stored
	created, err := svc.CreateOrUpdateCabin(payload, 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCabin(0))

	var count int64
	require.NoError(t, svc.DB.Model(&models.Cabin{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "nothing may be deleted for a zero id")

	require.NoError(t, svc.DeleteCabin(created.ID))
	require.NoError(t, svc.DB.Model(&models.Cabin{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRandomObjectNameIsFlat(t *testing.T) {
	name := RandomObjectName("a/b/c.png")
	assert.NotContains(t, name, "/")
	assert.True(t, strings.HasSuffix(name, "abc.png"))

	// randomized: two calls never collide on the same input
	assert.NotEqual(t, name, RandomObjectName("a/b/c.png"))
}
