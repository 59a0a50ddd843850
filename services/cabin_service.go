package services

import (
	"log"
	"strings"

	"cabin-backend/models"

	"gorm.io/gorm"
)

// cabinWriteState tracks how far a create/update-with-image attempt got, so
// the compensation path can be verified in isolation.
type cabinWriteState int

const (
	stateFailed cabinWriteState = iota
	statePersisted
	stateImageUploaded
	stateRolledBack
)

type CabinService struct {
	DB    *gorm.DB
	Store ObjectStore
}

func NewCabinService(db *gorm.DB, store ObjectStore) *CabinService {
	return &CabinService{DB: db, Store: store}
}

// CabinPayload is the form input. Exactly one image representation is set:
// ImageURL when the form kept an already-stored image, ImageData+ImageName
// when a new file was selected.
type CabinPayload struct {
	Name         string
	MaxCapacity  int
	RegularPrice float64
	Discount     float64
	Description  string
	ImageURL     string
	ImageData    []byte
	ImageName    string
}

func (s *CabinService) GetCabins() ([]models.Cabin, error) {
	var cabins []models.Cabin
	if err := s.DB.Find(&cabins).Error; err != nil {
		log.Printf("cabins could not be loaded: %v", err)
		return nil, ErrList
	}
	return cabins, nil
}

// DeleteCabin with a zero id is a no-op, not an error: nothing is issued to
// the database.
func (s *CabinService) DeleteCabin(id uint) error {
	if id == 0 {
		return nil
	}
	if err := s.DB.Delete(&models.Cabin{}, id).Error; err != nil {
		log.Printf("cabin %d could not be deleted: %v", id, err)
		return ErrMutationRejected
	}
	return nil
}

// CreateOrUpdateCabin persists a cabin whose image is either an already
// stored URL or a new blob pending upload. The row is written first, with
// the image column set to the eventual public URL; if the upload then
// fails, the row is deleted again so no cabin ever survives referencing an
// object that was never stored.
func (s *CabinService) CreateOrUpdateCabin(payload CabinPayload, id uint) (models.Cabin, error) {
	cabin, _, err := s.saveCabin(payload, id)
	return cabin, err
}

func (s *CabinService) saveCabin(payload CabinPayload, id uint) (models.Cabin, cabinWriteState, error) {
	// An image path starting with the storage base URL means the object is
	// already stored (editing session where the image was kept): no upload.
	hasImagePath := payload.ImageURL != "" &&
		strings.HasPrefix(payload.ImageURL, s.Store.BaseURL())

	var imageName, imagePath string
	if hasImagePath {
		imagePath = payload.ImageURL
	} else {
		imageName = RandomObjectName(payload.ImageName)
		imagePath = s.Store.PublicURL(BucketCabinImages, imageName)
	}

	// 1. Create/edit the cabin row.
	cabin := models.Cabin{
		Name:         payload.Name,
		MaxCapacity:  payload.MaxCapacity,
		RegularPrice: payload.RegularPrice,
		Discount:     payload.Discount,
		Description:  payload.Description,
		Image:        imagePath,
	}

	if id == 0 {
		if err := s.DB.Create(&cabin).Error; err != nil {
			log.Printf("cabin could not be created: %v", err)
			return models.Cabin{}, stateFailed, ErrPersistence
		}
	} else {
		updates := map[string]interface{}{
			"name":          payload.Name,
			"max_capacity":  payload.MaxCapacity,
			"regular_price": payload.RegularPrice,
			"discount":      payload.Discount,
			"description":   payload.Description,
			"image":         imagePath,
		}
		if err := s.DB.Model(&models.Cabin{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Printf("cabin %d could not be updated: %v", id, err)
			return models.Cabin{}, stateFailed, ErrPersistence
		}
		if err := s.DB.First(&cabin, id).Error; err != nil {
			log.Printf("cabin %d could not be read back: %v", id, err)
			return models.Cabin{}, stateFailed, ErrPersistence
		}
	}

	// 2. Upload the image, unless the stored one was kept.
	if hasImagePath {
		return cabin, statePersisted, nil
	}

	if err := s.Store.Upload(BucketCabinImages, imageName, payload.ImageData); err != nil {
		// 3. Compensate: the row now references an object that was never
		// stored, so it must not survive. The delete itself is not retried;
		// a secondary failure is only logged.
		state := statePersisted
		if delErr := s.DB.Delete(&models.Cabin{}, cabin.ID).Error; delErr != nil {
			log.Printf("compensating delete for cabin %d failed: %v", cabin.ID, delErr)
		} else {
			state = stateRolledBack
		}
		log.Printf("cabin image %q could not be uploaded: %v", imageName, err)
		return models.Cabin{}, state, ErrImageUpload
	}

	return cabin, stateImageUploaded, nil
}
