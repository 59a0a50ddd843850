package services

import (
	"errors"
	"log"

	"cabin-backend/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) GetGuests() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.Order("full_name").Find(&guests).Error; err != nil {
		log.Printf("guests could not be loaded: %v", err)
		return nil, ErrList
	}
	return guests, nil
}

func (s *GuestService) GetGuest(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("guest %d could not be loaded: %v", id, err)
		}
		return guest, ErrLookup
	}
	return guest, nil
}

func (s *GuestService) CreateGuest(guest models.Guest) (models.Guest, error) {
	if err := s.DB.Create(&guest).Error; err != nil {
		log.Printf("guest could not be created: %v", err)
		return models.Guest{}, ErrPersistence
	}
	return guest, nil
}

func (s *GuestService) UpdateGuest(id uint, updates map[string]interface{}) (models.Guest, error) {
	if err := s.DB.Model(&models.Guest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Printf("guest %d could not be updated: %v", id, err)
		return models.Guest{}, ErrMutationRejected
	}
	return s.GetGuest(id)
}

func (s *GuestService) DeleteGuest(id uint) error {
	if id == 0 {
		return nil
	}
	if err := s.DB.Delete(&models.Guest{}, id).Error; err != nil {
		log.Printf("guest %d could not be deleted: %v", id, err)
		return ErrMutationRejected
	}
	return nil
}
