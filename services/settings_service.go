package services

import (
	"log"

	"cabin-backend/models"

	"gorm.io/gorm"
)

const settingsCacheKey = "settings"

type SettingsService struct {
	DB    *gorm.DB
	Cache *ResourceCache
}

func NewSettingsService(db *gorm.DB, cache *ResourceCache) *SettingsService {
	return &SettingsService{DB: db, Cache: cache}
}

// GetSettings reads the singleton row through the resource cache.
func (s *SettingsService) GetSettings() (models.Setting, error) {
	if v, ok := s.Cache.Get(settingsCacheKey); ok {
		if setting, ok := v.(models.Setting); ok {
			return setting, nil
		}
	}

	var setting models.Setting
	if err := s.DB.First(&setting).Error; err != nil {
		log.Printf("settings could not be loaded: %v", err)
		return setting, ErrLookup
	}
	s.Cache.Set(settingsCacheKey, setting)
	return setting, nil
}

// UpdateSetting patches the singleton row and evicts its cache entry.
func (s *SettingsService) UpdateSetting(updates map[string]interface{}) (models.Setting, error) {
	var setting models.Setting
	if err := s.DB.First(&setting).Error; err != nil {
		log.Printf("settings could not be loaded for update: %v", err)
		return setting, ErrLookup
	}
	if err := s.DB.Model(&setting).Updates(updates).Error; err != nil {
		log.Printf("settings could not be updated: %v", err)
		return models.Setting{}, ErrMutationRejected
	}
	s.Cache.Invalidate(settingsCacheKey)

	if err := s.DB.First(&setting, setting.ID).Error; err != nil {
		return models.Setting{}, ErrLookup
	}
	return setting, nil
}
