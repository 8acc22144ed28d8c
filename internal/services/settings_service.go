package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
)

// settingsService handles per-user settings.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the user's settings, creating the default row on
// first access.
func (s *settingsService) GetSettings(userID uint) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.Settings{
		UserID:       userID,
		Currency:     "INR",
		USDToINRRate: models.DefaultUSDToINRRate,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial update to the user's settings.
func (s *settingsService) UpdateSettings(userID uint, currency *string, usdToINRRate *float64) (*models.Settings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if currency != nil {
		settings.Currency = *currency
	}
	if usdToINRRate != nil {
		if *usdToINRRate <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "usd_to_inr_rate must be positive")
		}
		settings.USDToINRRate = *usdToINRRate
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}
