package services

import (
	"strings"

	"gorm.io/gorm"

	"rental-backend/models"
)

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

func (s *PropertyService) Create(property *models.Property) error {
	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		return validationErr(CodeInvalidInput, "property name is required")
	}
	if err := s.DB.Create(property).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *PropertyService) GetAll() ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.Order("name").Find(&properties).Error; err != nil {
		return nil, storeErr(err)
	}
	return properties, nil
}

func (s *PropertyService) GetByID(id uint) (models.Property, error) {
	var property models.Property
	if err := s.DB.Preload("Rooms").First(&property, id).Error; err != nil {
		return property, wrapLookup(err, CodePropertyNotFound, "property", id)
	}
	return property, nil
}
