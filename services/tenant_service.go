package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"rental-backend/models"
)

type TenantService struct {
	DB *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{DB: db}
}

func (s *TenantService) Create(tenant *models.Tenant) error {
	tenant.FullName = strings.TrimSpace(tenant.FullName)
	if tenant.FullName == "" {
		return validationErr(CodeInvalidInput, "tenant fullname is required")
	}
	if dup, err := s.FindActiveDuplicate(tenant.Phone, tenant.IDNumber, tenant.ID); err != nil {
		return err
	} else if dup != nil {
		return conflictErr(CodeDuplicateTenant,
			"phone or id number already belongs to active tenant %q", dup.FullName)
	}
	if err := s.DB.Create(tenant).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *TenantService) GetByID(id uint) (models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		return tenant, wrapLookup(err, CodeTenantNotFound, "tenant", id)
	}
	return tenant, nil
}

func (s *TenantService) GetAll() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.DB.Order("fullname").Find(&tenants).Error; err != nil {
		return nil, storeErr(err)
	}
	return tenants, nil
}

func (s *TenantService) GetActiveByRoom(roomID uint) ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.DB.Where("room_id = ? AND is_active = ?", roomID, true).
		Find(&tenants).Error; err != nil {
		return nil, storeErr(err)
	}
	return tenants, nil
}

func (s *TenantService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")
	// Assignment state only moves through the rental/move orchestrators.
	delete(updates, "is_active")
	delete(updates, "room_id")
	delete(updates, "move_in_date")
	delete(updates, "move_out_date")

	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		return wrapLookup(err, CodeTenantNotFound, "tenant", id)
	}

	// Re-check identity uniqueness with the incoming values: editing an
	// active tenant's phone or document onto another active tenant's
	// would bypass the constraint enforced at create time.
	if tenant.IsActive {
		phone, idNumber := tenant.Phone, tenant.IDNumber
		if v, ok := updates["phone"].(string); ok {
			phone = v
		}
		if v, ok := updates["id_number"].(string); ok {
			idNumber = v
		}
		if dup, err := s.FindActiveDuplicate(phone, idNumber, id); err != nil {
			return err
		} else if dup != nil {
			return conflictErr(CodeDuplicateTenant,
				"phone or id number already belongs to active tenant %q", dup.FullName)
		}
	}

	if len(updates) == 0 {
		return nil
	}
	if err := s.DB.Model(&tenant).Updates(updates).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindActiveDuplicate looks for another active tenant sharing the phone or
// identity-document number. Blank fields never collide.
func (s *TenantService) FindActiveDuplicate(phone, idNumber string, excludeID uint) (*models.Tenant, error) {
	phone = strings.TrimSpace(phone)
	idNumber = strings.TrimSpace(idNumber)
	if phone == "" && idNumber == "" {
		return nil, nil
	}

	query := s.DB.Where("is_active = ?", true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	switch {
	case phone != "" && idNumber != "":
		query = query.Where("phone = ? OR id_number = ?", phone, idNumber)
	case phone != "":
		query = query.Where("phone = ?", phone)
	default:
		query = query.Where("id_number = ?", idNumber)
	}

	var dup models.Tenant
	err := query.First(&dup).Error
	if err == nil {
		return &dup, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, storeErr(err)
}
