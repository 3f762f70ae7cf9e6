package services

import (
	"time"

	"gorm.io/gorm"

	"rental-backend/models"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

type AvailabilityResult struct {
	IsAvailable bool              `json:"isAvailable"`
	Conflicts   []models.Contract `json:"conflicts"`
}

// Check reports whether [start, end] is free of ACTIVE contracts on the
// room. Overlap is closed-interval: a candidate starting on an existing
// contract's end date counts as a conflict. excludeContractID skips one
// contract, used when re-checking a contract being edited.
func (s *AvailabilityService) Check(roomID uint, start, end time.Time, excludeContractID *uint) (AvailabilityResult, error) {
	if err := validateContractDates(start, end); err != nil {
		return AvailabilityResult{}, err
	}

	query := s.DB.Where("room_id = ? AND status = ?", roomID, models.ContractStatusActive).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeContractID != nil {
		query = query.Where("id <> ?", *excludeContractID)
	}

	var conflicts []models.Contract
	if err := query.Order("start_date").Find(&conflicts).Error; err != nil {
		return AvailabilityResult{}, storeErr(err)
	}

	return AvailabilityResult{
		IsAvailable: len(conflicts) == 0,
		Conflicts:   conflicts,
	}, nil
}

// checkTx runs the same scan against an open transaction.
func (s *AvailabilityService) checkTx(tx *gorm.DB, roomID uint, start, end time.Time) (AvailabilityResult, error) {
	return (&AvailabilityService{DB: tx}).Check(roomID, start, end, nil)
}
