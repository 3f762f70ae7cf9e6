package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"rental-backend/models"
)

type ContractService struct {
	DB *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{DB: db}
}

func (s *ContractService) GetByID(id uint) (models.Contract, error) {
	var contract models.Contract
	if err := s.DB.First(&contract, id).Error; err != nil {
		return contract, wrapLookup(err, CodeContractNotFound, "contract", id)
	}
	return contract, nil
}

func (s *ContractService) GetByRoom(roomID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.DB.Where("room_id = ?", roomID).
		Order("start_date DESC").Find(&contracts).Error; err != nil {
		return nil, storeErr(err)
	}
	return contracts, nil
}

func (s *ContractService) GetByTenant(tenantID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.DB.Where("tenant_id = ?", tenantID).
		Order("start_date DESC").Find(&contracts).Error; err != nil {
		return nil, storeErr(err)
	}
	return contracts, nil
}

// ActiveForTenant returns the tenant's single ACTIVE contract.
func (s *ContractService) ActiveForTenant(tenantID uint) (models.Contract, error) {
	var contract models.Contract
	err := s.DB.Where("tenant_id = ? AND status = ?", tenantID, models.ContractStatusActive).
		Order("start_date DESC").First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract, notFoundErr(CodeContractNotFound,
				"tenant %d has no active contract", tenantID)
		}
		return contract, storeErr(err)
	}
	return contract, nil
}

func validateContractDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return validationErr(CodeInvalidDateRange, "start and end dates are required")
	}
	if !end.After(start) {
		return validationErr(CodeInvalidDateRange, "end date must be after start date")
	}
	return nil
}

// createContractTx inserts a contract inside an open transaction, generating
// a number when none was supplied. Retries on a unique-index collision,
// which can happen when two rentals race for the next sequence.
func createContractTx(tx *gorm.DB, contract *models.Contract) error {
	if err := validateContractDates(contract.StartDate, contract.EndDate); err != nil {
		return err
	}
	if contract.Status == "" {
		contract.Status = models.ContractStatusActive
	}

	supplied := strings.TrimSpace(contract.ContractNumber) != ""
	maxRetries := 5
	for attempt := 0; attempt < maxRetries; attempt++ {
		if !supplied {
			number, err := nextContractNumber(tx, contract.StartDate)
			if err != nil {
				return err
			}
			contract.ContractNumber = number
		}

		err := tx.Create(contract).Error
		if err == nil {
			return nil
		}
		if !supplied && isDuplicateKey(err) {
			contract.ID = 0
			continue
		}
		if isDuplicateKey(err) {
			return conflictErr(CodeDuplicateContract,
				"contract number %q already exists", contract.ContractNumber)
		}
		return storeErr(err)
	}
	return storeErr(fmt.Errorf("could not allocate contract number after %d attempts", maxRetries))
}

// nextContractNumber produces HD<year><seq>, e.g. HD20250007.
func nextContractNumber(tx *gorm.DB, start time.Time) (string, error) {
	year := start.Year()
	prefix := fmt.Sprintf("HD%d", year)

	var count int64
	if err := tx.Model(&models.Contract{}).Unscoped().
		Where("contract_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// ExpireOverdue flips ACTIVE contracts whose end date has passed to EXPIRED.
// Natural expiry: is_early_termination stays false and the room bookkeeping
// is left to the move orchestrator / reconciler.
func (s *ContractService) ExpireOverdue(now time.Time) (int64, error) {
	result := s.DB.Model(&models.Contract{}).
		Where("status = ? AND end_date < ?", models.ContractStatusActive, now).
		Update("status", models.ContractStatusExpired)
	if result.Error != nil {
		return 0, storeErr(result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("contracts: expired %d overdue contract(s)", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
