package services

import (
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-backend/models"
)

// RentalService creates a rental as one atomic unit: tenant row, contract
// row, room occupancy. Everything runs inside a single transaction so a
// failed step leaves no orphaned rows.
type RentalService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Tenants      *TenantService
}

func NewRentalService(db *gorm.DB, availability *AvailabilityService, tenants *TenantService) *RentalService {
	return &RentalService{DB: db, Availability: availability, Tenants: tenants}
}

// TenantInput either references an existing tenant by id or carries the
// fields for a new one.
type TenantInput struct {
	TenantID *uint  `json:"tenantId,omitempty"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IDNumber string `json:"idNumber"`
}

type ContractInput struct {
	ContractNumber string    `json:"contractNumber"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	MonthlyRent    float64   `json:"monthlyRent"`
	Deposit        float64   `json:"deposit"`
}

type RentalResult struct {
	Tenant   models.Tenant   `json:"tenant"`
	Contract models.Contract `json:"contract"`
}

func (s *RentalService) CreateRental(roomID uint, tenantIn TenantInput, contractIn ContractInput) (*RentalResult, error) {
	if err := validateContractDates(contractIn.StartDate, contractIn.EndDate); err != nil {
		return nil, err
	}
	if tenantIn.TenantID == nil && strings.TrimSpace(tenantIn.FullName) == "" {
		return nil, validationErr(CodeInvalidInput, "tenant fullname is required")
	}

	// Pre-write checks: report validation and conflicts before any row is
	// touched. The occupancy CAS inside the transaction still protects
	// against a race slipping past these reads.
	availability, err := s.Availability.Check(roomID, contractIn.StartDate, contractIn.EndDate, nil)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, conflictErr(CodeRoomUnavailable,
			"room %d has %d overlapping active contract(s)", roomID, len(availability.Conflicts))
	}

	// Identity uniqueness runs on the request fields for a new tenant, and
	// on the stored fields when reactivating an existing one: a moved-out
	// tenant's phone may have been reused by someone active since.
	excludeID := uint(0)
	phone, idNumber := tenantIn.Phone, tenantIn.IDNumber
	if tenantIn.TenantID != nil {
		existing, err := s.Tenants.GetByID(*tenantIn.TenantID)
		if err != nil {
			return nil, err
		}
		excludeID = existing.ID
		phone, idNumber = existing.Phone, existing.IDNumber
	}
	if dup, err := s.Tenants.FindActiveDuplicate(phone, idNumber, excludeID); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, conflictErr(CodeDuplicateTenant,
			"phone or id number already belongs to active tenant %q", dup.FullName)
	}

	var result RentalResult
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent rentals on the same room so the
		// re-checks below see every committed competitor.
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			return wrapLookup(err, CodeRoomNotFound, "room", roomID)
		}
		if room.Status == models.RoomStatusMaintenance {
			return conflictErr(CodeRoomNotVacant, "room %d is under maintenance", roomID)
		}

		tenant, err := s.attachTenant(tx, roomID, tenantIn, contractIn.StartDate)
		if err != nil {
			return err
		}

		// Re-run the availability scan under the lock: a contract committed
		// after the pre-check would otherwise slip through.
		recheck, err := s.Availability.checkTx(tx, roomID, contractIn.StartDate, contractIn.EndDate)
		if err != nil {
			return err
		}
		if !recheck.IsAvailable {
			return conflictErr(CodeRoomUnavailable,
				"room %d has %d overlapping active contract(s)", roomID, len(recheck.Conflicts))
		}

		contract := models.Contract{
			RoomID:         roomID,
			TenantID:       tenant.ID,
			ContractNumber: strings.TrimSpace(contractIn.ContractNumber),
			StartDate:      contractIn.StartDate,
			EndDate:        contractIn.EndDate,
			MonthlyRent:    contractIn.MonthlyRent,
			Deposit:        contractIn.Deposit,
			Status:         models.ContractStatusActive,
		}
		if err := createContractTx(tx, &contract); err != nil {
			return err
		}

		// Conditional occupancy bump. Zero rows means another rental won
		// the room (or it filled up) between our read and this write.
		if err := occupyRoomTx(tx, roomID); err != nil {
			return err
		}

		result = RentalResult{Tenant: tenant, Contract: contract}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Printf("rental created: room=%d tenant=%d contract=%s",
		roomID, result.Tenant.ID, result.Contract.ContractNumber)
	return &result, nil
}

// attachTenant creates a fresh tenant row or re-activates an existing one
// against the room. Rollback of the surrounding transaction undoes the
// insert, which covers the delete-tenant compensation for failed rentals.
func (s *RentalService) attachTenant(tx *gorm.DB, roomID uint, in TenantInput, moveIn time.Time) (models.Tenant, error) {
	if in.TenantID != nil {
		var tenant models.Tenant
		if err := tx.First(&tenant, *in.TenantID).Error; err != nil {
			return tenant, wrapLookup(err, CodeTenantNotFound, "tenant", *in.TenantID)
		}
		if tenant.IsActive && tenant.RoomID != nil {
			return tenant, conflictErr(CodeDuplicateTenant,
				"tenant %d is already assigned to room %d", tenant.ID, *tenant.RoomID)
		}
		if dup, err := (&TenantService{DB: tx}).FindActiveDuplicate(tenant.Phone, tenant.IDNumber, tenant.ID); err != nil {
			return tenant, err
		} else if dup != nil {
			return tenant, conflictErr(CodeDuplicateTenant,
				"phone or id number already belongs to active tenant %q", dup.FullName)
		}
		updates := map[string]interface{}{
			"is_active":     true,
			"room_id":       roomID,
			"move_in_date":  moveIn,
			"move_out_date": nil,
		}
		if err := tx.Model(&tenant).Updates(updates).Error; err != nil {
			return tenant, storeErr(err)
		}
		tenant.IsActive = true
		tenant.RoomID = &roomID
		tenant.MoveInDate = &moveIn
		tenant.MoveOutDate = nil
		return tenant, nil
	}

	tenant := models.Tenant{
		RoomID:     &roomID,
		FullName:   strings.TrimSpace(in.FullName),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		IDNumber:   strings.TrimSpace(in.IDNumber),
		IsActive:   true,
		MoveInDate: &moveIn,
	}
	if err := tx.Create(&tenant).Error; err != nil {
		return tenant, storeErr(err)
	}
	return tenant, nil
}

// occupyRoomTx increments current_occupants iff the room still has space,
// flipping status to OCCUPIED in the same statement.
func occupyRoomTx(tx *gorm.DB, roomID uint) error {
	result := tx.Model(&models.Room{}).
		Where("id = ? AND current_occupants < capacity", roomID).
		Updates(map[string]interface{}{
			"current_occupants": gorm.Expr("current_occupants + 1"),
			"status":            models.RoomStatusOccupied,
		})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return conflictErr(CodeRoomFull, "room %d is already at capacity", roomID)
	}
	return nil
}

// releaseRoomTx decrements current_occupants (floored at zero) and flips
// the room back to VACANT when it empties.
func releaseRoomTx(tx *gorm.DB, roomID uint) error {
	if err := tx.Model(&models.Room{}).
		Where("id = ? AND current_occupants > 0", roomID).
		Update("current_occupants", gorm.Expr("current_occupants - 1")).Error; err != nil {
		return storeErr(err)
	}

	result := tx.Model(&models.Room{}).
		Where("id = ? AND current_occupants = 0 AND status = ?", roomID, models.RoomStatusOccupied).
		Update("status", models.RoomStatusVacant)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	return nil
}
