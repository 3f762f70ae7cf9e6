package services

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-backend/models"
)

// MoveService unwinds a tenancy (move-out) and re-establishes one elsewhere
// (move-in / transfer). Each operation is a single transaction: tenant,
// room(s) and contract either all change or none do.
type MoveService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewMoveService(db *gorm.DB, availability *AvailabilityService) *MoveService {
	return &MoveService{DB: db, Availability: availability}
}

// MoveOut deactivates the tenant, releases the room and terminates the
// active contract. A move date before the contract's agreed end date marks
// the termination as early and records reason and note.
func (s *MoveService) MoveOut(tenantID uint, moveDate time.Time, reason, note string) error {
	if moveDate.IsZero() {
		return validationErr(CodeInvalidDateRange, "move date is required")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			return wrapLookup(err, CodeTenantNotFound, "tenant", tenantID)
		}
		if !tenant.IsActive || tenant.RoomID == nil {
			return conflictErr(CodeTenantNotAssigned, "tenant %d has no current room", tenantID)
		}
		if tenant.MoveInDate != nil && moveDate.Before(*tenant.MoveInDate) {
			return validationErr(CodeInvalidDateRange,
				"move-out date precedes move-in date %s", tenant.MoveInDate.Format("2006-01-02"))
		}
		oldRoomID := *tenant.RoomID

		contract, err := (&ContractService{DB: tx}).ActiveForTenant(tenantID)
		if err != nil {
			return err
		}

		contractUpdates := map[string]interface{}{
			"status": models.ContractStatusTerminated,
		}
		early := moveDate.Before(contract.EndDate)
		if early {
			contractUpdates["end_date"] = moveDate
			contractUpdates["is_early_termination"] = true
			contractUpdates["termination_reason"] = reason
			contractUpdates["termination_note"] = note
		} else {
			contractUpdates["is_early_termination"] = false
		}
		if err := tx.Model(&contract).Updates(contractUpdates).Error; err != nil {
			return storeErr(err)
		}

		if err := tx.Model(&tenant).Updates(map[string]interface{}{
			"is_active":     false,
			"room_id":       nil,
			"move_out_date": moveDate,
		}).Error; err != nil {
			return storeErr(err)
		}

		if err := releaseRoomTx(tx, oldRoomID); err != nil {
			return err
		}

		log.Printf("move-out: tenant=%d room=%d contract=%s early=%v",
			tenantID, oldRoomID, contract.ContractNumber, early)
		return nil
	})
}

// MoveIn assigns the tenant to a new room, releasing the old room first
// when this is a transfer. When a replacement contract accompanies the
// move, the destination room is availability-checked before any write,
// the same way createRental does it.
func (s *MoveService) MoveIn(tenantID, newRoomID uint, moveDate time.Time, reason, note string, contractIn *ContractInput) error {
	if moveDate.IsZero() {
		return validationErr(CodeInvalidDateRange, "move date is required")
	}
	if contractIn != nil {
		if err := validateContractDates(contractIn.StartDate, contractIn.EndDate); err != nil {
			return err
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			return wrapLookup(err, CodeTenantNotFound, "tenant", tenantID)
		}

		var newRoom models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&newRoom, newRoomID).Error; err != nil {
			return wrapLookup(err, CodeRoomNotFound, "room", newRoomID)
		}
		if newRoom.Status == models.RoomStatusMaintenance {
			return conflictErr(CodeRoomNotVacant, "room %d is under maintenance", newRoomID)
		}
		if tenant.RoomID != nil && *tenant.RoomID == newRoomID && tenant.IsActive {
			return conflictErr(CodeRoomNotVacant,
				"tenant %d already occupies room %d", tenantID, newRoomID)
		}

		// Reactivating a moved-out tenant: their stored phone or identity
		// document may have been reused by someone active in the meantime.
		if !tenant.IsActive {
			if dup, err := (&TenantService{DB: tx}).FindActiveDuplicate(tenant.Phone, tenant.IDNumber, tenant.ID); err != nil {
				return err
			} else if dup != nil {
				return conflictErr(CodeDuplicateTenant,
					"phone or id number already belongs to active tenant %q", dup.FullName)
			}
		}

		if contractIn != nil {
			availability, err := s.Availability.checkTx(tx, newRoomID, contractIn.StartDate, contractIn.EndDate)
			if err != nil {
				return err
			}
			if !availability.IsAvailable {
				return conflictErr(CodeRoomUnavailable,
					"room %d has %d overlapping active contract(s)", newRoomID, len(availability.Conflicts))
			}
		}

		var oldRoomID *uint
		if tenant.IsActive && tenant.RoomID != nil {
			id := *tenant.RoomID
			oldRoomID = &id
		}

		if err := tx.Model(&tenant).Updates(map[string]interface{}{
			"is_active":     true,
			"room_id":       newRoomID,
			"move_in_date":  moveDate,
			"move_out_date": nil,
		}).Error; err != nil {
			return storeErr(err)
		}

		if oldRoomID != nil {
			if err := releaseRoomTx(tx, *oldRoomID); err != nil {
				return err
			}
		}
		if err := occupyRoomTx(tx, newRoomID); err != nil {
			return err
		}

		if contractIn != nil {
			contract := models.Contract{
				RoomID:         newRoomID,
				TenantID:       tenantID,
				ContractNumber: contractIn.ContractNumber,
				StartDate:      contractIn.StartDate,
				EndDate:        contractIn.EndDate,
				MonthlyRent:    contractIn.MonthlyRent,
				Deposit:        contractIn.Deposit,
				Status:         models.ContractStatusActive,
			}
			if err := createContractTx(tx, &contract); err != nil {
				return err
			}
		}

		log.Printf("move-in: tenant=%d room=%d reason=%q", tenantID, newRoomID, reason)
		return nil
	})
}
