package services

import (
	"fmt"

	"gorm.io/gorm"

	"rental-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	if room.Code == "" {
		return validationErr(CodeInvalidInput, "room code is required")
	}
	if room.Capacity < 1 {
		return validationErr(CodeInvalidInput, "capacity must be at least 1")
	}
	if room.Status == "" {
		room.Status = models.RoomStatusVacant
	}
	if err := validateOccupancy(room.Status, room.CurrentOccupants, room.Capacity); err != nil {
		return err
	}
	if err := s.DB.Create(room).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return room, wrapLookup(err, CodeRoomNotFound, "room", id)
	}
	return room, nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("property_id, code").Find(&rooms).Error; err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

func (s *RoomService) GetByProperty(propertyID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("property_id = ?", propertyID).Order("code").Find(&rooms).Error; err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

// Update applies a partial update. Occupancy and status never go through
// here; only the orchestrators and SetOccupancy may touch those columns.
func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")
	delete(updates, "status")
	delete(updates, "current_occupants")

	if v, ok := updates["capacity"]; ok {
		newCapacity := 0
		switch n := v.(type) {
		case float64:
			newCapacity = int(n)
		case int:
			newCapacity = n
		default:
			return validationErr(CodeInvalidInput, "invalid capacity")
		}
		if newCapacity < 1 {
			return validationErr(CodeInvalidInput, "capacity must be at least 1")
		}
		room, err := s.GetByID(id)
		if err != nil {
			return err
		}
		if newCapacity < room.CurrentOccupants {
			return validationErr(CodeCapacityExceeded,
				"capacity %d is below current occupant count %d", newCapacity, room.CurrentOccupants)
		}
	}

	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr(CodeRoomNotFound, "room %d not found", id)
	}
	return nil
}

type DeleteCheck struct {
	CanDelete bool   `json:"canDelete"`
	Reason    string `json:"reason"`
}

// CanDelete fails closed: any lookup error keeps the room undeletable.
func (s *RoomService) CanDelete(id uint) (DeleteCheck, error) {
	if _, err := s.GetByID(id); err != nil {
		return DeleteCheck{CanDelete: false, Reason: "room not found"}, err
	}

	var activeTenants int64
	if err := s.DB.Model(&models.Tenant{}).
		Where("room_id = ? AND is_active = ?", id, true).
		Count(&activeTenants).Error; err != nil {
		return DeleteCheck{CanDelete: false, Reason: "could not verify tenants"}, storeErr(err)
	}
	if activeTenants > 0 {
		return DeleteCheck{
			CanDelete: false,
			Reason:    fmt.Sprintf("room still has %d active tenant(s)", activeTenants),
		}, nil
	}

	var openContracts int64
	if err := s.DB.Model(&models.Contract{}).
		Where("room_id = ? AND status NOT IN ?", id,
			[]string{models.ContractStatusExpired, models.ContractStatusTerminated}).
		Count(&openContracts).Error; err != nil {
		return DeleteCheck{CanDelete: false, Reason: "could not verify contracts"}, storeErr(err)
	}
	if openContracts > 0 {
		return DeleteCheck{
			CanDelete: false,
			Reason:    fmt.Sprintf("room still has %d open contract(s)", openContracts),
		}, nil
	}

	return DeleteCheck{CanDelete: true, Reason: ""}, nil
}

// Delete soft-deletes the room after re-running the CanDelete guard.
func (s *RoomService) Delete(id uint) error {
	check, err := s.CanDelete(id)
	if err != nil {
		return err
	}
	if !check.CanDelete {
		return conflictErr(CodeRoomHasTenants, "cannot delete room %d: %s", id, check.Reason)
	}

	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr(CodeRoomNotFound, "room %d not found", id)
	}
	return nil
}

// SetOccupancy overwrites status and occupant count together so the pair
// can never be persisted in a contradictory state.
func (s *RoomService) SetOccupancy(id uint, status string, occupants int) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := validateOccupancy(status, occupants, room.Capacity); err != nil {
		return err
	}

	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":            status,
		"current_occupants": occupants,
	})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr(CodeRoomNotFound, "room %d not found", id)
	}
	return nil
}

func validateOccupancy(status string, occupants, capacity int) error {
	switch status {
	case models.RoomStatusVacant, models.RoomStatusOccupied, models.RoomStatusMaintenance:
	default:
		return validationErr(CodeInvalidInput, "unknown room status %q", status)
	}
	if occupants < 0 {
		return validationErr(CodeInvalidInput, "occupant count cannot be negative")
	}
	if occupants > capacity {
		return validationErr(CodeCapacityExceeded, "occupant count %d exceeds capacity %d", occupants, capacity)
	}
	if status == models.RoomStatusOccupied && occupants == 0 {
		return validationErr(CodeInvalidInput, "OCCUPIED room must have at least one occupant")
	}
	if status != models.RoomStatusOccupied && occupants > 0 {
		return validationErr(CodeInvalidInput, "%s room cannot have occupants", status)
	}
	return nil
}
