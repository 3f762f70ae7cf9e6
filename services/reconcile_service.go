package services

import (
	"log"

	"gorm.io/gorm"

	"rental-backend/models"
)

// ReconcileService detects occupancy drift: rooms recorded OCCUPIED whose
// stored occupant count no longer matches the set of active tenants.
type ReconcileService struct {
	DB *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{DB: db}
}

type ReconcileResult struct {
	CorrectedRoomCount int `json:"correctedRoomCount"`
}

// Reconcile sweeps all OCCUPIED rooms in the property. Any room whose true
// active-tenant count is zero or disagrees with current_occupants is forced
// back to VACANT with zero occupants. Returns how many rooms were corrected.
func (s *ReconcileService) Reconcile(propertyID uint) (ReconcileResult, error) {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		return ReconcileResult{}, wrapLookup(err, CodePropertyNotFound, "property", propertyID)
	}

	var rooms []models.Room
	if err := s.DB.Where("property_id = ? AND status = ?", propertyID, models.RoomStatusOccupied).
		Find(&rooms).Error; err != nil {
		return ReconcileResult{}, storeErr(err)
	}

	corrected := 0
	for i := range rooms {
		room := &rooms[i]

		var activeTenants int64
		if err := s.DB.Model(&models.Tenant{}).
			Where("room_id = ? AND is_active = ?", room.ID, true).
			Count(&activeTenants).Error; err != nil {
			return ReconcileResult{CorrectedRoomCount: corrected}, storeErr(err)
		}

		if activeTenants != 0 && int(activeTenants) == room.CurrentOccupants {
			continue
		}

		log.Printf("reconcile: room=%d stored=%d actual=%d, forcing vacant",
			room.ID, room.CurrentOccupants, activeTenants)
		if err := s.DB.Model(room).Updates(map[string]interface{}{
			"status":            models.RoomStatusVacant,
			"current_occupants": 0,
		}).Error; err != nil {
			return ReconcileResult{CorrectedRoomCount: corrected}, storeErr(err)
		}
		corrected++
	}

	return ReconcileResult{CorrectedRoomCount: corrected}, nil
}

// ReconcileAll runs the sweep for every property, for the scheduler.
func (s *ReconcileService) ReconcileAll() (int, error) {
	var properties []models.Property
	if err := s.DB.Find(&properties).Error; err != nil {
		return 0, storeErr(err)
	}

	total := 0
	for _, property := range properties {
		result, err := s.Reconcile(property.ID)
		if err != nil {
			return total, err
		}
		total += result.CorrectedRoomCount
	}
	return total, nil
}
