package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-backend/models"
	"rental-backend/services"
)

type fixture struct {
	db           *gorm.DB
	properties   *services.PropertyService
	rooms        *services.RoomService
	tenants      *services.TenantService
	contracts    *services.ContractService
	availability *services.AvailabilityService
	rentals      *services.RentalService
	moves        *services.MoveService
	reconciler   *services.ReconcileService
}

func newFixture(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Contract{},
	))

	availability := services.NewAvailabilityService(db)
	tenants := services.NewTenantService(db)
	contracts := services.NewContractService(db)
	return &fixture{
		db:           db,
		properties:   services.NewPropertyService(db),
		rooms:        services.NewRoomService(db),
		tenants:      tenants,
		contracts:    contracts,
		availability: availability,
		rentals:      services.NewRentalService(db, availability, tenants),
		moves:        services.NewMoveService(db, availability),
		reconciler:   services.NewReconcileService(db),
	}
}

func (f *fixture) createProperty(t *testing.T) models.Property {
	property := models.Property{Name: "Test Building", Address: "1 Test St"}
	require.NoError(t, f.properties.Create(&property))
	return property
}

func (f *fixture) createRoom(t *testing.T, propertyID uint, code string, capacity int) models.Room {
	room := models.Room{
		PropertyID:  propertyID,
		Code:        code,
		Capacity:    capacity,
		Status:      models.RoomStatusVacant,
		MonthlyRent: 3000000,
	}
	require.NoError(t, f.rooms.Create(&room))
	return room
}

func date(t *testing.T, value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// reloadRoom fetches the room fresh from the store.
func (f *fixture) reloadRoom(t *testing.T, id uint) models.Room {
	var room models.Room
	require.NoError(t, f.db.First(&room, id).Error)
	return room
}

func (f *fixture) reloadTenant(t *testing.T, id uint) models.Tenant {
	var tenant models.Tenant
	require.NoError(t, f.db.First(&tenant, id).Error)
	return tenant
}

func (f *fixture) reloadContract(t *testing.T, id uint) models.Contract {
	var contract models.Contract
	require.NoError(t, f.db.First(&contract, id).Error)
	return contract
}

// assertRoomConsistent re-derives the occupancy invariant from the tenant
// table: current_occupants equals the number of active tenants, and the
// OCCUPIED status appears iff that count is positive.
func (f *fixture) assertRoomConsistent(t *testing.T, roomID uint) {
	t.Helper()
	room := f.reloadRoom(t, roomID)

	var activeTenants int64
	require.NoError(t, f.db.Model(&models.Tenant{}).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Count(&activeTenants).Error)

	require.Equal(t, int(activeTenants), room.CurrentOccupants,
		"room %d occupant count drifted", roomID)
	if room.Status != models.RoomStatusMaintenance {
		if room.CurrentOccupants > 0 {
			require.Equal(t, models.RoomStatusOccupied, room.Status)
		} else {
			require.Equal(t, models.RoomStatusVacant, room.Status)
		}
	}
}
