package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
	"rental-backend/services"
)

func TestRoomCreate_Validation(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)

	err := f.rooms.Create(&models.Room{PropertyID: property.ID, Code: "", Capacity: 2})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	err = f.rooms.Create(&models.Room{PropertyID: property.ID, Code: "P101", Capacity: 0})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestSetOccupancy_RejectsInvariantViolations(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)

	// OCCUPIED with zero occupants
	err := f.rooms.SetOccupancy(room.ID, models.RoomStatusOccupied, 0)
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	// VACANT with occupants
	err = f.rooms.SetOccupancy(room.ID, models.RoomStatusVacant, 1)
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	// over capacity
	err = f.rooms.SetOccupancy(room.ID, models.RoomStatusOccupied, 3)
	require.Error(t, err)
	assert.Equal(t, services.CodeCapacityExceeded, services.CodeOf(err))

	// unknown status
	err = f.rooms.SetOccupancy(room.ID, "PARTY", 1)
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	// valid mutation
	require.NoError(t, f.rooms.SetOccupancy(room.ID, models.RoomStatusOccupied, 2))
	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, 2, updated.CurrentOccupants)
}

func TestCanDelete_FailsClosedWithActiveTenant(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	check, err := f.rooms.CanDelete(room.ID)
	require.NoError(t, err)
	assert.False(t, check.CanDelete)
	assert.NotEmpty(t, check.Reason)

	err = f.rooms.Delete(room.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestCanDelete_BlocksOnOpenContract(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rental := rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	// Deactivate the tenant directly so only the ACTIVE contract remains.
	require.NoError(t, f.db.Model(&models.Tenant{}).Where("id = ?", rental.Tenant.ID).
		Updates(map[string]interface{}{"is_active": false, "room_id": nil}).Error)

	check, err := f.rooms.CanDelete(room.ID)
	require.NoError(t, err)
	assert.False(t, check.CanDelete)
}

func TestDelete_AllowedAfterMoveOut(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rental := rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")
	require.NoError(t, f.moves.MoveOut(rental.Tenant.ID, date(t, "2025-06-15"), "reason", ""))

	check, err := f.rooms.CanDelete(room.ID)
	require.NoError(t, err)
	assert.True(t, check.CanDelete)

	require.NoError(t, f.rooms.Delete(room.ID))

	// Soft-deleted rooms vanish from every read.
	_, err = f.rooms.GetByID(room.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	rooms, err := f.rooms.GetByProperty(property.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomUpdate_RejectsCapacityBelowOccupants(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	second := models.Tenant{FullName: "Binh"}
	require.NoError(t, f.tenants.Create(&second))
	require.NoError(t, f.moves.MoveIn(second.ID, room.ID, date(t, "2025-02-01"), "ở ghép", "", nil))

	// Two occupants: shrinking capacity under them must be rejected.
	err := f.rooms.Update(room.ID, map[string]interface{}{"capacity": 1.0})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))
	assert.Equal(t, services.CodeCapacityExceeded, services.CodeOf(err))

	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, 2, updated.Capacity)
	assert.Equal(t, 2, updated.CurrentOccupants)

	// Growing it is fine.
	require.NoError(t, f.rooms.Update(room.ID, map[string]interface{}{"capacity": 3}))
	assert.Equal(t, 3, f.reloadRoom(t, room.ID).Capacity)
	f.assertRoomConsistent(t, room.ID)
}

func TestRoomUpdate_ProtectsOccupancyColumns(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)

	err := f.rooms.Update(room.ID, map[string]interface{}{
		"monthly_rent":      3500000.0,
		"status":            models.RoomStatusOccupied,
		"current_occupants": 5,
	})
	require.NoError(t, err)

	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, 3500000.0, updated.MonthlyRent)
	assert.Equal(t, models.RoomStatusVacant, updated.Status)
	assert.Equal(t, 0, updated.CurrentOccupants)
}
