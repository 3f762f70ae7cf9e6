package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
)

func forceRoomState(t *testing.T, f *fixture, roomID uint, status string, occupants int) {
	require.NoError(t, f.db.Model(&models.Room{}).Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"status":            status,
			"current_occupants": occupants,
		}).Error)
}

func TestReconcile_CorrectsGhostOccupancy(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)

	// Drifted state: recorded occupied, but no active tenant exists.
	forceRoomState(t, f, room.ID, models.RoomStatusOccupied, 1)

	result, err := f.reconciler.Reconcile(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectedRoomCount)

	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, models.RoomStatusVacant, updated.Status)
	assert.Equal(t, 0, updated.CurrentOccupants)
}

func TestReconcile_CountMismatchForcesVacant(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 3)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	// One active tenant, but the stored count says two.
	forceRoomState(t, f, room.ID, models.RoomStatusOccupied, 2)

	result, err := f.reconciler.Reconcile(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectedRoomCount)

	// Conservative policy: any mismatch forces fully vacant, it does not
	// rewrite to the true count.
	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, models.RoomStatusVacant, updated.Status)
	assert.Equal(t, 0, updated.CurrentOccupants)
}

func TestReconcile_LeavesConsistentRoomsAlone(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	result, err := f.reconciler.Reconcile(property.ID)
	require.NoError(t, err)
	assert.Zero(t, result.CorrectedRoomCount)

	updated := f.reloadRoom(t, room.ID)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)
	assert.Equal(t, 1, updated.CurrentOccupants)
}

func TestReconcile_Idempotent(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	forceRoomState(t, f, room.ID, models.RoomStatusOccupied, 1)

	first, err := f.reconciler.Reconcile(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CorrectedRoomCount)

	second, err := f.reconciler.Reconcile(property.ID)
	require.NoError(t, err)
	assert.Zero(t, second.CorrectedRoomCount)
}

func TestReconcile_ScopedToProperty(t *testing.T) {
	f := newFixture(t)
	propertyA := f.createProperty(t)
	propertyB := models.Property{Name: "Annex", Address: "2 Test St"}
	require.NoError(t, f.properties.Create(&propertyB))

	roomA := f.createRoom(t, propertyA.ID, "P101", 2)
	roomB := f.createRoom(t, propertyB.ID, "P101", 2)
	forceRoomState(t, f, roomA.ID, models.RoomStatusOccupied, 1)
	forceRoomState(t, f, roomB.ID, models.RoomStatusOccupied, 1)

	result, err := f.reconciler.Reconcile(propertyA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectedRoomCount)

	// The other property's drifted room is untouched.
	other := f.reloadRoom(t, roomB.ID)
	assert.Equal(t, models.RoomStatusOccupied, other.Status)

	total, err := f.reconciler.ReconcileAll()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestReconcile_PropertyNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.reconciler.Reconcile(9999)
	require.Error(t, err)
}
