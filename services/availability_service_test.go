package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
	"rental-backend/services"
)

func rentRoom(t *testing.T, f *fixture, roomID uint, name, start, end string) *services.RentalResult {
	result, err := f.rentals.CreateRental(roomID,
		services.TenantInput{FullName: name},
		services.ContractInput{
			StartDate:   date(t, start),
			EndDate:     date(t, end),
			MonthlyRent: 3000000,
		})
	require.NoError(t, err)
	return result
}

func TestCheckAvailability_EmptyRoom(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)

	result, err := f.availability.Check(room.ID, date(t, "2025-01-01"), date(t, "2025-12-31"), nil)
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
	assert.Empty(t, result.Conflicts)
}

func TestCheckAvailability_OverlapReported(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	result, err := f.availability.Check(room.ID, date(t, "2025-06-01"), date(t, "2025-06-30"), nil)
	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	assert.Len(t, result.Conflicts, 1)
}

func TestCheckAvailability_TouchingBoundaryConflicts(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-06-30")

	// Candidate starts exactly on the existing contract's end date.
	result, err := f.availability.Check(room.ID, date(t, "2025-06-30"), date(t, "2025-12-31"), nil)
	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	assert.Len(t, result.Conflicts, 1)

	// One day later is free.
	result, err = f.availability.Check(room.ID, date(t, "2025-07-01"), date(t, "2025-12-31"), nil)
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
}

func TestCheckAvailability_IgnoresTerminalContracts(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rental := rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	require.NoError(t, f.db.Model(&models.Contract{}).
		Where("id = ?", rental.Contract.ID).
		Update("status", models.ContractStatusTerminated).Error)

	result, err := f.availability.Check(room.ID, date(t, "2025-06-01"), date(t, "2025-06-30"), nil)
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
}

func TestCheckAvailability_ExcludesGivenContract(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)
	rental := rentRoom(t, f, room.ID, "An", "2025-01-01", "2025-12-31")

	// Re-checking the contract's own range with itself excluded is clean.
	result, err := f.availability.Check(room.ID, date(t, "2025-01-01"), date(t, "2025-12-31"), &rental.Contract.ID)
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
}

func TestCheckAvailability_RejectsInvertedRange(t *testing.T) {
	f := newFixture(t)
	property := f.createProperty(t)
	room := f.createRoom(t, property.ID, "P101", 2)

	_, err := f.availability.Check(room.ID, date(t, "2025-12-31"), date(t, "2025-01-01"), nil)
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))
	assert.Equal(t, services.CodeInvalidDateRange, services.CodeOf(err))
}
