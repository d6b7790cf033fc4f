package export

import (
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerBookingsWorkbook(t *testing.T) {
	owner := &models.User{ID: 1, Name: "alice"}
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	bookings := []*models.Booking{
		{ID: 5, ItemID: 10, BookerID: 2, Start: start, End: start.Add(24 * time.Hour), Status: models.StatusApproved},
		{ID: 6, ItemID: 99, BookerID: 3, Start: start, End: start.Add(48 * time.Hour), Status: models.StatusWaiting},
	}
	items := map[int64]*models.Item{
		10: {ID: 10, Name: "drill"},
	}

	f, err := OwnerBookingsWorkbook(owner, bookings, items)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Item", "Booker ID", "Start", "End", "Status"}, rows[0])

	assert.Equal(t, "5", rows[1][0])
	assert.Equal(t, "drill", rows[1][1])
	assert.Equal(t, models.StatusApproved, rows[1][5])

	// Unknown item falls back to its raw id.
	assert.Equal(t, "#99", rows[2][1])
	assert.Equal(t, models.StatusWaiting, rows[2][5])
}

func TestOwnerBookingsWorkbookEmpty(t *testing.T) {
	owner := &models.User{ID: 1, Name: "alice"}

	f, err := OwnerBookingsWorkbook(owner, nil, nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
