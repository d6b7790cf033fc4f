package export

import (
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

// OwnerBookingsWorkbook renders an owner's bookings into a single-sheet xlsx
// workbook, one row per booking. Item names are resolved from the supplied
// catalog snapshot; unknown items fall back to the raw id.
func OwnerBookingsWorkbook(owner *models.User, bookings []*models.Booking, items map[int64]*models.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), bookingsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{"ID", "Item", "Booker ID", "Start", "End", "Status"}
	if err := f.SetSheetRow(bookingsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, b := range bookings {
		itemName := fmt.Sprintf("#%d", b.ItemID)
		if item, ok := items[b.ItemID]; ok {
			itemName = item.Name
		}
		row := []interface{}{
			b.ID,
			itemName,
			b.BookerID,
			b.Start.Format(time.RFC3339),
			b.End.Format(time.RFC3339),
			b.Status,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write booking row: %w", err)
		}
	}

	title := fmt.Sprintf("bookings for %s (%d total)", owner.Name, len(bookings))
	if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
		return nil, fmt.Errorf("failed to set doc properties: %w", err)
	}
	return f, nil
}
