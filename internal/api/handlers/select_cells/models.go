package select_cells

import "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"

// SelectRequest HTTP request model
// Ячейки добавляются к выделению по тем же правилам, что и при перетаскивании
type SelectRequest struct {
	Cells []sessionview.Cell `json:"cells"`
}
