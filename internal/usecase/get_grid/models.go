package get_grid

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// CellStatus состояние ячейки сетки
type CellStatus string

const (
	CellFree     CellStatus = "free"
	CellOccupied CellStatus = "occupied"
	CellBlocked  CellStatus = "blocked"
	CellPast     CellStatus = "past"
)

// Request модель запроса на получение сетки недели
type Request struct {
	Domain     string    // Имя домена
	WeekStart  time.Time // Любая дата недели; приводится к понедельнику
	ResourceID *string   // Только один ресурс (опционально)
}

// Response модель ответа с сеткой недели
type Response struct {
	Domain    string
	Shape     domain.ShapeRule
	WeekStart time.Time
	Resources []domain.Resource
	Days      []Day
}

// Day один день сетки
type Day struct {
	Date    time.Time
	Blocked bool
	Slots   []Slot
}

// Slot строка сетки: слот и состояние ячеек по ресурсам
type Slot struct {
	Start types.TimeString
	End   types.TimeString
	Label string
	Cells []Cell
}

// Cell состояние ячейки (ресурс, дата, слот)
type Cell struct {
	ResourceID    string
	Status        CellStatus
	ReservationID *int64
}
