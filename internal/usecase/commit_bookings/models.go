package commit_bookings

import "github.com/m04kA/SMC-ResourceBooking/internal/domain"

// Progress прогресс сохранения
type Progress struct {
	Current int
	Total   int
}

// Request модель запроса на сохранение
type Request struct {
	Domain     string                    // Имя домена
	Candidates []domain.BookingCandidate // Только valid-часть отчёта о конфликтах, в порядке отправки
	Selection  SelectionStore            // Очищается после цикла (опционально)
	OnProgress func(Progress)            // Вызывается после каждого созданного бронирования (опционально)
}

// Response результат сохранения
// При ошибке записи Created содержит уже сохранённые бронирования
type Response struct {
	Created []*domain.Reservation
	Total   int
}

// CreatedIDs идентификаторы созданных бронирований
func (r *Response) CreatedIDs() []int64 {
	ids := make([]int64, 0, len(r.Created))
	for _, c := range r.Created {
		ids = append(ids, c.ID)
	}
	return ids
}
