package prepare_booking

import "github.com/m04kA/SMC-ResourceBooking/internal/domain"

// Request модель запроса на подготовку кандидатов
type Request struct {
	Domain     string                   // Имя домена
	Selections []domain.MergedSelection // Слитое выделение из хранилища
	Form       domain.BookingForm       // Поля формы, общие для всех выделений
}

// Response кандидаты в порядке отправки: исходное выделение, затем его повторы
type Response struct {
	Candidates []domain.BookingCandidate
}
