package check_conflicts

import "github.com/m04kA/SMC-ResourceBooking/internal/domain"

// Request модель запроса на проверку конфликтов
type Request struct {
	Domain     string                    // Имя домена
	Candidates []domain.BookingCandidate // Все кандидаты одной отправки формы
}

// Response отчёт о конфликтах
type Response struct {
	Report *domain.ConflictReport
}
