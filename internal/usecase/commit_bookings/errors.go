package commit_bookings

import "errors"

var (
	// ErrNothingToCommit возвращается, когда список валидных кандидатов пуст
	ErrNothingToCommit = errors.New("commit_bookings: nothing to commit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_bookings: invalid input data")
)
