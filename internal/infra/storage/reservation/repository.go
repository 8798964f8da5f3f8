package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"domain_name",
	"resource_id",
	"start_date",
	"start_time",
	"end_date",
	"end_time",
	"requester_name",
	"requester_contact",
	"requester_service",
	"purpose",
	"note",
	"recurring",
	"recurrence_rule",
	"recurrence_end",
	"series_id",
	"layout",
	"attendees",
	"status",
	"created_at",
}

// Repository репозиторий бронирований во внешнем табличном хранилище
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет одно бронирование и возвращает его с присвоенным ID
// Проверка конфликтов выполняется до вызова, на уровне хранилища ограничений нет
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:]...).
		Values(
			reservation.Domain,
			reservation.ResourceID,
			reservation.StartDate,
			reservation.StartTime,
			reservation.EndDate,
			reservation.EndTime,
			reservation.Requester.Name,
			reservation.Requester.Contact,
			nullString(reservation.Requester.Service),
			reservation.Purpose,
			reservation.Note,
			reservation.Recurring,
			nullString(string(reservation.RecurrenceRule)),
			reservation.RecurrenceEnd,
			reservation.SeriesID,
			reservation.Layout,
			reservation.Attendees,
			reservation.Status,
			reservation.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&reservation.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// List получает бронирования домена по фильтру
// Сортировка по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"domain_name": filter.Domain})

	// Фильтрация по ресурсу (если указан)
	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.To})
	}

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	query, args, err := selectBuilder.OrderBy("start_date ASC, start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Cancel переводит активное бронирование в статус cancelled
// Отменённые бронирования не участвуют в проверке конфликтов
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Ничего не обновлено: либо записи нет, либо она уже отменена
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrCannotCancel
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation      domain.Reservation
		requesterService sql.NullString
		recurrenceRule   sql.NullString
		recurrenceEnd    sql.NullTime
		seriesID         sql.NullString
		layout           sql.NullString
		note             sql.NullString
		attendees        sql.NullInt64
		createdAt        sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.Domain,
		&reservation.ResourceID,
		&reservation.StartDate,
		&reservation.StartTime,
		&reservation.EndDate,
		&reservation.EndTime,
		&reservation.Requester.Name,
		&reservation.Requester.Contact,
		&requesterService,
		&reservation.Purpose,
		&note,
		&reservation.Recurring,
		&recurrenceRule,
		&recurrenceEnd,
		&seriesID,
		&layout,
		&attendees,
		&reservation.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.StartDate = domain.DateOnly(reservation.StartDate)
	reservation.EndDate = domain.DateOnly(reservation.EndDate)
	reservation.Requester.Service = requesterService.String
	reservation.RecurrenceRule = domain.RecurrenceRule(recurrenceRule.String)
	reservation.CreatedAt = createdAt.Time

	if note.Valid {
		reservation.Note = &note.String
	}
	if recurrenceEnd.Valid {
		end := domain.DateOnly(recurrenceEnd.Time)
		reservation.RecurrenceEnd = &end
	}
	if seriesID.Valid {
		reservation.SeriesID = &seriesID.String
	}
	if layout.Valid {
		reservation.Layout = &layout.String
	}
	if attendees.Valid {
		n := int(attendees.Int64)
		reservation.Attendees = &n
	}

	return &reservation, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
