package reservation

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс выполнения запросов
// Реализуется *sql.DB; транзакции не используются: хранилище не даёт изоляции между клиентами
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
