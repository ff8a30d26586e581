package query

import (
	"context"
	"database/sql"
)

// Connection, Builder ve Processor'ın SQL çalıştırmak için kullandığı
// arayüzdür. *sql.DB, *sql.Tx, *sql.Conn ile database.Connection ve
// database.Transaction bu arayüzü örtük olarak uygular. Bu sayede aynı
// Builder hem havuz üzerinde hem de bir transaction içinde çalışabilir.
type Connection interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
