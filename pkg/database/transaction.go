// pkg/database/transaction.go
//
// Bir transaction; bir grup veritabanı işleminin ya tamamen başarılı olmasını
// ya da hiçbirinin uygulanmamış kabul edilmesini sağlar. Insert-get-id gibi
// yazma ve okuma adımlarından oluşan işlemleri atomik yapmak için de
// kullanılır.
//
// Transaction yapısı *sql.Tx'i sarar ve Connection ile aynı API'yi sunar:
// Builder'lar transaction içinde de aynı lehçe ve placeholder çevirisiyle
// çalışır.
//
// Örnek kullanım:
//
//	err := conn.Transaction(ctx, func(tx *database.Transaction) error {
//	    id, err := tx.Table("orders").InsertGetID(ctx, query.RowOf("total", 100), "id")
//	    if err != nil {
//	        return err
//	    }
//	    _, err = tx.Table("order_items").Insert(ctx, query.RowOf("order_id", id, "sku", "A1"))
//	    return err
//	})
//
// Callback hata dönerse veya panic olursa transaction geri alınır.

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/biyonik/leaps-query/pkg/database/query"
	"github.com/biyonik/leaps-query/pkg/events"
)

// Transaction, veritabanı transaction yapısını temsil eder.
type Transaction struct {
	tx   *sql.Tx
	conn *Connection
}

// Begin, yeni bir transaction başlatır. Dönen Transaction mutlaka Commit
// veya Rollback ile sonlandırılmalıdır.
func (c *Connection) Begin(ctx context.Context, opts *sql.TxOptions) (*Transaction, error) {
	tx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.logger.Println("🔄 Transaction başladı.")
	c.fire(events.TransactionBeginningEvent)
	return &Transaction{tx: tx, conn: c}, nil
}

// Transaction, fn'i bir transaction içinde çalıştırır. fn nil dönerse
// commit edilir; hata dönerse veya panic olursa rollback yapılır.
func (c *Connection) Transaction(ctx context.Context, fn func(*Transaction) error) error {
	tx, err := c.Begin(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Tx, alttaki *sql.Tx'i döndürür.
func (t *Transaction) Tx() *sql.Tx {
	return t.tx
}

// Table, transaction'a bağlı yeni bir Builder döndürür.
func (t *Transaction) Table(table interface{}) *query.Builder {
	return t.Query().Table(table)
}

// Query, transaction'a bağlı tablosuz bir Builder döndürür.
func (t *Transaction) Query() *query.Builder {
	return query.NewBuilder(t.conn.grammar, t, t.conn.processor).WithScanner(t.conn.scanner)
}

// ExecContext, SQL'i transaction içinde çalıştırır.
func (t *Transaction) ExecContext(ctx context.Context, sqlStr string, args ...interface{}) (sql.Result, error) {
	sqlStr = t.conn.prepare(sqlStr, args)
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, sqlStr, args...)
	t.conn.queryExecuted(sqlStr, args, start, err)
	return res, err
}

// QueryContext, SQL'i transaction içinde çalıştırır ve satırları döndürür.
func (t *Transaction) QueryContext(ctx context.Context, sqlStr string, args ...interface{}) (*sql.Rows, error) {
	sqlStr = t.conn.prepare(sqlStr, args)
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, sqlStr, args...)
	t.conn.queryExecuted(sqlStr, args, start, err)
	return rows, err
}

// QueryRowContext, SQL'i transaction içinde çalıştırır ve tek satır döndürür.
func (t *Transaction) QueryRowContext(ctx context.Context, sqlStr string, args ...interface{}) *sql.Row {
	sqlStr = t.conn.prepare(sqlStr, args)
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, sqlStr, args...)
	t.conn.queryExecuted(sqlStr, args, start, row.Err())
	return row
}

// Commit, transaction'ı başarılı şekilde sonlandırır.
func (t *Transaction) Commit() error {
	err := t.tx.Commit()
	if err == nil {
		t.conn.logger.Println("✅ Transaction commit edildi.")
		t.conn.fire(events.TransactionCommittedEvent)
	}
	return err
}

// Rollback, transaction sırasında yapılan tüm değişiklikleri geri alır.
func (t *Transaction) Rollback() error {
	err := t.tx.Rollback()
	if err == nil {
		t.conn.logger.Println("❌ Transaction geri alındı.")
		t.conn.fire(events.TransactionRolledBackEvent)
	}
	return err
}
