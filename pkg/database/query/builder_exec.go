package query

import (
	"context"
	"database/sql"
	"sort"

	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------------
// EXECUTION
// -----------------------------------------------------------------------------
// Bu dosyadaki metodlar derlenmiş SQL'i Builder'ın Connection'ı üzerinde
// çalıştırır. Connection yoksa ErrNoConnection döner. Driver hataları
// olduğu gibi iletilir; derleme hataları ise hangi işlemde oluştuğunu
// belirten bir mesajla sarmalanır.
// -----------------------------------------------------------------------------

func (b *Builder) connection() (Connection, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.conn == nil {
		return nil, ErrNoConnection
	}
	return b.conn, nil
}

func (b *Builder) rows(ctx context.Context, build func(*Query)) (*sql.Rows, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	q := b.query
	if build != nil {
		q = q.Clone()
		build(q)
	}
	sqlStr, args, err := b.grammar.CompileSelect(q)
	if err != nil {
		return nil, errors.Wrap(err, "select compilation failed")
	}
	return conn.QueryContext(ctx, sqlStr, args...)
}

// Get, sorguyu çalıştırır ve satırları kolon → değer map'leri olarak döndürür.
func (b *Builder) Get(ctx context.Context) ([]map[string]interface{}, error) {
	rows, err := b.rows(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// Scan, sorguyu çalıştırır ve sonuçları dest slice'ına tarar.
//
// Örnek:
//
//	var users []User
//	err := qb.Table("users").Where("active", "=", true).Scan(ctx, &users)
func (b *Builder) Scan(ctx context.Context, dest interface{}) error {
	rows, err := b.rows(ctx, nil)
	if err != nil {
		return err
	}
	defer rows.Close()

	return b.scanner.ScanSlice(rows, dest)
}

// First, ilk satırı dest struct'ına tarar. Satır yoksa sql.ErrNoRows döner.
// Builder'ın kendi limiti değişmez.
func (b *Builder) First(ctx context.Context, dest interface{}) error {
	rows, err := b.rows(ctx, func(q *Query) {
		limit := 1
		q.Limit = &limit
	})
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	return b.scanner.ScanStruct(rows, dest)
}

// Exists, sorgunun en az bir satır döndürüp döndürmediğini kontrol eder.
func (b *Builder) Exists(ctx context.Context) (bool, error) {
	rows, err := b.rows(ctx, func(q *Query) {
		limit := 1
		q.Columns = []interface{}{Raw("1")}
		q.Aggregate = nil
		q.Orders = nil
		q.Limit = &limit
		q.Offset = nil
	})
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := rows.Next()
	return found, rows.Err()
}

// -----------------------------------------------------------------------------
// AGGREGATES
// -----------------------------------------------------------------------------

// aggregate, "select fn(kolonlar) as aggregate" sorgusunu çalıştırır.
// Sıralama aggregate sorgusundan çıkarılır.
func (b *Builder) aggregate(ctx context.Context, function string, columns []interface{}) (interface{}, error) {
	rows, err := b.rows(ctx, func(q *Query) {
		q.Aggregate = &Aggregate{Function: function, Columns: columns}
		q.Orders = nil
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var value interface{}
	if err := rows.Scan(&value); err != nil {
		return nil, err
	}
	if raw, ok := value.([]byte); ok {
		value = string(raw)
	}
	return value, rows.Err()
}

// Count, satır sayısını döndürür. Kolon verilmezse count(*) kullanılır.
//
// Örnek:
//
//	n, err := qb.Table("users").Where("active", "=", true).Count(ctx)
func (b *Builder) Count(ctx context.Context, columns ...interface{}) (int64, error) {
	value, err := b.aggregate(ctx, "count", columns)
	if err != nil {
		return 0, err
	}
	n, ok := normalizeID(value).(int64)
	if !ok && value != nil {
		return 0, errors.Errorf("count: unexpected result type %T", value)
	}
	return n, nil
}

// Max, kolonun en büyük değerini döndürür. Satır yoksa nil döner.
func (b *Builder) Max(ctx context.Context, column interface{}) (interface{}, error) {
	return b.aggregate(ctx, "max", []interface{}{column})
}

// Min, kolonun en küçük değerini döndürür. Satır yoksa nil döner.
func (b *Builder) Min(ctx context.Context, column interface{}) (interface{}, error) {
	return b.aggregate(ctx, "min", []interface{}{column})
}

// Sum, kolonun toplamını döndürür. Satır yoksa 0 döner.
func (b *Builder) Sum(ctx context.Context, column interface{}) (float64, error) {
	return b.numericAggregate(ctx, "sum", column)
}

// Avg, kolonun ortalamasını döndürür. Satır yoksa 0 döner.
func (b *Builder) Avg(ctx context.Context, column interface{}) (float64, error) {
	return b.numericAggregate(ctx, "avg", column)
}

func (b *Builder) numericAggregate(ctx context.Context, function string, column interface{}) (float64, error) {
	value, err := b.aggregate(ctx, function, []interface{}{column})
	if err != nil || value == nil {
		return 0, err
	}
	var f sql.NullFloat64
	if err := f.Scan(value); err != nil {
		return 0, errors.Wrapf(err, "%s: unexpected result", function)
	}
	return f.Float64, nil
}

// -----------------------------------------------------------------------------
// WRITES
// -----------------------------------------------------------------------------

func (b *Builder) exec(ctx context.Context, sqlStr string, args []interface{}) (int64, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	result, err := conn.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Insert, bir veya daha fazla satır ekler ve etkilenen satır sayısını döndürür.
//
// Örnek:
//
//	qb.Table("users").Insert(ctx,
//	    query.RowOf("name", "John", "email", "john@example.com"),
//	    query.RowOf("name", "Jane", "email", "jane@example.com"))
func (b *Builder) Insert(ctx context.Context, rows ...*Row) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	sqlStr, args, err := b.grammar.CompileInsert(b.query, rows...)
	if err != nil {
		return 0, errors.Wrap(err, "insert compilation failed")
	}
	return b.exec(ctx, sqlStr, args)
}

// InsertGetID, tek satır ekler ve üretilen anahtarı döndürür. Anahtar
// sayısalsa int64 olarak döner. Sequence boşsa "id" kullanılır.
func (b *Builder) InsertGetID(ctx context.Context, row *Row, sequence string) (interface{}, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := b.grammar.CompileInsertGetID(b.query, row, sequence)
	if err != nil {
		return nil, errors.Wrap(err, "insert compilation failed")
	}
	return b.processor.ProcessInsertGetID(ctx, conn, sqlStr, args, sequence)
}

// Update, where koşullarına uyan satırları günceller.
//
// Örnek:
//
//	qb.Table("users").Where("id", "=", 1).Update(ctx, query.RowOf("name", "John"))
//	→ SQL: update "users" set "name" = ? where "id" = ?
func (b *Builder) Update(ctx context.Context, values *Row) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	sqlStr, args, err := b.grammar.CompileUpdate(b.query, values)
	if err != nil {
		return 0, errors.Wrap(err, "update compilation failed")
	}
	return b.exec(ctx, sqlStr, args)
}

// Delete, where koşullarına uyan satırları siler. Where yoksa tablo boşalır.
func (b *Builder) Delete(ctx context.Context) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	sqlStr, args, err := b.grammar.CompileDelete(b.query)
	if err != nil {
		return 0, errors.Wrap(err, "delete compilation failed")
	}
	return b.exec(ctx, sqlStr, args)
}

// Truncate, tabloyu boşaltır. Lehçe birden fazla cümle üretirse cümleler
// sıralı olarak çalıştırılır.
func (b *Builder) Truncate(ctx context.Context) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	statements, err := b.grammar.CompileTruncate(b.query)
	if err != nil {
		return errors.Wrap(err, "truncate compilation failed")
	}

	keys := make([]string, 0, len(statements))
	for sqlStr := range statements {
		keys = append(keys, sqlStr)
	}
	sort.Strings(keys)

	for _, sqlStr := range keys {
		if _, err := conn.ExecContext(ctx, sqlStr, statements[sqlStr]...); err != nil {
			return err
		}
	}
	return nil
}
