package query

import (
	"context"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Processors
// -----------------------------------------------------------------------------
// Processor, derlenmiş bir insert-get-id cümlesini çalıştırır ve üretilen
// anahtarı geri okur. Lehçeler anahtarı farklı yollarla döndürür:
//   - MySQL, SQLite: sql.Result.LastInsertId (DefaultProcessor)
//   - PostgreSQL: "returning" satırı (PostgresProcessor)
//   - SQL Server: "select scope_identity() as [id]" satırı (SQLServerProcessor)
//
// Yazma ve okuma tek bir atomik işlem değildir; gerekiyorsa çağıran
// tarafın bir transaction içinde çalıştırması gerekir. Driver hataları
// olduğu gibi yukarı iletilir.
// -----------------------------------------------------------------------------

// Processor, insert sonrası üretilen anahtarı döndürür.
type Processor interface {
	ProcessInsertGetID(ctx context.Context, conn Connection, sql string, bindings []interface{}, sequence string) (interface{}, error)
}

// DefaultProcessor, LastInsertId destekleyen driver'lar içindir.
type DefaultProcessor struct{}

// ProcessInsertGetID, insert'i çalıştırır ve LastInsertId döndürür.
func (DefaultProcessor) ProcessInsertGetID(ctx context.Context, conn Connection, sql string, bindings []interface{}, _ string) (interface{}, error) {
	if conn == nil {
		return nil, ErrNoConnection
	}
	result, err := conn.ExecContext(ctx, sql, bindings...)
	if err != nil {
		return nil, err
	}
	return result.LastInsertId()
}

// PostgresProcessor, "returning" ile dönen tek satırı okur.
type PostgresProcessor struct{}

// ProcessInsertGetID, insert'i çalıştırır ve dönen ilk kolonu okur.
func (PostgresProcessor) ProcessInsertGetID(ctx context.Context, conn Connection, sql string, bindings []interface{}, _ string) (interface{}, error) {
	return scanInsertedID(ctx, conn, sql, bindings)
}

// SQLServerProcessor, scope_identity() satırını okur. scope_identity()
// numeric döndürdüğü için değer tamsayıya çevrilir.
type SQLServerProcessor struct{}

// ProcessInsertGetID, insert batch'ini çalıştırır ve "id" kolonunu okur.
func (SQLServerProcessor) ProcessInsertGetID(ctx context.Context, conn Connection, sql string, bindings []interface{}, _ string) (interface{}, error) {
	return scanInsertedID(ctx, conn, sql, bindings)
}

func scanInsertedID(ctx context.Context, conn Connection, sql string, bindings []interface{}) (interface{}, error) {
	if conn == nil {
		return nil, ErrNoConnection
	}
	var id interface{}
	if err := conn.QueryRowContext(ctx, sql, bindings...).Scan(&id); err != nil {
		return nil, err
	}
	return normalizeID(id), nil
}

// normalizeID, sayısal görünen anahtarları int64'e çevirir. Sayısal
// olmayan değerler (uuid vb.) olduğu gibi döner.
func normalizeID(id interface{}) interface{} {
	switch v := id.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	case []byte:
		return normalizeID(string(v))
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return int64(f)
		}
		return v
	}
	return id
}

// ProcessorFor, lehçe adına göre processor döndürür.
func ProcessorFor(dialect string) Processor {
	switch CanonicalDialect(dialect) {
	case "postgres":
		return PostgresProcessor{}
	case "sqlserver":
		return SQLServerProcessor{}
	}
	return DefaultProcessor{}
}
