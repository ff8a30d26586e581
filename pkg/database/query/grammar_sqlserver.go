package query

import "fmt"

// -----------------------------------------------------------------------------
// SQL Server Grammar
// -----------------------------------------------------------------------------
// SQL Server'da LIMIT/OFFSET yoktur:
//   - yalnızca limit: "select top 10 ..."
//   - offset varsa: "order by ... offset 20 rows fetch next 10 rows only"
//
// OFFSET ... FETCH bir ORDER BY gerektirir; sorguda sıralama yoksa
// "order by (select 0)" eklenir.
// -----------------------------------------------------------------------------

// SQLServerGrammar, Microsoft SQL Server lehçesidir. Identifier'lar köşeli
// parantezle sarmalanır.
type SQLServerGrammar struct {
	BaseGrammar
}

type sqlServerDialect struct{}

// NewSQLServerGrammar, yeni bir SQL Server grammar'ı oluşturur.
func NewSQLServerGrammar(opts ...GrammarOption) *SQLServerGrammar {
	g := &SQLServerGrammar{BaseGrammar: newBaseGrammar("sqlserver", "[%s]", opts)}
	g.dialect = sqlServerDialect{}
	return g
}

func (sqlServerDialect) columnsPrefix(q *Query) string {
	if q.Limit == nil || (q.Offset != nil && *q.Offset > 0) {
		return ""
	}
	return fmt.Sprintf("top %d ", *q.Limit)
}

func (sqlServerDialect) compileLimit(*Query, int) string {
	return ""
}

func (sqlServerDialect) compileOffset(q *Query, offset int) string {
	if offset <= 0 {
		return ""
	}
	sql := fmt.Sprintf("offset %d rows", offset)
	if len(q.Orders) == 0 {
		sql = "order by (select 0) " + sql
	}
	if q.Limit != nil {
		sql += fmt.Sprintf(" fetch next %d rows only", *q.Limit)
	}
	return sql
}

// CompileInsertGetID, insert'i scope_identity() ile birlikte tek batch
// olarak derler. SQLServerProcessor "id" kolonunu okur.
func (g *SQLServerGrammar) CompileInsertGetID(q *Query, row *Row, _ string) (string, []interface{}, error) {
	sql, bindings, err := g.CompileInsert(q, row)
	if err != nil {
		return "", nil, err
	}
	return "set nocount on; " + sql + "; select scope_identity() as [id]", bindings, nil
}

// CompileTruncate, "truncate table <tablo>" üretir.
func (g *SQLServerGrammar) CompileTruncate(q *Query) (map[string][]interface{}, error) {
	table, err := g.requireTable(q, "truncate")
	if err != nil {
		return nil, err
	}
	return map[string][]interface{}{"truncate table " + table: {}}, nil
}
