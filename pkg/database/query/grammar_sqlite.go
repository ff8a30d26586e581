package query

// SQLiteGrammar, SQLite lehçesidir. SQLite'ta TRUNCATE olmadığı için tablo
// delete ile boşaltılır ve autoincrement sayacı sqlite_sequence'tan silinir.
type SQLiteGrammar struct {
	BaseGrammar
}

// NewSQLiteGrammar, yeni bir SQLite grammar'ı oluşturur.
func NewSQLiteGrammar(opts ...GrammarOption) *SQLiteGrammar {
	return &SQLiteGrammar{BaseGrammar: newBaseGrammar("sqlite", `"%s"`, opts)}
}

// CompileTruncate, iki cümle döndürür. Anahtarlar sıralandığında tablo
// silme cümlesi sayaç silme cümlesinden önce gelir.
func (g *SQLiteGrammar) CompileTruncate(q *Query) (map[string][]interface{}, error) {
	table, err := g.requireTable(q, "truncate")
	if err != nil {
		return nil, err
	}
	sqls := make(map[string][]interface{}, 2)
	sqls["delete from "+table] = []interface{}{}
	sqls["delete from sqlite_sequence where name = ?"] = []interface{}{g.tableName(q)}
	return sqls, nil
}
