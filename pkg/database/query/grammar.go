package query

// -----------------------------------------------------------------------------
// Grammar Interface
// -----------------------------------------------------------------------------
// Grammar, bir Query descriptor'ını tek bir SQL cümlesine ve ona paralel,
// sıralı bir binding listesine çeviren lehçe derleyicisidir. Derleme saf bir
// fonksiyondur: descriptor değiştirilmez, I/O yapılmaz, paylaşılan durum
// yoktur. Aynı Grammar farklı goroutine'lerden güvenle kullanılabilir.
//
// Binding'ler placeholder'lar yazılırken toplanır. Bu sayede SQL'deki N.
// "?" her zaman listedeki N. değere karşılık gelir.
//
// Lehçeler:
// - BaseGrammar: ANSI, çift tırnak ("table")
// - MySQLGrammar: backtick (`table`)
// - PostgresGrammar: çift tırnak, insert-get-id için "returning"
// - SQLiteGrammar: çift tırnak, truncate yerine delete
// - SQLServerGrammar: köşeli parantez ([table]), top / offset-fetch
// -----------------------------------------------------------------------------

// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar.
type Grammar interface {
	// Name, lehçenin adını döndürür (ansi | mysql | postgres | sqlite | sqlserver).
	Name() string

	// Wrap, kolon referanslarını lehçenin quote formatıyla sarmalar.
	// "users.id" → "users"."id", "email as e" → "email" as "e", "*" → *
	Wrap(value interface{}) (string, error)

	// WrapTable, tablo adını (varsa prefix ile) sarmalar.
	WrapTable(table interface{}) (string, error)

	// CompileSelect, SELECT sorgusu üretir.
	CompileSelect(q *Query) (string, []interface{}, error)

	// CompileInsert, bir veya daha fazla satır için INSERT üretir.
	// Tüm satırlar ilk satırla aynı kolonlara sahip olmalıdır.
	CompileInsert(q *Query, rows ...*Row) (string, []interface{}, error)

	// CompileInsertGetID, üretilen anahtar geri okunacak INSERT'i üretir.
	CompileInsertGetID(q *Query, row *Row, sequence string) (string, []interface{}, error)

	// CompileUpdate, UPDATE sorgusu üretir.
	CompileUpdate(q *Query, values *Row) (string, []interface{}, error)

	// CompileDelete, DELETE sorgusu üretir.
	CompileDelete(q *Query) (string, []interface{}, error)

	// CompileTruncate, SQL → binding eşlemesi döndürür. Bazı lehçeler
	// tabloyu boşaltmak için birden fazla cümle çalıştırır.
	CompileTruncate(q *Query) (map[string][]interface{}, error)
}

// GrammarOption, grammar oluşturulurken verilen ayarlardır.
type GrammarOption func(*BaseGrammar)

// WithTablePrefix, tüm tablo adlarının başına eklenecek prefix'i belirler.
func WithTablePrefix(prefix string) GrammarOption {
	return func(g *BaseGrammar) {
		g.tablePrefix = prefix
	}
}

// WithUnionMode, birden fazla union'ın derlenme biçimini belirler.
func WithUnionMode(mode UnionMode) GrammarOption {
	return func(g *BaseGrammar) {
		g.unionMode = mode
	}
}
