package query

import (
	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------------
// QUERY BUILDER
// -----------------------------------------------------------------------------
// Builder, bir Query descriptor'ını fluent API ile adım adım doldurur.
// Builder SQL üretmez; ToSQL ve çalıştırma metodları işi Grammar'a devreder.
// Bu sayede aynı Builder farklı lehçelerle derlenebilir.
//
// Identifier ve operatör doğrulaması derleme sırasında yapılır. Builder
// zincirinde oluşan hatalar (nil alt sorgu, geçersiz sayfa) saklanır ve
// ilk ToSQL/çalıştırma çağrısında döndürülür; zincir panic atmaz.
//
// Builder eşzamanlı değişiklik için güvenli değildir.
// -----------------------------------------------------------------------------

// Builder, fluent SQL sorgu oluşturucusudur.
type Builder struct {
	grammar   Grammar
	conn      Connection
	processor Processor
	scanner   *Scanner
	query     *Query
	err       error
}

// NewBuilder, verilen grammar ve connection ile yeni bir Builder oluşturur.
//
// Parametreler:
//   - grammar: SQL lehçesi; nil ise BaseGrammar kullanılır
//   - conn: *sql.DB, *sql.Tx veya database.Connection; sadece derleme için nil olabilir
//   - processor: insert-get-id için; nil ise lehçeye göre seçilir
//
// Örnek:
//
//	qb := query.NewBuilder(query.NewMySQLGrammar(), db, nil).Table("users")
func NewBuilder(grammar Grammar, conn Connection, processor Processor) *Builder {
	if grammar == nil {
		grammar = NewBaseGrammar()
	}
	if processor == nil {
		processor = ProcessorFor(grammar.Name())
	}
	return &Builder{
		grammar:   grammar,
		conn:      conn,
		processor: processor,
		scanner:   NewScanner(),
		query:     &Query{},
	}
}

// WithScanner, struct taramada kullanılacak Scanner'ı belirler. Aynı
// Connection'dan türeyen Builder'lar tek bir Scanner paylaşabilir.
func (b *Builder) WithScanner(s *Scanner) *Builder {
	if s != nil {
		b.scanner = s
	}
	return b
}

// NewQuery, aynı grammar ve connection'ı kullanan boş bir alt Builder döndürür.
// Alt sorgular (WhereInSub, WhereExists, Union) için kullanılır.
func (b *Builder) NewQuery() *Builder {
	return &Builder{
		grammar:   b.grammar,
		conn:      b.conn,
		processor: b.processor,
		scanner:   b.scanner,
		query:     &Query{},
	}
}

// Clone, descriptor'ın bağımsız bir kopyasıyla yeni bir Builder döndürür.
func (b *Builder) Clone() *Builder {
	c := *b
	c.query = b.query.Clone()
	return &c
}

// Query, Builder'ın tuttuğu descriptor'ı döndürür.
func (b *Builder) Query() *Query {
	return b.query
}

// Grammar, Builder'ın lehçesini döndürür.
func (b *Builder) Grammar() Grammar {
	return b.grammar
}

// Err, zincir sırasında oluşan ilk hatayı döndürür.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// sub, alt Builder'ın descriptor'ını döndürür ve hatasını devralır.
func (b *Builder) sub(sub *Builder, op string) *Query {
	if sub == nil {
		b.fail(errors.Wrapf(ErrInvalidQuery, "%s: nil sub-query", op))
		return nil
	}
	if sub.err != nil {
		b.fail(sub.err)
	}
	return sub.query
}

// Table, sorgunun çalışacağı tabloyu belirler. String veya Expression olabilir.
//
// Örnek:
//
//	qb.Table("users")
//	qb.Table("users as u")
func (b *Builder) Table(table interface{}) *Builder {
	b.query.From = table
	return b
}

// From, Table ile aynıdır.
func (b *Builder) From(table interface{}) *Builder {
	return b.Table(table)
}

// Select, seçilecek kolonları belirler. Önceki seçimin yerini alır.
//
// Örnek:
//
//	qb.Select("id", "name", query.Raw("count(*) as total"))
func (b *Builder) Select(columns ...interface{}) *Builder {
	b.query.Columns = append([]interface{}(nil), columns...)
	return b
}

// AddSelect, mevcut seçime kolon ekler.
func (b *Builder) AddSelect(columns ...interface{}) *Builder {
	b.query.Columns = append(b.query.Columns, columns...)
	return b
}

// Distinct, "select distinct" üretir.
func (b *Builder) Distinct() *Builder {
	b.query.Distinct = true
	return b
}

// -----------------------------------------------------------------------------
// JOINS
// -----------------------------------------------------------------------------

// Join, inner join ekler.
//
// Örnek:
//
//	qb.Join("posts", "users.id", "=", "posts.user_id")
//	→ SQL: inner join "posts" on "users"."id" = "posts"."user_id"
func (b *Builder) Join(table interface{}, first interface{}, operator string, second interface{}) *Builder {
	return b.JoinWith(NewJoin(InnerJoin, table).On(first, operator, second))
}

// LeftJoin, left join ekler.
func (b *Builder) LeftJoin(table interface{}, first interface{}, operator string, second interface{}) *Builder {
	return b.JoinWith(NewJoin(LeftJoin, table).On(first, operator, second))
}

// RightJoin, right join ekler.
func (b *Builder) RightJoin(table interface{}, first interface{}, operator string, second interface{}) *Builder {
	return b.JoinWith(NewJoin(RightJoin, table).On(first, operator, second))
}

// CrossJoin, koşulsuz cross join ekler.
func (b *Builder) CrossJoin(table interface{}) *Builder {
	return b.JoinWith(NewJoin(CrossJoin, table))
}

// JoinWith, hazır bir Join ekler. Birden fazla ON koşulu veya bound değer
// gereken durumlarda kullanılır.
//
// Örnek:
//
//	qb.JoinWith(query.NewJoin(query.LeftJoin, "posts").
//	    On("users.id", "=", "posts.user_id").
//	    Where("posts.status", "=", "published"))
func (b *Builder) JoinWith(join *Join) *Builder {
	if join == nil {
		return b.fail(errors.Wrap(ErrInvalidQuery, "join: nil join"))
	}
	b.query.Joins = append(b.query.Joins, join)
	return b
}

// -----------------------------------------------------------------------------
// GROUP / HAVING / ORDER / LIMIT
// -----------------------------------------------------------------------------

// GroupBy, "group by" kolonlarını ekler.
func (b *Builder) GroupBy(columns ...interface{}) *Builder {
	b.query.Groups = append(b.query.Groups, columns...)
	return b
}

// Having, "and" bağlacıyla having koşulu ekler.
//
// Örnek:
//
//	qb.GroupBy("user_id").Having("total", ">", 100)
//	→ SQL: group by "user_id" having "total" > ?
func (b *Builder) Having(column interface{}, operator string, value interface{}) *Builder {
	b.query.Havings = append(b.query.Havings, HavingBasic{Column: column, Operator: operator, Value: value, Boolean: And})
	return b
}

// OrHaving, "or" bağlacıyla having koşulu ekler.
func (b *Builder) OrHaving(column interface{}, operator string, value interface{}) *Builder {
	b.query.Havings = append(b.query.Havings, HavingBasic{Column: column, Operator: operator, Value: value, Boolean: Or})
	return b
}

// HavingRaw, ham having koşulu ekler.
func (b *Builder) HavingRaw(sql string, bindings ...interface{}) *Builder {
	b.query.Havings = append(b.query.Havings, HavingRaw{SQL: sql, Bindings: bindings, Boolean: And})
	return b
}

// OrHavingRaw, "or" bağlacıyla ham having koşulu ekler.
func (b *Builder) OrHavingRaw(sql string, bindings ...interface{}) *Builder {
	b.query.Havings = append(b.query.Havings, HavingRaw{SQL: sql, Bindings: bindings, Boolean: Or})
	return b
}

// OrderBy, sıralama ekler. Direction yalnızca asc veya desc olabilir;
// başka bir değer derleme sırasında hata üretir.
//
// Örnek:
//
//	qb.OrderBy("created_at", query.Desc)
func (b *Builder) OrderBy(column interface{}, direction Direction) *Builder {
	b.query.Orders = append(b.query.Orders, Order{Column: column, Direction: direction})
	return b
}

// OrderByDesc, azalan sıralama ekler.
func (b *Builder) OrderByDesc(column interface{}) *Builder {
	return b.OrderBy(column, Desc)
}

// Limit, döndürülecek satır sayısını sınırlar.
func (b *Builder) Limit(limit int) *Builder {
	b.query.Limit = &limit
	return b
}

// Offset, atlanacak satır sayısını belirler.
func (b *Builder) Offset(offset int) *Builder {
	b.query.Offset = &offset
	return b
}

// ForPage, sayfalama için limit ve offset'i birlikte ayarlar. Sayfalar 1'den başlar.
//
// Örnek:
//
//	qb.ForPage(3, 20) → limit 20 offset 40
func (b *Builder) ForPage(page, perPage int) *Builder {
	if page < 1 || perPage < 1 {
		return b.fail(errors.Wrapf(ErrInvalidQuery, "for page: page=%d perPage=%d", page, perPage))
	}
	return b.Offset((page - 1) * perPage).Limit(perPage)
}

// Union, "union" ile başka bir sorgu ekler.
func (b *Builder) Union(other *Builder) *Builder {
	return b.union(other, false)
}

// UnionAll, "union all" ile başka bir sorgu ekler.
func (b *Builder) UnionAll(other *Builder) *Builder {
	return b.union(other, true)
}

func (b *Builder) union(other *Builder, all bool) *Builder {
	q := b.sub(other, "union")
	if q == nil {
		return b
	}
	b.query.Unions = append(b.query.Unions, Union{Query: q, All: all})
	return b
}

// -----------------------------------------------------------------------------
// COMPILATION
// -----------------------------------------------------------------------------

// ToSQL, SELECT sorgusunu derler.
//
// Örnek:
//
//	sql, args, err := qb.Table("users").Where("id", "=", 1).ToSQL()
//	// sql: select * from "users" where "id" = ?
//	// args: [1]
func (b *Builder) ToSQL() (string, []interface{}, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	return b.grammar.CompileSelect(b.query)
}

// Bindings, ToSQL'in ürettiği binding listesini döndürür.
func (b *Builder) Bindings() ([]interface{}, error) {
	_, bindings, err := b.ToSQL()
	return bindings, err
}
