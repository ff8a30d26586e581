package query

import "github.com/pkg/errors"

// -----------------------------------------------------------------------------
// WHERE METHODS
// -----------------------------------------------------------------------------
// Her metodun "Or" ile başlayan bir eşi vardır; tek fark bağlaçtır.
// Değerler prepared statement'a bağlanır. Expression değerler ham yazılır.
// -----------------------------------------------------------------------------

// AddWhere, hazır bir Where değerini olduğu gibi ekler. Yapısal sorgu
// dokümanları gibi koşulları önceden kuran çağıranlar içindir.
func (b *Builder) AddWhere(w Where) *Builder {
	b.query.Wheres = append(b.query.Wheres, w)
	return b
}

// Where, "kolon operatör ?" koşulu ekler.
//
// Örnek:
//
//	qb.Where("status", "=", "active")
//	qb.Where("age", ">", 18)
//	qb.Where("name", "like", "%john%")
//
// Operatör whitelist kontrolü Grammar katmanında yapılır.
func (b *Builder) Where(column interface{}, operator string, value interface{}) *Builder {
	return b.AddWhere(WhereBasic{Column: column, Operator: operator, Value: value, Boolean: And})
}

// OrWhere, "or" bağlacıyla koşul ekler.
//
// Örnek:
//
//	qb.Where("status", "=", "active").OrWhere("role", "=", "admin")
//	→ SQL: where "status" = ? or "role" = ?
func (b *Builder) OrWhere(column interface{}, operator string, value interface{}) *Builder {
	return b.AddWhere(WhereBasic{Column: column, Operator: operator, Value: value, Boolean: Or})
}

// WhereIn, kolonun verilen değerlerden biri olmasını şart koşar.
// Boş liste her zaman yanlış olan "0 = 1" koşulunu üretir.
//
// Örnek:
//
//	qb.WhereIn("status", []interface{}{"active", "pending"})
//	→ SQL: where "status" in (?, ?)
func (b *Builder) WhereIn(column interface{}, values []interface{}) *Builder {
	return b.AddWhere(WhereIn{Column: column, Values: values, Boolean: And})
}

// OrWhereIn, WhereIn'in "or" eşidir.
func (b *Builder) OrWhereIn(column interface{}, values []interface{}) *Builder {
	return b.AddWhere(WhereIn{Column: column, Values: values, Boolean: Or})
}

// WhereNotIn, kolonun verilen değerlerin hiçbiri olmamasını şart koşar.
// Boş liste her zaman doğru olan "1 = 1" koşulunu üretir.
func (b *Builder) WhereNotIn(column interface{}, values []interface{}) *Builder {
	return b.AddWhere(WhereNotIn{Column: column, Values: values, Boolean: And})
}

// OrWhereNotIn, WhereNotIn'in "or" eşidir.
func (b *Builder) OrWhereNotIn(column interface{}, values []interface{}) *Builder {
	return b.AddWhere(WhereNotIn{Column: column, Values: values, Boolean: Or})
}

// WhereInSub, "kolon in (select ...)" koşulu ekler.
//
// Örnek:
//
//	active := qb.NewQuery().Table("orders").Select("user_id").Where("paid", "=", true)
//	qb.Table("users").WhereInSub("id", active)
//	→ SQL: select * from "users" where "id" in (select "user_id" from "orders" where "paid" = ?)
func (b *Builder) WhereInSub(column interface{}, sub *Builder) *Builder {
	q := b.sub(sub, "where in")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereInSub{Column: column, Query: q, Boolean: And})
}

// WhereNotInSub, "kolon not in (select ...)" koşulu ekler.
func (b *Builder) WhereNotInSub(column interface{}, sub *Builder) *Builder {
	q := b.sub(sub, "where not in")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereNotInSub{Column: column, Query: q, Boolean: And})
}

// WhereBetween, "kolon between ? and ?" koşulu ekler.
//
// Örnek:
//
//	qb.WhereBetween("price", 100, 500)
func (b *Builder) WhereBetween(column interface{}, min, max interface{}) *Builder {
	return b.AddWhere(WhereBetween{Column: column, Min: min, Max: max, Boolean: And})
}

// OrWhereBetween, WhereBetween'in "or" eşidir.
func (b *Builder) OrWhereBetween(column interface{}, min, max interface{}) *Builder {
	return b.AddWhere(WhereBetween{Column: column, Min: min, Max: max, Boolean: Or})
}

// WhereNotBetween, "kolon not between ? and ?" koşulu ekler.
func (b *Builder) WhereNotBetween(column interface{}, min, max interface{}) *Builder {
	return b.AddWhere(WhereBetween{Column: column, Min: min, Max: max, Not: true, Boolean: And})
}

// WhereNull, "kolon is null" koşulu ekler.
//
// Kullanım Senaryosu:
// Soft delete pattern'inde aktif kayıtları bulmak için kullanılır.
func (b *Builder) WhereNull(column interface{}) *Builder {
	return b.AddWhere(WhereNull{Column: column, Boolean: And})
}

// OrWhereNull, WhereNull'un "or" eşidir.
func (b *Builder) OrWhereNull(column interface{}) *Builder {
	return b.AddWhere(WhereNull{Column: column, Boolean: Or})
}

// WhereNotNull, "kolon is not null" koşulu ekler.
func (b *Builder) WhereNotNull(column interface{}) *Builder {
	return b.AddWhere(WhereNotNull{Column: column, Boolean: And})
}

// OrWhereNotNull, WhereNotNull'un "or" eşidir.
func (b *Builder) OrWhereNotNull(column interface{}) *Builder {
	return b.AddWhere(WhereNotNull{Column: column, Boolean: Or})
}

// WhereExists, "exists (select ...)" koşulu ekler.
func (b *Builder) WhereExists(sub *Builder) *Builder {
	q := b.sub(sub, "where exists")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereExists{Query: q, Boolean: And})
}

// OrWhereExists, WhereExists'in "or" eşidir.
func (b *Builder) OrWhereExists(sub *Builder) *Builder {
	q := b.sub(sub, "or where exists")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereExists{Query: q, Boolean: Or})
}

// WhereNotExists, "not exists (select ...)" koşulu ekler.
func (b *Builder) WhereNotExists(sub *Builder) *Builder {
	q := b.sub(sub, "where not exists")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereNotExists{Query: q, Boolean: And})
}

// WhereNested, parantez içinde gruplanmış koşullar ekler. Callback'e verilen
// Builder'ın yalnızca where'leri kullanılır; grup boşsa hiçbir şey yazılmaz.
//
// Örnek:
//
//	qb.Where("active", "=", true).WhereNested(func(q *query.Builder) {
//	    q.Where("role", "=", "admin").OrWhere("role", "=", "editor")
//	})
//	→ SQL: where "active" = ? and ("role" = ? or "role" = ?)
func (b *Builder) WhereNested(fn func(*Builder)) *Builder {
	return b.nested(fn, And)
}

// OrWhereNested, WhereNested'in "or" eşidir.
func (b *Builder) OrWhereNested(fn func(*Builder)) *Builder {
	return b.nested(fn, Or)
}

func (b *Builder) nested(fn func(*Builder), boolean Boolean) *Builder {
	if fn == nil {
		return b.fail(errors.Wrap(ErrInvalidQuery, "where nested: nil callback"))
	}
	inner := b.NewQuery()
	inner.query.From = b.query.From
	fn(inner)
	if inner.err != nil {
		return b.fail(inner.err)
	}
	return b.AddWhere(WhereNested{Query: inner.query, Boolean: boolean})
}

// WhereSub, "kolon operatör (select ...)" koşulu ekler.
//
// Örnek:
//
//	latest := qb.NewQuery().Table("prices").Select(query.Raw("max(amount)"))
//	qb.Table("products").WhereSub("price", "=", latest)
func (b *Builder) WhereSub(column interface{}, operator string, sub *Builder) *Builder {
	q := b.sub(sub, "where sub")
	if q == nil {
		return b
	}
	return b.AddWhere(WhereSub{Column: column, Operator: operator, Query: q, Boolean: And})
}

// WhereRaw, ham SQL koşulu ekler. Binding sayısı SQL'deki "?" sayısıyla
// eşleşmelidir; aksi halde derleme hata verir.
//
// Örnek:
//
//	qb.WhereRaw("lower(email) = ?", "john@example.com")
func (b *Builder) WhereRaw(sql string, bindings ...interface{}) *Builder {
	return b.AddWhere(WhereRaw{SQL: sql, Bindings: bindings, Boolean: And})
}

// OrWhereRaw, WhereRaw'ın "or" eşidir.
func (b *Builder) OrWhereRaw(sql string, bindings ...interface{}) *Builder {
	return b.AddWhere(WhereRaw{SQL: sql, Bindings: bindings, Boolean: Or})
}
