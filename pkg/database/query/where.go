package query

// -----------------------------------------------------------------------------
// WHERE CLAUSES
// -----------------------------------------------------------------------------
// Where, kapalı bir toplam tiptir: yalnızca bu paketteki struct'lar
// uygulayabilir (unexported whereClause metodu). Grammar her tipi ayrı bir
// case ile derler; tanımadığı bir tip gelirse ErrUnsupportedClause döner.
//
// Her tip bir Boolean taşır: önceki koşula "and" mi "or" mu ile bağlandığı.
// İlk koşulun bağlacı derleme sırasında atılır.
//
// Kolon alanları string ("users.id", "email as e") veya Expression olabilir.
// Değer alanları bir Expression ise placeholder üretilmez, ham SQL yazılır.
// -----------------------------------------------------------------------------

// Where, bir WHERE koşulunu temsil eder.
type Where interface {
	whereClause()
	connector() Boolean
}

// WhereBasic → "kolon operatör ?"
type WhereBasic struct {
	Column   interface{}
	Operator string
	Value    interface{}
	Boolean  Boolean
}

// WhereBetween → "kolon between ? and ?" (Not ise "not between")
type WhereBetween struct {
	Column   interface{}
	Min, Max interface{}
	Not      bool
	Boolean  Boolean
}

// WhereIn → "kolon in (?, ?, ...)"
type WhereIn struct {
	Column  interface{}
	Values  []interface{}
	Boolean Boolean
}

// WhereNotIn → "kolon not in (?, ?, ...)"
type WhereNotIn struct {
	Column  interface{}
	Values  []interface{}
	Boolean Boolean
}

// WhereInSub → "kolon in (select ...)"
type WhereInSub struct {
	Column  interface{}
	Query   *Query
	Boolean Boolean
}

// WhereNotInSub → "kolon not in (select ...)"
type WhereNotInSub struct {
	Column  interface{}
	Query   *Query
	Boolean Boolean
}

// WhereNull → "kolon is null"
type WhereNull struct {
	Column  interface{}
	Boolean Boolean
}

// WhereNotNull → "kolon is not null"
type WhereNotNull struct {
	Column  interface{}
	Boolean Boolean
}

// WhereExists → "exists (select ...)"
type WhereExists struct {
	Query   *Query
	Boolean Boolean
}

// WhereNotExists → "not exists (select ...)"
type WhereNotExists struct {
	Query   *Query
	Boolean Boolean
}

// WhereNested → "(a = ? or b = ?)". Query'nin yalnızca where'leri kullanılır.
type WhereNested struct {
	Query   *Query
	Boolean Boolean
}

// WhereSub → "kolon operatör (select ...)"
type WhereSub struct {
	Column   interface{}
	Operator string
	Query    *Query
	Boolean  Boolean
}

// WhereRaw, SQL'i olduğu gibi yazar. Bindings, SQL içindeki ? sayısıyla
// aynı sırada verilmelidir.
type WhereRaw struct {
	SQL      string
	Bindings []interface{}
	Boolean  Boolean
}

func (WhereBasic) whereClause()     {}
func (WhereBetween) whereClause()   {}
func (WhereIn) whereClause()        {}
func (WhereNotIn) whereClause()     {}
func (WhereInSub) whereClause()     {}
func (WhereNotInSub) whereClause()  {}
func (WhereNull) whereClause()      {}
func (WhereNotNull) whereClause()   {}
func (WhereExists) whereClause()    {}
func (WhereNotExists) whereClause() {}
func (WhereNested) whereClause()    {}
func (WhereSub) whereClause()       {}
func (WhereRaw) whereClause()       {}

func (w WhereBasic) connector() Boolean     { return w.Boolean }
func (w WhereBetween) connector() Boolean   { return w.Boolean }
func (w WhereIn) connector() Boolean        { return w.Boolean }
func (w WhereNotIn) connector() Boolean     { return w.Boolean }
func (w WhereInSub) connector() Boolean     { return w.Boolean }
func (w WhereNotInSub) connector() Boolean  { return w.Boolean }
func (w WhereNull) connector() Boolean      { return w.Boolean }
func (w WhereNotNull) connector() Boolean   { return w.Boolean }
func (w WhereExists) connector() Boolean    { return w.Boolean }
func (w WhereNotExists) connector() Boolean { return w.Boolean }
func (w WhereNested) connector() Boolean    { return w.Boolean }
func (w WhereSub) connector() Boolean       { return w.Boolean }
func (w WhereRaw) connector() Boolean       { return w.Boolean }
