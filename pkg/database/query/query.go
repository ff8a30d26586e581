// -----------------------------------------------------------------------------
// Query Descriptor
// -----------------------------------------------------------------------------
// Query, derlenmeyi bekleyen SELECT/INSERT/UPDATE/DELETE ifadesinin yapısal
// temsilidir. Builder bu yapıyı adım adım doldurur; Grammar'lar bu yapıyı
// yalnızca okur, asla değiştirmez. Aynı Query iki kez derlendiğinde aynı SQL
// ve aynı binding listesi elde edilir.
// -----------------------------------------------------------------------------

package query

// Query, bir SQL ifadesinin descriptor'ıdır.
//
// Alanlar:
//   - From: tablo adı (string) veya alt sorgu/ham ifade (Expression)
//   - Columns: nil ise derlemede "*" kullanılır
//   - Aggregate: doluysa kolonlar yok sayılır
//   - Limit/Offset: nil ise SQL'e eklenmez
type Query struct {
	From      interface{}
	Columns   []interface{}
	Distinct  bool
	Aggregate *Aggregate
	Joins     []*Join
	Wheres    []Where
	Groups    []interface{}
	Havings   []Having
	Orders    []Order
	Limit     *int
	Offset    *int
	Unions    []Union
}

// NewQuery, verilen tablo için boş bir descriptor oluşturur.
func NewQuery(table interface{}) *Query {
	return &Query{From: table}
}

// Clone, descriptor'ın bağımsız bir kopyasını döndürür. Slice'lar kopyalanır;
// alt sorgular paylaşılır çünkü grammar onları değiştirmez.
func (q *Query) Clone() *Query {
	if q == nil {
		return nil
	}
	c := *q
	if q.Columns != nil {
		c.Columns = append([]interface{}(nil), q.Columns...)
	}
	if q.Aggregate != nil {
		agg := *q.Aggregate
		agg.Columns = append([]interface{}(nil), q.Aggregate.Columns...)
		c.Aggregate = &agg
	}
	if q.Joins != nil {
		c.Joins = make([]*Join, len(q.Joins))
		for i, j := range q.Joins {
			c.Joins[i] = j.clone()
		}
	}
	c.Wheres = append([]Where(nil), q.Wheres...)
	c.Groups = append([]interface{}(nil), q.Groups...)
	c.Havings = append([]Having(nil), q.Havings...)
	c.Orders = append([]Order(nil), q.Orders...)
	c.Unions = append([]Union(nil), q.Unions...)
	if q.Limit != nil {
		limit := *q.Limit
		c.Limit = &limit
	}
	if q.Offset != nil {
		offset := *q.Offset
		c.Offset = &offset
	}
	return &c
}
