package query

// -----------------------------------------------------------------------------
// JOIN OPERATIONS
// -----------------------------------------------------------------------------
// Join, tek bir JOIN ifadesini ve onun ON koşullarını tutan değer nesnesidir.
// On/OrOn kolon-kolon karşılaştırması ekler; Where/OrWhere sağ tarafı
// bağlanan (bound) bir değer olan koşul ekler. Join binding'leri SQL'de
// where binding'lerinden önce gelir.
// -----------------------------------------------------------------------------

// JoinType, JOIN tiplerini temsil eden enum-like yapıdır.
type JoinType string

const (
	InnerJoin JoinType = "inner"
	LeftJoin  JoinType = "left"
	RightJoin JoinType = "right"
	CrossJoin JoinType = "cross"
)

// JoinClause, bir ON koşuludur.
//
//   - First: ilk kolon (örn: "users.id")
//   - Operator: karşılaştırma operatörü (genellikle "=")
//   - Second: ikinci kolon; Bound true ise bağlanacak değer
//   - Connector: önceki koşula bağlaç ("and" veya "or")
type JoinClause struct {
	First     interface{}
	Operator  string
	Second    interface{}
	Connector Boolean
	Bound     bool
}

// Join, bir JOIN ifadesini temsil eder.
//
// Örnek:
//
//	query.NewJoin(query.LeftJoin, "posts").
//	    On("users.id", "=", "posts.user_id").
//	    OrOn("users.id", "=", "posts.editor_id")
//	→ SQL: left join "posts" on "users"."id" = "posts"."user_id" or "users"."id" = "posts"."editor_id"
type Join struct {
	Type    JoinType
	Table   interface{}
	Clauses []JoinClause
}

// NewJoin, verilen tip ve tablo için boş bir Join oluşturur.
func NewJoin(joinType JoinType, table interface{}) *Join {
	return &Join{Type: joinType, Table: table}
}

// On, join'e bir ON koşulu ekler. Connector verilmezse "and" kullanılır.
func (j *Join) On(first interface{}, operator string, second interface{}, connector ...Boolean) *Join {
	c := And
	if len(connector) > 0 {
		c = connector[0]
	}
	j.Clauses = append(j.Clauses, JoinClause{
		First:     first,
		Operator:  operator,
		Second:    second,
		Connector: c,
	})
	return j
}

// OrOn, "or" bağlacıyla ON koşulu ekler.
func (j *Join) OrOn(first interface{}, operator string, second interface{}) *Join {
	return j.On(first, operator, second, Or)
}

// Where, sağ tarafı prepared statement'a bağlanan bir ON koşulu ekler.
//
// Örnek:
//
//	join.Where("posts.status", "=", "published")
//	→ SQL: ... and "posts"."status" = ?
func (j *Join) Where(first interface{}, operator string, value interface{}) *Join {
	j.Clauses = append(j.Clauses, JoinClause{
		First:     first,
		Operator:  operator,
		Second:    value,
		Connector: And,
		Bound:     true,
	})
	return j
}

// OrWhere, "or" bağlacıyla değer bağlanan ON koşulu ekler.
func (j *Join) OrWhere(first interface{}, operator string, value interface{}) *Join {
	j.Clauses = append(j.Clauses, JoinClause{
		First:     first,
		Operator:  operator,
		Second:    value,
		Connector: Or,
		Bound:     true,
	})
	return j
}

func (j *Join) clone() *Join {
	if j == nil {
		return nil
	}
	c := *j
	c.Clauses = append([]JoinClause(nil), j.Clauses...)
	return &c
}
