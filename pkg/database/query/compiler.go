package query

import (
	"strings"

	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------------
// Compilation
// -----------------------------------------------------------------------------
// compilation, tek bir Compile* çağrısının durumudur: hangi grammar ile
// derlendiği ve o ana kadar yazılan placeholder'ların binding'leri.
// Fragment'ler SQL'deki sırayla derlenir; alt sorgular aynı compilation
// üzerinden derlendiği için binding'leri de yerinde eklenir.
//
// SELECT bileşen sırası sabittir:
// aggregate, columns, from, joins, wheres, groups, havings, orders,
// limit, offset, unions
// -----------------------------------------------------------------------------

type compilation struct {
	g        *BaseGrammar
	bindings []interface{}
	aliases  map[string]bool
}

func (g *BaseGrammar) begin() *compilation {
	return &compilation{g: g, bindings: make([]interface{}, 0), aliases: make(map[string]bool)}
}

// declare, from ve join'lerde tanımlanan takma adları kaydeder. Alt
// sorgular dış sorgunun takma adlarını görür.
func (c *compilation) declare(q *Query) {
	tables := make([]interface{}, 0, len(q.Joins)+1)
	tables = append(tables, q.From)
	for _, join := range q.Joins {
		if join != nil {
			tables = append(tables, join.Table)
		}
	}
	for _, table := range tables {
		if name, ok := table.(string); ok {
			if _, alias, ok := splitAlias(strings.TrimSpace(name)); ok {
				c.aliases[alias] = true
			}
		}
	}
}

func (c *compilation) wrap(value interface{}) (string, error) {
	return c.g.wrapIn(value, c.aliases)
}

func (c *compilation) columnize(columns []interface{}) (string, error) {
	return c.g.columnize(columns, c.aliases)
}

// parameter, değer için bir placeholder yazar ve binding'i ekler.
// Expression değerleri olduğu gibi yazılır.
func (c *compilation) parameter(value interface{}) string {
	if e, ok := value.(Expression); ok {
		return e.Value()
	}
	c.bindings = append(c.bindings, value)
	return "?"
}

func (c *compilation) parameterize(values []interface{}) string {
	params := make([]string, len(values))
	for i, v := range values {
		params[i] = c.parameter(v)
	}
	return strings.Join(params, ", ")
}

// raw, ham SQL'i yazar ve binding sayısının placeholder sayısıyla eşleştiğini doğrular.
func (c *compilation) raw(sql string, bindings []interface{}) (string, error) {
	if n := len(Placeholders(sql)); n != len(bindings) {
		return "", invalidQuery("raw clause %q has %d placeholders but %d bindings", sql, n, len(bindings))
	}
	c.bindings = append(c.bindings, bindings...)
	return sql, nil
}

func (c *compilation) compileSelect(q *Query) (string, error) {
	if q == nil {
		return "", invalidQuery("select: nil query")
	}
	c.declare(q)

	components := []func(*Query) (string, error){
		c.compileAggregate,
		c.compileColumns,
		c.compileFrom,
		c.compileJoins,
		c.compileWheres,
		c.compileGroups,
		c.compileHavings,
		c.compileOrders,
		c.compileLimit,
		c.compileOffset,
		c.compileUnions,
	}

	segments := make([]string, 0, len(components))
	for _, compile := range components {
		segment, err := compile(q)
		if err != nil {
			return "", err
		}
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return strings.TrimSpace(strings.Join(segments, " ")), nil
}

func (c *compilation) compileAggregate(q *Query) (string, error) {
	if q.Aggregate == nil {
		return "", nil
	}
	fn := strings.TrimSpace(q.Aggregate.Function)
	if !validFunctionPattern.MatchString(fn) {
		return "", invalidQuery("invalid aggregate function %q", q.Aggregate.Function)
	}

	columns := q.Aggregate.Columns
	if len(columns) == 0 {
		columns = []interface{}{"*"}
	}
	column, err := c.columnize(columns)
	if err != nil {
		return "", err
	}
	if q.Distinct && column != "*" {
		column = "distinct " + column
	}
	return "select " + fn + "(" + column + ") as aggregate", nil
}

func (c *compilation) compileColumns(q *Query) (string, error) {
	if q.Aggregate != nil {
		return "", nil
	}

	columns := q.Columns
	if columns == nil {
		columns = []interface{}{"*"}
	}
	list, err := c.columnize(columns)
	if err != nil {
		return "", err
	}

	sel := "select "
	if q.Distinct {
		sel = "select distinct "
	}
	return sel + c.g.hooks().columnsPrefix(q) + list, nil
}

func (c *compilation) compileFrom(q *Query) (string, error) {
	if q.From == nil || q.From == "" {
		return "", nil
	}
	table, err := c.g.WrapTable(q.From)
	if err != nil {
		return "", err
	}
	return "from " + table, nil
}

func (c *compilation) compileJoins(q *Query) (string, error) {
	sql := make([]string, 0, len(q.Joins))
	for _, join := range q.Joins {
		if join == nil {
			return "", invalidQuery("nil join")
		}
		joinType := JoinType(strings.ToLower(strings.TrimSpace(string(join.Type))))
		switch joinType {
		case InnerJoin, LeftJoin, RightJoin, CrossJoin, "full", "left outer", "right outer", "full outer":
		default:
			return "", invalidQuery("unknown join type %q", join.Type)
		}

		table, err := c.g.WrapTable(join.Table)
		if err != nil {
			return "", err
		}

		if len(join.Clauses) == 0 {
			if joinType != CrossJoin {
				return "", invalidQuery("%s join on %s has no clauses", joinType, table)
			}
			sql = append(sql, string(joinType)+" join "+table)
			continue
		}

		clauses := make([]string, len(join.Clauses))
		for i, clause := range join.Clauses {
			compiled, err := c.compileJoinConstraint(clause)
			if err != nil {
				return "", err
			}
			clauses[i] = compiled
		}
		clauses[0] = removeLeadingBoolean(clauses[0])

		sql = append(sql, string(joinType)+" join "+table+" on "+strings.Join(clauses, " "))
	}
	return strings.Join(sql, " "), nil
}

func (c *compilation) compileJoinConstraint(clause JoinClause) (string, error) {
	connector, ok := clause.Connector.normalize()
	if !ok {
		return "", invalidQuery("invalid join connector %q", clause.Connector)
	}
	first, err := c.wrap(clause.First)
	if err != nil {
		return "", err
	}
	operator, err := validateOperator(clause.Operator)
	if err != nil {
		return "", err
	}

	var second string
	if clause.Bound {
		second = c.parameter(clause.Second)
	} else if second, err = c.wrap(clause.Second); err != nil {
		return "", err
	}
	return string(connector) + " " + first + " " + operator + " " + second, nil
}

// compileWheres, where listesini "where ..." olarak derler. Liste boşsa
// bileşen tamamen atlanır.
func (c *compilation) compileWheres(q *Query) (string, error) {
	sql, err := c.compileWhereList(q.Wheres)
	if err != nil || sql == "" {
		return "", err
	}
	return "where " + sql, nil
}

func (c *compilation) compileWhereList(wheres []Where) (string, error) {
	sql := make([]string, 0, len(wheres))
	for _, where := range wheres {
		if where == nil {
			return "", errors.Wrap(ErrUnsupportedClause, "nil where clause")
		}
		boolean, ok := where.connector().normalize()
		if !ok {
			return "", invalidQuery("invalid where boolean %q", where.connector())
		}
		compiled, err := c.compileWhere(where)
		if err != nil {
			return "", err
		}
		if compiled == "" {
			continue
		}
		sql = append(sql, string(boolean)+" "+compiled)
	}
	return removeLeadingBoolean(strings.Join(sql, " ")), nil
}

func (c *compilation) compileWhere(where Where) (string, error) {
	switch w := where.(type) {
	case WhereBasic:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		operator, err := validateOperator(w.Operator)
		if err != nil {
			return "", err
		}
		return column + " " + operator + " " + c.parameter(w.Value), nil

	case WhereBetween:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		keyword := " between "
		if w.Not {
			keyword = " not between "
		}
		return column + keyword + c.parameter(w.Min) + " and " + c.parameter(w.Max), nil

	case WhereIn:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		if len(w.Values) == 0 {
			return "0 = 1", nil
		}
		return column + " in (" + c.parameterize(w.Values) + ")", nil

	case WhereNotIn:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		if len(w.Values) == 0 {
			return "1 = 1", nil
		}
		return column + " not in (" + c.parameterize(w.Values) + ")", nil

	case WhereInSub:
		return c.compileColumnSub(w.Column, "in", w.Query)

	case WhereNotInSub:
		return c.compileColumnSub(w.Column, "not in", w.Query)

	case WhereNull:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		return column + " is null", nil

	case WhereNotNull:
		column, err := c.wrap(w.Column)
		if err != nil {
			return "", err
		}
		return column + " is not null", nil

	case WhereExists:
		sub, err := c.compileSub(w.Query)
		if err != nil {
			return "", err
		}
		return "exists (" + sub + ")", nil

	case WhereNotExists:
		sub, err := c.compileSub(w.Query)
		if err != nil {
			return "", err
		}
		return "not exists (" + sub + ")", nil

	case WhereNested:
		if w.Query == nil {
			return "", invalidQuery("nested where without query")
		}
		nested, err := c.compileWhereList(w.Query.Wheres)
		if err != nil || nested == "" {
			return "", err
		}
		return "(" + nested + ")", nil

	case WhereSub:
		operator, err := validateOperator(w.Operator)
		if err != nil {
			return "", err
		}
		return c.compileColumnSub(w.Column, operator, w.Query)

	case WhereRaw:
		return c.raw(w.SQL, w.Bindings)
	}
	return "", errors.Wrapf(ErrUnsupportedClause, "where clause %T", where)
}

func (c *compilation) compileColumnSub(col interface{}, operator string, sub *Query) (string, error) {
	column, err := c.wrap(col)
	if err != nil {
		return "", err
	}
	compiled, err := c.compileSub(sub)
	if err != nil {
		return "", err
	}
	return column + " " + operator + " (" + compiled + ")", nil
}

func (c *compilation) compileSub(sub *Query) (string, error) {
	if sub == nil {
		return "", invalidQuery("sub-select without query")
	}
	return c.compileSelect(sub)
}

func (c *compilation) compileGroups(q *Query) (string, error) {
	if len(q.Groups) == 0 {
		return "", nil
	}
	groups, err := c.columnize(q.Groups)
	if err != nil {
		return "", err
	}
	return "group by " + groups, nil
}

// compileHavings, having listesini derler. Where'lerden farklı olarak
// yalnızca baştaki "and " atılır; "or" ile başlayan ilk koşul olduğu gibi kalır.
func (c *compilation) compileHavings(q *Query) (string, error) {
	if len(q.Havings) == 0 {
		return "", nil
	}
	sql := make([]string, len(q.Havings))
	for i, having := range q.Havings {
		compiled, err := c.compileHaving(having)
		if err != nil {
			return "", err
		}
		sql[i] = compiled
	}
	return "having " + strings.TrimPrefix(strings.Join(sql, " "), "and "), nil
}

func (c *compilation) compileHaving(having Having) (string, error) {
	if having == nil {
		return "", errors.Wrap(ErrUnsupportedClause, "nil having clause")
	}
	boolean, ok := having.connector().normalize()
	if !ok {
		return "", invalidQuery("invalid having boolean %q", having.connector())
	}

	switch h := having.(type) {
	case HavingRaw:
		sql, err := c.raw(h.SQL, h.Bindings)
		if err != nil {
			return "", err
		}
		return string(boolean) + " " + sql, nil

	case HavingBasic:
		column, err := c.wrap(h.Column)
		if err != nil {
			return "", err
		}
		operator, err := validateOperator(h.Operator)
		if err != nil {
			return "", err
		}
		return string(boolean) + " " + column + " " + operator + " " + c.parameter(h.Value), nil
	}
	return "", errors.Wrapf(ErrUnsupportedClause, "having clause %T", having)
}

func (c *compilation) compileOrders(q *Query) (string, error) {
	if len(q.Orders) == 0 {
		return "", nil
	}
	orders := make([]string, len(q.Orders))
	for i, order := range q.Orders {
		column, err := c.wrap(order.Column)
		if err != nil {
			return "", err
		}
		direction := Direction(strings.ToLower(strings.TrimSpace(string(order.Direction))))
		switch direction {
		case "":
			direction = Asc
		case Asc, Desc:
		default:
			return "", invalidQuery("invalid order direction %q", order.Direction)
		}
		orders[i] = column + " " + string(direction)
	}
	return "order by " + strings.Join(orders, ", "), nil
}

func (c *compilation) compileLimit(q *Query) (string, error) {
	if q.Limit == nil {
		return "", nil
	}
	if *q.Limit < 0 {
		return "", invalidQuery("negative limit %d", *q.Limit)
	}
	return c.g.hooks().compileLimit(q, *q.Limit), nil
}

func (c *compilation) compileOffset(q *Query) (string, error) {
	if q.Offset == nil {
		return "", nil
	}
	if *q.Offset < 0 {
		return "", invalidQuery("negative offset %d", *q.Offset)
	}
	return c.g.hooks().compileOffset(q, *q.Offset), nil
}

// compileUnions, union'ları derler. UnionLastOnly modunda yalnızca son union
// derlenir, öncekilerin binding'leri de eklenmez.
func (c *compilation) compileUnions(q *Query) (string, error) {
	unions := q.Unions
	if len(unions) == 0 {
		return "", nil
	}
	if c.g.unionMode == UnionLastOnly {
		unions = unions[len(unions)-1:]
	}

	sql := make([]string, len(unions))
	for i, union := range unions {
		compiled, err := c.compileSub(union.Query)
		if err != nil {
			return "", err
		}
		joiner := "union "
		if union.All {
			joiner = "union all "
		}
		sql[i] = joiner + compiled
	}
	return strings.Join(sql, " "), nil
}

func (c *compilation) compileInsert(q *Query, rows []*Row) (string, error) {
	table, err := c.g.requireTable(q, "insert")
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0].Len() == 0 {
		return "", invalidQuery("insert into %s requires at least one non-empty row", table)
	}

	columns := rows[0].Columns()
	names := make([]interface{}, len(columns))
	for i, col := range columns {
		names[i] = col
	}
	columnList, err := c.columnize(names)
	if err != nil {
		return "", err
	}

	groups := make([]string, len(rows))
	for i, row := range rows {
		if row.Len() != len(columns) {
			return "", invalidQuery("insert row %d has %d columns, expected %d", i, row.Len(), len(columns))
		}
		values := make([]interface{}, len(columns))
		for j, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				return "", invalidQuery("insert row %d is missing column %q", i, col)
			}
			values[j] = v
		}
		groups[i] = "(" + c.parameterize(values) + ")"
	}

	return "insert into " + table + " (" + columnList + ") values " + strings.Join(groups, ", "), nil
}

func (c *compilation) compileUpdate(q *Query, values *Row) (string, error) {
	table, err := c.g.requireTable(q, "update")
	if err != nil {
		return "", err
	}
	c.declare(q)
	if values.Len() == 0 {
		return "", invalidQuery("update %s requires at least one column", table)
	}

	joins, err := c.compileJoins(q)
	if err != nil {
		return "", err
	}

	columns := values.Columns()
	sets := make([]string, len(columns))
	for i, col := range columns {
		wrapped, err := c.wrap(col)
		if err != nil {
			return "", err
		}
		v, _ := values.Get(col)
		sets[i] = wrapped + " = " + c.parameter(v)
	}

	where, err := c.compileWheres(q)
	if err != nil {
		return "", err
	}

	sql := "update " + table
	if joins != "" {
		sql += " " + joins
	}
	sql += " set " + strings.Join(sets, ", ")
	if where != "" {
		sql += " " + where
	}
	return sql, nil
}

func (c *compilation) compileDelete(q *Query) (string, error) {
	table, err := c.g.requireTable(q, "delete")
	if err != nil {
		return "", err
	}
	c.declare(q)
	where, err := c.compileWheres(q)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace("delete from " + table + " " + where), nil
}

// removeLeadingBoolean, yalnızca ilk bağlacı ("and " veya "or ") atar.
func removeLeadingBoolean(value string) string {
	if strings.HasPrefix(value, "and ") {
		return value[len("and "):]
	}
	return strings.TrimPrefix(value, "or ")
}
