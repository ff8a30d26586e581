package descriptor

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/biyonik/leaps-query/pkg/database/query"
)

// Statement, derlenmiş tek bir SQL cümlesidir.
type Statement struct {
	SQL      string        `json:"sql"`
	Bindings []interface{} `json:"bindings"`
}

// Result, Execute sonucudur. Statement türüne göre alanlardan biri dolar.
type Result struct {
	Rows     []map[string]interface{}
	ID       interface{}
	Affected *int64

	statement string
}

// MarshalJSON, sonucu statement türüne göre yazar: select için "rows"
// (boşsa []), insert_get_id için "id" (sıfır değer dahil), diğerleri için
// "affected".
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.statement {
	case Select:
		rows := r.Rows
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		return json.Marshal(map[string]interface{}{"rows": rows})
	case InsertGetID:
		return json.Marshal(map[string]interface{}{"id": r.ID})
	}
	var affected int64
	if r.Affected != nil {
		affected = *r.Affected
	}
	return json.Marshal(map[string]interface{}{"affected": affected})
}

// Apply, dokümanın descriptor kısmını (tablo, kolonlar, join'ler, koşullar,
// gruplama, sıralama, sayfalama, union'lar) verilen Builder'a uygular.
func (d *Document) Apply(b *query.Builder) (*query.Builder, error) {
	if t := d.Table.Interface(); t != nil {
		b.Table(t)
	}
	if len(d.Select) > 0 {
		b.Select(values(d.Select)...)
	}
	if d.Distinct {
		b.Distinct()
	}

	for _, spec := range d.Joins {
		join, err := spec.join()
		if err != nil {
			return nil, err
		}
		b.JoinWith(join)
	}

	for _, c := range d.Where {
		w, err := c.where(b)
		if err != nil {
			return nil, err
		}
		b.AddWhere(w)
	}

	if len(d.GroupBy) > 0 {
		b.GroupBy(values(d.GroupBy)...)
	}
	for _, c := range d.Having {
		if err := c.having(b); err != nil {
			return nil, err
		}
	}
	for _, o := range d.OrderBy {
		b.OrderBy(o.Column.Interface(), query.Direction(strings.ToLower(o.Direction)))
	}

	if d.Limit != nil {
		b.Limit(*d.Limit)
	}
	if d.Offset != nil {
		b.Offset(*d.Offset)
	}

	for i := range d.Unions {
		u := &d.Unions[i]
		sub, err := u.Query.Apply(b.NewQuery())
		if err != nil {
			return nil, err
		}
		if u.All {
			b.UnionAll(sub)
		} else {
			b.Union(sub)
		}
	}

	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Compile, dokümanı Builder'ın lehçesiyle derler. Truncate birden fazla
// cümle üretebilir; cümleler SQL metnine göre sıralı döner.
func (d *Document) Compile(b *query.Builder) ([]Statement, error) {
	b, err := d.Apply(b)
	if err != nil {
		return nil, err
	}
	g, q := b.Grammar(), b.Query()

	var (
		sql      string
		bindings []interface{}
	)
	switch d.statement() {
	case Select:
		sql, bindings, err = b.ToSQL()
	case Insert:
		rows, rerr := d.rows()
		if rerr != nil {
			return nil, rerr
		}
		sql, bindings, err = g.CompileInsert(q, rows...)
	case InsertGetID:
		row, rerr := d.singleRow()
		if rerr != nil {
			return nil, rerr
		}
		sql, bindings, err = g.CompileInsertGetID(q, row, d.Sequence)
	case Update:
		if d.Set.Row() == nil {
			return nil, errors.Wrap(ErrInvalidDocument, "update requires set")
		}
		sql, bindings, err = g.CompileUpdate(q, d.Set.Row())
	case Delete:
		sql, bindings, err = g.CompileDelete(q)
	case Truncate:
		sqls, terr := g.CompileTruncate(q)
		if terr != nil {
			return nil, terr
		}
		return sortedStatements(sqls), nil
	default:
		return nil, errors.Wrapf(ErrInvalidDocument, "unknown statement %q", d.Statement)
	}
	if err != nil {
		return nil, err
	}
	return []Statement{{SQL: sql, Bindings: bindings}}, nil
}

// Execute, dokümanı Builder'ın bağlantısı üzerinde çalıştırır.
func (d *Document) Execute(ctx context.Context, b *query.Builder) (*Result, error) {
	b, err := d.Apply(b)
	if err != nil {
		return nil, err
	}

	var affected int64
	switch d.statement() {
	case Select:
		rows, err := b.Get(ctx)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: rows, statement: Select}, nil
	case InsertGetID:
		row, err := d.singleRow()
		if err != nil {
			return nil, err
		}
		id, err := b.InsertGetID(ctx, row, d.Sequence)
		if err != nil {
			return nil, err
		}
		return &Result{ID: id, statement: InsertGetID}, nil
	case Insert:
		rows, rerr := d.rows()
		if rerr != nil {
			return nil, rerr
		}
		affected, err = b.Insert(ctx, rows...)
	case Update:
		if d.Set.Row() == nil {
			return nil, errors.Wrap(ErrInvalidDocument, "update requires set")
		}
		affected, err = b.Update(ctx, d.Set.Row())
	case Delete:
		affected, err = b.Delete(ctx)
	case Truncate:
		err = b.Truncate(ctx)
	default:
		return nil, errors.Wrapf(ErrInvalidDocument, "unknown statement %q", d.Statement)
	}
	if err != nil {
		return nil, err
	}
	return &Result{Affected: &affected, statement: d.statement()}, nil
}

func (d *Document) statement() string {
	if d.Statement == "" {
		return Select
	}
	return strings.ToLower(strings.TrimSpace(d.Statement))
}

func (d *Document) rows() ([]*query.Row, error) {
	if len(d.Values) == 0 {
		return nil, errors.Wrap(ErrInvalidDocument, "insert requires values")
	}
	rows := make([]*query.Row, len(d.Values))
	for i, r := range d.Values {
		rows[i] = r.Row()
	}
	return rows, nil
}

func (d *Document) singleRow() (*query.Row, error) {
	if len(d.Values) != 1 {
		return nil, errors.Wrapf(ErrInvalidDocument, "insert_get_id requires exactly one row, got %d", len(d.Values))
	}
	return d.Values[0].Row(), nil
}

func (s JoinSpec) join() (*query.Join, error) {
	joinType := query.JoinType(strings.ToLower(strings.TrimSpace(s.Type)))
	if joinType == "" {
		joinType = query.InnerJoin
	}
	j := query.NewJoin(joinType, s.Table.Interface())
	for _, on := range s.On {
		if on.Op == "" {
			return nil, errors.Wrap(ErrInvalidDocument, "join condition requires op")
		}
		switch {
		case on.Value != nil && on.Or:
			j.OrWhere(on.First.Interface(), on.Op, on.Value.Interface())
		case on.Value != nil:
			j.Where(on.First.Interface(), on.Op, on.Value.Interface())
		case on.Or:
			j.OrOn(on.First.Interface(), on.Op, on.Second.Interface())
		default:
			j.On(on.First.Interface(), on.Op, on.Second.Interface())
		}
	}
	return j, nil
}

func (c Condition) boolean() query.Boolean {
	if c.Or {
		return query.Or
	}
	return query.And
}

func (c Condition) kinds() []string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("raw", c.Raw != "")
	add("nested", c.Nested != nil)
	add("in", c.In != nil)
	add("not_in", c.NotIn != nil)
	add("between", c.Between != nil)
	add("not_between", c.NotBetween != nil)
	add("is_null", c.IsNull != nil)
	add("exists", c.Exists != nil)
	add("not_exists", c.NotExists != nil)
	add("in_sub", c.InSub != nil)
	add("not_in_sub", c.NotInSub != nil)
	add("sub", c.Sub != nil)
	return set
}

func (c Condition) where(b *query.Builder) (query.Where, error) {
	kinds := c.kinds()
	if len(kinds) > 1 {
		return nil, errors.Wrapf(ErrInvalidDocument, "condition mixes %s", strings.Join(kinds, ", "))
	}
	kind := ""
	if len(kinds) == 1 {
		kind = kinds[0]
	}

	column, boolean := c.Column.Interface(), c.boolean()
	switch kind {
	case "raw":
		return query.WhereRaw{SQL: c.Raw, Bindings: values(c.Bindings), Boolean: boolean}, nil
	case "nested":
		inner := b.NewQuery()
		for _, n := range c.Nested {
			w, err := n.where(inner)
			if err != nil {
				return nil, err
			}
			inner.AddWhere(w)
		}
		return query.WhereNested{Query: inner.Query(), Boolean: boolean}, nil
	case "exists", "not_exists":
		doc := c.Exists
		if kind == "not_exists" {
			doc = c.NotExists
		}
		sub, err := subQuery(b, doc)
		if err != nil {
			return nil, err
		}
		if kind == "exists" {
			return query.WhereExists{Query: sub, Boolean: boolean}, nil
		}
		return query.WhereNotExists{Query: sub, Boolean: boolean}, nil
	}

	if column == nil {
		return nil, errors.Wrap(ErrInvalidDocument, "condition requires column")
	}

	switch kind {
	case "in":
		return query.WhereIn{Column: column, Values: values(c.In), Boolean: boolean}, nil
	case "not_in":
		return query.WhereNotIn{Column: column, Values: values(c.NotIn), Boolean: boolean}, nil
	case "between", "not_between":
		bounds := c.Between
		if kind == "not_between" {
			bounds = c.NotBetween
		}
		if len(bounds) != 2 {
			return nil, errors.Wrapf(ErrInvalidDocument, "%s requires two values", kind)
		}
		return query.WhereBetween{
			Column:  column,
			Min:     bounds[0].Interface(),
			Max:     bounds[1].Interface(),
			Not:     kind == "not_between",
			Boolean: boolean,
		}, nil
	case "is_null":
		if *c.IsNull {
			return query.WhereNull{Column: column, Boolean: boolean}, nil
		}
		return query.WhereNotNull{Column: column, Boolean: boolean}, nil
	case "in_sub", "not_in_sub":
		doc := c.InSub
		if kind == "not_in_sub" {
			doc = c.NotInSub
		}
		sub, err := subQuery(b, doc)
		if err != nil {
			return nil, err
		}
		if kind == "in_sub" {
			return query.WhereInSub{Column: column, Query: sub, Boolean: boolean}, nil
		}
		return query.WhereNotInSub{Column: column, Query: sub, Boolean: boolean}, nil
	case "sub":
		sub, err := subQuery(b, c.Sub)
		if err != nil {
			return nil, err
		}
		return query.WhereSub{Column: column, Operator: c.Op, Query: sub, Boolean: boolean}, nil
	}

	if c.Op == "" {
		return nil, errors.Wrap(ErrInvalidDocument, "condition requires op")
	}
	return query.WhereBasic{Column: column, Operator: c.Op, Value: c.Value.Interface(), Boolean: boolean}, nil
}

func (c Condition) having(b *query.Builder) error {
	if kinds := c.kinds(); len(kinds) > 1 || (len(kinds) == 1 && kinds[0] != "raw") {
		return errors.Wrapf(ErrInvalidDocument, "having supports column/op/value or raw, got %s", strings.Join(kinds, ", "))
	}
	switch {
	case c.Raw != "" && c.Or:
		b.OrHavingRaw(c.Raw, values(c.Bindings)...)
	case c.Raw != "":
		b.HavingRaw(c.Raw, values(c.Bindings)...)
	case c.Column.Interface() == nil || c.Op == "":
		return errors.Wrap(ErrInvalidDocument, "having requires column and op")
	case c.Or:
		b.OrHaving(c.Column.Interface(), c.Op, c.Value.Interface())
	default:
		b.Having(c.Column.Interface(), c.Op, c.Value.Interface())
	}
	return nil
}

func subQuery(b *query.Builder, doc *Document) (*query.Query, error) {
	sub, err := doc.Apply(b.NewQuery())
	if err != nil {
		return nil, err
	}
	return sub.Query(), nil
}

func values(in []Value) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v.Interface()
	}
	return out
}

func sortedStatements(sqls map[string][]interface{}) []Statement {
	keys := make([]string, 0, len(sqls))
	for sql := range sqls {
		keys = append(keys, sql)
	}
	sort.Strings(keys)

	out := make([]Statement, len(keys))
	for i, sql := range keys {
		out[i] = Statement{SQL: sql, Bindings: sqls[sql]}
	}
	return out
}
