// -----------------------------------------------------------------------------
// Grammar Compiler Tests
// -----------------------------------------------------------------------------
// Bu testler, BaseGrammar'ın descriptor'ları doğru SQL ve binding sırasına
// derlediğini doğrular. Tüm testler saftır; veritabanı gerektirmez.
// -----------------------------------------------------------------------------

package query

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusWhere struct{}

func (bogusWhere) whereClause()       {}
func (bogusWhere) connector() Boolean { return And }

type bogusHaving struct{}

func (bogusHaving) havingClause()      {}
func (bogusHaving) connector() Boolean { return And }

func intPtr(v int) *int { return &v }

// TestCompileSelect_EmptyDescriptor tests that an empty descriptor selects everything.
func TestCompileSelect_EmptyDescriptor(t *testing.T) {
	g := NewBaseGrammar()

	sql, bindings, err := g.CompileSelect(&Query{})
	require.NoError(t, err)
	assert.Equal(t, "select *", sql)
	assert.Empty(t, bindings)

	sql, bindings, err = g.CompileSelect(NewQuery("users"))
	require.NoError(t, err)
	assert.Equal(t, `select * from "users"`, sql)
	assert.Empty(t, bindings)
}

// TestCompileSelect_DoesNotMutateDescriptor tests that compiling leaves Columns unset.
func TestCompileSelect_DoesNotMutateDescriptor(t *testing.T) {
	q := NewQuery("users")
	_, _, err := NewBaseGrammar().CompileSelect(q)
	require.NoError(t, err)
	assert.Nil(t, q.Columns)
}

func TestCompileSelect_NilQuery(t *testing.T) {
	_, _, err := NewBaseGrammar().CompileSelect(nil)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestCompileSelect_ColumnsAndDistinct(t *testing.T) {
	g := NewBaseGrammar()
	q := NewQuery("users")
	q.Columns = []interface{}{"id", "users.email as e", Raw("count(*) as total")}

	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select "id", "users"."email" as "e", count(*) as total from "users"`, sql)

	q = NewQuery("users")
	q.Columns = []interface{}{"email"}
	q.Distinct = true
	sql, _, err = g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select distinct "email" from "users"`, sql)
}

func TestCompileSelect_Aggregate(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Columns = []interface{}{"id", "name"}
	q.Aggregate = &Aggregate{Function: "count"}
	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select count(*) as aggregate from "users"`, sql)

	q = NewQuery("users")
	q.Distinct = true
	q.Aggregate = &Aggregate{Function: "count", Columns: []interface{}{"email"}}
	sql, _, err = g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select count(distinct "email") as aggregate from "users"`, sql)

	q = NewQuery("users")
	q.Aggregate = &Aggregate{Function: "count(*); drop table users"}
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestCompileWheres_StripsLeadingBoolean(t *testing.T) {
	g := NewBaseGrammar()
	testCases := []struct {
		name     string
		wheres   []Where
		expected string
		bindings []interface{}
	}{
		{
			name:     "single and",
			wheres:   []Where{WhereBasic{Column: "id", Operator: "=", Value: 1, Boolean: And}},
			expected: `select * from "users" where "id" = ?`,
			bindings: []interface{}{1},
		},
		{
			name:     "leading or is stripped",
			wheres:   []Where{WhereBasic{Column: "id", Operator: "=", Value: 1, Boolean: Or}},
			expected: `select * from "users" where "id" = ?`,
			bindings: []interface{}{1},
		},
		{
			name: "and then or",
			wheres: []Where{
				WhereBasic{Column: "status", Operator: "=", Value: "active"},
				WhereBasic{Column: "role", Operator: "=", Value: "admin", Boolean: Or},
			},
			expected: `select * from "users" where "status" = ? or "role" = ?`,
			bindings: []interface{}{"active", "admin"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuery("users")
			q.Wheres = tc.wheres
			sql, bindings, err := g.CompileSelect(q)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sql)
			assert.Equal(t, tc.bindings, bindings)
		})
	}
}

func TestCompileWheres_Variants(t *testing.T) {
	g := NewBaseGrammar()

	orders := NewQuery("orders")
	orders.Columns = []interface{}{"user_id"}
	orders.Wheres = []Where{WhereBasic{Column: "paid", Operator: "=", Value: true}}

	correlated := NewQuery("orders")
	correlated.Columns = []interface{}{Raw("1")}
	correlated.Wheres = []Where{WhereBasic{Column: "orders.user_id", Operator: "=", Value: Raw(`"users"."id"`)}}

	prices := NewQuery("prices")
	prices.Columns = []interface{}{Raw("max(amount)")}

	testCases := []struct {
		name     string
		where    Where
		expected string
		bindings []interface{}
	}{
		{"between", WhereBetween{Column: "age", Min: 18, Max: 65}, `"age" between ? and ?`, []interface{}{18, 65}},
		{"not between", WhereBetween{Column: "age", Min: 18, Max: 65, Not: true}, `"age" not between ? and ?`, []interface{}{18, 65}},
		{"in", WhereIn{Column: "status", Values: []interface{}{"a", "b"}}, `"status" in (?, ?)`, []interface{}{"a", "b"}},
		{"empty in", WhereIn{Column: "status"}, `0 = 1`, []interface{}{}},
		{"not in", WhereNotIn{Column: "status", Values: []interface{}{"x"}}, `"status" not in (?)`, []interface{}{"x"}},
		{"empty not in", WhereNotIn{Column: "status"}, `1 = 1`, []interface{}{}},
		{"in sub", WhereInSub{Column: "id", Query: orders}, `"id" in (select "user_id" from "orders" where "paid" = ?)`, []interface{}{true}},
		{"not in sub", WhereNotInSub{Column: "id", Query: orders}, `"id" not in (select "user_id" from "orders" where "paid" = ?)`, []interface{}{true}},
		{"null", WhereNull{Column: "deleted_at"}, `"deleted_at" is null`, []interface{}{}},
		{"not null", WhereNotNull{Column: "verified_at"}, `"verified_at" is not null`, []interface{}{}},
		{"exists", WhereExists{Query: correlated}, `exists (select 1 from "orders" where "orders"."user_id" = "users"."id")`, []interface{}{}},
		{"not exists", WhereNotExists{Query: correlated}, `not exists (select 1 from "orders" where "orders"."user_id" = "users"."id")`, []interface{}{}},
		{"sub", WhereSub{Column: "price", Operator: "=", Query: prices}, `"price" = (select max(amount) from "prices")`, []interface{}{}},
		{"raw", WhereRaw{SQL: "lower(email) = ?", Bindings: []interface{}{"a@b.c"}}, `lower(email) = ?`, []interface{}{"a@b.c"}},
		{"raw with quoted question mark", WhereRaw{SQL: "note = '?' and id = ?", Bindings: []interface{}{7}}, `note = '?' and id = ?`, []interface{}{7}},
		{"expression value", WhereBasic{Column: "updated_at", Operator: ">", Value: Raw("created_at")}, `"updated_at" > created_at`, []interface{}{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuery("users")
			q.Wheres = []Where{tc.where}
			sql, bindings, err := g.CompileSelect(q)
			require.NoError(t, err)
			assert.Equal(t, `select * from "users" where `+tc.expected, sql)
			assert.Equal(t, tc.bindings, bindings)
		})
	}
}

func TestCompileWheres_Nested(t *testing.T) {
	g := NewBaseGrammar()

	group := &Query{Wheres: []Where{
		WhereBasic{Column: "role", Operator: "=", Value: "admin"},
		WhereBasic{Column: "role", Operator: "=", Value: "editor", Boolean: Or},
	}}
	q := NewQuery("users")
	q.Wheres = []Where{
		WhereBasic{Column: "active", Operator: "=", Value: true},
		WhereNested{Query: group},
		WhereBasic{Column: "age", Operator: ">", Value: 18},
	}

	sql, bindings, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" where "active" = ? and ("role" = ? or "role" = ?) and "age" > ?`, sql)
	assert.Equal(t, []interface{}{true, "admin", "editor", 18}, bindings)
}

func TestCompileWheres_EmptyNestedGroupIsSkipped(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Wheres = []Where{
		WhereBasic{Column: "active", Operator: "=", Value: true},
		WhereNested{Query: &Query{}, Boolean: Or},
	}
	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" where "active" = ?`, sql)

	q = NewQuery("users")
	q.Wheres = []Where{WhereNested{Query: &Query{}}}
	sql, _, err = g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users"`, sql)
}

func TestCompileWheres_Errors(t *testing.T) {
	g := NewBaseGrammar()
	testCases := []struct {
		name  string
		where Where
		is    error
	}{
		{"unknown variant", bogusWhere{}, ErrUnsupportedClause},
		{"pointer variant", &WhereBasic{Column: "id", Operator: "=", Value: 1}, ErrUnsupportedClause},
		{"bad operator", WhereBasic{Column: "id", Operator: "= 1 or 1 =", Value: 1}, ErrInvalidOperator},
		{"bad column", WhereBasic{Column: "id; drop table users", Operator: "=", Value: 1}, ErrInvalidIdentifier},
		{"bad boolean", WhereBasic{Column: "id", Operator: "=", Value: 1, Boolean: "xor"}, ErrInvalidQuery},
		{"raw binding mismatch", WhereRaw{SQL: "a = ? and b = ?", Bindings: []interface{}{1}}, ErrInvalidQuery},
		{"nil sub-query", WhereExists{}, ErrInvalidQuery},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuery("users")
			q.Wheres = []Where{tc.where}
			sql, bindings, err := g.CompileSelect(q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.is), "got %v", err)
			assert.Empty(t, sql)
			assert.Nil(t, bindings)
		})
	}
}

func TestCompileJoins(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Joins = []*Join{
		NewJoin(InnerJoin, "posts").
			On("users.id", "=", "posts.user_id").
			Where("posts.status", "=", "published"),
		NewJoin(LeftJoin, "comments").
			OrOn("posts.id", "=", "comments.post_id"),
	}
	q.Wheres = []Where{WhereBasic{Column: "users.active", Operator: "=", Value: true}}

	sql, bindings, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" `+
		`inner join "posts" on "users"."id" = "posts"."user_id" and "posts"."status" = ? `+
		`left join "comments" on "posts"."id" = "comments"."post_id" `+
		`where "users"."active" = ?`, sql)
	assert.Equal(t, []interface{}{"published", true}, bindings)
}

func TestCompileJoins_CrossAndEmpty(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Joins = []*Join{NewJoin(CrossJoin, "roles")}
	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" cross join "roles"`, sql)

	q = NewQuery("users")
	q.Joins = []*Join{NewJoin(InnerJoin, "roles")}
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	q = NewQuery("users")
	q.Joins = []*Join{{Type: "sideways", Table: "roles"}}
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestCompileGroupsAndHavings(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("orders")
	q.Columns = []interface{}{"user_id", Raw("sum(total) as total")}
	q.Groups = []interface{}{"user_id"}
	q.Havings = []Having{
		HavingBasic{Column: "total", Operator: ">", Value: 100, Boolean: And},
		HavingRaw{SQL: "count(*) > ?", Bindings: []interface{}{2}, Boolean: Or},
	}

	sql, bindings, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select "user_id", sum(total) as total from "orders" group by "user_id" having "total" > ? or count(*) > ?`, sql)
	assert.Equal(t, []interface{}{100, 2}, bindings)
}

// TestCompileHavings_LeadingOrIsPreserved, where'lerden farklı olarak
// having listesinde yalnızca baştaki "and" atıldığını doğrular.
func TestCompileHavings_LeadingOrIsPreserved(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("orders")
	q.Groups = []interface{}{"user_id"}
	q.Havings = []Having{HavingBasic{Column: "total", Operator: ">", Value: 10, Boolean: Or}}

	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "orders" group by "user_id" having or "total" > ?`, sql)

	q.Havings = []Having{HavingRaw{SQL: "sum(total) > 10", Boolean: Or}}
	sql, _, err = g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "orders" group by "user_id" having or sum(total) > 10`, sql)

	q.Havings = []Having{bogusHaving{}}
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrUnsupportedClause))
}

func TestCompileOrdersLimitOffset(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Orders = []Order{{Column: "created_at", Direction: Desc}, {Column: "id"}}
	q.Limit = intPtr(10)
	q.Offset = intPtr(20)

	sql, bindings, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" order by "created_at" desc, "id" asc limit 10 offset 20`, sql)
	assert.Empty(t, bindings)

	q.Orders = []Order{{Column: "id", Direction: "sideways"}}
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	q.Orders = nil
	q.Limit = intPtr(-1)
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	q.Limit = nil
	q.Offset = intPtr(-5)
	_, _, err = g.CompileSelect(q)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func unionFixture() *Query {
	byID := func(table string, id int) *Query {
		q := NewQuery(table)
		q.Wheres = []Where{WhereBasic{Column: "id", Operator: "=", Value: id}}
		return q
	}
	q := byID("users", 1)
	q.Unions = []Union{
		{Query: byID("admins", 2)},
		{Query: byID("guests", 3), All: true},
	}
	return q
}

func TestCompileUnions_Accumulate(t *testing.T) {
	sql, bindings, err := NewBaseGrammar().CompileSelect(unionFixture())
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" where "id" = ? `+
		`union select * from "admins" where "id" = ? `+
		`union all select * from "guests" where "id" = ?`, sql)
	assert.Equal(t, []interface{}{1, 2, 3}, bindings)
}

func TestCompileUnions_LastOnly(t *testing.T) {
	g := NewBaseGrammar(WithUnionMode(UnionLastOnly))

	sql, bindings, err := g.CompileSelect(unionFixture())
	require.NoError(t, err)
	assert.Equal(t, `select * from "users" where "id" = ? union all select * from "guests" where "id" = ?`, sql)
	assert.Equal(t, []interface{}{1, 3}, bindings)
}

func TestCompileInsert_SingleRow(t *testing.T) {
	sql, bindings, err := NewBaseGrammar().CompileInsert(NewQuery("users"), RowOf("name", "John", "email", "john@example.com"))
	require.NoError(t, err)
	assert.Equal(t, `insert into "users" ("name", "email") values (?, ?)`, sql)
	assert.Equal(t, []interface{}{"John", "john@example.com"}, bindings)
}

func TestCompileInsert_BatchUsesFirstRowColumnOrder(t *testing.T) {
	sql, bindings, err := NewBaseGrammar().CompileInsert(NewQuery("users"),
		RowOf("name", "John", "email", "john@example.com"),
		RowOf("email", "jane@example.com", "name", "Jane"),
	)
	require.NoError(t, err)
	assert.Equal(t, `insert into "users" ("name", "email") values (?, ?), (?, ?)`, sql)
	assert.Equal(t, []interface{}{"John", "john@example.com", "Jane", "jane@example.com"}, bindings)
}

func TestCompileInsert_Errors(t *testing.T) {
	g := NewBaseGrammar()
	testCases := []struct {
		name  string
		query *Query
		rows  []*Row
	}{
		{"no rows", NewQuery("users"), nil},
		{"empty row", NewQuery("users"), []*Row{NewRow()}},
		{"fewer columns", NewQuery("users"), []*Row{RowOf("name", "a", "email", "b"), RowOf("name", "c")}},
		{"different columns", NewQuery("users"), []*Row{RowOf("name", "a", "email", "b"), RowOf("name", "c", "phone", "d")}},
		{"missing table", &Query{}, []*Row{RowOf("name", "a")}},
		{"nil query", nil, []*Row{RowOf("name", "a")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql, bindings, err := g.CompileInsert(tc.query, tc.rows...)
			assert.True(t, errors.Is(err, ErrInvalidQuery), "got %v", err)
			assert.Empty(t, sql)
			assert.Nil(t, bindings)
		})
	}
}

func TestCompileInsert_RowFromMapIsSorted(t *testing.T) {
	row := RowFromMap(map[string]interface{}{"name": "John", "age": 30, "email": "j@x.io"})

	sql, bindings, err := NewBaseGrammar().CompileInsert(NewQuery("users"), row)
	require.NoError(t, err)
	assert.Equal(t, `insert into "users" ("age", "email", "name") values (?, ?, ?)`, sql)
	assert.Equal(t, []interface{}{30, "j@x.io", "John"}, bindings)
}

func TestCompileUpdate(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	q.Wheres = []Where{WhereBasic{Column: "id", Operator: "=", Value: 1}}
	sql, bindings, err := g.CompileUpdate(q, RowOf("name", "John", "active", false))
	require.NoError(t, err)
	assert.Equal(t, `update "users" set "name" = ?, "active" = ? where "id" = ?`, sql)
	assert.Equal(t, []interface{}{"John", false, 1}, bindings)

	q = NewQuery("users")
	q.Joins = []*Join{NewJoin(InnerJoin, "roles").On("users.role_id", "=", "roles.id")}
	q.Wheres = []Where{WhereBasic{Column: "roles.name", Operator: "=", Value: "admin"}}
	sql, bindings, err = g.CompileUpdate(q, RowOf("users.active", true))
	require.NoError(t, err)
	assert.Equal(t, `update "users" inner join "roles" on "users"."role_id" = "roles"."id" set "users"."active" = ? where "roles"."name" = ?`, sql)
	assert.Equal(t, []interface{}{true, "admin"}, bindings)

	_, _, err = g.CompileUpdate(NewQuery("users"), NewRow())
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestCompileDeleteAndTruncate(t *testing.T) {
	g := NewBaseGrammar()

	q := NewQuery("users")
	sql, bindings, err := g.CompileDelete(q)
	require.NoError(t, err)
	assert.Equal(t, `delete from "users"`, sql)
	assert.Empty(t, bindings)

	q.Wheres = []Where{WhereBasic{Column: "id", Operator: "=", Value: 5}}
	sql, bindings, err = g.CompileDelete(q)
	require.NoError(t, err)
	assert.Equal(t, `delete from "users" where "id" = ?`, sql)
	assert.Equal(t, []interface{}{5}, bindings)

	statements, err := g.CompileTruncate(q)
	require.NoError(t, err)
	assert.Equal(t, map[string][]interface{}{`truncate "users"`: {}}, statements)

	_, err = g.CompileTruncate(&Query{})
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestWrap(t *testing.T) {
	g := NewBaseGrammar()
	testCases := []struct {
		in       interface{}
		expected string
	}{
		{"*", `*`},
		{"users.*", `"users".*`},
		{"users.id", `"users"."id"`},
		{"public.users.id", `"public"."users"."id"`},
		{"email as e", `"email" as "e"`},
		{"users.email AS e", `"users"."email" as "e"`},
		{Raw("count(*)"), `count(*)`},
	}
	for _, tc := range testCases {
		got, err := g.Wrap(tc.in)
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.expected, got)
	}

	for _, bad := range []interface{}{42, "", "a..b", "id--", "na me", `id"`} {
		_, err := g.Wrap(bad)
		assert.True(t, errors.Is(err, ErrInvalidIdentifier), "%v", bad)
	}
}

func TestTablePrefix(t *testing.T) {
	g := NewBaseGrammar(WithTablePrefix("app_"))

	q := NewQuery("users")
	q.Wheres = []Where{WhereBasic{Column: "users.id", Operator: "=", Value: 1}}
	sql, _, err := g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "app_users" where "app_users"."id" = ?`, sql)

	sql, _, err = g.CompileSelect(NewQuery("users as u"))
	require.NoError(t, err)
	assert.Equal(t, `select * from "app_users" as "u"`, sql)
	assert.Equal(t, "app_", g.TablePrefix())
}

func TestTablePrefix_SkipsDeclaredAliases(t *testing.T) {
	g := NewBaseGrammar(WithTablePrefix("app_"))

	sql, bindings, err := NewBuilder(g, nil, nil).
		Table("users as u").
		Select("u.id", "p.title").
		Join("posts as p", "u.id", "=", "p.user_id").
		Where("u.active", "=", true).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `select "u"."id", "p"."title" from "app_users" as "u" `+
		`inner join "app_posts" as "p" on "u"."id" = "p"."user_id" where "u"."active" = ?`, sql)
	assert.Equal(t, []interface{}{true}, bindings)

	// Alt sorgu dış sorgunun takma adını görür; kendi tablosu prefix alır.
	sub := NewQuery("orders")
	sub.Columns = []interface{}{Raw("1")}
	sub.Wheres = []Where{WhereBasic{Column: "orders.user_id", Operator: "=", Value: Raw(`"u"."id"`)}}
	q := NewQuery("users as u")
	q.Wheres = []Where{WhereExists{Query: sub}}
	sql, _, err = g.CompileSelect(q)
	require.NoError(t, err)
	assert.Equal(t, `select * from "app_users" as "u" where exists (select 1 from "app_orders" where "app_orders"."user_id" = "u"."id")`, sql)

	del := NewQuery("users as u")
	del.Wheres = []Where{WhereBasic{Column: "u.id", Operator: "=", Value: 1}}
	sql, _, err = g.CompileDelete(del)
	require.NoError(t, err)
	assert.Equal(t, `delete from "app_users" as "u" where "u"."id" = ?`, sql)

	sql, _, err = g.CompileSelect(NewQuery("main.users"))
	require.NoError(t, err)
	assert.Equal(t, `select * from "app_main"."users"`, sql)

	// Wrap bağlam görmez.
	wrapped, err := g.Wrap("u.id")
	require.NoError(t, err)
	assert.Equal(t, `"app_u"."id"`, wrapped)
}

func complexQuery() *Query {
	sub := NewQuery("orders")
	sub.Columns = []interface{}{"user_id"}
	sub.Wheres = []Where{WhereBasic{Column: "total", Operator: ">", Value: 50}}

	q := NewQuery("users")
	q.Columns = []interface{}{"users.id", "users.name"}
	q.Joins = []*Join{NewJoin(LeftJoin, "profiles").On("users.id", "=", "profiles.user_id").Where("profiles.public", "=", true)}
	q.Wheres = []Where{
		WhereIn{Column: "users.status", Values: []interface{}{"active", "trial"}},
		WhereInSub{Column: "users.id", Query: sub, Boolean: Or},
		WhereBetween{Column: "users.age", Min: 18, Max: 99},
		WhereRaw{SQL: "users.score > ?", Bindings: []interface{}{10}},
	}
	q.Groups = []interface{}{"users.id", "users.name"}
	q.Havings = []Having{HavingBasic{Column: "users.id", Operator: ">", Value: 0}}
	q.Orders = []Order{{Column: "users.name", Direction: Asc}}
	q.Limit = intPtr(5)
	return q
}

// TestCompile_PlaceholderCountMatchesBindings tests that the Nth "?" is the Nth binding.
func TestCompile_PlaceholderCountMatchesBindings(t *testing.T) {
	sql, bindings, err := NewBaseGrammar().CompileSelect(complexQuery())
	require.NoError(t, err)
	assert.Equal(t, strings.Count(sql, "?"), len(bindings))
	assert.Equal(t, []interface{}{true, "active", "trial", 50, 18, 99, 10, 0}, bindings)
}

func TestCompile_IsDeterministic(t *testing.T) {
	g := NewBaseGrammar()
	q := complexQuery()

	sql1, bindings1, err := g.CompileSelect(q)
	require.NoError(t, err)
	sql2, bindings2, err := g.CompileSelect(q)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, bindings1, bindings2)
}
