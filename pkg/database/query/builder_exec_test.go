package query

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Execution Tests (in-memory SQLite)
// -----------------------------------------------------------------------------

const usersSchema = `create table users (
	id integer primary key autoincrement,
	name text not null,
	email text,
	age integer,
	active integer not null default 1
)`

type testUser struct {
	ID     int64          `db:"id"`
	Name   string         `db:"name"`
	Email  sql.NullString `db:"email"`
	Age    int            `db:"age"`
	Active bool           `db:"active"`
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(usersSchema)
	require.NoError(t, err)
	return db
}

func seedUsers(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	qb := NewBuilder(NewSQLiteGrammar(), db, nil)
	n, err := qb.NewQuery().Table("users").Insert(context.Background(),
		RowOf("name", "Ada", "email", "ada@example.com", "age", 36, "active", true),
		RowOf("name", "Linus", "email", nil, "age", 28, "active", true),
		RowOf("name", "Grace", "email", "grace@example.com", "age", 45, "active", false),
	)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	return qb
}

func TestBuilderExec_GetAndScan(t *testing.T) {
	ctx := context.Background()
	qb := seedUsers(t, openTestDB(t))

	rows, err := qb.NewQuery().Table("users").
		Select("name", "age").
		Where("age", ">", 30).
		OrderBy("age", Asc).
		Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ada", rows[0]["name"])
	assert.Equal(t, int64(36), rows[0]["age"])
	assert.Equal(t, "Grace", rows[1]["name"])

	var users []testUser
	err = qb.NewQuery().Table("users").Where("active", "=", true).OrderBy("id", Asc).Scan(ctx, &users)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0].Name)
	assert.True(t, users[0].Email.Valid)
	assert.Equal(t, "Linus", users[1].Name)
	assert.False(t, users[1].Email.Valid)
	assert.True(t, users[1].Active)

	var pointers []*testUser
	err = qb.NewQuery().Table("users").WhereNull("email").Scan(ctx, &pointers)
	require.NoError(t, err)
	require.Len(t, pointers, 1)
	assert.Equal(t, 28, pointers[0].Age)
}

func TestBuilderExec_First(t *testing.T) {
	ctx := context.Background()
	qb := seedUsers(t, openTestDB(t))

	var user testUser
	require.NoError(t, qb.NewQuery().Table("users").Where("name", "=", "Grace").First(ctx, &user))
	assert.Equal(t, int64(3), user.ID)
	assert.False(t, user.Active)

	err := qb.NewQuery().Table("users").Where("name", "=", "Nobody").First(ctx, &user)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestBuilderExec_Aggregates(t *testing.T) {
	ctx := context.Background()
	qb := seedUsers(t, openTestDB(t))
	users := func() *Builder { return qb.NewQuery().Table("users") }

	count, err := users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = users().Where("active", "=", true).OrderBy("name", Asc).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	oldest, err := users().Max(ctx, "age")
	require.NoError(t, err)
	assert.Equal(t, int64(45), oldest)

	youngest, err := users().Min(ctx, "age")
	require.NoError(t, err)
	assert.Equal(t, int64(28), youngest)

	sum, err := users().Sum(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 109.0, sum, 0.001)

	avg, err := users().Where("age", "<", 40).Avg(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 32.0, avg, 0.001)

	empty, err := users().Where("age", ">", 100).Sum(ctx, "age")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty)

	exists, err := users().Where("name", "=", "Ada").Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users().Where("name", "=", "Nobody").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuilderExec_InsertGetID(t *testing.T) {
	ctx := context.Background()
	qb := seedUsers(t, openTestDB(t))

	id, err := qb.NewQuery().Table("users").InsertGetID(ctx, RowOf("name", "Barbara", "age", 50), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	_, err = qb.NewQuery().Table("users").InsertGetID(ctx, NewRow(), "id")
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestBuilderExec_UpdateDeleteTruncate(t *testing.T) {
	ctx := context.Background()
	qb := seedUsers(t, openTestDB(t))
	users := func() *Builder { return qb.NewQuery().Table("users") }

	n, err := users().Where("active", "=", false).Update(ctx, RowOf("active", true, "age", 46))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var grace testUser
	require.NoError(t, users().Where("name", "=", "Grace").First(ctx, &grace))
	assert.True(t, grace.Active)
	assert.Equal(t, 46, grace.Age)

	n, err = users().WhereIn("name", []interface{}{"Ada", "Linus"}).Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, users().Truncate(ctx))
	count, err := users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	id, err := users().InsertGetID(ctx, RowOf("name", "Fresh"), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestBuilderExec_DriverErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	qb := NewBuilder(NewSQLiteGrammar(), openTestDB(t), nil)

	_, err := qb.NewQuery().Table("missing").Get(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidQuery))

	_, err = qb.NewQuery().Table("users").Insert(ctx, RowOf("email", "no-name@example.com"))
	require.Error(t, err)
}

func TestBuilderExec_NoConnection(t *testing.T) {
	ctx := context.Background()
	qb := NewBuilder(NewSQLiteGrammar(), nil, nil).Table("users")

	_, err := qb.Get(ctx)
	assert.True(t, errors.Is(err, ErrNoConnection))
	_, err = qb.Count(ctx)
	assert.True(t, errors.Is(err, ErrNoConnection))
	_, err = qb.Insert(ctx, RowOf("name", "x"))
	assert.True(t, errors.Is(err, ErrNoConnection))
	_, err = qb.InsertGetID(ctx, RowOf("name", "x"), "")
	assert.True(t, errors.Is(err, ErrNoConnection))
	assert.True(t, errors.Is(qb.Truncate(ctx), ErrNoConnection))
}

func TestBuilderExec_InsideTransaction(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	qb := NewBuilder(NewSQLiteGrammar(), tx, nil)
	_, err = qb.Table("users").Insert(ctx, RowOf("name", "Temp"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	count, err := NewBuilder(NewSQLiteGrammar(), db, nil).Table("users").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
