package database

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/leaps-query/pkg/database/query"
)

func TestDriver_Rebind(t *testing.T) {
	var testCases = []struct {
		description string
		driver      string
		SQL         string
		expect      string
	}{
		{
			description: "postgres numbered placeholders",
			driver:      "postgres",
			SQL:         "select count(1) from foo where kind = ? and active = ? and year > ?",
			expect:      "select count(1) from foo where kind = $1 and active = $2 and year > $3",
		},
		{
			description: "sqlserver named placeholders",
			driver:      "sqlserver",
			SQL:         "update [users] set [name] = ? where [id] = ?",
			expect:      "update [users] set [name] = @p1 where [id] = @p2",
		},
		{
			description: "quoted question marks are kept",
			driver:      "postgres",
			SQL:         "select '?' as q, \"a?\" from t where id = ?",
			expect:      "select '?' as q, \"a?\" from t where id = $1",
		},
		{
			description: "mysql keeps question marks",
			driver:      "mysql",
			SQL:         "select * from `t` where a = ?",
			expect:      "select * from `t` where a = ?",
		},
		{
			description: "more than nine placeholders",
			driver:      "postgres",
			SQL:         "in (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			expect:      "in ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		},
	}

	for _, testCase := range testCases {
		d, err := LookupDriver(testCase.driver)
		require.NoError(t, err)
		assert.Equal(t, testCase.expect, d.Rebind(testCase.SQL), testCase.description)
	}
}

func TestLookupDriver(t *testing.T) {
	testCases := []struct {
		name    string
		driver  string
		dialect string
	}{
		{"mysql", "mysql", "mysql"},
		{"mariadb", "mysql", "mysql"},
		{"pgsql", "postgres", "postgres"},
		{"sqlite", "sqlite3", "sqlite"},
		{"MSSQL", "sqlserver", "sqlserver"},
	}
	for _, tc := range testCases {
		d, err := LookupDriver(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.driver, d.Name)
		assert.Equal(t, tc.dialect, d.Dialect)

		g, err := d.Grammar()
		require.NoError(t, err)
		assert.Equal(t, tc.dialect, g.Name())
	}

	_, err := LookupDriver("oracle")
	assert.True(t, errors.Is(err, ErrUnknownDriver))
	assert.Equal(t, []string{"mysql", "postgres", "sqlite3", "sqlserver"}, Drivers())
}

func TestDriver_ProcessorFromCapabilities(t *testing.T) {
	testCases := []struct {
		driver    string
		processor query.Processor
	}{
		{"mysql", query.DefaultProcessor{}},
		{"sqlite3", query.DefaultProcessor{}},
		{"postgres", query.PostgresProcessor{}},
		{"sqlserver", query.SQLServerProcessor{}},
	}
	for _, tc := range testCases {
		d, err := LookupDriver(tc.driver)
		require.NoError(t, err)
		assert.Equal(t, tc.processor, d.Processor(), tc.driver)
	}

	custom := Driver{Name: "custom", Dialect: "ansi", CanReturning: true}
	assert.Equal(t, query.PostgresProcessor{}, custom.Processor())
}
