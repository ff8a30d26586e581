package database

import (
	"sort"
	"strconv"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/biyonik/leaps-query/pkg/database/query"
)

// -----------------------------------------------------------------------------
// Drivers
// -----------------------------------------------------------------------------
// Driver, database/sql driver adını, karşılık gelen SQL lehçesini ve
// driver'ın yeteneklerini bir arada tutar. Yetenekler bağlantı kurulurken
// bir kez çözülür; insert-get-id için hangi Processor'ın kullanılacağı
// buradan belirlenir:
//   - CanLastInsertID: sql.Result.LastInsertId çalışır (mysql, sqlite3)
//   - CanReturning: "insert ... returning" desteklenir (postgres)
//   - ikisi de yoksa scope_identity() batch'i okunur (sqlserver)
// -----------------------------------------------------------------------------

// Driver, desteklenen bir veritabanı driver'ını tanımlar.
type Driver struct {
	Name            string
	Dialect         string
	CanLastInsertID bool
	CanReturning    bool

	// placeholder, n. (1'den başlar) parametrenin native yazımını döndürür.
	// nil ise "?" olduğu gibi bırakılır.
	placeholder func(n int) string
}

var drivers = map[string]Driver{
	"mysql": {
		Name:            "mysql",
		Dialect:         "mysql",
		CanLastInsertID: true,
	},
	"postgres": {
		Name:         "postgres",
		Dialect:      "postgres",
		CanReturning: true,
		placeholder:  func(n int) string { return "$" + strconv.Itoa(n) },
	},
	"sqlite3": {
		Name:            "sqlite3",
		Dialect:         "sqlite",
		CanLastInsertID: true,
	},
	"sqlserver": {
		Name:        "sqlserver",
		Dialect:     "sqlserver",
		placeholder: func(n int) string { return "@p" + strconv.Itoa(n) },
	},
}

var driverAliases = map[string]string{
	"mariadb":    "mysql",
	"pgsql":      "postgres",
	"postgresql": "postgres",
	"sqlite":     "sqlite3",
	"mssql":      "sqlserver",
}

// LookupDriver, adı veya alias'ı verilen driver'ı döndürür.
func LookupDriver(name string) (Driver, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := driverAliases[key]; ok {
		key = alias
	}
	d, ok := drivers[key]
	if !ok {
		return Driver{}, errors.Wrapf(ErrUnknownDriver, "%q", name)
	}
	return d, nil
}

// Drivers, desteklenen driver adlarını alfabetik sırayla döndürür.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rebind, derleyicinin ürettiği "?" placeholder'larını driver'ın native
// yazımına çevirir. Tırnak içindeki soru işaretlerine dokunulmaz.
//
// Örnek:
//
//	postgres: "select * from t where a = ? and b = ?" → "... a = $1 and b = $2"
//	sqlserver: "... a = ?" → "... a = @p1"
func (d Driver) Rebind(sql string) string {
	if d.placeholder == nil {
		return sql
	}
	positions := query.Placeholders(sql)
	if len(positions) == 0 {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql) + len(positions)*3)
	last := 0
	for i, pos := range positions {
		sb.WriteString(sql[last:pos])
		sb.WriteString(d.placeholder(i + 1))
		last = pos + 1
	}
	sb.WriteString(sql[last:])
	return sb.String()
}

// Processor, driver yeteneklerine göre insert-get-id processor'ını döndürür.
func (d Driver) Processor() query.Processor {
	switch {
	case d.CanLastInsertID:
		return query.DefaultProcessor{}
	case d.CanReturning:
		return query.PostgresProcessor{}
	default:
		return query.SQLServerProcessor{}
	}
}

// Grammar, driver'ın lehçesine ait grammar'ı oluşturur.
func (d Driver) Grammar(opts ...query.GrammarOption) (query.Grammar, error) {
	return query.NewGrammar(d.Dialect, opts...)
}
