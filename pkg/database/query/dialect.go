package query

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var grammarFactories = map[string]func(...GrammarOption) Grammar{
	"ansi":      func(o ...GrammarOption) Grammar { return NewBaseGrammar(o...) },
	"mysql":     func(o ...GrammarOption) Grammar { return NewMySQLGrammar(o...) },
	"postgres":  func(o ...GrammarOption) Grammar { return NewPostgresGrammar(o...) },
	"sqlite":    func(o ...GrammarOption) Grammar { return NewSQLiteGrammar(o...) },
	"sqlserver": func(o ...GrammarOption) Grammar { return NewSQLServerGrammar(o...) },
}

var dialectAliases = map[string]string{
	"mariadb":    "mysql",
	"pgsql":      "postgres",
	"postgresql": "postgres",
	"sqlite3":    "sqlite",
	"mssql":      "sqlserver",
}

// NewGrammar, lehçe adına (veya driver adına) göre Grammar oluşturur.
//
// Örnek:
//
//	g, err := query.NewGrammar("pgsql", query.WithTablePrefix("app_"))
func NewGrammar(name string, opts ...GrammarOption) (Grammar, error) {
	key := CanonicalDialect(name)
	factory, ok := grammarFactories[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%q", name)
	}
	return factory(opts...), nil
}

// CanonicalDialect, alias'ları ("pgsql", "sqlite3", "mssql") lehçe adına çevirir.
func CanonicalDialect(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := dialectAliases[key]; ok {
		return alias
	}
	return key
}

// Dialects, desteklenen lehçe adlarını alfabetik sırayla döndürür.
func Dialects() []string {
	names := make([]string, 0, len(grammarFactories))
	for name := range grammarFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
