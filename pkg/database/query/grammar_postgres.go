package query

import "strings"

// PostgresGrammar, PostgreSQL lehçesidir. Üretilen anahtar "returning" ile geri okunur.
type PostgresGrammar struct {
	BaseGrammar
}

// NewPostgresGrammar, yeni bir PostgreSQL grammar'ı oluşturur.
func NewPostgresGrammar(opts ...GrammarOption) *PostgresGrammar {
	return &PostgresGrammar{BaseGrammar: newBaseGrammar("postgres", `"%s"`, opts)}
}

// CompileInsertGetID, insert'in sonuna `returning "<sequence>"` ekler.
// Sequence boşsa "id" kullanılır.
func (g *PostgresGrammar) CompileInsertGetID(q *Query, row *Row, sequence string) (string, []interface{}, error) {
	sql, bindings, err := g.CompileInsert(q, row)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(sequence) == "" {
		sequence = "id"
	}
	column, err := g.Wrap(sequence)
	if err != nil {
		return "", nil, err
	}
	return sql + " returning " + column, bindings, nil
}

// CompileTruncate, identity sayaçlarını da sıfırlar.
func (g *PostgresGrammar) CompileTruncate(q *Query) (map[string][]interface{}, error) {
	table, err := g.requireTable(q, "truncate")
	if err != nil {
		return nil, err
	}
	return map[string][]interface{}{"truncate " + table + " restart identity": {}}, nil
}
