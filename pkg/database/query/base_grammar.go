package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------------
// Base Grammar
// -----------------------------------------------------------------------------
// BaseGrammar, varsayılan (ANSI) lehçedir ve diğer lehçelerin gövdesidir.
// Lehçeler BaseGrammar'ı embed eder; wrapper formatını değiştirir, public
// Compile* metodlarını override eder veya dialect hook'larını (limit, offset,
// select prefix) kendi implementasyonlarıyla değiştirir.
// -----------------------------------------------------------------------------

var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_$]+$`)

var validFunctionPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var allowedOperators = map[string]bool{
	"=":                true,
	"<":                true,
	">":                true,
	"<=":               true,
	">=":               true,
	"<>":               true,
	"!=":               true,
	"<=>":              true,
	"like":             true,
	"not like":         true,
	"like binary":      true,
	"ilike":            true,
	"not ilike":        true,
	"rlike":            true,
	"regexp":           true,
	"not regexp":       true,
	"similar to":       true,
	"not similar to":   true,
	"&":                true,
	"|":                true,
	"^":                true,
	"<<":               true,
	">>":               true,
	"is":               true,
	"is not":           true,
	"is distinct from": true,
}

// dialect, lehçelerin değiştirebildiği derleme noktalarıdır.
type dialect interface {
	// columnsPrefix, "select [distinct]" ile kolon listesi arasına yazılır.
	columnsPrefix(q *Query) string
	compileLimit(q *Query, limit int) string
	compileOffset(q *Query, offset int) string
}

type defaultDialect struct{}

func (defaultDialect) columnsPrefix(*Query) string { return "" }

func (defaultDialect) compileLimit(_ *Query, limit int) string {
	return fmt.Sprintf("limit %d", limit)
}

func (defaultDialect) compileOffset(_ *Query, offset int) string {
	return fmt.Sprintf("offset %d", offset)
}

// BaseGrammar, ANSI lehçesidir. Identifier'lar çift tırnakla sarmalanır.
type BaseGrammar struct {
	name        string
	wrapper     string
	tablePrefix string
	unionMode   UnionMode
	dialect     dialect
}

// NewBaseGrammar, varsayılan ("%s" wrapper'lı) grammar'ı oluşturur.
func NewBaseGrammar(opts ...GrammarOption) *BaseGrammar {
	g := newBaseGrammar("ansi", `"%s"`, opts)
	return &g
}

func newBaseGrammar(name, wrapper string, opts []GrammarOption) BaseGrammar {
	g := BaseGrammar{name: name, wrapper: wrapper}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Name, lehçe adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// TablePrefix, tablo prefix'ini döndürür.
func (g *BaseGrammar) TablePrefix() string {
	return g.tablePrefix
}

func (g *BaseGrammar) hooks() dialect {
	if g.dialect != nil {
		return g.dialect
	}
	return defaultDialect{}
}

// -----------------------------------------------------------------------------
// IDENTIFIER WRAPPING
// -----------------------------------------------------------------------------

// Wrap, kolon ve tablo referanslarını lehçenin wrapper formatıyla sarmalar.
//
// Kurallar:
//   - Expression olduğu gibi yazılır
//   - "*" ve "tablo.*" içindeki yıldız sarmalanmaz
//   - "a.b" her parçası ayrı sarmalanır, ilk parçaya tablo prefix'i eklenir
//   - "kolon as takma" her iki taraf ayrı sarmalanır
//
// Wrap sorgu bağlamı görmez; derleme sırasında from ve join'lerde
// tanımlanan takma adlarla nitelenen kolonlara prefix eklenmez.
func (g *BaseGrammar) Wrap(value interface{}) (string, error) {
	return g.wrapIn(value, nil)
}

func (g *BaseGrammar) wrapIn(value interface{}, aliases map[string]bool) (string, error) {
	switch v := value.(type) {
	case Expression:
		return v.Value(), nil
	case string:
		return g.wrapString(v, aliases)
	}
	return "", errors.Wrapf(ErrInvalidIdentifier, "unsupported identifier type %T", value)
}

// WrapTable, tablo adını prefix ile birlikte sarmalar. Prefix yalnızca
// adın ilk parçasına bir kez eklenir, takma ada eklenmez.
func (g *BaseGrammar) WrapTable(table interface{}) (string, error) {
	switch t := table.(type) {
	case Expression:
		return t.Value(), nil
	case string:
		return g.wrapTableString(t)
	}
	return "", errors.Wrapf(ErrInvalidIdentifier, "unsupported table type %T", table)
}

func (g *BaseGrammar) wrapTableString(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", errors.Wrap(ErrInvalidIdentifier, "empty table name")
	}

	name, alias, hasAlias := splitAlias(table)
	wrapped, err := g.wrapSegments(strings.Split(name, "."), g.tablePrefix)
	if err != nil {
		return "", err
	}
	if hasAlias {
		a, err := g.wrapSegment(alias)
		if err != nil {
			return "", err
		}
		wrapped += " as " + a
	}
	return wrapped, nil
}

func (g *BaseGrammar) wrapString(value string, aliases map[string]bool) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.Wrap(ErrInvalidIdentifier, "empty identifier")
	}

	if left, alias, ok := splitAlias(value); ok {
		l, err := g.wrapString(left, aliases)
		if err != nil {
			return "", err
		}
		a, err := g.wrapSegment(alias)
		if err != nil {
			return "", err
		}
		return l + " as " + a, nil
	}

	segments := strings.Split(value, ".")
	prefix := ""
	if len(segments) > 1 && !aliases[segments[0]] {
		prefix = g.tablePrefix
	}
	return g.wrapSegments(segments, prefix)
}

// wrapSegments, noktalı adın parçalarını ayrı ayrı sarmalar; prefix ilk
// parçaya eklenir.
func (g *BaseGrammar) wrapSegments(segments []string, prefix string) (string, error) {
	wrapped := make([]string, len(segments))
	for i, segment := range segments {
		if segment == "*" && i == len(segments)-1 {
			wrapped[i] = segment
			continue
		}
		if i == 0 {
			segment = prefix + segment
		}
		w, err := g.wrapSegment(segment)
		if err != nil {
			return "", err
		}
		wrapped[i] = w
	}
	return strings.Join(wrapped, "."), nil
}

// splitAlias, "ad as takma" ifadesini ad ve takma ad olarak ayırır.
func splitAlias(value string) (string, string, bool) {
	i := strings.Index(strings.ToLower(value), " as ")
	if i < 0 {
		return value, "", false
	}
	return strings.TrimSpace(value[:i]), strings.TrimSpace(value[i+4:]), true
}

func (g *BaseGrammar) wrapSegment(segment string) (string, error) {
	if !validIdentifierPattern.MatchString(segment) {
		return "", errors.Wrapf(ErrInvalidIdentifier, "%q (contains unsafe characters)", segment)
	}
	return fmt.Sprintf(g.wrapper, segment), nil
}

// columnize, kolon listesini sarmalayıp virgülle birleştirir.
func (g *BaseGrammar) columnize(columns []interface{}, aliases map[string]bool) (string, error) {
	wrapped := make([]string, len(columns))
	for i, column := range columns {
		w, err := g.wrapIn(column, aliases)
		if err != nil {
			return "", err
		}
		wrapped[i] = w
	}
	return strings.Join(wrapped, ", "), nil
}

func validateOperator(operator string) (string, error) {
	op := strings.TrimSpace(operator)
	if !allowedOperators[strings.ToLower(op)] {
		return "", errors.Wrapf(ErrInvalidOperator, "%q (not in whitelist)", operator)
	}
	return op, nil
}

// -----------------------------------------------------------------------------
// PUBLIC COMPILE METHODS
// -----------------------------------------------------------------------------

// CompileSelect, descriptor'dan SELECT sorgusu üretir.
func (g *BaseGrammar) CompileSelect(q *Query) (string, []interface{}, error) {
	c := g.begin()
	sql, err := c.compileSelect(q)
	if err != nil {
		return "", nil, err
	}
	return sql, c.bindings, nil
}

// CompileInsert, INSERT sorgusu üretir. Kolon listesi ilk satırdan alınır;
// her satır aynı sırada bir "(?, ?, ...)" grubu üretir.
func (g *BaseGrammar) CompileInsert(q *Query, rows ...*Row) (string, []interface{}, error) {
	c := g.begin()
	sql, err := c.compileInsert(q, rows)
	if err != nil {
		return "", nil, err
	}
	return sql, c.bindings, nil
}

// CompileInsertGetID, varsayılan olarak CompileInsert ile aynıdır. Anahtarın
// geri okunması Processor'ın işidir.
func (g *BaseGrammar) CompileInsertGetID(q *Query, row *Row, _ string) (string, []interface{}, error) {
	return g.CompileInsert(q, row)
}

// CompileUpdate, UPDATE sorgusu üretir. Her değer kolon sırasıyla bir binding olur.
func (g *BaseGrammar) CompileUpdate(q *Query, values *Row) (string, []interface{}, error) {
	c := g.begin()
	sql, err := c.compileUpdate(q, values)
	if err != nil {
		return "", nil, err
	}
	return sql, c.bindings, nil
}

// CompileDelete, DELETE sorgusu üretir.
func (g *BaseGrammar) CompileDelete(q *Query) (string, []interface{}, error) {
	c := g.begin()
	sql, err := c.compileDelete(q)
	if err != nil {
		return "", nil, err
	}
	return sql, c.bindings, nil
}

// CompileTruncate, "truncate <tablo>" cümlesini binding'siz döndürür.
func (g *BaseGrammar) CompileTruncate(q *Query) (map[string][]interface{}, error) {
	table, err := g.requireTable(q, "truncate")
	if err != nil {
		return nil, err
	}
	return map[string][]interface{}{"truncate " + table: {}}, nil
}

func (g *BaseGrammar) requireTable(q *Query, op string) (string, error) {
	if q == nil {
		return "", invalidQuery("%s: nil query", op)
	}
	if q.From == nil || q.From == "" {
		return "", invalidQuery("%s requires a table", op)
	}
	return g.WrapTable(q.From)
}

// tableName, prefix'li fakat sarmalanmamış tablo adını döndürür.
func (g *BaseGrammar) tableName(q *Query) string {
	switch t := q.From.(type) {
	case Expression:
		return t.Value()
	case string:
		return g.tablePrefix + strings.TrimSpace(t)
	}
	return ""
}
