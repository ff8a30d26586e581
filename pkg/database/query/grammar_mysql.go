package query

// MySQLGrammar, MySQL/MariaDB lehçesidir. Identifier'lar backtick ile sarmalanır.
//
// Örnek:
//
//	g := query.NewMySQLGrammar()
//	g.Wrap("users.email") → `users`.`email`
type MySQLGrammar struct {
	BaseGrammar
}

// NewMySQLGrammar, yeni bir MySQL grammar'ı oluşturur.
func NewMySQLGrammar(opts ...GrammarOption) *MySQLGrammar {
	return &MySQLGrammar{BaseGrammar: newBaseGrammar("mysql", "`%s`", opts)}
}
