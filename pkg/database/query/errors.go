package query

import "github.com/pkg/errors"

// -----------------------------------------------------------------------------
// Query Errors
// -----------------------------------------------------------------------------
// Derleyicinin döndürdüğü tüm hatalar aşağıdaki sentinel değerlerden birini
// sarmalar. Çağıran taraf errors.Is ile hata sınıfını kontrol edebilir.
// Hata dönen hiçbir compile çağrısı kısmi SQL döndürmez.
// -----------------------------------------------------------------------------

var (
	// ErrInvalidQuery, descriptor'ın derlenemeyecek durumda olduğunu belirtir
	// (boş insert satırı, farklı kolonlara sahip satırlar, eksik tablo, vb.).
	ErrInvalidQuery = errors.New("invalid query descriptor")

	// ErrUnsupportedClause, grammar'ın tanımadığı bir where/having tipi geldiğinde döner.
	ErrUnsupportedClause = errors.New("unsupported clause kind")

	// ErrInvalidIdentifier, güvensiz karakter içeren tablo/kolon adlarında döner.
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")

	// ErrInvalidOperator, whitelist dışındaki operatörlerde döner.
	ErrInvalidOperator = errors.New("invalid SQL operator")

	// ErrNoConnection, connection verilmemiş bir Builder çalıştırılmak istendiğinde döner.
	ErrNoConnection = errors.New("query builder has no connection")

	// ErrUnknownDialect, NewGrammar'a bilinmeyen bir lehçe adı verildiğinde döner.
	ErrUnknownDialect = errors.New("unknown SQL dialect")
)

func invalidQuery(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidQuery, format, args...)
}
