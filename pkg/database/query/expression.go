package query

// Expression, grammar'a "bu değeri olduğu gibi yaz" diyen ham SQL parçasıdır.
//
// Bir Expression asla parametreye (?) dönüştürülmez ve identifier olarak
// sarmalanmaz. İçeriğin güvenliği tamamen çağıranın sorumluluğundadır.
//
// Örnek:
//
//	qb.Select("id", query.Raw("count(*) as total"))
//	→ SQL: select "id", count(*) as total
type Expression struct {
	value string
}

// Raw, verilen SQL parçasını bir Expression olarak sarar.
func Raw(value string) Expression {
	return Expression{value: value}
}

// Value, sarılmış ham SQL'i döndürür.
func (e Expression) Value() string {
	return e.value
}

// String, fmt paketleri için Value ile aynı çıktıyı verir.
func (e Expression) String() string {
	return e.value
}
