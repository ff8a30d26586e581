// -----------------------------------------------------------------------------
// Query Types - Descriptor'ın Yardımcı Tipleri
// -----------------------------------------------------------------------------
// Bu dosya; bağlaç (and/or), sıralama yönü, aggregate, union ve having gibi
// descriptor parçalarını tanımlar. Yön ve bağlaç enum-like tiplerdir,
// grammar yalnızca izin verilen değerleri SQL'e yazar.
// -----------------------------------------------------------------------------

package query

import "strings"

// Boolean, bir koşulun bir öncekine nasıl bağlandığını belirtir.
type Boolean string

const (
	And Boolean = "and"
	Or  Boolean = "or"
)

// normalize, bağlacı küçük harfe çevirir; boş bağlaç And kabul edilir.
func (b Boolean) normalize() (Boolean, bool) {
	switch Boolean(strings.ToLower(strings.TrimSpace(string(b)))) {
	case And, "":
		return And, true
	case Or:
		return Or, true
	}
	return b, false
}

// Direction, ORDER BY yönüdür. Sadece asc ve desc kabul edilir.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order, tek bir ORDER BY ifadesidir.
//
// Örnek:
//
//	Order{Column: "created_at", Direction: Desc}
//	→ SQL: order by "created_at" desc
type Order struct {
	Column    interface{} // string veya Expression
	Direction Direction
}

// Aggregate, "select fn(kolonlar) as aggregate" biçimindeki sorguları tanımlar.
type Aggregate struct {
	Function string
	Columns  []interface{}
}

// Union, ana sorguya eklenen bir UNION parçasıdır.
type Union struct {
	Query *Query
	All   bool
}

// UnionMode, birden fazla union'ın nasıl derleneceğini belirler.
type UnionMode int

const (
	// UnionAccumulate, tüm union'ları sırasıyla ekler.
	UnionAccumulate UnionMode = iota
	// UnionLastOnly, eski davranıştır: yalnızca son union derlenir.
	UnionLastOnly
)

// ParseUnionMode, konfigürasyondaki metni UnionMode'a çevirir.
func ParseUnionMode(value string) (UnionMode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "accumulate":
		return UnionAccumulate, true
	case "last", "last_only":
		return UnionLastOnly, true
	}
	return UnionAccumulate, false
}

// Having, HAVING koşullarının kapalı toplam tipidir (HavingBasic veya HavingRaw).
type Having interface {
	havingClause()
	connector() Boolean
}

// HavingBasic, "having kolon operatör ?" koşuludur.
type HavingBasic struct {
	Column   interface{}
	Operator string
	Value    interface{}
	Boolean  Boolean
}

// HavingRaw, olduğu gibi yazılan ham having koşuludur.
type HavingRaw struct {
	SQL      string
	Bindings []interface{}
	Boolean  Boolean
}

func (HavingBasic) havingClause() {}
func (HavingRaw) havingClause()   {}

func (h HavingBasic) connector() Boolean { return h.Boolean }
func (h HavingRaw) connector() Boolean   { return h.Boolean }
