package query

import "sort"

// -----------------------------------------------------------------------------
// Row - Sıralı Kolon/Değer Eşlemesi
// -----------------------------------------------------------------------------
// INSERT ve UPDATE derlenirken kolonların sırası placeholder sırasını, o da
// binding sırasını belirler. Go map'lerinin iterasyon sırası tanımsız olduğu
// için bu iki derleyici map yerine Row alır. Row, kolonları eklenme
// sırasında tutar.
// -----------------------------------------------------------------------------

// Row, eklenme sırasını koruyan kolon → değer eşlemesidir.
type Row struct {
	columns []string
	values  map[string]interface{}
}

// NewRow, boş bir Row oluşturur.
func NewRow() *Row {
	return &Row{values: make(map[string]interface{})}
}

// RowOf, sırasıyla verilen kolon/değer çiftlerinden bir Row oluşturur.
//
// Örnek:
//
//	query.RowOf("name", "John", "email", "john@example.com")
//
// Tek sayıda argüman verilirse son kolonun değeri nil olur.
func RowOf(pairs ...interface{}) *Row {
	row := NewRow()
	for i := 0; i < len(pairs); i += 2 {
		column, _ := pairs[i].(string)
		var value interface{}
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		row.Set(column, value)
	}
	return row
}

// RowFromMap, bir map'i kolon adlarına göre alfabetik sıralayarak Row'a çevirir.
// Sıralama, aynı map için her zaman aynı SQL'in üretilmesini sağlar.
func RowFromMap(data map[string]interface{}) *Row {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := NewRow()
	for _, k := range keys {
		row.Set(k, data[k])
	}
	return row
}

// Set, kolonu ekler. Kolon zaten varsa değeri güncellenir ve sırası korunur.
func (r *Row) Set(column string, value interface{}) *Row {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
	return r
}

// Get, kolonun değerini ve kolonun var olup olmadığını döndürür.
func (r *Row) Get(column string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[column]
	return v, ok
}

// Columns, kolon adlarını eklenme sırasıyla döndürür.
func (r *Row) Columns() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values, değerleri kolon sırasıyla döndürür.
func (r *Row) Values() []interface{} {
	if r == nil {
		return nil
	}
	out := make([]interface{}, len(r.columns))
	for i, c := range r.columns {
		out[i] = r.values[c]
	}
	return out
}

// Len, kolon sayısını döndürür.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.columns)
}
