package query

// Placeholders, SQL içindeki "?" placeholder'larının byte pozisyonlarını döndürür.
// Tek tırnak, çift tırnak ve backtick içindeki soru işaretleri sayılmaz.
// Tırnak içinde art arda gelen iki tırnak kaçışlı tırnaktır, literal'in parçasıdır.
func Placeholders(sql string) []int {
	var positions []int
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if quote != 0 {
			if ch == quote {
				if i+1 < len(sql) && sql[i+1] == quote {
					i++
					continue
				}
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '?':
			positions = append(positions, i)
		}
	}
	return positions
}
