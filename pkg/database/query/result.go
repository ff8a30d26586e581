package query

import (
	"database/sql"
)

// -----------------------------------------------------------------------------
// RESULT HELPERS
// -----------------------------------------------------------------------------
// rowsToMaps, *sql.Rows'u []map[string]interface{} biçimine dönüştürür.
// []byte değerler string'e kopyalanır.
// -----------------------------------------------------------------------------

func rowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := make([]map[string]interface{}, 0)

	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		m := make(map[string]interface{}, len(cols))
		for i, name := range cols {
			if b, ok := values[i].([]byte); ok {
				m[name] = string(b)
				continue
			}
			m[name] = values[i]
		}

		res = append(res, m)
	}

	return res, rows.Err()
}
