package query

import (
	"database/sql"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------------
// Reflection-Based Row Scanner
// -----------------------------------------------------------------------------
// Scanner, sonuç satırlarını `db` tag'lerine göre struct'lara tarar.
// Her struct tipi için kolon → alan eşlemesi bir kez çıkarılır ve
// cache'lenir. Tag yoksa alan adının küçük harfli hali kullanılır,
// `db:"-"` alanı atlar. Embedded struct'lar özyineli işlenir.
//
// Scanner global değildir; Builder'lar kendi Scanner'larını paylaşır.
// Eşzamanlı kullanım güvenlidir.
// -----------------------------------------------------------------------------

type fieldMap map[string][]int

// Scanner, struct alan eşlemelerini cache'leyen tarayıcıdır.
type Scanner struct {
	mu    sync.RWMutex
	cache map[reflect.Type]fieldMap
}

// NewScanner, boş cache'li bir Scanner oluşturur.
func NewScanner() *Scanner {
	return &Scanner{cache: make(map[reflect.Type]fieldMap)}
}

func (s *Scanner) fields(structType reflect.Type) fieldMap {
	s.mu.RLock()
	mapping, ok := s.cache[structType]
	s.mu.RUnlock()
	if ok {
		return mapping
	}

	mapping = buildFieldMap(structType, nil)

	s.mu.Lock()
	s.cache[structType] = mapping
	s.mu.Unlock()
	return mapping
}

func buildFieldMap(structType reflect.Type, parent []int) fieldMap {
	mapping := make(fieldMap)
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		index := append(append([]int(nil), parent...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			for col, idx := range buildFieldMap(field.Type, index) {
				if _, exists := mapping[col]; !exists {
					mapping[col] = idx
				}
			}
			continue
		}
		if field.PkgPath != "" {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			tag = name
		} else {
			tag = strings.ToLower(field.Name)
		}
		mapping[tag] = index
	}
	return mapping
}

// ScanStruct, rows'un mevcut satırını dest struct pointer'ına tarar.
// Eşlemesi olmayan kolonlar atlanır.
func (s *Scanner) ScanStruct(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return errors.Errorf("scanner: dest must be a pointer to struct, got %T", dest)
	}

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	return s.scanInto(rows, cols, destValue.Elem())
}

func (s *Scanner) scanInto(rows *sql.Rows, cols []string, destElem reflect.Value) error {
	mapping := s.fields(destElem.Type())

	scanArgs := make([]interface{}, len(cols))
	for i, col := range cols {
		index, ok := mapping[col]
		if !ok {
			scanArgs[i] = new(sql.RawBytes)
			continue
		}
		field, err := destElem.FieldByIndexErr(index)
		if err != nil || !field.CanSet() {
			return errors.Errorf("scanner: field for column %q is not settable", col)
		}
		scanArgs[i] = field.Addr().Interface()
	}
	return rows.Scan(scanArgs...)
}

// ScanSlice, tüm sonuç kümesini dest slice pointer'ına tarar. Eleman tipi
// struct veya struct pointer olabilir.
func (s *Scanner) ScanSlice(rows *sql.Rows, dest interface{}) error {
	sliceValue := reflect.ValueOf(dest)
	if sliceValue.Kind() != reflect.Ptr || sliceValue.Elem().Kind() != reflect.Slice {
		return errors.Errorf("scanner: dest must be a pointer to slice, got %T", dest)
	}

	sliceElem := sliceValue.Elem()
	elemType := sliceElem.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	structType := elemType
	if isPtr {
		structType = elemType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return errors.Errorf("scanner: slice element must be a struct, got %s", elemType)
	}

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		item := reflect.New(structType)
		if err := s.scanInto(rows, cols, item.Elem()); err != nil {
			return err
		}
		if isPtr {
			sliceElem.Set(reflect.Append(sliceElem, item))
		} else {
			sliceElem.Set(reflect.Append(sliceElem, item.Elem()))
		}
	}
	return rows.Err()
}
