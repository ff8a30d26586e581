// -----------------------------------------------------------------------------
// Descriptor Documents
// -----------------------------------------------------------------------------
// Bu paket, sorgu descriptor'larını YAML (veya JSON) dokümanlarından okur.
// JSON geçerli bir YAML olduğu için her iki format da aynı decoder ile
// ayrıştırılır. Örnek doküman:
//
//	statement: select
//	table: users
//	select: [id, name, {raw: "count(*) as total"}]
//	joins:
//	  - type: left
//	    table: posts
//	    on:
//	      - {first: users.id, op: "=", second: posts.user_id}
//	where:
//	  - {column: active, op: "=", value: true}
//	  - {column: role, in: [admin, editor], or: true}
//	  - nested:
//	      - {column: age, op: ">", value: 18}
//	group_by: [users.id]
//	order_by:
//	  - {column: name, direction: desc}
//	limit: 10
//
// Insert/update dokümanlarında satır kolonları dosyadaki sırayla korunur.
// -----------------------------------------------------------------------------

package descriptor

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/biyonik/leaps-query/pkg/database/query"
)

// ErrInvalidDocument, doküman yapısal olarak hatalı olduğunda döner.
var ErrInvalidDocument = errors.New("invalid query document")

// Statement türleri.
const (
	Select      = "select"
	Insert      = "insert"
	InsertGetID = "insert_get_id"
	Update      = "update"
	Delete      = "delete"
	Truncate    = "truncate"
)

// Document, tek bir SQL ifadesinin doküman hâlidir.
type Document struct {
	Statement string      `yaml:"statement"`
	Table     Value       `yaml:"table"`
	Select    []Value     `yaml:"select"`
	Distinct  bool        `yaml:"distinct"`
	Joins     []JoinSpec  `yaml:"joins"`
	Where     []Condition `yaml:"where"`
	GroupBy   []Value     `yaml:"group_by"`
	Having    []Condition `yaml:"having"`
	OrderBy   []OrderSpec `yaml:"order_by"`
	Limit     *int        `yaml:"limit"`
	Offset    *int        `yaml:"offset"`
	Unions    []UnionSpec `yaml:"unions"`
	Values    []Row       `yaml:"values"`
	Set       Row         `yaml:"set"`
	Sequence  string      `yaml:"sequence"`
}

// JoinSpec, bir JOIN tanımıdır. Type boşsa inner kabul edilir.
type JoinSpec struct {
	Type  string   `yaml:"type"`
	Table Value    `yaml:"table"`
	On    []JoinOn `yaml:"on"`
}

// JoinOn, bir ON koşuludur. Value doluysa ikinci taraf kolon değil
// bağlanan bir değerdir.
type JoinOn struct {
	First  Value  `yaml:"first"`
	Op     string `yaml:"op"`
	Second Value  `yaml:"second"`
	Value  *Value `yaml:"value"`
	Or     bool   `yaml:"or"`
}

// Condition, bir WHERE veya HAVING koşuludur. Tür belirten alanlardan
// (raw, nested, in, not_in, between, not_between, is_null, exists,
// not_exists, in_sub, not_in_sub, sub) en fazla biri dolu olabilir; hiçbiri
// yoksa "column op value" koşuludur.
type Condition struct {
	Column     Value       `yaml:"column"`
	Op         string      `yaml:"op"`
	Value      Value       `yaml:"value"`
	Or         bool        `yaml:"or"`
	Raw        string      `yaml:"raw"`
	Bindings   []Value     `yaml:"bindings"`
	Nested     []Condition `yaml:"nested"`
	In         []Value     `yaml:"in"`
	NotIn      []Value     `yaml:"not_in"`
	Between    []Value     `yaml:"between"`
	NotBetween []Value     `yaml:"not_between"`
	IsNull     *bool       `yaml:"is_null"`
	Exists     *Document   `yaml:"exists"`
	NotExists  *Document   `yaml:"not_exists"`
	InSub      *Document   `yaml:"in_sub"`
	NotInSub   *Document   `yaml:"not_in_sub"`
	Sub        *Document   `yaml:"sub"`
}

// OrderSpec, bir ORDER BY ifadesidir.
type OrderSpec struct {
	Column    Value  `yaml:"column"`
	Direction string `yaml:"direction"`
}

// UnionSpec, ana sorguya eklenen union'dır.
type UnionSpec struct {
	All   bool     `yaml:"all"`
	Query Document `yaml:"query"`
}

// Value, doküman içindeki skaler bir değerdir. {raw: "..."} biçimindeki
// eşlemeler query.Expression olarak okunur.
type Value struct {
	v interface{}
}

// Interface, ayrıştırılmış değeri döndürür.
func (v Value) Interface() interface{} {
	return v.v
}

// UnmarshalYAML, yaml.Unmarshaler arayüzünü uygular.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeScalar(node)
	if err != nil {
		return err
	}
	v.v = decoded
	return nil
}

// Row, kolon sırası korunan bir satırdır.
type Row struct {
	row *query.Row
}

// Row, satırı query.Row olarak döndürür. Doküman satır vermediyse nil döner.
func (r Row) Row() *query.Row {
	return r.row
}

// UnmarshalYAML, eşleme düğümünü anahtar sırasını koruyarak okur.
func (r *Row) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Wrapf(ErrInvalidDocument, "line %d: row must be a mapping", node.Line)
	}
	row := query.NewRow()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		value, err := decodeScalar(val)
		if err != nil {
			return err
		}
		row.Set(key.Value, value)
	}
	r.row = row
	return nil
}

func decodeScalar(node *yaml.Node) (interface{}, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		if len(node.Content) == 2 && node.Content[0].Value == "raw" {
			return query.Raw(node.Content[1].Value), nil
		}
		return nil, errors.Wrapf(ErrInvalidDocument, "line %d: mapping values must be {raw: ...}", node.Line)
	case yaml.SequenceNode:
		return nil, errors.Wrapf(ErrInvalidDocument, "line %d: unexpected list", node.Line)
	}

	var out interface{}
	if err := node.Decode(&out); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "line %d: %v", node.Line, err)
	}
	return out, nil
}

// Parse, YAML veya JSON dokümanını ayrıştırır. Bilinmeyen alanlar hatadır.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrInvalidDocument, "empty document")
		}
		return nil, errors.Wrap(ErrInvalidDocument, err.Error())
	}
	if doc.Statement == "" {
		doc.Statement = Select
	}
	return &doc, nil
}

// LoadFile, dosyadaki dokümanı okur.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "document %s could not be read", path)
	}
	return Parse(data)
}
