// Package prisma — AST документа схемы Prisma и его печать в текст.
package prisma

// ScalarType — скалярные типы Prisma
type ScalarType string

const (
	String   ScalarType = "String"
	Boolean  ScalarType = "Boolean"
	Int      ScalarType = "Int"
	Float    ScalarType = "Float"
	DateTime ScalarType = "DateTime"
)

// DataSourceProvider — провайдер datasource
type DataSourceProvider string

const PostgreSQL DataSourceProvider = "postgresql"

// Функции для @default(...)
const (
	CUID = "cuid"
	Now  = "now"
)

// CallExpression — значение по умолчанию вида fn()
type CallExpression struct {
	Callee string
}

func (c CallExpression) String() string { return c.Callee + "()" }

// EnvURL — url datasource, взятый из переменной окружения (печатается ссылкой, не значением)
type EnvURL struct {
	Variable string
}

func (u EnvURL) String() string { return `env("` + u.Variable + `")` }

type DataSource struct {
	Name     string
	Provider DataSourceProvider
	URL      EnvURL
}

type Generator struct {
	Name     string
	Provider string
}

func NewGenerator(name, provider string) Generator {
	return Generator{Name: name, Provider: provider}
}

// Field — поле модели: *ScalarField или *ObjectField
type Field interface {
	FieldName() string
	isField()
}

type ScalarField struct {
	Name        string
	Type        ScalarType
	IsList      bool
	IsRequired  bool
	IsUnique    bool
	IsID        bool
	IsUpdatedAt bool
	Default     *CallExpression
}

func (f *ScalarField) FieldName() string { return f.Name }
func (*ScalarField) isField()            {}

// ObjectField ссылается на модель или enum по имени. Существование цели не проверяется.
type ObjectField struct {
	Name       string
	Type       string
	IsList     bool
	IsRequired bool
}

func (f *ObjectField) FieldName() string { return f.Name }
func (*ObjectField) isField()            {}

// NewScalarField — обязательное не-списочное поле без модификаторов
func NewScalarField(name string, t ScalarType) *ScalarField {
	return &ScalarField{Name: name, Type: t, IsRequired: true}
}

func NewObjectField(name, target string, isList, isRequired bool) *ObjectField {
	return &ObjectField{Name: name, Type: target, IsList: isList, IsRequired: isRequired}
}

type Model struct {
	Name   string
	Fields []Field
}

func NewModel(name string, fields ...Field) Model {
	return Model{Name: name, Fields: fields}
}

type Enum struct {
	Name   string
	Values []string
}

func NewEnum(name string, values ...string) Enum {
	if values == nil {
		values = []string{}
	}
	return Enum{Name: name, Values: values}
}

// Schema — документ целиком. Одноразовое значение на одну компиляцию.
type Schema struct {
	Generators []Generator
	DataSource DataSource
	Enums      []Enum
	Models     []Model
}

// Model ищет модель по имени.
func (s *Schema) Model(name string) (Model, bool) {
	for _, m := range s.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Enum ищет первый enum с таким именем.
func (s *Schema) Enum(name string) (Enum, bool) {
	for _, e := range s.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}
