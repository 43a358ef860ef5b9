package entity

import "fmt"

// DataType — закрытый набор типов полей сущности
type DataType string

const (
	SingleLineText       DataType = "SingleLineText"
	MultiLineText        DataType = "MultiLineText"
	Email                DataType = "Email"
	State                DataType = "State"
	AutoNumber           DataType = "AutoNumber"
	WholeNumber          DataType = "WholeNumber"
	DateTime             DataType = "DateTime"
	DecimalNumber        DataType = "DecimalNumber"
	File                 DataType = "File"
	Image                DataType = "Image"
	Boolean              DataType = "Boolean"
	GeographicAddress    DataType = "GeographicAddress"
	Lookup               DataType = "Lookup"
	MultiSelectOptionSet DataType = "MultiSelectOptionSet"
	OptionSet            DataType = "OptionSet"
	TwoOptions           DataType = "TwoOptions"
	Id                   DataType = "Id"
	CreatedAt            DataType = "CreatedAt"
	UpdatedAt            DataType = "UpdatedAt"
)

var dataTypes = []DataType{
	SingleLineText, MultiLineText, Email, State, AutoNumber, WholeNumber,
	DateTime, DecimalNumber, File, Image, Boolean, GeographicAddress,
	Lookup, MultiSelectOptionSet, OptionSet, TwoOptions,
	Id, CreatedAt, UpdatedAt,
}

var dataTypeIndex = func() map[DataType]int {
	m := make(map[DataType]int, len(dataTypes))
	for i, dt := range dataTypes {
		m[dt] = i
	}
	return m
}()

// DataTypes возвращает все известные типы в порядке объявления.
func DataTypes() []DataType {
	return append([]DataType(nil), dataTypes...)
}

// Known сообщает, входит ли тип в закрытый набор.
func (dt DataType) Known() bool {
	_, ok := dataTypeIndex[dt]
	return ok
}

// Ordinal — позиция типа в DataTypes(), -1 для неизвестного.
func (dt DataType) Ordinal() int {
	if i, ok := dataTypeIndex[dt]; ok {
		return i
	}
	return -1
}

// Entity описывает сущность: имя и упорядоченный список полей
type Entity struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field описывает поле сущности. Properties всегда соответствует DataType.
type Field struct {
	Name       string
	DataType   DataType
	Properties Properties
}

// NewField собирает поле и сразу проверяет payload под тип.
func NewField(name string, dt DataType, props Properties) (Field, error) {
	if props == nil {
		props = NoProperties{}
	}
	f := Field{Name: name, DataType: dt, Properties: props}
	if err := f.Validate(); err != nil {
		return Field{}, err
	}
	return f, nil
}

// MustField — для тестов и статических моделей.
func MustField(name string, dt DataType, props Properties) Field {
	f, err := NewField(name, dt, props)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate проверяет тип и форму properties.
func (f Field) Validate() error {
	if !f.DataType.Known() {
		return &FieldError{Field: f.Name, DataType: f.DataType, Err: ErrUnsupportedDataType}
	}
	want := PropertiesFor(f.DataType)
	props := f.Properties
	if props == nil {
		props = NoProperties{}
	}
	if props.shape() != want.shape() {
		return &FieldError{
			Field:    f.Name,
			DataType: f.DataType,
			Err:      ErrMalformedProperties,
			Detail:   fmt.Sprintf("expected %T, got %T", want, props),
		}
	}
	if detail := props.check(); detail != "" {
		return &FieldError{Field: f.Name, DataType: f.DataType, Err: ErrMalformedProperties, Detail: detail}
	}
	return nil
}

func (f Field) wrongTag(want DataType) error {
	return &FieldError{
		Field:    f.Name,
		DataType: f.DataType,
		Err:      ErrMalformedProperties,
		Detail:   fmt.Sprintf("properties accessed as %s", want),
	}
}

// Lookup возвращает properties поля Lookup.
func (f Field) Lookup() (LookupProperties, error) {
	p, ok := f.Properties.(LookupProperties)
	if f.DataType != Lookup || !ok {
		return LookupProperties{}, f.wrongTag(Lookup)
	}
	return p, nil
}

// OptionSet возвращает properties для OptionSet и MultiSelectOptionSet.
func (f Field) OptionSet() (OptionSetProperties, error) {
	p, ok := f.Properties.(OptionSetProperties)
	if (f.DataType != OptionSet && f.DataType != MultiSelectOptionSet) || !ok {
		return OptionSetProperties{}, f.wrongTag(OptionSet)
	}
	return p, nil
}

// TwoOptions возвращает properties поля TwoOptions.
func (f Field) TwoOptions() (TwoOptionsProperties, error) {
	p, ok := f.Properties.(TwoOptionsProperties)
	if f.DataType != TwoOptions || !ok {
		return TwoOptionsProperties{}, f.wrongTag(TwoOptions)
	}
	return p, nil
}

// Validate проверяет имя сущности, уникальность имён полей (с учётом регистра) и сами поля.
func (e *Entity) Validate() error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("entity: empty name")
	}
	seen := make(map[string]struct{}, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "" {
			return fmt.Errorf("entity %s: field with empty name", e.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("entity %s: duplicate field %q", e.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := f.Validate(); err != nil {
			return WithEntity(err, e.Name)
		}
	}
	return nil
}

// AllFields разворачивает поля всех сущностей в порядке сущность→поле.
func AllFields(entities []*Entity) []Field {
	n := 0
	for _, e := range entities {
		n += len(e.Fields)
	}
	out := make([]Field, 0, n)
	for _, e := range entities {
		out = append(out, e.Fields...)
	}
	return out
}
