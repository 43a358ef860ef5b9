package compiler

import (
	"fmt"

	"schemagen/internal/entity"
	"schemagen/internal/prisma"
)

type fieldMapper func(f entity.Field) (prisma.Field, error)

// mappers индексируется entity.DataType.Ordinal(). Дыра в таблице — паника на init.
var mappers = make([]fieldMapper, len(entity.DataTypes()))

func register(fn fieldMapper, types ...entity.DataType) {
	for _, dt := range types {
		mappers[dt.Ordinal()] = fn
	}
}

func scalar(t prisma.ScalarType) fieldMapper {
	return func(f entity.Field) (prisma.Field, error) {
		return prisma.NewScalarField(f.Name, t), nil
	}
}

func init() {
	register(scalar(prisma.String),
		entity.SingleLineText, entity.MultiLineText, entity.Email, entity.State,
		entity.File, entity.Image, entity.GeographicAddress)
	register(scalar(prisma.Int), entity.AutoNumber, entity.WholeNumber)
	register(scalar(prisma.Float), entity.DecimalNumber)
	register(scalar(prisma.DateTime), entity.DateTime)
	register(scalar(prisma.Boolean), entity.Boolean)
	register(mapLookup, entity.Lookup)
	register(mapOptionSet, entity.OptionSet, entity.MultiSelectOptionSet)
	register(mapTwoOptions, entity.TwoOptions)
	register(mapID, entity.Id)
	register(mapCreatedAt, entity.CreatedAt)
	register(mapUpdatedAt, entity.UpdatedAt)

	for i, fn := range mappers {
		if fn == nil {
			panic(fmt.Sprintf("compiler: no field mapper for data type %s", entity.DataTypes()[i]))
		}
	}
}

// MapField переводит поле сущности в поле модели Prisma.
// Ошибки: ErrUnsupportedDataType, ErrMalformedProperties (обёрнуты в *entity.FieldError).
func MapField(f entity.Field) (prisma.Field, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return mappers[f.DataType.Ordinal()](f)
}

func mapLookup(f entity.Field) (prisma.Field, error) {
	p, err := f.Lookup()
	if err != nil {
		return nil, err
	}
	return prisma.NewObjectField(f.Name, p.RelatedEntityID, p.AllowMultipleSelection, true), nil
}

func mapOptionSet(f entity.Field) (prisma.Field, error) {
	p, err := f.OptionSet()
	if err != nil {
		return nil, err
	}
	isList := f.DataType == entity.MultiSelectOptionSet
	return prisma.NewObjectField(f.Name, p.OptionsSetID, isList, true), nil
}

func mapTwoOptions(f entity.Field) (prisma.Field, error) {
	return prisma.NewObjectField(f.Name, TwoOptionsEnumName(f.Name), false, true), nil
}

func mapID(f entity.Field) (prisma.Field, error) {
	sf := prisma.NewScalarField(f.Name, prisma.String)
	sf.IsID = true
	sf.Default = &prisma.CallExpression{Callee: prisma.CUID}
	return sf, nil
}

func mapCreatedAt(f entity.Field) (prisma.Field, error) {
	sf := prisma.NewScalarField(f.Name, prisma.DateTime)
	sf.Default = &prisma.CallExpression{Callee: prisma.Now}
	return sf, nil
}

func mapUpdatedAt(f entity.Field) (prisma.Field, error) {
	sf := prisma.NewScalarField(f.Name, prisma.DateTime)
	sf.IsUpdatedAt = true
	return sf, nil
}

// TwoOptionsEnumName — имя синтетического enum'а для поля TwoOptions.
func TwoOptionsEnumName(fieldName string) string {
	return "Enum" + fieldName
}
