package compiler

import (
	"errors"
	"testing"

	"schemagen/internal/entity"
	"schemagen/internal/prisma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(name, target string, multiple bool) entity.Field {
	return entity.MustField(name, entity.Lookup, entity.LookupProperties{RelatedEntityID: target, AllowMultipleSelection: multiple})
}

func optionSet(name string, dt entity.DataType, id string) entity.Field {
	return entity.MustField(name, dt, entity.OptionSetProperties{OptionsSetID: id})
}

func twoOptions(name, first, second, def string) entity.Field {
	return entity.MustField(name, entity.TwoOptions, entity.TwoOptionsProperties{FirstOption: first, SecondOption: second, Default: def})
}

func plain(name string, dt entity.DataType) entity.Field {
	return entity.MustField(name, dt, nil)
}

func TestMapField_Scalars(t *testing.T) {
	tests := []struct {
		dt   entity.DataType
		want prisma.ScalarType
	}{
		{entity.SingleLineText, prisma.String},
		{entity.MultiLineText, prisma.String},
		{entity.Email, prisma.String},
		{entity.State, prisma.String},
		{entity.File, prisma.String},
		{entity.Image, prisma.String},
		{entity.GeographicAddress, prisma.String},
		{entity.AutoNumber, prisma.Int},
		{entity.WholeNumber, prisma.Int},
		{entity.DecimalNumber, prisma.Float},
		{entity.DateTime, prisma.DateTime},
		{entity.Boolean, prisma.Boolean},
	}
	for _, tt := range tests {
		t.Run(string(tt.dt), func(t *testing.T) {
			got, err := MapField(plain("f", tt.dt))
			require.NoError(t, err)
			sf, ok := got.(*prisma.ScalarField)
			require.True(t, ok, "expected scalar, got %T", got)
			assert.Equal(t, "f", sf.Name)
			assert.Equal(t, tt.want, sf.Type)
			assert.True(t, sf.IsRequired)
			assert.False(t, sf.IsList)
			assert.False(t, sf.IsID)
			assert.False(t, sf.IsUnique)
			assert.False(t, sf.IsUpdatedAt)
			assert.Nil(t, sf.Default)
		})
	}
}

func TestMapField_SystemFields(t *testing.T) {
	got, err := MapField(plain("id", entity.Id))
	require.NoError(t, err)
	id := got.(*prisma.ScalarField)
	assert.Equal(t, prisma.String, id.Type)
	assert.True(t, id.IsID)
	assert.True(t, id.IsRequired)
	assert.False(t, id.IsUnique)
	require.NotNil(t, id.Default)
	assert.Equal(t, "cuid()", id.Default.String())

	got, err = MapField(plain("createdAt", entity.CreatedAt))
	require.NoError(t, err)
	created := got.(*prisma.ScalarField)
	assert.Equal(t, prisma.DateTime, created.Type)
	require.NotNil(t, created.Default)
	assert.Equal(t, "now()", created.Default.String())
	assert.False(t, created.IsUpdatedAt)

	got, err = MapField(plain("updatedAt", entity.UpdatedAt))
	require.NoError(t, err)
	updated := got.(*prisma.ScalarField)
	assert.Equal(t, prisma.DateTime, updated.Type)
	assert.True(t, updated.IsUpdatedAt)
	assert.Nil(t, updated.Default)
}

func TestMapField_Relations(t *testing.T) {
	tests := []struct {
		name   string
		field  entity.Field
		target string
		isList bool
	}{
		{"lookup single", lookup("owner", "User", false), "User", false},
		{"lookup multiple", lookup("orders", "Order", true), "Order", true},
		{"option set", optionSet("status", entity.OptionSet, "Status"), "Status", false},
		{"multi select", optionSet("tags", entity.MultiSelectOptionSet, "Tags"), "Tags", true},
		{"two options", twoOptions("Active", "Yes", "No", "No"), "EnumActive", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapField(tt.field)
			require.NoError(t, err)
			of, ok := got.(*prisma.ObjectField)
			require.True(t, ok, "expected object field, got %T", got)
			assert.Equal(t, tt.target, of.Type)
			assert.Equal(t, tt.isList, of.IsList)
			assert.True(t, of.IsRequired)
		})
	}
}

func TestMapField_OptionSetsShareEnum(t *testing.T) {
	single, err := MapField(optionSet("status", entity.OptionSet, "OrderStatus"))
	require.NoError(t, err)
	multi, err := MapField(optionSet("history", entity.MultiSelectOptionSet, "OrderStatus"))
	require.NoError(t, err)
	assert.Equal(t, single.(*prisma.ObjectField).Type, multi.(*prisma.ObjectField).Type)
}

func TestMapField_Errors(t *testing.T) {
	_, err := MapField(entity.Field{Name: "x", DataType: "Hologram", Properties: entity.NoProperties{}})
	require.ErrorIs(t, err, entity.ErrUnsupportedDataType)
	var fe *entity.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "x", fe.Field)
	assert.Equal(t, entity.DataType("Hologram"), fe.DataType)

	_, err = MapField(entity.Field{Name: "owner", DataType: entity.Lookup, Properties: entity.LookupProperties{}})
	require.ErrorIs(t, err, entity.ErrMalformedProperties)

	_, err = MapField(entity.Field{Name: "owner", DataType: entity.Lookup, Properties: entity.OptionSetProperties{OptionsSetID: "X"}})
	require.ErrorIs(t, err, entity.ErrMalformedProperties)
}

func TestMappersCoverEveryDataType(t *testing.T) {
	for _, dt := range entity.DataTypes() {
		assert.NotNil(t, mappers[dt.Ordinal()], "no mapper for %s", dt)
	}
}

func TestSynthesizeEnums(t *testing.T) {
	fields := []entity.Field{
		plain("name", entity.SingleLineText),
		twoOptions("Active", "Yes", "No", "No"),
		optionSet("status", entity.OptionSet, "Status"),
		lookup("owner", "User", false),
		optionSet("tags", entity.MultiSelectOptionSet, "Status"),
	}
	enums, err := CollectEnums(fields)
	require.NoError(t, err)
	require.Len(t, enums, 3)

	assert.Equal(t, "EnumActive", enums[0].Name)
	assert.Equal(t, []string{"Yes", "No", "No"}, enums[0].Values)

	assert.Equal(t, "Status", enums[1].Name)
	assert.Empty(t, enums[1].Values)
	// дедупликации нет
	assert.Equal(t, "Status", enums[2].Name)
}

func TestSynthesizeEnums_Lazy(t *testing.T) {
	fields := []entity.Field{
		twoOptions("A", "x", "y", "x"),
		twoOptions("B", "x", "y", "y"),
		// до этого поля итерация не должна дойти
		{Name: "broken", DataType: entity.TwoOptions, Properties: entity.NoProperties{}},
	}
	var names []string
	for e, err := range SynthesizeEnums(fields) {
		require.NoError(t, err)
		names = append(names, e.Name)
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"EnumA", "EnumB"}, names)

	_, err := CollectEnums(fields)
	require.ErrorIs(t, err, entity.ErrMalformedProperties)
}

func TestBuildModel_PreservesOrder(t *testing.T) {
	e := &entity.Entity{Name: "Order", Fields: []entity.Field{
		plain("id", entity.Id),
		plain("total", entity.DecimalNumber),
		lookup("customer", "Customer", false),
		plain("createdAt", entity.CreatedAt),
		plain("notes", entity.MultiLineText),
	}}
	m, err := BuildModel(e)
	require.NoError(t, err)
	assert.Equal(t, "Order", m.Name)
	require.Len(t, m.Fields, len(e.Fields))
	for i, f := range e.Fields {
		assert.Equal(t, f.Name, m.Fields[i].FieldName())
	}
}

func TestCompile_NoEntities(t *testing.T) {
	doc, err := New(DefaultOptions()).Document(nil)
	require.NoError(t, err)
	require.Len(t, doc.Models, 1)
	assert.Equal(t, LegacySystemModelName, doc.Models[0].Name)
	assert.Empty(t, doc.Enums)
	assert.Len(t, doc.Generators, 1)
	assert.Equal(t, "postgres", doc.DataSource.Name)
	assert.Equal(t, "POSTGRESQL_URL", doc.DataSource.URL.Variable)

	out, err := Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, `generator client {
  provider = "prisma-client-js"
}

datasource postgres {
  provider = "postgresql"
  url      = env("POSTGRESQL_URL")
}

model User {
  username String @unique
  password String
}
`, out)
}

func TestCompile_WithoutLegacyModel(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeLegacySystemModel = false
	doc, err := New(opts).Document(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Models)
}

func TestCompile_Customer(t *testing.T) {
	customer := &entity.Entity{Name: "Customer", Fields: []entity.Field{
		plain("id", entity.Id),
		plain("createdAt", entity.CreatedAt),
		plain("name", entity.SingleLineText),
	}}

	doc, err := New(DefaultOptions()).Document([]*entity.Entity{customer})
	require.NoError(t, err)
	require.Len(t, doc.Models, 2)
	assert.Empty(t, doc.Enums)

	m, ok := doc.Model("Customer")
	require.True(t, ok)
	var names []string
	for _, f := range m.Fields {
		names = append(names, f.FieldName())
	}
	assert.Equal(t, []string{"id", "createdAt", "name"}, names)

	out, err := Compile([]*entity.Entity{customer})
	require.NoError(t, err)
	assert.Contains(t, out, `model Customer {
  id String @id @default(cuid())
  createdAt DateTime @default(now())
  name String
}`)
}

func TestCompile_EnumsAndRelations(t *testing.T) {
	entities := []*entity.Entity{
		{Name: "Customer", Fields: []entity.Field{
			plain("id", entity.Id),
			twoOptions("Active", "Yes", "No", "No"),
			lookup("orders", "Order", true),
		}},
		{Name: "Order", Fields: []entity.Field{
			plain("id", entity.Id),
			optionSet("status", entity.OptionSet, "OrderStatus"),
			optionSet("history", entity.MultiSelectOptionSet, "OrderStatus"),
			plain("updatedAt", entity.UpdatedAt),
		}},
	}
	out, err := Compile(entities)
	require.NoError(t, err)

	assert.Contains(t, out, "enum EnumActive {\n  Yes\n  No\n  No\n}")
	assert.Contains(t, out, "enum OrderStatus {\n}")
	assert.Contains(t, out, "  Active EnumActive\n")
	assert.Contains(t, out, "  orders Order[]\n")
	assert.Contains(t, out, "  status OrderStatus\n")
	assert.Contains(t, out, "  history OrderStatus[]\n")
	assert.Contains(t, out, "  updatedAt DateTime @updatedAt\n")
}

func TestCompile_Deterministic(t *testing.T) {
	entities := []*entity.Entity{
		{Name: "A", Fields: []entity.Field{plain("id", entity.Id), twoOptions("Flag", "On", "Off", "On")}},
		{Name: "B", Fields: []entity.Field{plain("id", entity.Id), lookup("a", "A", false)}},
	}
	first, err := Compile(entities)
	require.NoError(t, err)
	second, err := Compile(entities)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompile_FailsFast(t *testing.T) {
	entities := []*entity.Entity{
		{Name: "Good", Fields: []entity.Field{plain("id", entity.Id)}},
		{Name: "Bad", Fields: []entity.Field{
			plain("id", entity.Id),
			{Name: "weird", DataType: "Hologram", Properties: entity.NoProperties{}},
		}},
	}
	out, err := Compile(entities)
	require.ErrorIs(t, err, entity.ErrUnsupportedDataType)
	assert.Empty(t, out)

	var fe *entity.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Bad", fe.Entity)
	assert.Equal(t, "weird", fe.Field)
}

func TestNew_FillsDefaults(t *testing.T) {
	c := New(Options{})
	doc, err := c.Document(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Models)
	assert.Equal(t, DefaultGeneratorName, doc.Generators[0].Name)
	assert.Equal(t, DefaultGeneratorProvider, doc.Generators[0].Provider)
	assert.Equal(t, DefaultDataSourceName, doc.DataSource.Name)
}
