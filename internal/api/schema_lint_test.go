package api

import (
	"testing"

	"schemagen/internal/entity"
	"schemagen/internal/reference"

	"github.com/stretchr/testify/assert"
)

func TestSchemaLint(t *testing.T) {
	entities := []*entity.Entity{
		{Name: "Customer", Fields: []entity.Field{
			entity.MustField("owner", entity.Lookup, entity.LookupProperties{RelatedEntityID: "User"}),
			entity.MustField("ghost", entity.Lookup, entity.LookupProperties{RelatedEntityID: "Ghost"}),
			entity.MustField("status", entity.OptionSet, entity.OptionSetProperties{OptionsSetID: "Status"}),
			entity.MustField("tags", entity.MultiSelectOptionSet, entity.OptionSetProperties{OptionsSetID: "Missing"}),
			entity.MustField("Active", entity.TwoOptions, entity.TwoOptionsProperties{FirstOption: "Yes", SecondOption: "No", Default: "Maybe"}),
		}},
		{Name: "Order", Fields: []entity.Field{
			entity.MustField("status", entity.OptionSet, entity.OptionSetProperties{OptionsSetID: "Status"}),
			entity.MustField("Active", entity.TwoOptions, entity.TwoOptionsProperties{FirstOption: "Y", SecondOption: "N", Default: "N"}),
			entity.MustField("kind", entity.OptionSet, entity.OptionSetProperties{OptionsSetID: "Customer"}),
		}},
	}
	catalog := reference.Catalog{
		"Status":   {Name: "Status"},
		"Customer": {Name: "Customer", Items: []reference.Option{{Code: "A"}}},
	}

	issues := SchemaLint(entities, catalog, true)

	var codes []string
	for _, it := range issues {
		codes = append(codes, it.Entity+"."+it.Field+":"+it.Code)
	}
	assert.Equal(t, []string{
		"Customer.ghost:lookup_target_unknown",
		"Customer.status:option_set_empty",
		"Customer.tags:option_set_undefined",
		"Customer.Active:two_options_default_unknown",
		"Order.status:option_set_empty",
		"Order.Active:enum_name_collision",
		"Order.kind:enum_name_collision",
	}, codes)

	// без legacy-модели ссылка на User висит
	issues = SchemaLint(entities[:1], catalog, false)
	assert.Equal(t, "lookup_target_unknown", issues[0].Code)
	assert.Equal(t, "owner", issues[0].Field)
}
