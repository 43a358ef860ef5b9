// api/schema_lint.go
package api

import (
	"fmt"

	"schemagen/internal/compiler"
	"schemagen/internal/entity"
	"schemagen/internal/reference"
)

type SchemaIssue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaLint ищет то, что компилятор сознательно не проверяет: висячие ссылки,
// неизвестные справочники, коллизии имён enum'ов. Только подсказки — компиляцию не блокирует.
func SchemaLint(entities []*entity.Entity, optionSets reference.Catalog, legacySystemModel bool) []SchemaIssue {
	var issues []SchemaIssue

	models := map[string]struct{}{}
	if legacySystemModel {
		models[compiler.LegacySystemModelName] = struct{}{}
	}
	for _, e := range entities {
		models[e.Name] = struct{}{}
	}

	// имя enum'а -> поле, которое объявило его первым
	optionSetEnums := map[string]string{}
	twoOptionsEnums := map[string]string{}
	collision := func(e *entity.Entity, f entity.Field, msg string) {
		issues = append(issues, SchemaIssue{Entity: e.Name, Field: f.Name, Code: "enum_name_collision", Message: msg})
	}
	claimEnum := func(e *entity.Entity, f entity.Field, name string, shared bool) {
		if _, isModel := models[name]; isModel {
			collision(e, f, fmt.Sprintf("enum %q has the same name as a model", name))
		}
		if prev, ok := twoOptionsEnums[name]; ok {
			collision(e, f, fmt.Sprintf("enum %q is already declared by %s", name, prev))
			return
		}
		if prev, ok := optionSetEnums[name]; ok {
			// один справочник на несколько OptionSet-полей — норма
			if !shared {
				collision(e, f, fmt.Sprintf("enum %q is already declared by %s", name, prev))
			}
			return
		}
		if shared {
			optionSetEnums[name] = e.Name + "." + f.Name
		} else {
			twoOptionsEnums[name] = e.Name + "." + f.Name
		}
	}

	for _, e := range entities {
		for _, f := range e.Fields {
			switch f.DataType {
			case entity.Lookup:
				p, err := f.Lookup()
				if err != nil {
					continue
				}
				if _, ok := models[p.RelatedEntityID]; !ok {
					issues = append(issues, SchemaIssue{
						Entity:  e.Name,
						Field:   f.Name,
						Code:    "lookup_target_unknown",
						Message: fmt.Sprintf("lookup target %q is not a known entity", p.RelatedEntityID),
					})
				}

			case entity.OptionSet, entity.MultiSelectOptionSet:
				p, err := f.OptionSet()
				if err != nil {
					continue
				}
				set, ok := optionSets[p.OptionsSetID]
				switch {
				case !ok:
					issues = append(issues, SchemaIssue{
						Entity:  e.Name,
						Field:   f.Name,
						Code:    "option_set_undefined",
						Message: fmt.Sprintf("option set %q is not defined", p.OptionsSetID),
					})
				case len(set.Items) == 0:
					issues = append(issues, SchemaIssue{
						Entity:  e.Name,
						Field:   f.Name,
						Code:    "option_set_empty",
						Message: fmt.Sprintf("option set %q has no items", p.OptionsSetID),
					})
				}
				claimEnum(e, f, p.OptionsSetID, true)

			case entity.TwoOptions:
				p, err := f.TwoOptions()
				if err != nil {
					continue
				}
				if p.Default != p.FirstOption && p.Default != p.SecondOption {
					issues = append(issues, SchemaIssue{
						Entity:  e.Name,
						Field:   f.Name,
						Code:    "two_options_default_unknown",
						Message: fmt.Sprintf("default %q is neither %q nor %q", p.Default, p.FirstOption, p.SecondOption),
					})
				}
				claimEnum(e, f, compiler.TwoOptionsEnumName(f.Name), false)
			}
		}
	}
	return issues
}
