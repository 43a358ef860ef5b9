package entity

import "strings"

// Properties — payload поля, форма зависит от DataType.
// Реализации только в этом пакете.
type Properties interface {
	shape() string
	check() string // пустая строка = ок
}

// NoProperties — у типа нет собственных настроек
type NoProperties struct{}

func (NoProperties) shape() string { return "none" }
func (NoProperties) check() string { return "" }

// LookupProperties — ссылка на другую сущность
type LookupProperties struct {
	RelatedEntityID        string `json:"relatedEntityId"`
	AllowMultipleSelection bool   `json:"allowMultipleSelection"`
}

func (LookupProperties) shape() string { return "lookup" }
func (p LookupProperties) check() string {
	if strings.TrimSpace(p.RelatedEntityID) == "" {
		return "relatedEntityId is required"
	}
	return ""
}

// OptionSetProperties — ссылка на внешний справочник вариантов
type OptionSetProperties struct {
	OptionsSetID string `json:"optionsSetId"`
}

func (OptionSetProperties) shape() string { return "optionSet" }
func (p OptionSetProperties) check() string {
	if strings.TrimSpace(p.OptionsSetID) == "" {
		return "optionsSetId is required"
	}
	return ""
}

// TwoOptionsProperties — два варианта и значение по умолчанию
type TwoOptionsProperties struct {
	FirstOption  string `json:"firstOption"`
	SecondOption string `json:"secondOption"`
	Default      string `json:"default"`
}

func (TwoOptionsProperties) shape() string { return "twoOptions" }
func (p TwoOptionsProperties) check() string {
	var missing []string
	if p.FirstOption == "" {
		missing = append(missing, "firstOption")
	}
	if p.SecondOption == "" {
		missing = append(missing, "secondOption")
	}
	if p.Default == "" {
		missing = append(missing, "default")
	}
	if len(missing) > 0 {
		return strings.Join(missing, ", ") + " required"
	}
	return ""
}

// PropertiesFor возвращает пустой payload нужной формы для типа.
// Для неизвестного типа — NoProperties.
func PropertiesFor(dt DataType) Properties {
	switch dt {
	case Lookup:
		return LookupProperties{}
	case OptionSet, MultiSelectOptionSet:
		return OptionSetProperties{}
	case TwoOptions:
		return TwoOptionsProperties{}
	default:
		return NoProperties{}
	}
}
