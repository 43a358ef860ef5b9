package reference

import "sort"

// OptionSet описывает один справочник вариантов (значения enum'ов OptionSet-полей)
type OptionSet struct {
	Name  string   `yaml:"name" json:"name"`
	Items []Option `yaml:"items" json:"items"`
}

type Option struct {
	Code  string `yaml:"code" json:"code"`
	Name  string `yaml:"name" json:"name"`
	Order int    `yaml:"order,omitempty" json:"order,omitempty"`
}

// Catalog — справочники по имени (optionsSetId)
type Catalog map[string]OptionSet

// Codes возвращает коды вариантов по Order, при равенстве — в порядке файла.
func (s OptionSet) Codes() []string {
	items := append([]Option(nil), s.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}
	return out
}

// Names — отсортированные имена справочников.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
