package prisma

import (
	"fmt"
	"strings"
)

// Print печатает документ. Порядок блоков фиксированный:
// generator(ы), datasource, enum'ы, модели — по одной пустой строке между блоками.
func Print(s *Schema) string {
	var blocks []string
	for _, g := range s.Generators {
		blocks = append(blocks, printGenerator(g))
	}
	blocks = append(blocks, printDataSource(s.DataSource))
	for _, e := range s.Enums {
		blocks = append(blocks, printEnum(e))
	}
	for _, m := range s.Models {
		blocks = append(blocks, printModel(m))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func printGenerator(g Generator) string {
	return fmt.Sprintf("generator %s {\n  provider = %q\n}", g.Name, g.Provider)
}

func printDataSource(d DataSource) string {
	return fmt.Sprintf("datasource %s {\n  provider = %q\n  url      = %s\n}", d.Name, string(d.Provider), d.URL)
}

func printEnum(e Enum) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "enum %s {\n", e.Name)
	for _, v := range e.Values {
		fmt.Fprintf(&sb, "  %s\n", v)
	}
	sb.WriteString("}")
	return sb.String()
}

func printModel(m Model) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "model %s {\n", m.Name)
	for _, f := range m.Fields {
		sb.WriteString("  ")
		sb.WriteString(printField(f))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printField(f Field) string {
	switch t := f.(type) {
	case *ScalarField:
		parts := []string{t.Name, typeRef(string(t.Type), t.IsList, t.IsRequired)}
		if t.IsID {
			parts = append(parts, "@id")
		}
		if t.IsUnique {
			parts = append(parts, "@unique")
		}
		if t.IsUpdatedAt {
			parts = append(parts, "@updatedAt")
		}
		if t.Default != nil {
			parts = append(parts, "@default("+t.Default.String()+")")
		}
		return strings.Join(parts, " ")
	case *ObjectField:
		return t.Name + " " + typeRef(t.Type, t.IsList, t.IsRequired)
	default:
		panic(fmt.Sprintf("prisma: unknown field %T", f))
	}
}

// Type[] для списка, Type? для необязательного; список всегда без "?"
func typeRef(name string, isList, isRequired bool) string {
	switch {
	case isList:
		return name + "[]"
	case !isRequired:
		return name + "?"
	default:
		return name
	}
}
