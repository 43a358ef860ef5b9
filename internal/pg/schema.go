package pg

import (
	"fmt"
	"strings"
	"unicode"

	"schemagen/internal/prisma"

	"github.com/jinzhu/inflection"
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// snake: "createdAt" -> "created_at", "HTTPCode" -> "http_code"
func snake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || (i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TableName: plural(snake(model)) с защитой keyword'ов
func TableName(model string) string {
	t := inflection.Plural(snake(model))
	if isReserved(t) {
		// помечаем «опасное» имя префиксом
		t = "e_" + t
	}
	return t
}

func ColumnName(field string) string { return snake(field) }

func TypeName(enum string) string { return snake(enum) }

func sqlIdent(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

func sqlLiteral(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }

func scalarType(t prisma.ScalarType) (string, error) {
	switch t {
	case prisma.String:
		return "text", nil
	case prisma.Int:
		return "integer", nil
	case prisma.Float:
		return "double precision", nil
	case prisma.Boolean:
		return "boolean", nil
	case prisma.DateTime:
		return "timestamp with time zone", nil
	default:
		return "", fmt.Errorf("unknown scalar type: %s", t)
	}
}

func listOf(typ string, isList bool) string {
	if isList {
		return typ + "[]"
	}
	return typ
}

type fkStmt struct {
	table, name, col, refTable, refCol string
}

// GenerateDDL проецирует документ Prisma на DDL Postgres. Порядок:
// enum-типы, таблицы, unique-индексы, затем внешние ключи (после создания всех таблиц).
//
// Списочные связи с моделями (many-to-many) в DDL не попадают.
// Повторяющиеся значения enum'а схлопываются: Postgres их не принимает.
func GenerateDDL(doc *prisma.Schema) ([]string, error) {
	var out []string

	// --- enum types ---
	enums := map[string]struct{}{}
	for _, e := range doc.Enums {
		if _, dup := enums[e.Name]; dup {
			continue
		}
		enums[e.Name] = struct{}{}

		var labels []string
		seen := map[string]struct{}{}
		for _, v := range e.Values {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			labels = append(labels, sqlLiteral(v))
		}
		out = append(out, fmt.Sprintf(
			"do $$ begin\n  create type %s as enum (%s);\nexception when duplicate_object then null;\nend $$;",
			sqlIdent(TypeName(e.Name)), strings.Join(labels, ", ")))
	}

	models := map[string]prisma.Model{}
	for _, m := range doc.Models {
		if _, dup := models[m.Name]; dup {
			return nil, fmt.Errorf("duplicate model %q", m.Name)
		}
		models[m.Name] = m
	}

	var uniques []string
	var fks []fkStmt

	for _, m := range doc.Models {
		tbl := TableName(m.Name)
		var cols []string
		seen := map[string]string{}

		addCol := func(field, col, def string) error {
			if prev, ok := seen[col]; ok {
				return fmt.Errorf("%s.%s: column %q clashes with field %s", m.Name, field, col, prev)
			}
			seen[col] = field
			cols = append(cols, def)
			return nil
		}

		for _, f := range m.Fields {
			switch t := f.(type) {
			case *prisma.ScalarField:
				typ, err := scalarType(t.Type)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", m.Name, t.Name, err)
				}
				col := ColumnName(t.Name)
				def := fmt.Sprintf("%s %s", sqlIdent(col), listOf(typ, t.IsList))
				if t.IsID {
					def += " primary key"
				} else if t.IsRequired {
					def += " not null"
				}
				if t.Default != nil && t.Default.Callee == prisma.Now {
					def += " default now()"
				}
				if err := addCol(t.Name, col, def); err != nil {
					return nil, err
				}
				if t.IsUnique {
					uniques = append(uniques, fmt.Sprintf("create unique index if not exists %s on %s(%s);",
						sqlIdent(tbl+"_"+col+"_uq"), sqlIdent(tbl), sqlIdent(col)))
				}

			case *prisma.ObjectField:
				if _, isEnum := enums[t.Type]; isEnum {
					col := ColumnName(t.Name)
					def := fmt.Sprintf("%s %s", sqlIdent(col), listOf(sqlIdent(TypeName(t.Type)), t.IsList))
					if t.IsRequired {
						def += " not null"
					}
					if err := addCol(t.Name, col, def); err != nil {
						return nil, err
					}
					continue
				}
				target, ok := models[t.Type]
				if !ok {
					return nil, fmt.Errorf("%s.%s: relation target %q is neither a model nor an enum", m.Name, t.Name, t.Type)
				}
				if t.IsList {
					continue
				}
				pk, ok := primaryKey(target)
				if !ok {
					return nil, fmt.Errorf("%s.%s: relation target %q has no @id field", m.Name, t.Name, t.Type)
				}
				pkType, _ := scalarType(pk.Type)
				col := ColumnName(t.Name) + "_id"
				def := fmt.Sprintf("%s %s", sqlIdent(col), pkType)
				if t.IsRequired {
					def += " not null"
				}
				if err := addCol(t.Name, col, def); err != nil {
					return nil, err
				}
				fks = append(fks, fkStmt{
					table:    tbl,
					name:     tbl + "_" + col + "_fk",
					col:      col,
					refTable: TableName(target.Name),
					refCol:   ColumnName(pk.Name),
				})
			}
		}

		out = append(out, fmt.Sprintf("create table if not exists %s (\n  %s\n);",
			sqlIdent(tbl), strings.Join(cols, ",\n  ")))
	}

	out = append(out, uniques...)

	// --- foreign keys ---
	for _, fk := range fks {
		out = append(out, fmt.Sprintf(
			"alter table %s add constraint %s foreign key (%s) references %s(%s) on delete restrict;",
			sqlIdent(fk.table), sqlIdent(fk.name), sqlIdent(fk.col), sqlIdent(fk.refTable), sqlIdent(fk.refCol)))
	}
	return out, nil
}

func primaryKey(m prisma.Model) (*prisma.ScalarField, bool) {
	for _, f := range m.Fields {
		if sf, ok := f.(*prisma.ScalarField); ok && sf.IsID {
			return sf, true
		}
	}
	return nil, false
}
