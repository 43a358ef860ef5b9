// Package dsl читает описания сущностей из *.dsl файлов.
//
//	entity Customer:
//	  id: Id
//	  orders: Lookup related=Order multiple
//	  status: OptionSet options=CustomerStatus
//	  active: TwoOptions first=Yes second=No default=No  # комментарий
package dsl

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"schemagen/internal/entity"
)

var (
	entityRe = regexp.MustCompile(`^entity\s+(\w+)\s*:$`)
	fieldRe  = regexp.MustCompile(`^([\w_]+):\s*([^\s#]+)(.*)$`)
)

// splitOptionTokens делит "k=v k2='v 2'" на токены, не рвёт по пробелам внутри кавычек
func splitOptionTokens(s string) []string {
	var out []string
	var buf []rune
	inSingle, inDouble := false, false

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	for _, r := range s {
		switch r {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
			buf = append(buf, r)
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
			buf = append(buf, r)
		default:
			if (r == ' ' || r == '\t') && !inSingle && !inDouble {
				flush()
				continue
			}
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

// stripComment срезает "# ..." вне кавычек
func stripComment(s string) string {
	inSingle, inDouble := false, false
	for i, r := range s {
		switch r {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return s[:i]
			}
		}
	}
	return s
}

func parseOptions(raw string) map[string]string {
	opts := map[string]string{}
	raw = strings.ReplaceAll(raw, ",", " ")
	for _, tok := range splitOptionTokens(raw) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		// флаг без значения → "true"
		if !strings.Contains(tok, "=") {
			opts[strings.ToLower(tok)] = "true"
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if len(v) >= 2 {
			if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
				v = v[1 : len(v)-1]
			}
		}
		if k != "" {
			opts[k] = v
		}
	}
	return opts
}

// синонимы ключей опций
var optionAliases = map[string]string{
	"related_entity": "related",
	"ref":            "related",
	"option_set":     "options",
	"optionset":      "options",
	"first_option":   "first",
	"second_option":  "second",
}

func allowedOptions(dt entity.DataType) map[string]bool {
	switch dt {
	case entity.Lookup:
		return map[string]bool{"related": true, "multiple": true}
	case entity.OptionSet, entity.MultiSelectOptionSet:
		return map[string]bool{"options": true}
	case entity.TwoOptions:
		return map[string]bool{"first": true, "second": true, "default": true}
	default:
		return map[string]bool{}
	}
}

// buildProperties собирает payload поля по тегу типа
func buildProperties(dt entity.DataType, opts map[string]string) (entity.Properties, error) {
	allowed := allowedOptions(dt)
	for k := range opts {
		if !allowed[k] {
			return nil, fmt.Errorf("option %q is not allowed for %s", k, dt)
		}
	}
	switch entity.PropertiesFor(dt).(type) {
	case entity.LookupProperties:
		multiple := false
		if v, ok := opts["multiple"]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("multiple: %w", err)
			}
			multiple = b
		}
		return entity.LookupProperties{RelatedEntityID: opts["related"], AllowMultipleSelection: multiple}, nil
	case entity.OptionSetProperties:
		return entity.OptionSetProperties{OptionsSetID: opts["options"]}, nil
	case entity.TwoOptionsProperties:
		return entity.TwoOptionsProperties{
			FirstOption:  opts["first"],
			SecondOption: opts["second"],
			Default:      opts["default"],
		}, nil
	default:
		return entity.NoProperties{}, nil
	}
}

// ParseEntities читает сущности из r; name — для сообщений об ошибках.
func ParseEntities(r io.Reader, name string) ([]*entity.Entity, error) {
	var entities []*entity.Entity
	var current *entity.Entity

	closeCurrent := func() error {
		if current == nil {
			return nil
		}
		if err := current.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		entities = append(entities, current)
		return nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}

		// entity <Name>:
		if m := entityRe.FindStringSubmatch(line); m != nil {
			if err := closeCurrent(); err != nil {
				return nil, err
			}
			current = &entity.Entity{Name: m[1]}
			continue
		}

		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%s:%d: cannot parse %q", name, lineNo, line)
		}
		if current == nil {
			return nil, fmt.Errorf("%s:%d: field %q outside of entity", name, lineNo, m[1])
		}

		dt := entity.DataType(m[2])
		if !dt.Known() {
			return nil, fmt.Errorf("%s:%d: %s: %w: %s", name, lineNo, m[1], entity.ErrUnsupportedDataType, m[2])
		}

		opts := map[string]string{}
		for k, v := range parseOptions(m[3]) {
			if alias, ok := optionAliases[k]; ok {
				k = alias
			}
			opts[k] = v
		}
		props, err := buildProperties(dt, opts)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", name, lineNo, m[1], err)
		}
		f, err := entity.NewField(m[1], dt, props)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, entity.WithEntity(err, current.Name))
		}
		current.Fields = append(current.Fields, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := closeCurrent(); err != nil {
		return nil, err
	}
	return entities, nil
}

// LoadEntities читает один .dsl файл
func LoadEntities(path string) ([]*entity.Entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseEntities(file, path)
}

// LoadAllEntities обходит root (лексикографически) и собирает сущности
// в порядке файл → объявление. Имя сущности уникально глобально.
func LoadAllEntities(root string) ([]*entity.Entity, error) {
	var result []*entity.Entity
	seen := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".dsl") {
			return nil
		}

		ents, err := LoadEntities(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		for _, e := range ents {
			if prev, exists := seen[e.Name]; exists {
				return fmt.Errorf("duplicate entity %q in %s (first declared in %s)", e.Name, path, prev)
			}
			seen[e.Name] = path
			result = append(result, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
