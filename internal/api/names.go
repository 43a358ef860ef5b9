// api/names.go
package api

import (
	"strings"

	"schemagen/internal/entity"
)

// FindEntity ищет сущность по имени: сначала точное совпадение,
// затем регистронезависимое — но только если оно единственное.
func (s *Storage) FindEntity(name string) (*entity.Entity, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	entities, _ := s.Snapshot()

	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}

	var found *entity.Entity
	for _, e := range entities {
		if strings.EqualFold(e.Name, name) {
			if found != nil { // неуникально
				return nil, false
			}
			found = e
		}
	}
	return found, found != nil
}
