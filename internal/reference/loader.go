package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOptionSetCatalog читает все справочники вариантов из dir (*.yaml, *.yml).
// Отсутствующая папка — пустой каталог.
func LoadOptionSetCatalog(dir string) (Catalog, error) {
	result := make(Catalog)
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if file.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var set OptionSet
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		// Имя справочника — из set.Name или из имени файла
		if set.Name == "" {
			set.Name = strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		}
		if _, dup := result[set.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate option set %q", path, set.Name)
		}
		result[set.Name] = set
	}
	return result, nil
}
