package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionSetCatalog(t *testing.T) {
	cat, err := LoadOptionSetCatalog("testdata/optionsets")
	require.NoError(t, err)
	assert.Equal(t, []string{"OrderStatus", "tags"}, cat.Names())

	assert.Equal(t, []string{"New", "Shipped", "Closed"}, cat["OrderStatus"].Codes())
	assert.Equal(t, "Опт", cat["tags"].Items[1].Name)
}

func TestLoadOptionSetCatalog_MissingDir(t *testing.T) {
	cat, err := LoadOptionSetCatalog(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, cat)
}

func TestLoadOptionSetCatalog_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: S\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: S\n"), 0o644))
	_, err := LoadOptionSetCatalog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate option set")

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "x.yml"), []byte("items: [oops"), 0o644))
	_, err = LoadOptionSetCatalog(bad)
	require.Error(t, err)
}

func TestCodes_StableByOrder(t *testing.T) {
	s := OptionSet{Items: []Option{{Code: "b", Order: 2}, {Code: "a"}, {Code: "c", Order: 2}}}
	assert.Equal(t, []string{"a", "b", "c"}, s.Codes())
}
