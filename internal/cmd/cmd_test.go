package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestExportCatalogCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_DSN", filepath.Join(dir, "shop.sqlite"))
	t.Setenv("APP_ENV", "development")
	out := filepath.Join(dir, "catalog.xlsx")

	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"export-catalog", "--out", out})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(out)
	require.NoError(t, err)
	f, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	sheet, found := f.Sheet["Products"]
	require.True(t, found)
	assert.Len(t, sheet.Rows, 7)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].String())
}
