//go:build !tinygo

package main

import (
	"os"
	"path/filepath"
	"testing"

	"modcalc/app"

	"github.com/stretchr/testify/require"
)

func TestSettingsFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "modcalc.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
store   = "sqlite"
db_path = "from-file.db"
display {
  scale = 3
}
`), 0o644))

	require.NoError(t, rootCmd.Flags().Parse([]string{
		"--config", cfgPath,
		"--db", filepath.Join(dir, "from-flag.db"),
	}))
	s, err := settings(rootCmd)
	require.NoError(t, err)
	require.Equal(t, app.StoreSQLite, s.App.Store)
	require.Equal(t, filepath.Join(dir, "from-flag.db"), s.App.DBPath)
	require.Equal(t, 3, s.Scale)
}
