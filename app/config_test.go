//go:build !tinygo

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/require"
)

func TestParseConfigFull(t *testing.T) {
	src := []byte(`
store              = "sqlite"
flash_path         = "/tmp/watch.flash"
db_path            = "/tmp/watch.db"
repeat_interval_ms = 80
repeat_delay_ms    = 300

display {
  width  = 144
  height = 168
  scale  = 3
}
`)
	fc, err := ParseConfig("modcalc.hcl", src)
	require.NoError(t, err)

	s := DefaultHostSettings()
	require.NoError(t, fc.Apply(&s))
	require.Equal(t, StoreSQLite, s.App.Store)
	require.Equal(t, "/tmp/watch.db", s.App.DBPath)
	require.Equal(t, "/tmp/watch.flash", s.Host.FlashPath)
	require.Equal(t, uint16(80), s.App.RepeatIntervalMs)
	require.Equal(t, uint32(300), s.App.RepeatDelayMs)
	require.Equal(t, 144, s.Host.Width)
	require.Equal(t, 168, s.Host.Height)
	require.Equal(t, 3, s.Scale)
}

func TestParseConfigEmptyKeepsDefaults(t *testing.T) {
	fc, err := ParseConfig("empty.hcl", nil)
	require.NoError(t, err)

	s := DefaultHostSettings()
	require.NoError(t, fc.Apply(&s))
	require.Equal(t, DefaultHostSettings(), s)
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"syntax":          `store = `,
		"unknown field":   `colour = "red"`,
		"wrong type":      `repeat_interval_ms = "fast"`,
		"unknown block":   `network { }`,
		"bad store":       `store = "floppy"`,
		"zero interval":   `repeat_interval_ms = 0`,
		"huge interval":   `repeat_interval_ms = 70000`,
		"negative delay":  `repeat_delay_ms = -1`,
		"zero width":      "display {\n  width = 0\n}",
		"too large scale": "display {\n  scale = 20\n}",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			fc, err := ParseConfig("bad.hcl", []byte(src))
			if err == nil {
				s := DefaultHostSettings()
				err = fc.Apply(&s)
			}
			require.Error(t, err)
		})
	}
}

func TestApplyReportsNotValid(t *testing.T) {
	fc, err := ParseConfig("bad.hcl", []byte(`store = "floppy"`))
	require.NoError(t, err)
	s := DefaultHostSettings()
	err = fc.Apply(&s)
	require.True(t, errors.IsNotValid(err), "err=%v", err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modcalc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`db_path = "x.db"`), 0o644))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.NotNil(t, fc.DBPath)
	require.Equal(t, "x.db", *fc.DBPath)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}
