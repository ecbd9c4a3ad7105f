//go:build !tinygo

package app

import (
	"os"

	"modcalc/hal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/juju/errors"
)

// FileConfig is the HCL config file. Every field is optional; unset fields
// keep their defaults.
//
//	store              = "sqlite"
//	flash_path         = "modcalc.flash"
//	db_path            = "modcalc.db"
//	repeat_interval_ms = 50
//	repeat_delay_ms    = 400
//
//	display {
//	  width  = 240
//	  height = 240
//	  scale  = 2
//	}
type FileConfig struct {
	Store            *string `hcl:"store,optional"`
	FlashPath        *string `hcl:"flash_path,optional"`
	DBPath           *string `hcl:"db_path,optional"`
	RepeatIntervalMs *int    `hcl:"repeat_interval_ms,optional"`
	RepeatDelayMs    *int    `hcl:"repeat_delay_ms,optional"`

	Display *DisplayConfig `hcl:"display,block"`
}

type DisplayConfig struct {
	Width  *int `hcl:"width,optional"`
	Height *int `hcl:"height,optional"`
	Scale  *int `hcl:"scale,optional"`
}

// HostSettings is everything the host entrypoint needs to start a run.
type HostSettings struct {
	App   Config
	Host  hal.HostConfig
	Scale int
}

func DefaultHostSettings() HostSettings {
	return HostSettings{
		App:   DefaultConfig(),
		Host:  hal.DefaultHostConfig(),
		Scale: 2,
	}
}

// LoadConfigFile reads and decodes an HCL config file.
func LoadConfigFile(path string) (*FileConfig, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	return ParseConfig(path, src)
}

// ParseConfig decodes HCL source; filename is used in diagnostics only.
func ParseConfig(filename string, src []byte) (*FileConfig, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Annotatef(diags, "config %s", filename)
	}
	var fc FileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, errors.Annotatef(diags, "config %s", filename)
	}
	return &fc, nil
}

// Apply overlays the file's values on s and validates the result.
func (fc *FileConfig) Apply(s *HostSettings) error {
	if fc.Store != nil {
		s.App.Store = *fc.Store
	}
	if fc.FlashPath != nil {
		s.Host.FlashPath = *fc.FlashPath
	}
	if fc.DBPath != nil {
		s.App.DBPath = *fc.DBPath
	}
	if v := fc.RepeatIntervalMs; v != nil {
		if *v <= 0 || *v > 0xFFFF {
			return errors.NotValidf("repeat_interval_ms %d", *v)
		}
		s.App.RepeatIntervalMs = uint16(*v)
	}
	if v := fc.RepeatDelayMs; v != nil {
		if *v <= 0 {
			return errors.NotValidf("repeat_delay_ms %d", *v)
		}
		s.App.RepeatDelayMs = uint32(*v)
	}
	if d := fc.Display; d != nil {
		if d.Width != nil {
			s.Host.Width = *d.Width
		}
		if d.Height != nil {
			s.Host.Height = *d.Height
		}
		if d.Scale != nil {
			s.Scale = *d.Scale
		}
	}
	return s.Validate()
}

// Validate checks settings assembled from defaults, file and flags.
func (s *HostSettings) Validate() error {
	switch s.App.Store {
	case StoreFlash, StoreSQLite:
	default:
		return errors.NotValidf("store %q (want %q or %q)", s.App.Store, StoreFlash, StoreSQLite)
	}
	if s.Host.Width <= 0 || s.Host.Height <= 0 || s.Host.Width > 1024 || s.Host.Height > 1024 {
		return errors.NotValidf("display %dx%d", s.Host.Width, s.Host.Height)
	}
	if s.Scale <= 0 || s.Scale > 8 {
		return errors.NotValidf("display scale %d", s.Scale)
	}
	return nil
}
