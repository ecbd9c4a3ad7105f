//go:build !tinygo

package app

import (
	"fmt"
	"io"

	"modcalc/hal"
	"modcalc/watch/persist"
)

func openStore(h hal.HAL, cfg Config) (persist.Store, io.Closer, error) {
	switch cfg.Store {
	case StoreSQLite:
		db, err := persist.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case StoreFlash:
		s, err := openFlashStore(h)
		return s, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
