package app

import (
	"errors"
	"fmt"

	"modcalc/hal"
)

// Run drives the system from the HAL tick stream and never returns
// (TinyGo/native entrypoint). When the app exits it is started again, the
// way a watch returns to its only app.
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	log := func(s string) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(s)
		}
	}
	for {
		bootScreen(h, "starting modcalc")
		s, err := NewWithConfig(h, cfg)
		if err != nil {
			log(fmt.Sprintf("modcalc: %v", err))
			select {}
		}
		err = runLoop(s)
		if cerr := s.Close(); cerr != nil {
			log(fmt.Sprintf("modcalc: close: %v", cerr))
		}
		if !errors.Is(err, hal.ErrExit) {
			// Panic screen stays up.
			log(fmt.Sprintf("modcalc: halted: %v", err))
			select {}
		}
		log("modcalc: app exited, relaunching")
	}
}

func runLoop(s *System) error {
	for {
		if err := s.Step(); err != nil {
			return err
		}
		if !s.waitTick() {
			return fmt.Errorf("modcalc: HAL has no tick source")
		}
	}
}
