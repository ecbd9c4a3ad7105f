//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"modcalc/hal"
)

var (
	bootDiagMu    sync.Mutex
	bootDiagStep  string
	bootDiagSteps int
)

func bootDiagSetStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagSteps++
	bootDiagMu.Unlock()
}

// bootDiagStart mirrors the current boot step to the logger and USB CDC:
// immediately when it changes and once a second otherwise, so a console
// attached late still sees where startup stands.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()

	go func() {
		seen := -1
		quiet := 0
		for {
			bootDiagMu.Lock()
			step, n := bootDiagStep, bootDiagSteps
			bootDiagMu.Unlock()

			if n != seen || quiet >= 10 {
				seen, quiet = n, 0
				line := "bootdiag: " + step
				if l != nil {
					l.WriteLineString(line)
				}
				if usb := machine.USBCDC; usb != nil {
					_, _ = usb.Write([]byte(line + "\r\n"))
				}
			}
			quiet++
			time.Sleep(100 * time.Millisecond)
		}
	}()
}
