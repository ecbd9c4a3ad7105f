//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct{ fb Framebuffer }

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct{ kbd Keyboard }

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

// msClock publishes milliseconds since boot. The reading comes from the
// monotonic clock, so a stalled consumer sees a jump rather than drift.
type msClock struct {
	ch chan uint64
}

func newMsClock() *msClock {
	c := &msClock{ch: make(chan uint64, 1)}
	start := time.Now()
	go func() {
		var last uint64
		for {
			time.Sleep(time.Millisecond)
			ms := uint64(time.Since(start)/time.Millisecond) + 1
			if ms == last {
				continue
			}
			last = ms
			select {
			case <-c.ch:
			default:
			}
			select {
			case c.ch <- ms:
			default:
			}
		}
	}()
	return c
}

func (c *msClock) Ticks() <-chan uint64 { return c.ch }

// uartLogger writes CRLF-terminated lines to UART0 (GP0 TX, GP1 RX, 115200 8N1).
type uartLogger struct {
	uart *machine.UART
}

func newUARTLogger() *uartLogger {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &uartLogger{uart: uart}
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.eol()
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.eol()
}

func (l *uartLogger) eol() {
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
