package buttons

import (
	"modcalc/hal"
	"modcalc/watch/kernel"
	"modcalc/watch/proto"
)

// maxPerStep bounds how many events one step forwards.
const maxPerStep = 8

// Service forwards HAL key events to the foreground app as MsgButton.
//
// It polls the keyboard once per tick. Events that do not fit the app's
// mailbox stay pending and are retried on the next tick, so press/release
// order is preserved.
type Service struct {
	in     hal.Input
	outCap kernel.Capability

	events  <-chan hal.KeyEvent
	pending []hal.KeyEvent
}

func New(in hal.Input, appCap kernel.Capability) *Service {
	return &Service{in: in, outCap: appCap}
}

func (s *Service) Step(ctx *kernel.Context) {
	if s.events == nil {
		if s.in != nil {
			if kbd := s.in.Keyboard(); kbd != nil {
				s.events = kbd.Events()
			}
		}
		if s.events == nil {
			ctx.Exit()
			return
		}
	}

	s.collect()
	s.flush(ctx)
	ctx.BlockOnTick()
}

func (s *Service) collect() {
	for len(s.pending) < maxPerStep {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			if _, known := ButtonFor(ev.Code); known {
				s.pending = append(s.pending, ev)
			}
		default:
			return
		}
	}
}

func (s *Service) flush(ctx *kernel.Context) {
	sent := 0
	for _, ev := range s.pending {
		id, _ := ButtonFor(ev.Code)
		res := ctx.Send(s.outCap, uint16(proto.MsgButton), proto.ButtonPayload(id, ev.Press))
		if res == kernel.SendErrQueueFull {
			break
		}
		// Other failures drop the event; there is nobody to report them to.
		sent++
	}
	s.pending = append(s.pending[:0], s.pending[sent:]...)
}

// ButtonFor maps a HAL key code onto a watch button.
func ButtonFor(code hal.KeyCode) (proto.ButtonID, bool) {
	switch code {
	case hal.KeyBack:
		return proto.ButtonBack, true
	case hal.KeyUp:
		return proto.ButtonUp, true
	case hal.KeySelect:
		return proto.ButtonSelect, true
	case hal.KeyDown:
		return proto.ButtonDown, true
	default:
		return 0, false
	}
}
