package logger

import (
	"fmt"

	"modcalc/hal"
	"modcalc/watch/kernel"
	"modcalc/watch/proto"
)

// Service writes log lines received over IPC to the HAL logger, stamped
// with the kernel tick as seconds.milliseconds.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
	buf []byte
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	msg, ok := ctx.Recv(s.ep)
	if !ok {
		return
	}
	if s.log == nil {
		return
	}
	if msg.Kind != uint16(proto.MsgLogLine) {
		return
	}
	now := ctx.NowTick()
	s.buf = fmt.Appendf(s.buf[:0], "[%4d.%03d] ", now/1000, now%1000)
	s.buf = append(s.buf, msg.Payload()...)
	s.log.WriteLineBytes(s.buf)
}
