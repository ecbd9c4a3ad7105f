package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgButton
	MsgShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgButton:
		return "button"
	case MsgShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
