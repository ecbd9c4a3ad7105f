package proto

// ButtonID names a physical watch button.
type ButtonID uint8

const (
	ButtonBack ButtonID = iota
	ButtonUp
	ButtonSelect
	ButtonDown

	NumButtons
)

func (b ButtonID) String() string {
	switch b {
	case ButtonBack:
		return "back"
	case ButtonUp:
		return "up"
	case ButtonSelect:
		return "select"
	case ButtonDown:
		return "down"
	default:
		return "unknown"
	}
}

// ButtonPayload encodes a MsgButton payload.
//
// Payload format:
//
//	b[0] : ButtonID
//	b[1] : 1 = pressed, 0 = released
func ButtonPayload(id ButtonID, press bool) []byte {
	b := []byte{byte(id), 0}
	if press {
		b[1] = 1
	}
	return b
}

func DecodeButtonPayload(b []byte) (id ButtonID, press bool, ok bool) {
	if len(b) != 2 || ButtonID(b[0]) >= NumButtons || b[1] > 1 {
		return 0, false, false
	}
	return ButtonID(b[0]), b[1] == 1, true
}
