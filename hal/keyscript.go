package hal

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxKeyRepeat bounds the repeat count of one key script token.
const MaxKeyRepeat = 10000

// ParseKeyScript parses a comma-separated list of button names into press
// and release events. A token may carry a repeat count of at most
// MaxKeyRepeat: "up*5".
//
// Accepted names: up, down, select, back (and u, d, s, b).
func ParseKeyScript(s string) ([]KeyEvent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []KeyEvent
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(strings.ToLower(tok))
		if tok == "" {
			continue
		}
		n := 1
		if i := strings.IndexByte(tok, '*'); i >= 0 {
			v, err := strconv.Atoi(tok[i+1:])
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("key script: bad repeat in %q", tok)
			}
			if v > MaxKeyRepeat {
				return nil, fmt.Errorf("key script: repeat in %q above %d", tok, MaxKeyRepeat)
			}
			n = v
			tok = tok[:i]
		}
		code, ok := parseKeyName(tok)
		if !ok {
			return nil, fmt.Errorf("key script: unknown key %q", tok)
		}
		for i := 0; i < n; i++ {
			out = append(out, KeyEvent{Code: code, Press: true}, KeyEvent{Code: code, Press: false})
		}
	}
	return out, nil
}

func parseKeyName(s string) (KeyCode, bool) {
	switch s {
	case "up", "u":
		return KeyUp, true
	case "down", "d":
		return KeyDown, true
	case "select", "s":
		return KeySelect, true
	case "back", "b":
		return KeyBack, true
	default:
		return KeyUnknown, false
	}
}
