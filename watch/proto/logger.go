package proto

import "unicode/utf8"

// LogLinePayload encodes a MsgLogLine payload: the line without trailing
// newlines, cut to at most limit bytes on a rune boundary.
func LogLinePayload(line string, limit int) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if limit >= 0 && len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}
