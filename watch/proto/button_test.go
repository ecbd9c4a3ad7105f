package proto

import "testing"

func TestButtonPayload(t *testing.T) {
	for id := ButtonBack; id < NumButtons; id++ {
		for _, press := range []bool{true, false} {
			got, gotPress, ok := DecodeButtonPayload(ButtonPayload(id, press))
			if !ok || got != id || gotPress != press {
				t.Fatalf("decode(%s,%v) = (%s,%v,%v)", id, press, got, gotPress, ok)
			}
		}
	}
}

func TestDecodeButtonPayloadRejects(t *testing.T) {
	bad := [][]byte{
		nil,
		{0},
		{byte(NumButtons), 1},
		{0, 2},
		{0, 1, 0},
	}
	for _, b := range bad {
		if _, _, ok := DecodeButtonPayload(b); ok {
			t.Fatalf("DecodeButtonPayload(%v) accepted", b)
		}
	}
}
