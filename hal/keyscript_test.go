package hal

import "testing"

func TestParseKeyScript(t *testing.T) {
	evs, err := ParseKeyScript("up*2, down,b")
	if err != nil {
		t.Fatalf("ParseKeyScript: %v", err)
	}
	want := []KeyEvent{
		{Code: KeyUp, Press: true}, {Code: KeyUp},
		{Code: KeyUp, Press: true}, {Code: KeyUp},
		{Code: KeyDown, Press: true}, {Code: KeyDown},
		{Code: KeyBack, Press: true}, {Code: KeyBack},
	}
	if len(evs) != len(want) {
		t.Fatalf("len=%d, want %d: %+v", len(evs), len(want), evs)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, evs[i], want[i])
		}
	}
}

func TestParseKeyScriptErrors(t *testing.T) {
	for _, in := range []string{"left", "up*0", "up*x", "down*-1", "up*10001", "up*1000000000"} {
		if _, err := ParseKeyScript(in); err == nil {
			t.Fatalf("ParseKeyScript(%q): expected error", in)
		}
	}
}

func TestParseKeyScriptEmpty(t *testing.T) {
	evs, err := ParseKeyScript("  ")
	if err != nil || evs != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", evs, err)
	}
}

func TestParseKeyScriptMaxRepeat(t *testing.T) {
	evs, err := ParseKeyScript("down*10000")
	if err != nil {
		t.Fatalf("ParseKeyScript: %v", err)
	}
	if len(evs) != 2*MaxKeyRepeat {
		t.Fatalf("len=%d, want %d", len(evs), 2*MaxKeyRepeat)
	}
}
