//go:build !tinygo

package hal

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type countingApp struct {
	steps  int
	exitAt int
}

func (a *countingApp) Step() error {
	a.steps++
	if a.exitAt > 0 && a.steps >= a.exitAt {
		return ErrExit
	}
	return nil
}

func (a *countingApp) Close() error { return nil }

func newTermModel(t *testing.T, app App) *termModel {
	t.Helper()
	h := newHostHAL(HostConfig{
		Width:     8,
		Height:    8,
		FlashPath: filepath.Join(t.TempDir(), "t.flash"),
		Log:       io.Discard,
	})
	t.Cleanup(func() { h.close() })
	return &termModel{h: h, app: app, period: 1, step: 1}
}

func TestTerminalKeysBecomeClicks(t *testing.T) {
	m := newTermModel(t, &countingApp{})

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	want := []KeyEvent{
		{Code: KeyUp, Press: true},
		{Code: KeyUp, Press: false},
		{Code: KeyBack, Press: true},
		{Code: KeyBack, Press: false},
	}
	for i, w := range want {
		select {
		case got := <-m.h.kbd.Events():
			if got != w {
				t.Fatalf("event %d = %+v, want %+v", i, got, w)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}
	select {
	case ev := <-m.h.kbd.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestTerminalFrameStepsUntilExit(t *testing.T) {
	app := &countingApp{exitAt: 2}
	m := newTermModel(t, app)

	if _, cmd := m.Update(termFrameMsg{}); cmd == nil {
		t.Fatalf("frame did not schedule the next frame")
	}
	_, cmd := m.Update(termFrameMsg{})
	if cmd == nil {
		t.Fatalf("exit did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("exit cmd returned %T, want tea.QuitMsg", cmd())
	}
	if m.err != nil {
		t.Fatalf("ErrExit recorded as failure: %v", m.err)
	}
}

func TestTerminalViewSize(t *testing.T) {
	m := newTermModel(t, &countingApp{})
	m.h.fb.ClearRGB(255, 0, 0)
	v := m.View()
	if v == "" {
		t.Fatalf("empty view")
	}
	if len(m.styles) != 1 {
		t.Fatalf("styles cached=%d, want 1 for a uniform frame", len(m.styles))
	}
}
