package modcalc

import (
	"errors"
	"testing"

	"modcalc/hal"
	"modcalc/watch/kernel"
	"modcalc/watch/persist"
	"modcalc/watch/proto"
	"modcalc/watch/wm"

	"github.com/stretchr/testify/require"
)

type harness struct {
	t     *testing.T
	k     *kernel.Kernel
	fb    *hal.MemFramebuffer
	ui    *wm.UI
	ep    kernel.Capability
	store persist.Store
	task  *Task
	id    kernel.TaskID
}

func newHarness(t *testing.T, store persist.Store, cfg Config) *harness {
	t.Helper()
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	fb := hal.NewMemFramebuffer(240, 240)
	ui := wm.New(fb)
	task := New(ui, store, ep.Restrict(kernel.RightRecv), kernel.Capability{}, cfg)
	h := &harness{t: t, k: k, fb: fb, ui: ui, ep: ep, store: store, task: task}
	h.id = k.AddTask(task)
	h.run()
	return h
}

func newFlashStore(t *testing.T) *persist.FlashStore {
	t.Helper()
	f := hal.NewMemFlash(4096, 4096)
	s, err := persist.OpenFlash(f, 0, 4096)
	require.NoError(t, err)
	return s
}

func (h *harness) run() { h.k.RunUntilIdle(100) }

func (h *harness) post(kind proto.Kind, payload []byte) {
	h.t.Helper()
	require.Equal(h.t, kernel.SendOK, h.k.Post(h.ep, uint16(kind), payload))
	h.run()
}

func (h *harness) button(b proto.ButtonID, press bool) {
	h.post(proto.MsgButton, proto.ButtonPayload(b, press))
}

func (h *harness) click(b proto.ButtonID) {
	h.button(b, true)
	h.button(b, false)
}

func (h *harness) advance(ms uint64) {
	h.k.TickTo(h.k.Now() + ms)
	h.run()
}

func (h *harness) requireShown(percent int) {
	h.t.Helper()
	require.Equal(h.t, percent, h.task.Percent())
	require.Equal(h.t, BodyText(percent), h.task.BodyShown())
	require.Equal(h.t, LabelText(percent), h.task.LabelShown())
}

func (h *harness) requireExitedClean() {
	h.t.Helper()
	require.False(h.t, h.k.Alive(h.id), "task still alive")
	require.Zero(h.t, h.ui.Live(), "leaked %v", h.ui.LiveByKind())
	require.Zero(h.t, h.ui.DoubleReleases())
}

func TestStartsAtDefault(t *testing.T) {
	h := newHarness(t, newFlashStore(t), Config{})
	h.requireShown(21)
	require.Equal(t, "MOD: 187 feet", h.task.LabelShown())
	require.Equal(t, 1, h.fb.Presents())
}

func TestStartsFromPersisted(t *testing.T) {
	s := newFlashStore(t)
	require.NoError(t, s.WriteInt(PersistKey, 32))

	h := newHarness(t, s, Config{})
	h.requireShown(32)
	require.Equal(t, "MOD: 111 feet", h.task.LabelShown())
}

func TestPersistedOutOfRangeIsClamped(t *testing.T) {
	s := newFlashStore(t)
	require.NoError(t, s.WriteInt(PersistKey, 150))

	h := newHarness(t, s, Config{})
	h.requireShown(100)
}

func TestClicksAdjustAndBackPersists(t *testing.T) {
	s := newFlashStore(t)
	h := newHarness(t, s, Config{})

	h.click(proto.ButtonUp)
	h.click(proto.ButtonUp)
	h.click(proto.ButtonUp)
	h.requireShown(24)
	h.click(proto.ButtonDown)
	h.requireShown(23)

	h.click(proto.ButtonSelect)
	h.requireShown(23)

	h.button(proto.ButtonBack, true)
	h.requireExitedClean()

	v, err := s.ReadInt(PersistKey)
	require.NoError(t, err)
	require.Equal(t, int32(23), v)
}

func TestHoldRepeats(t *testing.T) {
	h := newHarness(t, newFlashStore(t), Config{})

	h.button(proto.ButtonUp, true)
	h.requireShown(22)

	h.advance(399)
	h.requireShown(22)
	h.advance(1)
	h.requireShown(23)
	h.advance(49)
	h.requireShown(23)
	h.advance(1)
	h.requireShown(24)
	h.advance(50)
	h.requireShown(25)

	h.button(proto.ButtonUp, false)
	h.advance(1000)
	h.requireShown(25)
}

func TestHoldStopsAtCeiling(t *testing.T) {
	s := newFlashStore(t)
	require.NoError(t, s.WriteInt(PersistKey, 98))
	h := newHarness(t, s, Config{RepeatIntervalMs: 10})

	h.button(proto.ButtonUp, true)
	for i := 0; i < 100; i++ {
		h.advance(10)
	}
	h.requireShown(100)
	h.button(proto.ButtonUp, false)
}

func TestRejectedTransitionDoesNotRedraw(t *testing.T) {
	s := newFlashStore(t)
	require.NoError(t, s.WriteInt(PersistKey, 0))
	h := newHarness(t, s, Config{})
	require.Equal(t, "MOD: 4587 feet", h.task.LabelShown())

	presents := h.fb.Presents()
	h.click(proto.ButtonDown)
	h.requireShown(0)
	require.Equal(t, presents, h.fb.Presents())

	h.click(proto.ButtonUp)
	h.requireShown(1)
	require.Greater(t, h.fb.Presents(), presents)
}

func TestShutdownPersists(t *testing.T) {
	s := newFlashStore(t)
	h := newHarness(t, s, Config{})
	h.click(proto.ButtonDown)

	h.post(proto.MsgShutdown, nil)
	h.requireExitedClean()
	require.Zero(t, h.ui.Stack().Len())

	v, err := s.ReadInt(PersistKey)
	require.NoError(t, err)
	require.Equal(t, int32(20), v)
}

func TestRelaunchSeesSavedValue(t *testing.T) {
	s := newFlashStore(t)
	h := newHarness(t, s, Config{})
	h.click(proto.ButtonUp)
	h.post(proto.MsgShutdown, nil)

	h = newHarness(t, s, Config{})
	h.requireShown(22)
}

func TestInitFailureReleasesEverything(t *testing.T) {
	s := newFlashStore(t)
	require.NoError(t, s.WriteInt(PersistKey, 40))
	h := newHarness(t, s, Config{IconMinus: 999})
	h.requireExitedClean()
	require.Equal(t, DefaultPercent, h.task.Percent())
	require.Empty(t, h.task.BodyShown())
	require.False(t, h.ui.Stack().Empty())
	require.Zero(t, h.ui.Stack().Len())
}

type failingStore struct{ persist.Store }

func (failingStore) WriteInt(persist.Key, int32) error { return errors.New("flash worn out") }

func TestWriteFailureIsIgnored(t *testing.T) {
	h := newHarness(t, failingStore{newFlashStore(t)}, Config{})
	h.click(proto.ButtonUp)
	h.post(proto.MsgShutdown, nil)
	h.requireExitedClean()
}

func TestNilStoreUsesDefault(t *testing.T) {
	h := newHarness(t, nil, Config{})
	h.requireShown(21)
	h.button(proto.ButtonBack, true)
	h.requireExitedClean()
}
