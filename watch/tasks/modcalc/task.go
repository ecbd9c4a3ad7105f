package modcalc

import (
	"fmt"

	"modcalc/watch/client/logger"
	"modcalc/watch/kernel"
	"modcalc/watch/persist"
	"modcalc/watch/proto"
	"modcalc/watch/wm"
)

// Config tunes the app. Zero fields take the defaults.
type Config struct {
	// RepeatIntervalMs is how often Up/Down repeat while held.
	RepeatIntervalMs uint16

	IconPlus  wm.ResourceID
	IconMinus wm.ResourceID
}

const defaultRepeatIntervalMs = 50

func (c Config) withDefaults() Config {
	if c.RepeatIntervalMs == 0 {
		c.RepeatIntervalMs = defaultRepeatIntervalMs
	}
	if c.IconPlus == 0 {
		c.IconPlus = wm.ResourceActionIconPlus
	}
	if c.IconMinus == 0 {
		c.IconMinus = wm.ResourceActionIconMinus
	}
	return c
}

// state is everything the app owns between init and deinit.
type state struct {
	counter Counter

	window    *wm.Window
	actionBar *wm.ActionBarLayer

	header *wm.TextLayer
	body   *wm.TextLayer
	label  *wm.TextLayer

	iconPlus  *wm.Bitmap
	iconMinus *wm.Bitmap
}

// Task runs the app on the kernel.
//
// It receives MsgButton and MsgShutdown on its endpoint. It exits when its
// window leaves the stack or on shutdown, persisting the percentage either
// way.
type Task struct {
	ui     *wm.UI
	store  persist.Store
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	st       *state
	started  bool
	shutdown bool
}

func New(ui *wm.UI, store persist.Store, ep, logCap kernel.Capability, cfg Config) *Task {
	return &Task{
		ui:     ui,
		store:  store,
		ep:     ep,
		logCap: logCap,
		cfg:    cfg.withDefaults(),
	}
}

// Percent returns the current percentage, or the default before init.
func (t *Task) Percent() int {
	if t.st == nil {
		return DefaultPercent
	}
	return t.st.counter.Value()
}

func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		t.started = true
		if err := t.init(ctx); err != nil {
			logger.Logf(ctx, t.logCap, "modcalc: init: %v", err)
			ctx.Exit()
			return
		}
	}

	now := ctx.NowTick()
	t.ui.Tick(now)

	for !t.shutdown && !t.ui.Stack().Empty() {
		msg, ok := ctx.Recv(t.ep)
		if !ok {
			break
		}
		t.handle(now, msg)
	}

	if t.shutdown || t.ui.Stack().Empty() {
		t.deinit(ctx)
		t.render(ctx)
		ctx.Exit()
		return
	}

	t.render(ctx)
	if _, held := t.ui.NextRepeat(); held {
		ctx.BlockOnTick()
	}
}

func (t *Task) handle(now uint64, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgButton:
		id, press, ok := proto.DecodeButtonPayload(msg.Payload())
		if !ok {
			return
		}
		t.ui.HandleButton(now, id, press)
	case proto.MsgShutdown:
		t.shutdown = true
	}
}

func (t *Task) render(ctx *kernel.Context) {
	if err := t.ui.Render(); err != nil {
		logger.Logf(ctx, t.logCap, "modcalc: render: %v", err)
	}
}

// init builds the app. On failure everything it created is released and
// the task is left without state.
func (t *Task) init(ctx *kernel.Context) error {
	st := &state{}
	t.st = st
	fail := func(err error) error {
		t.releaseAll()
		t.st = nil
		return err
	}

	var err error
	st.iconPlus, err = t.ui.LoadBitmap(t.cfg.IconPlus)
	if err != nil {
		return fail(fmt.Errorf("plus icon: %w", err))
	}
	st.iconMinus, err = t.ui.LoadBitmap(t.cfg.IconMinus)
	if err != nil {
		return fail(fmt.Errorf("minus icon: %w", err))
	}

	st.window = t.ui.NewWindow()
	st.window.SetWindowHandlers(wm.WindowHandlers{
		Load:   t.windowLoad,
		Unload: t.windowUnload,
	})

	persisted := t.store != nil && t.store.Exists(PersistKey)
	st.counter = NewCounter(int(persist.ReadIntOr(t.store, PersistKey, DefaultPercent)))
	if persisted {
		logger.Logf(ctx, t.logCap, "modcalc: loaded percent=%d", st.counter.Value())
	} else {
		logger.Logf(ctx, t.logCap, "modcalc: no saved percent, using %d", st.counter.Value())
	}

	if err := t.ui.Stack().Push(st.window); err != nil {
		return fail(fmt.Errorf("push window: %w", err))
	}
	return nil
}

func (t *Task) deinit(ctx *kernel.Context) {
	if t.st == nil {
		return
	}
	v := t.st.counter.Value()
	if t.store != nil {
		if err := t.store.WriteInt(PersistKey, int32(v)); err != nil {
			logger.Logf(ctx, t.logCap, "modcalc: save percent=%d: %v", v, err)
		} else {
			logger.Logf(ctx, t.logCap, "modcalc: saved percent=%d", v)
		}
	}
	t.releaseAll()
}

// releaseAll destroys whatever init created, in reverse order. Destroying
// a window still on the stack runs its unload handler first.
func (t *Task) releaseAll() {
	st := t.st
	if st.window != nil {
		_ = st.window.Destroy()
		st.window = nil
	}
	if st.iconPlus != nil {
		_ = st.iconPlus.Destroy()
		st.iconPlus = nil
	}
	if st.iconMinus != nil {
		_ = st.iconMinus.Destroy()
		st.iconMinus = nil
	}
}

func (t *Task) windowLoad(w *wm.Window) {
	st := t.st

	st.actionBar = t.ui.NewActionBar()
	st.actionBar.AddToWindow(w)
	st.actionBar.SetClickConfigProvider(t.clickConfig)
	st.actionBar.SetIcon(proto.ButtonUp, st.iconPlus)
	st.actionBar.SetIcon(proto.ButtonDown, st.iconMinus)

	root := w.RootLayer()
	width := root.Frame().Size.W - wm.ActionBarWidth - 3

	st.header = t.newText(root, wm.R(4, 0, width, 60), wm.FontGothic24)
	st.header.SetText(headerText)
	st.body = t.newText(root, wm.R(4, 44, width, 60), wm.FontGothic28Bold)
	st.label = t.newText(root, wm.R(4, 44+28, width, 60), wm.FontGothic18)

	t.updateText()
}

func (t *Task) newText(parent *wm.Layer, frame wm.Rect, font wm.FontKey) *wm.TextLayer {
	tl := t.ui.NewTextLayer(frame)
	tl.SetFont(wm.SystemFont(font))
	tl.SetBackgroundColor(wm.ColorClear)
	parent.AddChild(tl.Layer())
	return tl
}

func (t *Task) windowUnload(*wm.Window) {
	st := t.st
	for _, tl := range []*wm.TextLayer{st.header, st.body, st.label} {
		if tl != nil {
			_ = tl.Destroy()
		}
	}
	st.header, st.body, st.label = nil, nil, nil

	if st.actionBar != nil {
		_ = st.actionBar.Destroy()
		st.actionBar = nil
	}
}

func (t *Task) clickConfig(cfg *wm.ClickConfig) {
	cfg.SingleRepeatingClickSubscribe(proto.ButtonUp, t.cfg.RepeatIntervalMs, t.increment)
	cfg.SingleRepeatingClickSubscribe(proto.ButtonDown, t.cfg.RepeatIntervalMs, t.decrement)
}

func (t *Task) increment(proto.ButtonID) {
	if t.st.counter.Increment() {
		t.updateText()
	}
}

func (t *Task) decrement(proto.ButtonID) {
	if t.st.counter.Decrement() {
		t.updateText()
	}
}

func (t *Task) updateText() {
	st := t.st
	p := st.counter.Value()
	if st.body != nil {
		st.body.SetText(BodyText(p))
	}
	if st.label != nil {
		st.label.SetText(LabelText(p))
	}
}

// BodyShown and LabelShown return the texts on screen, or "" while the
// window is not loaded.
func (t *Task) BodyShown() string {
	if t.st == nil || t.st.body == nil {
		return ""
	}
	return t.st.body.Text()
}

func (t *Task) LabelShown() string {
	if t.st == nil || t.st.label == nil {
		return ""
	}
	return t.st.label.Text()
}
