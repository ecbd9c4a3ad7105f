package app

import (
	"fmt"
	"io"

	"modcalc/hal"
	"modcalc/internal/buildinfo"
	"modcalc/watch/kernel"
	"modcalc/watch/persist"
	"modcalc/watch/proto"
	"modcalc/watch/services/buttons"
	"modcalc/watch/services/logger"
	"modcalc/watch/tasks/modcalc"
	"modcalc/watch/wm"
)

// Store backends.
const (
	StoreFlash  = "flash"
	StoreSQLite = "sqlite"
)

type Config struct {
	// Store selects the persistence backend: StoreFlash or StoreSQLite.
	Store string
	// DBPath is the SQLite database file for StoreSQLite.
	DBPath string

	RepeatIntervalMs uint16
	RepeatDelayMs    uint32

	// StepBudget bounds kernel steps per System.Step.
	StepBudget int
}

func DefaultConfig() Config {
	return Config{
		Store:            StoreFlash,
		DBPath:           "modcalc.db",
		RepeatIntervalMs: 50,
		RepeatDelayMs:    wm.DefaultRepeatDelayMs,
		StepBudget:       256,
	}
}

// System is the assembled watch: kernel, services and the app task.
// It implements hal.App.
type System struct {
	h   hal.HAL
	cfg Config
	k   *kernel.Kernel

	ticks <-chan uint64

	ui    *wm.UI
	task  *modcalc.Task
	appID kernel.TaskID
	appEP kernel.Capability

	store  persist.Store
	closer io.Closer

	closed bool
}

var _ hal.App = (*System)(nil)

// New starts the system with the default config.
func New(h hal.HAL) (*System, error) {
	return NewWithConfig(h, DefaultConfig())
}

func NewWithConfig(h hal.HAL, cfg Config) (*System, error) {
	if h == nil {
		return nil, fmt.Errorf("app: nil HAL")
	}
	def := DefaultConfig()
	if cfg.Store == "" {
		cfg.Store = def.Store
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = def.StepBudget
	}
	if cfg.RepeatDelayMs == 0 {
		cfg.RepeatDelayMs = def.RepeatDelayMs
	}

	s := &System{h: h, cfg: cfg, k: kernel.New()}
	installPanicHandler(h, s.k)

	log := h.Logger()
	if log != nil {
		log.WriteLineString(fmt.Sprintf("modcalc %s store=%s", buildinfo.Describe(), cfg.Store))
	}

	store, closer, err := openStore(h, cfg)
	if err != nil {
		// The app still runs on defaults; it just cannot remember anything.
		if log != nil {
			log.WriteLineString(fmt.Sprintf("persist: %v; running without storage", err))
		}
		store, closer = nil, nil
	}
	s.store, s.closer = store, closer

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	s.ui = wm.New(fb)
	s.ui.SetRepeatDelay(cfg.RepeatDelayMs)

	logEP := s.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	s.appEP = s.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s.k.AddTask(logger.New(log, logEP.Restrict(kernel.RightRecv)))
	s.k.AddTask(buttons.New(h.Input(), s.appEP.Restrict(kernel.RightSend)))

	s.task = modcalc.New(s.ui, store, s.appEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), modcalc.Config{
		RepeatIntervalMs: cfg.RepeatIntervalMs,
	})
	s.appID = s.k.AddTask(s.task)
	if s.appID == kernel.NoTask {
		s.closeStore()
		return nil, fmt.Errorf("app: kernel task table full")
	}

	if t := h.Time(); t != nil {
		s.ticks = t.Ticks()
	}
	return s, nil
}

// Step advances the kernel clock to the newest HAL tick and runs tasks
// until idle. It returns hal.ErrExit once the app task has finished.
func (s *System) Step() error {
	if s.closed {
		return hal.ErrExit
	}
	s.drainTicks()
	s.k.RunUntilIdle(s.cfg.StepBudget)

	if p, ok := s.k.Panicked(); ok {
		return fmt.Errorf("task %d panicked: %v", p.TaskID, p.Value)
	}
	if !s.k.Alive(s.appID) {
		return hal.ErrExit
	}
	return nil
}

func (s *System) drainTicks() {
	if s.ticks == nil {
		return
	}
	for {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
		default:
			return
		}
	}
}

// waitTick blocks until the next HAL tick. It reports false when the HAL
// has no tick source.
func (s *System) waitTick() bool {
	if s.ticks == nil {
		return false
	}
	seq, ok := <-s.ticks
	if !ok {
		s.ticks = nil
		return false
	}
	s.k.TickTo(seq)
	return true
}

// Close asks a running app to shut down (it persists its state), lets the
// logger drain and releases the store.
func (s *System) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	const maxRounds = 16
	posted := false
	for i := 0; i < maxRounds && s.k.Alive(s.appID) && !s.crashed(); i++ {
		if !posted {
			posted = s.k.Post(s.appEP, uint16(proto.MsgShutdown), nil) == kernel.SendOK
		}
		s.k.RunUntilIdle(s.cfg.StepBudget)
	}
	s.k.RunUntilIdle(s.cfg.StepBudget)

	var err error
	if s.k.Alive(s.appID) && !s.crashed() {
		err = fmt.Errorf("app: task did not shut down")
	}
	if cerr := s.closeStore(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (s *System) crashed() bool {
	_, ok := s.k.Panicked()
	return ok
}

func (s *System) closeStore() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Percent reports the app's current oxygen percentage.
func (s *System) Percent() int { return s.task.Percent() }

// UI exposes the window toolkit state, e.g. for leak checks.
func (s *System) UI() *wm.UI { return s.ui }

// Store returns the persistence backend, or nil when none could be opened.
func (s *System) Store() persist.Store { return s.store }
