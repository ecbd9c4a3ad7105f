// Package kernel is the watch's cooperative scheduler: tasks take turns
// stepping on one goroutine and talk through fixed-size mailboxes reached
// by capabilities.
package kernel

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// NoTask is returned by AddTask when the task table is full.
const NoTask TaskID = 0xFF

// Rights define which operations a capability allows.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies a mailbox.
type Endpoint uint8

const noEndpoint Endpoint = 0xFF

// Capability grants access to an endpoint. The zero value grants nothing.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) Valid() bool { return c.rights != 0 }

func (c Capability) can(r Rights) bool { return c.rights&r == r }

// Restrict returns c with only the rights in r kept.
func (c Capability) Restrict(r Rights) Capability {
	if c.rights&r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: c.rights & r}
}

// MaxMessageBytes is the maximum payload size of a message.
const MaxMessageBytes = 128

// Message is a fixed-size mailbox entry.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the valid part of Data.
func (m *Message) Payload() []byte {
	return m.Data[:min(int(m.Len), MaxMessageBytes)]
}

// SendResult describes the outcome of a send.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

var sendResultNames = [...]string{
	SendOK:                 "ok",
	SendErrInvalidToCap:    "invalid capability",
	SendErrToNoSendRight:   "capability has no send right",
	SendErrNoEndpoint:      "no such endpoint",
	SendErrPayloadTooLarge: "payload too large",
	SendErrQueueFull:       "queue full",
}

func (r SendResult) String() string {
	if int(r) < len(sendResultNames) {
		return sendResultNames[r]
	}
	return "unknown"
}

// Task is a cooperative unit of execution.
//
// Step must not block: a task that has nothing to do calls Context.Recv or
// Context.BlockOnTick and returns.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q       mailbox
	waiters uint32
}

type taskState struct {
	task     Task
	runnable bool
	waiting  Endpoint
	exited   bool
}

// Kernel owns the task table, the endpoints and the millisecond clock.
//
// It is not safe for concurrent use; one goroutine owns it.
type Kernel struct {
	endpoints [maxEndpoints]endpointState
	nEP       Endpoint

	tasks  [maxTasks]taskState
	nTasks TaskID
	next   TaskID

	now         uint64
	tickWaiters uint32

	onPanic  func(PanicInfo)
	panicked *PanicInfo
}

func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a mailbox. It returns an invalid capability once
// the endpoint table is full.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.nEP >= maxEndpoints {
		return Capability{}
	}
	ep := k.nEP
	k.nEP++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a runnable task and returns its ID, or NoTask when full.
func (k *Kernel) AddTask(t Task) TaskID {
	if t == nil || k.nTasks >= maxTasks {
		return NoTask
	}
	id := k.nTasks
	k.nTasks++
	k.tasks[id] = taskState{task: t, runnable: true, waiting: noEndpoint}
	return id
}

// Alive reports whether the task exists and has neither exited nor panicked.
func (k *Kernel) Alive(id TaskID) bool {
	return id < k.nTasks && !k.tasks[id].exited
}

// Now returns the current time in milliseconds.
func (k *Kernel) Now() uint64 { return k.now }

// Step runs one step of the next runnable task, round robin, and reports
// whether a task ran.
func (k *Kernel) Step() bool {
	for i := TaskID(0); i < k.nTasks; i++ {
		id := (k.next + i) % k.nTasks
		st := &k.tasks[id]
		if !st.runnable || st.exited {
			continue
		}
		k.next = (id + 1) % k.nTasks

		ctx := &Context{k: k, id: id, recvOn: noEndpoint}
		k.runStep(id, st, ctx)
		k.park(id, st, ctx)
		return true
	}
	return false
}

func (k *Kernel) runStep(id TaskID, st *taskState, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			ctx.exited = true
			k.recordPanic(id, r)
		}
	}()
	st.task.Step(ctx)
}

// park applies what the task asked for during its step. A task that
// neither exited nor waited stays runnable.
func (k *Kernel) park(id TaskID, st *taskState, ctx *Context) {
	if ctx.exited {
		st.exited = true
		st.runnable = false
		return
	}
	if !ctx.onTick && ctx.recvOn == noEndpoint {
		return
	}
	st.runnable = false
	if ctx.onTick {
		k.tickWaiters |= 1 << id
	}
	if ctx.recvOn < k.nEP {
		st.waiting = ctx.recvOn
		k.endpoints[ctx.recvOn].waiters |= 1 << id
	}
}

// RunUntilIdle steps tasks until none is runnable or budget steps ran.
// It returns the number of steps taken.
func (k *Kernel) RunUntilIdle(budget int) int {
	n := 0
	for n < budget && k.Step() {
		n++
	}
	return n
}

// Tick advances the clock by one millisecond.
func (k *Kernel) Tick() { k.TickTo(k.now + 1) }

// TickTo moves the clock to ms and wakes tasks parked on the tick. Times
// at or before the current one are ignored.
func (k *Kernel) TickTo(ms uint64) {
	if ms <= k.now {
		return
	}
	k.now = ms
	k.wakeAll(k.tickWaiters)
}

func (k *Kernel) wakeAll(mask uint32) {
	for tid := TaskID(0); tid < k.nTasks && mask != 0; tid++ {
		if mask&(1<<tid) != 0 {
			mask &^= 1 << tid
			k.wake(tid)
		}
	}
}

// wake makes tid runnable and drops all of its wait registrations.
func (k *Kernel) wake(tid TaskID) {
	st := &k.tasks[tid]
	k.tickWaiters &^= 1 << tid
	if st.waiting < k.nEP {
		k.endpoints[st.waiting].waiters &^= 1 << tid
	}
	st.waiting = noEndpoint
	if !st.exited {
		st.runnable = true
	}
}

// Post delivers a message from outside any task, e.g. from the runner.
func (k *Kernel) Post(to Capability, kind uint16, payload []byte) SendResult {
	return k.send(to, kind, payload)
}

func (k *Kernel) send(to Capability, kind uint16, payload []byte) SendResult {
	switch {
	case !to.Valid():
		return SendErrInvalidToCap
	case !to.can(RightSend):
		return SendErrToNoSendRight
	case to.ep >= k.nEP:
		return SendErrNoEndpoint
	case len(payload) > MaxMessageBytes:
		return SendErrPayloadTooLarge
	}

	msg := Message{Kind: kind, Len: uint16(len(payload))}
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to.ep]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}
	k.wakeAll(ep.waiters)
	return SendOK
}
