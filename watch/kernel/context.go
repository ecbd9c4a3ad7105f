package kernel

// Context is a task's handle on the kernel for one step.
type Context struct {
	k  *Kernel
	id TaskID

	recvOn Endpoint
	onTick bool
	exited bool
}

// Recv takes one message from the endpoint. When the mailbox is empty it
// returns false and the task is parked until a message arrives; the task
// should return from Step.
func (c *Context) Recv(ep Capability) (Message, bool) {
	if !ep.Valid() || !ep.can(RightRecv) || ep.ep >= c.k.nEP {
		return Message{}, false
	}
	if msg, ok := c.k.endpoints[ep.ep].q.pop(); ok {
		c.recvOn = noEndpoint
		return msg, true
	}
	c.recvOn = ep.ep
	return Message{}, false
}

// Pending reports how many messages wait on the endpoint.
func (c *Context) Pending(ep Capability) int {
	if !ep.Valid() || !ep.can(RightRecv) || ep.ep >= c.k.nEP {
		return 0
	}
	return c.k.endpoints[ep.ep].q.len()
}

// BlockOnTick parks the task until the next tick. If Recv also found its
// mailbox empty in this step, a message wakes the task as well.
func (c *Context) BlockOnTick() {
	c.onTick = true
}

// Exit marks the task as finished; it is never scheduled again.
func (c *Context) Exit() {
	c.exited = true
}

// Send queues a message on the endpoint to. It never blocks.
func (c *Context) Send(to Capability, kind uint16, payload []byte) SendResult {
	return c.k.send(to, kind, payload)
}

// NowTick returns the current time in milliseconds.
func (c *Context) NowTick() uint64 {
	return c.k.now
}
