package kernel

// mailbox is a fixed-size FIFO of messages for one endpoint.
type mailbox struct {
	head  uint8
	count uint8
	slots [mailboxSlots]Message
}

func (mb *mailbox) push(msg Message) bool {
	if mb.count >= mailboxSlots {
		return false
	}
	mb.slots[(mb.head+mb.count)%mailboxSlots] = msg
	mb.count++
	return true
}

func (mb *mailbox) pop() (Message, bool) {
	if mb.count == 0 {
		return Message{}, false
	}
	msg := mb.slots[mb.head]
	mb.slots[mb.head] = Message{}
	mb.head = (mb.head + 1) % mailboxSlots
	mb.count--
	return msg, true
}

func (mb *mailbox) len() int { return int(mb.count) }
