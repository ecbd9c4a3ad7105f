package kernel

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler run for the first task panic on k.
// It is called on the kernel's goroutine and must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.onPanic = fn
}

// Panicked returns the first task panic recorded on k.
func (k *Kernel) Panicked() (PanicInfo, bool) {
	if k.panicked == nil {
		return PanicInfo{}, false
	}
	return *k.panicked, true
}

// recordPanic keeps only the first panic; later ones still kill their task.
func (k *Kernel) recordPanic(id TaskID, v any) {
	if k.panicked != nil {
		return
	}
	info := PanicInfo{TaskID: id, Value: v, Stack: captureStack()}
	k.panicked = &info
	if k.onPanic != nil {
		k.onPanic(info)
	}
}
