package kernel

import "testing"

type panicTask struct{ v string }

func (p panicTask) Step(*Context) { panic(p.v) }

func TestTaskPanicIsContained(t *testing.T) {
	k := New()
	calls := 0
	var got PanicInfo
	k.SetPanicHandler(func(info PanicInfo) {
		calls++
		got = info
	})

	bad := k.AddTask(panicTask{v: "boom"})
	good := k.AddTask(&tickTask{stop: 2})
	worse := k.AddTask(panicTask{v: "again"})

	k.RunUntilIdle(10)

	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
	if got.TaskID != bad || got.Value != "boom" {
		t.Fatalf("PanicInfo = %+v", got)
	}
	if len(got.Stack) == 0 {
		t.Fatalf("expected a stack trace")
	}
	first, ok := k.Panicked()
	if !ok || first.TaskID != bad {
		t.Fatalf("Panicked() = %+v, %v", first, ok)
	}
	if k.Alive(bad) || k.Alive(worse) {
		t.Fatalf("panicked task still alive")
	}
	if !k.Alive(good) {
		t.Fatalf("healthy task died")
	}
}

func TestPanicStateIsPerKernel(t *testing.T) {
	a := New()
	a.AddTask(panicTask{v: "boom"})
	a.RunUntilIdle(4)

	b := New()
	called := false
	b.SetPanicHandler(func(PanicInfo) { called = true })
	b.AddTask(panicTask{v: "boom"})
	b.RunUntilIdle(4)

	if _, ok := a.Panicked(); !ok {
		t.Fatalf("first kernel lost its panic")
	}
	if !called {
		t.Fatalf("second kernel's handler not called")
	}
}
