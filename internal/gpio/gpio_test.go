package gpio

import (
	"sync"
	"testing"
)

var (
	_ Interrupt = (*FakeInterrupt)(nil)
	_ Interrupt = (*RealInterrupt)(nil)
	_ Interrupt = Always{}
)

func TestFlagTakeOnce(t *testing.T) {
	var f Flag
	if f.Take() {
		t.Error("new flag: got true, want false")
	}
	f.Set()
	f.Set()
	if !f.Take() {
		t.Error("after set: got false, want true")
	}
	if f.Take() {
		t.Error("second take: got true, want false")
	}
}

func TestFlagConcurrentSet(t *testing.T) {
	var f Flag
	var wg sync.WaitGroup
	for _i := 0; _i < 8; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Set()
		}()
	}
	wg.Wait()
	if !f.Take() {
		t.Error("after concurrent sets: got false, want true")
	}
	if f.Take() {
		t.Error("flag not cleared")
	}
}

func TestFakeInterrupt(t *testing.T) {
	f := &FakeInterrupt{}
	if f.Take() {
		t.Error("unfired: got true, want false")
	}
	f.Fire()
	if !f.Take() {
		t.Error("fired: got false, want true")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestAlways(t *testing.T) {
	var a Always
	for i := 0; i < 3; i++ {
		if !a.Take() {
			t.Errorf("take %d: got false, want true", i)
		}
	}
}
