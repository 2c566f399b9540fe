package announcement

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestInflightGuardSingleClaim(t *testing.T) {
	g := newInflightGuard()

	if !g.TryBegin(1) {
		t.Fatal("first claim should succeed")
	}
	if g.TryBegin(1) {
		t.Fatal("second claim while held should fail")
	}
	if !g.TryBegin(2) {
		t.Fatal("different announcement should claim independently")
	}

	g.End(1)
	if !g.TryBegin(1) {
		t.Fatal("claim after release should succeed")
	}
}

// Many concurrent dispatch attempts for the same announcement must
// collapse to exactly one winner.
func TestInflightGuardConcurrentDispatchersOneWinner(t *testing.T) {
	g := newInflightGuard()

	var winners int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if g.TryBegin(42) {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if winners != 1 {
		t.Fatalf("got %d winners, want exactly 1", winners)
	}
}
