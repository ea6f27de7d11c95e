package threadbundle

import "testing"

func TestIsAliveNilSafe(t *testing.T) {
	if IsAlive(nil) {
		t.Error("IsAlive(nil) = true, want false")
	}
}

func TestIsAlive(t *testing.T) {
	release := make(chan struct{})
	w, err := NewWorker(func() { <-release })
	if err != nil {
		t.Fatal(err)
	}

	if IsAlive(w) {
		t.Error("IsAlive = true before Start")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !IsAlive(w) {
		t.Error("IsAlive = false while running")
	}

	close(release)
	if err := w.Join(); err != nil {
		t.Fatal(err)
	}
	if IsAlive(w) {
		t.Error("IsAlive = true after Join")
	}
}

func TestGoroutineID(t *testing.T) {
	id := GoroutineID()
	if id == 0 {
		t.Fatal("GoroutineID() = 0")
	}
	if again := GoroutineID(); again != id {
		t.Errorf("GoroutineID() not stable: %d then %d", id, again)
	}

	other := make(chan uint64, 1)
	go func() {
		other <- GoroutineID()
	}()
	if got := <-other; got == id {
		t.Errorf("GoroutineID() identical across goroutines: %d", got)
	}
}

func TestOptimalWorkerCount(t *testing.T) {
	if got := OptimalWorkerCount(); got < FallbackWorkerCount {
		t.Errorf("OptimalWorkerCount() = %d, want >= %d", got, FallbackWorkerCount)
	}
}
