//go:build unix

package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWriteLocker_AcquireRelease(t *testing.T) {
	dir := t.TempDir()
	locker := newWriteLocker(dir)

	if err := locker.acquire(500 * time.Millisecond); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, lockFileName))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if !strings.HasPrefix(string(data), "pid:") {
		t.Errorf("lock file should contain holder info, got %q", data)
	}
	if err := locker.release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
}

func TestWriteLocker_Timeout(t *testing.T) {
	dir := t.TempDir()
	holder := newWriteLocker(dir)
	if err := holder.acquire(time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer holder.release()

	waiter := newWriteLocker(dir)
	start := time.Now()
	err := waiter.acquire(50 * time.Millisecond)
	if err == nil {
		waiter.release()
		t.Fatal("expected timeout while lock is held")
	}
	if !strings.Contains(err.Error(), "pid:") {
		t.Errorf("timeout error should name holder: %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("acquire returned before timeout")
	}
}

func TestWriteLocker_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	const workers, iterations = 5, 10

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				locker := newWriteLocker(dir)
				if err := locker.acquire(5 * time.Second); err != nil {
					t.Errorf("acquire failed: %v", err)
					return
				}
				val := atomic.LoadInt64(&counter)
				time.Sleep(time.Millisecond)
				atomic.StoreInt64(&counter, val+1)
				locker.release()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}
