package dedupe

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_CollapsesConcurrentCalls(t *testing.T) {
	var g Group[int]
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := g.Do("k", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n < 1 || n > 5 {
		t.Fatalf("unexpected call count %d", n)
	}
	for _, v := range results {
		if v != 42 {
			t.Fatalf("expected 42, got %d", v)
		}
	}
}

func TestGroup_Error(t *testing.T) {
	var g Group[*int]
	boom := errors.New("boom")
	v, _, err := g.Do("k", func() (*int, error) { return nil, boom })
	if !errors.Is(err, boom) || v != nil {
		t.Fatalf("expected boom and nil value, got %v %v", v, err)
	}
}
