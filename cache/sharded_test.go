package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetOrCreateSingleFlight(t *testing.T) {
	c := NewSharded[string, int](StringHasher)

	var creates atomic.Int32
	const goroutines = 32

	var wg sync.WaitGroup
	results := make([]int, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCreate("shared", func() (int, error) {
				creates.Add(1)
				return 42, nil
			})
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if n := creates.Load(); n != 1 {
		t.Errorf("create ran %d times, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("goroutine %d got %d, want 42", i, v)
		}
	}
}

func TestGetOrCreateErrorNotCached(t *testing.T) {
	c := NewSharded[string, int](StringHasher)
	boom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("first create: err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed create left %d entries", c.Len())
	}

	// A later request retries and succeeds.
	v, err := c.GetOrCreate("k", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("retry = %d, %v; want 7, nil", v, err)
	}
	if got, ok := c.Get("k"); !ok || got != 7 {
		t.Errorf("Get after retry = %d, %v", got, ok)
	}
}

func TestSetGetDelete(t *testing.T) {
	c := NewSharded[string, string](StringHasher)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	c.Set("a", "1")
	c.Set("a", "2") // replace
	if v, ok := c.Get("a"); !ok || v != "2" {
		t.Errorf("Get(a) = %q, %v; want 2, true", v, ok)
	}

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get after Delete reported a hit")
	}
}

func TestRangeAndClear(t *testing.T) {
	c := NewSharded[uint64, int](Uint64Hasher)
	for i := uint64(0); i < 50; i++ {
		c.Set(i, int(i)*2)
	}
	if c.Len() != 50 {
		t.Fatalf("Len = %d, want 50", c.Len())
	}

	seen := 0
	c.Range(func(k uint64, v int) bool {
		if v != int(k)*2 {
			t.Errorf("entry %d = %d, want %d", k, v, int(k)*2)
		}
		seen++
		return true
	})
	if seen != 50 {
		t.Errorf("Range visited %d entries, want 50", seen)
	}

	// Early stop.
	seen = 0
	c.Range(func(uint64, int) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Range with early stop visited %d entries, want 1", seen)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := NewSharded[string, int](StringHasher)
	c.Set("a", 1)

	c.Get("a")       // hit
	c.Get("b")       // miss
	c.Get("a")       // hit
	_, _ = c.GetOrCreate("c", func() (int, error) { return 3, nil }) // miss
	_, _ = c.GetOrCreate("c", func() (int, error) { return 0, nil }) // hit

	s := c.Stats()
	if s.Hits != 3 || s.Misses != 2 {
		t.Errorf("Stats = %d hits %d misses, want 3/2", s.Hits, s.Misses)
	}
	if s.Len != 2 {
		t.Errorf("Stats.Len = %d, want 2", s.Len)
	}
	if s.HitRate != 0.6 {
		t.Errorf("HitRate = %v, want 0.6", s.HitRate)
	}

	c.ResetStats()
	s = c.Stats()
	if s.Hits != 0 || s.Misses != 0 || s.HitRate != 0 {
		t.Errorf("Stats after reset = %+v", s)
	}
}

func TestHashers(t *testing.T) {
	if StringHasher("mesh/vertices") != StringHasher("mesh/vertices") {
		t.Error("StringHasher is not deterministic")
	}
	if StringHasher("a") == StringHasher("b") {
		t.Error("StringHasher collides on trivial keys")
	}
	if Uint64Hasher(99) != 99 {
		t.Error("Uint64Hasher must be the identity")
	}
}
