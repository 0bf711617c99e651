package resource

import (
	"errors"
	"sync"
	"testing"
)

func TestCacheRefCounting(t *testing.T) {
	loads := 0
	c := NewCache(WithLoader(func(key string) (any, error) {
		loads++
		return "value:" + key, nil
	}))

	v, err := c.Acquire("rock.tex")
	if err != nil || v != "value:rock.tex" {
		t.Fatalf("Acquire = %v, %v", v, err)
	}
	if _, err := c.Acquire("rock.tex"); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if loads != 1 || c.Refs("rock.tex") != 2 {
		t.Fatalf("loads=%d refs=%d, want 1 and 2", loads, c.Refs("rock.tex"))
	}

	c.Release("rock.tex")
	c.Release("rock.tex")
	c.Release("rock.tex") // extra release is ignored
	if c.Refs("rock.tex") != 0 || !c.Resident("rock.tex") {
		t.Fatalf("released entry should stay resident until reclaimed")
	}
}

func TestCacheReclaimUnusedSync(t *testing.T) {
	var mu sync.Mutex
	var released []string
	c := NewCache(WithReleaser(func(key string, _ any) {
		mu.Lock()
		released = append(released, key)
		mu.Unlock()
	}))

	c.Acquire("a")
	c.Acquire("b")
	c.Release("a")

	if freed := c.ReclaimUnusedSync(); freed != 1 {
		t.Fatalf("freed = %d, want 1", freed)
	}
	if c.Resident("a") || !c.Resident("b") {
		t.Fatalf("wrong entries reclaimed")
	}
	if len(released) != 1 || released[0] != "a" {
		t.Fatalf("released = %v, want [a]", released)
	}

	s := c.Stats()
	if s.Entries != 1 || s.Unused != 0 || s.Reclaimed != 1 || s.Reclaims != 1 || s.Loads != 2 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestCacheReclaimUnusedIsAsync(t *testing.T) {
	c := NewCache()
	c.Acquire("a")
	c.Release("a")

	c.ReclaimUnused()
	c.Wait()

	if c.Resident("a") {
		t.Fatalf("async reclaim did not free the unused entry")
	}
}

func TestCacheLoaderError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCache(WithLoader(func(string) (any, error) { return nil, boom }))
	if _, err := c.Acquire("x"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Resident("x") {
		t.Fatalf("failed load left an entry behind")
	}
}

func TestSetLoadUnload(t *testing.T) {
	c := NewCache()
	s, err := NewSet(c, "shared.lite", "rock.mat", "rock.mesh", "rock.tex")
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if !s.Loaded() || c.Refs("rock.tex") != 1 || c.Refs("shared.lite") != 1 {
		t.Fatalf("set not loaded on construction")
	}

	s.Unload()
	s.Unload()
	if s.Loaded() || c.Refs("rock.tex") != 0 {
		t.Fatalf("unload did not release originals")
	}
	if c.Refs("shared.lite") != 1 {
		t.Fatalf("unload released the shared substitute")
	}

	if freed := c.ReclaimUnusedSync(); freed != 3 {
		t.Fatalf("freed = %d, want 3", freed)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !c.Resident("rock.mesh") || c.Refs("rock.mesh") != 1 {
		t.Fatalf("reload did not reacquire originals")
	}

	s.Close()
	if c.Refs("shared.lite") != 0 || c.Refs("rock.mesh") != 0 {
		t.Fatalf("close left references behind")
	}
}

func TestSetLoadRollsBackOnError(t *testing.T) {
	fail := false
	c := NewCache(WithLoader(func(key string) (any, error) {
		if fail && key == "b" {
			return nil, errors.New("missing")
		}
		return key, nil
	}))
	s, err := NewSet(c, "", "a", "b")
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	s.Unload()
	c.ReclaimUnusedSync()

	fail = true
	if err := s.Load(); err == nil {
		t.Fatalf("expected load error")
	}
	if s.Loaded() || c.Refs("a") != 0 {
		t.Fatalf("partial load was not rolled back")
	}
}
