package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestAudioCache_GetPut(t *testing.T) {
	c := New(1024)
	key := Key("kitten", "expr-voice-2-m", "Task complete")

	if _, ok := c.Get(key); ok {
		t.Error("Get() hit on empty cache")
	}

	audio := []byte("fake wav payload")
	if err := c.Put(key, audio); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() missed after Put")
	}
	if !bytes.Equal(got, audio) {
		t.Error("Get() returned different audio")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestKey_DistinguishesVoiceAndEngine(t *testing.T) {
	base := Key("kitten", "expr-voice-2-m", "hello")
	if Key("kitten", "expr-voice-3-f", "hello") == base {
		t.Error("same key across voices")
	}
	if Key("espeak", "expr-voice-2-m", "hello") == base {
		t.Error("same key across engines")
	}
	if Key("kitten", "expr-voice-2-m", "hello") != base {
		t.Error("key not deterministic")
	}
}

func TestAudioCache_EvictsLRU(t *testing.T) {
	c := New(100)

	payload := make([]byte, 40)
	for _, k := range []string{"a", "b"} {
		if err := c.Put(k, payload); err != nil {
			t.Fatal(err)
		}
	}

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a missing")
	}
	if err := c.Put("c", payload); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction; LRU order broken")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a evicted despite recent use")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestAudioCache_RejectsOversized(t *testing.T) {
	c := New(10)
	if err := c.Put("big", make([]byte, 11)); err != ErrItemTooLarge {
		t.Errorf("Put() error = %v, want ErrItemTooLarge", err)
	}
}

func TestAudioCache_Prune(t *testing.T) {
	c := New(1024)
	if err := c.Put("old", []byte("x")); err != nil {
		t.Fatal(err)
	}

	if pruned := c.Prune(time.Hour); pruned != 0 {
		t.Errorf("Prune(1h) = %d, want 0", pruned)
	}
	if pruned := c.Prune(0); pruned != 1 {
		t.Errorf("Prune(0) = %d, want 1", pruned)
	}
	if _, ok := c.Get("old"); ok {
		t.Error("pruned entry still retrievable")
	}
}

func TestAudioCache_GrowingUpdateEvicts(t *testing.T) {
	c := New(100)
	if err := c.Put("small", make([]byte, 20)); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("victim", make([]byte, 30)); err != nil {
		t.Fatal(err)
	}

	// Growing small to 90 bytes exceeds capacity; the older entry must go.
	if err := c.Put("small", make([]byte, 90)); err != nil {
		t.Fatal(err)
	}

	stats := c.Stats()
	if stats.Size > stats.Capacity {
		t.Errorf("size %d exceeds capacity %d after in-place growth", stats.Size, stats.Capacity)
	}
	if _, ok := c.Get("victim"); ok {
		t.Error("older entry survived; growth did not trigger eviction")
	}
	if _, ok := c.Get("small"); !ok {
		t.Error("updated entry missing")
	}
}

func TestAudioCache_UpdateExistingKey(t *testing.T) {
	c := New(100)
	if err := c.Put("k", make([]byte, 60)); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("k", make([]byte, 80)); err != nil {
		t.Fatal(err)
	}

	stats := c.Stats()
	if stats.ItemCount != 1 {
		t.Errorf("item count = %d, want 1", stats.ItemCount)
	}
	if stats.Size != 80 {
		t.Errorf("size = %d, want 80", stats.Size)
	}
}
