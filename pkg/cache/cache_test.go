package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if hit {
			t.Error("hit on empty cache")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data, hit, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !hit || string(data) != "v" {
			t.Errorf("Get = (%q, %v), want (v, true)", data, hit)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		if err := c.Set(ctx, "fleeting", []byte("v"), time.Nanosecond); err != nil {
			t.Fatalf("Set: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		_, hit, err := c.Get(ctx, "fleeting")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if hit {
			t.Error("expired entry still hits")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := c.Set(ctx, "gone", []byte("v"), time.Hour); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("deleted entry still hits")
		}
		// Deleting a missing key is fine.
		if err := c.Delete(ctx, "never-there"); err != nil {
			t.Errorf("Delete of missing key: %v", err)
		}
	})
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("null cache stored a value")
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ck1 := k.CostKey("12V3H", "hash-a")
	ck2 := k.CostKey("12V3H", "hash-a")
	if ck1 != ck2 {
		t.Error("identical inputs produced different cost keys")
	}

	if k.CostKey("12V3H", "hash-a") == k.CostKey("12V3H", "hash-b") {
		t.Error("different library hashes produced the same cost key")
	}
	if k.CostKey("12V3H", "hash-a") == k.CostKey("12H3V", "hash-a") {
		t.Error("different expressions produced the same cost key")
	}
	if k.CostKey("12V", "h") == k.RenderKey("12V", "h", "svg") {
		t.Error("cost and render keys collide")
	}
	if k.RenderKey("12V", "h", "svg") == k.RenderKey("12V", "h", "png") {
		t.Error("different formats produced the same render key")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("data"))
	h2 := Hash([]byte("data"))
	if h1 != h2 {
		t.Error("Hash not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("distinct inputs produced the same hash")
	}
}
