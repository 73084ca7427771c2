package codes

import (
	"context"
	"testing"
	"time"
)

func TestGenerateSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}

func TestMemoryTakeConsumes(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, "p1", "123456", time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	ok, err := store.Take(ctx, "p1", "000000")
	if err != nil || ok {
		t.Fatalf("wrong code must not match, ok=%v err=%v", ok, err)
	}
	ok, err = store.Take(ctx, "p1", "123456")
	if err != nil || !ok {
		t.Fatalf("right code must match, ok=%v err=%v", ok, err)
	}
	ok, _ = store.Take(ctx, "p1", "123456")
	if ok {
		t.Fatalf("code must be consumed after first take")
	}
}

func TestMemoryExpiry(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, "p1", "123456", -time.Second); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if ok, _ := store.Take(ctx, "p1", "123456"); ok {
		t.Fatalf("expired code must not match")
	}
}
