package random

import (
	"sync"
	"testing"
)

func TestBetweenStaysInRange(t *testing.T) {
	src := New(42)
	seen := map[int]bool{}
	for i := 0; i < 10000; i++ {
		v := src.Between(1, 10)
		if v < 1 || v > 10 {
			t.Fatalf("Between(1, 10) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("expected every face 1-10 to appear, saw %d distinct", len(seen))
	}
}

func TestBetweenSingleValue(t *testing.T) {
	src := New(1)
	if got := src.Between(7, 7); got != 7 {
		t.Fatalf("Between(7, 7) = %d", got)
	}
}

func TestBetweenDeterministicForSeed(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 100; i++ {
		if x, y := a.Between(1, 10), b.Between(1, 10); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestBetweenPanicsOnInvertedRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(1).Between(5, 4)
}

func TestBetweenConcurrent(t *testing.T) {
	src := New(7)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if v := src.Between(1, 10); v < 1 || v > 10 {
					t.Errorf("Between(1, 10) = %d", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewCrypto(t *testing.T) {
	src, err := NewCrypto()
	if err != nil {
		t.Fatalf("new crypto source: %v", err)
	}
	if v := src.Between(5, 10); v < 5 || v > 10 {
		t.Fatalf("Between(5, 10) = %d", v)
	}
}
