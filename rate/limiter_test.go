package rate

import (
	"context"
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	burst := 1

	interval := 10 * time.Millisecond
	lim := Every(interval)
	r := NewLimiter(ctx, burst, time.Hour, lim)

	tooshort := 1 * time.Millisecond

	client := "10.0.0.1"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := r.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterWithBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := "10.0.0.1"
	burst := 10

	interval := 100 * time.Millisecond
	lim := Every(interval)

	tooshort := 10 * time.Millisecond

	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	rr := NewLimiter(ctx, burst, time.Hour, lim)
	for i, exp := range expected {
		if got := rr.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterClientsAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewLimiter(ctx, 1, time.Hour, Every(time.Hour))

	if !r.Check("a") {
		t.Fatal("first attempt of a refused")
	}
	if r.Check("a") {
		t.Fatal("second attempt of a allowed")
	}
	if !r.Check("b") {
		t.Fatal("first attempt of b refused")
	}
}

func TestLimiterExpiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewLimiter(ctx, 1, 20*time.Millisecond, Every(time.Hour))
	r.Check("a")

	deadline := time.Now().Add(2 * time.Second)
	for r.clientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("idle client never expired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
