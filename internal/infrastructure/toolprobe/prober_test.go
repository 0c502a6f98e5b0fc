package toolprobe

import (
	"errors"
	"testing"
)

// TestProber_Available tests lookup results and absence handling
func TestProber_Available(t *testing.T) {
	onPath := map[string]bool{"starship": true, "eza": true}
	p := NewWithLookup(func(name string) (string, error) {
		if onPath[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	})

	if !p.Available("starship") {
		t.Error("starship should resolve")
	}
	if p.Available("oh-my-posh") {
		t.Error("oh-my-posh should not resolve")
	}
	if p.Available("") {
		t.Error("empty name should never resolve")
	}
}

// TestProber_MemoizesWithinProcess tests each binary is looked up once
func TestProber_MemoizesWithinProcess(t *testing.T) {
	calls := map[string]int{}
	p := NewWithLookup(func(name string) (string, error) {
		calls[name]++
		return "", errors.New("not found")
	})

	for i := 0; i < 3; i++ {
		p.Available("eza")
	}
	if calls["eza"] != 1 {
		t.Errorf("lookup called %d times, want 1", calls["eza"])
	}
}
