package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if len(first) != 24 {
		t.Fatalf("expected 24 chars for 15 random bytes, got %d (%q)", len(first), first)
	}
	if !Acceptable(first) {
		t.Fatalf("generated id %q should be acceptable", first)
	}
}

func TestNewPrefixedGenerator(t *testing.T) {
	got, err := NewPrefixedGenerator(" req ").NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(got, "req_") {
		t.Fatalf("expected req_ prefix, got %q", got)
	}
}

func TestAcceptable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "req-1", want: true},
		{in: "0af7651916cd43dd8448eb211c80319c", want: true},
		{in: "trace:abc.def_1", want: true},
		{in: "", want: false},
		{in: "has space", want: false},
		{in: "line\nbreak", want: false},
		{in: strings.Repeat("a", MaxLength), want: true},
		{in: strings.Repeat("a", MaxLength+1), want: false},
	}
	for _, tt := range tests {
		if got := Acceptable(tt.in); got != tt.want {
			t.Fatalf("Acceptable(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
