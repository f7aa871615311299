package raffles

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusUpcoming, StatusActive, true},
		{StatusActive, StatusCompleted, true},
		{StatusUpcoming, StatusCompleted, false},
		{StatusActive, StatusUpcoming, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusUpcoming, false},
		{StatusActive, StatusActive, false},
		{Status("paused"), StatusActive, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTicketCodesRoundTrip(t *testing.T) {
	codes, err := NewTicketCodes("test-salt")
	if err != nil {
		t.Fatalf("NewTicketCodes() error = %v", err)
	}

	seen := map[string]int64{}
	for _, id := range []int64{1, 2, 42, 1000, 987654321} {
		code, err := codes.Encode(id)
		if err != nil {
			t.Fatalf("Encode(%d) error = %v", id, err)
		}
		if len(code) < codeMinLength {
			t.Fatalf("Encode(%d) = %q, shorter than %d", id, code, codeMinLength)
		}
		if prev, ok := seen[code]; ok {
			t.Fatalf("Encode(%d) = %q collides with id %d", id, code, prev)
		}
		seen[code] = id

		got, err := codes.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", code, err)
		}
		if got != id {
			t.Fatalf("Decode(%q) = %d, want %d", code, got, id)
		}
	}
}

func TestTicketCodesSaltMatters(t *testing.T) {
	a, _ := NewTicketCodes("salt-a")
	b, _ := NewTicketCodes("salt-b")

	ca, _ := a.Encode(7)
	cb, _ := b.Encode(7)
	if ca == cb {
		t.Fatalf("codes for different salts should differ, both %q", ca)
	}
}

func TestTicketCodesDecodeGarbage(t *testing.T) {
	codes, _ := NewTicketCodes("test-salt")
	if _, err := codes.Decode("not-a-code!"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("Decode(garbage) error = %v, want ErrInvalidCode", err)
	}
}

func TestStamp(t *testing.T) {
	codes, _ := NewTicketCodes("test-salt")
	e1 := &Entry{ID: 10}
	e2 := &Entry{ID: 11}
	if err := codes.Stamp(e1, e2); err != nil {
		t.Fatalf("Stamp() error = %v", err)
	}
	if e1.Code == "" || e2.Code == "" || e1.Code == e2.Code {
		t.Fatalf("Stamp() codes = %q, %q", e1.Code, e2.Code)
	}
}
