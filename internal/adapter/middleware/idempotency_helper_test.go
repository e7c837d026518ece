package middleware

import (
	"strconv"
	"testing"
	"time"
)

func TestParseAxRequestAt(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("epoch seconds", func(t *testing.T) {
		got, err := parseAxRequestAt(strconv.FormatInt(now.Unix(), 10))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(now) {
			t.Fatalf("got %v, want %v", got, now)
		}
	})

	t.Run("epoch milliseconds", func(t *testing.T) {
		got, err := parseAxRequestAt(strconv.FormatInt(now.UnixMilli(), 10))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(now) {
			t.Fatalf("got %v, want %v", got, now)
		}
	})

	t.Run("rfc3339 with zone", func(t *testing.T) {
		got, err := parseAxRequestAt("2026-08-30T10:00:00+07:00")
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("naive timestamp rejected", func(t *testing.T) {
		if _, err := parseAxRequestAt("2026-08-30T10:00:00"); err == nil {
			t.Fatal("naive timestamp accepted")
		}
	})

	t.Run("empty rejected", func(t *testing.T) {
		if _, err := parseAxRequestAt(""); err == nil {
			t.Fatal("empty accepted")
		}
	})
}

func TestValidReqID(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{"a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4", true},
		{"123e4567-e89b-12d3-a456-426614174000", true},
		{"not-an-id", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validReqID(tt.id); got != tt.ok {
			t.Fatalf("validReqID(%q) = %v, want %v", tt.id, got, tt.ok)
		}
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/loans/:loan_id/approve", "staff1", "req1")
	want := "idemp:ax:post:/loans/:loan_id/approve:staff1:req1"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

func TestBodyHash_StableAndDistinct(t *testing.T) {
	a := bodyHash([]byte(`{"amount":1}`))
	b := bodyHash([]byte(`{"amount":1}`))
	c := bodyHash([]byte(`{"amount":2}`))
	if a != b {
		t.Fatal("same body hashed differently")
	}
	if a == c {
		t.Fatal("different bodies collided")
	}
}
