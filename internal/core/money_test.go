package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoneyQuantization(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1.00", true},
		{"1.0", "1.00", true},
		{"1.23", "1.23", true},
		{"0.01", "0.01", true},
		{"10.125", "10.13", true}, // half-up
		{"10.124", "10.12", true},
		{"-10.125", "-10.13", true}, // ties away from zero
		{"1234.567", "1234.57", true},
		{"-1", "-1.00", true},
		{"0", "0.00", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := NewMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyQuantizationIdempotent(t *testing.T) {
	for _, s := range []string{"0.005", "10.125", "99.994", "-3.335", "1000"} {
		m, err := NewMoney(s)
		if err != nil {
			t.Fatal(err)
		}
		again, err := NewMoney(m.String())
		if err != nil {
			t.Fatal(err)
		}
		if !m.Equal(again) {
			t.Fatalf("quantization not idempotent for %q: %s != %s", s, m, again)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustMoney("10.00")
	b := MustMoney("3.335")

	if got := a.Add(b).String(); got != "13.34" {
		t.Fatalf("add: got %s", got)
	}
	if got := a.Sub(b).String(); got != "6.66" {
		t.Fatalf("sub: got %s", got)
	}
	if got := b.Neg().String(); got != "-3.34" {
		t.Fatalf("neg: got %s", got)
	}
	if got := a.MulScalar(decimal.NewFromFloat(0.333)).String(); got != "3.33" {
		t.Fatalf("mul: got %s", got)
	}
	if got := a.DivScalar(decimal.NewFromInt(3)).String(); got != "3.33" {
		t.Fatalf("div: got %s", got)
	}
}

func TestMoneyComparison(t *testing.T) {
	a := MustMoney("1.005")
	b := MustMoney("1.01")
	if !a.Equal(b) {
		t.Fatalf("expected %s == %s after quantization", a, b)
	}
	if MustMoney("2.00").Cmp(MustMoney("10.00")) != -1 {
		t.Fatal("expected 2.00 < 10.00")
	}
	if !MustMoney("-0.01").IsNegative() {
		t.Fatal("expected negative")
	}
	if !ZeroMoney().IsZero() {
		t.Fatal("expected zero")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	// The canonical string form must survive marshal->unmarshal untouched.
	for _, s := range []string{"123.40", "0.00", "-55.01"} {
		m := MustMoney(s)
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `"`+s+`"` {
			t.Fatalf("marshal %s: got %s", s, data)
		}
		var back Money
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if back.String() != s {
			t.Fatalf("round trip %s: got %s", s, back)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"not-a-number"`), &m); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
