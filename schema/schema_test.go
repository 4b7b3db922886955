package schema

import "testing"

type tripNote struct {
	Base
	City string `json:"city"`
	Days int    `json:"days,omitempty"`
}

func TestStringifyString(t *testing.T) {
	s := String("3 days in Lisbon")
	if got := Stringify(s); got != "3 days in Lisbon" {
		t.Errorf("Expect plain text passthrough, but got %s", got)
	}
	if got := string(ToBytes(s)); got != "3 days in Lisbon" {
		t.Errorf("Expect plain bytes passthrough, but got %s", got)
	}
}

func TestStringifyStruct(t *testing.T) {
	n := tripNote{City: "Lisbon", Days: 3}
	expect := `{"city":"Lisbon","days":3}`
	if got := Stringify(n); got != expect {
		t.Errorf("Expect %s, but got %s", expect, got)
	}
	if got := string(ToBytes(n)); got != expect {
		t.Errorf("Expect %s, but got %s", expect, got)
	}
}

func TestStringifyOmitsEmpty(t *testing.T) {
	n := tripNote{City: "Porto"}
	expect := `{"city":"Porto"}`
	if got := Stringify(n); got != expect {
		t.Errorf("Expect %s, but got %s", expect, got)
	}
}

func TestStringUnmarshal(t *testing.T) {
	var s String
	if err := s.Unmarshal([]byte("overnight in Sintra")); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(s) != "overnight in Sintra" {
		t.Errorf("Expect overnight in Sintra, but got %s", s)
	}
}
