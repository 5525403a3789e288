package device

import (
	"reflect"
	"testing"
)

func TestNewParams_Order(t *testing.T) {
	p := NewParams("hall-a", "stage lights", State("on"), P("value", "40"))

	if got, want := p.Encode(), "venue=hall-a&name=stage+lights&state=on&value=40"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}
}

func TestNewParams_OverrideKeepsPosition(t *testing.T) {
	p := NewParams("hall-a", "lamp", State("on"), P("venue", "hall-b"))

	if got, want := p.Encode(), "venue=hall-b&name=lamp&state=on"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	if v, ok := p.Get("venue"); !ok || v != "hall-b" {
		t.Errorf("Get(venue) = %q, %v", v, ok)
	}
}

func TestParams_EscapesReservedCharacters(t *testing.T) {
	p := NewParams("a&b", "x=y")
	if got, want := p.Encode(), "venue=a%26b&name=x%3Dy"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestParams_Pairs(t *testing.T) {
	p := NewParams("v", "n", Value(75))
	want := []Param{{"venue", "v"}, {"name", "n"}, {"value", "75"}}
	if got := p.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %+v, want %+v", got, want)
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		in      string
		want    Param
		wantErr bool
	}{
		{"state=on", Param{"state", "on"}, false},
		{"value=", Param{"value", ""}, false},
		{"flag", Param{"flag", ""}, false},
		{"color=#ff0000=x", Param{"color", "#ff0000=x"}, false},
		{"=on", Param{}, true},
	}

	for _, tt := range tests {
		got, err := ParseParam(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseParam(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseParam(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseQuery_KeepsOrder(t *testing.T) {
	got, err := ParseQuery("state=on&value=10&mode=fade+in&&empty")
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}

	want := []Param{{"state", "on"}, {"value", "10"}, {"mode", "fade in"}, {"empty", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseQuery() = %+v, want %+v", got, want)
	}
}

func TestParseQuery_BadEscape(t *testing.T) {
	if _, err := ParseQuery("state=%zz"); err == nil {
		t.Error("ParseQuery() should reject malformed escapes")
	}
}
