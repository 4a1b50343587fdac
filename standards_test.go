// seehuhn.de/go/dssketch - a compact notation for variable font design spaces
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dssketch

import "testing"

func TestUserValue(t *testing.T) {
	cases := []struct {
		name string
		kind string
		want float64
	}{
		{"Regular", "weight", 400},
		{"Bold", "weight", 700},
		{"Bold", "Weight", 700}, // axis kind is case-insensitive
		{"Normal", "weight", 400},
		{"Heavy", "weight", 900}, // alias of Black
		{"Condensed", "width", 75},
		{"Wide", "width", 125}, // alias of Expanded
		{"NoSuchName", "weight", 400},
		{"NoSuchName", "width", 100},
		{"Anything", "CONTRAST", 100}, // unknown kind, generic default
	}
	for _, test := range cases {
		got := UserValue(test.name, test.kind)
		if got != test.want {
			t.Errorf("UserValue(%q, %q) = %g, want %g",
				test.name, test.kind, got, test.want)
		}
	}
}

func TestRegisteredValue(t *testing.T) {
	cases := []struct {
		name string
		kind string
		want float64
	}{
		{"Bold", "weight", 700},
		{"Normal", "width", 5},
		{"Condensed", "width", 3},
		{"NoSuchName", "width", 5},
	}
	for _, test := range cases {
		got := RegisteredValue(test.name, test.kind)
		if got != test.want {
			t.Errorf("RegisteredValue(%q, %q) = %g, want %g",
				test.name, test.kind, got, test.want)
		}
	}
}

// TestAliasIdempotence checks that resolving an alias twice gives the
// same fields as resolving it once.
func TestAliasIdempotence(t *testing.T) {
	tab := standards()
	first := tab.resolve("Heavy", "weight")
	if first == nil || first.AliasOf != "" {
		t.Fatalf("alias not resolved: %+v", first)
	}
	second := tab.resolve("Heavy", "weight")
	if *first.UserSpace != *second.UserSpace || *first.OS2 != *second.OS2 {
		t.Errorf("alias resolution not idempotent: %+v != %+v", first, second)
	}
	if *first.UserSpace != 900 {
		t.Errorf("Heavy resolved to %g, want 900", *first.UserSpace)
	}
}

func TestValueName(t *testing.T) {
	cases := []struct {
		value float64
		kind  string
		want  string
	}{
		{400, "weight", "Regular"},
		{700, "weight", "Bold"},
		// alias entries must be skipped, 900 is "Black" not "Heavy"
		{900, "weight", "Black"},
		{75, "width", "Condensed"},
		{350, "weight", "Weight350"},
		{42, "CONTRAST", "Contrast42"},
	}
	for _, test := range cases {
		got := ValueName(test.value, test.kind)
		if got != test.want {
			t.Errorf("ValueName(%g, %q) = %q, want %q",
				test.value, test.kind, got, test.want)
		}
	}
}

func TestDiscreteLabelValue(t *testing.T) {
	cases := []struct {
		tag    string
		label  string
		want   float64
		wantOK bool
	}{
		{"ital", "Upright", 0, true},
		{"ital", "Roman", 0, true},
		{"ital", "Italic", 1, true},
		{"slnt", "Oblique", 1, true},
		{"ital", "Cursive", 0, false},
		{"wght", "Upright", 0, false},
	}
	for _, test := range cases {
		got, ok := discreteLabelValue(test.tag, test.label)
		if got != test.want || ok != test.wantOK {
			t.Errorf("discreteLabelValue(%q, %q) = %g, %t, want %g, %t",
				test.tag, test.label, got, ok, test.want, test.wantOK)
		}
	}
}
