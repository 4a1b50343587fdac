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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		glyph   string
		pattern string
		want    bool
	}{
		{"dollar", "dollar", true},
		{"dollar", "cent", false},
		{"abc", "ab*", true},
		{"ab", "ab*", true},
		{"xab", "ab*", false},
		{"xcd", "*cd", true},
		{"cd", "*cd", true},
		{"cdx", "*cd", false},
		{"axyzd", "a*d", true},
		{"bxyzd", "a*d", false},
		{"ad", "a*d", true},
		// prefix and suffix may overlap for short names
		{"a.alt", "a.*alt", true},
		{"a.Xalt", "a.*alt", true},
		{"b.alt", "a.*alt", false},
	}
	for _, test := range cases {
		got := Matches(test.glyph, test.pattern)
		if got != test.want {
			t.Errorf("Matches(%q, %q) = %t, want %t",
				test.glyph, test.pattern, got, test.want)
		}
	}
}

func TestExpand(t *testing.T) {
	glyphs := GlyphSet{
		"dollar":        true,
		"dollarAlt":     true,
		"cent":          true,
		"yen":           true,
		"sterlingHeavy": true,
	}
	got := Expand([]string{"dollar*", "cent"}, glyphs)
	want := GlyphSet{
		"dollar":    true,
		"dollarAlt": true,
		"cent":      true,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected expansion (-want +got):\n%s", d)
	}
}

func TestDetectPattern(t *testing.T) {
	cases := []struct {
		name   string
		glyphs []string
		want   string
	}{
		{"single", []string{"dollar"}, ""},
		{"prefix", []string{"dollar", "dollarAlt", "dollarOldstyle"}, "dollar*"},
		{"suffix", []string{"a.rvrn", "b.rvrn"}, "*.rvrn"},
		{"short_prefix", []string{"ab1", "ab2"}, ""},
		{"nothing", []string{"alpha", "beta"}, ""},
		// the common prefix wins over the common suffix
		{"both", []string{"dollar.alt", "dollarOldstyle.alt"}, "dollar*"},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := DetectPattern(test.glyphs)
			if got != test.want {
				t.Errorf("DetectPattern(%v) = %q, want %q",
					test.glyphs, got, test.want)
			}
		})
	}
}
