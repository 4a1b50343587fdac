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

import "strings"

// GlyphSet is the set of glyph names available in the font sources.
type GlyphSet map[string]bool

// Matches reports whether a glyph name matches a wildcard pattern.
// A pattern without "*" must equal the name exactly; "dollar*" is a
// prefix test, "*Heavy" a suffix test, and "a.*alt" requires both the
// prefix and the suffix independently.
func Matches(glyphName, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return glyphName == pattern
	}

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(glyphName, pattern[:len(pattern)-1])
	}
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(glyphName, pattern[1:])
	}
	prefix, suffix, _ := strings.Cut(pattern, "*")
	return strings.HasPrefix(glyphName, prefix) &&
		strings.HasSuffix(glyphName, suffix)
}

// Expand returns all glyph names in the set which match at least one of
// the given patterns.
func Expand(patterns []string, glyphs GlyphSet) GlyphSet {
	matched := make(GlyphSet)
	for _, pattern := range patterns {
		for glyph := range glyphs {
			if Matches(glyph, pattern) {
				matched[glyph] = true
			}
		}
	}
	return matched
}

// DetectPattern proposes a wildcard pattern covering all of the given
// glyph names, or "" if none is found.  A common prefix of at least
// three characters yields a prefix pattern; failing that, a common
// suffix of at least three characters yields a suffix pattern.
func DetectPattern(glyphNames []string) string {
	if len(glyphNames) < 2 {
		return ""
	}

	minLen := len(glyphNames[0])
	for _, name := range glyphNames[1:] {
		if len(name) < minLen {
			minLen = len(name)
		}
	}

	prefixLen := 0
	for prefixLen < minLen {
		c := glyphNames[0][prefixLen]
		ok := true
		for _, name := range glyphNames[1:] {
			if name[prefixLen] != c {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		prefixLen++
	}

	suffixLen := 0
	for suffixLen < minLen {
		c := glyphNames[0][len(glyphNames[0])-1-suffixLen]
		ok := true
		for _, name := range glyphNames[1:] {
			if name[len(name)-1-suffixLen] != c {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		suffixLen++
	}

	if prefixLen >= 3 {
		return glyphNames[0][:prefixLen] + "*"
	}
	if suffixLen >= 3 {
		return "*" + glyphNames[0][len(glyphNames[0])-suffixLen:]
	}
	return ""
}
