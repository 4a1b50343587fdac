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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// registeredAxes maps the axis names whose mention can be omitted in a
// sketch to their expected registered tags.
var registeredAxes = map[string]string{
	"italic":  "ital",
	"optical": "opsz",
	"slant":   "slnt",
	"width":   "wdth",
	"weight":  "wght",
}

var autoRuleNameRe = regexp.MustCompile(`^rule[0-9]+$`)

// A Writer renders a Document in sketch notation.  With Optimize set,
// the most compact equivalent notation is chosen; every shorthand is
// only used when the parser recovers the exact same data from it.
//
// Glyphs, when non-nil, is the set of glyph names available in the
// font sources.  It is used to verify that a proposed wildcard
// compaction expands back to exactly the original substitutions;
// unsafe compactions fall back to the explicit form.
type Writer struct {
	Optimize bool
	Glyphs   GlyphSet
}

// NewWriter returns a Writer with compaction enabled.
func NewWriter() *Writer {
	return &Writer{Optimize: true}
}

// Write renders the document.
func (w *Writer) Write(doc *Document) string {
	var lines []string

	lines = append(lines, "family "+doc.Family)
	if doc.Suffix != "" {
		lines = append(lines, "suffix "+doc.Suffix)
	}
	if doc.Path != "" {
		lines = append(lines, "path "+doc.Path)
	}
	lines = append(lines, "")

	if len(doc.Axes) > 0 {
		lines = append(lines, "axes")
		for _, axis := range doc.Axes {
			lines = append(lines, w.formatAxis(axis)...)
		}
		lines = append(lines, "")
	}

	if len(doc.Masters) > 0 {
		lines = append(lines, "masters")
		for _, master := range doc.Masters {
			lines = append(lines, w.formatMaster(master, doc.Axes))
		}
		lines = append(lines, "")
	}

	if len(doc.Rules) > 0 {
		lines = append(lines, "rules")
		for _, rule := range doc.Rules {
			lines = append(lines, w.formatRule(rule, doc)...)
		}
		lines = append(lines, "")
	}

	if len(doc.Instances) > 0 && !w.Optimize {
		lines = append(lines, "instances")
		for _, inst := range doc.Instances {
			lines = append(lines, formatInstance(inst, doc.Axes))
		}
	} else if w.Optimize {
		lines = append(lines, "instances auto")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func (w *Writer) formatAxis(axis *Axis) []string {
	var lines []string

	name, omit := w.axisDisplayName(axis)
	discrete := axis.IsDiscrete()

	rangePart := "discrete"
	if !discrete {
		rangePart = formatNumber(axis.Minimum) + ":" +
			formatNumber(axis.Default) + ":" + formatNumber(axis.Maximum)
	}
	if omit {
		lines = append(lines, "    "+axis.Tag+" "+rangePart)
	} else {
		lines = append(lines, "    "+name+" "+axis.Tag+" "+rangePart)
	}

	for _, m := range axis.Mappings {
		switch {
		case discrete && m.UserValue == m.DesignValue:
			lines = append(lines, "        "+m.Label)
		case w.Optimize && UserValue(m.Label, axis.Name) == m.UserValue:
			// compact form, re-derivable by the parser
			lines = append(lines, "        "+m.Label+" > "+
				formatNumber(m.DesignValue))
		default:
			lines = append(lines, "        "+formatNumber(m.UserValue)+" "+
				m.Label+" > "+formatNumber(m.DesignValue))
		}
	}
	return lines
}

// axisDisplayName decides how an axis is named in the output.  A
// registered axis with its expected tag is omitted entirely; a custom
// axis is emitted upper-case; a registered axis with an unexpected tag
// keeps its original name.
func (w *Writer) axisDisplayName(axis *Axis) (string, bool) {
	lower := strings.ToLower(axis.Name)
	expectedTag, registered := registeredAxes[lower]

	if w.Optimize && registered && axis.Tag == expectedTag {
		return "", true
	}
	if !registered {
		return strings.ToUpper(axis.Name), false
	}
	return axis.Name, false
}

func (w *Writer) formatMaster(master *Master, axes []*Axis) string {
	coords := make([]string, len(axes))
	for i, axis := range axes {
		coords[i] = formatNumber(master.Location[axis.Name])
	}

	name := master.Name
	if strings.Contains(master.Filename, "/") {
		name = strings.TrimSuffix(master.Filename, ".ufo")
	}

	line := "    " + name + " [" + strings.Join(coords, ", ") + "]"
	if master.IsBase {
		line += " @base"
	}
	return line
}

func formatInstance(inst *Instance, axes []*Axis) string {
	coords := make([]string, len(axes))
	for i, axis := range axes {
		coords[i] = formatNumber(inst.Location[axis.Name])
	}
	return "    " + inst.StyleName + " [" + strings.Join(coords, ", ") + "]"
}

func (w *Writer) formatRule(rule *Rule, doc *Document) []string {
	condStr := formatConditions(rule.Conditions, doc)
	nameStr := formatRuleName(rule.Name)

	if rule.IsWildcard() {
		// never expanded, pass the pattern through unchanged
		return []string{"    " + rule.Pattern + " > " + rule.ToPattern +
			condStr + nameStr}
	}

	if len(rule.Substitutions) > 1 {
		if from, to, ok := w.detectSubstitutionPattern(rule.Substitutions); ok {
			return []string{"    " + from + " > " + to + condStr + nameStr}
		}
		var lines []string
		for i, sub := range rule.Substitutions {
			line := "    " + sub.From + " > " + sub.To + condStr
			if i == 0 {
				line += nameStr
			}
			lines = append(lines, line)
		}
		return lines
	}

	if len(rule.Substitutions) == 0 {
		return nil
	}
	sub := rule.Substitutions[0]
	return []string{"    " + sub.From + " > " + sub.To + condStr + nameStr}
}

// formatConditions renders a conjunction, collapsing a bound which
// coincides with the declared axis range to the one-sided form.
func formatConditions(conditions []Condition, doc *Document) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		lower, upper := 0.0, 1000.0
		if axis := doc.Axis(cond.Axis); axis != nil {
			lower, upper = axis.Minimum, axis.Maximum
		}
		switch {
		case cond.Minimum == cond.Maximum:
			parts = append(parts, cond.Axis+" == "+formatNumber(cond.Minimum))
		case cond.Minimum == lower:
			parts = append(parts, cond.Axis+" <= "+formatNumber(cond.Maximum))
		case cond.Maximum >= upper:
			parts = append(parts, cond.Axis+" >= "+formatNumber(cond.Minimum))
		default:
			parts = append(parts, formatNumber(cond.Minimum)+" <= "+
				cond.Axis+" <= "+formatNumber(cond.Maximum))
		}
	}
	return " (" + strings.Join(parts, " && ") + ")"
}

// formatRuleName renders the optional quoted rule name.  Auto-generated
// names of the form "rule<N>" are omitted.
func formatRuleName(name string) string {
	if name == "" || autoRuleNameRe.MatchString(name) {
		return ""
	}
	return " \"" + name + "\""
}

// detectSubstitutionPattern proposes a compact wildcard notation for a
// list of substitutions which all append the same literal suffix to
// their source glyph.  Source glyphs are greedily grouped into maximal
// shared-prefix wildcard groups, preferring larger groups and longer
// prefixes.  If a glyph set is available, the proposed patterns are
// re-expanded against it and the explicit glyph list is substituted
// whenever the expansion does not exactly reproduce the original
// sources; compaction must never change semantics.
func (w *Writer) detectSubstitutionPattern(subs []Substitution) (string, string, bool) {
	if len(subs) < 2 {
		return "", "", false
	}

	suffix := ""
	for i, sub := range subs {
		if !strings.HasPrefix(sub.To, sub.From+".") {
			return "", "", false
		}
		s := sub.To[len(sub.From):]
		if i == 0 {
			suffix = s
		} else if s != suffix {
			return "", "", false
		}
	}

	fromGlyphs := make([]string, len(subs))
	for i, sub := range subs {
		fromGlyphs[i] = sub.From
	}

	// collect candidate prefix groups of size >= 2
	groups := make(map[string][]string)
	for _, glyph := range fromGlyphs {
		for plen := 3; plen <= len(glyph); plen++ {
			prefix := glyph[:plen]
			var matching []string
			for _, g := range fromGlyphs {
				if strings.HasPrefix(g, prefix) {
					matching = append(matching, g)
				}
			}
			if len(matching) > 1 && len(matching) > len(groups[prefix]) {
				groups[prefix] = matching
			}
		}
	}

	prefixes := make([]string, 0, len(groups))
	for prefix := range groups {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		a, b := prefixes[i], prefixes[j]
		if len(groups[a]) != len(groups[b]) {
			return len(groups[a]) > len(groups[b])
		}
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	used := make(map[string]bool)
	var patterns []string
	for _, prefix := range prefixes {
		conflict := false
		for _, g := range groups[prefix] {
			if used[g] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		patterns = append(patterns, prefix+"*")
		for _, g := range groups[prefix] {
			used[g] = true
		}
	}
	for _, glyph := range fromGlyphs {
		if !used[glyph] {
			patterns = append(patterns, glyph)
		}
	}

	hasWildcard := false
	for _, p := range patterns {
		if strings.Contains(p, "*") {
			hasWildcard = true
			break
		}
	}
	if hasWildcard && w.Glyphs != nil {
		expanded := Expand(patterns, w.Glyphs)
		if len(expanded) != len(fromGlyphs) {
			return strings.Join(fromGlyphs, " "), suffix, true
		}
		for _, g := range fromGlyphs {
			if !expanded[g] {
				return strings.Join(fromGlyphs, " "), suffix, true
			}
		}
	}
	return strings.Join(patterns, " "), suffix, true
}

// formatNumber renders integral values without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
