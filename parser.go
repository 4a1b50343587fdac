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
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// section identifies which part of a sketch the parser is currently in.
type section int

const (
	secNone section = iota
	secFamily
	secAxes
	secMasters
	secInstances
	secRules
)

var (
	errBareLabel     = errors.New("bare labels are only allowed on discrete axes")
	errNoAxes        = errors.New("coordinates given before any axis declaration")
	errOutsideBlock  = errors.New("content before any section header")
	errEmptyRange    = errors.New("empty range")
	errMissingDesign = errors.New("missing design value")
)

// tagToName recovers the canonical axis name for a registered tag.
var tagToName = map[string]string{
	"ital": "italic",
	"opsz": "optical",
	"slnt": "slant",
	"wdth": "width",
	"wght": "weight",
}

// nameToTag is the reverse direction, used when a legacy axis line
// carries no explicit tag.
var nameToTag = map[string]string{
	"italic":  "ital",
	"optical": "opsz",
	"slant":   "slnt",
	"width":   "wdth",
	"weight":  "wght",
}

var (
	axisFullRe   = regexp.MustCompile(`^\w+\s+\w{4}\s+`)
	axisTagRe    = regexp.MustCompile(`^\w{4}\s+`)
	axisLegacyRe = regexp.MustCompile(`^\w+\s+([\d.:\-]+|binary|discrete)`)
	ruleRe       = regexp.MustCompile(`^(.+?)\s*>\s*(.+?)\s*\(([^)]+)\)(?:\s*"([^"]+)")?`)
	ruleBareRe   = regexp.MustCompile(`^([^>]+?)\s*>\s*([^\s(">]+)(?:\s*"([^"]+)")?$`)
	condRangeRe  = regexp.MustCompile(`([\d.]+)\s*<=\s*(\w+)\s*<=\s*([\d.]+)`)
	condSingleRe = regexp.MustCompile(`(\w+)\s*(>=|<=|==)\s*([\d.]+)`)
)

// A Parser converts sketch text into a Document.  The zero value is
// ready to use.  After Parse returns, Warnings holds non-fatal
// diagnostics such as skipped rule lines.
type Parser struct {
	Warnings []string

	doc     *Document
	section section
	axis    *Axis // axis most recently opened, parent of mapping lines
}

// Parse reads a complete sketch.  Errors are reported with the
// 1-based line number and the original line text.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	p.doc = &Document{}
	p.section = secNone
	p.axis = nil

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		original := strings.TrimSpace(raw)

		// Strip a trailing comment.  A line which is only a comment is
		// still dispatched, so that directives can be embedded in
		// comments.
		work := raw
		if idx := strings.Index(raw, "#"); idx >= 0 {
			work = raw[:idx]
			if strings.TrimSpace(work) == "" {
				err := p.handleLine(strings.TrimSpace(raw[idx:]))
				if err != nil {
					return nil, &GrammarError{Line: lineNo, Text: original, Err: err}
				}
				continue
			}
		}

		line := strings.TrimSpace(work)
		if line == "" {
			continue
		}
		if err := p.handleLine(line); err != nil {
			return nil, &GrammarError{Line: lineNo, Text: original, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// ParseString is a convenience wrapper around Parse.
func (p *Parser) ParseString(s string) (*Document, error) {
	return p.Parse(strings.NewReader(s))
}

func (p *Parser) handleLine(line string) error {
	if strings.HasPrefix(line, "#") {
		// comment directives carry no content yet
		return nil
	}

	switch {
	case strings.HasPrefix(line, "family "):
		p.doc.Family = strings.TrimSpace(line[len("family "):])
		p.section = secFamily
	case strings.HasPrefix(line, "suffix "):
		p.doc.Suffix = strings.TrimSpace(line[len("suffix "):])
	case strings.HasPrefix(line, "path "):
		p.doc.Path = strings.TrimSpace(line[len("path "):])
	case line == "axes" || strings.HasPrefix(line, "axes "):
		p.section = secAxes
	case line == "masters" || strings.HasPrefix(line, "masters "):
		p.section = secMasters
	case line == "instances" || strings.HasPrefix(line, "instances "):
		p.section = secInstances
		if strings.Contains(line, "auto") {
			p.autoInstances()
		}
	case strings.HasPrefix(line, "rules"):
		p.section = secRules
	default:
		switch p.section {
		case secAxes:
			return p.parseAxisLine(line)
		case secMasters:
			return p.parseMasterLine(line)
		case secInstances:
			return p.parseInstanceLine(line)
		case secRules:
			return p.parseRuleLine(line)
		case secNone:
			return errOutsideBlock
		}
	}
	return nil
}

// parseAxisLine handles both axis definitions and, when an axis is
// open, mapping lines.  The three definition grammars are tried in
// order; the first match wins.
func (p *Parser) parseAxisLine(line string) error {
	var name, tag, rangePart string

	// Mapping lines always contain ">" (bare labels aside), so lines
	// with ">" are never axis definitions.  Without this guard an
	// explicit mapping with a four-letter label, like "100 Thin > 10",
	// would be taken for a "name tag range" definition.
	switch {
	case axisFullRe.MatchString(line) && !strings.Contains(line, ">"):
		// full form: "weight wght 100:400:900"
		parts := strings.Fields(line)
		name = parts[0]
		tag = parts[1]
		if len(parts) > 2 {
			rangePart = parts[2]
		}

	case axisTagRe.MatchString(line) && !strings.Contains(line, ">"):
		// shortened form for registered axes: "wght 100:400:900"
		parts := strings.Fields(line)
		tag = parts[0]
		name = tagToName[tag]
		if name == "" {
			name = strings.ToUpper(tag)
		}
		if len(parts) > 1 {
			rangePart = parts[1]
		}

	case axisLegacyRe.MatchString(line) && !strings.Contains(line, ">"):
		// legacy form without a tag: "weight 100:400:900"
		parts := strings.Fields(line)
		name = parts[0]
		tag = nameToTag[strings.ToLower(name)]
		if tag == "" {
			tag = name
			if len(tag) > 4 {
				tag = tag[:4]
			}
			tag = strings.ToUpper(tag)
		}
		if len(parts) > 1 {
			rangePart = parts[1]
		}

	default:
		if p.axis == nil {
			return errNoAxes
		}
		return p.parseMappingLine(line)
	}

	minimum, def, maximum := 0.0, 0.0, 0.0
	if rangePart != "" {
		var err error
		minimum, def, maximum, err = parseRange(rangePart)
		if err != nil {
			return err
		}
	}

	p.axis = &Axis{
		Name:    name,
		Tag:     tag,
		Minimum: minimum,
		Default: def,
		Maximum: maximum,
	}
	p.doc.Axes = append(p.doc.Axes, p.axis)
	return nil
}

// parseRange parses "binary", "discrete", a single number, or a 2- or
// 3-part colon range.  The 2-part form repeats the first value as the
// default.
func parseRange(s string) (minimum, def, maximum float64, err error) {
	if s == "binary" || s == "discrete" {
		return 0, 0, 1, nil
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 {
			return 0, 0, 0, errEmptyRange
		}
		minimum, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, 0, 0, err
		}
		maximum, err = strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil {
			return 0, 0, 0, err
		}
		def = minimum
		if len(parts) > 2 {
			def, err = strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return 0, 0, 0, err
			}
		}
		return minimum, def, maximum, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return v, v, v, nil
}

// parseMappingLine adds one mapping to the open axis.  Formats:
//
//	400 Regular > 125   explicit user value
//	Regular > 125       user value from the standard mappings
//	Italic              bare label, discrete axes only
func (p *Parser) parseMappingLine(line string) error {
	axis := p.axis

	if left, right, found := strings.Cut(line, ">"); found {
		design, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
		if err != nil {
			return errMissingDesign
		}

		var user float64
		var label string
		fields := strings.Fields(left)
		if len(fields) > 0 && isNumber(fields[0]) {
			user, _ = strconv.ParseFloat(fields[0], 64)
			label = strings.Join(fields[1:], " ")
			if label == "" {
				label = ValueName(user, axis.Name)
			}
		} else {
			label = strings.TrimSpace(left)
			user = UserValue(label, axis.Name)
		}
		axis.Mappings = append(axis.Mappings, AxisMapping{
			UserValue:   user,
			DesignValue: design,
			Label:       label,
		})
		return nil
	}

	// bare label form
	if axis.Minimum != 0 || axis.Default != 0 || axis.Maximum != 1 {
		return errBareLabel
	}
	label := line
	value, ok := discreteLabelValue(axis.Tag, label)
	if !ok {
		value, ok = lookupUserValue(label, axis.Name)
	}
	if !ok {
		return &LookupError{Axis: axis.Name, Label: label}
	}
	axis.Mappings = append(axis.Mappings, AxisMapping{
		UserValue:   value,
		DesignValue: value, // discrete axes are identity-mapped
		Label:       label,
	})
	return nil
}

// parseMasterLine handles "Light [0, 0]", "Light 0 0" and
// "masters/Light [0, 0] @base" forms.  Coordinates map positionally
// onto the declared axes.
func (p *Parser) parseMasterLine(line string) error {
	isBase := strings.Contains(line, "@base")
	line = strings.TrimSpace(strings.ReplaceAll(line, "@base", ""))

	name, coords, err := parseCoordLine(line)
	if err != nil {
		return err
	}
	if len(coords) > 0 && len(p.doc.Axes) == 0 {
		return errNoAxes
	}

	location := make(Location)
	for i, axis := range p.doc.Axes {
		if i < len(coords) {
			location[axis.Name] = coords[i]
		}
	}

	var filename string
	if strings.Contains(name, "/") {
		filename = name
		if !strings.HasSuffix(filename, ".ufo") {
			filename += ".ufo"
		}
		base := path.Base(name)
		name = strings.TrimSuffix(base, path.Ext(base))
	} else {
		filename = name + ".ufo"
	}

	p.doc.Masters = append(p.doc.Masters, &Master{
		Name:         name,
		Filename:     filename,
		Location:     location,
		IsBase:       isBase,
		CopyInfo:     isBase,
		CopyLib:      isBase,
		CopyGroups:   isBase,
		CopyFeatures: isBase,
	})
	return nil
}

// parseInstanceLine handles explicit instance lines, which use the
// same positional coordinate notation as masters.
func (p *Parser) parseInstanceLine(line string) error {
	if line == "auto" {
		p.autoInstances()
		return nil
	}

	name, coords, err := parseCoordLine(line)
	if err != nil {
		return err
	}
	if len(coords) > 0 && len(p.doc.Axes) == 0 {
		return errNoAxes
	}

	location := make(Location)
	for i, axis := range p.doc.Axes {
		if i < len(coords) {
			location[axis.Name] = coords[i]
		}
	}

	p.doc.Instances = append(p.doc.Instances, &Instance{
		Name:       name,
		FamilyName: p.doc.Family,
		StyleName:  name,
		Location:   location,
	})
	return nil
}

// parseCoordLine splits "Name [v1, v2]" or "Name v1 v2" into the name
// and the coordinate values.
func parseCoordLine(line string) (string, []float64, error) {
	if open := strings.Index(line, "["); open >= 0 {
		end := strings.Index(line, "]")
		if end < open {
			return "", nil, errors.New("unbalanced brackets")
		}
		name := strings.TrimSpace(line[:open])
		var coords []float64
		for _, field := range strings.Split(line[open+1:end], ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return "", nil, err
			}
			coords = append(coords, v)
		}
		return name, coords, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.New("empty line")
	}
	var coords []float64
	for _, field := range fields[1:] {
		if !isNumber(field) {
			continue
		}
		v, _ := strconv.ParseFloat(field, 64)
		coords = append(coords, v)
	}
	return fields[0], coords, nil
}

// parseRuleLine handles one substitution rule:
//
//	fromPart > toPart (conditions) "name"
//
// The condition clause may be absent for rules which apply everywhere.
// A from part containing a space or "*" is stored as an unexpanded
// wildcard rule.  A malformed line with ">" is a warning, not an
// error.
func (p *Parser) parseRuleLine(line string) error {
	var fromPart, toPart, name string
	var conditions []Condition

	if m := ruleRe.FindStringSubmatch(line); m != nil {
		fromPart = strings.TrimSpace(m[1])
		toPart = strings.TrimSpace(m[2])
		var err error
		conditions, err = p.parseConditions(m[3])
		if err != nil {
			return err
		}
		name = m[4]
	} else if m := ruleBareRe.FindStringSubmatch(line); m != nil {
		fromPart = strings.TrimSpace(m[1])
		toPart = strings.TrimSpace(m[2])
		name = m[3]
	} else {
		p.Warnings = append(p.Warnings,
			fmt.Sprintf("skipping malformed rule line %q", line))
		return nil
	}

	if name == "" {
		name = "rule" + strconv.Itoa(len(p.doc.Rules)+1)
	}

	rule := &Rule{Name: name, Conditions: conditions}
	if strings.Contains(fromPart, " ") || strings.Contains(fromPart, "*") {
		rule.Pattern = fromPart
		rule.ToPattern = toPart
	} else {
		to := toPart
		if strings.HasPrefix(toPart, ".") {
			to = fromPart + toPart
		}
		rule.Substitutions = []Substitution{{From: fromPart, To: to}}
	}
	p.doc.Rules = append(p.doc.Rules, rule)
	return nil
}

// parseConditions parses a "&&"-joined conjunction of per-axis range
// clauses.  A one-sided clause takes the omitted bound from the
// declared axis range, falling back to 0 and 1000 for unknown axes.
func (p *Parser) parseConditions(condStr string) ([]Condition, error) {
	var conditions []Condition
	for _, clause := range strings.Split(condStr, "&&") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		if m := condRangeRe.FindStringSubmatch(clause); m != nil {
			minimum, err1 := strconv.ParseFloat(m[1], 64)
			maximum, err2 := strconv.ParseFloat(m[3], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("bad condition %q", clause)
			}
			conditions = append(conditions, Condition{
				Axis:    m[2],
				Minimum: minimum,
				Maximum: maximum,
			})
			continue
		}

		if m := condSingleRe.FindStringSubmatch(clause); m != nil {
			value, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return nil, fmt.Errorf("bad condition %q", clause)
			}
			cond := Condition{Axis: m[1]}
			switch m[2] {
			case ">=":
				cond.Minimum = value
				cond.Maximum = p.axisUpperBound(m[1])
			case "<=":
				cond.Minimum = p.axisLowerBound(m[1])
				cond.Maximum = value
			case "==":
				cond.Minimum = value
				cond.Maximum = value
			}
			conditions = append(conditions, cond)
			continue
		}

		return nil, fmt.Errorf("bad condition %q", clause)
	}
	return conditions, nil
}

func (p *Parser) axisUpperBound(name string) float64 {
	if axis := p.doc.Axis(name); axis != nil {
		return axis.Maximum
	}
	return 1000
}

func (p *Parser) axisLowerBound(name string) float64 {
	if axis := p.doc.Axis(name); axis != nil {
		return axis.Minimum
	}
	return 0
}

// autoInstances derives instances from the axis mappings whose label is
// one of the common style names.
func (p *Parser) autoInstances() {
	for _, axis := range p.doc.Axes {
		for _, m := range axis.Mappings {
			switch m.Label {
			case "Regular", "Bold", "Light":
				p.doc.Instances = append(p.doc.Instances, &Instance{
					Name:       m.Label,
					FamilyName: p.doc.Family,
					StyleName:  m.Label,
					Location:   Location{axis.Name: m.DesignValue},
				})
			}
		}
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
