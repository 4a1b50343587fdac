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
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"seehuhn.de/go/dssketch/designspace"
)

// A Converter translates between sketch Documents and designspace
// documents.
//
// Glyphs, when non-nil, is the set of glyph names available in the
// font sources.  It is needed to expand wildcard rules when converting
// to a designspace document.  Warnings collected during a conversion
// are available via the Warnings method; a warning never aborts the
// conversion.
type Converter struct {
	Glyphs GlyphSet

	warnings []string
}

// Warnings returns the diagnostics collected by earlier conversions.
func (c *Converter) Warnings() []string {
	return c.warnings
}

func (c *Converter) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// ToDesignspace converts a sketch document into a designspace
// document.  Wildcard rules are expanded against the glyph set; a
// substitution whose target glyph does not exist is skipped with a
// warning.
func (c *Converter) ToDesignspace(doc *Document) (*designspace.Document, error) {
	ds := &designspace.Document{Format: "5.0"}

	for _, axis := range doc.Axes {
		ds.Axes = append(ds.Axes, convertAxis(axis))
	}
	for _, master := range doc.Masters {
		ds.Sources = append(ds.Sources, convertMaster(master, doc))
	}
	for _, inst := range doc.Instances {
		ds.Instances = append(ds.Instances, convertInstance(inst, doc))
	}
	for _, rule := range doc.Rules {
		dsRule := c.convertRule(rule, doc)
		if dsRule != nil {
			ds.Rules = append(ds.Rules, dsRule)
		}
	}
	return ds, nil
}

func convertAxis(axis *Axis) *designspace.Axis {
	dsAxis := &designspace.Axis{
		Name:    axis.Name,
		Tag:     axis.Tag,
		Default: axis.Default,
		LabelNames: []designspace.LabelName{
			{Lang: "en", Name: titleCaser.String(axis.Name)},
		},
	}

	if axis.IsDiscrete() {
		dsAxis.SetDiscreteValues([]float64{0, 1})
		if len(axis.Mappings) == 0 {
			dsAxis.Labels = []designspace.Label{
				{Name: "Upright", UserValue: 0, Elidable: true},
				{Name: "Italic", UserValue: 1},
			}
		} else {
			for _, m := range axis.Mappings {
				dsAxis.Labels = append(dsAxis.Labels, designspace.Label{
					Name:      m.Label,
					UserValue: m.UserValue,
					Elidable:  m.UserValue == axis.Default,
				})
			}
		}
		return dsAxis
	}

	minimum, maximum := axis.Minimum, axis.Maximum
	dsAxis.Minimum = &minimum
	dsAxis.Maximum = &maximum
	for _, m := range axis.Mappings {
		dsAxis.Map = append(dsAxis.Map, designspace.Mapping{
			Input:  m.UserValue,
			Output: m.DesignValue,
		})
		dsAxis.Labels = append(dsAxis.Labels, designspace.Label{
			Name:      m.Label,
			UserValue: m.UserValue,
			Elidable:  m.UserValue == axis.Default,
		})
	}
	return dsAxis
}

func convertMaster(master *Master, doc *Document) *designspace.Source {
	src := &designspace.Source{
		FamilyName: doc.Family,
		StyleName:  master.Name,
		Location:   locationDims(master.Location, doc.Axes),
	}

	if doc.Path != "" {
		prefix := strings.ReplaceAll(doc.Path, "\\", "/")
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		src.Filename = prefix + master.Filename
	} else {
		src.Filename = master.Filename
	}

	if master.IsBase {
		// the four copy flags always travel together
		flag := func() *designspace.CopyFlag {
			return &designspace.CopyFlag{Copy: 1}
		}
		src.Lib = flag()
		src.Info = flag()
		src.Groups = flag()
		src.Features = flag()
	}
	return src
}

func convertInstance(inst *Instance, doc *Document) *designspace.Instance {
	familyName := inst.FamilyName
	if familyName == "" {
		familyName = doc.Family
	}

	strip := strings.NewReplacer(" ", "", "-", "")
	return &designspace.Instance{
		FamilyName:         familyName,
		StyleName:          inst.StyleName,
		Filename:           inst.Filename,
		PostScriptFontName: strip.Replace(familyName) + "-" + strip.Replace(inst.StyleName),
		Location:           locationDims(inst.Location, doc.Axes),
	}
}

func (c *Converter) convertRule(rule *Rule, doc *Document) *designspace.Rule {
	var subs []Substitution
	if rule.IsWildcard() {
		if c.Glyphs == nil {
			c.warnf("rule %q: no glyph set available to expand %q, rule dropped",
				rule.Name, rule.Pattern)
			return nil
		}
		subs = c.expandWildcard(rule)
	} else {
		subs = append(subs, rule.Substitutions...)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].From < subs[j].From
	})

	dsRule := &designspace.Rule{Name: rule.Name}
	for _, sub := range subs {
		dsRule.Subs = append(dsRule.Subs, designspace.Sub{
			Name: sub.From,
			With: sub.To,
		})
	}
	if len(rule.Conditions) > 0 {
		set := designspace.ConditionSet{}
		for _, cond := range rule.Conditions {
			minimum, maximum := cond.Minimum, cond.Maximum
			set.Conditions = append(set.Conditions, designspace.Condition{
				Name:    cond.Axis,
				Minimum: &minimum,
				Maximum: &maximum,
			})
		}
		dsRule.ConditionSets = []designspace.ConditionSet{set}
	}
	return dsRule
}

// expandWildcard turns an unexpanded wildcard rule into concrete
// substitutions.  Substitutions whose target glyph is missing from the
// glyph set are skipped with a warning; the rest of the rule proceeds.
func (c *Converter) expandWildcard(rule *Rule) []Substitution {
	patterns := strings.Fields(rule.Pattern)
	matched := Expand(patterns, c.Glyphs)

	glyphs := make([]string, 0, len(matched))
	for glyph := range matched {
		glyphs = append(glyphs, glyph)
	}
	sort.Strings(glyphs)

	var subs []Substitution
	for _, glyph := range glyphs {
		var target string
		if strings.HasPrefix(rule.ToPattern, ".") {
			if strings.HasSuffix(glyph, rule.ToPattern) {
				// already carries the suffix
				continue
			}
			target = glyph + rule.ToPattern
		} else {
			target = rule.ToPattern
		}
		if !c.Glyphs[target] {
			c.warnf("rule %q: skipping %s > %s, target glyph not in sources",
				rule.Name, glyph, target)
			continue
		}
		subs = append(subs, Substitution{From: glyph, To: target})
	}
	return subs
}

// locationDims renders a location in declared axis order, with any
// unexpected extra axes sorted at the end.
func locationDims(loc Location, axes []*Axis) []designspace.Dimension {
	var dims []designspace.Dimension
	seen := make(map[string]bool)
	for _, axis := range axes {
		if v, ok := loc[axis.Name]; ok {
			dims = append(dims, designspace.Dimension{Name: axis.Name, XValue: v})
			seen[axis.Name] = true
		}
	}
	var extra []string
	for name := range loc {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		dims = append(dims, designspace.Dimension{Name: name, XValue: loc[name]})
	}
	return dims
}

// FromDesignspace converts a designspace document into a sketch
// document.  When all sources share one directory, the directory moves
// into the document path and is stripped from the per-master
// filenames.
func (c *Converter) FromDesignspace(ds *designspace.Document) (*Document, error) {
	doc := &Document{Family: familyName(ds)}
	doc.Path = c.mastersPath(ds)

	for _, dsAxis := range ds.Axes {
		doc.Axes = append(doc.Axes, axisFromDesignspace(dsAxis))
	}
	for _, src := range ds.Sources {
		doc.Masters = append(doc.Masters, masterFromDesignspace(src, doc.Path))
	}
	for _, inst := range ds.Instances {
		doc.Instances = append(doc.Instances, &Instance{
			Name:       inst.StyleName,
			FamilyName: inst.FamilyName,
			StyleName:  inst.StyleName,
			Filename:   inst.Filename,
			Location:   designspace.LocationMap(inst.Location),
		})
	}
	for i, dsRule := range ds.Rules {
		rule := ruleFromDesignspace(dsRule, i, ds)
		if rule != nil {
			doc.Rules = append(doc.Rules, rule)
		}
	}
	return doc, nil
}

func familyName(ds *designspace.Document) string {
	for _, inst := range ds.Instances {
		if inst.FamilyName != "" {
			return inst.FamilyName
		}
	}
	for _, src := range ds.Sources {
		if src.FamilyName != "" {
			return src.FamilyName
		}
	}
	return "Unknown"
}

// mastersPath returns the directory shared by all sources, or "" when
// the sources sit next to the designspace file or in differing
// directories.
func (c *Converter) mastersPath(ds *designspace.Document) string {
	dirs := make(map[string]bool)
	for _, src := range ds.Sources {
		if src.Filename == "" {
			continue
		}
		dir := path.Dir(strings.ReplaceAll(src.Filename, "\\", "/"))
		if dir != "." {
			dirs[dir] = true
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	if len(dirs) == 1 {
		for dir := range dirs {
			return dir
		}
	}

	names := make([]string, 0, len(dirs))
	for dir := range dirs {
		names = append(names, dir)
	}
	sort.Strings(names)
	c.warnf("masters are in different directories (%s), keeping individual paths",
		strings.Join(names, ", "))
	return ""
}

func axisFromDesignspace(dsAxis *designspace.Axis) *Axis {
	axis := &Axis{
		Name:    dsAxis.Name,
		Tag:     dsAxis.Tag,
		Default: dsAxis.Default,
	}

	if dsAxis.IsDiscrete() {
		values := dsAxis.DiscreteValues()
		if len(values) > 0 {
			axis.Minimum = values[0]
			axis.Maximum = values[0]
			for _, v := range values[1:] {
				if v < axis.Minimum {
					axis.Minimum = v
				}
				if v > axis.Maximum {
					axis.Maximum = v
				}
			}
		}
	} else {
		if dsAxis.Minimum != nil {
			axis.Minimum = *dsAxis.Minimum
		}
		axis.Maximum = 1000
		if dsAxis.Maximum != nil {
			axis.Maximum = *dsAxis.Maximum
		}
	}

	designByUser := make(map[float64]float64)
	for _, m := range dsAxis.Map {
		designByUser[m.Input] = m.Output
	}

	labelled := make(map[float64]bool)
	for _, label := range dsAxis.Labels {
		design, ok := designByUser[label.UserValue]
		if !ok {
			design = label.UserValue
		}
		axis.Mappings = append(axis.Mappings, AxisMapping{
			UserValue:   label.UserValue,
			DesignValue: design,
			Label:       label.Name,
		})
		labelled[label.UserValue] = true
	}
	// map entries without a label get a generated name so that no
	// mapping pair is lost
	for _, m := range dsAxis.Map {
		if !labelled[m.Input] {
			axis.Mappings = append(axis.Mappings, AxisMapping{
				UserValue:   m.Input,
				DesignValue: m.Output,
				Label:       ValueName(m.Input, axis.Name),
			})
		}
	}
	sort.SliceStable(axis.Mappings, func(i, j int) bool {
		return axis.Mappings[i].UserValue < axis.Mappings[j].UserValue
	})

	return axis
}

func masterFromDesignspace(src *designspace.Source, mastersPath string) *Master {
	filename := strings.ReplaceAll(src.Filename, "\\", "/")
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))

	if mastersPath != "" && strings.HasPrefix(filename, mastersPath) {
		filename = strings.TrimPrefix(filename[len(mastersPath):], "/")
	}
	if filename == "" {
		filename = name + ".ufo"
	}

	isBase := src.Lib.Set() || src.Info.Set() || src.Groups.Set() || src.Features.Set()

	return &Master{
		Name:         name,
		Filename:     filename,
		Location:     designspace.LocationMap(src.Location),
		IsBase:       isBase,
		CopyLib:      src.Lib.Set(),
		CopyInfo:     src.Info.Set(),
		CopyGroups:   src.Groups.Set(),
		CopyFeatures: src.Features.Set(),
	}
}

func ruleFromDesignspace(dsRule *designspace.Rule, index int, ds *designspace.Document) *Rule {
	if len(dsRule.Subs) == 0 {
		return nil
	}

	name := dsRule.Name
	if name == "" {
		name = "rule" + strconv.Itoa(index+1)
	}
	rule := &Rule{Name: name}

	for _, sub := range dsRule.Subs {
		rule.Substitutions = append(rule.Substitutions, Substitution{
			From: sub.Name,
			To:   sub.With,
		})
	}
	sort.Slice(rule.Substitutions, func(i, j int) bool {
		return rule.Substitutions[i].From < rule.Substitutions[j].From
	})

	for _, set := range dsRule.ConditionSets {
		for _, cond := range set.Conditions {
			minimum, maximum := 0.0, 1000.0
			for _, axis := range ds.Axes {
				if axis.Name != cond.Name {
					continue
				}
				if axis.Minimum != nil {
					minimum = *axis.Minimum
				}
				if axis.Maximum != nil {
					maximum = *axis.Maximum
				}
				break
			}
			if cond.Minimum != nil {
				minimum = *cond.Minimum
			}
			if cond.Maximum != nil {
				maximum = *cond.Maximum
			}
			rule.Conditions = append(rule.Conditions, Condition{
				Axis:    cond.Name,
				Minimum: minimum,
				Maximum: maximum,
			})
		}
	}
	return rule
}
