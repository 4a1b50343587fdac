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

// Location maps axis names to design space coordinates.
type Location map[string]float64

// AxisMapping is one named stop on an axis.  UserValue is the value an
// author specifies, DesignValue the internal interpolation coordinate.
type AxisMapping struct {
	UserValue   float64
	DesignValue float64
	Label       string
}

// Axis is one dimension of the design space.
//
// The mappings are kept sorted by user value.  The invariant
// Minimum <= Default <= Maximum holds for documents produced by the
// parser or the converter.
type Axis struct {
	Name     string
	Tag      string // four-character axis tag, e.g. "wght"
	Minimum  float64
	Default  float64
	Maximum  float64
	Mappings []AxisMapping
}

// IsDiscrete reports whether the axis uses the discrete convention: the
// range 0:0:1 together with a registered discrete axis name or tag.
// Discrete axes are identity-mapped and use single-label notation.
func (a *Axis) IsDiscrete() bool {
	if a.Minimum != 0 || a.Default != 0 || a.Maximum != 1 {
		return false
	}
	name := strings.ToLower(a.Name)
	return name == "italic" || name == "ital"
}

// DesignValue converts a user space value to a design space value using
// the axis mappings.  Values without a mapping pass through unchanged.
func (a *Axis) DesignValue(userValue float64) float64 {
	for _, m := range a.Mappings {
		if m.UserValue == userValue {
			return m.DesignValue
		}
	}
	return userValue
}

// Master is a font source located at specific design space coordinates.
type Master struct {
	Name     string
	Filename string
	Location Location

	// IsBase marks the master which anchors shared font-level data.
	// The four copy flags travel with it: the parser sets them
	// alongside IsBase, and in the designspace direction IsBase is
	// derived from them.  The format does not require that exactly one
	// master has it set.
	IsBase bool

	CopyInfo     bool
	CopyLib      bool
	CopyGroups   bool
	CopyFeatures bool
}

// Instance is a named interpolated font definition.
type Instance struct {
	Name       string
	FamilyName string
	StyleName  string
	Filename   string // optional
	Location   Location
}

// Condition restricts a rule to a range on one axis.  Minimum equal to
// Maximum encodes equality.
type Condition struct {
	Axis    string
	Minimum float64
	Maximum float64
}

// Substitution replaces one glyph by another while a rule is active.
type Substitution struct {
	From string
	To   string
}

// Rule is a glyph substitution conditioned on the axis location.  The
// conditions form a conjunction.
//
// A rule holds either concrete substitutions, or an unexpanded wildcard
// spec: Pattern is a space-separated list of glyph name patterns and
// ToPattern a suffix (starting with ".") or a literal target glyph.
// Wildcard rules are expanded against a real glyph set when the
// document is converted to a designspace document.
type Rule struct {
	Name          string
	Substitutions []Substitution
	Conditions    []Condition
	Pattern       string
	ToPattern     string
}

// IsWildcard reports whether the rule still needs glyph set expansion.
func (r *Rule) IsWildcard() bool {
	return r.Pattern != "" && r.ToPattern != ""
}

// Document is the in-memory form of a sketch.  Axis order is
// significant: it defines the coordinate order used by the positional
// master and instance notation.
type Document struct {
	Family string
	Suffix string
	Path   string // root for master files, relative to the sketch file

	Axes      []*Axis
	Masters   []*Master
	Instances []*Instance
	Rules     []*Rule
}

// Axis returns the axis with the given name, or nil.
func (d *Document) Axis(name string) *Axis {
	for _, a := range d.Axes {
		if a.Name == name {
			return a
		}
	}
	return nil
}
