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

// Package designspace reads and writes designspace documents, the XML
// format used to describe variable font design spaces.  Only the parts
// of format 5 needed for conversion to and from sketch notation are
// covered: axes with maps and labels, sources, instances, and
// substitution rules.
package designspace

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
)

// Document is one designspace file.
type Document struct {
	XMLName xml.Name `xml:"designspace"`
	Format  string   `xml:"format,attr"`

	Axes      []*Axis     `xml:"axes>axis,omitempty"`
	Sources   []*Source   `xml:"sources>source,omitempty"`
	Instances []*Instance `xml:"instances>instance,omitempty"`
	Rules     []*Rule     `xml:"rules>rule,omitempty"`
}

// Axis describes one design space dimension.  Continuous axes carry
// Minimum and Maximum; discrete axes carry Values instead.
type Axis struct {
	Name    string   `xml:"name,attr"`
	Tag     string   `xml:"tag,attr"`
	Minimum *float64 `xml:"minimum,attr,omitempty"`
	Maximum *float64 `xml:"maximum,attr,omitempty"`
	Default float64  `xml:"default,attr"`
	Values  string   `xml:"values,attr,omitempty"` // space-separated, discrete axes only

	LabelNames []LabelName `xml:"labelname"`
	Map        []Mapping   `xml:"map"`
	Labels     []Label     `xml:"labels>label,omitempty"`
}

// IsDiscrete reports whether the axis is a discrete axis.
func (a *Axis) IsDiscrete() bool {
	return a.Values != ""
}

// DiscreteValues returns the parsed Values attribute.
func (a *Axis) DiscreteValues() []float64 {
	var values []float64
	for _, field := range strings.Fields(a.Values) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// SetDiscreteValues stores vals in the Values attribute.
func (a *Axis) SetDiscreteValues(vals []float64) {
	fields := make([]string, len(vals))
	for i, v := range vals {
		fields[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	a.Values = strings.Join(fields, " ")
}

// LabelName is a localized axis name, e.g. <labelname xml:lang="en">.
type LabelName struct {
	Lang string `xml:"xml:lang,attr"`
	Name string `xml:",chardata"`
}

// UnmarshalXML implements the xml.Unmarshaler interface.  The decoder
// reports the xml:lang attribute under the XML namespace URL, which
// the struct tag form never matches.
func (l *LabelName) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "lang" {
			l.Lang = attr.Value
		}
	}
	var name string
	if err := d.DecodeElement(&name, &start); err != nil {
		return err
	}
	l.Name = name
	return nil
}

// Mapping is one user space to design space map entry.
type Mapping struct {
	Input  float64 `xml:"input,attr"`
	Output float64 `xml:"output,attr"`
}

// Label is one named stop on an axis.
type Label struct {
	UserValue float64 `xml:"uservalue,attr"`
	Name      string  `xml:"name,attr"`
	Elidable  bool    `xml:"elidable,attr,omitempty"`
}

// CopyFlag marks a source as the origin of shared font-level data,
// e.g. <lib copy="1"/>.
type CopyFlag struct {
	Copy int `xml:"copy,attr"`
}

// Set reports whether the flag is present and non-zero.
func (f *CopyFlag) Set() bool {
	return f != nil && f.Copy != 0
}

// Source is one master.
type Source struct {
	Filename   string `xml:"filename,attr"`
	Name       string `xml:"name,attr,omitempty"`
	FamilyName string `xml:"familyname,attr,omitempty"`
	StyleName  string `xml:"stylename,attr,omitempty"`

	Lib      *CopyFlag `xml:"lib,omitempty"`
	Info     *CopyFlag `xml:"info,omitempty"`
	Groups   *CopyFlag `xml:"groups,omitempty"`
	Features *CopyFlag `xml:"features,omitempty"`

	Location []Dimension `xml:"location>dimension,omitempty"`
}

// Dimension is one coordinate of a location.
type Dimension struct {
	Name   string  `xml:"name,attr"`
	XValue float64 `xml:"xvalue,attr"`
}

// LocationMap converts a location element to a map.
func LocationMap(dims []Dimension) map[string]float64 {
	m := make(map[string]float64, len(dims))
	for _, d := range dims {
		m[d.Name] = d.XValue
	}
	return m
}

// Instance is one named interpolation target.
type Instance struct {
	FamilyName         string `xml:"familyname,attr,omitempty"`
	StyleName          string `xml:"stylename,attr,omitempty"`
	Name               string `xml:"name,attr,omitempty"`
	Filename           string `xml:"filename,attr,omitempty"`
	PostScriptFontName string `xml:"postscriptfontname,attr,omitempty"`

	Location []Dimension `xml:"location>dimension,omitempty"`
}

// Rule is a conditional glyph substitution.
type Rule struct {
	Name          string         `xml:"name,attr,omitempty"`
	ConditionSets []ConditionSet `xml:"conditionset"`
	Subs          []Sub          `xml:"sub"`
}

// ConditionSet is a conjunction of axis range conditions.
type ConditionSet struct {
	Conditions []Condition `xml:"condition"`
}

// Condition restricts a rule to a range on one axis.  An omitted bound
// means the corresponding end of the axis range.
type Condition struct {
	Name    string   `xml:"name,attr"`
	Minimum *float64 `xml:"minimum,attr,omitempty"`
	Maximum *float64 `xml:"maximum,attr,omitempty"`
}

// Sub is one glyph substitution pair.
type Sub struct {
	Name string `xml:"name,attr"`
	With string `xml:"with,attr"`
}

// Read decodes a designspace document.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := xml.NewDecoder(r)
	if err := dec.Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFile decodes the designspace document stored in the named file.
func ReadFile(name string) (*Document, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// Write encodes the document as XML.
func (doc *Document) Write(w io.Writer) error {
	if doc.Format == "" {
		doc.Format = "5.0"
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes the document to the named file.
func (doc *Document) WriteFile(name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := doc.Write(fd); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
