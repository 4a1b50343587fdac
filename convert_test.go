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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/dssketch/designspace"
)

// TestDesignspaceFixedPoint converts a document to designspace form and
// back, which must reproduce the document exactly.
func TestDesignspaceFixedPoint(t *testing.T) {
	doc := testDocument()
	c := &Converter{}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := c.FromDesignspace(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", c.Warnings())
	}
	if d := cmp.Diff(doc, doc2); d != "" {
		t.Errorf("fixed point mismatch (-orig +converted):\n%s", d)
	}
}

func TestToDesignspaceAxes(t *testing.T) {
	doc := testDocument()
	c := &Converter{}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Axes) != 2 {
		t.Fatalf("got %d axes, want 2", len(ds.Axes))
	}

	weight := ds.Axes[0]
	if weight.Minimum == nil || *weight.Minimum != 100 ||
		weight.Maximum == nil || *weight.Maximum != 900 {
		t.Errorf("weight range wrong: %+v", weight)
	}
	wantMap := []designspace.Mapping{
		{Input: 300, Output: 40},
		{Input: 400, Output: 90},
		{Input: 700, Output: 160},
	}
	if d := cmp.Diff(wantMap, weight.Map); d != "" {
		t.Errorf("weight map mismatch (-want +got):\n%s", d)
	}
	// only the default location is elidable
	for _, label := range weight.Labels {
		if label.Elidable != (label.UserValue == 400) {
			t.Errorf("label %q: elidable = %t", label.Name, label.Elidable)
		}
	}

	italic := ds.Axes[1]
	if !italic.IsDiscrete() {
		t.Fatal("italic axis not discrete")
	}
	if d := cmp.Diff([]float64{0, 1}, italic.DiscreteValues()); d != "" {
		t.Errorf("discrete values mismatch (-want +got):\n%s", d)
	}
	if italic.Minimum != nil || italic.Maximum != nil {
		t.Error("discrete axis must not carry minimum/maximum")
	}
}

func TestToDesignspaceSources(t *testing.T) {
	doc := testDocument()
	c := &Converter{}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(ds.Sources))
	}
	if got := ds.Sources[0].Filename; got != "masters/Light.ufo" {
		t.Errorf("got filename %q, want %q", got, "masters/Light.ufo")
	}

	base := ds.Sources[1]
	if !base.Lib.Set() || !base.Info.Set() ||
		!base.Groups.Set() || !base.Features.Set() {
		t.Errorf("base master misses copy flags: %+v", base)
	}
	other := ds.Sources[0]
	if other.Lib.Set() || other.Info.Set() {
		t.Errorf("non-base master carries copy flags: %+v", other)
	}

	wantLoc := []designspace.Dimension{
		{Name: "weight", XValue: 40},
		{Name: "italic", XValue: 0},
	}
	if d := cmp.Diff(wantLoc, ds.Sources[0].Location); d != "" {
		t.Errorf("location mismatch (-want +got):\n%s", d)
	}
}

func TestPostScriptFontName(t *testing.T) {
	doc := &Document{
		Family: "Demo Sans",
		Instances: []*Instance{
			{Name: "Extra Bold", FamilyName: "Demo Sans",
				StyleName: "Extra Bold", Location: Location{}},
		},
	}
	c := &Converter{}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := ds.Instances[0].PostScriptFontName
	if got != "DemoSans-ExtraBold" {
		t.Errorf("got %q, want %q", got, "DemoSans-ExtraBold")
	}
}

func TestWildcardExpansion(t *testing.T) {
	doc := &Document{
		Family: "Demo",
		Axes: []*Axis{
			{Name: "weight", Tag: "wght", Minimum: 100, Default: 400, Maximum: 900},
		},
		Rules: []*Rule{
			{
				Name:       "smallcaps",
				Pattern:    "Alpha* Beta",
				ToPattern:  ".sc",
				Conditions: []Condition{{Axis: "weight", Minimum: 600, Maximum: 900}},
			},
		},
	}
	c := &Converter{
		Glyphs: GlyphSet{
			"Alpha": true, "Alphatonos": true, "Beta": true,
			"Alpha.sc": true, "Alphatonos.sc": true,
		},
	}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(ds.Rules))
	}
	want := []designspace.Sub{
		{Name: "Alpha", With: "Alpha.sc"},
		{Name: "Alphatonos", With: "Alphatonos.sc"},
	}
	if d := cmp.Diff(want, ds.Rules[0].Subs); d != "" {
		t.Errorf("subs mismatch (-want +got):\n%s", d)
	}

	// Beta.sc is not in the glyph set, so Beta > Beta.sc is skipped
	warnings := c.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Beta.sc") {
		t.Errorf("got warnings %v, want one about Beta.sc", warnings)
	}
}

func TestWildcardWithoutGlyphs(t *testing.T) {
	doc := &Document{
		Family: "Demo",
		Rules: []*Rule{
			{Name: "rule1", Pattern: "a b", ToPattern: ".alt"},
		},
	}
	c := &Converter{}
	ds, err := c.ToDesignspace(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Rules) != 0 {
		t.Errorf("got %d rules, want 0", len(ds.Rules))
	}
	if len(c.Warnings()) != 1 {
		t.Errorf("got warnings %v, want one", c.Warnings())
	}
}

func TestMastersPath(t *testing.T) {
	t.Run("shared directory", func(t *testing.T) {
		ds := &designspace.Document{
			Sources: []*designspace.Source{
				{Filename: "masters/Light.ufo", FamilyName: "Demo"},
				{Filename: "masters/Bold.ufo", FamilyName: "Demo"},
			},
		}
		c := &Converter{}
		doc, err := c.FromDesignspace(ds)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Path != "masters" {
			t.Errorf("got path %q, want %q", doc.Path, "masters")
		}
		if doc.Masters[0].Filename != "Light.ufo" {
			t.Errorf("prefix not stripped: %q", doc.Masters[0].Filename)
		}
	})

	t.Run("differing directories", func(t *testing.T) {
		ds := &designspace.Document{
			Sources: []*designspace.Source{
				{Filename: "masters/Light.ufo", FamilyName: "Demo"},
				{Filename: "other/Bold.ufo", FamilyName: "Demo"},
			},
		}
		c := &Converter{}
		doc, err := c.FromDesignspace(ds)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Path != "" {
			t.Errorf("got path %q, want empty", doc.Path)
		}
		if doc.Masters[0].Filename != "masters/Light.ufo" {
			t.Errorf("filename changed: %q", doc.Masters[0].Filename)
		}
		if len(c.Warnings()) != 1 {
			t.Errorf("got warnings %v, want one", c.Warnings())
		}
	})
}

func TestFromDesignspaceUnlabelledMap(t *testing.T) {
	minimum, maximum := 100.0, 900.0
	ds := &designspace.Document{
		Axes: []*designspace.Axis{
			{
				Name: "weight", Tag: "wght",
				Minimum: &minimum, Maximum: &maximum, Default: 400,
				Map: []designspace.Mapping{
					{Input: 400, Output: 90},
					{Input: 700, Output: 160},
				},
				Labels: []designspace.Label{
					{UserValue: 400, Name: "Regular", Elidable: true},
				},
			},
		},
		Sources: []*designspace.Source{{FamilyName: "Demo"}},
	}
	c := &Converter{}
	doc, err := c.FromDesignspace(ds)
	if err != nil {
		t.Fatal(err)
	}

	want := []AxisMapping{
		{UserValue: 400, DesignValue: 90, Label: "Regular"},
		{UserValue: 700, DesignValue: 160, Label: "Bold"},
	}
	if d := cmp.Diff(want, doc.Axes[0].Mappings); d != "" {
		t.Errorf("mappings mismatch (-want +got):\n%s", d)
	}
}

func TestFromDesignspaceRuleConditions(t *testing.T) {
	minimum, maximum := 100.0, 900.0
	lower := 600.0
	ds := &designspace.Document{
		Axes: []*designspace.Axis{
			{Name: "weight", Tag: "wght",
				Minimum: &minimum, Maximum: &maximum, Default: 400},
		},
		Sources: []*designspace.Source{{FamilyName: "Demo"}},
		Rules: []*designspace.Rule{
			{
				// unnamed rule, one-sided condition
				ConditionSets: []designspace.ConditionSet{
					{Conditions: []designspace.Condition{
						{Name: "weight", Minimum: &lower},
					}},
				},
				Subs: []designspace.Sub{{Name: "dollar", With: "dollar.rvrn"}},
			},
			{
				Name: "empty", // no substitutions, dropped
			},
		},
	}
	c := &Converter{}
	doc, err := c.FromDesignspace(ds)
	if err != nil {
		t.Fatal(err)
	}

	want := []*Rule{
		{
			Name:          "rule1",
			Substitutions: []Substitution{{From: "dollar", To: "dollar.rvrn"}},
			Conditions:    []Condition{{Axis: "weight", Minimum: 600, Maximum: 900}},
		},
	}
	if d := cmp.Diff(want, doc.Rules); d != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", d)
	}
}
