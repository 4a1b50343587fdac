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

package designspace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func num(v float64) *float64 {
	return &v
}

func testDocument() *Document {
	return &Document{
		Format: "5.0",
		Axes: []*Axis{
			{
				Name: "weight", Tag: "wght",
				Minimum: num(100), Maximum: num(900), Default: 400,
				LabelNames: []LabelName{
					{Lang: "en", Name: "Weight"},
					{Lang: "de", Name: "Gewicht"},
				},
				Map: []Mapping{
					{Input: 300, Output: 40},
					{Input: 400, Output: 90},
				},
				Labels: []Label{
					{UserValue: 300, Name: "Light"},
					{UserValue: 400, Name: "Regular", Elidable: true},
				},
			},
			{
				Name: "italic", Tag: "ital",
				Default: 0, Values: "0 1",
				Labels: []Label{
					{UserValue: 0, Name: "Upright", Elidable: true},
					{UserValue: 1, Name: "Italic"},
				},
			},
		},
		Sources: []*Source{
			{
				Filename:   "masters/Regular.ufo",
				FamilyName: "Demo",
				StyleName:  "Regular",
				Lib:        &CopyFlag{Copy: 1},
				Info:       &CopyFlag{Copy: 1},
				Groups:     &CopyFlag{Copy: 1},
				Features:   &CopyFlag{Copy: 1},
				Location: []Dimension{
					{Name: "weight", XValue: 90},
					{Name: "italic", XValue: 0},
				},
			},
			{
				Filename:   "masters/Bold.ufo",
				FamilyName: "Demo",
				StyleName:  "Bold",
				Location: []Dimension{
					{Name: "weight", XValue: 160},
					{Name: "italic", XValue: 0},
				},
			},
		},
		Instances: []*Instance{
			{
				FamilyName:         "Demo",
				StyleName:          "Bold",
				PostScriptFontName: "Demo-Bold",
				Location: []Dimension{
					{Name: "weight", XValue: 160},
					{Name: "italic", XValue: 0},
				},
			},
		},
		Rules: []*Rule{
			{
				Name: "smallcaps",
				ConditionSets: []ConditionSet{
					{Conditions: []Condition{
						{Name: "weight", Minimum: num(600), Maximum: num(900)},
					}},
				},
				Subs: []Sub{{Name: "dollar", With: "dollar.rvrn"}},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	doc := testDocument()

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	doc2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	opts := cmpopts.IgnoreFields(Document{}, "XMLName")
	if d := cmp.Diff(doc, doc2, opts); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

// TestReadLabelName checks that the xml:lang attribute survives
// decoding; the attribute arrives under the XML namespace and needs
// special handling.
func TestReadLabelName(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<designspace format="5.0">
  <axes>
    <axis name="weight" tag="wght" minimum="100" maximum="900" default="400">
      <labelname xml:lang="en">Weight</labelname>
    </axis>
  </axes>
</designspace>
`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []LabelName{{Lang: "en", Name: "Weight"}}
	if d := cmp.Diff(want, doc.Axes[0].LabelNames); d != "" {
		t.Errorf("label names mismatch (-want +got):\n%s", d)
	}
}

// TestWriteOmitsEmptySections checks that empty container elements do
// not appear in the output.
func TestWriteOmitsEmptySections(t *testing.T) {
	doc := &Document{
		Axes: []*Axis{
			{Name: "weight", Tag: "wght",
				Minimum: num(100), Maximum: num(900), Default: 400},
		},
	}
	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<axes>") {
		t.Error("axes section missing")
	}
	for _, tag := range []string{"<sources>", "<instances>", "<rules>", "<labels>"} {
		if strings.Contains(out, tag) {
			t.Errorf("empty section %s emitted:\n%s", tag, out)
		}
	}
}

func TestWriteFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	doc := &Document{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML header")
	}
	if !strings.Contains(out, `format="5.0"`) {
		t.Error("format attribute not defaulted")
	}
}

func TestDiscreteValues(t *testing.T) {
	axis := &Axis{}
	if axis.IsDiscrete() {
		t.Error("axis without values reported discrete")
	}

	axis.SetDiscreteValues([]float64{0, 1})
	if axis.Values != "0 1" {
		t.Errorf("got values %q, want %q", axis.Values, "0 1")
	}
	if !axis.IsDiscrete() {
		t.Error("axis with values not reported discrete")
	}
	if d := cmp.Diff([]float64{0, 1}, axis.DiscreteValues()); d != "" {
		t.Errorf("values mismatch (-want +got):\n%s", d)
	}
}

func TestCopyFlag(t *testing.T) {
	var flag *CopyFlag
	if flag.Set() {
		t.Error("nil flag reported set")
	}
	if (&CopyFlag{}).Set() {
		t.Error("zero flag reported set")
	}
	if !(&CopyFlag{Copy: 1}).Set() {
		t.Error("copy=1 flag not reported set")
	}
}

func TestLocationMap(t *testing.T) {
	dims := []Dimension{
		{Name: "weight", XValue: 90},
		{Name: "italic", XValue: 1},
	}
	want := map[string]float64{"weight": 90, "italic": 1}
	if d := cmp.Diff(want, LocationMap(dims)); d != "" {
		t.Errorf("location mismatch (-want +got):\n%s", d)
	}
}
