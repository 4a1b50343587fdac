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
	"embed"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed data/unified-mappings.yaml data/unified-mappings.json data/discrete-axis-labels.yaml
var dataFiles embed.FS

// stdEntry is one named stop in the standard mappings table.  Fields
// are pointers so that alias entries can override individual fields of
// their target.
type stdEntry struct {
	UserSpace *float64
	OS2       *float64
	AliasOf   string
}

type stdTable struct {
	// kinds maps lower-case axis kind ("weight") to name to entry.
	kinds map[string]map[string]*stdEntry

	// defaults holds the per-kind fallback coordinates.
	defaults map[string]stdEntry
}

var (
	stdOnce  sync.Once
	stdTab   *stdTable
	discOnce sync.Once
	discTab  map[string]map[float64][]string

	titleCaser = cases.Title(language.English)
)

// standards returns the process-wide standard mappings table.  The
// table is loaded at most once; a broken resource degrades to the
// hardcoded minimal table instead of failing.
func standards() *stdTable {
	stdOnce.Do(func() {
		var raw map[string]any
		if buf, err := dataFiles.ReadFile("data/unified-mappings.yaml"); err == nil {
			if yaml.Unmarshal(buf, &raw) != nil {
				raw = nil
			}
		}
		if raw == nil {
			if buf, err := dataFiles.ReadFile("data/unified-mappings.json"); err == nil {
				if json.Unmarshal(buf, &raw) != nil {
					raw = nil
				}
			}
		}
		if raw != nil {
			stdTab = decodeStdTable(raw)
		}
		if stdTab == nil || len(stdTab.kinds) == 0 {
			stdTab = fallbackStdTable()
		}
	})
	return stdTab
}

func decodeStdTable(raw map[string]any) *stdTable {
	tab := &stdTable{
		kinds:    make(map[string]map[string]*stdEntry),
		defaults: make(map[string]stdEntry),
	}
	for key, val := range raw {
		if key == "metadata" {
			meta, _ := val.(map[string]any)
			defs, _ := meta["defaults"].(map[string]any)
			for kind, d := range defs {
				if e := decodeStdEntry(d); e != nil {
					tab.defaults[strings.ToLower(kind)] = *e
				}
			}
			continue
		}
		entries, ok := val.(map[string]any)
		if !ok {
			continue
		}
		m := make(map[string]*stdEntry)
		for name, d := range entries {
			if e := decodeStdEntry(d); e != nil {
				m[name] = e
			}
		}
		tab.kinds[strings.ToLower(key)] = m
	}
	return tab
}

func decodeStdEntry(val any) *stdEntry {
	fields, ok := val.(map[string]any)
	if !ok {
		return nil
	}
	e := &stdEntry{}
	if v, ok := asFloat(fields["user_space"]); ok {
		e.UserSpace = &v
	}
	if v, ok := asFloat(fields["os2"]); ok {
		e.OS2 = &v
	}
	if s, ok := fields["alias_of"].(string); ok {
		e.AliasOf = s
	}
	return e
}

func asFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func fallbackStdTable() *stdTable {
	num := func(v float64) *float64 { return &v }
	return &stdTable{
		kinds: map[string]map[string]*stdEntry{
			"weight": {
				"Regular": {UserSpace: num(400), OS2: num(400)},
				"Bold":    {UserSpace: num(700), OS2: num(700)},
			},
			"width": {
				"Normal": {UserSpace: num(100), OS2: num(5)},
			},
		},
		defaults: map[string]stdEntry{
			"weight": {UserSpace: num(400), OS2: num(400)},
			"width":  {UserSpace: num(100), OS2: num(5)},
		},
	}
}

// resolve follows an alias_of reference (one level) and merges the
// alias's own fields over the target's fields.
func (tab *stdTable) resolve(name, kind string) *stdEntry {
	entries := tab.kinds[kind]
	if entries == nil {
		return nil
	}
	entry := entries[name]
	if entry == nil {
		return nil
	}
	if entry.AliasOf == "" {
		return entry
	}
	target := entries[entry.AliasOf]
	if target == nil {
		return entry
	}
	merged := *target
	if entry.UserSpace != nil {
		merged.UserSpace = entry.UserSpace
	}
	if entry.OS2 != nil {
		merged.OS2 = entry.OS2
	}
	merged.AliasOf = ""
	return &merged
}

// lookupUserValue returns the user space value for a named stop.  The
// second return value reports whether the table has an entry at all.
func lookupUserValue(name, axisKind string) (float64, bool) {
	kind := strings.ToLower(axisKind)
	entry := standards().resolve(name, kind)
	if entry != nil {
		if entry.UserSpace != nil {
			return *entry.UserSpace, true
		}
		if entry.OS2 != nil {
			return *entry.OS2, true
		}
	}
	return 0, false
}

// UserValue returns the user space value for a named axis stop, for
// example 700 for the weight name "Bold".  Alias entries resolve to
// their target.  Unknown names yield the per-kind default value.
func UserValue(name, axisKind string) float64 {
	if v, ok := lookupUserValue(name, axisKind); ok {
		return v
	}
	return defaultValue(axisKind, false)
}

// RegisteredValue returns the registered (OS/2 table) value for a named
// axis stop, for example the width class 5 for "Normal".
func RegisteredValue(name, axisKind string) float64 {
	kind := strings.ToLower(axisKind)
	entry := standards().resolve(name, kind)
	if entry != nil {
		if entry.OS2 != nil {
			return *entry.OS2
		}
		if entry.UserSpace != nil {
			return *entry.UserSpace
		}
	}
	return defaultValue(axisKind, true)
}

func defaultValue(axisKind string, registered bool) float64 {
	kind := strings.ToLower(axisKind)
	if d, ok := standards().defaults[kind]; ok {
		if registered && d.OS2 != nil {
			return *d.OS2
		}
		if !registered && d.UserSpace != nil {
			return *d.UserSpace
		}
	}
	if kind == "weight" {
		return 400
	}
	return 100
}

// ValueName returns the canonical name for a user space value, for
// example "Bold" for the weight value 700.  Alias entries are skipped
// so that the canonical name is returned.  Values without an entry get
// a generated name such as "Weight350".
func ValueName(value float64, axisKind string) string {
	kind := strings.ToLower(axisKind)
	entries := standards().kinds[kind]

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if entries[name].AliasOf != "" {
			continue
		}
		entry := standards().resolve(name, kind)
		if entry == nil {
			continue
		}
		val := entry.UserSpace
		if val == nil {
			val = entry.OS2
		}
		if val != nil && *val == value {
			return name
		}
	}
	return titleCaser.String(kind) + strconv.Itoa(int(value))
}

// discreteLabels returns the table of bare labels allowed on discrete
// axes, keyed by axis tag and value.
func discreteLabels() map[string]map[float64][]string {
	discOnce.Do(func() {
		buf, err := dataFiles.ReadFile("data/discrete-axis-labels.yaml")
		if err == nil {
			var tab map[string]map[float64][]string
			if yaml.Unmarshal(buf, &tab) == nil {
				discTab = tab
			}
		}
		if discTab == nil {
			discTab = map[string]map[float64][]string{
				"ital": {
					0: {"Upright", "Roman", "Normal"},
					1: {"Italic"},
				},
				"slnt": {
					0: {"Upright", "Normal"},
					1: {"Slanted", "Oblique"},
				},
			}
		}
	})
	return discTab
}

// discreteLabelValue resolves a bare label on a discrete axis, for
// example "Italic" to 1 on an "ital" axis.
func discreteLabelValue(tag, label string) (float64, bool) {
	byValue := discreteLabels()[tag]

	values := make([]float64, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Float64s(values)
	for _, v := range values {
		for _, l := range byValue[v] {
			if l == label {
				return v, true
			}
		}
	}
	return 0, false
}
