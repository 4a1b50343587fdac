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

// Package ufo gives access to UFO font packages, as far as sketch
// conversion needs them: the set of glyph names for wildcard rule
// expansion, and structural validation of the master files a sketch
// refers to.
package ufo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"seehuhn.de/go/dssketch"
)

// GlyphNames collects the glyph names of all given UFO packages.
// Relative filenames are resolved against basePath; a filename which
// already starts with the final path segment of basePath is resolved
// against the parent instead, so that the shared segment is not
// applied twice.  Unreadable packages are reported as warnings and
// skipped.
func GlyphNames(sourceFiles []string, basePath string) (dssketch.GlyphSet, []string) {
	glyphs := make(dssketch.GlyphSet)
	var warnings []string

	for _, filename := range sourceFiles {
		if filename == "" {
			continue
		}

		var ufoPath string
		switch {
		case filepath.IsAbs(filename):
			ufoPath = filename
		case basePath != "":
			rel := filepath.FromSlash(filename)
			parts := strings.Split(rel, string(filepath.Separator))
			if parts[0] == filepath.Base(basePath) {
				ufoPath = filepath.Join(basePath, filepath.Join(parts[1:]...))
			} else {
				ufoPath = filepath.Join(basePath, rel)
			}
		default:
			ufoPath = filepath.FromSlash(filename)
		}

		if _, err := os.Stat(ufoPath); err != nil {
			continue
		}
		names, err := readGlyphNames(ufoPath)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("cannot read glyphs from %s: %v", ufoPath, err))
			continue
		}
		for _, name := range names {
			glyphs[name] = true
		}
	}
	return glyphs, warnings
}

// readGlyphNames reads the glyph contents of the default layer.
func readGlyphNames(ufoPath string) ([]string, error) {
	buf, err := os.ReadFile(filepath.Join(ufoPath, "glyphs", "contents.plist"))
	if err != nil {
		return nil, err
	}
	contents := make(map[string]string)
	if _, err := plist.Unmarshal(buf, &contents); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	return names, nil
}

// Report lists the problems found when validating the master files of
// a sketch.  The report is advisory; the caller decides whether any of
// the problems abort a conversion.
type Report struct {
	MissingFiles []string
	InvalidUFOs  []string
	PathErrors   []string
	Warnings     []string
}

// HasErrors reports whether any master file is missing or broken.
func (r *Report) HasErrors() bool {
	return len(r.MissingFiles) > 0 || len(r.InvalidUFOs) > 0 || len(r.PathErrors) > 0
}

// HasWarnings reports whether the validation produced advisory notes.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks that every master file of the document exists and
// has the basic UFO package structure.  originPath is the path of the
// sketch file; the document path is resolved relative to its
// directory.
func Validate(doc *dssketch.Document, originPath string) *Report {
	report := &Report{}

	base := filepath.Dir(originPath)
	if doc.Path != "" {
		if filepath.IsAbs(doc.Path) {
			base = doc.Path
		} else {
			base = filepath.Join(base, filepath.FromSlash(doc.Path))
		}
	}

	info, err := os.Stat(base)
	if err != nil {
		report.PathErrors = append(report.PathErrors,
			fmt.Sprintf("masters path does not exist: %s", base))
		return report
	}
	if !info.IsDir() {
		report.PathErrors = append(report.PathErrors,
			fmt.Sprintf("masters path is not a directory: %s", base))
		return report
	}

	for _, master := range doc.Masters {
		ufoPath := filepath.Join(base, filepath.FromSlash(master.Filename))

		if _, err := os.Stat(ufoPath); err != nil {
			report.MissingFiles = append(report.MissingFiles, ufoPath)
			continue
		}
		if !isValidUFO(ufoPath) {
			report.InvalidUFOs = append(report.InvalidUFOs, ufoPath)
		}
		if !strings.HasSuffix(master.Filename, ".ufo") {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("master filename should end with .ufo: %s", master.Filename))
		}
	}
	return report
}

// isValidUFO checks the basic UFO package structure: a directory with
// parseable metainfo.plist, a fontinfo.plist, and a glyph layer.
func isValidUFO(ufoPath string) bool {
	info, err := os.Stat(ufoPath)
	if err != nil || !info.IsDir() {
		return false
	}

	buf, err := os.ReadFile(filepath.Join(ufoPath, "metainfo.plist"))
	if err != nil {
		return false
	}
	meta := make(map[string]any)
	if _, err := plist.Unmarshal(buf, &meta); err != nil {
		return false
	}

	if _, err := os.Stat(filepath.Join(ufoPath, "fontinfo.plist")); err != nil {
		return false
	}

	if _, err := os.Stat(filepath.Join(ufoPath, "glyphs")); err == nil {
		return true
	}
	_, err = os.Stat(filepath.Join(ufoPath, "glyphs.contents.plist"))
	return err == nil
}
