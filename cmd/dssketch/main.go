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

// Dssketch converts between the compact sketch notation and
// designspace documents.  The conversion direction is detected from
// the input file extension.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/dssketch"
	"seehuhn.de/go/dssketch/designspace"
	"seehuhn.de/go/dssketch/ufo"
)

// config holds all command-line flag values.
type config struct {
	output       string
	format       string
	noValidation bool
	allowMissing bool
	noOptimize   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.output, "o", "", "output file (default: input with the opposite extension)")
	flag.StringVar(&cfg.format, "format", "auto", "output format (dssketch, dss, designspace, auto)")
	flag.BoolVar(&cfg.noValidation, "no-validation", false, "skip UFO file validation")
	flag.BoolVar(&cfg.allowMissing, "allow-missing-ufos", false, "continue even if UFO files are missing")
	flag.BoolVar(&cfg.noOptimize, "no-optimize", false, "disable sketch compaction")
	help := flag.Bool("help", false, "show help information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dssketch - convert between sketch and designspace files\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  dssketch [options] <file.dssketch|file.designspace>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dssketch Family.dssketch\n")
		fmt.Fprintf(os.Stderr, "  dssketch -o out.dssketch Family.designspace\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config, input string) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %s does not exist", input)
	}

	format := cfg.format
	if format == "auto" {
		switch strings.ToLower(filepath.Ext(input)) {
		case ".dssketch", ".dss":
			format = "designspace"
		case ".designspace":
			format = "dssketch"
		default:
			return fmt.Errorf("cannot detect output format for %q (use -format)",
				filepath.Ext(input))
		}
	}
	if format == "dss" {
		format = "dssketch"
	}

	switch format {
	case "designspace":
		return sketchToDesignspace(cfg, input)
	case "dssketch":
		return designspaceToSketch(cfg, input)
	default:
		return fmt.Errorf("unknown output format %q", cfg.format)
	}
}

func sketchToDesignspace(cfg config, input string) error {
	ext := strings.ToLower(filepath.Ext(input))
	if ext != ".dssketch" && ext != ".dss" {
		return errors.New("input must be a .dssketch file for conversion to .designspace")
	}

	fd, err := os.Open(input)
	if err != nil {
		return err
	}
	parser := &dssketch.Parser{}
	doc, err := parser.Parse(fd)
	fd.Close()
	if err != nil {
		return err
	}
	printWarnings(parser.Warnings)

	if !cfg.noValidation {
		report := ufo.Validate(doc, input)
		for _, msg := range report.PathErrors {
			fmt.Fprintln(os.Stderr, "error:", msg)
		}
		for _, name := range report.MissingFiles {
			fmt.Fprintln(os.Stderr, "error: missing UFO:", name)
		}
		for _, name := range report.InvalidUFOs {
			fmt.Fprintln(os.Stderr, "error: invalid UFO:", name)
		}
		printWarnings(report.Warnings)
		if report.HasErrors() && !cfg.allowMissing {
			return errors.New("UFO validation failed (use -allow-missing-ufos to continue)")
		}
	}

	glyphs, warnings := ufo.GlyphNames(masterFiles(doc), filepath.Dir(input))
	printWarnings(warnings)

	conv := &dssketch.Converter{Glyphs: glyphs}
	ds, err := conv.ToDesignspace(doc)
	if err != nil {
		return err
	}
	printWarnings(conv.Warnings())

	output := cfg.output
	if output == "" {
		output = replaceExt(input, ".designspace")
	}
	if err := ds.WriteFile(output); err != nil {
		return err
	}
	fmt.Printf("converted %s -> %s\n", input, output)
	return nil
}

func designspaceToSketch(cfg config, input string) error {
	if strings.ToLower(filepath.Ext(input)) != ".designspace" {
		return errors.New("input must be a .designspace file for conversion to .dssketch")
	}

	ds, err := designspace.ReadFile(input)
	if err != nil {
		return err
	}

	var files []string
	for _, src := range ds.Sources {
		files = append(files, src.Filename)
	}
	glyphs, warnings := ufo.GlyphNames(files, filepath.Dir(input))
	printWarnings(warnings)

	conv := &dssketch.Converter{Glyphs: glyphs}
	doc, err := conv.FromDesignspace(ds)
	if err != nil {
		return err
	}
	printWarnings(conv.Warnings())

	writer := &dssketch.Writer{Optimize: !cfg.noOptimize, Glyphs: glyphs}
	text := writer.Write(doc)

	output := cfg.output
	if output == "" {
		output = replaceExt(input, ".dssketch")
	}
	if err := os.WriteFile(output, []byte(text), 0o666); err != nil {
		return err
	}
	fmt.Printf("converted %s -> %s\n", input, output)
	return nil
}

// masterFiles lists the master filenames as they will appear in the
// designspace document, with the document path applied.
func masterFiles(doc *dssketch.Document) []string {
	var files []string
	for _, master := range doc.Masters {
		name := master.Filename
		if doc.Path != "" {
			name = strings.TrimSuffix(doc.Path, "/") + "/" + name
		}
		files = append(files, name)
	}
	return files
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func printWarnings(warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}
}
