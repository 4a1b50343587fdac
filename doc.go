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

// Package dssketch implements a compact, human-editable text notation for
// variable font design spaces, together with bidirectional conversion to
// the designspace document format.
//
// A sketch file describes the axes, masters, instances and substitution
// rules of a design space in a few lines:
//
//	family Example
//	path masters
//
//	axes
//	    wght 100:400:900
//	        Light > 40
//	        Regular > 90
//	        Bold > 160
//	    ital discrete
//	        Upright
//	        Italic
//
//	masters
//	    Light [40, 0]
//	    Regular [90, 0] @base
//	    Bold [160, 0]
//
//	rules
//	    dollar cent > .rvrn (weight >= 600)
//
//	instances auto
//
// [Parser.Parse] turns this notation into a [Document], [Writer.Write] renders a
// Document back into the most compact equivalent notation, and
// [Converter] translates between Documents and designspace documents.
// The writer only uses a shorthand when the parser is guaranteed to
// recover the exact same data from it.
package dssketch
