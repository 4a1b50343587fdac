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

import "strconv"

// GrammarError indicates that a line of sketch input matches no
// recognized form in its section.  Line is 1-based.
type GrammarError struct {
	Line int
	Text string
	Err  error
}

func (err *GrammarError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "line " + strconv.Itoa(err.Line) + ": cannot parse " +
		strconv.Quote(err.Text) + middle
}

func (err *GrammarError) Unwrap() error {
	return err.Err
}

// LookupError indicates that a label could not be resolved to a
// numeric value, neither via the discrete label table nor via the
// standard mappings.  Guessing a value here would silently corrupt the
// axis, so the error is fatal.
type LookupError struct {
	Axis  string
	Label string
}

func (err *LookupError) Error() string {
	return "axis " + strconv.Quote(err.Axis) + ": unknown label " +
		strconv.Quote(err.Label)
}
