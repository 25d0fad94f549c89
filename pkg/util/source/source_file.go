// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
)

// Line provides information about a given line within a source file.
type Line struct {
	// Original text
	text []rune
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// String returns the text of this line.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line of the
// source file has number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset of this line within the source file.
func (p *Line) Start() int {
	return p.span.start
}

// File represents a given source, which may be a file on disk or an argument
// given on the command line.
type File struct {
	// Name of this source (for error reporting).
	filename string
	// Contents of this source.
	contents []rune
}

// NewSourceFile constructs a new source file from a given name and its
// contents.
func NewSourceFile(filename string, contents string) *File {
	return &File{filename, []rune(contents)}
}

// Filename returns the name of this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the first line which encloses the start
// of a span.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	var (
		num   = 1
		start = 0
	)
	//
	for i := 0; i < len(s.contents); i++ {
		if i == span.start {
			return Line{s.contents, Span{start, findEndOfLine(i, s.contents)}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// SyntaxError is a structured error which retains the span of the original
// text where an error occurred, along with an error message.
type SyntaxError struct {
	srcfile *File
	// Span of the original text where the error arose.
	span Span
	// Error message being reported
	msg string
}

// SourceFile returns the file in which this error arose.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d:%s", p.srcfile.filename, p.span.Start(), p.span.End(), p.Message())
}

// FirstEnclosingLine determines the first line in the source file enclosing
// this error.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	//
	return len(text)
}
