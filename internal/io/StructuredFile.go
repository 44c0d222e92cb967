package io

import (
	"fmt"
	"io"
)

const STRUCTUREDFILE_DEFAULT_TAB = "  "

type FileSite struct {
	Line   int
	Column int
}

func (si *FileSite) LineBreak() {
	si.Line++
	si.Column = 1
}

// StructuredFile writes indented text, indentation is emitted lazily on the
// first print of each line.
type StructuredFile struct {
	indent  string
	tab     string
	newline string
	site    FileSite
	writer  io.Writer
	err     error
}

func NewStructuredFile(writer io.Writer, tab string) *StructuredFile {
	return &StructuredFile{
		tab:     tab,
		newline: "\n",
		site: FileSite{
			Line:   1,
			Column: 1,
		},
		writer: writer,
	}
}

func (sf *StructuredFile) Site() FileSite { return sf.site }
func (sf *StructuredFile) Err() error     { return sf.err }

// SetNewline selects the line terminator, Visual Studio itself writes CRLF.
func (sf *StructuredFile) SetNewline(newline string) {
	sf.newline = newline
}

func (sf *StructuredFile) write(txt string) {
	if sf.err == nil {
		_, sf.err = io.WriteString(sf.writer, txt)
	}
}

func (sf *StructuredFile) IndentIFN() {
	if sf.site.Column == 1 && len(sf.indent) > 0 {
		sf.site.Column += len(sf.indent)
		sf.write(sf.indent)
	}
}
func (sf *StructuredFile) BeginIndent() {
	sf.indent += sf.tab
}
func (sf *StructuredFile) EndIndent() {
	sf.indent = sf.indent[:len(sf.indent)-len(sf.tab)]
}
func (sf *StructuredFile) ScopeIndent(infix func()) {
	if infix != nil {
		sf.LineBreak()
		sf.BeginIndent()
		infix()
		sf.LineBreak()
		sf.EndIndent()
	}
}

func (sf *StructuredFile) Print(format string, args ...interface{}) {
	sf.IndentIFN()
	txt := format
	if len(args) > 0 {
		txt = fmt.Sprintf(format, args...)
	}
	sf.site.Column += len(txt)
	sf.write(txt)
}
func (sf *StructuredFile) Println(format string, args ...interface{}) {
	sf.Print(format, args...)
	sf.site.LineBreak()
	sf.write(sf.newline)
}

// EmptyLine always breaks, even at the start of a line.
func (sf *StructuredFile) EmptyLine() {
	sf.site.LineBreak()
	sf.write(sf.newline)
}
func (sf *StructuredFile) LineBreak() {
	if sf.site.Column > 1 {
		sf.EmptyLine()
	}
}
