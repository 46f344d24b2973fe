// Package printer renders orders as ESC/POS documents and delivers them to the
// restaurant's POS printer.
package printer

import (
	"bytes"
	"strings"
)

// SeparatorWidth is the character width of a 58mm thermal roll.
const SeparatorWidth = 32

var (
	cmdInit       = []byte{0x1B, 0x40}
	cmdFontLarge  = []byte{0x1D, 0x21, 0x11}
	cmdFontNormal = []byte{0x1D, 0x21, 0x00}
	cmdBoldOn     = []byte{0x1B, 0x45, 0x01}
	cmdBoldOff    = []byte{0x1B, 0x45, 0x00}
	cmdCut        = []byte{0x1D, 0x56, 0x42, 0x00}
)

type Align byte

const (
	AlignLeft   Align = 0x00
	AlignCenter Align = 0x01
	AlignRight  Align = 0x02
)

// Formatter accumulates ESC/POS commands and text lines.
type Formatter struct {
	buf bytes.Buffer
}

func NewFormatter() *Formatter {
	f := &Formatter{}
	f.buf.Write(cmdInit)
	return f
}

func (f *Formatter) Large(on bool) *Formatter {
	if on {
		f.buf.Write(cmdFontLarge)
	} else {
		f.buf.Write(cmdFontNormal)
	}
	return f
}

func (f *Formatter) Bold(on bool) *Formatter {
	if on {
		f.buf.Write(cmdBoldOn)
	} else {
		f.buf.Write(cmdBoldOff)
	}
	return f
}

func (f *Formatter) Align(a Align) *Formatter {
	f.buf.Write([]byte{0x1B, 0x61, byte(a)})
	return f
}

func (f *Formatter) Line(text string) *Formatter {
	f.buf.WriteString(text)
	f.buf.WriteByte('\n')
	return f
}

func (f *Formatter) Blank() *Formatter {
	f.buf.WriteByte('\n')
	return f
}

func (f *Formatter) Separator() *Formatter {
	return f.Line(strings.Repeat("-", SeparatorWidth))
}

// Cut appends a partial cut and returns the finished document.
func (f *Formatter) Cut() []byte {
	f.buf.Write(cmdCut)
	return bytes.Clone(f.buf.Bytes())
}
