// Package formatter renders new file names from a positional template.
//
// The syntax follows Python's str.format for the parts a rename template
// needs: {} and {N} consume row arguments, {extname} is the matched file's
// extension including the dot, {{ and }} are literal braces, and an optional
// :[[fill]align][0][width][.precision][s] spec pads or truncates a value.
// As for Python strings, the 0 flag sets the fill but not the alignment.
package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ExtField is the named field holding the matched file's extension.
const ExtField = "extname"

// ErrFormat is wrapped by every template error.
var ErrFormat = errors.New("invalid format")

// Error describes a template that cannot be compiled or rendered.
type Error struct {
	Template string
	Offset   int // byte offset of the offending field, -1 when not applicable
	Msg      string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("format %q: %s", e.Template, e.Msg)
	}
	return fmt.Sprintf("format %q: %s (at offset %d)", e.Template, e.Msg, e.Offset)
}

func (e *Error) Unwrap() error { return ErrFormat }

type part struct {
	literal   string
	field     bool
	index     int // positional index, namedIndex for {extname}
	offset    int
	fill      rune
	align     byte
	width     int
	precision int // maximum runes kept, noPrecision when unset
}

// Template is a compiled rename format.
type Template struct {
	raw      string
	parts    []part
	required int
}

// Compile parses s into a Template.
func Compile(s string) (*Template, error) {
	t := &Template{raw: s}
	var lit strings.Builder
	auto, manual := 0, false

	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return nil, t.errorf(i, "expected '}' before end of string")
			}
			p, err := t.parseField(s[i+1:i+1+end], i)
			if err != nil {
				return nil, err
			}
			if p.index != namedIndex {
				if p.index == autoIndex {
					if manual {
						return nil, t.errorf(i, "cannot switch from manual field numbering to automatic field numbering")
					}
					p.index = auto
					auto++
				} else {
					if auto > 0 {
						return nil, t.errorf(i, "cannot switch from automatic field numbering to manual field specification")
					}
					manual = true
				}
				t.required = max(t.required, p.index+1)
			}
			flush()
			t.parts = append(t.parts, p)
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, t.errorf(i, "single '}' encountered")
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return t, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(s string) *Template {
	t, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return t
}

const (
	namedIndex = -1
	autoIndex  = -2

	noPrecision = -1
)

func (t *Template) parseField(body string, offset int) (part, error) {
	p := part{field: true, offset: offset, fill: ' ', precision: noPrecision}
	if strings.ContainsRune(body, '{') {
		return p, t.errorf(offset, "nested replacement fields are not supported")
	}

	name, spec, hasSpec := strings.Cut(body, ":")
	if strings.ContainsRune(name, '!') {
		return p, t.errorf(offset, "conversions are not supported")
	}

	switch {
	case name == "":
		p.index = autoIndex
	case name == ExtField:
		p.index = namedIndex
	case isDigits(name):
		n, err := strconv.Atoi(name)
		if err != nil {
			return p, t.errorf(offset, fmt.Sprintf("invalid field index %q", name))
		}
		p.index = n
	default:
		return p, t.errorf(offset, fmt.Sprintf("unknown field %q", name))
	}

	if hasSpec {
		if err := t.parseSpec(&p, spec); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (t *Template) parseSpec(p *part, spec string) error {
	r := []rune(spec)
	fillSet := false
	switch {
	case len(r) >= 2 && isAlign(r[1]):
		p.fill, p.align = r[0], byte(r[1])
		fillSet = true
		r = r[2:]
	case len(r) >= 1 && isAlign(r[0]):
		p.align = byte(r[0])
		r = r[1:]
	}
	// A leading 0 only changes the fill; string values keep their alignment.
	if len(r) > 0 && r[0] == '0' {
		if !fillSet {
			p.fill = '0'
		}
		r = r[1:]
	}

	digits := func() string {
		n := 0
		for n < len(r) && r[n] >= '0' && r[n] <= '9' {
			n++
		}
		d := string(r[:n])
		r = r[n:]
		return d
	}

	if w := digits(); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return t.errorf(p.offset, fmt.Sprintf("invalid width in %q", spec))
		}
		p.width = n
	}
	if len(r) > 0 && r[0] == '.' {
		r = r[1:]
		prec := digits()
		if prec == "" {
			return t.errorf(p.offset, fmt.Sprintf("format spec %q is missing a precision", spec))
		}
		n, err := strconv.Atoi(prec)
		if err != nil {
			return t.errorf(p.offset, fmt.Sprintf("invalid precision in %q", spec))
		}
		p.precision = n
	}
	if len(r) > 0 && r[0] == 's' {
		r = r[1:]
	}
	if len(r) > 0 {
		return t.errorf(p.offset, fmt.Sprintf("unsupported format spec %q", spec))
	}
	if p.align == 0 {
		p.align = '<'
	}
	return nil
}

// Required returns the number of positional arguments the template consumes.
func (t *Template) Required() int { return t.required }

// String returns the source text of the template.
func (t *Template) String() string { return t.raw }

// Validate checks that argc positional arguments are enough for the template.
func (t *Template) Validate(argc int) error {
	if argc < t.required {
		return t.errorf(-1, fmt.Sprintf("needs %d positional arguments, row has %d", t.required, argc))
	}
	return nil
}

// Execute renders the template with the row arguments and extension.
func (t *Template) Execute(args []string, ext string) (string, error) {
	if err := t.Validate(len(args)); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range t.parts {
		if !p.field {
			b.WriteString(p.literal)
			continue
		}
		val := ext
		if p.index >= 0 {
			val = args[p.index]
		}
		b.WriteString(pad(val, p))
	}
	return b.String(), nil
}

func pad(val string, p part) string {
	if p.precision >= 0 && utf8.RuneCountInString(val) > p.precision {
		val = string([]rune(val)[:p.precision])
	}
	n := p.width - utf8.RuneCountInString(val)
	if n <= 0 {
		return val
	}
	fill := string(p.fill)
	switch p.align {
	case '>':
		return strings.Repeat(fill, n) + val
	case '^':
		left := n / 2
		return strings.Repeat(fill, left) + val + strings.Repeat(fill, n-left)
	default:
		return val + strings.Repeat(fill, n)
	}
}

func (t *Template) errorf(offset int, msg string) error {
	return &Error{Template: t.raw, Offset: offset, Msg: msg}
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
