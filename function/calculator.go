// seehuhn.de/go/pdfcore - a library for reading PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package function

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errStack = errors.New("stack error")
	errType  = errors.New("type check error")
	errRange = errors.New("range check error")
)

// maxStack is the operand stack limit required by the PDF specification.
const maxStack = 100

type valueKind uint8

const (
	kindInt valueKind = iota
	kindReal
	kindBool
)

// value is an element of the operand stack.
type value struct {
	kind valueKind
	i    int64
	f    float64
	b    bool
}

func intValue(x int64) value {
	return value{kind: kindInt, i: x}
}

func realValue(x float64) value {
	return value{kind: kindReal, f: x}
}

func boolValue(x bool) value {
	return value{kind: kindBool, b: x}
}

func (v value) num() float64 {
	if v.kind == kindInt {
		return float64(v.i)
	}
	return v.f
}

// instr is one element of a compiled program.  Either op is set, or
// then is non-nil (an if or ifelse construct), or the instruction pushes
// a literal value.
type instr struct {
	op    func(*machine) error
	lit   value
	then  []instr
	other []instr
	isIf  bool
}

// compile parses a calculator program.  The program must consist of
// a single brace-delimited procedure.
func compile(src string) ([]instr, error) {
	p := &parser{tokens: strings.FieldsFunc(separateBraces(src), isSpace)}
	if !p.accept("{") {
		return nil, errors.New("missing opening brace")
	}
	code, err := p.procedure()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected %q after end of program", p.tokens[p.pos])
	}
	return code, nil
}

// separateBraces removes comments and surrounds braces with spaces.
func separateBraces(src string) string {
	var b strings.Builder
	inComment := false
	for _, c := range src {
		switch {
		case inComment:
			if c == '\n' || c == '\r' {
				inComment = false
				b.WriteByte(' ')
			}
		case c == '%':
			inComment = true
		case c == '{' || c == '}':
			b.WriteByte(' ')
			b.WriteRune(c)
			b.WriteByte(' ')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) accept(tok string) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos] == tok {
		p.pos++
		return true
	}
	return false
}

// procedure parses the body of a procedure, up to and including the
// closing brace.
func (p *parser) procedure() ([]instr, error) {
	var code []instr
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok {
		case "}":
			return code, nil
		case "{":
			then, err := p.procedure()
			if err != nil {
				return nil, err
			}
			var other []instr
			if p.accept("{") {
				other, err = p.procedure()
				if err != nil {
					return nil, err
				}
				if !p.accept("ifelse") {
					return nil, errors.New("expected ifelse after two procedures")
				}
				if other == nil {
					other = []instr{}
				}
			} else if !p.accept("if") {
				return nil, errors.New("expected if after procedure")
			}
			if then == nil {
				then = []instr{}
			}
			code = append(code, instr{isIf: true, then: then, other: other})
		case "true":
			code = append(code, instr{lit: boolValue(true)})
		case "false":
			code = append(code, instr{lit: boolValue(false)})
		default:
			if op, ok := operators[tok]; ok {
				code = append(code, instr{op: op})
			} else if x, err := strconv.ParseInt(tok, 10, 64); err == nil {
				code = append(code, instr{lit: intValue(x)})
			} else if x, err := strconv.ParseFloat(tok, 64); err == nil && isFinite(x) {
				code = append(code, instr{lit: realValue(x)})
			} else {
				return nil, fmt.Errorf("unknown operator %q", tok)
			}
		}
	}
	return nil, errors.New("missing closing brace")
}

type machine struct {
	stack []value
}

func (m *machine) exec(code []instr) error {
	for _, in := range code {
		var err error
		switch {
		case in.op != nil:
			err = in.op(m)
		case in.isIf:
			var cond value
			cond, err = m.pop()
			if err != nil {
				return err
			}
			if cond.kind != kindBool {
				return errType
			}
			if cond.b {
				err = m.exec(in.then)
			} else if in.other != nil {
				err = m.exec(in.other)
			}
		default:
			err = m.push(in.lit)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *machine) push(v value) error {
	if len(m.stack) >= maxStack {
		return errStack
	}
	m.stack = append(m.stack, v)
	return nil
}

func (m *machine) pop() (value, error) {
	n := len(m.stack)
	if n == 0 {
		return value{}, errStack
	}
	v := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return v, nil
}

// popNum pops a number.
func (m *machine) popNum() (value, error) {
	v, err := m.pop()
	if err == nil && v.kind == kindBool {
		err = errType
	}
	return v, err
}

func (m *machine) popInt() (int64, error) {
	v, err := m.pop()
	if err == nil && v.kind != kindInt {
		err = errType
	}
	return v.i, err
}

// result pushes a real result, checking for overflow.
func (m *machine) result(x float64) error {
	if !isFinite(x) {
		return errRange
	}
	return m.push(realValue(x))
}

func unary(f func(float64) float64) func(*machine) error {
	return func(m *machine) error {
		a, err := m.popNum()
		if err != nil {
			return err
		}
		return m.result(f(a.num()))
	}
}

// rounding operators keep integers unchanged.
func rounding(f func(float64) float64) func(*machine) error {
	return func(m *machine) error {
		a, err := m.popNum()
		if err != nil {
			return err
		}
		if a.kind == kindInt {
			return m.push(a)
		}
		return m.result(f(a.f))
	}
}

// arith implements add, sub and mul.  The result is an integer if both
// operands are integers and the result does not overflow.
func arith(fi func(a, b int64) (int64, bool), ff func(a, b float64) float64) func(*machine) error {
	return func(m *machine) error {
		b, err := m.popNum()
		if err != nil {
			return err
		}
		a, err := m.popNum()
		if err != nil {
			return err
		}
		if a.kind == kindInt && b.kind == kindInt {
			if x, ok := fi(a.i, b.i); ok {
				return m.push(intValue(x))
			}
		}
		return m.result(ff(a.num(), b.num()))
	}
}

func compare(f func(c int) bool) func(*machine) error {
	return func(m *machine) error {
		b, err := m.popNum()
		if err != nil {
			return err
		}
		a, err := m.popNum()
		if err != nil {
			return err
		}
		x, y := a.num(), b.num()
		c := 0
		if x < y {
			c = -1
		} else if x > y {
			c = 1
		}
		return m.push(boolValue(f(c)))
	}
}

func equality(want bool) func(*machine) error {
	return func(m *machine) error {
		b, err := m.pop()
		if err != nil {
			return err
		}
		a, err := m.pop()
		if err != nil {
			return err
		}
		var eq bool
		switch {
		case a.kind == kindBool && b.kind == kindBool:
			eq = a.b == b.b
		case a.kind != kindBool && b.kind != kindBool:
			eq = a.num() == b.num()
		}
		return m.push(boolValue(eq == want))
	}
}

// logical implements and, or and xor, for both booleans and integers.
func logical(fb func(a, b bool) bool, fi func(a, b int64) int64) func(*machine) error {
	return func(m *machine) error {
		b, err := m.pop()
		if err != nil {
			return err
		}
		a, err := m.pop()
		if err != nil {
			return err
		}
		switch {
		case a.kind == kindBool && b.kind == kindBool:
			return m.push(boolValue(fb(a.b, b.b)))
		case a.kind == kindInt && b.kind == kindInt:
			return m.push(intValue(fi(a.i, b.i)))
		}
		return errType
	}
}

var operators map[string]func(*machine) error

func init() {
	operators = map[string]func(*machine) error{
		"abs": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if a.kind == kindInt && a.i != math.MinInt64 {
				return m.push(intValue(max(a.i, -a.i)))
			}
			return m.result(math.Abs(a.num()))
		},
		"neg": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if a.kind == kindInt && a.i != math.MinInt64 {
				return m.push(intValue(-a.i))
			}
			return m.result(-a.num())
		},
		"add": arith(func(a, b int64) (int64, bool) {
			c := a + b
			return c, (c > a) == (b > 0)
		}, func(a, b float64) float64 { return a + b }),
		"sub": arith(func(a, b int64) (int64, bool) {
			c := a - b
			return c, (c < a) == (b > 0)
		}, func(a, b float64) float64 { return a - b }),
		"mul": arith(func(a, b int64) (int64, bool) {
			if a == 0 || b == 0 {
				return 0, true
			}
			c := a * b
			return c, c/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64)
		}, func(a, b float64) float64 { return a * b }),
		"div": func(m *machine) error {
			b, err := m.popNum()
			if err != nil {
				return err
			}
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if b.num() == 0 {
				return errRange
			}
			return m.result(a.num() / b.num())
		},
		"idiv": func(m *machine) error {
			b, err := m.popInt()
			if err != nil {
				return err
			}
			a, err := m.popInt()
			if err != nil {
				return err
			}
			if b == 0 || a == math.MinInt64 && b == -1 {
				return errRange
			}
			return m.push(intValue(a / b))
		},
		"mod": func(m *machine) error {
			b, err := m.popInt()
			if err != nil {
				return err
			}
			a, err := m.popInt()
			if err != nil {
				return err
			}
			if b == 0 {
				return errRange
			}
			if b == -1 {
				return m.push(intValue(0))
			}
			return m.push(intValue(a % b))
		},
		"atan": func(m *machine) error {
			den, err := m.popNum()
			if err != nil {
				return err
			}
			num, err := m.popNum()
			if err != nil {
				return err
			}
			if num.num() == 0 && den.num() == 0 {
				return errRange
			}
			deg := math.Atan2(num.num(), den.num()) * 180 / math.Pi
			if deg < 0 {
				deg += 360
			}
			return m.result(deg)
		},
		"cos": unary(func(x float64) float64 { return math.Cos(x * math.Pi / 180) }),
		"sin": unary(func(x float64) float64 { return math.Sin(x * math.Pi / 180) }),
		"exp": func(m *machine) error {
			e, err := m.popNum()
			if err != nil {
				return err
			}
			base, err := m.popNum()
			if err != nil {
				return err
			}
			return m.result(math.Pow(base.num(), e.num()))
		},
		"ln": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if a.num() <= 0 {
				return errRange
			}
			return m.result(math.Log(a.num()))
		},
		"log": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if a.num() <= 0 {
				return errRange
			}
			return m.result(math.Log10(a.num()))
		},
		"sqrt": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			if a.num() < 0 {
				return errRange
			}
			return m.result(math.Sqrt(a.num()))
		},
		"ceiling":  rounding(math.Ceil),
		"floor":    rounding(math.Floor),
		"truncate": rounding(math.Trunc),
		"round": rounding(func(x float64) float64 {
			return math.Floor(x + 0.5)
		}),
		"cvi": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			x := math.Trunc(a.num())
			if x < math.MinInt64 || x >= math.MaxInt64 {
				return errRange
			}
			return m.push(intValue(int64(x)))
		},
		"cvr": func(m *machine) error {
			a, err := m.popNum()
			if err != nil {
				return err
			}
			return m.push(realValue(a.num()))
		},

		"eq": equality(true),
		"ne": equality(false),
		"ge": compare(func(c int) bool { return c >= 0 }),
		"gt": compare(func(c int) bool { return c > 0 }),
		"le": compare(func(c int) bool { return c <= 0 }),
		"lt": compare(func(c int) bool { return c < 0 }),
		"and": logical(func(a, b bool) bool { return a && b },
			func(a, b int64) int64 { return a & b }),
		"or": logical(func(a, b bool) bool { return a || b },
			func(a, b int64) int64 { return a | b }),
		"xor": logical(func(a, b bool) bool { return a != b },
			func(a, b int64) int64 { return a ^ b }),
		"not": func(m *machine) error {
			a, err := m.pop()
			if err != nil {
				return err
			}
			switch a.kind {
			case kindBool:
				return m.push(boolValue(!a.b))
			case kindInt:
				return m.push(intValue(^a.i))
			}
			return errType
		},
		"bitshift": func(m *machine) error {
			shift, err := m.popInt()
			if err != nil {
				return err
			}
			a, err := m.popInt()
			if err != nil {
				return err
			}
			switch {
			case shift >= 64 || shift <= -64:
				return m.push(intValue(0))
			case shift >= 0:
				return m.push(intValue(a << shift))
			default:
				return m.push(intValue(int64(uint64(a) >> -shift)))
			}
		},

		"dup": func(m *machine) error {
			n := len(m.stack)
			if n == 0 {
				return errStack
			}
			return m.push(m.stack[n-1])
		},
		"pop": func(m *machine) error {
			_, err := m.pop()
			return err
		},
		"exch": func(m *machine) error {
			n := len(m.stack)
			if n < 2 {
				return errStack
			}
			m.stack[n-1], m.stack[n-2] = m.stack[n-2], m.stack[n-1]
			return nil
		},
		"copy": func(m *machine) error {
			k, err := m.popInt()
			if err != nil {
				return err
			}
			n := len(m.stack)
			if k < 0 || k > int64(n) {
				return errRange
			}
			if n+int(k) > maxStack {
				return errStack
			}
			m.stack = append(m.stack, m.stack[n-int(k):]...)
			return nil
		},
		"index": func(m *machine) error {
			k, err := m.popInt()
			if err != nil {
				return err
			}
			n := len(m.stack)
			if k < 0 || k >= int64(n) {
				return errRange
			}
			return m.push(m.stack[n-1-int(k)])
		},
		"roll": func(m *machine) error {
			j, err := m.popInt()
			if err != nil {
				return err
			}
			k, err := m.popInt()
			if err != nil {
				return err
			}
			n := len(m.stack)
			if k < 0 || k > int64(n) {
				return errRange
			}
			if k == 0 {
				return nil
			}
			part := m.stack[n-int(k):]
			shift := int(((j % k) + k) % k)
			rolled := append(append([]value{}, part[len(part)-shift:]...), part[:len(part)-shift]...)
			copy(part, rolled)
			return nil
		},
	}
}
