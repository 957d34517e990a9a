// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{
			genericNames: make(map[int]string, 16),
			used:         make(map[string]bool, 16),
		}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.genericNames {
		delete(p.genericNames, k)
	}
	for k := range p.used {
		delete(p.used, k)
	}
	p.order = p.order[:0]
	p.next = 0
	printerPool.Put(p)
}

type typePrinter struct {
	genericNames map[int]string
	used         map[string]bool
	order        []string
	next         int
}

// TypeString returns a string representation of a Type. Generic type-variables are listed in a
// `forall` prefix in order of appearance.
func TypeString(t Type) string {
	p := newTypePrinter()
	s := p.show(t, false)
	if len(p.order) > 0 {
		s = "forall " + strings.Join(p.order, ", ") + ". " + s
	}
	p.Release()
	return s
}

func (p *typePrinter) nextName() string {
	for {
		i := p.next
		p.next++
		name := string(rune('a' + i%26))
		if i >= 26 {
			name += strconv.Itoa(i / 26)
		}
		if !p.used[name] {
			return name
		}
	}
}

func (p *typePrinter) genericName(tv *Var) string {
	if name, ok := p.genericNames[tv.id]; ok {
		return name
	}
	name := tv.name
	if name == "" || p.used[name] {
		name = p.nextName()
	}
	p.used[name] = true
	p.genericNames[tv.id] = name
	p.order = append(p.order, name)
	return name
}

func (p *typePrinter) showArgs(args []Type) string {
	return strings.Join(lo.Map(args, func(arg Type, _ int) string { return p.show(arg, false) }), ", ")
}

func (p *typePrinter) show(t Type, simple bool) string {
	switch t := RealType(t).(type) {
	case *Var:
		switch t.kind {
		case GenericVar:
			return p.genericName(t)
		case ParamVar:
			return t.name
		default:
			if t.name != "" {
				return "?" + t.name + strconv.Itoa(t.id)
			}
			return "?" + strconv.Itoa(t.id)
		}

	case *Fun:
		switch t.Name {
		case UnitName:
			if len(t.Args) == 0 {
				return "()"
			}
		case TupleName:
			if elems, ok := TupleElems(t); ok {
				return "(" + p.showArgs(elems) + ")"
			}
		case FunctionName:
			if args, ret, ok := FunctionParts(t); ok {
				var sb strings.Builder
				if simple {
					sb.WriteByte('(')
				}
				if len(args) == 1 && !IsFun(args[0], FunctionName) {
					sb.WriteString(p.show(args[0], true))
				} else {
					sb.WriteByte('(')
					sb.WriteString(p.showArgs(args))
					sb.WriteByte(')')
				}
				sb.WriteString(" -> ")
				sb.WriteString(p.show(ret, false))
				if simple {
					sb.WriteByte(')')
				}
				return sb.String()
			}
		case NilName:
			if len(t.Args) == 0 {
				return "[]"
			}
		case ConsName:
			if len(t.Args) == 2 {
				if elems, ok := ListElems(t); ok {
					return "[" + p.showArgs(elems) + "]"
				}
				s := p.show(t.Args[0], true) + " :: " + p.show(t.Args[1], false)
				if simple {
					return "(" + s + ")"
				}
				return s
			}
		}
		name := t.Name
		if len(t.Path) > 0 {
			name = strings.Join(t.Path, ".") + "." + name
		}
		if len(t.Args) == 0 {
			return name
		}
		return name + "<" + p.showArgs(t.Args) + ">"
	}
	return "<nil>"
}
