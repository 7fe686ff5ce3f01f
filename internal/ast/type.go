package ast

import "fmt"

// Type is a resolved type, as opposed to TypeExpr which is the syntax as
// written. The semantic analyzer builds Types from TypeExprs and attaches
// them to expression nodes; code generation consumes only Types.
type Type interface {
	isType()
	String() string
}

type UnitT struct{}

func (UnitT) isType()        {}
func (UnitT) String() string { return "()" }

type BoolT struct{}

func (BoolT) isType()        {}
func (BoolT) String() string { return "bool" }

// IntT is an integer type of a given bit width and signedness, per
// spec.md §3: `Int(width∈{8,16,32,64}, signed)`.
type IntT struct {
	Width  int
	Signed bool
}

func (IntT) isType() {}
func (t IntT) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Width)
	}
	return fmt.Sprintf("u%d", t.Width)
}

var (
	I8  = IntT{Width: 8, Signed: true}
	I16 = IntT{Width: 16, Signed: true}
	I32 = IntT{Width: 32, Signed: true}
	I64 = IntT{Width: 64, Signed: true}
	U8  = IntT{Width: 8, Signed: false}
	U16 = IntT{Width: 16, Signed: false}
	U32 = IntT{Width: 32, Signed: false}
	U64 = IntT{Width: 64, Signed: false}
)

type StringT struct{}

func (StringT) isType()        {}
func (StringT) String() string { return "String" }

// ArrayT is `[T; N]` with N known statically.
type ArrayT struct {
	Elem Type
	Size int64
}

func (ArrayT) isType() {}
func (t ArrayT) String() string { return fmt.Sprintf("[%s; %d]", t.Elem, t.Size) }

// RefT is `&T` or `&mut T`.
type RefT struct {
	Mutable bool
	Elem    Type
}

func (RefT) isType() {}
func (t RefT) String() string {
	if t.Mutable {
		return "&mut " + t.Elem.String()
	}
	return "&" + t.Elem.String()
}

// NamedT is a resolved reference to a struct or enum declaration.
type NamedT struct {
	Name     string
	TypeArgs []Type
}

func (NamedT) isType() {}
func (t NamedT) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	s := t.Name + "<"
	for i, a := range t.TypeArgs {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// TypeParamT is an unresolved generic type parameter, treated per spec.md
// §9 as opaque: it unifies only with itself within one declaration.
type TypeParamT struct {
	Name string
}

func (TypeParamT) isType()        {}
func (t TypeParamT) String() string { return t.Name }

// FnT is a function signature type, used to describe call targets.
type FnT struct {
	Params []Type
	Result Type
}

func (FnT) isType() {}
func (t FnT) String() string {
	s := "fn("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.Result.String()
}

// SameType reports structural equality between two resolved types.
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case UnitT:
		_, ok := b.(UnitT)
		return ok
	case BoolT:
		_, ok := b.(BoolT)
		return ok
	case IntT:
		bv, ok := b.(IntT)
		return ok && av == bv
	case StringT:
		_, ok := b.(StringT)
		return ok
	case ArrayT:
		bv, ok := b.(ArrayT)
		return ok && av.Size == bv.Size && SameType(av.Elem, bv.Elem)
	case RefT:
		bv, ok := b.(RefT)
		return ok && av.Mutable == bv.Mutable && SameType(av.Elem, bv.Elem)
	case NamedT:
		bv, ok := b.(NamedT)
		if !ok || av.Name != bv.Name || len(av.TypeArgs) != len(bv.TypeArgs) {
			return false
		}
		for i := range av.TypeArgs {
			if !SameType(av.TypeArgs[i], bv.TypeArgs[i]) {
				return false
			}
		}
		return true
	case TypeParamT:
		bv, ok := b.(TypeParamT)
		return ok && av.Name == bv.Name
	case FnT:
		bv, ok := b.(FnT)
		if !ok || len(av.Params) != len(bv.Params) || !SameType(av.Result, bv.Result) {
			return false
		}
		for i := range av.Params {
			if !SameType(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsCopy reports whether a type is a Copy type per spec.md §4.3.3:
// integers, booleans, references, and fixed-size arrays of Copy elements.
func IsCopy(t Type) bool {
	switch tv := t.(type) {
	case IntT, BoolT, RefT:
		return true
	case ArrayT:
		return IsCopy(tv.Elem)
	default:
		return false
	}
}
