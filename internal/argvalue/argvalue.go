// Package argvalue defines the closed value model that every call-site
// argument is reduced to before the analyzer compares two call sites for
// constancy. A Value is an immutable tagged union: exactly one of its
// Kind-selected fields is meaningful at a time.
package argvalue

import "fmt"

// Kind discriminates the variants of Value.
type Kind int

const (
	Boolean Kind = iota
	Number
	String
	JsxShorthand
	Enum
	Variable
	This
	MethodCall
	Other
	Function
	ParamRef
	Undefined
)

var kindTags = [...]string{
	Boolean:      "bool",
	Number:       "number",
	String:       "string",
	JsxShorthand: "jsxShorthand",
	Enum:         "enum",
	Variable:     "variable",
	This:         "this",
	MethodCall:   "methodCall",
	Other:        "other",
	Function:     "function",
	ParamRef:     "paramRef",
	Undefined:    "undefined",
}

func (k Kind) tag() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "unknown"
}

// Value is one observed argument value, with enough provenance that two
// values which look identical in source text but come from different
// declarations (two same-named enums, two different call sites of an
// unresolved parameter forward) still compare unequal.
//
// Value is immutable after construction; all constructors below return a
// fully-populated Value and nothing mutates one afterward.
type Value struct {
	kind Kind

	boolVal   bool
	numVal    float64
	strVal    string
	text      string // raw source text, used by Other/This/MethodCall/Function/ParamRef
	file      string
	line      int
	declFile  string
	declLine  int
	enumName  string
	member    string
	enclosing string // ParamRef: ClassName.methodName / bound name / "anonymous"
	path      string // ParamRef: dotted path rooted at the parameter name
}

// Bool builds a BooleanLiteral.
func Bool(v bool) Value { return Value{kind: Boolean, boolVal: v} }

// Num builds a NumberLiteral in its canonical numeric form.
func Num(v float64) Value { return Value{kind: Number, numVal: v} }

// Str builds a StringLiteral holding raw (unquoted) content.
func Str(v string) Value { return Value{kind: String, strVal: v} }

// Shorthand builds the implicit `true` of a shorthand JSX attribute.
func Shorthand() Value { return Value{kind: JsxShorthand} }

// EnumMember builds an EnumLiteral. Identity includes the declaring file,
// so two same-named enums declared in different files never compare equal.
func EnumMember(declFile, enumName, memberName string, memberValue string) Value {
	return Value{
		kind:     Enum,
		declFile: declFile,
		enumName: enumName,
		member:   memberName,
		strVal:   memberValue,
	}
}

// UninitializedVar builds a VariableLiteral: an identifier whose
// declaration carries no initializer (`declare const X`, a bare import).
// Two same-named declarations on different files or lines are distinct.
func UninitializedVar(declFile, identifierText string, declLine int) Value {
	return Value{kind: Variable, declFile: declFile, text: identifierText, declLine: declLine}
}

// ThisAccess builds a ThisLiteral: property access rooted at `this`, unique per
// use site because the receiver instance is unknown.
func ThisAccess(file string, line int, text string) Value {
	return Value{kind: This, file: file, line: line, text: text}
}

// Call builds a MethodCallLiteral: a call whose callee is a property
// access, or whose arguments include a parameter reference. Unique per use
// site for the same reason as ThisLiteral.
func Call(file string, line int, text string) Value {
	return Value{kind: MethodCall, file: file, line: line, text: text}
}

// Raw builds the fallback OtherLiteral for expressions the extractor does
// not understand.
func Raw(text string) Value { return Value{kind: Other, text: text} }

// Callback builds a FunctionArgValue: the expression has a call-signature
// type. Unique per source location, so two identical callback identifiers
// never coalesce into a reported constant.
func Callback(file string, line int) Value {
	return Value{kind: Function, file: file, line: line}
}

// Param builds a ParamRefArgValue: the expression reads a parameter of its
// enclosing function, possibly through nested property access.
func Param(declFile, enclosingName, dottedPath string, line int) Value {
	return Value{kind: ParamRef, declFile: declFile, enclosing: enclosingName, path: dottedPath, line: line}
}

// Undef builds the UndefinedArgValue: the literal `undefined`, a missing
// argument, or a synthesized omission from an expected type.
func Undef() Value { return Value{kind: Undefined} }

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the unconstructed zero Value (never emitted
// by the constructors above, only by an unset struct field).
func (v Value) IsZero() bool { return v.kind == Boolean && !v.boolVal && v.text == "" && v.file == "" }

// BoolValue returns the payload of a Boolean value.
func (v Value) BoolValue() bool { return v.boolVal }

// NumValue returns the payload of a Number value.
func (v Value) NumValue() float64 { return v.numVal }

// StrValue returns the payload of a String value, or an Enum member's
// underlying value.
func (v Value) StrValue() string { return v.strVal }

// EnclosingName returns the ParamRef's enclosing-function name.
func (v Value) EnclosingName() string { return v.enclosing }

// Path returns the ParamRef's dotted parameter path.
func (v Value) Path() string { return v.path }

// DeclFile returns the declaring file of a ParamRef, Variable, or Enum value.
func (v Value) DeclFile() string { return v.declFile }

// Line returns the source line, for the per-use-site-unique variants.
func (v Value) Line() int { return v.line }

// File returns the source file, for the per-use-site-unique variants.
func (v Value) File() string { return v.file }

// Key returns the comparison key: "[" + tag + "]" + payload. Two Values
// compare equal as usages (see internal/constancy) iff their Key is equal.
func (v Value) Key() string {
	switch v.kind {
	case Boolean:
		return fmt.Sprintf("[%s]%t", v.kind.tag(), v.boolVal)
	case Number:
		return fmt.Sprintf("[%s]%v", v.kind.tag(), v.numVal)
	case String:
		return fmt.Sprintf("[%s]%s", v.kind.tag(), v.strVal)
	case JsxShorthand:
		return fmt.Sprintf("[%s]", v.kind.tag())
	case Enum:
		return fmt.Sprintf("[%s]%s|%s.%s", v.kind.tag(), v.declFile, v.enumName, v.member)
	case Variable:
		return fmt.Sprintf("[%s]%s|%s|%d", v.kind.tag(), v.declFile, v.text, v.declLine)
	case This:
		return fmt.Sprintf("[%s]%s|%d|%s", v.kind.tag(), v.file, v.line, v.text)
	case MethodCall:
		return fmt.Sprintf("[%s]%s|%d|%s", v.kind.tag(), v.file, v.line, v.text)
	case Other:
		return fmt.Sprintf("[%s]%s", v.kind.tag(), v.text)
	case Function:
		return fmt.Sprintf("[%s]%s|%d", v.kind.tag(), v.file, v.line)
	case ParamRef:
		return fmt.Sprintf("[%s]%s|%s|%s|%d", v.kind.tag(), v.declFile, v.enclosing, v.path, v.line)
	case Undefined:
		return fmt.Sprintf("[%s]", v.kind.tag())
	default:
		return fmt.Sprintf("[%s]", v.kind.tag())
	}
}

// Output returns the report-facing textual projection. Literal variants
// print without the bracketed tag; enum variants print as
// "EnumName.MemberName".
func (v Value) Output() string {
	switch v.kind {
	case Boolean:
		if v.boolVal {
			return "true"
		}
		return "false"
	case Number:
		return fmt.Sprintf("%v", v.numVal)
	case String:
		return v.strVal
	case JsxShorthand:
		return "true"
	case Enum:
		return v.enumName + "." + v.member
	case Variable:
		return v.text
	case This:
		return v.text
	case MethodCall:
		return v.text
	case Other:
		return v.text
	case Function:
		return v.text
	case ParamRef:
		return v.path
	case Undefined:
		return "undefined"
	default:
		return ""
	}
}

// ValueKind classifies v for the allowlist filter in internal/constancy
// (spec.md §4.8: boolean | number | string | enum | undefined, else
// "unclassifiable" — matches only an "all" allowlist).
type ValueKind int

const (
	ClassBoolean ValueKind = iota
	ClassNumber
	ClassString
	ClassEnum
	ClassUndefined
	ClassUnclassifiable
)

// Classify maps a Value's Kind to its allowlist class.
func (v Value) Classify() ValueKind {
	switch v.kind {
	case Boolean, JsxShorthand:
		return ClassBoolean
	case Number:
		return ClassNumber
	case String:
		return ClassString
	case Enum:
		return ClassEnum
	case Undefined:
		return ClassUndefined
	default:
		return ClassUnclassifiable
	}
}

func (k ValueKind) String() string {
	switch k {
	case ClassBoolean:
		return "boolean"
	case ClassNumber:
		return "number"
	case ClassString:
		return "string"
	case ClassEnum:
		return "enum"
	case ClassUndefined:
		return "undefined"
	default:
		return "unclassifiable"
	}
}
