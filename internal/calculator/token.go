package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownToken is returned by ParseToken for labels the keypad does not have.
var ErrUnknownToken = errors.New("unknown token")

// Kind is the closed set of token classes the evaluator dispatches on.
type Kind int

const (
	KindUnknown Kind = iota
	KindReset
	KindDigit
	KindBinary
	KindEquals
	KindPercent
	KindNegate
	KindScientific
)

func (k Kind) String() string {
	switch k {
	case KindReset:
		return "reset"
	case KindDigit:
		return "digit"
	case KindBinary:
		return "binary"
	case KindEquals:
		return "equals"
	case KindPercent:
		return "percent"
	case KindNegate:
		return "negate"
	case KindScientific:
		return "scientific"
	}
	return "unknown"
}

// Operator is a binary operator label.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpPower    Operator = "^"
)

// Valid reports whether op is one of the five binary operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower:
		return true
	}
	return false
}

// Function is a unary scientific function label.
type Function string

const (
	FnSin   Function = "sin"
	FnCos   Function = "cos"
	FnTan   Function = "tan"
	FnLn    Function = "ln"
	FnLog10 Function = "log10"
)

// Token is a normalized button press.
type Token struct {
	Kind     Kind
	Label    string
	Operator Operator // set for KindBinary
	Function Function // set for KindScientific
}

// ParseToken classifies a button label once, so the state machine never
// compares raw strings.
func ParseToken(label string) (Token, error) {
	t := Token{Label: label}

	switch label {
	case "AC":
		t.Kind = KindReset
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		t.Kind = KindDigit
	case "+", "-", "*", "/", "^":
		t.Kind = KindBinary
		t.Operator = Operator(label)
	case "=":
		t.Kind = KindEquals
	case "%":
		t.Kind = KindPercent
	case "+/-":
		t.Kind = KindNegate
	case "sin", "cos", "tan", "ln", "log10":
		t.Kind = KindScientific
		t.Function = Function(label)
	default:
		return Token{Label: label}, fmt.Errorf("%w: %q", ErrUnknownToken, label)
	}

	return t, nil
}
