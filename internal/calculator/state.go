package calculator

import "strings"

// State is the evaluator's carried context between button presses.
type State struct {
	Operand1          float64
	Operator          Operator
	PendingNewOperand bool
}

// InitialDisplay is shown after start and every reset.
const InitialDisplay = "0"

// ResetState returns the state after AC. The default "+" operator makes a bare
// "=" return the current operand unchanged.
func ResetState() State {
	return State{
		Operand1:          0,
		Operator:          OpAdd,
		PendingNewOperand: true,
	}
}

// HandleToken consumes one button press and returns the next state and
// display. Unknown tokens leave both untouched unless the display shows an
// error, in which case any press resets.
func HandleToken(state State, display string, label string) (State, string) {
	tok, err := ParseToken(label)
	if display == ErrorDisplay || tok.Kind == KindReset {
		return ResetState(), InitialDisplay
	}
	if err != nil {
		return state, display
	}
	return Step(state, display, tok)
}

// Step is HandleToken for an already classified token.
func Step(state State, display string, tok Token) (State, string) {
	if display == ErrorDisplay {
		return ResetState(), InitialDisplay
	}

	switch tok.Kind {
	case KindReset:
		return ResetState(), InitialDisplay

	case KindDigit:
		return appendDigit(state, display, tok.Label)

	case KindBinary:
		x, err := parseDisplay(display)
		if err != nil {
			return ResetState(), ErrorDisplay
		}
		result := Calculate(state.Operand1, x, state.Operator)
		next := State{Operator: tok.Operator, PendingNewOperand: true}
		if result != ErrorDisplay {
			next.Operand1, _ = parseDisplay(result)
		}
		return next, result

	case KindEquals:
		x, err := parseDisplay(display)
		if err != nil {
			return ResetState(), ErrorDisplay
		}
		return ResetState(), Calculate(state.Operand1, x, state.Operator)

	case KindPercent:
		x, err := parseDisplay(display)
		if err != nil {
			return ResetState(), ErrorDisplay
		}
		return ResetState(), FormatNumber(x / 100)

	case KindNegate:
		x, err := parseDisplay(display)
		if err != nil {
			return ResetState(), ErrorDisplay
		}
		return state, FormatNumber(-x)

	case KindScientific:
		// Failures here keep the pending computation, unlike every other
		// error path.
		x, err := parseDisplay(display)
		if err != nil {
			return state, ErrorDisplay
		}
		y, err := evaluate(tok.Function, x)
		if err != nil {
			return state, ErrorDisplay
		}
		result := FormatNumber(y)
		state.Operand1, _ = parseDisplay(result)
		state.PendingNewOperand = true
		return state, result
	}

	return state, display
}

func appendDigit(state State, display, digit string) (State, string) {
	if display == InitialDisplay || state.PendingNewOperand {
		state.PendingNewOperand = false
		if digit == "." {
			return state, "0."
		}
		return state, digit
	}

	if digit == "." && strings.Contains(display, ".") {
		return state, display
	}

	return state, display + digit
}
