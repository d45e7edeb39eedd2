package calculator

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 3.0, want: "3"},
		{in: 3.140000000, want: "3.14"},
		{in: 1e-13, want: "0"},
		{in: -1e-13, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: -4, want: "-4"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: 1.0 / 3.0, want: "0.3333333333"},
		{in: 99.99999999999, want: "100"},
		{in: 0.00001234, want: "1.234e-05"},
		{in: 12345678901.5, want: "1.23456789e+10"},
		{in: 1e20, want: "100000000000000000000"},
	}

	for _, tc := range tests {
		t.Run(strconv.FormatFloat(tc.in, 'g', -1, 64), func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Fatalf("FormatNumber(%v): expected %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   Operator
		want string
	}{
		{name: "add", a: 2, b: 3, op: OpAdd, want: "5"},
		{name: "subtract", a: 2, b: 3, op: OpSubtract, want: "-1"},
		{name: "multiply", a: 2.5, b: 4, op: OpMultiply, want: "10"},
		{name: "divide", a: 1, b: 4, op: OpDivide, want: "0.25"},
		{name: "divide by zero", a: 1, b: 0, op: OpDivide, want: ErrorDisplay},
		{name: "zero divided by zero", a: 0, b: 0, op: OpDivide, want: ErrorDisplay},
		{name: "power", a: 2, b: 10, op: OpPower, want: "1024"},
		{name: "fractional power", a: 9, b: 0.5, op: OpPower, want: "3"},
		{name: "negative base fractional exponent", a: -8, b: 0.5, op: OpPower, want: ErrorDisplay},
		{name: "power overflow", a: 10, b: 400, op: OpPower, want: ErrorDisplay},
		{name: "zero to negative power", a: 0, b: -1, op: OpPower, want: ErrorDisplay},
		{name: "multiply overflow", a: 1e308, b: 10, op: OpMultiply, want: ErrorDisplay},
		{name: "unknown operator returns b", a: 7, b: 3, op: Operator("?"), want: "3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Calculate(tc.a, tc.b, tc.op); got != tc.want {
				t.Fatalf("Calculate(%v, %v, %q): expected %q, got %q", tc.a, tc.b, tc.op, tc.want, got)
			}
		})
	}
}

func TestCalculateDivideMultiplyRoundTrip(t *testing.T) {
	pairs := [][2]float64{{1, 3}, {2, 7}, {10, 4}, {-7, 2}, {0.5, 0.25}, {123, -6}}

	for _, p := range pairs {
		a, b := p[0], p[1]

		quotient, err := strconv.ParseFloat(Calculate(a, b, OpDivide), 64)
		if err != nil {
			t.Fatalf("%v / %v: %v", a, b, err)
		}
		back, err := strconv.ParseFloat(Calculate(quotient, b, OpMultiply), 64)
		if err != nil {
			t.Fatalf("%v * %v: %v", quotient, b, err)
		}

		if math.Abs(back-a) > 1e-9 {
			t.Fatalf("round trip of %v through %v: got %v", a, b, back)
		}
	}
}

func TestApplyErrorsAreDomainErrors(t *testing.T) {
	_, err := apply(1, 0, OpDivide)
	if !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestEvaluateScientific(t *testing.T) {
	tests := []struct {
		fn      Function
		x       float64
		want    string
		wantErr bool
	}{
		{fn: FnSin, x: 30, want: "0.5"},
		{fn: FnSin, x: 180, want: "0"},
		{fn: FnCos, x: 90, want: "0"},
		{fn: FnCos, x: 60, want: "0.5"},
		{fn: FnTan, x: 45, want: "1"},
		{fn: FnLn, x: 1, want: "0"},
		{fn: FnLn, x: math.E, want: "1"},
		{fn: FnLog10, x: 1000, want: "3"},
		{fn: FnLn, x: 0, wantErr: true},
		{fn: FnLn, x: -5, wantErr: true},
		{fn: FnLog10, x: -1, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(string(tc.fn)+"/"+strconv.FormatFloat(tc.x, 'g', -1, 64), func(t *testing.T) {
			got, err := evaluate(tc.fn, tc.x)
			if tc.wantErr {
				if !errors.Is(err, ErrDomain) {
					t.Fatalf("expected ErrDomain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := FormatNumber(got); s != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, s)
			}
		})
	}
}
