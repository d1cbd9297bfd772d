package model

import (
	"math"
	"strconv"
)

// Value is an optional real number. The zero Value is undefined.
type Value struct {
	v     float64
	valid bool
}

// Some returns a defined Value. NaN and infinities are stored as undefined.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, valid: true}
}

// None returns an undefined Value.
func None() Value { return Value{} }

// Valid reports whether the value is defined.
func (x Value) Valid() bool { return x.valid }

// Get returns the float and whether it is defined.
func (x Value) Get() (float64, bool) { return x.v, x.valid }

// Float64 returns the value, or NaN when undefined.
func (x Value) Float64() float64 {
	if !x.valid {
		return math.NaN()
	}
	return x.v
}

// Format renders the value with prec decimals, or "n/a" when undefined.
func (x Value) Format(prec int) string {
	if !x.valid {
		return "n/a"
	}
	return strconv.FormatFloat(x.v, 'f', prec, 64)
}

func (x Value) String() string { return x.Format(2) }
