package odds

import (
	"fmt"
	"math"
	"testing"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected float64
		delta    float64
	}{
		// American
		{"American underdog +150", "+150", 2.5, 1e-9},
		{"American favorite -110", "-110", 1.909090909, 1e-6},
		{"American heavy favorite -200", "-200", 1.5, 1e-9},
		{"American even +100", "+100", 2.0, 1e-9},

		// Fractional
		{"Fractional 5/2", "5/2", 3.5, 1e-9},
		{"Fractional 1/2", "1/2", 1.5, 1e-9},
		{"Fractional with spaces", " 3 / 1 ", 4.0, 1e-9},

		// Decimal
		{"Decimal 2.50", "2.50", 2.5, 1e-9},
		{"Decimal 1.91", "1.91", 1.91, 1e-9},

		// Sentinel cases
		{"Empty", "", Unparseable, 0},
		{"Garbage", "abc", Unparseable, 0},
		{"Plus garbage", "+abc", Unparseable, 0},
		{"Division by zero", "5/0", Unparseable, 0},
		{"Bare sign", "+", Unparseable, 0},
		{"Zero American", "-0", Unparseable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.token)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("ToDecimal(%q) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		expected int
	}{
		{"Underdog 2.50", 2.5, 150},
		{"Favorite 1.909", 1.909090909, -110},
		{"Even money", 2.0, 100},
		{"Heavy favorite 1.50", 1.5, -200},
		{"Invalid below 1", 0.5, 0},
		{"Exactly 1.0", 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecimalToAmerican(tt.decimal); got != tt.expected {
				t.Errorf("DecimalToAmerican(%v) = %d, want %d", tt.decimal, got, tt.expected)
			}
		})
	}
}

// Converting decimal odds to American and back should return the original
// value within floating rounding tolerance.
func TestAmericanRoundTrip(t *testing.T) {
	for _, d := range []float64{1.5, 2.0, 2.5, 3.78, 11.0} {
		american := DecimalToAmerican(d)
		back := ToDecimal(fmt.Sprintf("%+d", american))
		if math.Abs(back-d) > 1e-6 {
			t.Errorf("round trip %v -> %d -> %v", d, american, back)
		}
	}
}

func TestDecimalToImplied(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		expected float64
	}{
		{"Underdog 2.50", 2.5, 0.4},
		{"Favorite 1.25", 1.25, 0.8},
		{"Invalid", 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecimalToImplied(tt.decimal); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("DecimalToImplied(%v) = %v, want %v", tt.decimal, got, tt.expected)
			}
		})
	}
}

func TestAmericanToImplied(t *testing.T) {
	tests := []struct {
		name     string
		odds     int
		expected float64
	}{
		{"Favorite -150", -150, 0.6},
		{"Underdog +150", 150, 0.4},
		{"Even +100", 100, 0.5},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmericanToImplied(tt.odds); math.Abs(got-tt.expected) > 1e-3 {
				t.Errorf("AmericanToImplied(%d) = %v, want %v", tt.odds, got, tt.expected)
			}
		})
	}
}
