package model

import "unicode"

// Alphabet is the fixed set of characters rendered for every job, in
// processing order: uppercase letters, lowercase letters, then digits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Category groups alphabet characters by class.
//
// The category decides which output subfolder a rendered character is saved
// into and how much padding surrounds the glyph on its canvas.
type Category int

const (
	// CategoryDigit holds 0-9.
	CategoryDigit Category = iota

	// CategoryLower holds a-z.
	CategoryLower

	// CategoryUpper holds A-Z.
	CategoryUpper
)

// Categories lists every category in a stable order.
var Categories = []Category{CategoryDigit, CategoryLower, CategoryUpper}

// Classify returns the category of an alphabet character.
//
// The second return value is false for characters outside the alphabet,
// including non-ASCII letters and digits.
func Classify(r rune) (Category, bool) {
	if r > unicode.MaxASCII {
		return 0, false
	}
	switch {
	case unicode.IsDigit(r):
		return CategoryDigit, true
	case unicode.IsLower(r):
		return CategoryLower, true
	case unicode.IsUpper(r):
		return CategoryUpper, true
	}
	return 0, false
}

// Folder returns the output subfolder name for the category.
//
// Returns:
//   - "0-9" for CategoryDigit
//   - "a-z lower" for CategoryLower
//   - "A-Z UPPER" for CategoryUpper
func (c Category) Folder() string {
	switch c {
	case CategoryDigit:
		return "0-9"
	case CategoryLower:
		return "a-z lower"
	default:
		return "A-Z UPPER"
	}
}

// DefaultPadding returns the canvas padding, in pixels, used for the
// category when no override is configured.
func (c Category) DefaultPadding() int {
	if c == CategoryLower {
		return 200
	}
	return 100
}

func (c Category) String() string {
	switch c {
	case CategoryDigit:
		return "digit"
	case CategoryLower:
		return "lower"
	default:
		return "upper"
	}
}

// Padding holds per-category canvas padding in pixels.
type Padding struct {
	Digit int `json:"digit"`
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// DefaultPadding returns the padding table used by default.
func DefaultPadding() Padding {
	return Padding{
		Digit: CategoryDigit.DefaultPadding(),
		Lower: CategoryLower.DefaultPadding(),
		Upper: CategoryUpper.DefaultPadding(),
	}
}

// For returns the padding for the given category.
func (p Padding) For(c Category) int {
	switch c {
	case CategoryDigit:
		return p.Digit
	case CategoryLower:
		return p.Lower
	default:
		return p.Upper
	}
}
