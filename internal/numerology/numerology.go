// Package numerology derives the deterministic profile-seed values used
// during identity calibration. All functions are pure; they are computed
// exactly once when a profile is created and frozen thereafter.
package numerology

import "strings"

// Data holds the derived numerology record embedded in an identity profile.
type Data struct {
	LifePath   int  `json:"lifePath"`
	Expression int  `json:"expression"`
	SoulUrge   int  `json:"soulUrge"`
	IsWealth   bool `json:"isWealth"`
}

// letterValues maps A-Z to Pythagorean digit values.
var letterValues = map[rune]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'O': 6, 'P': 7, 'Q': 8, 'R': 9,
	'S': 1, 'T': 2, 'U': 3, 'V': 4, 'W': 5, 'X': 6, 'Y': 7, 'Z': 8,
}

// vowelValues maps vowels to their soul-urge digit values.
var vowelValues = map[rune]int{'A': 1, 'E': 5, 'I': 9, 'O': 6, 'U': 3}

// Reduce collapses a number to a single digit by repeated digit summing.
// The master numbers 11, 22 and 33 are preserved unreduced.
func Reduce(n int) int {
	if n < 0 {
		return 0
	}
	for n > 9 && n != 11 && n != 22 && n != 33 {
		sum := 0
		for v := n; v > 0; v /= 10 {
			sum += v % 10
		}
		n = sum
	}
	return n
}

// LifePath computes the life-path number from a YYYY-MM-DD date string.
// Non-digit characters are ignored; an empty date yields 0.
func LifePath(dob string) int {
	if dob == "" {
		return 0
	}
	sum := 0
	for _, r := range dob {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return Reduce(sum)
}

// Expression computes the expression number from every letter of a full name.
func Expression(fullName string) int {
	if fullName == "" {
		return 0
	}
	sum := 0
	for _, r := range strings.ToUpper(fullName) {
		sum += letterValues[r]
	}
	return Reduce(sum)
}

// SoulUrge computes the soul-urge number from the vowels of a full name.
func SoulUrge(fullName string) int {
	if fullName == "" {
		return 0
	}
	sum := 0
	for _, r := range strings.ToUpper(fullName) {
		sum += vowelValues[r]
	}
	return Reduce(sum)
}

// IsWealth28 reports whether a number carries the wealth-28 attribute.
func IsWealth28(n int) bool {
	return n == 28 || Reduce(n) == 28
}

// Calculate derives the full numerology record for a name and birth date.
func Calculate(fullName, dob string) Data {
	lp := LifePath(dob)
	ex := Expression(fullName)
	return Data{
		LifePath:   lp,
		Expression: ex,
		SoulUrge:   SoulUrge(fullName),
		IsWealth:   IsWealth28(lp) || IsWealth28(ex),
	}
}
