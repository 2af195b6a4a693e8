package numerology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"single digit unchanged", 7, 7},
		{"two digits collapse", 28, 1},
		{"multi-step collapse", 999, 9},
		{"master number 11 preserved", 11, 11},
		{"master number 22 preserved", 22, 22},
		{"master number 33 preserved", 33, 33},
		{"reduces onto master number", 29, 11},
		{"zero", 0, 0},
		{"negative clamps to zero", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.in))
		})
	}
}

func TestLifePath(t *testing.T) {
	// 1+9+9+0+0+1+0+1 = 21 → 3
	assert.Equal(t, 3, LifePath("1990-01-01"))
	assert.Equal(t, 0, LifePath(""))
}

func TestExpression(t *testing.T) {
	// A=1 D=4 A=1 → 6
	assert.Equal(t, 6, Expression("Ada"))
	// Case and punctuation must not matter.
	assert.Equal(t, Expression("ada lovelace"), Expression("Ada Lovelace!"))
	assert.Equal(t, 0, Expression(""))
}

func TestSoulUrge(t *testing.T) {
	// Vowels of "Ada": A, A → 1+1 = 2
	assert.Equal(t, 2, SoulUrge("Ada"))
	assert.Equal(t, 0, SoulUrge("xyz"))
}

func TestCalculate(t *testing.T) {
	d := Calculate("Ada", "1990-01-01")
	assert.Equal(t, 3, d.LifePath)
	assert.Equal(t, 6, d.Expression)
	assert.Equal(t, 2, d.SoulUrge)
	assert.False(t, d.IsWealth)
}
