package sortname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPerson(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic name handling
		{
			name:     "first and last",
			input:    "Stephen King",
			expected: "King, Stephen",
		},
		{
			name:     "middle name",
			input:    "Ursula K. Le Guin",
			expected: "Guin, Ursula K. Le",
		},
		{
			name:     "single name",
			input:    "Voltaire",
			expected: "Voltaire",
		},

		// Prefixes
		{
			name:     "doctor prefix stripped",
			input:    "Dr. Sarah Connor",
			expected: "Connor, Sarah",
		},
		{
			name:     "sir prefix stripped",
			input:    "Sir Terry Pratchett",
			expected: "Pratchett, Terry",
		},

		// Generational suffixes
		{
			name:     "junior preserved",
			input:    "Martin Luther King Jr.",
			expected: "King, Martin Luther, Jr.",
		},
		{
			name:     "roman numeral preserved",
			input:    "Thurston Howell III",
			expected: "Howell, Thurston, III",
		},

		// Particles
		{
			name:     "van particle moves with given name",
			input:    "Ludwig van Beethoven",
			expected: "Beethoven, Ludwig van",
		},
		{
			name:     "de particle moves with given name",
			input:    "Honore de Balzac",
			expected: "Balzac, Honore de",
		},

		// Edge cases
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "prefix then single name",
			input:    "Dr. House",
			expected: "House",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForPerson(tt.input))
		})
	}
}
