// Package sortname generates bibliographic sort names for authors following
// ALA/Library of Congress conventions.
package sortname

import (
	"strings"
)

// GenerationalSuffixes are preserved in the sort name as they distinguish different people.
var GenerationalSuffixes = []string{
	"Jr.",
	"Jr",
	"Sr.",
	"Sr",
	"Junior",
	"Senior",
	"I",
	"II",
	"III",
	"IV",
	"V",
}

// Prefixes are honorifics/titles that are stripped from the sort name.
var Prefixes = []string{
	"Dr.",
	"Dr",
	"Mr.",
	"Mr",
	"Mrs.",
	"Mrs",
	"Ms.",
	"Ms",
	"Prof.",
	"Prof",
	"Rev.",
	"Rev",
	"Sir",
	"Dame",
	"Lord",
	"Lady",
}

// Particles are name particles that are moved to the end with the given name (library style).
// Example: "Ludwig van Beethoven" -> "Beethoven, Ludwig van".
var Particles = []string{
	"van",
	"von",
	"de",
	"da",
	"di",
	"du",
	"del",
	"della",
	"la",
	"le",
	"el",
	"al",
	"bin",
	"ibn",
}

// ForPerson generates a sort name from a person's display name.
// The name is converted to "Last, First Middle" format with proper handling of:
//   - Prefixes (Dr., Mr., etc.) - stripped
//   - Generational suffixes (Jr., III, etc.) - preserved
//   - Particles (van, von, de, etc.) - moved to end with given name
//
// Examples:
//   - "Stephen King" -> "King, Stephen"
//   - "Martin Luther King Jr." -> "King, Martin Luther, Jr."
//   - "Dr. Sarah Connor" -> "Connor, Sarah"
//   - "Ludwig van Beethoven" -> "Beethoven, Ludwig van"
func ForPerson(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}

	// Single word name - return as is
	if len(parts) == 1 {
		return name
	}

	// Strip prefixes from the beginning
	for len(parts) > 1 && isPrefix(parts[0]) {
		parts = parts[1:]
	}

	if len(parts) == 1 {
		return parts[0]
	}

	// Pull generational suffixes off the end so they can be re-added after the
	// given name
	var generationalSuffixes []string
	for len(parts) > 1 {
		last := parts[len(parts)-1]
		if isGenerationalSuffix(last) {
			generationalSuffixes = append([]string{last}, generationalSuffixes...)
			parts = parts[:len(parts)-1]
		} else {
			break
		}
	}

	if len(parts) == 1 {
		if len(generationalSuffixes) > 0 {
			return parts[0] + ", " + strings.Join(generationalSuffixes, ", ")
		}
		return parts[0]
	}

	// The last word is the surname; consecutive particles immediately before it
	// move to the end with the given name.
	// "Ludwig van Beethoven" -> surname is "Beethoven", given is "Ludwig van"
	surname := parts[len(parts)-1]
	givenParts := parts[:len(parts)-1]

	var particleParts []string
	for len(givenParts) > 0 {
		last := givenParts[len(givenParts)-1]
		if isParticle(last) {
			particleParts = append([]string{last}, particleParts...)
			givenParts = givenParts[:len(givenParts)-1]
		} else {
			break
		}
	}

	var result strings.Builder
	result.WriteString(surname)

	if len(givenParts) > 0 || len(particleParts) > 0 {
		result.WriteString(", ")
		if len(givenParts) > 0 {
			result.WriteString(strings.Join(givenParts, " "))
		}
		if len(particleParts) > 0 {
			if len(givenParts) > 0 {
				result.WriteString(" ")
			}
			result.WriteString(strings.Join(particleParts, " "))
		}
	}

	if len(generationalSuffixes) > 0 {
		result.WriteString(", ")
		result.WriteString(strings.Join(generationalSuffixes, ", "))
	}

	return result.String()
}

// isPrefix checks if a word is a name prefix (case-insensitive).
func isPrefix(word string) bool {
	for _, prefix := range Prefixes {
		if strings.EqualFold(word, prefix) {
			return true
		}
	}
	return false
}

// isGenerationalSuffix checks if a word is a generational suffix (case-insensitive).
func isGenerationalSuffix(word string) bool {
	// Remove trailing comma if present
	word = strings.TrimSuffix(word, ",")
	for _, suffix := range GenerationalSuffixes {
		if strings.EqualFold(word, suffix) {
			return true
		}
	}
	return false
}

// isParticle checks if a word is a name particle (case-insensitive).
func isParticle(word string) bool {
	for _, particle := range Particles {
		if strings.EqualFold(word, particle) {
			return true
		}
	}
	return false
}
