package services

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseSalary reads the bounds out of free-form salary text such as
// "$120K - $150K", "€60K - €80K", "$150K+" or "95000". A single figure is
// taken as the minimum. ok is false when no figure is found.
func ParseSalary(text string) (minimum, maximum int, ok bool) {
	figures := salaryFigures(text)
	switch len(figures) {
	case 0:
		return 0, 0, false
	case 1:
		return figures[0], 0, true
	}
	minimum, maximum = figures[0], figures[1]
	if minimum > maximum {
		minimum, maximum = maximum, minimum
	}
	return minimum, maximum, true
}

func salaryFigures(text string) []int {
	var figures []int
	runes := []rune(strings.ToLower(text))
	for i := 0; i < len(runes); {
		if !unicode.IsDigit(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == ',' || runes[i] == '.') {
			i++
		}
		number := strings.TrimRight(strings.ReplaceAll(string(runes[start:i]), ",", ""), ".")
		value, err := strconv.ParseFloat(number, 64)
		if err != nil {
			continue
		}
		if i < len(runes) {
			switch runes[i] {
			case 'k':
				value *= 1_000
				i++
			case 'm':
				value *= 1_000_000
				i++
			}
		}
		figures = append(figures, int(value))
	}
	return figures
}
