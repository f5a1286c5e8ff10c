package payroll

import (
	"math"
	"strconv"
	"strings"
)

// ParseBaseSalary reads a display salary such as "$50,000" by keeping only digits and dots.
func ParseBaseSalary(display string) (float64, error) {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, ErrSalaryMissing
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, ErrSalaryMissing
	}
	return value, nil
}

func NetSalary(base, bonus, deductions float64) float64 {
	return round2(base + bonus - deductions)
}

// ParseAmount accepts a JSON number or numeric string. Missing values are zero.
func ParseAmount(raw any) (float64, error) {
	var value float64
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		value = parsed
	default:
		return 0, ErrInvalidAmount
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidAmount
	}
	return round2(value), nil
}

// NormalizeMonth accepts "October", "oct", "October 2023" or 1..12. A year
// embedded in the month string is returned as embeddedYear, otherwise zero.
func NormalizeMonth(raw any) (name string, number, embeddedYear int, err error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return "", 0, 0, ErrInvalidMonth
		}
		return monthByNumber(int(v))
	case int:
		return monthByNumber(v)
	case string:
		fields := strings.Fields(v)
		if len(fields) == 0 || len(fields) > 2 {
			return "", 0, 0, ErrInvalidMonth
		}
		if len(fields) == 2 {
			embeddedYear, err = strconv.Atoi(fields[1])
			if err != nil {
				return "", 0, 0, ErrInvalidMonth
			}
		}
		if n, convErr := strconv.Atoi(fields[0]); convErr == nil {
			name, number, _, err = monthByNumber(n)
			return name, number, embeddedYear, err
		}
		for i, candidate := range monthNames {
			if strings.EqualFold(candidate, fields[0]) || (len(fields[0]) == 3 && strings.EqualFold(candidate[:3], fields[0])) {
				return candidate, i + 1, embeddedYear, nil
			}
		}
	}
	return "", 0, 0, ErrInvalidMonth
}

func monthByNumber(n int) (string, int, int, error) {
	if n < 1 || n > 12 {
		return "", 0, 0, ErrInvalidMonth
	}
	return monthNames[n-1], n, 0, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
