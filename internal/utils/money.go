package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundMoney rounds to two decimals.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToMinorUnits converts a major-unit amount (rupees) into paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts paise back into rupees.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// FormatINR renders an amount like "INR 12,500.00".
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	minor := ToMinorUnits(amount)
	return fmt.Sprintf("%sINR %s.%02d", sign, formatThousand(minor/100), minor%100)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
