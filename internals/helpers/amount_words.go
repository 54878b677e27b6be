package helper

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells a non-negative rupee amount using the Indian
// numbering system (thousand, lakh, crore), e.g. 500.00 becomes
// "Five Hundred Rupees Only" and 1250.50 becomes
// "One Thousand Two Hundred Fifty Rupees and Fifty Paise Only".
func AmountInWords(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	// round to paise first so 99.999 does not spill into "Ninety Nine Paise"
	total := int64(math.Round(amount * 100))
	rupees := total / 100
	paise := total % 100

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(groupedWords(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(belowThousand(int(paise)))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// groupedWords handles the Indian grouping: crore / lakh / thousand / rest.
func groupedWords(n int64) string {
	parts := []string{}
	if c := n / 1_00_00_000; c > 0 {
		parts = append(parts, groupedWords(c)+" Crore")
		n %= 1_00_00_000
	}
	if l := n / 1_00_000; l > 0 {
		parts = append(parts, belowThousand(int(l))+" Lakh")
		n %= 1_00_000
	}
	if t := n / 1_000; t > 0 {
		parts = append(parts, belowThousand(int(t))+" Thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, belowThousand(int(n)))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int) string {
	parts := []string{}
	if h := n / 100; h > 0 {
		parts = append(parts, onesWords[h]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		word := tensWords[n/10]
		if n%10 > 0 {
			word += " " + onesWords[n%10]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
