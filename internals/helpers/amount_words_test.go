package helper

import "testing"

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{7, "Seven Rupees Only"},
		{18, "Eighteen Rupees Only"},
		{40, "Forty Rupees Only"},
		{99, "Ninety Nine Rupees Only"},
		{500, "Five Hundred Rupees Only"},
		{1250.50, "One Thousand Two Hundred Fifty Rupees and Fifty Paise Only"},
		{100000, "One Lakh Rupees Only"},
		{2500000, "Twenty Five Lakh Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{123456789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Rupees Only"},
		{0.25, "Zero Rupees and Twenty Five Paise Only"},
	}
	for _, tc := range cases {
		if got := AmountInWords(tc.amount); got != tc.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestAmountInWordsNegativeClamped(t *testing.T) {
	if got := AmountInWords(-10); got != "Zero Rupees Only" {
		t.Errorf("negative amount should clamp to zero, got %q", got)
	}
}
