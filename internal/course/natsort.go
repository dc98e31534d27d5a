package course

import (
	"sort"
	"strings"
)

// CompareNatural orders names the way a person would: digit runs compare by
// numeric value, so "2.mp4" sorts before "10.mp4".
func CompareNatural(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareToken(ta[i], tb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ta) < len(tb):
		return -1
	case len(ta) > len(tb):
		return 1
	}
	return strings.Compare(a, b)
}

// SortNatural sorts names in place using CompareNatural.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return CompareNatural(names[i], names[j]) < 0
	})
}

type token struct {
	text  string
	digit bool
}

func tokenize(s string) []token {
	var out []token
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, token{text: s[start:i], digit: isDigit(s[start])})
			start = i
		}
	}
	return out
}

func compareToken(a, b token) int {
	if a.digit && b.digit {
		na := strings.TrimLeft(a.text, "0")
		nb := strings.TrimLeft(b.text, "0")
		if len(na) != len(nb) {
			if len(na) < len(nb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(na, nb); c != 0 {
			return c
		}
		// Same value: fewer leading zeros first.
		switch {
		case len(a.text) < len(b.text):
			return -1
		case len(a.text) > len(b.text):
			return 1
		}
		return 0
	}
	if c := strings.Compare(strings.ToLower(a.text), strings.ToLower(b.text)); c != 0 {
		return c
	}
	return strings.Compare(a.text, b.text)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
