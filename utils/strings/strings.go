package strings

import "strings"

func StringLeftJust(text string, filler string, size int) string {
	repeatSize := size - len(text)
	if repeatSize <= 0 {
		return text
	}

	return text + strings.Repeat(filler, repeatSize)
}

// Reverse returns text with its runes in reverse order.
func Reverse(text string) string {
	r := []rune(text)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
