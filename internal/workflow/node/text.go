package node

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 按字符数截断
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// CountRunes 字符数
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// CountWords 以空白分隔的词数
func CountWords(s string) int {
	return len(strings.Fields(s))
}
