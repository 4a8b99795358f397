package util

import (
    "strconv"
    "unicode/utf8"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return v
}

// TruncateRunes returns s cut to at most n runes. Used for content previews.
func TruncateRunes(s string, n int) string {
    if n <= 0 || utf8.RuneCountInString(s) <= n {
        return s
    }
    rs := []rune(s)
    return string(rs[:n])
}
