package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2025-03-14T09:30:00Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
    got := ParseTimeDefault("not-a-time", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestTruncateRunes(t *testing.T) {
    if got := TruncateRunes("abcdef", 4); got != "abcd" {
        t.Fatalf("unexpected %q", got)
    }
    if got := TruncateRunes("abc", 10); got != "abc" {
        t.Fatalf("unexpected %q", got)
    }
}
