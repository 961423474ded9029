package textutil

import (
	"strings"
	"unicode/utf8"
)

type Strategy string

const (
	StrategyHead     Strategy = "head"
	StrategyHeadTail Strategy = "head_tail"
)

const clipMarker = "...(truncated)..."

// Clip returns raw cut to at most maxBytes (plus the marker), never splitting
// a UTF-8 sequence. maxBytes <= 0 disables clipping.
func Clip(raw string, maxBytes int, strategy Strategy) string {
	if maxBytes <= 0 || len(raw) <= maxBytes {
		return raw
	}
	switch strategy {
	case StrategyHeadTail:
		headCount := maxBytes / 2
		tailCount := maxBytes - headCount
		return head(raw, headCount) + clipMarker + tail(raw, tailCount)
	default:
		return head(raw, maxBytes) + clipMarker
	}
}

// Flatten collapses all whitespace runs, newlines included, to single spaces
// so multi-line JSON fits on one log line.
func Flatten(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Preview is Flatten followed by a head/tail Clip.
func Preview(raw string, maxBytes int) string {
	return Clip(Flatten(raw), maxBytes, StrategyHeadTail)
}

func CountLines(raw string) int {
	if raw == "" {
		return 0
	}
	count := strings.Count(raw, "\n")
	if strings.HasSuffix(raw, "\n") {
		return count
	}
	return count + 1
}

func head(raw string, n int) string {
	if n >= len(raw) {
		return raw
	}
	for n > 0 && !utf8.RuneStart(raw[n]) {
		n--
	}
	return raw[:n]
}

func tail(raw string, n int) string {
	if n >= len(raw) {
		return raw
	}
	start := len(raw) - n
	for start < len(raw) && !utf8.RuneStart(raw[start]) {
		start++
	}
	return raw[start:]
}
