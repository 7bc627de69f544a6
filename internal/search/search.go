// Package search normalizes user query input and proposes alternate
// phrasings for cases where a literal match would fail.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Preprocess normalizes a raw search string: trim, fold full-width
// characters to half-width, collapse whitespace, lowercase, then strip
// everything that is not a CJK ideograph, letter, digit, or space.
// The result is idempotent.
func Preprocess(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	// Full-width forms sit at a fixed offset from their ASCII equivalents
	var folded strings.Builder
	for _, r := range s {
		switch {
		case r >= 0xFF01 && r <= 0xFF5E:
			r -= 0xFEE0
		case r == 0x3000: // ideographic space
			r = ' '
		}
		folded.WriteRune(r)
	}

	s = whitespaceRun.ReplaceAllString(folded.String(), " ")
	s = strings.ToLower(s)

	var kept []rune
	for _, r := range s {
		if allowedRune(r) {
			kept = append(kept, r)
		}
	}

	// Stripping can leave adjacent spaces behind, re-collapse for idempotence
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(string(kept), " "))
}

func allowedRune(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ':
		return true
	}
	return false
}

// synonymEntry maps a trigger term to alternate phrasings. Table order is
// generation order for suggestions.
type synonymEntry struct {
	trigger      string
	pattern      *regexp.Regexp
	alternatives []string
}

func syn(trigger string, alternatives ...string) synonymEntry {
	return synonymEntry{
		trigger:      trigger,
		pattern:      regexp.MustCompile(`(?i)` + regexp.QuoteMeta(trigger)),
		alternatives: alternatives,
	}
}

var synonymTable = []synonymEntry{
	syn("隐私", "个人信息", "用户信息"),
	syn("个人信息", "隐私", "用户数据"),
	syn("权限", "授权", "索权"),
	syn("收集", "采集", "获取"),
	syn("下架", "通报", "处罚"),
	syn("app", "应用", "应用程序"),
	syn("整改", "限期整改", "责令整改"),
}

const maxSuggestions = 5

// Suggestions returns up to 5 alternate phrasings of keyword, produced by
// replacing each matching trigger term with its synonyms. This is a
// deliberate substring+replace heuristic: users can see exactly why a
// suggestion was offered.
func Suggestions(keyword string) []string {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return nil
	}

	lower := strings.ToLower(kw)
	seen := make(map[string]bool)
	var out []string

	for _, e := range synonymTable {
		if !strings.Contains(lower, strings.ToLower(e.trigger)) {
			continue
		}
		for _, alt := range e.alternatives {
			candidate := e.pattern.ReplaceAllString(kw, alt)
			if candidate == kw || seen[candidate] {
				continue
			}
			seen[candidate] = true
			out = append(out, candidate)
			if len(out) == maxSuggestions {
				return out
			}
		}
	}

	return out
}

// FormatResultCount renders a result count for display. Counts are rounded,
// not truncated, to one decimal above the k/w thresholds.
func FormatResultCount(count int) string {
	switch {
	case count <= 0:
		return "未找到相关结果"
	case count == 1:
		return "找到 1 条结果"
	case count < 1000:
		return fmt.Sprintf("找到 %d 条结果", count)
	case count < 10000:
		return fmt.Sprintf("找到 %.1fk 条结果", float64(count)/1000)
	default:
		return fmt.Sprintf("找到 %.1fw 条结果", float64(count)/10000)
	}
}
