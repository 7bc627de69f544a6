// Package extract pulls structured case fields out of plain notice text
// using ordered regex cascades. A field miss is never an error: it degrades
// to a nil field plus a human-readable warning, and the confidence score
// reports how much of the case was recovered.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/casewiki/casewiki/internal/model"
)

const fieldCount = 7

// Parse extracts up to seven fields from text. Fields are independent;
// within a field the first matching pattern wins. Warnings are appended in
// fixed field order: date, app name, developer, department, platform,
// violation summary, violation detail.
func Parse(text string) *model.ParsedCase {
	c := &model.ParsedCase{
		ReportDate:       extractDate(text),
		AppName:          extractAppName(text),
		Developer:        extractDeveloper(text),
		Department:       extractDepartment(text),
		Platform:         extractPlatform(text),
		ViolationSummary: extractSummary(text),
		ViolationDetail:  extractDetail(text),
	}

	checks := []struct {
		value   *string
		warning string
	}{
		{c.ReportDate, "未识别到通报日期，请手动填写"},
		{c.AppName, "未识别到应用名称，请手动填写"},
		{c.Developer, "未识别到开发者信息，请手动填写"},
		{c.Department, "未识别到通报部门，请手动填写"},
		{c.Platform, "未识别到下载平台，请手动填写"},
		{c.ViolationSummary, "未识别到违规问题概述，请手动填写"},
		{c.ViolationDetail, "未识别到违规问题详情，请手动填写"},
	}

	filled := 0
	for _, check := range checks {
		if check.value != nil {
			filled++
		} else {
			c.Warnings = append(c.Warnings, check.warning)
		}
	}
	c.Confidence = float64(filled) / float64(fieldCount)

	return c
}

// extractDate normalizes the first matching date to zero-padded YYYY-MM-DD
func extractDate(text string) *string {
	for _, p := range datePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		d := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		return &d
	}
	return nil
}

func extractAppName(text string) *string {
	return firstGroup(appNamePatterns, text)
}

func extractDeveloper(text string) *string {
	return firstGroup(developerPatterns, text)
}

// extractDepartment tries exact substring membership against the known
// department table first (canonicalizing abbreviations), then falls back to
// a regex for provincial/municipal regulators
func extractDepartment(text string) *string {
	for _, d := range departmentTable {
		if strings.Contains(text, d.name) {
			canonical := d.canonical
			return &canonical
		}
	}
	if m := departmentFallback.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		return &name
	}
	return nil
}

func extractPlatform(text string) *string {
	for _, p := range platformTable {
		if strings.Contains(text, p) {
			name := p
			return &name
		}
	}
	return nil
}

func extractSummary(text string) *string {
	s := firstGroup(summaryPatterns, text)
	if s == nil {
		return nil
	}
	truncated := truncateRunes(*s, summaryMaxRunes)
	return &truncated
}

// extractDetail is not pattern-based: it keeps the first few mid-length
// sentences that mention violation vocabulary and joins them back together
func extractDetail(text string) *string {
	var kept []string
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		n := utf8.RuneCountInString(sentence)
		if n <= detailMinSentRunes || n >= detailMaxSentRunes {
			continue
		}
		if !containsAny(sentence, detailKeywords) {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == detailMaxSentences {
			break
		}
	}
	if len(kept) == 0 {
		return nil
	}
	detail := truncateRunes(strings.Join(kept, "。"), detailMaxRunes)
	return &detail
}

// firstGroup returns the trimmed first capture group of the first pattern
// that matches
func firstGroup(patterns []*regexp.Regexp, text string) *string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
