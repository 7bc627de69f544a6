// Package keyword turns free-text violation descriptions into canonical
// violation-issue phrases for statistics aggregation.
//
// Extraction runs an ordered list of completion rules over each
// punctuation-delimited segment. A match that already reads as a complete
// phrase is kept verbatim; a recognized shorthand (e.g. "超范围收集") is
// replaced by its canonical completion. Rule order encodes precedence and
// must not be collapsed into a single regex.
package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// completionRule pairs a shorthand matcher with its canonical completion.
// The invariant for every rule: canonical passes Validate.
type completionRule struct {
	find      *regexp.Regexp // substring matcher used during extraction
	exact     *regexp.Regexp // full-phrase matcher used during normalization
	canonical string
}

func rule(expr, canonical string) completionRule {
	return completionRule{
		find:      regexp.MustCompile(expr),
		exact:     regexp.MustCompile(`^(?:` + expr + `)$`),
		canonical: canonical,
	}
}

// completionRules is tried strictly in order; first full match wins during
// normalization. Categories follow the MIIT app-violation notice taxonomy.
var completionRules = []completionRule{
	rule(`超范围收集(?:使用)?(?:个人信息|用户信息|隐私信息)?`, "超范围收集个人信息"),
	rule(`违规收集(?:使用)?(?:个人信息|用户信息)?`, "违规收集个人信息"),
	rule(`私自收集(?:个人信息|用户信息)?`, "私自收集个人信息"),
	rule(`违规使用(?:个人信息|用户信息)?`, "违规使用个人信息"),
	rule(`强制(?:用户)?授权(?:非必要权限)?`, "强制用户授权非必要权限"),
	rule(`强制索(?:权|取权限)`, "强制用户授权非必要权限"),
	rule(`(?:频繁|过度)(?:申请|索取|索要)权限|(?:频繁|过度)索权`, "频繁申请非必要权限"),
	rule(`超范围(?:索权|索取权限|申请权限)`, "超范围索取用户权限"),
	rule(`未明示(?:收集(?:使用)?)?(?:个人信息的?)?规则`, "未明示收集使用个人信息的规则"),
	rule(`未经(?:用户)?同意(?:收集|使用)(?:个人信息|用户信息)?`, "未经用户同意收集个人信息"),
	rule(`未经(?:用户)?同意(?:向(?:他人|第三方))?(?:提供|共享)(?:个人信息)?`, "未经用户同意向第三方提供个人信息"),
	rule(`(?:违规|私自|擅自)(?:共享|提供)(?:个人信息)?`, "违规向第三方共享个人信息"),
	rule(`欺骗误导(?:用户)?(?:下载|提供)?(?:个人信息)?`, "欺骗误导用户提供个人信息"),
	rule(`(?:私自|违规)调用(?:通讯录|相机|麦克风|定位)?权限`, "违规调用权限获取设备信息"),
}

// actionTerms are verb-like components a valid violation phrase must contain
var actionTerms = []string{
	"收集", "使用", "共享", "提供", "上传", "索取", "获取",
	"强制", "欺骗", "误导", "申请", "授权", "调用", "读取", "传输",
}

// objectTerms are object components a valid violation phrase must contain
var objectTerms = []string{
	"个人信息", "用户信息", "隐私信息", "设备信息", "位置信息",
	"通讯录", "权限", "短信", "通话记录", "账号信息",
}

const minPhraseRunes = 6

// segmentSplitter breaks input on the punctuation that separates distinct
// violation descriptions in notice text
var segmentSplitter = regexp.MustCompile(`[；;。\n]+`)

// Extract returns the canonical violation phrases found in text, deduplicated
// with first-occurrence order preserved. Every returned phrase passes
// Validate. Empty or whitespace-only input yields nil without error.
func Extract(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(phrase string) {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" || seen[phrase] || !Validate(phrase) {
			return
		}
		seen[phrase] = true
		out = append(out, phrase)
	}

	for _, segment := range segmentSplitter.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		matched := false
		for _, r := range completionRules {
			for _, m := range r.find.FindAllString(segment, -1) {
				matched = true
				if Validate(m) {
					// Already a complete phrase, keep verbatim
					add(m)
				} else {
					add(Normalize(m))
				}
			}
		}

		// Fallback: an unrecognized segment that still reads like a
		// violation description is kept as-is rather than dropped.
		if !matched {
			add(segment)
		}
	}

	return out
}

// Normalize completes a recognized shorthand keyword to its canonical form.
// Unrecognized input is returned unchanged, which makes Normalize idempotent:
// canonical forms never full-match a rule with a different completion.
func Normalize(partial string) string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return partial
	}
	for _, r := range completionRules {
		if r.exact.MatchString(partial) {
			return r.canonical
		}
	}
	return partial
}

// Validate reports whether a phrase is a plausible violation description:
// long enough, with both an action and an object component. The check is
// structural, not semantic, so novel-but-plausible phrases pass.
func Validate(phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if utf8.RuneCountInString(phrase) < minPhraseRunes {
		return false
	}
	return containsAny(phrase, actionTerms) && containsAny(phrase, objectTerms)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
