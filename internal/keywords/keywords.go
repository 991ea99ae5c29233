// Package keywords maintains the search keyword queue. new keywords
// are mined out of already collected records, normalized and deduped
// against everything searched before.
package keywords

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
var dosagePattern = regexp.MustCompile(`\d+(\.\d+)?(mg|ml|g|mcg|μg|%|/\w+)`)
var nonWordPattern = regexp.MustCompile(`[^\w\s가-힣]`)

// Normalize strips dosage strengths, parentheticals and punctuation
// so "타이레놀정 500mg (아세트아미노펜)" and "타이레놀정" queue as
// the same keyword.
func Normalize(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	keyword = parentheticalPattern.ReplaceAllString(keyword, "")
	keyword = dosagePattern.ReplaceAllString(keyword, "")
	keyword = nonWordPattern.ReplaceAllString(keyword, "")
	return strings.TrimSpace(keyword)
}

var strengthSuffixPattern = regexp.MustCompile(`\d+\s*(mg|ml|g|mcg|μg|%|정|캡슐)`)
var allDigitsPattern = regexp.MustCompile(`^\d+$`)
var digitPattern = regexp.MustCompile(`\d`)
var dosageFormSuffixPattern = regexp.MustCompile(`(정|캡슐|시럽|주|액|크림|겔|로션)`)

var companyMarkers = []string{
	"(주)", "주식회사", "제약", "약품", "바이오", "팜", "케미칼",
	"한미", "동아", "유한", "종근당", "녹십자", "일동", "대웅",
}

// IsUsable filters out candidates that would waste an api call:
// company names, dosage strengths, fragments and over-specific
// multi-word phrases.
func IsUsable(keyword string) bool {
	length := len([]rune(keyword))
	if length < 2 || length > 25 {
		return false
	}
	if allDigitsPattern.MatchString(keyword) {
		return false
	}
	if strengthSuffixPattern.MatchString(keyword) {
		return false
	}
	if nonWordPattern.MatchString(keyword) {
		return false
	}
	for _, marker := range companyMarkers {
		if strings.Contains(keyword, marker) {
			return false
		}
	}

	words := strings.Fields(keyword)
	if len(words) > 3 {
		return false
	}
	for _, word := range words {
		if len([]rune(word)) < 2 {
			return false
		}
	}

	// digits are only tolerated in product names like "게보린정" that
	// carry a dosage form suffix
	if digitPattern.MatchString(keyword) && !dosageFormSuffixPattern.MatchString(keyword) {
		return false
	}
	return true
}

// thresholds for deduplication. candidates are held to a looser
// standard against each other than against keywords already searched,
// otherwise one batch of similar brand names crowds out everything.
const (
	SimilarityAgainstExisting = 0.95
	SimilarityAmongNew        = 0.6
)

// IsSimilar reports whether two keywords would return mostly the same
// search results.
func IsSimilar(a, b string, threshold float64) bool {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == "" || normB == "" {
		return false
	}
	if normA == normB {
		return true
	}

	// containment only counts when the lengths are close, "두통" is
	// contained in "두통약" but both are worth searching
	shorter, longer := normA, normB
	if len([]rune(shorter)) > len([]rune(longer)) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		ratio := float64(len([]rune(shorter))) / float64(len([]rune(longer)))
		if ratio > 0.9 {
			return true
		}
	}

	return matchr.JaroWinkler(normA, normB, true) >= threshold
}

// Dedup drops candidates too similar to existing keywords or to an
// earlier candidate in the same batch.
func Dedup(candidates []string, existing []string) []string {
	var kept []string
outer:
	for _, candidate := range candidates {
		for _, word := range existing {
			if IsSimilar(candidate, word, SimilarityAgainstExisting) {
				continue outer
			}
		}
		for _, word := range kept {
			if IsSimilar(candidate, word, SimilarityAmongNew) {
				continue outer
			}
		}
		kept = append(kept, candidate)
	}
	return kept
}
