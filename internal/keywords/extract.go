package keywords

import (
	"regexp"
	"strings"

	"medicollector/lib/scrapers/encyc"
)

var componentTokenPattern = regexp.MustCompile(`([가-힣a-zA-Z]{2,})`)
var bracketCodePattern = regexp.MustCompile(`\[[^\]]*\]`)
var classificationSplitPattern = regexp.MustCompile(`[/,>]`)
var namePattern = regexp.MustCompile(`^([^(]+)\(([^)]*)\)`)

func extractFromName(name string, out *[]string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if groups := namePattern.FindStringSubmatch(name); groups != nil {
		// both "타이레놀정(아세트아미노펜)" parts are candidates
		*out = append(*out, strings.TrimSpace(groups[1]))
		if inner := strings.TrimSpace(groups[2]); inner != "" {
			*out = append(*out, inner)
		}
		return
	}
	*out = append(*out, name)
}

func extractFromComponents(components string, out *[]string) {
	for _, groups := range componentTokenPattern.FindAllStringSubmatch(components, -1) {
		token := groups[1]
		if len([]rune(token)) < 3 {
			continue
		}
		if digitPattern.MatchString(token) {
			continue
		}
		*out = append(*out, token)
	}
}

func extractFromClassification(classification string, out *[]string) {
	classification = bracketCodePattern.ReplaceAllString(classification, "")
	for _, part := range classificationSplitPattern.Split(classification, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			*out = append(*out, part)
		}
	}
}

// Extract mines keyword candidates out of a collected record. product
// names, active components, drug classes and efficacy phrases all
// lead to more dictionary entries when searched.
func Extract(doc *encyc.Document) []string {
	var raw []string
	extractFromName(doc.Get("korean_name"), &raw)
	extractFromName(doc.Get("english_name"), &raw)
	extractFromComponents(doc.Get("components"), &raw)
	extractFromClassification(doc.Get("classification"), &raw)
	extractFromClassification(doc.Get("category"), &raw)
	extractFromComponents(doc.Get("efficacy"), &raw)

	var candidates []string
	seen := map[string]bool{}
	for _, candidate := range raw {
		normalized := Normalize(candidate)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if IsUsable(normalized) {
			candidates = append(candidates, normalized)
		}
	}
	return candidates
}
