package encyc

import (
	"regexp"
	"strings"

	"medicollector/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// analyzeDivisionLine classifies the score line marks on a tablet.
// the profile box draws them as sequences of "+" and "-" characters,
// older entries spell the type out in words instead.
func analyzeDivisionLine(value string) *DivisionInfo {
	normalized := strings.NewReplacer("─", "-", "—", "-", "−", "-").Replace(value)
	plusCount := strings.Count(normalized, "+")
	minusCount := strings.Count(normalized, "-")

	var divisionType string
	switch {
	case plusCount > 0 && minusCount > 0:
		divisionType = "십자형+일자형"
	case plusCount > 1:
		divisionType = "다중십자형"
	case plusCount == 1:
		divisionType = "십자형"
	case minusCount > 1:
		divisionType = "다중일자형"
	case minusCount == 1:
		divisionType = "일자형"
	case strings.Contains(value, "십자"):
		divisionType = "십자형"
	case strings.Contains(value, "일자") || strings.Contains(value, "한줄"):
		divisionType = "일자형"
	case strings.Contains(value, "없"):
		divisionType = "없음"
	default:
		divisionType = "기타"
	}

	return &DivisionInfo{
		Description: value,
		Type:        divisionType,
	}
}

var divisionLabelPattern = regexp.MustCompile(`분할선|나누는.*선|절단선`)

var divisionTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`분할선[^.\n]*?([+\-][\s,]*[+\-])`),
	regexp.MustCompile(`분할선[^.\n]*?([+\-])`),
	regexp.MustCompile(`절단선[^.\n]*?([+\-])`),
}

var divisionRowKeywords = []string{"분할선", "절단선", "나누는 선"}

// extractDivisionInfo is the fallback when the profile box carried no
// division line field. it hunts through table rows, labeled spans and
// finally free text.
func extractDivisionInfo(doc *goquery.Document) *DivisionInfo {
	var info *DivisionInfo

	doc.Find("th").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		if !strings.Contains(header.Text(), "분할선") {
			return true
		}
		value := htmlutil.CleanText(header.Parent().Find("td").First().Text())
		if value == "" {
			return true
		}
		info = analyzeDivisionLine(value)
		return false
	})
	if info != nil {
		return info
	}

	doc.Find("span, div").EachWithBreak(func(_ int, node *goquery.Selection) bool {
		text := node.Text()
		if !divisionLabelPattern.MatchString(text) || len(text) > 200 {
			return true
		}
		info = analyzeDivisionLine(htmlutil.CleanText(text))
		return false
	})
	if info != nil {
		return info
	}

	doc.Find("th, dt").EachWithBreak(func(_ int, key *goquery.Selection) bool {
		matched := false
		for _, keyword := range divisionRowKeywords {
			if strings.Contains(key.Text(), keyword) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		value := htmlutil.CleanText(key.Next().Text())
		if value == "" {
			return true
		}
		info = analyzeDivisionLine(value)
		return false
	})
	if info != nil {
		return info
	}

	text := doc.Text()
	for _, pattern := range divisionTextPatterns {
		if groups := pattern.FindStringSubmatch(text); len(groups) > 1 {
			return analyzeDivisionLine(strings.TrimSpace(groups[1]))
		}
	}
	return nil
}
