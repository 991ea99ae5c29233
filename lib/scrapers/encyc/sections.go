package encyc

import (
	"regexp"
	"strings"

	"medicollector/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// sectionFieldNames maps korean section headings to canonical field
// names. longer labels come first within each group so "사용상의
// 주의사항" does not get claimed by a shorter prefix.
var sectionFieldNames = []struct {
	label string
	field string
}{
	{"성분정보", "components"},
	{"주성분", "components"},
	{"성분", "components"},
	{"효능효과", "efficacy"},
	{"효능", "efficacy"},
	{"효과", "efficacy"},
	{"사용상의주의사항", "precautions"},
	{"사용상주의사항", "precautions"},
	{"주의사항", "precautions"},
	{"용법용량", "dosage"},
	{"용법", "dosage"},
	{"용량", "dosage"},
	{"투여법", "dosage"},
	{"저장방법", "storage_conditions"},
	{"보관방법", "storage"},
	{"보관조건", "storage"},
	{"사용기간", "expiration"},
	{"유효기간", "expiration"},
	{"유통기한", "expiration"},
	{"약리작용", "pharmacology"},
	{"이상반응", "side_effects"},
	{"부작용", "side_effects"},
	{"약물상호작용", "interactions"},
	{"상호작용", "interactions"},
	{"과량투여", "overdose"},
	{"과다복용", "overdose"},
	{"임부투여", "pregnancy"},
	{"임신 중 투여", "pregnancy"},
	{"어린이투여", "pediatric_use"},
	{"소아투여", "pediatric_use"},
	{"노인투여", "geriatric_use"},
	{"고령자투여", "geriatric_use"},
	{"금기사항", "contraindications"},
	{"포장단위", "packaging"},
	{"제조원", "manufacturer"},
}

var sectionContainerSelectors = []string{
	".section",
	".content",
	".drug_section",
	".cont_block",
	".detail_info",
	".detail_content",
	".drug_detail",
	".medicine_info",
	".drug_info",
}

func sectionField(heading string) (string, bool) {
	heading = strings.ReplaceAll(strings.TrimSpace(heading), " ", "")
	for _, entry := range sectionFieldNames {
		if strings.Contains(heading, strings.ReplaceAll(entry.label, " ", "")) {
			return entry.field, true
		}
	}
	return "", false
}

func setSection(out *Document, extracted map[string]bool, field, content string) {
	if extracted[field] {
		return
	}
	content = cleanSectionContent(content)
	if content == "" {
		return
	}
	switch field {
	case "components":
		content = processComponents(content)
	case "efficacy":
		content = processEfficacy(content)
	case "dosage":
		content = processDosage(content)
	case "precautions":
		content = processPrecautions(content)
	}
	out.Set(field, content)
	extracted[field] = true
}

func isHeadingNode(node *goquery.Selection) bool {
	switch goquery.NodeName(node) {
	case "h2", "h3", "h4", "h5":
		return true
	}
	return false
}

// extractSections walks the narrative part of an entry page. sections
// are announced by headings, the body is everything up to the next
// heading. each canonical field is only filled once, the first source
// that mentions it wins.
func extractSections(doc *goquery.Document, out *Document) {
	extracted := map[string]bool{}

	doc.Find("h2, h3, h4, h5").Each(func(_ int, heading *goquery.Selection) {
		field, ok := sectionField(heading.Text())
		if !ok {
			return
		}
		var parts []string
		for node := heading.Next(); node.Length() > 0; node = node.Next() {
			if isHeadingNode(node) {
				break
			}
			switch goquery.NodeName(node) {
			case "p", "div", "ul", "ol", "table":
				text := strings.TrimSpace(node.Text())
				if text != "" {
					parts = append(parts, text)
				}
			}
		}
		setSection(out, extracted, field, strings.Join(parts, "\n"))
	})

	for _, selector := range sectionContainerSelectors {
		doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
			title := container.Find("h3, h4, strong, dt, th").First().Text()
			field, ok := sectionField(title)
			if !ok || extracted[field] {
				return
			}
			content := strings.TrimSpace(
				strings.Replace(container.Text(), title, "", 1),
			)
			setSection(out, extracted, field, content)
		})
	}

	doc.Find("dt").Each(func(_ int, term *goquery.Selection) {
		field, ok := sectionField(term.Text())
		if !ok || extracted[field] {
			return
		}
		setSection(out, extracted, field, term.Next().Text())
	})
}

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)
var whitespaceRunPattern = regexp.MustCompile(`[ \t]+`)
var sentenceBreakPattern = regexp.MustCompile(`([.!?])\s+([가-힣A-Z0-9])`)

func cleanSectionContent(content string) string {
	content = htmlutil.RemoveNonPrintableKeepNewlines(content)
	content = blankLinePattern.ReplaceAllString(content, "\n")
	content = whitespaceRunPattern.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)
	return sentenceBreakPattern.ReplaceAllString(content, "$1\n$2")
}

var componentSplitPattern = regexp.MustCompile(`[,;·]\s*`)

func processComponents(content string) string {
	if len(content) < 500 && strings.Contains(content, "\n") {
		return content
	}
	parts := componentSplitPattern.Split(content, -1)
	if len(parts) < 2 {
		return content
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "\n")
}

func processEfficacy(content string) string {
	if strings.Contains(content, "\n") || len(content) <= 100 {
		return content
	}
	return sentenceBreakPattern.ReplaceAllString(content, "$1\n$2")
}

var dosageGroupPattern = regexp.MustCompile(`(성인|소아|고령자|어린이|만\s*\d+세)`)
var dosageListItemPattern = regexp.MustCompile(`\s(\d+[.)])\s`)

func processDosage(content string) string {
	if strings.Count(content, "\n") > 2 {
		return content
	}
	content = dosageGroupPattern.ReplaceAllString(content, "\n\n$1")
	content = dosageListItemPattern.ReplaceAllString(content, "\n$1 ")
	return strings.TrimSpace(content)
}

var precautionBreakPattern = regexp.MustCompile(`(경고|금기|위험|심각한|다음과 같은 사람|다음 환자)`)

func processPrecautions(content string) string {
	if strings.Count(content, "\n") > 3 {
		return content
	}
	content = precautionBreakPattern.ReplaceAllString(content, "\n$1")
	return strings.TrimSpace(content)
}
