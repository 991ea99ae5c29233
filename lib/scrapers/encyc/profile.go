package encyc

import (
	"regexp"
	"strings"

	"medicollector/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// profileFieldNames maps the korean labels of the profile box to
// canonical field names.
var profileFieldNames = map[string]string{
	"분류":    "classification",
	"구분":    "category",
	"업체명":   "company",
	"보험코드":  "insurance_code",
	"성상":    "appearance",
	"제형":    "shape_type",
	"모양":    "shape",
	"색깔":    "color",
	"크기":    "size",
	"식별표기":  "identification",
	"분할선":   "division_line",
	"허가일":   "approval_date",
	"허가번호":  "approval_number",
	"전문/일반": "medicine_type",
	"제조/수입": "manufacture_type",
	"성분/함량": "components_amount",
	"약가":    "price",
}

var profileTableSelectors = []string{
	"table.tmp_profile_tb",
	"table.profile_table",
	"table.drug_info",
	"table.drug_profile",
}

var profileSectionSelectors = []string{
	".wr_tmp_profile",
	".tmp_profile",
	".profile_wrap",
	".medicine_info",
	".detail_table",
	".detail_info",
}

func profileField(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for korean, field := range profileFieldNames {
		if strings.Contains(label, korean) {
			return field, true
		}
	}
	return "", false
}

func setProfileValue(out *Document, field, value string) {
	value = htmlutil.CleanText(value)
	if value == "" {
		value = NoInformation
	}
	if field == "division_line" {
		out.Division = analyzeDivisionLine(value)
		return
	}
	out.Set(field, value)
}

func extractProfile(doc *goquery.Document, out *Document) {
	found := false
	for _, selector := range profileTableSelectors {
		doc.Find(selector).Find("tr").Each(func(_ int, row *goquery.Selection) {
			label := row.Find("th").First().Text()
			field, ok := profileField(label)
			if !ok {
				return
			}
			setProfileValue(out, field, row.Find("td").First().Text())
			found = true
		})
		if found {
			break
		}
	}

	if !found {
		doc.Find("dl").Each(func(_ int, list *goquery.Selection) {
			terms := list.Find("dt")
			values := list.Find("dd")
			terms.Each(func(i int, term *goquery.Selection) {
				field, ok := profileField(term.Text())
				if !ok || i >= values.Length() {
					return
				}
				setProfileValue(out, field, values.Eq(i).Text())
				found = true
			})
		})
	}

	if !found {
		for _, selector := range profileSectionSelectors {
			doc.Find(selector).Find("th, dt, strong, b").Each(func(_ int, key *goquery.Selection) {
				field, ok := profileField(key.Text())
				if !ok {
					return
				}
				value := key.Next().Text()
				if value == "" {
					value = key.Parent().Next().Text()
				}
				if htmlutil.CleanText(value) == "" {
					return
				}
				setProfileValue(out, field, value)
				found = true
			})
			if found {
				break
			}
		}
	}

	standardizeProfile(out)
}

var standardColors = []string{
	"흰색", "노란색", "황색", "주황색", "빨간색", "적색", "분홍색", "핑크색",
	"보라색", "자주색", "파란색", "청색", "녹색", "초록색", "갈색", "회색",
	"검정색", "투명",
}

var colorAliases = []struct {
	alias string
	color string
}{
	{"흰", "흰색"},
	{"백", "흰색"},
	{"화이트", "흰색"},
	{"노랑", "노란색"},
	{"노란", "노란색"},
	{"황", "노란색"},
	{"옐로우", "노란색"},
	{"빨강", "빨간색"},
	{"빨간", "빨간색"},
	{"적", "빨간색"},
	{"레드", "빨간색"},
	{"파랑", "파란색"},
	{"파란", "파란색"},
	{"청", "파란색"},
	{"블루", "파란색"},
	{"초록", "녹색"},
	{"그린", "녹색"},
	{"주황", "주황색"},
	{"오렌지", "주황색"},
	{"보라", "보라색"},
	{"퍼플", "보라색"},
	{"분홍", "분홍색"},
	{"핑크", "분홍색"},
}

func standardizeColor(value string) string {
	for _, color := range standardColors {
		if strings.Contains(value, color) {
			return value
		}
	}
	for _, alias := range colorAliases {
		if !strings.Contains(value, alias.alias) {
			continue
		}
		// "노랑" should not be rewritten when "노랑색" already reads fine
		if strings.Contains(value, alias.alias+"색") {
			continue
		}
		return strings.ReplaceAll(value, alias.alias, alias.color)
	}
	return value
}

var shapeNoisePattern = regexp.MustCompile(`(모양|형태|제형|정제)`)
var shapeTypePattern = regexp.MustCompile(`(원형|타원형|장방형|삼각형|사각형|오각형|육각형|마름모)`)

var shapeAliases = []struct {
	alias string
	shape string
}{
	{"원", "원형"},
	{"타원", "타원형"},
	{"장방", "장방형"},
	{"삼각", "삼각형"},
	{"사각", "사각형"},
	{"오각", "오각형"},
	{"육각", "육각형"},
	{"팔각", "팔각형"},
}

func standardizeShape(value string) string {
	value = strings.TrimSpace(shapeNoisePattern.ReplaceAllString(value, ""))
	for _, alias := range shapeAliases {
		if !strings.Contains(value, alias.alias) {
			continue
		}
		if strings.Contains(value, alias.alias+"형") {
			continue
		}
		return strings.ReplaceAll(value, alias.alias, alias.shape)
	}
	return value
}

var sizeUnitSpacePattern = regexp.MustCompile(`([0-9.]+)\s+(mm|cm)`)
var sizeDimensionPattern = regexp.MustCompile(`(장축|단축|지름|두께|높이)[:\s]*([0-9]+(?:\.[0-9]+)?(?:mm|㎜|cm|㎝)?)`)

func standardizeSize(value string) string {
	value = strings.NewReplacer("㎜", "mm", "㎝", "cm").Replace(value)
	return sizeUnitSpacePattern.ReplaceAllString(value, "${1}${2}")
}

func standardizeProfile(out *Document) {
	if color := out.Get("color"); color != "" && color != NoInformation {
		out.Set("color", standardizeColor(color))
	}
	if shape := out.Get("shape"); shape != "" && shape != NoInformation {
		shape = standardizeShape(shape)
		out.Set("shape", shape)
		if out.Get("shape_type") == "" {
			if groups := shapeTypePattern.FindStringSubmatch(shape); len(groups) > 1 {
				out.Set("shape_type", groups[1])
			}
		}
	}
	if size := out.Get("size"); size != "" && size != NoInformation {
		size = standardizeSize(size)
		out.Set("size", size)
		var parts []string
		for _, groups := range sizeDimensionPattern.FindAllStringSubmatch(size, -1) {
			parts = append(parts, groups[1]+": "+groups[2])
		}
		if len(parts) > 0 {
			out.Set("size_details", strings.Join(parts, ", "))
		}
	}
}

var supplementaryColorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:색상|색깔)[:\s]*([가-힣]+(?:색|빛)?)`),
	regexp.MustCompile(`(흰색|노란색|황색|주황색|빨간색|적색|분홍색|핑크색|보라색|자주색|파란색|청색|녹색|초록색|갈색|회색|검정색|투명)`),
}

var supplementaryShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:모양|제형)[:\s]*([가-힣]+형)`),
	regexp.MustCompile(`(원형|타원형|장방형|삼각형|사각형|오각형|육각형|팔각형|마름모)`),
}

var supplementarySizePattern = regexp.MustCompile(`(크기|직경|지름|두께|장축|단축)[:\s]*([0-9.]+(?:mm|㎜|cm|㎝)?)`)

var supplementaryIdentificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:식별(?:표시|표기|마크|코드))[:\s]*([A-Za-z0-9]+)`),
	regexp.MustCompile(`(?:식별(?:표시|표기|마크|코드))[:\s]*([^\n.,;]+)`),
	regexp.MustCompile(`\b([A-Z]{1,3}[0-9]{1,4}|[0-9]{1,4}[A-Z]{1,3})\b`),
}

// extractSupplementaryIdentification scans loose page text for
// appearance details the profile box did not carry. entries migrated
// from the old terms layout often only mention these in prose.
func extractSupplementaryIdentification(doc *goquery.Document, out *Document) {
	needsColor := out.Get("color") == "" || out.Get("color") == NoInformation
	needsShape := out.Get("shape") == "" || out.Get("shape") == NoInformation
	needsSize := out.Get("size") == "" || out.Get("size") == NoInformation
	needsIdent := out.Get("identification") == "" || out.Get("identification") == NoInformation
	if !needsColor && !needsShape && !needsSize && !needsIdent {
		return
	}

	var texts []string
	doc.Find("div, p, span, td, dd").EachWithBreak(func(i int, node *goquery.Selection) bool {
		if i >= 100 {
			return false
		}
		texts = append(texts, node.Text())
		return true
	})
	text := strings.Join(texts, " ")

	if needsColor {
		for _, pattern := range supplementaryColorPatterns {
			if groups := pattern.FindStringSubmatch(text); len(groups) > 1 {
				out.Set("color", standardizeColor(strings.TrimSpace(groups[1])))
				break
			}
		}
	}
	if needsShape {
		for _, pattern := range supplementaryShapePatterns {
			if groups := pattern.FindStringSubmatch(text); len(groups) > 1 {
				out.Set("shape", strings.TrimSpace(groups[1]))
				break
			}
		}
	}
	if needsSize {
		var parts []string
		for _, groups := range supplementarySizePattern.FindAllStringSubmatch(text, -1) {
			parts = append(parts, groups[1]+": "+groups[2])
		}
		if len(parts) > 0 {
			out.Set("size", strings.Join(parts, ", "))
		}
	}
	if needsIdent {
		for _, pattern := range supplementaryIdentificationPatterns {
			if groups := pattern.FindStringSubmatch(text); len(groups) > 1 {
				out.Set("identification", strings.TrimSpace(groups[1]))
				break
			}
		}
	}
}
