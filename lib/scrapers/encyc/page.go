package encyc

import (
	"regexp"
	"strings"
	"time"

	"medicollector/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var sectionHeadingKeywords = []string{
	"성분", "효능", "효과", "부작용", "용법", "용량", "성상", "보관", "주의사항",
}

var profileTableKeywords = []string{
	"분류", "업체명", "성상", "보험코드", "구분", "약효분류", "전문/일반",
}

var medicineBodyKeywords = []string{
	"의약품", "성분", "효능", "효과", "부작용", "용법", "용량", "주의사항",
	"약물", "제약", "보관", "복용", "투여", "정제", "캡슐",
}

var profileContainerClass = regexp.MustCompile(`profile|info|drug_info`)

// IsMedicinePage decides whether an encyclopedia entry describes a
// medicine. the search api returns anything with the right category
// label, so pages about companies, ingredients and general health
// topics have to be filtered out here.
func IsMedicinePage(doc *goquery.Document) bool {
	// the medicine dictionary titles its pages "...의약품사전"
	titleText := doc.Find("title").Text()
	doc.Find("h1, h2, h3").Each(func(_ int, heading *goquery.Selection) {
		titleText += " " + heading.Text()
	})
	if strings.Contains(titleText, "의약품") &&
		(strings.Contains(titleText, "사전") || strings.Contains(titleText, "정보")) {
		return true
	}

	headingCount := 0
	doc.Find("h3, h4, h5, strong, dt").Each(func(_ int, heading *goquery.Selection) {
		text := heading.Text()
		for _, keyword := range sectionHeadingKeywords {
			if strings.Contains(text, keyword) {
				headingCount++
				return
			}
		}
	})
	if headingCount >= 2 {
		return true
	}

	profileMatch := false
	doc.Find("dl, table").EachWithBreak(func(_ int, container *goquery.Selection) bool {
		class, _ := container.Attr("class")
		if !profileContainerClass.MatchString(class) {
			return true
		}
		text := container.Text()
		count := 0
		for _, keyword := range profileTableKeywords {
			if strings.Contains(text, keyword) {
				count++
			}
		}
		if count >= 2 {
			profileMatch = true
			return false
		}
		return true
	})
	if profileMatch {
		return true
	}

	bodyText := doc.Text()
	bodyCount := 0
	for _, keyword := range medicineBodyKeywords {
		if strings.Contains(bodyText, keyword) {
			bodyCount++
		}
	}
	return bodyCount >= 5
}

var koreanNameSelectors = []string{
	"h2.headword",
	"h3.headword",
	"div.word_head h2",
	"div.title_area h2",
	".article_head h2",
}

var englishNameSelectors = []string{
	"span.word_txt",
	"p.eng_title",
	"div.section_subtitle",
	".eng_title",
}

var titleSuffixPattern = regexp.MustCompile(`[\s-]+네이버.*$`)

func extractBasicInfo(doc *goquery.Document, out *Document) {
	for _, selector := range koreanNameSelectors {
		text := htmlutil.CleanText(doc.Find(selector).First().Text())
		if text != "" {
			out.Set("korean_name", text)
			break
		}
	}
	if out.Get("korean_name") == "" {
		// fall back to the page title, minus the site name suffix
		title := htmlutil.CleanText(doc.Find("title").Text())
		title = titleSuffixPattern.ReplaceAllString(title, "")
		if title != "" {
			out.Set("korean_name", title)
		}
	}

	for _, selector := range englishNameSelectors {
		text := htmlutil.CleanText(doc.Find(selector).First().Text())
		if text != "" {
			out.Set("english_name", text)
			break
		}
	}
}

// Parse extracts every field the entry page carries into a Document.
// missing narrative fields are left absent; defaulting them is the
// caller's concern.
func Parse(doc *goquery.Document, sourceUrl string) *Document {
	out := NewDocument()

	extractBasicInfo(doc, out)
	extractProfile(doc, out)
	extractSections(doc, out)
	ExtractImage(doc, out)
	extractSupplementaryIdentification(doc, out)

	if out.Division == nil {
		out.Division = extractDivisionInfo(doc)
	}

	out.Set("url", sourceUrl)
	out.Set("source_url", sourceUrl)
	now := time.Now().Format(time.RFC3339)
	out.Set("extracted_time", now)
	out.Set("collection_time", now)
	out.Set("id", DocumentId(sourceUrl, out.Get("korean_name"), out.Get("company")))

	out.NormalizeFieldNames()
	return out
}
