package openapi

import (
	"strings"

	"medicollector/lib/htmlutil"
)

var descriptionHints = []string{"성분", "효능", "효과", "부작용", "용법", "용량"}

// FilterMedicineItems narrows a search result down to medicine
// dictionary entries. the api returns matches from every encyclopedia
// vertical, so items either declare the 의약품사전 category outright or
// must both read like a drug description and link into the medicine
// dictionary (cid=51000) on terms.naver.com.
func FilterMedicineItems(result SearchResult) []SearchItem {
	var items []SearchItem
	for _, item := range result.Items {
		// titles and descriptions arrive with <b> highlight markup
		item.Title = htmlutil.StripTags(item.Title)
		item.Description = htmlutil.StripTags(item.Description)

		if strings.Contains(item.Category, "의약품사전") {
			items = append(items, item)
			continue
		}

		hinted := false
		for _, hint := range descriptionHints {
			if strings.Contains(item.Description, hint) {
				hinted = true
				break
			}
		}
		if hinted &&
			strings.Contains(item.Link, "terms.naver.com") &&
			strings.Contains(item.Link, "cid=51000") {
			items = append(items, item)
		}
	}
	return items
}
