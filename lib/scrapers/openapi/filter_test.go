package openapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterMedicineItems(t *testing.T) {
	result := SearchResult{
		Items: []SearchItem{
			{
				Title:    "<b>타이레놀</b>정500밀리그람",
				Link:     "https://terms.naver.com/entry.naver?docId=2148875&cid=51000&categoryId=51000",
				Category: "의약품사전",
			},
			{
				Title:       "아스피린프로텍트정100밀리그람",
				Description: "이 약의 성분은 아스피린이며 효능은 혈전 생성 억제이다.",
				Link:        "https://terms.naver.com/entry.naver?docId=2134729&cid=51000&categoryId=51000",
				Category:    "",
			},
			{
				Title:       "아스피린",
				Description: "버드나무 껍질에서 유래한 의학의 역사",
				Link:        "https://terms.naver.com/entry.naver?docId=1081234&cid=40942&categoryId=31740",
				Category:    "두산백과",
			},
			{
				Title:       "성분 효능이 언급된 블로그 글",
				Description: "성분과 효능에 대한 이야기",
				Link:        "https://blog.naver.com/someone/12345",
				Category:    "",
			},
		},
	}

	items := FilterMedicineItems(result)
	require.Len(t, items, 2)
	require.Equal(t, "타이레놀정500밀리그람", items[0].Title)
	require.Equal(t, "아스피린프로텍트정100밀리그람", items[1].Title)
}

func TestFilterMedicineItemsEmpty(t *testing.T) {
	items := FilterMedicineItems(SearchResult{})
	require.Empty(t, items)
}
