package encyc

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const medicinePageHtml = `<!DOCTYPE html>
<html>
<head><title>타이레놀정500밀리그람 - 의약품사전</title></head>
<body>
<div class="word_head">
	<h2 class="headword">타이레놀정500밀리그람</h2>
	<span class="word_txt">Tylenol Tab. 500mg</span>
</div>
<span class="img_box"><a href="#">
	<img src="https://dbscthumb.phinf.naver.net/item.jpg"
		origin_src="https://dbscthumb.phinf.naver.net/item_org.jpg"
		width="400" height="250" origin_width="800" origin_height="500"
		alt="타이레놀정500밀리그람"/>
</a></span>
<table class="tmp_profile_tb">
	<tr><th>분류</th><td>[01140]해열.진통.소염제</td></tr>
	<tr><th>구분</th><td>일반의약품</td></tr>
	<tr><th>업체명</th><td>한국얀센</td></tr>
	<tr><th>보험코드</th><td>645900020</td></tr>
	<tr><th>성상</th><td>장방형의 필름코팅정</td></tr>
	<tr><th>모양</th><td>장방</td></tr>
	<tr><th>색깔</th><td>흰</td></tr>
	<tr><th>크기</th><td>장축 17.6mm, 단축 7.9mm, 두께 6.2mm</td></tr>
	<tr><th>식별표기</th><td>TYLENOL</td></tr>
	<tr><th>분할선</th><td>+</td></tr>
</table>
<div class="section">
	<h3>성분정보</h3>
	<p>아세트아미노펜 500mg</p>
	<h3>효능효과</h3>
	<p>감기로 인한 발열 및 동통. 두통, 신경통, 근육통.</p>
	<h3>용법용량</h3>
	<p>성인 1회 1~2정씩 1일 3~4회 복용한다.</p>
	<h3>주의사항</h3>
	<p>매일 세잔 이상 정기적으로 술을 마시는 사람은 의사와 상의한다.</p>
</div>
</body>
</html>`

func parseFixture(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestIsMedicinePage(t *testing.T) {
	doc := parseFixture(t, medicinePageHtml)
	require.True(t, IsMedicinePage(doc))
}

func TestIsMedicinePageRejectsOther(t *testing.T) {
	doc := parseFixture(t, `<!DOCTYPE html>
<html>
<head><title>한국얀센 - 기업백과</title></head>
<body><p>1983년 설립된 회사로 서울에 본사가 있다.</p></body>
</html>`)
	require.False(t, IsMedicinePage(doc))
}

func TestParse(t *testing.T) {
	doc := parseFixture(t, medicinePageHtml)
	url := "https://terms.naver.com/entry.naver?docId=2148875&cid=51000&categoryId=51000"
	out := Parse(doc, url)

	require.Equal(t, "M2148875", out.Get("id"))
	require.Equal(t, "타이레놀정500밀리그람", out.Get("korean_name"))
	require.Equal(t, "Tylenol Tab. 500mg", out.Get("english_name"))
	require.Equal(t, "[01140]해열.진통.소염제", out.Get("classification"))
	require.Equal(t, "일반의약품", out.Get("category"))
	require.Equal(t, "한국얀센", out.Get("company"))
	require.Equal(t, "645900020", out.Get("insurance_code"))

	require.Equal(t, "흰색", out.Get("color"))
	require.Equal(t, "장방형", out.Get("shape"))
	require.Equal(t, "장방형", out.Get("shape_type"))
	require.Contains(t, out.Get("size"), "17.6mm")
	require.Equal(t, "TYLENOL", out.Get("identification"))

	require.NotNil(t, out.Division)
	require.Equal(t, "십자형", out.Division.Type)
	require.Equal(t, "+", out.Division.Description)

	require.Contains(t, out.Get("components"), "아세트아미노펜")
	require.Contains(t, out.Get("efficacy"), "발열")
	require.Contains(t, out.Get("dosage"), "성인")
	require.Contains(t, out.Get("precautions"), "의사와 상의")

	require.Equal(t, "https://dbscthumb.phinf.naver.net/item_org.jpg", out.Get("image_url"))
	require.Equal(t, "high", out.Get("image_quality"))
	require.Equal(t, "800", out.Get("original_width"))

	require.Equal(t, url, out.Get("url"))
	require.NotEmpty(t, out.Get("extracted_time"))
}

func TestParseFallbackTitle(t *testing.T) {
	doc := parseFixture(t, `<!DOCTYPE html>
<html>
<head><title>게보린정 - 네이버 지식백과</title></head>
<body><p>두통에 쓰는 해열진통제.</p></body>
</html>`)
	out := Parse(doc, "https://terms.naver.com/entry.naver?docId=100&cid=51000")

	require.Equal(t, "게보린정", out.Get("korean_name"))
	require.Equal(t, "M100", out.Get("id"))
}
