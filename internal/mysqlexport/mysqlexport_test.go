package mysqlexport

import (
	"testing"
	"time"

	"medicollector/lib/scrapers/encyc"

	"github.com/stretchr/testify/require"
)

func TestDsn(t *testing.T) {
	config := Config{
		User:     "medi",
		Password: "secret",
		Database: "medicine",
	}
	require.Equal(
		t,
		"medi:secret@tcp(localhost:3306)/medicine?charset=utf8mb4&parseTime=True&loc=Local",
		config.Dsn(),
	)
}

func TestTransformRecord(t *testing.T) {
	doc := encyc.NewDocument()
	doc.Set("id", "M2148875")
	doc.Set("korean_name", "타이레놀정500밀리그람")
	doc.Set("english_name", encyc.NoInformation)
	doc.Set("company", "한국얀센")
	doc.Set("category", "[01140]해열.진통.소염제")
	doc.Set("url", "https://terms.naver.com/entry.naver?docId=2148875&cid=51000")
	doc.Set("extracted_time", "2026-08-29T10:30:00Z")

	info := transformRecord(doc)
	require.Equal(t, "M2148875", info.ID)
	require.Equal(t, "타이레놀정500밀리그람", info.NameKr)
	// placeholder values become empty columns
	require.Equal(t, "", info.NameEn)
	require.Equal(t, "[01140]해열.진통.소염제", info.Category)
	require.Equal(t, 2026, info.ExtractedTime.Year())
	require.Equal(t, doc.Get("url"), info.SourceUrl)
}

func TestTransformRecordGeneratesId(t *testing.T) {
	doc := encyc.NewDocument()
	doc.Set("korean_name", "게보린정")
	doc.Set("company", "삼진제약")

	info := transformRecord(doc)
	require.NotEmpty(t, info.ID)
	require.Contains(t, info.ID, "MC")
}

func TestParseDatetime(t *testing.T) {
	parsed := parseDatetime("2026-08-29 10:30:00")
	require.Equal(t, time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC), parsed)

	parsed = parseDatetime("2026-08-29T10:30:00.123456")
	require.Equal(t, 2026, parsed.Year())

	// unparseable values fall back to the current time
	parsed = parseDatetime("언젠가")
	require.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestCategoryCodePattern(t *testing.T) {
	groups := categoryCodePattern.FindStringSubmatch("[01140]해열.진통.소염제")
	require.NotNil(t, groups)
	require.Equal(t, "01140", groups[1])
	require.Equal(t, "해열.진통.소염제", groups[2])

	require.Nil(t, categoryCodePattern.FindStringSubmatch("해열제"))
}
