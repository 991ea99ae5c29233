package collector

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medicollector/lib/scrapers/encyc"

	"github.com/stretchr/testify/require"
)

func sampleDocument() *encyc.Document {
	doc := encyc.NewDocument()
	doc.Set("id", "M2148875")
	doc.Set("korean_name", "타이레놀정500밀리그람")
	doc.Set("english_name", "Tylenol Tab. 500mg")
	doc.Set("company", "한국얀센")
	doc.Set("components", "아세트아미노펜 500mg")
	doc.Set("url", "https://terms.naver.com/entry.naver?docId=2148875&cid=51000")
	doc.Division = &encyc.DivisionInfo{Description: "+", Type: "십자형"}
	return doc
}

func TestStandardize(t *testing.T) {
	doc := sampleDocument()
	Standardize(doc, "타이레놀")

	require.Equal(t, encyc.NoInformation, doc.Get("efficacy"))
	require.Equal(t, encyc.NoInformation, doc.Get("precautions"))
	require.Equal(t, "", doc.Get("image_url"))
	require.Equal(t, "아세트아미노펜 500mg", doc.Get("components"))
	require.Equal(t, "타이레놀", doc.Get("search_keyword"))
	require.NotEmpty(t, doc.Get("extracted_time"))
	require.NotEmpty(t, doc.Get("collection_time"))
}

func TestStandardizeGeneratesId(t *testing.T) {
	doc := encyc.NewDocument()
	doc.Set("korean_name", "게보린정")
	doc.Set("company", "삼진제약")
	Standardize(doc, "")

	id := doc.Get("id")
	require.True(t, strings.HasPrefix(id, "MC"))
}

func TestFilename(t *testing.T) {
	doc := sampleDocument()
	require.Equal(t, "M2148875_타이레놀정500밀리그람.json", Filename(doc))

	doc.Set("korean_name", `약품<이름>:테스트/역슬래시\물음표?`)
	name := Filename(doc)
	require.NotContains(t, name, "<")
	require.NotContains(t, name, "?")
	require.NotContains(t, name, "\\")

	doc.Set("korean_name", strings.Repeat("가", 80))
	name = Filename(doc)
	require.Equal(t, "M2148875_"+strings.Repeat("가", 50)+".json", name)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dataDir := t.TempDir()
	doc := sampleDocument()
	Standardize(doc, "타이레놀")

	file, err := SaveDocument(dataDir, doc)
	require.NoError(t, err)
	require.FileExists(t, file)

	loaded, err := LoadDocument(file)
	require.NoError(t, err)
	require.Equal(t, doc.Fields, loaded.Fields)
	require.Equal(t, doc.Division, loaded.Division)
}

func TestExportCsv(t *testing.T) {
	dataDir := t.TempDir()
	doc := sampleDocument()
	doc.Set("efficacy", strings.Repeat("효", 1200))
	Standardize(doc, "타이레놀")
	_, err := SaveDocument(dataDir, doc)
	require.NoError(t, err)

	outFile := filepath.Join(t.TempDir(), "export.csv")
	rows, err := ExportCsv(context.Background(), dataDir, outFile)
	require.NoError(t, err)
	require.Equal(t, 1, rows)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	require.Equal(t, "id", header[0])
	require.Equal(t, "korean_name", header[1])

	efficacyIndex, divisionIndex := -1, -1
	for i, column := range header {
		switch column {
		case "efficacy":
			efficacyIndex = i
		case "division_line":
			divisionIndex = i
		}
	}
	require.GreaterOrEqual(t, efficacyIndex, 0)
	value := records[1][efficacyIndex]
	require.Len(t, []rune(value), 1000)
	require.True(t, strings.HasSuffix(value, "..."))

	// the division line comes out of the structured division info
	require.GreaterOrEqual(t, divisionIndex, 0)
	require.Equal(t, "+", records[1][divisionIndex])
}

func TestReporterPaging(t *testing.T) {
	reportDir := t.TempDir()
	reporter := NewReporter(reportDir)

	for i := 0; i < reportPageSize+1; i++ {
		doc := sampleDocument()
		require.NoError(t, reporter.Add(doc))
	}
	require.NoError(t, reporter.Finalize())

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first, err := os.ReadFile(filepath.Join(reportDir, "medicine_report_001.html"))
	require.NoError(t, err)
	content := string(first)
	require.Contains(t, content, "타이레놀정500밀리그람")
	require.Contains(t, content, "생성 시간")
	require.Contains(t, content, "완료 시간")
	require.Contains(t, content, "있음")
	require.Contains(t, content, "없음")
}
