package collector

import (
	"testing"

	"medicollector/lib/scrapers/encyc"

	"github.com/stretchr/testify/require"
)

func TestNeedsImageReextraction(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		quality string
		needs   bool
	}{
		{"no image at all", "", "", true},
		{"placeholder value", encyc.NoInformation, "", true},
		{"low quality image", "https://dbscthumb.phinf.naver.net/a.jpg", "low", true},
		{"medium quality image", "https://dbscthumb.phinf.naver.net/a.jpg", "medium", true},
		{"high quality image", "https://dbscthumb.phinf.naver.net/a.jpg", "high", false},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			doc := encyc.NewDocument()
			doc.Set("image_url", test.url)
			doc.Set("image_quality", test.quality)
			require.Equal(t, test.needs, NeedsImageReextraction(doc))
		})
	}
}

func TestEntryUrlFor(t *testing.T) {
	doc := encyc.NewDocument()
	doc.Set("url", "https://terms.naver.com/entry.naver?docId=2148875&cid=51000")
	require.Equal(t, "https://terms.naver.com/entry.naver?docId=2148875&cid=51000", entryUrlFor(doc))

	doc = encyc.NewDocument()
	doc.Set("id", "M2148875")
	require.Contains(t, entryUrlFor(doc), "docId=2148875")

	// generated ids carry no docId, so there is no page to refetch
	doc = encyc.NewDocument()
	doc.Set("id", "MC0001234")
	require.Equal(t, "", entryUrlFor(doc))
}

func TestApplyImageData(t *testing.T) {
	doc := encyc.NewDocument()
	doc.Set("korean_name", "타이레놀정")
	doc.Set("image_url", "https://old.example/a.jpg")
	doc.Set("image_quality", "low")
	doc.Set("image_alt", "old")

	fresh := encyc.NewDocument()
	fresh.Set("image_url", "https://dbscthumb.phinf.naver.net/b.jpg")
	fresh.Set("image_quality", "high")

	applyImageData(doc, fresh, true)
	require.Equal(t, "https://dbscthumb.phinf.naver.net/b.jpg", doc.Get("image_url"))
	require.Equal(t, "high", doc.Get("image_quality"))
	_, ok := doc.Fields["image_alt"]
	require.False(t, ok)
	require.Equal(t, "타이레놀정", doc.Get("korean_name"))

	applyImageData(doc, encyc.NewDocument(), false)
	_, ok = doc.Fields["image_url"]
	require.False(t, ok)
}
