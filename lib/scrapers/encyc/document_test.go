package encyc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDocumentId(t *testing.T) {
	id := DocumentId("https://terms.naver.com/entry.naver?docId=2148875&cid=51000", "", "")
	require.Equal(t, "M2148875", id)

	id = DocumentId("", "타이레놀정", "한국얀센")
	require.True(t, strings.HasPrefix(id, "MC"))
	require.Len(t, id, 9)
	// stable across calls
	require.Equal(t, id, DocumentId("", "타이레놀정", "한국얀센"))
}

func TestDocumentMarshalOrder(t *testing.T) {
	doc := NewDocument()
	doc.Set("korean_name", "타이레놀정")
	doc.Set("id", "M1")
	doc.Set("zz_custom", "extra")
	doc.Division = &DivisionInfo{Description: "+", Type: "십자형"}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	encoded := string(data)
	idPos := strings.Index(encoded, `"id"`)
	namePos := strings.Index(encoded, `"korean_name"`)
	customPos := strings.Index(encoded, `"zz_custom"`)
	divisionPos := strings.Index(encoded, `"division_info"`)
	require.True(t, idPos < namePos)
	require.True(t, namePos < customPos)
	require.True(t, customPos < divisionPos)
}

func TestDocumentRoundtrip(t *testing.T) {
	doc := NewDocument()
	doc.Set("id", "M42")
	doc.Set("korean_name", "게보린정")
	doc.Division = &DivisionInfo{Description: "-", Type: "일자형"}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	diff := cmp.Diff(doc.Fields, decoded.Fields)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, doc.Division, decoded.Division)
}

func TestNormalizeFieldNames(t *testing.T) {
	doc := NewDocument()
	doc.Set("medicine_name", "타이레놀정")
	doc.Set("effect", "해열")
	doc.Set("efficacy", "")
	doc.Set("company_name", "한국얀센")
	doc.Set("company", "이미 있는 값")

	doc.NormalizeFieldNames()

	require.Equal(t, "타이레놀정", doc.Get("korean_name"))
	require.Equal(t, "해열", doc.Get("efficacy"))
	require.Equal(t, "이미 있는 값", doc.Get("company"))
	_, ok := doc.Fields["medicine_name"]
	require.False(t, ok)
	_, ok = doc.Fields["effect"]
	require.False(t, ok)
}
