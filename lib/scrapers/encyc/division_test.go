package encyc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeDivisionLine(t *testing.T) {
	testCases := []struct {
		value    string
		expected string
	}{
		{"+", "십자형"},
		{"+, +", "다중십자형"},
		{"-", "일자형"},
		{"-, -", "다중일자형"},
		{"+, -", "십자형+일자형"},
		{"십자 분할선", "십자형"},
		{"한줄", "일자형"},
		{"없음", "없음"},
		{"기재 안됨", "기타"},
	}

	for _, test := range testCases {
		info := analyzeDivisionLine(test.value)
		require.NotNil(t, info)
		require.Equal(t, test.expected, info.Type, "value: %q", test.value)
		require.Equal(t, test.value, info.Description)
	}
}

func TestExtractDivisionInfoFromRow(t *testing.T) {
	doc := parseFixture(t, `<html><body>
<table><tr><th>분할선</th><td>-</td></tr></table>
</body></html>`)

	info := extractDivisionInfo(doc)
	require.NotNil(t, info)
	require.Equal(t, "일자형", info.Type)
}

func TestExtractDivisionInfoFromText(t *testing.T) {
	doc := parseFixture(t, `<html><body>
<p>정제 윗면에 분할선 + 이 새겨져 있다.</p>
</body></html>`)

	info := extractDivisionInfo(doc)
	require.NotNil(t, info)
	require.Equal(t, "십자형", info.Type)
}

func TestExtractDivisionInfoMissing(t *testing.T) {
	doc := parseFixture(t, `<html><body><p>내용 없음</p></body></html>`)
	require.Nil(t, extractDivisionInfo(doc))
}
