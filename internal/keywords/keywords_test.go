package keywords

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"타이레놀정 500mg", "타이레놀정"},
		{"타이레놀정(아세트아미노펜)", "타이레놀정"},
		{" 게보린 ", "게보린"},
		{"아스피린!", "아스피린"},
		{"부루펜시럽 20ml", "부루펜시럽"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Normalize(test.input), "input: %q", test.input)
	}
}

func TestIsUsable(t *testing.T) {
	usable := []string{"타이레놀", "아세트아미노펜", "두통약", "감기약"}
	for _, keyword := range usable {
		require.True(t, IsUsable(keyword), "keyword: %q", keyword)
	}

	unusable := []string{
		"가",
		"12345",
		"타이레놀 500mg",
		"한미약품",
		"(주)동아제약",
		"아주 길고 구체적인 네 단어 문구",
	}
	for _, keyword := range unusable {
		require.False(t, IsUsable(keyword), "keyword: %q", keyword)
	}
}

func TestIsSimilar(t *testing.T) {
	require.True(t, IsSimilar("타이레놀", "타이레놀", SimilarityAgainstExisting))
	require.True(t, IsSimilar("타이레놀정 500mg", "타이레놀정", SimilarityAgainstExisting))
	require.False(t, IsSimilar("타이레놀", "아스피린", SimilarityAmongNew))
}

func TestDedup(t *testing.T) {
	kept := Dedup(
		[]string{"게보린", "게보린", "아스피린"},
		[]string{"타이레놀"},
	)
	require.Equal(t, []string{"게보린", "아스피린"}, kept)

	kept = Dedup([]string{"타이레놀"}, []string{"타이레놀"})
	require.Empty(t, kept)
}
