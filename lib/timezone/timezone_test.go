package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	cases := []struct {
		instant time.Time
		expect  string
	}{
		// 15:00 UTC is midnight in Seoul
		{time.Date(2024, time.August, 26, 12, 0, 0, 0, time.UTC), "2024-08-26"},
		{time.Date(2024, time.August, 26, 14, 59, 59, 0, time.UTC), "2024-08-26"},
		{time.Date(2024, time.August, 26, 15, 0, 0, 0, time.UTC), "2024-08-27"},
		{time.Date(2024, time.August, 26, 23, 30, 0, 0, time.UTC), "2024-08-27"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Day(test.instant))
	}
}

func TestNowIsSeoul(t *testing.T) {
	name, offset := Now().Zone()
	require.Equal(t, "KST", name)
	require.Equal(t, 9*60*60, offset)
}
