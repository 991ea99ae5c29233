package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// force timezone to KST because the naver api quota rolls over at
// midnight in Korea no matter where the collector itself runs
func Now() time.Time {
	return time.Now().In(Location)
}

// Day returns the KST calendar day a given instant falls on in
// YYYY-MM-DD form. this is the key daily api usage is tracked under.
func Day(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}
