package encyc

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsBlocked(t *testing.T) {
	entryBody := "<html><body><h2>타이레놀정</h2><table class=\"tmp_profile_tb\"></table></body></html>"

	cases := []struct {
		name    string
		host    string
		headers http.Header
		body    string
		blocked bool
	}{
		{
			name:    "normal entry page",
			host:    "terms.naver.com",
			headers: http.Header{},
			body:    entryBody,
			blocked: false,
		},
		{
			name:    "mobile entry page",
			host:    "m.terms.naver.com",
			headers: http.Header{},
			body:    entryBody,
			blocked: false,
		},
		{
			name:    "captcha challenge body",
			host:    "terms.naver.com",
			headers: http.Header{},
			body:    "<html><body>Captcha 입력</body></html>",
			blocked: true,
		},
		{
			name:    "automation warning body",
			host:    "terms.naver.com",
			headers: http.Header{},
			body:    "비정상적인 접근이 감지되어 일시적으로 차단되었습니다",
			blocked: true,
		},
		{
			name:    "redirected off domain with security headers",
			host:    "nid.naver.com",
			headers: http.Header{"X-Frame-Options": []string{"DENY"}},
			body:    "<html><body>본인 확인</body></html>",
			blocked: true,
		},
		{
			name:    "off domain without security headers",
			host:    "nid.naver.com",
			headers: http.Header{},
			body:    "<html><body>본인 확인</body></html>",
			blocked: false,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.blocked, isBlocked(test.host, test.headers, test.body))
		})
	}
}
