package logx

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4_with_port", "203.0.113.57:51234", "203.0.113.0"},
		{"ipv4_bare", "198.51.100.9", "198.51.100.0"},
		{"loopback", "127.0.0.1:8080", "127.0.0.1"},
		{"ipv6", "[2001:db8:85a3:1:2:3:4:5]:443", "2001:db8:85a3:1::"},
		{"garbage", "not-an-ip", "unknown_ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, anonymizeIP(tt.in))
		})
	}
}

func TestRequestLogger_WritesStatusAndTab(t *testing.T) {
	var buf bytes.Buffer
	UseWriter(&buf)

	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tabs/abc", nil)
	req.Header.Set(TabHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"tab_id":"abc"`)
	assert.Contains(t, out, `"level":"warn"`)
}
