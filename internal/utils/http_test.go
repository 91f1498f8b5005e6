package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetRealClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "X-Real-IP wins",
			headers: map[string]string{"X-Real-IP": "10.0.0.1", "X-Forwarded-For": "10.0.0.2"},
			want:    "10.0.0.1",
		},
		{
			name:    "first X-Forwarded-For entry",
			headers: map[string]string{"X-Forwarded-For": "10.0.0.3, 10.0.0.4"},
			want:    "10.0.0.3",
		},
		{
			name:    "X-Forwarded-For entry is trimmed",
			headers: map[string]string{"X-Forwarded-For": " 10.0.0.5 ,10.0.0.6"},
			want:    "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			if got := GetRealClientIP(c); got != tt.want {
				t.Errorf("GetRealClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
