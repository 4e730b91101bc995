package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(remoteAddr, forwardedFor string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		c.Request.Header.Set("X-Forwarded-For", forwardedFor)
	}
	return c
}

func TestClientKey_PrefersFirstForwardedEntry(t *testing.T) {
	c := newContext("10.0.0.1:5000", "203.0.113.7, 10.0.0.2")
	if got := ClientKey(c); got != "203.0.113.7" {
		t.Fatalf("expected forwarded client 203.0.113.7, got %q", got)
	}
}

func TestClientKey_FallsBackToRemoteAddr(t *testing.T) {
	c := newContext("192.0.2.1:1234", "")
	if got := ClientKey(c); got != "192.0.2.1" {
		t.Fatalf("expected remote address 192.0.2.1, got %q", got)
	}
}

func TestClientKey_FallsBackToUnknown(t *testing.T) {
	c := newContext("", "")
	if got := ClientKey(c); got != unknownClientKey {
		t.Fatalf("expected the unknown bucket, got %q", got)
	}
}
