package rebinder

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestAdminListenerVars(t *testing.T) {
	s := testService(t, ServerConfigOptions{}, nil)
	s.Resolve(question("c0a80101.c0a80101.rebnd.icu.", dns.TypeA), ClientInfo{})

	l := NewAdminListener("test-admin", "127.0.0.1:0")
	rec := httptest.NewRecorder()
	l.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rebinder/vars", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "rebinder.service.TestAdminListenerVars.abuse")
}
