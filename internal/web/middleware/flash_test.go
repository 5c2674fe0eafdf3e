package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectfour-go/internal/web/templates/layout"
)

func TestFlashRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, FlashSuccess, "Zoë; the \"champion\", won!")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	var seen *layout.FlashMessage
	handler := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetFlash(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	next := httptest.NewRecorder()
	handler.ServeHTTP(next, req)

	require.NotNil(t, seen)
	assert.Equal(t, FlashSuccess, seen.Type)
	assert.Equal(t, "Zoë; the \"champion\", won!", seen.Message)

	// Reading the flash clears it
	cleared := next.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, flashCookieName, cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestFlashWithoutCookie(t *testing.T) {
	var seen *layout.FlashMessage
	called := false
	handler := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = GetFlash(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Nil(t, seen)
}

func TestParseFlashRejectsGarbage(t *testing.T) {
	assert.Nil(t, parseFlash("no-separator"))
	assert.Nil(t, parseFlash("error:!!!"))
	assert.Nil(t, parseFlash("error:"))
}
