package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-voucher/pkg/errutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Error())
	r.GET("/", handler)
	return r
}

func doGet(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestErrorRendersBaseError(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		_ = c.Error(errutil.BadRequest("subtotal must be > 0", nil))
	})

	w := doGet(r)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.Equal(t, "BAD_REQUEST", env.Error.Code)
	require.Equal(t, "subtotal must be > 0", env.Error.Message)
}

func TestErrorRendersUnknownAsInternal(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := doGet(r)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "INTERNAL", env.Error.Code)
	// internal causes never leak to the client
	require.NotContains(t, w.Body.String(), "boom")
}

func TestErrorSkipsWrittenResponse(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"handled": true})
		_ = c.Error(errutil.Internal("already rendered", nil))
	})

	w := doGet(r)
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Contains(t, w.Body.String(), "handled")
}

func TestErrorNoErrorNoOp(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := doGet(r)
	require.Equal(t, http.StatusOK, w.Code)
}
