package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSessionTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", SessionMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": GetSessionID(c)})
	})
	return r
}

func TestSessionMiddleware_IssuesNewID(t *testing.T) {
	r := setupSessionTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	issued := w.Header().Get(SessionHeader)
	assert.NotEmpty(t, issued)
	assert.Contains(t, w.Body.String(), issued)
}

func TestSessionMiddleware_KeepsExistingID(t *testing.T) {
	r := setupSessionTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "sess-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "sess-abc", w.Header().Get(SessionHeader))
	assert.Contains(t, w.Body.String(), "sess-abc")
}
