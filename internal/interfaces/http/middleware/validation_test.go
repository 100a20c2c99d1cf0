package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type phonePayload struct {
	ContactPhone string `json:"contact_phone" binding:"required,saphone"`
}

func validationEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	r := gin.New()
	r.POST("/phones", func(c *gin.Context) {
		var body phonePayload
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestSaphoneValidation(t *testing.T) {
	r := validationEngine()

	tests := []struct {
		name  string
		phone string
		want  int
	}{
		{"valid saudi mobile", "0512345678", http.StatusOK},
		{"too short", "05123", http.StatusBadRequest},
		{"wrong prefix", "0612345678", http.StatusBadRequest},
		{"international format rejected", "+966512345678", http.StatusBadRequest},
		{"letters rejected", "05abc45678", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/phones",
				strings.NewReader(`{"contact_phone":"`+tt.phone+`"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	r := validationEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/phones", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Field names come from the json tag, not the Go field name.
	assert.Contains(t, w.Body.String(), "contact_phone")
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}
