package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekstil/ledger/internal/interfaces/http/dto"
)

type validationLine struct {
	DetailID string `json:"detail_id" binding:"required,uuid"`
}

type validationBody struct {
	Code    string           `json:"code" binding:"required,max=5"`
	Kind    string           `json:"kind" binding:"omitempty,oneof=flat percent"`
	Details []validationLine `json:"details" binding:"dive"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req validationBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postValidation(t *testing.T, body string) (int, dto.ErrorInfo) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newValidationRouter().ServeHTTP(w, req)
	if w.Code == http.StatusOK {
		return w.Code, dto.ErrorInfo{}
	}
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return w.Code, *resp.Error
}

func TestHandleValidationError(t *testing.T) {
	t.Run("names fields by json tag", func(t *testing.T) {
		status, info := postValidation(t, `{"code":"TOOLONG","kind":"other"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		assert.NotEmpty(t, info.RequestID)
		fields := map[string]string{}
		for _, d := range info.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at most 5 characters", fields["code"])
		assert.Equal(t, "Must be one of: flat percent", fields["kind"])
	})

	t.Run("reports nested lines", func(t *testing.T) {
		_, info := postValidation(t, `{"code":"A","details":[{"detail_id":"nope"}]}`)

		require.Len(t, info.Details, 1)
		assert.Equal(t, "details[0].detail_id", info.Details[0].Field)
		assert.Equal(t, "Invalid UUID format", info.Details[0].Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		status, info := postValidation(t, `{"code":`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		assert.Equal(t, "Malformed request body", info.Message)
		assert.Empty(t, info.Details)
	})

	t.Run("valid body passes", func(t *testing.T) {
		status, _ := postValidation(t, `{"code":"A","kind":"flat"}`)
		assert.Equal(t, http.StatusOK, status)
	})
}
