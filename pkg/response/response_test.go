package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gelugu/judah-bot/pkg/response"
)

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		write       func(c *gin.Context)
		wantStatus  int
		wantCode    int
		wantMessage string
		wantData    bool
	}{
		{
			name:        "webhook accepted",
			write:       func(c *gin.Context) { response.OK(c, map[string]string{"status": "accepted"}) },
			wantStatus:  http.StatusOK,
			wantCode:    0,
			wantMessage: response.MessageSuccess,
			wantData:    true,
		},
		{
			name:        "bad update body",
			write:       func(c *gin.Context) { response.Error(c, errors.New("unexpected EOF"), nil) },
			wantStatus:  http.StatusBadRequest,
			wantCode:    1,
			wantMessage: "unexpected EOF",
			wantData:    true,
		},
		{
			name:        "missing secret token",
			write:       response.Unauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    401,
			wantMessage: "Unauthorized",
		},
		{
			name:        "address not allowed",
			write:       response.Forbidden,
			wantStatus:  http.StatusForbidden,
			wantCode:    403,
			wantMessage: "Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp response.Resp
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if resp.ErrorCode != tt.wantCode || resp.Message != tt.wantMessage {
				t.Errorf("got %d %q, want %d %q", resp.ErrorCode, resp.Message, tt.wantCode, tt.wantMessage)
			}
			if (resp.Data != nil) != tt.wantData {
				t.Errorf("unexpected data presence: %s", w.Body.String())
			}
		})
	}
}
