package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrBranchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("loading: %w", apperrors.ErrEventNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewConflictError("changed concurrently"), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrAdminAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrBranchHasRelations, http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{fmt.Errorf("%w: end before start", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{fmt.Errorf("listing events: %w", context.Canceled), StatusClientClosedRequest, dto.ErrorCodeRequestCanceled},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrorCodeTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

		HandleAPIError(c, tc.err)

		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
			continue
		}
		var resp dto.APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success || resp.Error == nil || resp.Error.Code != tc.code {
			t.Errorf("%v: unexpected body %s", tc.err, w.Body.String())
		}
	}
}

func TestHandleAPIErrorHidesInternalMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

	HandleAPIError(c, fmt.Errorf("pq: password authentication failed"))

	var resp dto.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Message != "Internal server error" {
		t.Fatalf("internal error leaked: %q", resp.Error.Message)
	}
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-with-enough-length",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "VoiceOfChrist.API",
		TokenAudience:  "VoiceOfChrist.Client",
	})
}

func protectedRouter(jwtService *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/secure", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT()
	token, _, err := jwtService.GenerateToken(&models.Admin{ID: 1, Username: "admin", Email: "admin@voiceofchrist.org"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := protectedRouter(jwtService)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, http.StatusOK},
		{"raw", token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
			if tc.status == http.StatusOK && w.Body.String() != "admin" {
				t.Fatalf("claims username = %q", w.Body.String())
			}
		})
	}
}

func TestRejectIDMismatch(t *testing.T) {
	for _, tc := range []struct {
		path, body int64
		rejected   bool
	}{
		{3, 0, false},
		{3, 3, false},
		{3, 4, true},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if got := RejectIDMismatch(c, tc.path, tc.body); got != tc.rejected {
			t.Errorf("RejectIDMismatch(%d, %d) = %v", tc.path, tc.body, got)
		}
		if tc.rejected && w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:4200, https://voiceofchrist.org"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:4200" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unknown origin was allowed")
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	id := w.Header().Get(RequestIDKey)
	if id == "" || id != w.Body.String() {
		t.Fatalf("request id header %q, context %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDKey, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDKey) != "given-id" {
		t.Fatal("incoming request id not propagated")
	}
}
