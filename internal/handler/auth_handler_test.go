package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// stubAuthService is a canned AuthService for handler tests.
type stubAuthService struct {
	knownEmail string
	resetLink  string
	resetToken string // captured by ResetPassword
	resetErr   error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (string, *model.User, error) {
	return "signed-token", &model.User{Name: name, Email: email, Role: model.RoleUser}, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email != s.knownEmail {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	return "signed-token", &model.User{Email: email, Role: model.RoleUser}, nil
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == s.knownEmail {
		return s.resetLink, nil
	}
	return "", nil
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	s.resetToken = token
	return s.resetErr
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"email":"ana@x.com","password":"pw123"}`},
		{"no email", `{"name":"Ana","password":"pw123"}`},
		{"no password", `{"name":"Ana","email":"ana@x.com"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, tt.body)
			err := h.Register(c)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			resp, ok := httpErr.Message.(apperrors.ErrorResponse)
			assert.True(t, ok)
			assert.Equal(t, "MISSING_FIELDS", resp.Code)
		})
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newTestContext(t, `{"name":"Ana","email":"ana@x.com","password":"pw123"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed-token")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{knownEmail: "ana@x.com"}, false)

	c, _ := newTestContext(t, `{"email":"other@x.com","password":"pw123"}`)
	err := h.Login(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	resp := httpErr.Message.(apperrors.ErrorResponse)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Code)
}

func TestAuthHandler_ForgotPassword_IdenticalBodies(t *testing.T) {
	// Enumeration resistance: known and unknown emails must produce
	// byte-identical acknowledgments when the diagnostic field is off.
	svc := &stubAuthService{
		knownEmail: "ana@x.com",
		resetLink:  "http://app.local/reset-password/" + strings.Repeat("a", 64),
	}
	h := NewAuthHandler(svc, false)

	cKnown, recKnown := newTestContext(t, `{"email":"ana@x.com"}`)
	assert.NoError(t, h.ForgotPassword(cKnown))

	cUnknown, recUnknown := newTestContext(t, `{"email":"nobody@x.com"}`)
	assert.NoError(t, h.ForgotPassword(cUnknown))

	assert.Equal(t, http.StatusOK, recKnown.Code)
	assert.Equal(t, recKnown.Body.Bytes(), recUnknown.Body.Bytes())
}

func TestAuthHandler_ForgotPassword_DiagnosticLink(t *testing.T) {
	link := "http://app.local/reset-password/" + strings.Repeat("a", 64)
	svc := &stubAuthService{knownEmail: "ana@x.com", resetLink: link}
	h := NewAuthHandler(svc, true)

	c, rec := newTestContext(t, `{"email":"ana@x.com"}`)
	assert.NoError(t, h.ForgotPassword(c))
	assert.Contains(t, rec.Body.String(), link)

	// Unknown email still carries no link even with diagnostics on.
	c2, rec2 := newTestContext(t, `{"email":"nobody@x.com"}`)
	assert.NoError(t, h.ForgotPassword(c2))
	assert.NotContains(t, rec2.Body.String(), "reset_link")
}

func TestAuthHandler_ResetPassword_TokenSources(t *testing.T) {
	bodyToken := strings.Repeat("b", 64)
	pathToken := strings.Repeat("c", 64)

	tests := []struct {
		name      string
		body      string
		pathToken string
		want      string
	}{
		{
			name:      "token from body",
			body:      `{"token":"` + bodyToken + `","password":"newpw"}`,
			pathToken: "",
			want:      bodyToken,
		},
		{
			name:      "token from path",
			body:      `{"password":"newpw"}`,
			pathToken: pathToken,
			want:      pathToken,
		},
		{
			name:      "body token wins over path token",
			body:      `{"token":"` + bodyToken + `","password":"newpw"}`,
			pathToken: pathToken,
			want:      bodyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{}
			h := NewAuthHandler(svc, false)

			c, rec := newTestContext(t, tt.body)
			if tt.pathToken != "" {
				c.SetParamNames("token")
				c.SetParamValues(tt.pathToken)
			}

			assert.NoError(t, h.ResetPassword(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, svc.resetToken)
		})
	}
}

func TestAuthHandler_ResetPassword_Failures(t *testing.T) {
	t.Run("missing password", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{}, false)
		c, _ := newTestContext(t, `{"token":"`+strings.Repeat("a", 64)+`"}`)

		err := h.ResetPassword(c)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Equal(t, "MISSING_FIELDS", httpErr.Message.(apperrors.ErrorResponse).Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{resetErr: apperrors.ErrInvalidOrExpiredToken}, false)
		c, _ := newTestContext(t, `{"token":"tooshort","password":"newpw"}`)

		err := h.ResetPassword(c)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", httpErr.Message.(apperrors.ErrorResponse).Code)
	})
}
