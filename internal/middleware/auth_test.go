package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/middleware"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoginChecker := NewMockloginChecker(ctrl)
	authMiddleware := middleware.NewAuthMiddlewareHandler(mockLoginChecker)

	validSession := &auth.Session{
		Token:     "valid-token",
		UserID:    42,
		Username:  "runner",
		SessionID: "sid-1",
	}

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		bearer             string
		expectedStatusCode int
		mockSession        *auth.Session
		mockErr            error
		expectedUserID     int
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "OptionsRequest",
			path:               "/dashboard",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "NotAllowedPathWithoutToken",
			path:               "/dashboard",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/dashboard",
			method:             "GET",
			token:              "valid-token",
			expectedStatusCode: http.StatusOK,
			mockSession:        validSession,
			expectedUserID:     42,
		},
		{
			name:               "ValidBearerToken",
			path:               "/dashboard",
			method:             "GET",
			bearer:             "valid-token",
			expectedStatusCode: http.StatusOK,
			mockSession:        validSession,
			expectedUserID:     42,
		},
		{
			name:               "InvalidToken",
			path:               "/dashboard",
			method:             "GET",
			token:              "invalid-token",
			expectedStatusCode: http.StatusUnauthorized,
			mockErr:            auth.ErrSessionNotFound,
		},
		{
			name:               "CheckerFailure",
			path:               "/dashboard",
			method:             "GET",
			token:              "some-token",
			expectedStatusCode: http.StatusUnauthorized,
			mockErr:            errors.New("redis down"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, tc.path, nil)
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Add(auth.TokenHeader, tc.token)
			}
			if tc.bearer != "" {
				req.Header.Add("Authorization", "Bearer "+tc.bearer)
			}

			if tc.mockSession != nil || tc.mockErr != nil {
				token := tc.token
				if token == "" {
					token = tc.bearer
				}
				mockLoginChecker.EXPECT().
					Session(gomock.Any(), token).
					Return(tc.mockSession, tc.mockErr).Times(1)
			}

			var gotUserID int
			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if s, ok := auth.SessionFromContext(r.Context()); ok {
					gotUserID = s.UserID
				}
			})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectedUserID, gotUserID)
		})
	}
}
