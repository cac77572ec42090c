package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Login(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(credentialsStoreStub{}, time.Hour, rdb)
	testToken := "handler_test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}
	handler := NewHandler(authService)

	mock.CustomMatch(func(expected, actual []interface{}) error {
		// session value carries time.Now().Unix(), cannot match it exactly
		return nil
	}).ExpectSet(sessionKeyPrefix+testToken, "", 0).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword)
	req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testToken, resp.Token)
}

func TestHandler_Login_invalidCredentials(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	defer rdb.Close()

	handler := NewHandler(NewService(credentialsStoreStub{}, time.Hour, rdb))

	for name, body := range map[string]string{
		"wrong password": fmt.Sprintf(`{"email":%q,"password":"nope"}`, testEmail),
		"unknown user":   fmt.Sprintf(`{"email":"ghost@example.com","password":%q}`, testPassword),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.HandleLogin(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHandler_Login_badRequest(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	defer rdb.Close()

	handler := NewHandler(NewService(credentialsStoreStub{}, time.Hour, rdb))

	for name, body := range map[string]string{
		"not json":      "definitely not json",
		"missing email": `{"password":"something"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.HandleLogin(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	handler := NewHandler(NewService(credentialsStoreStub{}, time.Hour, rdb))

	token := "logout_token"
	sessionKey := sessionKeyPrefix + token
	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d:%d", testUserID, time.Now().Unix()))
	mock.ExpectDel(sessionKey).SetVal(1)
	mock.ExpectSRem(tokensSetKey, token).SetVal(1)

	req := httptest.NewRequest(http.MethodPost, "/a/logout", nil)
	req.Header.Set("X-FITTRACK-TOKEN", token)
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged-out", rec.Body.String())

	// no token header
	rec = httptest.NewRecorder()
	handler.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/a/logout", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
