package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/auth"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *store.UserStore) {
	t.Helper()
	users := store.NewUserStore(kvstore.NewMemory())
	if _, err := users.Create(context.Background(), "waiter1", "secret", enum.RoleWaiter); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewAuthHandler(users, testSecret), users
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := postJSON(t, h.Login, loginRequest{Username: "waiter1", Password: "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens in response")
	}
	if resp.User.Username != "waiter1" || resp.User.Role != enum.RoleWaiter {
		t.Errorf("user = %+v", resp.User)
	}

	claims, err := auth.ValidateToken(testSecret, resp.Token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.Role != enum.RoleWaiter {
		t.Errorf("claims role = %s", claims.Role)
	}
}

func TestLoginRejections(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := postJSON(t, h.Login, loginRequest{Username: "waiter1", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", rec.Code)
	}
	rec = postJSON(t, h.Login, loginRequest{Username: "ghost", Password: "secret"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: status = %d, want 401", rec.Code)
	}
	rec = postJSON(t, h.Login, loginRequest{Username: "", Password: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty credentials: status = %d, want 400", rec.Code)
	}
}

func TestRefresh(t *testing.T) {
	h, users := newAuthHandler(t)

	user, err := users.Authenticate(context.Background(), "waiter1", "secret")
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := auth.GenerateRefreshToken(testSecret, user.ID)
	if err != nil {
		t.Fatal(err)
	}

	rec := postJSON(t, h.Refresh, refreshRequest{RefreshToken: refresh})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["token"] == "" {
		t.Error("expected a fresh access token")
	}

	rec = postJSON(t, h.Refresh, refreshRequest{RefreshToken: "garbage"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}
