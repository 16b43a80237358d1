package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the backend root (two directories up from internal/auth/).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	// Set up auth tables (idempotent).
	auth.Init()

	// Mount auth routes on a Chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Mount("/auth", auth.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestAdmin inserts a unique bootstrap admin into the registry and
// registers a cleanup function to remove it. Returns the email and
// plaintext password.
func createTestAdmin(t *testing.T) (email, password string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email = fmt.Sprintf("it-admin-%s@neu.edu.ph", uuid.New().String()[:8])
	password = "TestPass123!"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	role := auth.AdminRole{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := db.DB.Create(&role).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", role.UserID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", role.UserID).Delete(&auth.AdminRole{})
	})

	return email, password
}

// newClientWithJar returns an http.Client with a fresh cookie jar that automatically
// carries cookies between requests.
func newClientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return &http.Client{Jar: jar}
}

// loginAdmin posts to /auth/admin/login and returns the response. The client's
// cookie jar is populated with the session_id cookie on success.
func loginAdmin(t *testing.T, client *http.Client, email, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := client.Post(testServer.URL+"/auth/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/admin/login: %v", err)
	}
	return resp
}

// readBody reads and returns the response body as a string, draining and closing it.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// TestAdminLoginReturnsSessionCookie verifies that POST /auth/admin/login with
// valid credentials returns 200, a Set-Cookie header containing session_id,
// and a JSON body routing the admin to /admin.
func TestAdminLoginReturnsSessionCookie(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestAdmin(t)
	client := newClientWithJar(t)

	resp := loginAdmin(t, client, email, password)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, "session_id") {
		t.Errorf("expected Set-Cookie to contain 'session_id', got: %q", setCookie)
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if result["user_id"] == "" {
		t.Error("expected user_id in response body")
	}
	if result["role"] != "admin" {
		t.Errorf("expected role admin, got %q", result["role"])
	}
	if result["home"] != "/admin" {
		t.Errorf("expected home /admin, got %q", result["home"])
	}
}

// TestAdminLoginWrongPassword verifies that a wrong password is rejected with
// 401 and no session cookie.
func TestAdminLoginWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, _ := createTestAdmin(t)
	client := newClientWithJar(t)

	resp := loginAdmin(t, client, email, "not-the-password")
	readBody(t, resp)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if setCookie := resp.Header.Get("Set-Cookie"); strings.Contains(setCookie, "session_id=") {
		t.Errorf("expected no session cookie on failed login, got %q", setCookie)
	}
}

// TestSessionPersistsAcrossRequests verifies that after login, GET /auth/me
// returns 200 with the admin identity when the same cookie-jar client is used.
func TestSessionPersistsAcrossRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestAdmin(t)
	client := newClientWithJar(t)

	loginResp := loginAdmin(t, client, email, password)
	loginBody := readBody(t, loginResp)
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginResp.StatusCode, loginBody)
	}

	meResp, err := client.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	meBody := readBody(t, meResp)

	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d; body: %s", meResp.StatusCode, meBody)
	}

	var me map[string]interface{}
	if err := json.Unmarshal([]byte(meBody), &me); err != nil {
		t.Fatalf("invalid JSON body: %s", meBody)
	}
	if me["email"] != email {
		t.Errorf("expected email %q from /auth/me, got %q", email, me["email"])
	}
	if me["role"] != "admin" {
		t.Errorf("expected role admin from /auth/me, got %q", me["role"])
	}
}

// TestLogoutClearsSession verifies the full logout flow: login, logout, then
// /auth/me returns 401. This confirms the session is deleted on logout.
func TestLogoutClearsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestAdmin(t)
	client := newClientWithJar(t)

	loginResp := loginAdmin(t, client, email, password)
	loginBody := readBody(t, loginResp)
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginResp.StatusCode, loginBody)
	}

	logoutResp, err := client.Post(testServer.URL+"/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /auth/logout: %v", err)
	}
	logoutBody := readBody(t, logoutResp)
	if logoutResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/logout, got %d; body: %s", logoutResp.StatusCode, logoutBody)
	}

	meResp, err := client.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me after logout: %v", err)
	}
	meBody := readBody(t, meResp)

	if meResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /auth/me after logout, got %d; body: %s", meResp.StatusCode, meBody)
	}
}

// TestExpiredSessionRejected verifies that a session manually expired in the
// database is rejected with 401 and the body contains "Session expired".
func TestExpiredSessionRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password := createTestAdmin(t)
	client := newClientWithJar(t)

	loginResp := loginAdmin(t, client, email, password)
	loginBody := readBody(t, loginResp)
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginResp.StatusCode, loginBody)
	}

	var loginResult map[string]string
	if err := json.Unmarshal([]byte(loginBody), &loginResult); err != nil {
		t.Fatalf("invalid login response JSON: %s", loginBody)
	}
	userID := loginResult["user_id"]

	if err := db.DB.Model(&auth.Session{}).
		Where("user_id = ?", userID).
		Update("expires_at", time.Now().Add(-1*time.Hour)).Error; err != nil {
		t.Fatalf("failed to expire session: %v", err)
	}

	meResp, err := client.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me after expiry: %v", err)
	}
	meBody := readBody(t, meResp)

	if meResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /auth/me with expired session, got %d; body: %s", meResp.StatusCode, meBody)
	}
	if !strings.Contains(meBody, "Session expired") {
		t.Errorf("expected body to contain %q, got: %q", "Session expired", meBody)
	}
}
