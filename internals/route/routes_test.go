package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus_events_backend/internals/databases/dbtest"
	catService "campus_events_backend/internals/features/events/categories/service"
	authService "campus_events_backend/internals/features/users/auth/service"
	middlewares "campus_events_backend/internals/middlewares"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, Deps) {
	t.Helper()
	db := dbtest.Open(t)
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler,
	})
	d := Deps{
		DB:         db,
		Sessions:   authService.NewSessionService(db, "routes-test-secret", time.Hour),
		Categories: catService.NewCache(db),
	}
	SetupRoutes(app, d)
	return app, d
}

func do(t *testing.T, app *fiber.App, method, path, body string, cookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := sonic.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp, out
}

func login(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, body := do(t, app, fiber.MethodPost, "/api/auth/login",
		`{"email":"`+email+`","password":"`+dbtest.Password+`"}`, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d %v", email, resp.StatusCode, body)
	}
	for _, c := range resp.Cookies() {
		if c.Name == authService.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("login %s: no session cookie", email)
	return nil
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, fiber.MethodGet, "/health", "", nil)
	if resp.StatusCode != fiber.StatusOK || body["database"] != "Connected" {
		t.Fatalf("health: %d %v", resp.StatusCode, body)
	}
}

func TestEventRegistrationFlow(t *testing.T) {
	app, d := newTestApp(t)
	organizer := dbtest.User(t, d.DB, "faculty")
	student := dbtest.User(t, d.DB, "student")
	cat := dbtest.Category(t, d.DB, "Academic")

	orgCookie := login(t, app, organizer.Email)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Minute)
	create := `{"title":"Research Day","location":"Library",` +
		`"start_datetime":"` + start.Format(time.RFC3339) + `",` +
		`"end_datetime":"` + start.Add(2*time.Hour).Format(time.RFC3339) + `",` +
		`"category_id":` + jsonNumber(cat.ID) + `,"max_attendees":"1","is_public":"on"}`
	resp, body := do(t, app, fiber.MethodPost, "/api/events", create, orgCookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	eventID, _ := body["eventId"].(string)
	if eventID == "" {
		t.Fatalf("create: missing eventId in %v", body)
	}

	resp, _ = do(t, app, fiber.MethodPost, "/api/events/"+eventID+"/register", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("anonymous register: status %d, want 401", resp.StatusCode)
	}

	stuCookie := login(t, app, student.Email)
	resp, body = do(t, app, fiber.MethodPost, "/api/events/"+eventID+"/register", "", stuCookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}
	resp, body = do(t, app, fiber.MethodPost, "/api/events/"+eventID+"/register", "", stuCookie)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate register: %d %v", resp.StatusCode, body)
	}

	// the single seat is taken
	resp, _ = do(t, app, fiber.MethodPost, "/api/events/"+eventID+"/register", "", orgCookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("full event: status %d, want 400", resp.StatusCode)
	}

	resp, body = do(t, app, fiber.MethodGet, "/api/events/"+eventID, "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get: %d %v", resp.StatusCode, body)
	}

	resp, body = do(t, app, fiber.MethodDelete, "/api/events/"+eventID, "", stuCookie)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("delete by student: %d %v", resp.StatusCode, body)
	}
}

func TestCreateEventValidationEnvelope(t *testing.T) {
	app, d := newTestApp(t)
	organizer := dbtest.User(t, d.DB, "faculty")
	cookie := login(t, app, organizer.Email)

	resp, body := do(t, app, fiber.MethodPost, "/api/events", `{"title":"","location":"Hall"}`, cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if body["success"] != false || body["error_code"] != "VALIDATION_ERROR" {
		t.Fatalf("envelope: %v", body)
	}
	errs, _ := body["errors"].([]any)
	if len(errs) == 0 {
		t.Fatalf("expected field errors, got %v", body)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, fiber.MethodGet, "/api/user/profile", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status %d %v", resp.StatusCode, body)
	}
}

func jsonNumber(id uint) string {
	b, _ := sonic.Marshal(id)
	return string(b)
}

func TestLoginWithLiveSessionRedirectsHome(t *testing.T) {
	app, d := newTestApp(t)
	user := dbtest.User(t, d.DB, "student")
	cookie := login(t, app, user.Email)

	resp, _ := do(t, app, fiber.MethodPost, "/login",
		`{"email":"`+user.Email+`","password":"`+dbtest.Password+`"}`, cookie)
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get(fiber.HeaderLocation) != "/" {
		t.Fatalf("status %d location %q, want 302 /", resp.StatusCode, resp.Header.Get(fiber.HeaderLocation))
	}
}

func TestLoginLimitIsSharedAcrossPaths(t *testing.T) {
	app, _ := newTestApp(t)
	bad := `{"email":"nobody@campus.edu","password":"wrong-pass1"}`

	paths := []string{"/login", "/api/auth/login", "/login", "/api/auth/login", "/api/auth/google"}
	for i, path := range paths {
		resp, _ := do(t, app, fiber.MethodPost, path, bad, nil)
		if resp.StatusCode == fiber.StatusTooManyRequests {
			t.Fatalf("request %d to %s limited early", i+1, path)
		}
	}
	resp, _ := do(t, app, fiber.MethodPost, "/api/auth/login", bad, nil)
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("sixth attempt: status %d, want 429", resp.StatusCode)
	}
}
