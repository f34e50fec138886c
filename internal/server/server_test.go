package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/session"
)

type countingLoader struct {
	day   *model.Day
	err   error
	calls int
}

func (l *countingLoader) Load(ctx context.Context, month, day int) (*model.Day, error) {
	l.calls++
	return l.day, l.err
}

func testDay() *model.Day {
	return &model.Day{
		Month:  7,
		Day:    20,
		Source: "feed",
		Selected: []model.FactRecord{
			{Year: 1969, Text: "Apollo 11 lands on the Moon.", Kind: model.KindSelected, Pages: []model.PageRef{
				{Title: "Apollo_11", CanonicalURL: "https://en.wikipedia.org/wiki/Apollo_11"},
			}},
			{Year: 1944, Text: "A failed plot against the army leadership.", Kind: model.KindSelected},
			{Year: 1976, Text: "The Viking 1 lander reaches a planet.", Kind: model.KindSelected},
		},
		Births: []model.FactRecord{
			{Year: 1930, Text: "Neil Armstrong, American astronaut", Kind: model.KindBirth},
		},
		Deaths: []model.FactRecord{
			{Year: -44, Text: "Julius Caesar, Roman general", Kind: model.KindDeath},
		},
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestServer(t *testing.T, loader session.Loader) (*Server, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, time.July, 20, 12, 0, 0, 0, time.UTC)}
	s := New(Options{
		Addr:       "127.0.0.1:0",
		SessionTTL: time.Minute,
		FadeOut:    300 * time.Millisecond,
		FadeIn:     50 * time.Millisecond,
		Session:    session.Options{Rand: rand.New(rand.NewPCG(5, 6))},
		Loader:     loader,
		Now:        clock.Now,
	})
	return s, clock
}

// do sends a request, carrying cookie when set, and returns the recorder
// and the session cookie the server assigned
func do(t *testing.T, s *Server, method, path, cookie string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return rec, c.Value
		}
	}
	return rec, ""
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) session.View {
	t.Helper()
	var v session.View
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{day: testDay()})

	rec, _ := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAPI_FactAndNext(t *testing.T) {
	loader := &countingLoader{day: testDay()}
	s, _ := newTestServer(t, loader)

	rec, cookie := do(t, s, http.MethodGet, "/api/fact", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cookie == "" {
		t.Fatal("expected a session cookie")
	}
	v := decodeView(t, rec)
	if v.Fact == nil || v.Total != 3 || v.Position != 1 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.Date != "Sunday, July 20, 2025" {
		t.Errorf("Date = %q", v.Date)
	}

	rec, _ = do(t, s, http.MethodPost, "/api/next", cookie)
	v = decodeView(t, rec)
	if v.Position != 2 {
		t.Errorf("Position = %d, want 2", v.Position)
	}

	if loader.calls != 1 {
		t.Errorf("loader calls = %d, want 1 per session", loader.calls)
	}
	if s.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1", s.Sessions())
	}
}

func TestAPI_Category(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{day: testDay()})
	_, cookie := do(t, s, http.MethodGet, "/api/fact", "")

	rec, _ := do(t, s, http.MethodPost, "/api/category/conflict", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Category != "conflict" || v.Total != 1 {
		t.Errorf("unexpected view: category=%s total=%d", v.Category, v.Total)
	}

	rec, _ = do(t, s, http.MethodPost, "/api/category/cooking", cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAPI_Sidebars(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{day: testDay()})

	rec, _ := do(t, s, http.MethodGet, "/api/sidebars", "")
	var resp sidebarsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Births) != 1 || resp.Births[0].Name != "Neil Armstrong" {
		t.Errorf("unexpected births: %+v", resp.Births)
	}
	if len(resp.Deaths) != 1 || resp.Deaths[0].Description != "Roman general" {
		t.Errorf("unexpected deaths: %+v", resp.Deaths)
	}
}

func TestAPI_LoadFailure(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{err: errors.New("upstream 500")})

	rec, _ := do(t, s, http.MethodGet, "/api/fact", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Error != session.LoadFailedMessage {
		t.Errorf("Error = %q", v.Error)
	}
	if v.Fact != nil {
		t.Error("expected no fact on failure")
	}
}

func TestSession_RetriesAfterFailedLoad(t *testing.T) {
	loader := &countingLoader{err: errors.New("upstream 500")}
	s, _ := newTestServer(t, loader)

	rec, cookie := do(t, s, http.MethodGet, "/api/fact", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	// A POST does not refetch
	do(t, s, http.MethodPost, "/api/next", cookie)
	if loader.calls != 1 {
		t.Fatalf("loader calls = %d after POST, want 1", loader.calls)
	}

	loader.day, loader.err = testDay(), nil
	rec, _ = do(t, s, http.MethodGet, "/api/fact", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d after upstream recovered, want 200", rec.Code)
	}
	if v := decodeView(t, rec); v.Fact == nil || v.Error != "" {
		t.Errorf("expected a fact after reload, got %+v", v)
	}
	if loader.calls != 2 {
		t.Errorf("loader calls = %d, want 2", loader.calls)
	}

	// Loaded sessions are not refetched
	do(t, s, http.MethodGet, "/api/fact", cookie)
	if loader.calls != 2 {
		t.Errorf("loader calls = %d, want 2", loader.calls)
	}
}

func TestSession_UnknownCookieStartsFresh(t *testing.T) {
	loader := &countingLoader{day: testDay()}
	s, _ := newTestServer(t, loader)

	_, cookie := do(t, s, http.MethodGet, "/api/fact", "not-a-uuid")
	if cookie == "" || cookie == "not-a-uuid" {
		t.Errorf("expected a fresh session id, got %q", cookie)
	}
	_, other := do(t, s, http.MethodGet, "/api/fact", "")
	if other == cookie {
		t.Error("expected distinct visitors to get distinct sessions")
	}
	if loader.calls != 2 {
		t.Errorf("loader calls = %d, want 2", loader.calls)
	}
}

func TestSession_ReloadsOnNewDay(t *testing.T) {
	loader := &countingLoader{day: testDay()}
	s, clock := newTestServer(t, loader)

	_, cookie := do(t, s, http.MethodGet, "/api/fact", "")
	do(t, s, http.MethodPost, "/api/next", cookie)

	clock.now = clock.now.Add(24 * time.Hour)
	rec, _ := do(t, s, http.MethodGet, "/api/fact", cookie)
	v := decodeView(t, rec)
	if loader.calls != 2 {
		t.Errorf("loader calls = %d, want 2", loader.calls)
	}
	if v.Date != "Monday, July 21, 2025" || v.Position != 1 {
		t.Errorf("unexpected view after rollover: date=%q position=%d", v.Date, v.Position)
	}
}

func TestPage(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{day: testDay()})

	rec, cookie := do(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Sunday, July 20, 2025", "Notable Births", "Neil Armstrong", "44 BC", "Read more on Wikipedia", "Fact 1 of 3"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	rec, _ = do(t, s, http.MethodPost, "/next", cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	rec, _ = do(t, s, http.MethodGet, "/", cookie)
	if !strings.Contains(rec.Body.String(), "Fact 2 of 3") {
		t.Error("expected the form post to advance the fact")
	}
}

func TestPage_CategoryForm(t *testing.T) {
	s, _ := newTestServer(t, &countingLoader{day: testDay()})
	_, cookie := do(t, s, http.MethodGet, "/", "")

	rec, _ := do(t, s, http.MethodPost, "/category/science", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	rec, _ = do(t, s, http.MethodGet, "/", cookie)
	if !strings.Contains(rec.Body.String(), "Fact 1 of 2") {
		t.Error("expected the science working list")
	}

	rec, _ = do(t, s, http.MethodPost, "/category/cooking", cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
