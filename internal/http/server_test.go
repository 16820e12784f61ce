package http

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-filecms/internal/auth"
	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/views"
	"github.com/goliatone/go-filecms/pkg/interfaces"
	"github.com/goliatone/go-filecms/pkg/testsupport"
)

type testEnv struct {
	t        *testing.T
	handler  http.Handler
	store    *documents.FileStore
	sessions *auth.MemorySessionStore
	cookie   *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, nil)
}

func newTestEnvWithStore(t *testing.T, wrap func(interfaces.DocumentStore) interfaces.DocumentStore) *testEnv {
	t.Helper()
	return buildTestEnv(t, wrap, nil)
}

func newTestEnvWithViews(t *testing.T, pages interfaces.TemplateRenderer) *testEnv {
	t.Helper()
	return buildTestEnv(t, nil, pages)
}

func buildTestEnv(t *testing.T, wrap func(interfaces.DocumentStore) interfaces.DocumentStore, pages interfaces.TemplateRenderer) *testEnv {
	t.Helper()
	root := t.TempDir()

	store, err := documents.NewFileStore(filepath.Join(root, "data"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	usersFile := testsupport.WriteUsersFile(t, root, map[string]string{"admin": "secret"})
	credentials, err := auth.NewCredentialStore(usersFile)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}

	if pages == nil {
		renderer, err := views.New()
		if err != nil {
			t.Fatalf("views.New: %v", err)
		}
		pages = renderer
	}

	sessions := auth.NewMemorySessionStore(0)
	var docs interfaces.DocumentStore = store
	if wrap != nil {
		docs = wrap(store)
	}

	server := NewServer(
		WithDocumentStore(docs),
		WithCredentials(credentials),
		WithSessions(auth.NewManager(sessions)),
		WithViews(pages),
	)

	return &testEnv{t: t, handler: server.Handler(), store: store, sessions: sessions}
}

func (e *testEnv) createDocument(name, content string) {
	e.t.Helper()
	if err := e.store.Write(context.Background(), name, []byte(content)); err != nil {
		e.t.Fatalf("create document %s: %v", name, err)
	}
}

// signIn attaches an already signed-in session to the client.
func (e *testEnv) signIn() {
	e.t.Helper()
	e.cookie = &http.Cookie{Name: auth.DefaultCookieName, Value: "admin-session"}
	e.sessions.Put(e.cookie.Value, &auth.Session{User: "admin"})
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil)
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, form)
}

func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.DefaultCookieName {
			e.cookie = cookie
		}
	}
	return rec
}

func (e *testEnv) session() *auth.Session {
	e.t.Helper()
	if e.cookie == nil {
		e.t.Fatal("no session cookie")
	}
	session, ok := e.sessions.Get(e.cookie.Value)
	if !ok {
		e.t.Fatal("session not stored")
	}
	return session
}

// stored returns the client's session, which is absent once it holds
// neither a user nor a flash message.
func (e *testEnv) stored() (*auth.Session, bool) {
	if e.cookie == nil {
		return nil, false
	}
	return e.sessions.Get(e.cookie.Value)
}

func (e *testEnv) flash() (string, bool) {
	session, _ := e.stored()
	return session.PeekFlash()
}

func (e *testEnv) names() []string {
	e.t.Helper()
	names, err := e.store.List(context.Background())
	if err != nil {
		e.t.Fatalf("List: %v", err)
	}
	return names
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func assertRedirectHome(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assertStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected body to contain %q, got:\n%s", want, rec.Body.String())
	}
}

func TestIndexSignedIn(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("about.md", "")
	env.createDocument("changes.txt", "")

	rec := env.post("/users/signin", url.Values{"username": {"admin"}, "password": {"secret"}})
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "Welcome!" {
		t.Fatalf("expected welcome flash, got %q", msg)
	}
	if env.session().User != "admin" {
		t.Fatalf("expected admin to be signed in, got %q", env.session().User)
	}

	rec = env.get("/")
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	assertBodyContains(t, rec, "about.md")
	assertBodyContains(t, rec, "changes.txt")
	assertBodyContains(t, rec, `<button type="submit">Sign Out`)
	assertBodyContains(t, rec, "Signed in as admin")
	assertBodyContains(t, rec, "Welcome!")
}

func TestIndexSignedOut(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, `<form action="/users/signin" method="get">`)
}

func TestSignInPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/users/signin")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, `<form action="/users/signin" method="post">`)
}

func TestSignInPageRedirectsWhenSignedIn(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	assertRedirectHome(t, env.get("/users/signin"))
}

func TestSignInBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/users/signin", url.Values{"username": {"admin"}, "password": {"password"}})
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertBodyContains(t, rec, "Invalid Credentials")
	assertBodyContains(t, rec, `value="admin"`)
	if session, _ := env.stored(); session.SignedIn() {
		t.Fatal("expected session to stay signed out")
	}
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	assertBodyContains(t, env.get("/"), "Signed in as admin")

	rec := env.post("/users/signout", url.Values{})
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "You have been signed out." {
		t.Fatalf("expected signed out flash, got %q", msg)
	}

	rec = env.get("/")
	assertStatus(t, rec, http.StatusOK)
	if session, _ := env.stored(); session.SignedIn() {
		t.Fatal("expected session to be signed out")
	}
	assertBodyContains(t, rec, `<form action="/users/signin" method="get">`)
}

func TestViewingTextDocument(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("history.txt", "1993 - Yukihiro Matsumoto dreams up Ruby.")

	rec := env.get("/history.txt")
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain" {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	if rec.Body.String() != "1993 - Yukihiro Matsumoto dreams up Ruby." {
		t.Fatalf("expected raw content, got %q", rec.Body.String())
	}
}

func TestViewingMarkdownDocument(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("about.md", "**programming**")

	rec := env.get("/about.md")
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	assertBodyContains(t, rec, "<strong>programming</strong>")
	assertBodyContains(t, rec, "<html")
}

func TestViewingMarkdownWithLeadingRule(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("notes.md", "---\nChapter one\n---\n**x**\n")

	rec := env.get("/notes.md")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, "Chapter one</h2>")
	assertBodyContains(t, rec, "<strong>x</strong>")
}

func TestDocumentThatDoesNotExist(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/missing.txt")
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "missing.txt does not exist." {
		t.Fatalf("expected missing flash, got %q", msg)
	}

	assertBodyContains(t, env.get("/"), "missing.txt does not exist.")
	if _, ok := env.flash(); ok {
		t.Fatal("expected flash to be consumed by the first render")
	}
	if strings.Contains(env.get("/").Body.String(), "does not exist") {
		t.Fatal("expected no flash on the following request")
	}
}

func TestEditDocument(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("changes.txt", "")
	env.signIn()

	rec := env.get("/changes.txt/edit")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, "Edit content of changes.txt")
	assertBodyContains(t, rec, "</textarea>")

	rec = env.post("/changes.txt/edit", url.Values{"contents": {"new content"}})
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "changes.txt has been updated." {
		t.Fatalf("expected updated flash, got %q", msg)
	}

	rec = env.get("/changes.txt")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, "new content")
}

func TestEditUnlistedDocumentRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	assertRedirectHome(t, env.post("/ghost.txt/edit", url.Values{"contents": {"boo"}}))
	if msg, _ := env.flash(); msg != "ghost.txt does not exist." {
		t.Fatalf("expected missing flash, got %q", msg)
	}
	if len(env.names()) != 0 {
		t.Fatalf("expected no document to be created, got %v", env.names())
	}
}

func TestNewDocument(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	rec := env.get("/new")
	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec, "Add a new document:")
	assertBodyContains(t, rec, `<button type="submit">`)

	rec = env.post("/new", url.Values{"filename": {"new_file.txt"}})
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "new_file.txt was created." {
		t.Fatalf("expected created flash, got %q", msg)
	}

	assertBodyContains(t, env.get("/"), "new_file.txt")
}

func TestCreateDocumentValidation(t *testing.T) {
	cases := map[string]string{
		"":        "The file must have a name.",
		"test.rb": "The file must end with '.txt' or '.md'.",
	}
	for filename, message := range cases {
		env := newTestEnv(t)
		env.signIn()

		rec := env.post("/new", url.Values{"filename": {filename}})
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertBodyContains(t, rec, html.EscapeString(message))
		if len(env.names()) != 0 {
			t.Fatalf("expected no documents after rejected create, got %v", env.names())
		}
	}
}

func TestDeleteDocument(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("test_file.txt", "")
	env.signIn()

	rec := env.post("/test_file.txt/delete", url.Values{})
	assertRedirectHome(t, rec)
	if msg, _ := env.flash(); msg != "test_file.txt has been deleted." {
		t.Fatalf("expected deleted flash, got %q", msg)
	}

	rec = env.get("/")
	if strings.Contains(rec.Body.String(), `<a href="/test_file.txt">`) {
		t.Fatalf("expected deleted document to be gone, got:\n%s", rec.Body.String())
	}
}

func TestDeleteMissingDocumentFails(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	assertStatus(t, env.post("/gone.txt/delete", url.Values{}), http.StatusInternalServerError)
}

func TestGatedRoutesRequireSignIn(t *testing.T) {
	routes := []struct {
		method string
		path   string
		form   url.Values
	}{
		{http.MethodGet, "/new", nil},
		{http.MethodPost, "/new", url.Values{"filename": {"test.txt"}}},
		{http.MethodGet, "/test.txt/edit", nil},
		{http.MethodPost, "/test.txt/edit", url.Values{"contents": {"changed"}}},
		{http.MethodPost, "/test.txt/delete", url.Values{}},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			env := newTestEnv(t)
			env.createDocument("test.txt", "original")

			rec := env.do(route.method, route.path, route.form)
			assertRedirectHome(t, rec)
			if msg, _ := env.flash(); msg != "You must be signed in to do that." {
				t.Fatalf("expected auth flash, got %q", msg)
			}

			if names := env.names(); !slices.Equal(names, []string{"test.txt"}) {
				t.Fatalf("expected documents unchanged, got %v", names)
			}
			content, err := env.store.Read(context.Background(), "test.txt")
			if err != nil || string(content) != "original" {
				t.Fatalf("expected content unchanged, got %q %v", content, err)
			}

			assertBodyContains(t, env.get("/"), "Sign in")
		})
	}
}

func TestAnonymousRequestsDoNotStoreSessions(t *testing.T) {
	env := newTestEnv(t)
	env.createDocument("about.md", "# About")

	for range 1000 {
		env.cookie = nil
		assertStatus(t, env.get("/"), http.StatusOK)
	}
	assertStatus(t, env.get("/about.md"), http.StatusOK)
	if got := env.sessions.Len(); got != 0 {
		t.Fatalf("expected no stored sessions, got %d", got)
	}

	assertRedirectHome(t, env.get("/missing.txt"))
	if got := env.sessions.Len(); got != 1 {
		t.Fatalf("expected the flash to store one session, got %d", got)
	}
}

type failingViews struct{}

func (failingViews) Render(string, any, ...io.Writer) (string, error) {
	return "", errors.New("template exploded")
}

func TestFlashSurvivesFailedRender(t *testing.T) {
	env := newTestEnvWithViews(t, failingViews{})
	env.signIn()
	session := env.session()
	session.SetFlash("Welcome!")
	env.sessions.Put(env.cookie.Value, session)

	assertStatus(t, env.get("/"), http.StatusInternalServerError)
	if msg, ok := env.flash(); !ok || msg != "Welcome!" {
		t.Fatalf("expected flash to be kept, got %q %v", msg, ok)
	}
}

type countingStore struct {
	interfaces.DocumentStore
	lists atomic.Int32
}

func (c *countingStore) List(ctx context.Context) ([]string, error) {
	c.lists.Add(1)
	return c.DocumentStore.List(ctx)
}

func TestSnapshotIsTakenOncePerRequest(t *testing.T) {
	var counter *countingStore
	env := newTestEnvWithStore(t, func(store interfaces.DocumentStore) interfaces.DocumentStore {
		counter = &countingStore{DocumentStore: store}
		return counter
	})
	env.createDocument("about.md", "# About")
	env.signIn()

	for _, path := range []string{"/", "/about.md", "/about.md/edit"} {
		counter.lists.Store(0)
		assertStatus(t, env.get(path), http.StatusOK)
		if got := counter.lists.Load(); got != 1 {
			t.Fatalf("%s: expected one listing, got %d", path, got)
		}
	}
}
