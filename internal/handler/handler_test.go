package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/quizmark/quizmark/internal/i18n"
	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/parser"
	"github.com/quizmark/quizmark/internal/quiz"
)

const mcDoc = `---
type: mc
answer: B
shuffle: false
---
What is the capital of France?

---Answers
London
---
Paris

---Explanation
Paris has been the capital since 987.
`

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, location string) (string, error) {
	body, ok := m[location]
	if !ok {
		return "", fmt.Errorf("not found: %s", location)
	}
	return body, nil
}

func newTestServer(t *testing.T, cfg quiz.Config, docs mapFetcher, hcfg Config) *httptest.Server {
	t.Helper()
	if err := appI18n.Init("en", nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	renderer := markdown.New()
	shuffler := quiz.NewSeededShuffler(1)
	ctrl := quiz.NewController(cfg, docs, parser.New(renderer), shuffler)

	r := chi.NewRouter()
	New(ctrl, renderer, shuffler, hcfg).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, quiz.Config{Sources: []string{"q.md"}}, mapFetcher{}, Config{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestQuizPayload(t *testing.T) {
	docs := mapFetcher{"capitals.md": mcDoc}
	srv := newTestServer(t, quiz.Config{Count: 1, Sources: []string{"capitals.md"}}, docs,
		Config{Theme: "dark", Lang: map[string]string{"check": "Give it a go"}})

	var payload QuizPayload
	getJSON(t, srv.URL+"/api/quiz", &payload)

	if len(payload.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(payload.Questions))
	}
	q := payload.Questions[0]
	if q.Type != "mc" {
		t.Errorf("type = %q, want mc", q.Type)
	}
	if !strings.Contains(q.BodyHTML, "capital of France") {
		t.Errorf("body html = %q", q.BodyHTML)
	}
	if len(q.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(q.Options))
	}
	// Shuffle is off, so display order is authored order and the answer
	// key marks the second option.
	if q.Options[0].Correct || !q.Options[1].Correct {
		t.Errorf("correct flags = %v/%v, want false/true", q.Options[0].Correct, q.Options[1].Correct)
	}
	if q.Options[1].Value != 2 {
		t.Errorf("correct option value = %d, want 2", q.Options[1].Value)
	}
	if !strings.Contains(q.ExplanationHTML, "987") {
		t.Errorf("explanation html = %q", q.ExplanationHTML)
	}

	if payload.Theme != "dark" {
		t.Errorf("theme = %q, want dark", payload.Theme)
	}
	if payload.Lang["check"] != "Give it a go" {
		t.Errorf("lang override lost: %q", payload.Lang["check"])
	}
	if payload.Lang["correct"] != "Correct" {
		t.Errorf("lang default = %q, want Correct", payload.Lang["correct"])
	}
}

// TestQuizConcurrentRequests serves simultaneous quiz requests over one
// controller and shuffler. Each request shuffles candidates and derives
// display orders, so the shared generator must hold up under -race.
func TestQuizConcurrentRequests(t *testing.T) {
	docs := mapFetcher{"capitals.md": mcDoc}
	srv := newTestServer(t, quiz.Config{Count: 1, Sources: []string{"capitals.md"}}, docs, Config{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				resp, err := http.Get(srv.URL + "/api/quiz")
				if err != nil {
					t.Errorf("GET /api/quiz: %v", err)
					return
				}
				var payload QuizPayload
				err = json.NewDecoder(resp.Body).Decode(&payload)
				resp.Body.Close()
				if err != nil {
					t.Errorf("decode: %v", err)
					return
				}
				if len(payload.Questions) != 1 {
					t.Errorf("got %d questions, want 1", len(payload.Questions))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestQuizEmpty(t *testing.T) {
	srv := newTestServer(t, quiz.Config{Sources: []string{"gone.md"}}, mapFetcher{}, Config{})

	var payload QuizPayload
	getJSON(t, srv.URL+"/api/quiz", &payload)
	if len(payload.Questions) != 0 {
		t.Fatalf("got %d questions, want 0", len(payload.Questions))
	}
	if payload.Message == "" {
		t.Error("empty set carries no message")
	}
}

func TestQuizAssets(t *testing.T) {
	mathDoc := "---\ntype: tf\n---\nIs $$e^{i\\pi} = -1$$ true?\n"
	srv := newTestServer(t, quiz.Config{Count: 1, Sources: []string{"math.md"}},
		mapFetcher{"math.md": mathDoc}, Config{})

	var payload QuizPayload
	getJSON(t, srv.URL+"/api/quiz", &payload)
	if !payload.Assets.Math {
		t.Error("math asset flag not set")
	}
	if payload.Assets.Diagram || payload.Assets.Highlight {
		t.Error("unrelated asset flags set")
	}
}

func TestGroups(t *testing.T) {
	cfg := quiz.Config{
		Count: 5,
		Groups: map[string][]string{
			"basics":      {"b1.md"},
			"concurrency": {"c1.md"},
		},
	}
	srv := newTestServer(t, cfg, mapFetcher{}, Config{})

	var groups GroupsPayload
	getJSON(t, srv.URL+"/api/groups", &groups)
	if len(groups.Groups) != 2 || len(groups.Selected) != 2 {
		t.Fatalf("groups = %+v, want 2 groups all selected", groups)
	}

	body := strings.NewReader(`{"selected":["basics"]}`)
	resp, err := http.Post(srv.URL+"/api/groups", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/groups: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups.Selected) != 1 || groups.Selected[0] != "basics" {
		t.Errorf("selected = %v, want [basics]", groups.Selected)
	}
}

func TestSetGroupsUngrouped(t *testing.T) {
	srv := newTestServer(t, quiz.Config{Sources: []string{"q.md"}}, mapFetcher{}, Config{})

	resp, err := http.Post(srv.URL+"/api/groups", "application/json",
		strings.NewReader(`{"selected":["basics"]}`))
	if err != nil {
		t.Fatalf("POST /api/groups: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
