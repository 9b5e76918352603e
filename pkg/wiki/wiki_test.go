package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/fetcher"
)

func TestVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{
			in:   "machine_learning",
			want: []string{"machine_learning", "Machine_Learning", "Machine Learning"},
		},
		{
			in:   "Category:machine learning",
			want: []string{"machine_learning", "Machine_Learning", "Machine Learning"},
		},
		{
			in:   "Machine_Learning",
			want: []string{"Machine_Learning", "Machine Learning"},
		},
		{
			in:   "AI safety",
			want: []string{"AI_safety", "Ai_Safety", "Ai Safety"},
		},
		{
			in:   "  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got []string
			for _, v := range Variants(tt.in) {
				got = append(got, v.Title)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Variants(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"machine_learning": "Machine_Learning",
		"NEURAL networks":  "Neural Networks",
		"20th-century art": "20Th-Century Art",
		"éCOLE":            "École",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

// fakeWiki serves the two MediaWiki queries the client issues.
type fakeWiki struct {
	mu        sync.Mutex
	members   map[string][]map[string]any // cmtitle -> members
	failTitle map[string]bool             // cmtitle -> respond 500
	extracts  map[string]any              // title -> extract (string) or nil for missing
	articles  map[string]string           // /wiki/ path -> html
	queried   []string
	params    []map[string]string
}

func (f *fakeWiki) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if strings.HasPrefix(r.URL.Path, "/wiki/") {
			html, ok := f.articles[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			io.WriteString(w, html)
			return
		}

		q := r.URL.Query()
		flat := map[string]string{}
		for k := range q {
			flat[k] = q.Get(k)
		}
		f.params = append(f.params, flat)

		switch {
		case q.Get("list") == "categorymembers":
			title := q.Get("cmtitle")
			f.queried = append(f.queried, title)
			if f.failTitle[title] {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"batchcomplete": "",
				"query":         map[string]any{"categorymembers": f.members[title]},
			})
		case q.Get("prop") == "extracts":
			title := q.Get("titles")
			page := map[string]any{"ns": 0, "title": title}
			id := "42"
			if ext, ok := f.extracts[title]; ok && ext != nil {
				page["extract"] = ext
			} else if !ok {
				id = "-1"
				page["missing"] = ""
			}
			json.NewEncoder(w).Encode(map[string]any{
				"query": map[string]any{"pages": map[string]any{id: page}},
			})
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	})
}

func (f *fakeWiki) snapshot() ([]string, []map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queried...), append([]map[string]string(nil), f.params...)
}

func newTestClient(t *testing.T, f *fakeWiki, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	opts.APIURL = srv.URL + "/w/api.php"
	opts.SiteURL = srv.URL
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(fetcher.NewFetcher(), opts)
}

func member(ns int, title string) map[string]any {
	return map[string]any{"pageid": 1, "ns": ns, "title": title}
}

func TestResolvePagesFirstMatchingVariantWins(t *testing.T) {
	f := &fakeWiki{members: map[string][]map[string]any{
		"Category:Machine_Learning": {member(0, "Perceptron"), member(14, "Category:Deep learning"), member(0, "Boosting")},
		"Category:Machine Learning": {member(0, "Never used")},
	}}
	c := newTestClient(t, f, Options{})

	pages, err := c.ResolvePages(context.Background(), "machine_learning")
	if err != nil {
		t.Fatalf("ResolvePages() error = %v", err)
	}

	want := []models.PageRef{{Title: "Perceptron"}, {Title: "Boosting"}}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("ResolvePages() = %v, want %v", pages, want)
	}

	queried, _ := f.snapshot()
	wantQueried := []string{"Category:machine_learning", "Category:Machine_Learning"}
	if !reflect.DeepEqual(queried, wantQueried) {
		t.Errorf("queried %q, want %q", queried, wantQueried)
	}
}

func TestResolvePagesSkipsNonArticleOnlyVariant(t *testing.T) {
	f := &fakeWiki{members: map[string][]map[string]any{
		"Category:machine_learning": {member(14, "Category:Sub")},
		"Category:Machine Learning": {member(0, "Perceptron")},
	}}
	c := newTestClient(t, f, Options{})

	pages, err := c.ResolvePages(context.Background(), "machine_learning")
	if err != nil {
		t.Fatalf("ResolvePages() error = %v", err)
	}
	if len(pages) != 1 || pages[0].Title != "Perceptron" {
		t.Errorf("ResolvePages() = %v", pages)
	}
	if queried, _ := f.snapshot(); len(queried) != 3 {
		t.Errorf("queried %d variants, want 3", len(queried))
	}
}

func TestResolvePagesRecoversFromFailedVariant(t *testing.T) {
	f := &fakeWiki{
		members: map[string][]map[string]any{
			"Category:Machine_Learning": {member(0, "Perceptron")},
		},
		failTitle: map[string]bool{"Category:machine_learning": true},
	}
	c := newTestClient(t, f, Options{})

	pages, err := c.ResolvePages(context.Background(), "machine_learning")
	if err != nil {
		t.Fatalf("ResolvePages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("ResolvePages() = %v, want the page from the second variant", pages)
	}
}

func TestResolvePagesNotFound(t *testing.T) {
	f := &fakeWiki{}
	c := newTestClient(t, f, Options{})

	pages, err := c.ResolvePages(context.Background(), "no such category")
	if err != nil {
		t.Fatalf("ResolvePages() error = %v", err)
	}
	if pages == nil || len(pages) != 0 {
		t.Errorf("ResolvePages() = %#v, want empty non-nil slice", pages)
	}
}

func TestResolvePagesSendsLimit(t *testing.T) {
	f := &fakeWiki{members: map[string][]map[string]any{
		"Category:Physics": {member(0, "Quark")},
	}}
	c := newTestClient(t, f, Options{MaxPages: 25})

	if _, err := c.ResolvePages(context.Background(), "Physics"); err != nil {
		t.Fatal(err)
	}
	_, params := f.snapshot()
	p := params[0]
	if p["cmlimit"] != "25" || p["action"] != "query" || p["format"] != "json" {
		t.Errorf("category query params = %v", p)
	}
}

func TestResolvePagesCanceled(t *testing.T) {
	c := newTestClient(t, &fakeWiki{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ResolvePages(ctx, "Physics"); !errors.Is(err, context.Canceled) {
		t.Errorf("ResolvePages() error = %v, want context.Canceled", err)
	}
}

func TestFetchContent(t *testing.T) {
	f := &fakeWiki{extracts: map[string]any{
		"Perceptron":         "The perceptron learns.",
		"Mercury (disambig)": nil,
	}}
	c := newTestClient(t, f, Options{})

	tests := []struct {
		title string
		want  string
	}{
		{"Perceptron", "The perceptron learns."},
		{"Mercury (disambig)", ""},
		{"Missing page", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, err := c.FetchContent(context.Background(), models.PageRef{Title: tt.title})
			if err != nil {
				t.Fatalf("FetchContent() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchContent() = %q, want %q", got, tt.want)
			}
		})
	}

	_, params := f.snapshot()
	if params[0]["explaintext"] != "1" || params[0]["exlimit"] != "1" {
		t.Errorf("extract query params = %v", params[0])
	}
}

func TestFetchContentHTMLFormat(t *testing.T) {
	f := &fakeWiki{extracts: map[string]any{
		"Perceptron": "<p>The <b>perceptron</b> learns.</p><p>Rosenblatt</p>",
	}}
	c := newTestClient(t, f, Options{ExtractFormat: models.ExtractFormatHTML})

	got, err := c.FetchContent(context.Background(), models.PageRef{Title: "Perceptron"})
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if got != "The perceptron learns.\nRosenblatt" {
		t.Errorf("FetchContent() = %q", got)
	}
	_, params := f.snapshot()
	if _, ok := params[0]["explaintext"]; ok {
		t.Error("explaintext should not be sent in html mode")
	}
}

func TestFetchContentTransientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(fetcher.NewFetcher(), Options{
		APIURL: srv.URL,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	_, err := c.FetchContent(context.Background(), models.PageRef{Title: "Perceptron"})
	if !errors.Is(err, ErrTransientFetch) {
		t.Errorf("FetchContent() error = %v, want ErrTransientFetch", err)
	}
}

func TestFetchContentArticleFallback(t *testing.T) {
	para := strings.Repeat("Mercury is the smallest planet in the Solar System and the closest to the Sun in its orbit. ", 4)
	f := &fakeWiki{
		extracts: map[string]any{"Mercury planet": nil},
		articles: map[string]string{
			"/wiki/Mercury_planet": "<html><head><title>Mercury</title></head><body><div><p>" + para + "</p><p>" + para + "</p></div></body></html>",
		},
	}
	c := newTestClient(t, f, Options{ArticleFallback: true})

	got, err := c.FetchContent(context.Background(), models.PageRef{Title: "Mercury planet"})
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if !strings.Contains(got, "smallest planet") {
		t.Errorf("FetchContent() = %q, want article text", got)
	}
}

func TestArticleURL(t *testing.T) {
	c := NewClient(nil, Options{SiteURL: "https://en.wikipedia.org"})

	got, err := c.ArticleURL("AC/DC songs")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://en.wikipedia.org/wiki/AC/DC_songs" {
		t.Errorf("ArticleURL() = %q", got)
	}
}
