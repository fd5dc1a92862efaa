package meaning

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTDK(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gts" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("ara") {
		case "kalem":
			w.Write([]byte(`[{"madde":"kalem","anlamlarListe":[{"anlam":" Yazı yazmaya yarayan araç "},{"anlam":"ikinci"}]}]`))
		case "boş":
			w.Write([]byte(`[{"madde":"boş","anlamlarListe":[]}]`))
		case "kırık":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte(`{"error":"Sonuç bulunamadı"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second)
}

func TestMeaning(t *testing.T) {
	c := newTDK(t)
	got, err := c.Meaning(context.Background(), "kalem")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Yazı yazmaya yarayan araç" {
		t.Fatalf("unexpected meaning %q", got)
	}
}

func TestMeaningUnknownWord(t *testing.T) {
	c := newTDK(t)
	for _, w := range []string{"xxxxx", "boş"} {
		got, err := c.Meaning(context.Background(), w)
		if err != nil {
			t.Fatalf("%s: %v", w, err)
		}
		if got != "" {
			t.Fatalf("%s: expected empty meaning, got %q", w, got)
		}
	}
}

func TestMeaningServerError(t *testing.T) {
	c := newTDK(t)
	if _, err := c.Meaning(context.Background(), "kırık"); err == nil {
		t.Fatal("expected error for 502")
	}
}
