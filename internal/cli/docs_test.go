package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sunwheel-labs/sunwheel/pkg/document"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func seedStore(t *testing.T, names ...string) (*document.MemoryStore, []*document.Document) {
	t.Helper()
	store := document.NewMemoryStore()
	docs := make([]*document.Document, 0, len(names))
	for _, name := range names {
		doc, err := document.New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if err := doc.SetRoots([]*tree.Node{{ID: doc.ID + "-root", Name: name}}); err != nil {
			t.Fatalf("SetRoots: %v", err)
		}
		if err := store.Put(context.Background(), doc); err != nil {
			t.Fatalf("Put: %v", err)
		}
		docs = append(docs, doc)
	}
	return store, docs
}

func TestResolveDocumentFullID(t *testing.T) {
	store, docs := seedStore(t, "Trip", "Budget")

	got, err := resolveDocument(context.Background(), store, docs[0].ID)
	if err != nil {
		t.Fatalf("resolveDocument() error: %v", err)
	}
	if got.ID != docs[0].ID {
		t.Errorf("got %q, want %q", got.ID, docs[0].ID)
	}
}

func TestResolveDocumentPrefix(t *testing.T) {
	store, docs := seedStore(t, "Trip")

	prefix := docs[0].ID[:8]
	got, err := resolveDocument(context.Background(), store, prefix)
	if err != nil {
		t.Fatalf("resolveDocument(%q) error: %v", prefix, err)
	}
	if got.ID != docs[0].ID {
		t.Errorf("got %q, want %q", got.ID, docs[0].ID)
	}
}

func TestResolveDocumentAmbiguous(t *testing.T) {
	store := document.NewMemoryStore()

	// UUIDs share no guaranteed prefix, so force the collision by writing
	// documents with hand-picked IDs.
	for _, id := range []string{"aaaa1111", "aaaa2222"} {
		doc, err := document.New("Doc " + id)
		if err != nil {
			t.Fatal(err)
		}
		doc.ID = id
		if err := store.Put(context.Background(), doc); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := resolveDocument(context.Background(), store, "aaaa"); err == nil {
		t.Error("ambiguous prefix should error")
	} else if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("error = %v, want mention of ambiguity", err)
	}
}

func TestResolveDocumentMissing(t *testing.T) {
	store, _ := seedStore(t, "Trip")

	if _, err := resolveDocument(context.Background(), store, "zzzz"); err == nil {
		t.Error("unknown id should error")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("123456789abc"); got != "12345678" {
		t.Errorf("shortID() = %q, want %q", got, "12345678")
	}
	if got := shortID("short"); got != "short" {
		t.Errorf("shortID() = %q, want unchanged %q", got, "short")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-20 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}

	old := time.Date(2020, time.March, 10, 0, 0, 0, 0, time.UTC)
	if got := formatRelativeTime(old); got != "Mar 10, 2020" {
		t.Errorf("formatRelativeTime(old) = %q, want %q", got, "Mar 10, 2020")
	}
}
