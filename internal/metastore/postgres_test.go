package metastore

import (
	"strings"
	"testing"
	"time"

	"github.com/scigate/scigate/internal/model"
)

// List values are passed through as []string for text[] columns; an entry
// containing a comma must arrive as one element, not be flattened into a
// joined string.
func TestStoreQuery_ListsStayIntact(t *testing.T) {
	s := NewPostgresStore(nil)
	score := 95.0
	md := model.Metadata{
		Abstract:     "An abstract.",
		Keywords:     []string{"originality", "policy, governance"},
		Coauthors:    []string{"Doe, Jane", "Roe, Richard"},
		Affiliations: []string{"Institute of Gating"},
		Funding:      "Grant 42",

		OriginalityScore: &score,
	}

	query, args, err := s.storeQuery("paper-1", "0xa1b2c3", md, time.Now().UTC())
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.Contains(query, "INSERT INTO paper_metadata") {
		t.Errorf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (paper_id) DO UPDATE") {
		t.Error("expected an upsert query")
	}
	if !strings.Contains(query, "$10") {
		t.Errorf("expected dollar placeholders, got: %s", query)
	}

	if len(args) != 10 {
		t.Fatalf("expected 10 args, got %d", len(args))
	}

	keywords, ok := args[3].([]string)
	if !ok {
		t.Fatalf("keywords arg is %T, expected []string", args[3])
	}
	if len(keywords) != 2 || keywords[1] != "policy, governance" {
		t.Errorf("keyword with a comma must survive as one element: %v", keywords)
	}

	coauthors, ok := args[4].([]string)
	if !ok {
		t.Fatalf("coauthors arg is %T, expected []string", args[4])
	}
	if len(coauthors) != 2 || coauthors[0] != "Doe, Jane" {
		t.Errorf("coauthor names with commas must survive: %v", coauthors)
	}

	if score, ok := args[8].(*float64); !ok || *score != 95.0 {
		t.Errorf("originality score arg = %v (%T)", args[8], args[8])
	}
}

func TestStoreQuery_NilScore(t *testing.T) {
	s := NewPostgresStore(nil)

	_, args, err := s.storeQuery("paper-1", "0xa1b2c3", model.Metadata{}, time.Now().UTC())
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if args[8] != (*float64)(nil) {
		t.Errorf("expected nil originality score to stay nil, got %v", args[8])
	}
}

func TestGetQuery(t *testing.T) {
	s := NewPostgresStore(nil)

	query, args, err := s.getQuery("paper-1")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "FROM paper_metadata") || !strings.Contains(query, "paper_id = $1") {
		t.Errorf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "paper-1" {
		t.Errorf("unexpected args: %v", args)
	}
}
