package ranking

import (
	"testing"
	"time"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

var day = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func ids(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func assertOrder(t *testing.T, got []model.Article, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestRecency_NewestFirst(t *testing.T) {
	articles := []model.Article{
		{ID: "a", PublicationDate: day.AddDate(0, 0, -3)},
		{ID: "b", PublicationDate: day.AddDate(0, 0, -1)},
		{ID: "c", PublicationDate: day.AddDate(0, 0, -2)},
	}

	assertOrder(t, Recency(articles), "b", "c", "a")
}

func TestRecency_TieBreaksByID(t *testing.T) {
	articles := []model.Article{
		{ID: "z", PublicationDate: day},
		{ID: "a", PublicationDate: day},
		{ID: "m", PublicationDate: day},
	}

	assertOrder(t, Recency(articles), "a", "m", "z")
}

func TestRelevance_HighestFirst(t *testing.T) {
	articles := []model.Article{
		{ID: "a", RelevanceScore: 0.2},
		{ID: "b", RelevanceScore: 0.9},
		{ID: "c", RelevanceScore: 0.9},
		{ID: "d", RelevanceScore: 0.5},
	}

	assertOrder(t, Relevance(articles), "b", "c", "d", "a")
}

func TestDistance_NearestFirst(t *testing.T) {
	// Requester at the origin; one degree of longitude on the equator is
	// about 111 km, so ordering tracks the longitude offsets.
	articles := []model.Article{
		{ID: "far", Latitude: 0, Longitude: 0.3},
		{ID: "near", Latitude: 0, Longitude: 0.1},
		{ID: "mid", Latitude: 0, Longitude: 0.2},
	}

	got, err := Distance(articles, ptr(0), ptr(0))
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, got, "near", "mid", "far")
}

func TestDistance_MissingLocation(t *testing.T) {
	if _, err := Distance(nil, nil, ptr(0)); err != ErrMissingLocation {
		t.Errorf("got %v, want ErrMissingLocation", err)
	}
	if _, err := Distance(nil, ptr(0), nil); err != ErrMissingLocation {
		t.Errorf("got %v, want ErrMissingLocation", err)
	}
}

func TestDistance_SkipsCorruptCoordinates(t *testing.T) {
	articles := []model.Article{
		{ID: "good", Latitude: 0, Longitude: 0.1},
		{ID: "corrupt", Latitude: 400, Longitude: 0},
	}

	got, err := Distance(articles, ptr(0), ptr(0))
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, got, "good")
}

func TestRankings_StableUnderInputReordering(t *testing.T) {
	base := []model.Article{
		{ID: "a", PublicationDate: day, RelevanceScore: 0.5, Longitude: 0.2},
		{ID: "b", PublicationDate: day.Add(time.Hour), RelevanceScore: 0.5, Longitude: 0.1},
		{ID: "c", PublicationDate: day, RelevanceScore: 0.9, Longitude: 0.3},
	}

	permutations := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}}

	var wantRecency, wantRelevance, wantDistance []string
	for i, perm := range permutations {
		input := make([]model.Article, len(base))
		for j, k := range perm {
			input[j] = base[k]
		}

		recency := ids(Recency(input))
		relevance := ids(Relevance(input))
		byDist, err := Distance(input, ptr(0), ptr(0))
		if err != nil {
			t.Fatal(err)
		}
		distance := ids(byDist)

		if i == 0 {
			wantRecency, wantRelevance, wantDistance = recency, relevance, distance
			continue
		}
		for j := range base {
			if recency[j] != wantRecency[j] {
				t.Errorf("recency order changed with input order: %v vs %v", recency, wantRecency)
			}
			if relevance[j] != wantRelevance[j] {
				t.Errorf("relevance order changed with input order: %v vs %v", relevance, wantRelevance)
			}
			if distance[j] != wantDistance[j] {
				t.Errorf("distance order changed with input order: %v vs %v", distance, wantDistance)
			}
		}
	}
}

func TestRecency_DoesNotMutateInput(t *testing.T) {
	articles := []model.Article{
		{ID: "a", PublicationDate: day.AddDate(0, 0, -2)},
		{ID: "b", PublicationDate: day},
	}

	Recency(articles)

	if articles[0].ID != "a" || articles[1].ID != "b" {
		t.Errorf("input slice was reordered: %v", ids(articles))
	}
}

func TestTruncate(t *testing.T) {
	articles := []model.Article{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if got := Truncate(articles, 2); len(got) != 2 || got[0].ID != "a" {
		t.Errorf("Truncate(3, 2) = %v", ids(got))
	}
	if got := Truncate(articles, 5); len(got) != 3 {
		t.Errorf("Truncate(3, 5) = %v", ids(got))
	}
	if got := Truncate(articles, -1); len(got) != 3 {
		t.Errorf("Truncate(3, -1) = %v", ids(got))
	}
}
