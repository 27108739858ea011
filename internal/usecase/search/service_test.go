package search

import (
	"context"
	"errors"
	"testing"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/task"
)

func TestSearch_MissingQuery(t *testing.T) {
	svc := New(&mockPlanner{}, &mockEmbedder{}, &mockIndex{}, &mockCatalog{})

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), q)
		if !errors.Is(err, domain.ErrMissingQuery) {
			t.Errorf("query %q: expected ErrMissingQuery, got %v", q, err)
		}
	}
}

func TestSearch_EmptyPlan_EmptyResults(t *testing.T) {
	planner := &mockPlanner{tasks: nil}
	emb := &mockEmbedder{vec: []float32{1}}
	svc := New(planner, emb, &mockIndex{}, &mockCatalog{})

	got, err := svc.Search(context.Background(), "asdfgh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("results must be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if emb.calls != 0 {
		t.Errorf("embedder must not run without tasks, got %d calls", emb.calls)
	}
}

func TestSearch_SingleTask_CapAndOrder(t *testing.T) {
	// Eight matching rows; only the five nearest survive the cap.
	products := make([]product.Product, 8)
	for i := range products {
		products[i] = product.Product{
			ID: string(rune('a' + i)), Category: "menswear",
			ProductType: "jeans", Color: "black",
		}
	}
	cat := &mockCatalog{products: products}
	idx := &mockIndex{candidates: allRows(8)}
	planner := &mockPlanner{tasks: []task.Task{{Color: strPtr("black")}}}

	svc := New(planner, &mockEmbedder{vec: []float32{1}}, idx, cat)

	got, err := svc.Search(context.Background(), "black jeans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIDs := []string{"a", "b", "c", "d", "e"}
	gotIDs := resultIDs(got)
	if len(gotIDs) != len(wantIDs) {
		t.Fatalf("expected %d results, got %d", len(wantIDs), len(gotIDs))
	}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Errorf("position %d: got %s, want %s", i, gotIDs[i], wantIDs[i])
		}
	}
	if idx.lastK != 10000 {
		t.Errorf("candidate fetch size: got %d, want 10000", idx.lastK)
	}
}

func TestSearch_SingleTask_NoEarlyCede(t *testing.T) {
	// A lone task keeps scanning past even counts; the cede rule only
	// applies when tasks share the response.
	products := []product.Product{
		{ID: "p1", Color: "black"},
		{ID: "p2", Color: "black"},
		{ID: "p3", Color: "black"},
	}
	planner := &mockPlanner{tasks: []task.Task{{Color: strPtr("black")}}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(3)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black things")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all 3 matches, got %d", len(got))
	}
}

func TestSearch_FilterRejectsAll(t *testing.T) {
	products := []product.Product{
		{ID: "p1", Color: "red"},
		{ID: "p2", Color: "blue"},
	}
	planner := &mockPlanner{tasks: []task.Task{{Color: strPtr("black")}}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(2)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black kurta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", resultIDs(got))
	}
}

func TestSearch_FilterCaseAndWhitespaceInsensitive(t *testing.T) {
	products := []product.Product{
		{ID: "p1", Color: " Black ", Category: "MENSWEAR"},
	}
	planner := &mockPlanner{tasks: []task.Task{{
		Color:    strPtr("black"),
		Category: strPtr("Menswear"),
	}}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(1)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black jeans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("normalized filter should match, got %v", resultIDs(got))
	}
}

func TestSearch_TwoTasks_EvenSplitThenCede(t *testing.T) {
	// Rows 0-4 are black jeans, row 5 is the only white shirt. The jeans
	// task cedes after two accepts, so the shirt still makes the response.
	products := []product.Product{
		{ID: "j1", ProductType: "jeans", Color: "black"},
		{ID: "j2", ProductType: "jeans", Color: "black"},
		{ID: "j3", ProductType: "jeans", Color: "black"},
		{ID: "j4", ProductType: "jeans", Color: "black"},
		{ID: "j5", ProductType: "jeans", Color: "black"},
		{ID: "s1", ProductType: "shirt", Color: "white"},
	}
	planner := &mockPlanner{tasks: []task.Task{
		{ProductType: strPtr("jeans"), Color: strPtr("black")},
		{ProductType: strPtr("shirt"), Color: strPtr("white")},
	}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(6)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black jeans and a white shirt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotIDs := resultIDs(got)
	want := []string{"j1", "j2", "s1"}
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, gotIDs[i], want[i])
		}
	}
}

func TestSearch_MultiTask_EmbedsPerTaskQuery(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1}}
	planner := &mockPlanner{tasks: []task.Task{
		{Attributes: []string{"slim fit"}},
		{Attributes: []string{"formal"}},
	}}
	svc := New(planner, emb, &mockIndex{}, &mockCatalog{})

	if _, err := svc.Search(context.Background(), "party outfit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != 2 {
		t.Fatalf("expected one embed per task, got %d", emb.calls)
	}
	if emb.texts[0] != "party outfit slim fit" || emb.texts[1] != "party outfit formal" {
		t.Errorf("unexpected semantic queries: %v", emb.texts)
	}
}

func TestSearch_CrossTaskDedup(t *testing.T) {
	// Both tasks match the same product; it must appear once.
	products := []product.Product{
		{ID: "p1", Category: "menswear", Color: "black"},
		{ID: "p2", Category: "menswear", Color: "black"},
	}
	planner := &mockPlanner{tasks: []task.Task{
		{Category: strPtr("menswear")},
		{Color: strPtr("black")},
	}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(2)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black menswear")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]int{}
	for _, p := range got {
		seen[p.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %s returned %d times", id, n)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected both distinct products once each, got %v", resultIDs(got))
	}
}

func TestSearch_StopsAtCapAcrossTasks(t *testing.T) {
	products := make([]product.Product, 10)
	for i := range products {
		products[i] = product.Product{ID: string(rune('a' + i)), Color: "black"}
	}
	// Three tasks over the same dense match set; the cap still holds.
	planner := &mockPlanner{tasks: []task.Task{
		{Color: strPtr("black")},
		{Color: strPtr("black")},
		{Color: strPtr("black")},
	}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}},
		&mockIndex{candidates: allRows(10)}, &mockCatalog{products: products})

	got, err := svc.Search(context.Background(), "black everything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > 5 {
		t.Fatalf("cap exceeded: got %d results", len(got))
	}
}

func TestSearch_CustomLimits(t *testing.T) {
	products := make([]product.Product, 6)
	for i := range products {
		products[i] = product.Product{ID: string(rune('a' + i))}
	}
	planner := &mockPlanner{tasks: []task.Task{{}}}
	idx := &mockIndex{candidates: allRows(6)}
	svc := New(planner, &mockEmbedder{vec: []float32{1}}, idx,
		&mockCatalog{products: products}).WithLimits(2, 100)

	got, err := svc.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
	if idx.lastK != 100 {
		t.Errorf("candidate fetch size: got %d, want 100", idx.lastK)
	}
}

func TestSearch_EmbedError_Propagates(t *testing.T) {
	wrapped := errors.New("provider timeout")
	emb := &mockEmbedder{err: wrapped}
	planner := &mockPlanner{tasks: []task.Task{{}}}
	svc := New(planner, emb, &mockIndex{}, &mockCatalog{})

	_, err := svc.Search(context.Background(), "black jeans")
	if !errors.Is(err, wrapped) {
		t.Fatalf("expected embed error to surface, got %v", err)
	}
}

func TestSearch_IndexError_Propagates(t *testing.T) {
	idx := &mockIndex{err: errors.New("corrupt index")}
	planner := &mockPlanner{tasks: []task.Task{{}}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}}, idx, &mockCatalog{})

	if _, err := svc.Search(context.Background(), "black jeans"); err == nil {
		t.Fatal("expected index error to surface")
	}
}

func TestSearch_RowOutOfRange_Fatal(t *testing.T) {
	// The index claims a row the catalog does not have: a build defect
	// that must fail the request, not be skipped.
	idx := &mockIndex{candidates: allRows(3)}
	cat := &mockCatalog{products: []product.Product{{ID: "p1"}}}
	planner := &mockPlanner{tasks: []task.Task{{}}}
	svc := New(planner, &mockEmbedder{vec: []float32{1}}, idx, cat)

	_, err := svc.Search(context.Background(), "black jeans")
	if !errors.Is(err, domain.ErrRowOutOfRange) {
		t.Fatalf("expected ErrRowOutOfRange, got %v", err)
	}
}
