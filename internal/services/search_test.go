package services

import (
	"context"
	"strings"
	"testing"
)

func TestSearchByContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.documents.Upload(ctx, []byte("quarterly revenue grew by ten percent"), "q1.txt", ""); err != nil {
		t.Fatalf("ошибка загрузки: %v", err)
	}
	if _, err := env.documents.Upload(ctx, []byte("meeting notes about the office move"), "notes.txt", ""); err != nil {
		t.Fatalf("ошибка загрузки: %v", err)
	}

	count, err := env.search.Count(ctx, "revenue")
	if err != nil {
		t.Fatalf("ошибка подсчёта: %v", err)
	}
	if count != 1 {
		t.Fatalf("найдено %d документов, ожидался 1", count)
	}

	results, err := env.search.Search(ctx, 10, 0, "revenue")
	if err != nil {
		t.Fatalf("ошибка поиска: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("результатов %d, ожидался 1", len(results))
	}

	r := results[0]
	if r.UntrustedFileName != "q1.txt" {
		t.Fatalf("найден не тот документ: %q", r.UntrustedFileName)
	}
	if r.UploadDateTime.IsZero() {
		t.Fatal("время загрузки потерялось")
	}
	if len(r.Highlight) == 0 || !strings.Contains(r.Highlight[0], "<span class='info'>revenue</span>") {
		t.Fatalf("нет подсветки найденного терма: %v", r.Highlight)
	}
}

func TestSearchNoMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.documents.Upload(ctx, []byte("plain text"), "a.txt", ""); err != nil {
		t.Fatalf("ошибка загрузки: %v", err)
	}

	results, err := env.search.Search(ctx, 10, 0, "nonexistentterm")
	if err != nil {
		t.Fatalf("ошибка поиска: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("ожидался пустой результат, получено %d", len(results))
	}
}

func TestSearchDoesNotMatchFileNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// терм есть только в имени файла, не в содержимом
	if _, err := env.documents.Upload(ctx, []byte("nothing here"), "budget.txt", ""); err != nil {
		t.Fatalf("ошибка загрузки: %v", err)
	}

	count, err := env.search.Count(ctx, "budget")
	if err != nil {
		t.Fatalf("ошибка подсчёта: %v", err)
	}
	if count != 0 {
		t.Fatalf("поиск по контенту не должен матчить имена: count=%d", count)
	}
}
