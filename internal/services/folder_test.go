package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFolderCreateAllocatesBucket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "Invoices", "счета за март")
	if err != nil {
		t.Fatalf("ошибка создания папки: %v", err)
	}
	if folder.ID == "" || folder.Bucket == "" {
		t.Fatalf("id и бакет должны быть назначены: %+v", folder)
	}
	if folder.CreatedAt.IsZero() {
		t.Fatal("время создания не проставлено")
	}

	exists, err := env.store.BucketExists(ctx, folder.Bucket)
	if err != nil || !exists {
		t.Fatalf("бакет папки не создан: exists=%v err=%v", exists, err)
	}

	got, err := env.folders.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ошибка чтения папки: %v", err)
	}
	if got.Name != "Invoices" || got.Bucket != folder.Bucket {
		t.Fatalf("прочитана не та папка: %+v", got)
	}
}

func TestFolderGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.folders.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено: %v", err)
	}
}

func TestFolderListAndCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	names := []string{"Invoices", "Reports", "Invitations"}
	for _, n := range names {
		if _, err := env.folders.Create(ctx, n, ""); err != nil {
			t.Fatalf("ошибка создания %s: %v", n, err)
		}
	}

	count, err := env.folders.Count(ctx, "")
	if err != nil {
		t.Fatalf("ошибка подсчёта: %v", err)
	}
	if count != 3 {
		t.Fatalf("найдено %d папок, ожидалось 3", count)
	}

	folders, err := env.folders.List(ctx, 10, 0, "inv")
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("по префиксу найдено %d, ожидалось 2", len(folders))
	}
}

func TestFolderListByIds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, _ := env.folders.Create(ctx, "A", "")
	b, _ := env.folders.Create(ctx, "B", "")
	if _, err := env.folders.Create(ctx, "C", ""); err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}

	folders, err := env.folders.ListByIds(ctx, []string{a.ID, b.ID, "no-such-id"})
	if err != nil {
		t.Fatalf("ошибка пакетного чтения: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("разрешено %d папок, ожидалось 2", len(folders))
	}

	// пустой ввод не трогает индекс
	folders, err = env.folders.ListByIds(ctx, nil)
	if err != nil || folders != nil {
		t.Fatalf("пустой ввод: folders=%v err=%v", folders, err)
	}
}

func TestFolderUpdatePreservesBucketAndCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "Old", "old description")
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}

	updated, err := env.folders.Update(ctx, folder.ID, "New", "new description")
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if updated.Name != "New" || updated.Description != "new description" {
		t.Fatalf("поля не обновились: %+v", updated)
	}
	if updated.Bucket != folder.Bucket {
		t.Fatalf("бакет изменился: %q -> %q", folder.Bucket, updated.Bucket)
	}
	// индекс хранит время с точностью до секунды
	if updated.CreatedAt.IsZero() || updated.CreatedAt.Sub(folder.CreatedAt).Abs() > time.Second {
		t.Fatalf("время создания потерялось: %v -> %v", folder.CreatedAt, updated.CreatedAt)
	}

	got, err := env.folders.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ошибка чтения после обновления: %v", err)
	}
	if got.Name != "New" || got.Bucket != folder.Bucket {
		t.Fatalf("обновление не сохранилось: %+v", got)
	}
}

func TestFolderUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.folders.Update(context.Background(), "no-such-id", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено: %v", err)
	}
}

func TestFolderDeleteRemovesBucketWithContents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "Doomed", "")
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	if _, err := env.documents.Upload(ctx, []byte("x"), "inside.txt", folder.ID); err != nil {
		t.Fatalf("ошибка загрузки в папку: %v", err)
	}

	if err := env.folders.Delete(ctx, folder); err != nil {
		t.Fatalf("ошибка удаления папки: %v", err)
	}

	if _, err := env.folders.Get(ctx, folder.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("папка должна пропасть из индекса: %v", err)
	}
	exists, _ := env.store.BucketExists(ctx, folder.Bucket)
	if exists {
		t.Fatal("бакет папки должен быть удалён вместе с содержимым")
	}
}
