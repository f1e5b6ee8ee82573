package handlers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"searchpaper/internal/handlers"
	"searchpaper/internal/routes"
	"searchpaper/internal/search"
	"searchpaper/internal/services"
	"searchpaper/internal/storage"

	"github.com/gorilla/mux"
)

const testBucket = "default-bucket"

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	engine, err := search.NewEngine("")
	if err != nil {
		t.Fatalf("ошибка создания движка: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	if err := engine.EnsurePipeline(search.DefaultAttachmentPipeline); err != nil {
		t.Fatalf("ошибка регистрации пайплайна: %v", err)
	}

	store := storage.NewMemory()
	if err := store.CreateBucket(context.Background(), testBucket); err != nil {
		t.Fatalf("ошибка создания бакета: %v", err)
	}

	folderService := services.NewFolderService(engine, store)
	docService := services.NewDocumentService(engine, store, folderService, testBucket)
	searchService := services.NewSearchService(engine)

	router := mux.NewRouter()
	routes.InitRoutes(router,
		handlers.NewDocumentHandler(docService, folderService),
		handlers.NewFolderHandler(folderService),
		handlers.NewSearchHandler(searchService),
	)
	return router
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("ошибка формы: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("ошибка записи формы: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func uploadViaAPI(t *testing.T, router *mux.Router, path, fileName, content string) string {
	t.Helper()

	body, contentType := multipartUpload(t, fileName, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("загрузка %s: статус %d, тело %s", fileName, rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный ответ загрузки: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID == "" {
		t.Fatalf("загрузка не вернула документ: %s", rec.Body.String())
	}
	return resp.Data[0].ID
}

func TestUploadListDownloadDelete(t *testing.T) {
	router := newTestRouter(t)

	id := uploadViaAPI(t, router, "/api/documents", "hello.txt", "hello body")

	// листинг с заголовком pages
	req := httptest.NewRequest(http.MethodGet, "/api/documents?size=7&page=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("листинг: статус %d", rec.Code)
	}
	if rec.Header().Get("pages") != "1" {
		t.Fatalf("заголовок pages = %q, ожидался 1", rec.Header().Get("pages"))
	}

	// скачивание отдаёт исходные байты и отображаемое имя
	req = httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("скачивание: статус %d", rec.Code)
	}
	if rec.Body.String() != "hello body" {
		t.Fatalf("скачаны не те байты: %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "hello.txt") {
		t.Fatalf("нет имени файла в Content-Disposition: %q", rec.Header().Get("Content-Disposition"))
	}

	// удаление, затем 404
	req = httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("удаление: статус %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("после удаления ожидался 404, статус %d", rec.Code)
	}
}

func TestUploadIntoUnknownFolder(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "a.txt", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/documents/no-such-folder", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, статус %d", rec.Code)
	}
}

func TestZipRouteNotShadowedByID(t *testing.T) {
	router := newTestRouter(t)

	uploadViaAPI(t, router, "/api/documents", "a.txt", "alpha")
	uploadViaAPI(t, router, "/api/documents", "b.txt", "beta")

	// "zip" не должен разбираться как {id}
	req := httptest.NewRequest(http.MethodGet, "/api/documents/zip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("экспорт: статус %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/zip" {
		t.Fatalf("Content-Type %q", rec.Header().Get("Content-Type"))
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("архив не читается: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("в архиве %d записей, ожидалось 2", len(zr.File))
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	uploadViaAPI(t, router, "/api/documents", "q1.txt", "quarterly revenue grew")

	// пустой запрос отклоняется
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("пустой q: статус %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/search?q=revenue", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("поиск: статус %d", rec.Code)
	}
	if rec.Header().Get("pages") != "1" {
		t.Fatalf("заголовок pages = %q", rec.Header().Get("pages"))
	}
	if !strings.Contains(rec.Body.String(), "<span class='info'>revenue</span>") {
		t.Fatalf("нет подсветки в ответе: %s", rec.Body.String())
	}
}

func TestFolderCRUDviaAPI(t *testing.T) {
	router := newTestRouter(t)

	// создание
	req := httptest.NewRequest(http.MethodPost, "/api/folders",
		strings.NewReader(`{"name":"Invoices","description":"счета"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("создание папки: статус %d, тело %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			ID     string `json:"id"`
			Bucket string `json:"bucket"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("невалидный ответ: %v", err)
	}
	if created.Data.ID == "" || created.Data.Bucket == "" {
		t.Fatalf("папка без id или бакета: %s", rec.Body.String())
	}

	// загрузка в папку и скоуп листинга
	uploadViaAPI(t, router, "/api/documents/"+created.Data.ID, "inside.txt", "text")
	uploadViaAPI(t, router, "/api/documents", "outside.txt", "text")

	req = httptest.NewRequest(http.MethodGet, "/api/documents?folderId="+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "inside.txt") || strings.Contains(rec.Body.String(), "outside.txt") {
		t.Fatalf("скоуп по папке не применился: %s", rec.Body.String())
	}
	// листинг обогащён папкой
	if !strings.Contains(rec.Body.String(), `"name":"Invoices"`) {
		t.Fatalf("нет данных папки в листинге: %s", rec.Body.String())
	}

	// обновление
	req = httptest.NewRequest(http.MethodPut, "/api/folders/"+created.Data.ID,
		strings.NewReader(`{"name":"Renamed","description":""}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("обновление: статус %d", rec.Code)
	}

	// счётчик
	req = httptest.NewRequest(http.MethodGet, "/api/folders/count", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"data":1`) {
		t.Fatalf("счётчик папок: %s", rec.Body.String())
	}

	// удаление, затем 404
	req = httptest.NewRequest(http.MethodDelete, "/api/folders/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("удаление папки: статус %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/folders/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("после удаления ожидался 404, статус %d", rec.Code)
	}
}
