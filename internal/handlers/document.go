package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"searchpaper/internal/logger"
	"searchpaper/internal/models"
	"searchpaper/internal/services"
	helpers "searchpaper/internal/utils/helpres"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	service       *services.DocumentService
	folderService *services.FolderService
}

func NewDocumentHandler(docService *services.DocumentService, folderService *services.FolderService) *DocumentHandler {
	return &DocumentHandler{
		service:       docService,
		folderService: folderService,
	}
}

// элемент листинга: документ плюс разрешённая папка
type documentListItem struct {
	*models.Document
	Folder *models.Folder `json:"folder,omitempty"`
}

// UploadDocuments godoc
// @Summary Загрузка документов (опционально в папку)
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файлы документов"
// @Param folderId path string false "ID папки"
// @Success 201 {array} models.Document
// @Failure 400 {string} string "Ошибка загрузки"
// @Failure 404 {string} string "Папка не найдена"
// @Router /api/documents [post]
func (h *DocumentHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	folderID := mux.Vars(r)["folderId"]

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Warn("Ошибка разбора формы при загрузке документа", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Ошибка разбора формы")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		log.Warn("Файл не найден при загрузке")
		helpers.Error(w, http.StatusBadRequest, "Файл не найден")
		return
	}

	uploaded := make([]*models.Document, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			log.Warn("Не удалось открыть файл из формы", zap.String("filename", fh.Filename), zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, "Не удалось прочитать файл")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Warn("Не удалось прочитать файл из формы", zap.String("filename", fh.Filename), zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, "Не удалось прочитать файл")
			return
		}

		doc, err := h.service.Upload(r.Context(), data, fh.Filename, folderID)
		if errors.Is(err, services.ErrNotFound) {
			log.Warn("Папка для загрузки не найдена", zap.String("folder_id", folderID))
			helpers.Error(w, http.StatusNotFound, "Папка не найдена")
			return
		}
		if err != nil {
			log.Error("Ошибка при загрузке документа", zap.String("filename", fh.Filename), zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка при загрузке документа")
			return
		}

		log.Info("Документ загружен",
			zap.String("doc_id", doc.ID),
			zap.String("filename", doc.UntrustedFileName),
			zap.String("folder_id", folderID))
		uploaded = append(uploaded, doc)
	}

	helpers.JSON(w, http.StatusCreated, uploaded)
}

// ListDocuments godoc
// @Summary Список документов (пагинация, фильтр по имени и папке)
// @Tags documents
// @Produce json
// @Param size query int false "Размер страницы" default(7)
// @Param page query int false "Номер страницы" default(0)
// @Param term query string false "Фильтр по имени файла"
// @Param folderId query string false "ID папки"
// @Success 200 {array} models.Document
// @Failure 500 {string} string "Ошибка сервера"
// @Router /api/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	size := queryInt(r, "size", 7, 1)
	page := queryInt(r, "page", 0, 0)
	term := r.URL.Query().Get("term")
	folderID := r.URL.Query().Get("folderId")

	count, err := h.service.Count(r.Context(), term, folderID)
	if err != nil {
		log.Error("Ошибка подсчёта документов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении документов")
		return
	}

	docs, err := h.service.List(r.Context(), size, page*size, term, folderID)
	if err != nil {
		log.Error("Ошибка при получении документов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении документов")
		return
	}

	items := h.withFolders(r, docs)

	pages := int(math.Ceil(float64(count) / float64(size)))
	w.Header().Set("pages", strconv.Itoa(pages))
	helpers.JSON(w, http.StatusOK, items)
}

// withFolders разрешает folderId страницы в записи папок одной пачкой.
func (h *DocumentHandler) withFolders(r *http.Request, docs []*models.Document) []documentListItem {
	log := logger.WithCtx(r.Context())

	uniq := make(map[string]struct{})
	for _, d := range docs {
		if d.FolderID != "" {
			uniq[d.FolderID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(uniq))
	for id := range uniq {
		ids = append(ids, id)
	}

	byID := make(map[string]*models.Folder, len(ids))
	if len(ids) > 0 {
		folders, err := h.folderService.ListByIds(r.Context(), ids)
		if err != nil {
			// осиротевшие ссылки и ошибки индекса листинг не валят
			log.Warn("Не удалось разрешить папки документов", zap.Error(err))
		}
		for _, f := range folders {
			byID[f.ID] = f
		}
	}

	items := make([]documentListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, documentListItem{Document: d, Folder: byID[d.FolderID]})
	}
	return items
}

// DownloadDocument godoc
// @Summary Скачать документ по ID
// @Tags documents
// @Produce octet-stream
// @Param id path string true "ID документа"
// @Success 200 {file} file
// @Failure 404 {string} string "Документ не найден"
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	doc, err := h.service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		log.Warn("Документ не найден", zap.String("doc_id", id))
		helpers.Error(w, http.StatusNotFound, "Документ не найден")
		return
	}
	if err != nil {
		log.Error("Ошибка получения документа", zap.String("doc_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении документа")
		return
	}

	data, err := h.service.GetBytes(r.Context(), doc)
	if errors.Is(err, services.ErrNotFound) {
		log.Warn("Объект документа не найден в хранилище",
			zap.String("doc_id", id), zap.String("key", doc.TrustedFileName))
		helpers.Error(w, http.StatusNotFound, "Документ не найден")
		return
	}
	if err != nil {
		log.Error("Ошибка чтения объекта документа", zap.String("doc_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при чтении документа")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(doc.UntrustedFileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.UntrustedFileName))
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// DeleteDocument godoc
// @Summary Удаление документа
// @Tags documents
// @Param id path string true "ID документа"
// @Success 204 {string} string "Документ удалён"
// @Failure 404 {string} string "Документ не найден"
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	doc, err := h.service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		log.Warn("Документ не найден для удаления", zap.String("doc_id", id))
		helpers.Error(w, http.StatusNotFound, "Документ не найден")
		return
	}
	if err != nil {
		log.Error("Ошибка получения документа для удаления", zap.String("doc_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при удалении")
		return
	}

	if err := h.service.Delete(r.Context(), doc); err != nil {
		log.Error("Ошибка при удалении документа", zap.String("doc_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при удалении")
		return
	}

	log.Info("Документ удалён", zap.String("doc_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ZipDocuments godoc
// @Summary Экспорт документов одним zip-архивом
// @Tags documents
// @Produce octet-stream
// @Param folderId path string false "ID папки"
// @Success 200 {file} file
// @Failure 500 {string} string "Ошибка экспорта"
// @Router /api/documents/zip [get]
func (h *DocumentHandler) ZipDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	folderID := mux.Vars(r)["folderId"]

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", uuid.NewString()))

	if err := h.service.Zip(r.Context(), folderID, w); err != nil {
		// листинг падает до первой записи в w, статус ещё не отправлен
		if errors.Is(err, services.ErrExportListingFailed) {
			log.Error("Экспорт: листинг документов не удался", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка экспорта")
			return
		}
		log.Error("Экспорт: архив оборван", zap.String("folder_id", folderID), zap.Error(err))
		return
	}

	log.Info("Экспорт завершён", zap.String("folder_id", folderID))
}

func queryInt(r *http.Request, name string, def, min int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return def
	}
	return n
}
