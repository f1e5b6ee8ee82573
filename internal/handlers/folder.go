package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"searchpaper/internal/logger"
	"searchpaper/internal/services"
	helpers "searchpaper/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FolderHandler struct {
	service *services.FolderService
}

func NewFolderHandler(service *services.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

type folderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateFolder godoc
// @Summary Создание папки
// @Tags folders
// @Accept json
// @Produce json
// @Param input body folderRequest true "Имя и описание папки"
// @Success 201 {object} models.Folder
// @Failure 400 {string} string "Невалидный JSON"
// @Router /api/folders [post]
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании папки", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	folder, err := h.service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		log.Error("Ошибка при создании папки", zap.String("name", req.Name), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при создании папки")
		return
	}

	log.Info("Папка создана", zap.String("folder_id", folder.ID), zap.String("name", folder.Name))
	helpers.JSON(w, http.StatusCreated, folder)
}

// GetFolder godoc
// @Summary Получение папки по ID
// @Tags folders
// @Produce json
// @Param id path string true "ID папки"
// @Success 200 {object} models.Folder
// @Failure 404 {string} string "Папка не найдена"
// @Router /api/folders/{id} [get]
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	folder, err := h.service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		log.Warn("Папка не найдена", zap.String("folder_id", id))
		helpers.Error(w, http.StatusNotFound, "Папка не найдена")
		return
	}
	if err != nil {
		log.Error("Ошибка получения папки", zap.String("folder_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении папки")
		return
	}

	helpers.JSON(w, http.StatusOK, folder)
}

// ListFolders godoc
// @Summary Список папок (пагинация, фильтр по имени)
// @Tags folders
// @Produce json
// @Param size query int false "Размер страницы" default(7)
// @Param page query int false "Номер страницы" default(0)
// @Param term query string false "Фильтр по имени"
// @Success 200 {array} models.Folder
// @Failure 500 {string} string "Ошибка сервера"
// @Router /api/folders [get]
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	size := queryInt(r, "size", 7, 1)
	page := queryInt(r, "page", 0, 0)
	term := r.URL.Query().Get("term")

	count, err := h.service.Count(r.Context(), term)
	if err != nil {
		log.Error("Ошибка подсчёта папок", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении папок")
		return
	}

	folders, err := h.service.List(r.Context(), size, page*size, term)
	if err != nil {
		log.Error("Ошибка при получении папок", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при получении папок")
		return
	}

	pages := int(math.Ceil(float64(count) / float64(size)))
	w.Header().Set("pages", strconv.Itoa(pages))
	helpers.JSON(w, http.StatusOK, folders)
}

// CountFolders godoc
// @Summary Количество папок
// @Tags folders
// @Produce json
// @Param term query string false "Фильтр по имени"
// @Success 200 {integer} int
// @Failure 500 {string} string "Ошибка сервера"
// @Router /api/folders/count [get]
func (h *FolderHandler) CountFolders(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	term := r.URL.Query().Get("term")

	count, err := h.service.Count(r.Context(), term)
	if err != nil {
		log.Error("Ошибка подсчёта папок", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при подсчёте папок")
		return
	}

	helpers.JSON(w, http.StatusOK, count)
}

// UpdateFolder godoc
// @Summary Обновление имени и описания папки
// @Tags folders
// @Accept json
// @Param id path string true "ID папки"
// @Param input body folderRequest true "Новые имя и описание"
// @Success 204 {string} string "Папка обновлена"
// @Failure 400 {string} string "Невалидный JSON"
// @Failure 404 {string} string "Папка не найдена"
// @Router /api/folders/{id} [put]
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при обновлении папки", zap.String("folder_id", id), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if _, err := h.service.Update(r.Context(), id, req.Name, req.Description); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Warn("Папка не найдена для обновления", zap.String("folder_id", id))
			helpers.Error(w, http.StatusNotFound, "Папка не найдена")
			return
		}
		log.Error("Ошибка при обновлении папки", zap.String("folder_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при обновлении папки")
		return
	}

	log.Info("Папка обновлена", zap.String("folder_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder godoc
// @Summary Удаление папки вместе с её бакетом
// @Tags folders
// @Param id path string true "ID папки"
// @Success 204 {string} string "Папка удалена"
// @Failure 404 {string} string "Папка не найдена"
// @Router /api/folders/{id} [delete]
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	folder, err := h.service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		log.Warn("Папка не найдена для удаления", zap.String("folder_id", id))
		helpers.Error(w, http.StatusNotFound, "Папка не найдена")
		return
	}
	if err != nil {
		log.Error("Ошибка получения папки для удаления", zap.String("folder_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при удалении папки")
		return
	}

	if err := h.service.Delete(r.Context(), folder); err != nil {
		log.Error("Ошибка при удалении папки", zap.String("folder_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при удалении папки")
		return
	}

	log.Info("Папка удалена", zap.String("folder_id", id))
	w.WriteHeader(http.StatusNoContent)
}
