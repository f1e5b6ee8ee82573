package handlers

import (
	"math"
	"net/http"
	"strconv"

	"searchpaper/internal/logger"
	"searchpaper/internal/services"
	helpers "searchpaper/internal/utils/helpres"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service *services.SearchService
}

func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Полнотекстовый поиск по содержимому документов
// @Tags search
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param size query int false "Размер страницы" default(7)
// @Param page query int false "Номер страницы" default(0)
// @Success 200 {array} models.SearchResult
// @Failure 400 {string} string "Пустой запрос"
// @Failure 500 {string} string "Ошибка сервера"
// @Router /api/search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	q := r.URL.Query().Get("q")
	if q == "" {
		log.Warn("Пустой поисковый запрос")
		helpers.Error(w, http.StatusBadRequest, "Параметр q обязателен")
		return
	}

	size := queryInt(r, "size", 7, 1)
	page := queryInt(r, "page", 0, 0)

	count, err := h.service.Count(r.Context(), q)
	if err != nil {
		log.Error("Ошибка подсчёта результатов поиска", zap.String("q", q), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка поиска")
		return
	}

	results, err := h.service.Search(r.Context(), size, page*size, q)
	if err != nil {
		log.Error("Ошибка поиска", zap.String("q", q), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка поиска")
		return
	}

	log.Info("Поиск выполнен", zap.String("q", q), zap.Uint64("total", count))

	pages := int(math.Ceil(float64(count) / float64(size)))
	w.Header().Set("pages", strconv.Itoa(pages))
	helpers.JSON(w, http.StatusOK, results)
}
