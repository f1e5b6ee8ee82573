package services

import (
	"context"
	"fmt"

	"searchpaper/internal/models"
	"searchpaper/internal/search"
)

// SearchService — полнотекстовый поиск по извлечённому тексту документов
// с подсветкой найденных фрагментов.
type SearchService struct {
	engine *search.Engine
}

func NewSearchService(engine *search.Engine) *SearchService {
	return &SearchService{engine: engine}
}

func (s *SearchService) Count(ctx context.Context, text string) (uint64, error) {
	count, err := s.engine.Count(ctx, search.DocumentsIndex, search.ContentQuery(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}
	return count, nil
}

// Search возвращает тонкие результаты: id, отображаемое имя, время
// загрузки и фрагменты подсветки. Сам извлечённый текст не отдаётся.
func (s *SearchService) Search(ctx context.Context, size, offset int, text string) ([]*models.SearchResult, error) {
	hits, err := s.engine.Search(ctx, search.DocumentsIndex, search.Request{
		Query:     search.ContentQuery(text),
		Size:      size,
		From:      offset,
		Fields:    []string{"untrustedFileName", "uploadDateTime"},
		Highlight: "attachment.content",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}

	results := make([]*models.SearchResult, 0, len(hits))
	for _, h := range hits {
		doc := documentFromFields(h.ID, h.Fields)
		results = append(results, &models.SearchResult{
			ID:                h.ID,
			UntrustedFileName: doc.UntrustedFileName,
			UploadDateTime:    doc.UploadDateTime,
			Highlight:         h.Fragments,
		})
	}
	return results, nil
}
