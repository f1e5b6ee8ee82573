package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"searchpaper/internal/logger"
	"searchpaper/internal/search"

	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"
)

// Zip пишет в w архив со всеми документами (опционально одной папки).
// Архив собирается потоково, по одному объекту за раз: листинг, затем
// чтение и запись каждой записи прямо в w. Недоступный объект просто
// пропускается — экспорт best-effort, а не всё-или-ничего. Фатальна
// только ошибка самого листинга.
func (s *DocumentService) Zip(ctx context.Context, folderID string, w io.Writer) error {
	var q query.Query
	if folderID != "" {
		q = search.FolderScopeQuery(folderID)
	} else {
		q = search.NameQuery("untrustedFileName", "")
	}

	count, err := s.engine.Count(ctx, search.DocumentsIndex, q)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportListingFailed, err)
	}
	if count == 0 {
		zw := zip.NewWriter(w)
		return zw.Close()
	}

	hits, err := s.engine.Search(ctx, search.DocumentsIndex, search.Request{
		Query:  q,
		Size:   int(count),
		SortBy: []string{"uploadDateTime"},
		Fields: thinDocumentFields,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportListingFailed, err)
	}

	zw := zip.NewWriter(w)
	seen := make(map[string]int)
	used := make(map[string]struct{})

	for _, h := range hits {
		doc := documentFromFields(h.ID, h.Fields)

		data, err := s.GetBytes(ctx, doc)
		if err != nil {
			logger.Log.Warn("Экспорт: объект недоступен, запись пропущена",
				zap.String("doc_id", doc.ID), zap.String("key", doc.TrustedFileName), zap.Error(err))
			continue
		}

		// в архиве — отображаемое имя, а не ключ хранилища
		base := doc.UntrustedFileName
		if base == "" {
			base = doc.TrustedFileName
		}
		// суффикс подбирается до свободного имени: документ с буквальным
		// именем "1_x.txt" не должен столкнуться с переименованным дублем
		var name string
		for {
			n := seen[base]
			seen[base] = n + 1
			if n == 0 {
				name = base
			} else {
				name = fmt.Sprintf("%d_%s", n, base)
			}
			if _, taken := used[name]; !taken {
				break
			}
		}
		used[name] = struct{}{}

		entry, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := entry.Write(data); err != nil {
			return err
		}
	}

	return zw.Close()
}
