package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"searchpaper/internal/logger"
	"searchpaper/internal/models"
	"searchpaper/internal/search"
	"searchpaper/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var folderFieldsProjection = []string{"name", "description", "bucket", "createdAt"}

// FolderService владеет жизненным циклом папок: каждая папка получает
// собственный бакет при создании и теряет его (вместе с содержимым)
// при удалении.
type FolderService struct {
	engine  *search.Engine
	storage storage.ObjectStorage
}

func NewFolderService(engine *search.Engine, store storage.ObjectStorage) *FolderService {
	return &FolderService{engine: engine, storage: store}
}

// Create выделяет папке свежий бакет со случайным именем и индексирует запись.
func (s *FolderService) Create(ctx context.Context, name, description string) (*models.Folder, error) {
	bucket := uuid.NewString()

	if err := s.storage.CreateBucket(ctx, bucket); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	folder := &models.Folder{
		Name:        name,
		Description: description,
		Bucket:      bucket,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.engine.Index(ctx, search.FoldersIndex, "", folderFields(folder), "")
	if err != nil {
		logger.Log.Error("Бакет создан, но индексация папки не удалась — осиротевший бакет",
			zap.String("bucket", bucket), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}

	folder.ID = id
	return folder, nil
}

func (s *FolderService) Get(ctx context.Context, id string) (*models.Folder, error) {
	fields, err := s.engine.Get(ctx, search.FoldersIndex, id, folderFieldsProjection)
	if errors.Is(err, search.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}
	return folderFromFields(id, fields), nil
}

func (s *FolderService) Count(ctx context.Context, term string) (uint64, error) {
	count, err := s.engine.Count(ctx, search.FoldersIndex, search.NameQuery("name", term))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}
	return count, nil
}

func (s *FolderService) List(ctx context.Context, size, offset int, term string) ([]*models.Folder, error) {
	hits, err := s.engine.Search(ctx, search.FoldersIndex, search.Request{
		Query:  search.NameQuery("name", term),
		Size:   size,
		From:   offset,
		SortBy: []string{"createdAt"},
		Fields: folderFieldsProjection,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}

	folders := make([]*models.Folder, 0, len(hits))
	for _, h := range hits {
		folders = append(folders, folderFromFields(h.ID, h.Fields))
	}
	return folders, nil
}

// ListByIds разрешает пачку folderId в записи папок.
// Порядок не гарантируется, вызывающий индексирует по id.
func (s *FolderService) ListByIds(ctx context.Context, ids []string) ([]*models.Folder, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	hits, err := s.engine.Search(ctx, search.FoldersIndex, search.Request{
		Query:  search.IDsQuery(ids),
		Size:   len(ids),
		Fields: folderFieldsProjection,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}

	folders := make([]*models.Folder, 0, len(hits))
	for _, h := range hits {
		folders = append(folders, folderFromFields(h.ID, h.Fields))
	}
	return folders, nil
}

// Update — полная замена name/description. Бакет и время создания
// неизменяемы: серверные значения всегда берут верх над присланными.
func (s *FolderService) Update(ctx context.Context, id, name, description string) (*models.Folder, error) {
	former, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.Folder{
		ID:          id,
		Name:        name,
		Description: description,
		Bucket:      former.Bucket,
		CreatedAt:   former.CreatedAt,
	}

	if _, err := s.engine.Index(ctx, search.FoldersIndex, id, folderFields(updated), ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}
	return updated, nil
}

// Delete удаляет запись индекса, затем бакет папки со всем содержимым.
// Записи документов, ссылавшиеся на папку, остаются в индексе
// осиротевшими — это известная утечка, её фиксируем в логе.
func (s *FolderService) Delete(ctx context.Context, folder *models.Folder) error {
	if err := s.engine.Delete(ctx, search.FoldersIndex, folder.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}

	if err := s.storage.DeleteBucketWithContents(ctx, folder.Bucket); err != nil {
		logger.Log.Error("Папка удалена из индекса, но бакет удалить не удалось",
			zap.String("folder_id", folder.ID), zap.String("bucket", folder.Bucket), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	logger.Log.Warn("Папка удалена, документы с её folderId остаются в индексе",
		zap.String("folder_id", folder.ID))
	return nil
}

func folderFields(f *models.Folder) map[string]interface{} {
	return map[string]interface{}{
		"name":        f.Name,
		"description": f.Description,
		"bucket":      f.Bucket,
		"createdAt":   f.CreatedAt,
	}
}

func folderFromFields(id string, fields map[string]interface{}) *models.Folder {
	f := &models.Folder{ID: id}
	if v, ok := fields["name"].(string); ok {
		f.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		f.Description = v
	}
	if v, ok := fields["bucket"].(string); ok {
		f.Bucket = v
	}
	if v, ok := fields["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAt = t
		}
	}
	return f
}
