package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"searchpaper/internal/logger"
	"searchpaper/internal/models"
	"searchpaper/internal/search"
	"searchpaper/internal/storage"
	"searchpaper/internal/utils"

	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"
)

// maxKeyAttempts — сколько раз пробуем новый ключ при коллизии записи.
const maxKeyAttempts = 3

// thinDocumentFields — проекция без контента: attachment.content и
// contentBase64 никогда не возвращаются из листинга/чтения.
var thinDocumentFields = []string{"trustedFileName", "untrustedFileName", "uploadDateTime", "folderId"}

// DocumentService синхронизирует две стороны документа: байты в объектном
// хранилище и метаданные с извлечённым текстом в поисковом индексе.
// Порядок фиксирован: при создании сначала объект, потом индекс; при
// удалении сначала индекс, потом объект. Расхождения не откатываются,
// а логируются с бакетом, ключом и id.
type DocumentService struct {
	engine        *search.Engine
	storage       storage.ObjectStorage
	folders       *FolderService
	defaultBucket string
}

func NewDocumentService(engine *search.Engine, store storage.ObjectStorage, folders *FolderService, defaultBucket string) *DocumentService {
	return &DocumentService{
		engine:        engine,
		storage:       store,
		folders:       folders,
		defaultBucket: defaultBucket,
	}
}

// Upload кладёт байты под свежим доверенным ключом в бакет папки
// (или в бакет по умолчанию) и индексирует документ через пайплайн.
func (s *DocumentService) Upload(ctx context.Context, file []byte, fileName, folderID string) (*models.Document, error) {
	bucket := s.defaultBucket
	if folderID != "" {
		folder, err := s.folders.Get(ctx, folderID)
		if err != nil {
			return nil, err
		}
		bucket = folder.Bucket
	}

	var trusted string
	var putErr error
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		trusted = utils.GenerateTrustedFileName()
		putErr = s.storage.Put(ctx, bucket, trusted, file)
		if !errors.Is(putErr, storage.ErrKeyExists) {
			break
		}
		logger.Log.Warn("Коллизия ключа хранилища, генерируем новый",
			zap.String("bucket", bucket), zap.String("key", trusted))
	}
	if errors.Is(putErr, storage.ErrKeyExists) {
		return nil, ErrStorageKeyCollision
	}
	if putErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, putErr)
	}

	doc := &models.Document{
		TrustedFileName:   trusted,
		UntrustedFileName: fileName,
		ContentBase64:     base64.StdEncoding.EncodeToString(file),
		UploadDateTime:    time.Now().UTC(),
		FolderID:          folderID,
	}

	id, err := s.engine.Index(ctx, search.DocumentsIndex, "", documentFields(doc), search.DefaultAttachmentPipeline)
	if err != nil {
		// объект уже записан: осиротевший блоб, чинится только руками
		logger.Log.Error("Объект записан, но индексация не удалась — осиротевший блоб",
			zap.String("bucket", bucket), zap.String("key", trusted), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}

	doc.ID = id
	doc.ContentBase64 = ""
	return doc, nil
}

// filter — общий предикат Count и List: ceil(Count/size) обязан совпадать
// с реальным числом страниц листинга при том же фильтре.
func (s *DocumentService) filter(term, folderID string) query.Query {
	if folderID != "" {
		return search.ScopedNameQuery("untrustedFileName", term, folderID)
	}
	return search.NameQuery("untrustedFileName", term)
}

func (s *DocumentService) Count(ctx context.Context, term, folderID string) (uint64, error) {
	count, err := s.engine.Count(ctx, search.DocumentsIndex, s.filter(term, folderID))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}
	return count, nil
}

func (s *DocumentService) List(ctx context.Context, size, offset int, term, folderID string) ([]*models.Document, error) {
	hits, err := s.engine.Search(ctx, search.DocumentsIndex, search.Request{
		Query:  s.filter(term, folderID),
		Size:   size,
		From:   offset,
		SortBy: []string{"uploadDateTime"},
		Fields: thinDocumentFields,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}

	docs := make([]*models.Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, documentFromFields(h.ID, h.Fields))
	}
	return docs, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	fields, err := s.engine.Get(ctx, search.DocumentsIndex, id, thinDocumentFields)
	if errors.Is(err, search.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexReadFailed, err)
	}
	return documentFromFields(id, fields), nil
}

// GetBytes читает байты документа из бакета его папки.
func (s *DocumentService) GetBytes(ctx context.Context, doc *models.Document) ([]byte, error) {
	bucket, err := s.resolveBucket(ctx, doc.FolderID)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Get(ctx, bucket, doc.TrustedFileName)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	return data, nil
}

// Delete удаляет сначала запись индекса (после этого документ уже не
// листится), затем объект. Неудачное удаление объекта — допустимая
// утечка: блоб осиротел, логируем и не ретраим.
func (s *DocumentService) Delete(ctx context.Context, doc *models.Document) error {
	if err := s.engine.Delete(ctx, search.DocumentsIndex, doc.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}

	bucket, err := s.resolveBucket(ctx, doc.FolderID)
	if err != nil {
		logger.Log.Warn("Запись индекса удалена, бакет документа не разрешился — блоб остаётся",
			zap.String("doc_id", doc.ID), zap.String("key", doc.TrustedFileName),
			zap.String("folder_id", doc.FolderID), zap.Error(err))
		return nil
	}

	if err := s.storage.Delete(ctx, bucket, doc.TrustedFileName); err != nil {
		logger.Log.Error("Запись индекса удалена, но объект удалить не удалось — осиротевший блоб",
			zap.String("bucket", bucket), zap.String("key", doc.TrustedFileName),
			zap.String("doc_id", doc.ID), zap.Error(err))
	}
	return nil
}

func (s *DocumentService) resolveBucket(ctx context.Context, folderID string) (string, error) {
	if folderID == "" {
		return s.defaultBucket, nil
	}
	folder, err := s.folders.Get(ctx, folderID)
	if err != nil {
		return "", err
	}
	return folder.Bucket, nil
}

func documentFields(d *models.Document) map[string]interface{} {
	return map[string]interface{}{
		"trustedFileName":   d.TrustedFileName,
		"untrustedFileName": d.UntrustedFileName,
		"contentBase64":     d.ContentBase64,
		"uploadDateTime":    d.UploadDateTime,
		"folderId":          d.FolderID,
	}
}

func documentFromFields(id string, fields map[string]interface{}) *models.Document {
	d := &models.Document{ID: id}
	if v, ok := fields["trustedFileName"].(string); ok {
		d.TrustedFileName = v
	}
	if v, ok := fields["untrustedFileName"].(string); ok {
		d.UntrustedFileName = v
	}
	if v, ok := fields["folderId"].(string); ok {
		d.FolderID = v
	}
	if v, ok := fields["uploadDateTime"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			d.UploadDateTime = t
		}
	}
	return d
}
