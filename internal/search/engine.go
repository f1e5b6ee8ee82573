package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
)

const (
	DocumentsIndex = "documents"
	FoldersIndex   = "folders"
)

var (
	// ErrNotFound — документа с таким id нет в индексе.
	ErrNotFound = errors.New("search: document not found")
	// ErrUnknownIndex — обращение к незарегистрированному индексу.
	ErrUnknownIndex = errors.New("search: unknown index")
	// ErrPipelineNotFound — пайплайн с таким именем не зарегистрирован.
	ErrPipelineNotFound = errors.New("search: ingest pipeline not found")
)

// Engine — поисковый движок поверх bleve: два именованных индекса
// (documents и folders) плюс реестр пайплайнов индексации.
type Engine struct {
	indexes map[string]bleve.Index

	mu        sync.RWMutex
	pipelines map[string]Pipeline
}

// NewEngine открывает (или создаёт) индексы в dir.
// Пустой dir означает индексы в памяти — для тестов и локального запуска.
func NewEngine(dir string) (*Engine, error) {
	if err := defineInfoHighlighter(); err != nil {
		return nil, fmt.Errorf("не удалось определить подсветку: %w", err)
	}

	e := &Engine{
		indexes:   make(map[string]bleve.Index),
		pipelines: make(map[string]Pipeline),
	}

	mappings := map[string]mapping.IndexMapping{
		DocumentsIndex: documentsMapping(),
		FoldersIndex:   foldersMapping(),
	}

	for name, m := range mappings {
		idx, err := openIndex(dir, name, m)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("индекс %s: %w", name, err)
		}
		e.indexes[name] = idx
	}

	return e, nil
}

func openIndex(dir, name string, m mapping.IndexMapping) (bleve.Index, error) {
	if dir == "" {
		return bleve.NewMemOnly(m)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, m)
	}
	return idx, err
}

func (e *Engine) Close() error {
	var firstErr error
	for _, idx := range e.indexes {
		if err := idx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (e *Engine) index(name string) (bleve.Index, error) {
	idx, ok := e.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndex, name)
	}
	return idx, nil
}

// Hit — один результат поиска: id, сохранённые поля и фрагменты подсветки.
type Hit struct {
	ID        string
	Fields    map[string]interface{}
	Fragments []string
}

// Request — параметры поиска по индексу.
type Request struct {
	Query  query.Query
	Size   int
	From   int
	SortBy []string
	// Fields — проекция сохранённых полей; тонкая выдача без контента.
	Fields []string
	// Highlight — поле для подсветки; пусто — без подсветки.
	Highlight string
}

// Index пишет документ в индекс, прогнав его через пайплайн (если задан).
// Пустой id означает «назначить новый». Запись видна сразу же:
// bleve применяет изменения синхронно, отдельного refresh не требуется.
func (e *Engine) Index(ctx context.Context, index, id string, fields map[string]interface{}, pipeline string) (string, error) {
	idx, err := e.index(index)
	if err != nil {
		return "", err
	}

	if pipeline != "" {
		p, err := e.Pipeline(pipeline)
		if err != nil {
			return "", err
		}
		fields, err = p.Run(fields)
		if err != nil {
			return "", err
		}
	}

	if id == "" {
		id = uuid.NewString()
	}

	if err := idx.Index(id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Get возвращает сохранённые поля документа по id (проекция fields).
func (e *Engine) Get(ctx context.Context, index, id string, fields []string) (map[string]interface{}, error) {
	idx, err := e.index(index)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequest(query.NewDocIDQuery([]string{id}))
	req.Size = 1
	req.Fields = fields

	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, ErrNotFound
	}
	return res.Hits[0].Fields, nil
}

// Count считает документы по тому же предикату, что и Search:
// ceil(count/size) всегда равен числу страниц листинга.
func (e *Engine) Count(ctx context.Context, index string, q query.Query) (uint64, error) {
	idx, err := e.index(index)
	if err != nil {
		return 0, err
	}

	req := bleve.NewSearchRequest(q)
	req.Size = 0

	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

func (e *Engine) Search(ctx context.Context, index string, r Request) ([]Hit, error) {
	idx, err := e.index(index)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(r.Query, r.Size, r.From, false)
	req.Fields = r.Fields
	if len(r.SortBy) > 0 {
		req.SortBy(r.SortBy)
	}
	if r.Highlight != "" {
		hl := bleve.NewHighlightWithStyle(InfoHighlighter)
		hl.AddField(r.Highlight)
		req.Highlight = hl
	}

	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Fields: h.Fields}
		if r.Highlight != "" {
			hit.Fragments = h.Fragments[r.Highlight]
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Delete удаляет документ из индекса; отсутствующий id — no-op.
func (e *Engine) Delete(ctx context.Context, index, id string) error {
	idx, err := e.index(index)
	if err != nil {
		return err
	}
	return idx.Delete(id)
}
