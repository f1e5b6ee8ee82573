package search

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultAttachmentPipeline — имя пайплайна индексации документов.
// Пайплайн читает contentBase64, извлекает текст в attachment.content
// и удаляет contentBase64 до того, как документ станет долговечным.
const DefaultAttachmentPipeline = "AttachmentPipeline"

// Pipeline — шаг предобработки документа перед индексацией.
type Pipeline interface {
	Run(fields map[string]interface{}) (map[string]interface{}, error)
}

// Pipeline возвращает зарегистрированный пайплайн по имени.
func (e *Engine) Pipeline(name string) (Pipeline, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPipelineNotFound, name)
	}
	return p, nil
}

// EnsurePipeline регистрирует пайплайн с данным именем, если его ещё нет.
// Вызывается при старте: если пайплайн невозможно обеспечить, процесс
// не должен принимать трафик.
func (e *Engine) EnsurePipeline(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pipelines[name]; ok {
		return nil
	}
	if name != DefaultAttachmentPipeline {
		return fmt.Errorf("%w: %s", ErrPipelineNotFound, name)
	}

	e.pipelines[name] = &attachmentPipeline{
		sourceField: "contentBase64",
		targetField: "attachment",
	}
	return nil
}

type attachmentPipeline struct {
	sourceField string
	targetField string
}

func (p *attachmentPipeline) Run(fields map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	raw, _ := out[p.sourceField].(string)
	delete(out, p.sourceField)

	content := ""
	if raw != "" {
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("пайплайн %s: некорректный base64: %w", DefaultAttachmentPipeline, err)
		}
		content = ExtractText(data)
	}

	out[p.targetField] = map[string]interface{}{"content": content}
	return out, nil
}

// ExtractText извлекает простой текст из сырых байтов документа.
// HTML разбирается целиком, текстовые форматы берутся как есть,
// бинарные без валидного UTF-8 дают пустой контент (документ остаётся
// в индексе, но не ищется по содержимому).
func ExtractText(data []byte) string {
	contentType := http.DetectContentType(data)

	if strings.HasPrefix(contentType, "text/html") {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err == nil {
			doc.Find("script,style").Remove()
			return strings.Join(strings.Fields(doc.Text()), " ")
		}
	}

	if strings.HasPrefix(contentType, "text/") {
		return string(data)
	}

	if utf8.Valid(data) {
		return string(data)
	}
	return ""
}
