package search

import (
	"sync"

	"github.com/blevesearch/bleve/v2"
	htmlFormatter "github.com/blevesearch/bleve/v2/search/highlight/format/html"
	simpleFragmenter "github.com/blevesearch/bleve/v2/search/highlight/fragmenter/simple"
	simpleHighlighter "github.com/blevesearch/bleve/v2/search/highlight/highlighter/simple"
)

const (
	// InfoHighlighter — имя подсветки, оборачивающей совпадения маркером.
	InfoHighlighter = "info"

	HighlightPreTag  = "<span class='info'>"
	HighlightPostTag = "</span>"

	infoFormatter = "infoTags"
)

var (
	highlighterOnce sync.Once
	highlighterErr  error
)

// defineInfoHighlighter регистрирует в кэше bleve html-форматтер с нашими
// маркерами и подсветку поверх него. Регистрация глобальная, поэтому один раз.
func defineInfoHighlighter() error {
	highlighterOnce.Do(func() {
		_, err := bleve.Config.Cache.DefineFragmentFormatter(infoFormatter,
			map[string]interface{}{
				"type":   htmlFormatter.Name,
				"before": HighlightPreTag,
				"after":  HighlightPostTag,
			})
		if err != nil {
			highlighterErr = err
			return
		}

		_, err = bleve.Config.Cache.DefineHighlighter(InfoHighlighter,
			map[string]interface{}{
				"type":       simpleHighlighter.Name,
				"fragmenter": simpleFragmenter.Name,
				"formatter":  infoFormatter,
			})
		if err != nil {
			highlighterErr = err
		}
	})
	return highlighterErr
}
