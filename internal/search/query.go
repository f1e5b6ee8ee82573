package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// NameQuery — фильтр листинга по имени: дизъюнкция префиксного и
// анализируемого совпадения (достаточно одного из двух). Пустой терм
// вырождается в match-all. Префикс приводится к нижнему регистру:
// термы в индексе уже лоуэркейзятся анализатором, так что префиксное
// совпадение получается регистронезависимым.
func NameQuery(field, term string) query.Query {
	term = strings.TrimSpace(term)
	if term == "" {
		return bleve.NewMatchAllQuery()
	}

	prefix := bleve.NewPrefixQuery(strings.ToLower(term))
	prefix.SetField(field)

	match := bleve.NewMatchQuery(term)
	match.SetField(field)

	q := bleve.NewBooleanQuery()
	q.AddShould(prefix, match)
	q.SetMinShould(1)
	return q
}

// ScopedNameQuery — тот же фильтр по имени, но обязательная привязка к папке.
func ScopedNameQuery(field, term, folderID string) query.Query {
	return bleve.NewConjunctionQuery(FolderScopeQuery(folderID), NameQuery(field, term))
}

// FolderScopeQuery — точное совпадение folderId.
func FolderScopeQuery(folderID string) query.Query {
	q := bleve.NewTermQuery(folderID)
	q.SetField("folderId")
	return q
}

// ContentQuery — полнотекстовый запрос по извлечённому тексту.
// Никогда не комбинируется с фильтром по имени.
func ContentQuery(text string) query.Query {
	q := bleve.NewMatchQuery(text)
	q.SetField("attachment.content")
	return q
}

// IDsQuery — дизъюнкция точных id (пакетное разрешение папок).
func IDsQuery(ids []string) query.Query {
	return query.NewDocIDQuery(ids)
}
