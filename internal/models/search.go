package models

import "time"

// SearchResult — элемент выдачи полнотекстового поиска.
// Highlight — фрагменты текста, где найденный термин обёрнут маркером.
type SearchResult struct {
	ID                string    `json:"id"`
	UntrustedFileName string    `json:"untrustedFileName"`
	UploadDateTime    time.Time `json:"uploadDateTime"`
	Highlight         []string  `json:"highlight,omitempty"`
}
