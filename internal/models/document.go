package models

import "time"

// Attachment — извлечённый текст документа.
// Заполняется пайплайном индексации, клиент его не присылает.
type Attachment struct {
	Content string `json:"content"`
}

type Document struct {
	ID                string      `json:"id"`
	TrustedFileName   string      `json:"trustedFileName"`
	UntrustedFileName string      `json:"untrustedFileName"`
	Attachment        *Attachment `json:"attachment,omitempty"`
	ContentBase64     string      `json:"contentBase64,omitempty"`
	UploadDateTime    time.Time   `json:"uploadDateTime"`
	FolderID          string      `json:"folderId,omitempty"`
}
