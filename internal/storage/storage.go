package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound — объект или бакет отсутствует.
	ErrNotFound = errors.New("storage: object not found")
	// ErrKeyExists — объект с таким ключом уже существует (условная запись).
	ErrKeyExists = errors.New("storage: key already exists")
)

// ObjectStorage — возможности объектного хранилища.
// Бакеты — плоские пространства ключей, ключи — непрозрачные строки.
// Удаление отсутствующего объекта не является ошибкой: конкурентные
// удаления одного и того же документа должны быть идемпотентны.
type ObjectStorage interface {
	CreateBucket(ctx context.Context, name string) error
	BucketExists(ctx context.Context, name string) (bool, error)
	Put(ctx context.Context, bucket, key string, data []byte) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	DeleteBucketWithContents(ctx context.Context, bucket string) error
}
