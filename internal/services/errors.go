package services

import "errors"

// Таксономия ошибок сервисного слоя. NotFound отдаётся клиенту как 404,
// остальное — серверные ошибки соответствующей операции.
var (
	ErrNotFound            = errors.New("not found")
	ErrStorageWriteFailed  = errors.New("storage write failed")
	ErrStorageReadFailed   = errors.New("storage read failed")
	ErrIndexWriteFailed    = errors.New("index write failed")
	ErrIndexReadFailed     = errors.New("index read failed")
	ErrStorageKeyCollision = errors.New("storage key collision")
	ErrExportListingFailed = errors.New("export listing failed")
)
