package filestore

import "errors"

var (
	// ErrUnsupportedType возвращается для файлов с неразрешённым расширением
	ErrUnsupportedType = errors.New("filestore: unsupported file type")

	// ErrTooLarge возвращается, когда файл превышает лимит
	ErrTooLarge = errors.New("filestore: file too large")

	// ErrWrite возвращается при ошибке записи на диск
	ErrWrite = errors.New("filestore: failed to write file")
)
