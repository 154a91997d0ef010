// Package filestore хранит подтверждения оплаты в локальном каталоге.
// В БД попадает только относительный путь.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// LocalStore файлы в dir/<prefix>/<uuid><ext>
type LocalStore struct {
	dir     string
	maxSize int64
}

// NewLocalStore создаёт хранилище; каталог создаётся при первой записи
func NewLocalStore(dir string, maxSize int64) *LocalStore {
	return &LocalStore{dir: dir, maxSize: maxSize}
}

// Store сохраняет содержимое под новым ключом и возвращает относительный путь
func (s *LocalStore) Store(ctx context.Context, prefix, originalName string, data io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.Join(prefix, uuid.NewString()+ext)
	full := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	// читаем на байт больше лимита, чтобы отличить «ровно лимит» от превышения
	n, err := io.Copy(f, io.LimitReader(data, s.maxSize+1))
	closeErr := f.Close()
	if err == nil && n > s.maxSize {
		err = fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxSize)
	} else if err != nil {
		err = fmt.Errorf("%w: %v", ErrWrite, err)
	} else if closeErr != nil {
		err = fmt.Errorf("%w: %v", ErrWrite, closeErr)
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Remove удаляет ранее сохранённый файл; отсутствие файла не ошибка
func (s *LocalStore) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
