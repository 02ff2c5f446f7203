// Package file читает и пишет файлы клиента через afero.
//
// Handler используется фасадом для чтения загружаемых JSON/стилей и
// записи скачанных файлов стилей. В тестах подставляется afero.NewMemMapFs.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotJSON — файл не содержит валидный JSON.
var ErrNotJSON = errors.New("file is not valid JSON")

// Handler — обёртка над afero.Afero.
type Handler struct {
	fs afero.Afero
}

// New возвращает Handler поверх fs. nil — файловая система ОС.
func New(fs afero.Fs) *Handler {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Handler{fs: afero.Afero{Fs: fs}}
}

// Read читает файл целиком.
func (h *Handler) Read(path string) ([]byte, error) {
	data, err := h.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadJSON читает файл и проверяет, что это JSON.
func (h *Handler) ReadJSON(path string) ([]byte, error) {
	data, err := h.Read(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotJSON)
	}
	return data, nil
}

// Write записывает data в path, создавая недостающие каталоги.
func (h *Handler) Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := h.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := h.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Resolve выбирает путь для скачанного файла name:
//   - пустой path — name в текущем каталоге
//   - path с завершающим разделителем или существующий каталог — path/name
//   - иначе — сам path
//
// Из name берётся только последний элемент, чтобы имя от сервера
// не выводило файл за пределы каталога.
func (h *Handler) Resolve(path, name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		name = DefaultName
	}

	if path == "" {
		return name
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return filepath.Join(path, name)
	}
	if ok, err := h.fs.IsDir(path); err == nil && ok {
		return filepath.Join(path, name)
	}
	return path
}

// DefaultName — имя файла, если сервер его не прислал.
const DefaultName = "unknown_file"
