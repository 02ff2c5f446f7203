package cli

import "errors"

var (
	// ErrUnsupportedFormat — команда не умеет выводить данные в этом формате.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrFileNotFound — входной файл команды не существует.
	ErrFileNotFound = errors.New("file does not exist")
)
