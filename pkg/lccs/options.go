package lccs

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// options — настройки Service.
type options struct {
	accessToken string
	schema      *schema.Validator
	fs          afero.Fs
	logger      *slog.Logger
	transport   []transport.Option
}

// Option настраивает Service.
type Option func(*options)

// WithAccessToken задаёт токен доступа к сервису.
func WithAccessToken(token string) Option {
	return func(o *options) { o.accessToken = token }
}

// WithValidation включает проверку ответов сервера по JSON Schema.
func WithValidation(v *schema.Validator) Option {
	return func(o *options) { o.schema = v }
}

// WithFs задаёт файловую систему для чтения загружаемых и записи
// скачанных файлов. По умолчанию — файловая система ОС.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger задаёт логгер фасада и транспорта.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTransportOptions передаёт опции транспорту (HTTP клиент, метрики, ...).
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) { o.transport = append(o.transport, opts...) }
}
