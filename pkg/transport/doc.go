// Package transport реализует HTTP-транспорт клиента LCCS-WS.
//
// # Обзор
//
// Client оборачивает GET/POST/DELETE к базовому URL сервиса:
//   - Get разбирает ответ по Content-Type: JSON (application/json,
//     application/geo+json) или файл (application/octet-stream с именем
//     из Content-Disposition)
//   - Post отправляет form-поля, файлы (multipart) или JSON body
//   - Delete удаляет ресурс, тело ответа не обязательно
//
// Ссылки могут быть относительными (путь от базового URL) или абсолютными —
// href из гипермедиа-ответов сервера передаются как есть.
//
// # Ошибки
//
// Сетевые ошибки — *RequestError (errors.Is(err, ErrRequest)).
// Неуспешный статус, неожиданный Content-Type и невалидный JSON —
// *ResponseError (errors.Is(err, ErrResponse)); 404 дополнительно
// совпадает с ErrNotFound.
//
// Повторов запросов нет. Каждый запрос получает заголовок X-Request-ID
// и учитывается в Prometheus метриках, если задан Registerer.
package transport
