package transport

import (
	"encoding/json"
	"mime"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Content types, которые понимает клиент.
const (
	ContentJSON        = "application/json"
	ContentGeoJSON     = "application/geo+json"
	ContentOctetStream = "application/octet-stream"
	ContentForm        = "application/x-www-form-urlencoded"

	// DefaultFileName — имя файла, если сервер не прислал Content-Disposition.
	DefaultFileName = "unknown_file"
)

// Payload — разобранный ответ сервера.
type Payload struct {
	StatusCode  int
	ContentType string // media type без параметров
	FileName    string // только для application/octet-stream
	Body        []byte
}

// IsFile сообщает, что ответ — бинарный файл.
func (p *Payload) IsFile() bool {
	return p.ContentType == ContentOctetStream
}

// JSON возвращает тело ответа как gjson.Result.
func (p *Payload) JSON() gjson.Result {
	return gjson.ParseBytes(p.Body)
}

// Decode разбирает JSON тело в v.
func (p *Payload) Decode(v any) error {
	return json.Unmarshal(p.Body, v)
}

// Message возвращает поле "message" JSON ответа (пусто, если его нет).
func (p *Payload) Message() string {
	return serverMessage(p.Body)
}

// serverMessage извлекает текст ошибки/статуса из JSON тела.
// LCCS-WS кладёт его в "message" или "description".
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, r := range gjson.GetManyBytes(body, "message", "description") {
		if r.Exists() && r.Type == gjson.String {
			return r.Str
		}
	}
	return ""
}

// mediaType возвращает media type без параметров в нижнем регистре.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

func isJSON(mt string) bool {
	return mt == ContentJSON || mt == ContentGeoJSON
}

var filenameRe = regexp.MustCompile(`filename=(.+)`)

// fileName извлекает имя файла из заголовка Content-Disposition.
func fileName(disposition string) string {
	if disposition == "" {
		return DefaultFileName
	}

	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}

	// Некоторые серверы присылают заголовок без типа: "filename=style.qml"
	if m := filenameRe.FindStringSubmatch(disposition); m != nil {
		name, _, _ := strings.Cut(m[1], ";")
		name = strings.Trim(strings.TrimSpace(name), `"`)
		if name != "" {
			return name
		}
	}

	return DefaultFileName
}
