package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Text — значение, которое сервер присылает то строкой, то числом
// (version "1.0" и version 1.0, id классов "12" и 12).
//
// Строка хранится как есть, остальные типы — в виде исходного JSON текста.
type Text string

// UnmarshalJSON реализует json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	switch r.Type {
	case gjson.String:
		*t = Text(r.Str)
	case gjson.Null:
		*t = ""
	default:
		*t = Text(r.Raw)
	}
	return nil
}

// String возвращает текстовое представление.
func (t Text) String() string {
	return string(t)
}

// record — общая часть всех записей: исходный JSON объекта.
type record struct {
	raw json.RawMessage
}

// Raw возвращает копию исходного JSON записи.
func (r record) Raw() json.RawMessage {
	return bytes.Clone(r.raw)
}

// Each вызывает fn для каждого ключа записи в порядке, в котором
// их прислал сервер. Вложенные объекты и массивы передаются как JSON.
// Обход прекращается, если fn возвращает false.
func (r record) Each(fn func(key, value string) bool) {
	gjson.ParseBytes(r.raw).ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		if value.IsObject() || value.IsArray() {
			v = value.Raw
		}
		return fn(key.String(), v)
	})
}

// Map возвращает запись как map[string]any (для JSON/YAML вывода).
func (r record) Map() map[string]any {
	m, ok := gjson.ParseBytes(r.raw).Value().(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// decode проверяет, что raw — JSON объект с обязательными ключами,
// и разбирает его в v.
func decode(kind string, raw []byte, required []string, v any) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%s: %w: not valid JSON", kind, ErrInvalidPayload)
	}

	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return fmt.Errorf("%s: %w: expected JSON object", kind, ErrInvalidPayload)
	}

	for _, key := range required {
		if !obj.Get(key).Exists() {
			return &FieldError{Record: kind, Field: key, Err: ErrMissingField}
		}
	}

	return decodeValue(kind, obj.Raw, v)
}

// decodeValue разбирает JSON в v. Ошибки вложенных записей
// (FieldError, ErrInvalidPayload) сохраняются в цепочке.
func decodeValue(kind, raw string, v any) error {
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) || errors.Is(err, ErrInvalidPayload) {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return fmt.Errorf("%s: %w: %v", kind, ErrInvalidPayload, err)
}

// compact возвращает компактную копию JSON (без лишних пробелов).
func compact(raw []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return bytes.Clone(raw)
	}
	return buf.Bytes()
}

// collection возвращает элементы коллекции: сервер отдаёт либо JSON
// массив, либо объект, в котором массив лежит под ключом key.
func collection(kind string, raw []byte, key string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s: %w: not valid JSON", kind, ErrInvalidPayload)
	}

	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		doc = doc.Get(key)
		if !doc.Exists() {
			return nil, &FieldError{Record: kind, Field: key, Err: ErrMissingField}
		}
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("%s: %w: expected JSON array", kind, ErrInvalidPayload)
	}
	return doc.Array(), nil
}
