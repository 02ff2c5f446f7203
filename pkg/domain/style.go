package domain

import (
	"bytes"
	"slices"
)

// KindStyleFormat — имя записи формата стиля в ошибках и схемах.
const KindStyleFormat = "style_format"

// StyleFormat — формат файла стиля (например, "QGIS", "SLD").
type StyleFormat struct {
	record
	data styleFormatJSON
}

type styleFormatJSON struct {
	ID    Text   `json:"id"`
	Name  string `json:"name"`
	Links Links  `json:"links"`
}

// ParseStyleFormat создаёт запись формата из JSON объекта.
func ParseStyleFormat(raw []byte) (*StyleFormat, error) {
	var v styleFormatJSON
	if err := decode(KindStyleFormat, raw, []string{"name"}, &v); err != nil {
		return nil, err
	}
	if v.Links == nil {
		v.Links = Links{}
	}
	return &StyleFormat{record: record{raw: compact(raw)}, data: v}, nil
}

// StyleFormatFromLink строит формат из child-ссылки гипермедиа-ответа:
// имя формата — заголовок ссылки.
func StyleFormatFromLink(l Link) *StyleFormat {
	raw, err := l.MarshalJSON()
	if err != nil {
		raw = []byte("{}")
	}
	return &StyleFormat{
		record: record{raw: raw},
		data: styleFormatJSON{
			Name:  l.Title(),
			Links: Links{NewLink(RelSelf, l.Href(), l.Title())},
		},
	}
}

// ID возвращает идентификатор формата (может быть пустым).
func (f *StyleFormat) ID() string { return f.data.ID.String() }

// Name возвращает имя формата.
func (f *StyleFormat) Name() string { return f.data.Name }

// Links возвращает копию ссылок формата.
func (f *StyleFormat) Links() Links { return slices.Clone(f.data.Links) }

// StyleFile — скачанный файл стиля.
type StyleFile struct {
	name    string
	content []byte
}

// NewStyleFile создаёт запись файла стиля.
func NewStyleFile(name string, content []byte) *StyleFile {
	return &StyleFile{name: name, content: bytes.Clone(content)}
}

// Name возвращает имя файла из Content-Disposition.
func (f *StyleFile) Name() string { return f.name }

// Content возвращает копию содержимого файла.
func (f *StyleFile) Content() []byte { return bytes.Clone(f.content) }

// Size возвращает размер файла в байтах.
func (f *StyleFile) Size() int { return len(f.content) }
