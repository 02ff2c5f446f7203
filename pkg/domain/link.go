package domain

import (
	"encoding/json"
	"slices"

	"github.com/tidwall/gjson"
)

// Relation types, которые использует LCCS-WS.
const (
	RelSelf    = "self"
	RelRoot    = "root"
	RelParent  = "parent"
	RelChild   = "child"
	RelClasses = "classes"
	RelStyle   = "style"
	RelStyles  = "styles"
)

// Link — гиперссылка из ответа сервера.
type Link struct {
	rel   string
	href  string
	title string
	typ   string
}

type linkJSON struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// NewLink создаёт ссылку. Используется в тестах и при сборке ответов.
func NewLink(rel, href, title string) Link {
	return Link{rel: rel, href: href, title: title}
}

// UnmarshalJSON реализует json.Unmarshaler: rel и href обязательны.
func (l *Link) UnmarshalJSON(b []byte) error {
	var v linkJSON
	if err := decode("link", b, []string{"rel", "href"}, &v); err != nil {
		return err
	}
	*l = Link{rel: v.Rel, href: v.Href, title: v.Title, typ: v.Type}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkJSON{Rel: l.rel, Href: l.href, Title: l.title, Type: l.typ})
}

// Rel возвращает тип связи.
func (l Link) Rel() string { return l.rel }

// Href возвращает URL ресурса.
func (l Link) Href() string { return l.href }

// Title возвращает заголовок ссылки (может быть пустым).
func (l Link) Title() string { return l.title }

// Type возвращает media type ссылки (может быть пустым).
func (l Link) Type() string { return l.typ }

// Links — упорядоченный список ссылок.
//
// Все записи отдают свои ссылки через этот тип, поэтому поиск
// связанного ресурса по relation реализован в одном месте.
type Links []Link

// ByRelation возвращает ссылки с заданным relation в порядке сервера.
// Если таких ссылок нет, возвращается пустой (не nil) слайс.
func (ls Links) ByRelation(rel string) Links {
	out := Links{}
	for _, l := range ls {
		if l.rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// First возвращает первую ссылку с заданным relation.
func (ls Links) First(rel string) (Link, bool) {
	i := slices.IndexFunc(ls, func(l Link) bool { return l.rel == rel })
	if i < 0 {
		return Link{}, false
	}
	return ls[i], true
}

// Titles возвращает заголовки ссылок с заданным relation.
func (ls Links) Titles(rel string) []string {
	matched := ls.ByRelation(rel)
	titles := make([]string, 0, len(matched))
	for _, l := range matched {
		titles = append(titles, l.title)
	}
	return titles
}

// ParseLinks извлекает список "links" из гипермедиа-документа.
// Отсутствующий ключ "links" — пустой список, а не ошибка.
func ParseLinks(raw []byte) (Links, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidPayload
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrInvalidPayload
	}

	links := doc.Get("links")
	if !links.Exists() || links.Type == gjson.Null {
		return Links{}, nil
	}

	var out Links
	if err := decodeValue("links", links.Raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Links{}
	}
	return out, nil
}
