package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/Masterminds/sprig/v3"

	"github.com/shaiso/lccs/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Field — пара ключ/значение записи для вывода в шаблоне.
type Field struct {
	Key   string
	Value string
}

// eacher — запись, которая умеет обходить свои поля по порядку.
type eacher interface {
	Each(fn func(key, value string) bool)
}

// Renderer рендерит записи LCCS-WS в HTML.
//
// Создаётся один раз через New и безопасен для конкурентного
// использования: шаблоны после разбора не изменяются.
type Renderer struct {
	tmpl *template.Template
}

// New разбирает встроенные шаблоны.
func New() (*Renderer, error) {
	tmpl, err := template.New("lccs").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Service рендерит описание сервиса: адрес и список систем.
func (r *Renderer) Service(w io.Writer, url string, systems []string) error {
	return r.execute(w, "service.html", struct {
		URL     string
		Systems []string
	}{url, systems})
}

// ClassificationSystem рендерит систему классификации.
func (r *Renderer) ClassificationSystem(w io.Writer, cs *domain.ClassificationSystem) error {
	return r.execute(w, "classification_system.html", cs)
}

// Class рендерит один класс.
func (r *Renderer) Class(w io.Writer, c *domain.Class) error {
	return r.execute(w, "class.html", c)
}

// Classes рендерит таблицу классов системы.
func (r *Renderer) Classes(w io.Writer, system string, classes *domain.Classes) error {
	return r.execute(w, "classes.html", struct {
		System  string
		Classes *domain.Classes
	}{system, classes})
}

// MappingGroup рендерит маппинг между двумя системами.
func (r *Renderer) MappingGroup(w io.Writer, g *domain.MappingGroup) error {
	return r.execute(w, "mapping_group.html", g)
}

// List рендерит простой список с заголовком.
func (r *Renderer) List(w io.Writer, title string, items []string) error {
	return r.execute(w, "list.html", struct {
		Title string
		Items []string
	}{title, items})
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return nil
}

// funcMap — функции sprig плюс помощники для записей.
func funcMap() template.FuncMap {
	funcs := sprig.HtmlFuncMap()

	// json — сериализует значение в JSON строку
	funcs["json"] = func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return string(b)
	}

	// fields — поля записи в порядке сервера, без ссылок
	funcs["fields"] = func(rec eacher) []Field {
		var out []Field
		rec.Each(func(key, value string) bool {
			if key != "links" {
				out = append(out, Field{Key: key, Value: value})
			}
			return true
		})
		return out
	}

	// titles — заголовки ссылок
	funcs["titles"] = func(links domain.Links) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Title())
		}
		return out
	}

	// similarity — степень сходства маппинга или пустая строка
	funcs["similarity"] = func(m *domain.Mapping) string {
		d, ok := m.DegreeOfSimilarity()
		if !ok {
			return ""
		}
		return strconv.FormatFloat(d, 'f', -1, 64)
	}

	return funcs
}
