package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shaiso/lccs/internal/render"
)

// Форматы вывода (--output).
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Formats — допустимые значения --output.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatHTML}

// formatFlag — значение --output, проверяется при разборе флагов.
type formatFlag string

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(*f) }

func (f *formatFlag) Set(v string) error {
	if !ValidFormat(v) {
		return fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedFormat, v, strings.Join(Formats, ", "))
	}
	*f = formatFlag(v)
	return nil
}

func (f *formatFlag) Type() string { return "format" }

// Entity — запись, которую можно вывести поле за полем.
type Entity interface {
	Each(fn func(key, value string) bool)
	Map() map[string]any
}

// HTMLFunc рендерит данные команды в HTML.
type HTMLFunc func(r *render.Renderer, w io.Writer) error

// Output управляет форматированием вывода CLI.
type Output struct {
	format   string
	verbose  bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
	renderer *render.Renderer
}

// NewOutput создаёт Output для формата format.
func NewOutput(format string, w, errW io.Writer, renderer *render.Renderer) *Output {
	return &Output{
		format:   format,
		w:        w,
		errW:     errW,
		renderer: renderer,
	}
}

// ValidFormat сообщает, поддерживается ли формат.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// SetVerbose включает строки прогресса (Server, Finished!).
func (o *Output) SetVerbose(v bool) {
	o.verbose = v
}

// Begin печатает адрес сервера и описание действия в verbose режиме.
func (o *Output) Begin(url, action string) {
	if !o.verbose {
		return
	}
	fmt.Fprintf(o.progress(), "Server: %s\n", url)
	fmt.Fprintf(o.progress(), "\t%s ... \n", action)
}

// Finish завершает verbose вывод.
func (o *Output) Finish() {
	if o.verbose {
		fmt.Fprintln(o.progress(), "\tFinished!")
	}
}

// progress — куда писать строки прогресса. В машинных форматах
// stdout остаётся только под данные.
func (o *Output) progress() io.Writer {
	if o.format == FormatText {
		return o.w
	}
	return o.errW
}

// Entity выводит запись: "\t- key: value" по каждому полю.
func (o *Output) Entity(e Entity, html HTMLFunc) error {
	switch o.format {
	case FormatJSON:
		return o.JSON(e.Map())
	case FormatYAML:
		return o.YAML(e.Map())
	case FormatHTML:
		return o.HTML(html)
	}

	var err error
	e.Each(func(key, value string) bool {
		_, err = fmt.Fprintf(o.w, "\t- %s: %s\n", key, value)
		return err == nil
	})
	return err
}

// List выводит список имён по одному в строке.
func (o *Output) List(items []string, html HTMLFunc) error {
	if items == nil {
		items = []string{}
	}
	switch o.format {
	case FormatJSON:
		return o.JSON(items)
	case FormatYAML:
		return o.YAML(items)
	case FormatHTML:
		return o.HTML(html)
	}

	for _, item := range items {
		line := item
		if o.verbose {
			line = "\t\t- " + item
		}
		if _, err := fmt.Fprintln(o.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Message выводит итог команды без данных (добавлено, удалено, сохранено).
func (o *Output) Message(msg string) error {
	switch o.format {
	case FormatJSON:
		return o.JSON(map[string]string{"message": msg})
	case FormatYAML:
		return o.YAML(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(o.w, msg)
	return err
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML выводит данные в формате YAML.
func (o *Output) YAML(v any) error {
	enc := yaml.NewEncoder(o.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// HTML вызывает html с рендерером Output.
func (o *Output) HTML(html HTMLFunc) error {
	if html == nil || o.renderer == nil {
		return fmt.Errorf("%w: html", ErrUnsupportedFormat)
	}
	return html(o.renderer, o.w)
}
