// Package schema проверяет ответы LCCS-WS по JSON Schema.
//
// Схемы встроены в бинарник (schemas/*.json) и компилируются один раз
// при создании Validator. Validator создаётся явно и передаётся в клиент
// опцией: глобального состояния у пакета нет.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Виды документов, для которых есть схемы.
const (
	KindClassificationSystem = "classification_system"
	KindClass                = "class"
	KindMappingGroup         = "mapping_group"
	KindStyleFormat          = "style_format"
	KindHypermedia           = "hypermedia"
	KindLink                 = "link"
)

const baseURL = "https://schemas.lccs.local/"

// Ошибки валидации.
var (
	// ErrInvalid — документ не соответствует схеме.
	ErrInvalid = errors.New("schema validation failed")

	// ErrUnknownKind — для вида документа нет схемы.
	ErrUnknownKind = errors.New("unknown schema kind")
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator — набор скомпилированных схем.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator компилирует встроенные схемы.
func NewValidator() (*Validator, error) {
	return newValidator(schemaFS, "schemas")
}

func newValidator(fsys fs.FS, dir string) (*Validator, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	c := jsonschema.NewCompiler()
	var kinds []string

	// Сначала регистрируем все ресурсы, чтобы $ref между схемами разрешались.
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(baseURL+e.Name(), doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
		kinds = append(kinds, strings.TrimSuffix(e.Name(), ".json"))
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(kinds))}
	for _, kind := range kinds {
		sch, err := c.Compile(baseURL + kind + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", kind, err)
		}
		v.schemas[kind] = sch
	}

	return v, nil
}

// Kinds возвращает отсортированный список видов документов.
func (v *Validator) Kinds() []string {
	kinds := make([]string, 0, len(v.schemas))
	for kind := range v.schemas {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Validate проверяет JSON документ raw по схеме kind.
func (v *Validator) Validate(kind string, raw []byte) error {
	sch, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w: %v", kind, ErrInvalid, err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%s: %w: %v", kind, ErrInvalid, err)
	}
	return nil
}
