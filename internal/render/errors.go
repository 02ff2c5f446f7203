package render

import "errors"

var (
	// ErrTemplateParse — встроенные шаблоны не разобрались.
	ErrTemplateParse = errors.New("template parse error")

	// ErrTemplateRender — ошибка выполнения шаблона.
	ErrTemplateRender = errors.New("template render error")
)
