// Package render формирует HTML представление записей LCCS-WS.
//
// Шаблоны лежат в templates/ и встраиваются в бинарник через embed.
// К функциям sprig добавлены помощники для записей: fields, titles,
// similarity и json.
//
//	r, err := render.New()
//	err = r.ClassificationSystem(os.Stdout, cs)
//
// Используется CLI для --output html.
package render
