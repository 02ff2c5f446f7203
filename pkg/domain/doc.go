// Package domain содержит записи LCCS-WS в виде типизированных read-only структур.
//
// Структура:
//   - record.go  — общая основа записей: сырой JSON, проверка обязательных ключей
//   - link.go    — гиперссылки (rel, href, title) и фильтрация по relation
//   - system.go  — ClassificationSystem
//   - class.go   — Class и коллекция Classes
//   - mapping.go — MappingGroup и Mapping
//   - style.go   — StyleFormat и StyleFile
//   - request.go — payload'ы для создания сущностей + Validator
//
// Каждая запись создаётся функцией ParseXxx из JSON ответа сервера.
// Отсутствие обязательного ключа — ошибка ErrMissingField сразу при
// создании записи, а не при первом обращении к полю.
package domain
