// Package mockws — in-memory двойник LCCS-WS для тестов и локальной
// отладки CLI.
//
// Структура:
//   - store.go           — потокобезопасное хранилище систем, классов, маппингов и стилей
//   - seed.go            — демонстрационные данные
//   - handler.go         — Handler с зависимостями и счётчиком запросов
//   - routes.go          — регистрация маршрутов
//   - middleware.go      — middleware (recovery, logging, auth, подсчёт запросов)
//   - response.go        — JSON-ответы и обработка ошибок хранилища
//   - dto.go             — формы ответов с гиперссылками
//   - system_handler.go  — /classification_systems, /classification_system/{system}, классы
//   - mapping_handler.go — /mappings
//   - style_handler.go   — /style_formats и стили систем
//
// Ссылки в ответах абсолютные и строятся от Host запроса, поэтому
// клиент ходит по ним так же, как по ссылкам настоящего сервиса.
package mockws
