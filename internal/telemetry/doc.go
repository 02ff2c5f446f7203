// Package telemetry обеспечивает наблюдаемость CLI и mock-сервера.
//
// Включает:
//   - logging.go — structured logging через slog (LOG_LEVEL, LOG_FORMAT)
//   - metrics.go — текстовый дамп Prometheus метрик (--metrics)
//
// Mock-сервер дополнительно отдаёт метрики на /metrics через promhttp.
package telemetry
