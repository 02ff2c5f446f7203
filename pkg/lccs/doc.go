// Package lccs — клиент LCCS-WS (Land Cover Classification System Web Service).
//
// # Обзор
//
// Service объединяет HTTP-транспорт, разбор записей и реестр систем
// классификации:
//
//	svc, err := lccs.New("https://brazildatacube.dpi.inpe.br/lccs/")
//	names, err := svc.ClassificationSystems(ctx)
//	cs, err := svc.ClassificationSystem(ctx, "TerraClass_AMZ")
//	classes, err := svc.Classes(ctx, "TerraClass_AMZ")
//
// Файлы:
//   - service.go  — Service, реестр, системы классификации
//   - classes.go  — классы системы
//   - mappings.go — маппинги между системами
//   - styles.go   — форматы стилей и файлы стилей
//   - options.go  — опции New
//   - errors.go   — классы ошибок
//
// # Реестр
//
// Список систем запрашивается один раз. Каждая полученная система
// кэшируется по имени; повторный запрос по имени или id возвращает
// тот же объект без обращения к серверу. Удаление системы убирает её
// из реестра.
//
// # Ошибки
//
// Все операции возвращают *Error, который совпадает (errors.Is) с одним
// из ErrNotFound, ErrInsertFailed, ErrDeleteFailed, ErrInvalidInput.
// Ошибки транспорта (transport.ErrRequest, transport.ErrResponse),
// разбора (domain.ErrMissingField) и схемы (schema.ErrInvalid) доступны
// через errors.Is/errors.As. Ответ 404 на удаление совпадает и с
// ErrDeleteFailed, и с ErrNotFound.
package lccs
