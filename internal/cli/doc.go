// Package cli реализует инструмент командной строки lccs.
//
// # Обзор
//
// CLI — клиентская утилита для LCCS-WS. Каждая подкоманда вызывает
// одну операцию lccs.Service: просмотр систем классификации, классов,
// маппингов и стилей, а также их добавление и удаление.
//
// # Ключевые компоненты
//
// ## Root
//
// NewRootCmd собирает корневую команду. Флаги --url и --access-token
// берут значения по умолчанию из LCCS_URL и LCCS_ACCESS_TOKEN.
// Service создаётся лениво (ServiceFunc) после парсинга флагов,
// так же как Output (OutputFunc).
//
//	root := cli.NewRootCmd(version, afero.NewOsFs())
//	err := root.Execute()
//
// ## Output
//
// Форматирование вывода (--output):
//   - text — "\t- key: value" для записей, по строке на элемент списка
//   - json, yaml — данные целиком
//   - html — через internal/render
//
// С -v/--verbose печатаются адрес сервера, строка прогресса и
// "\tFinished!". В машинных форматах эти строки уходят в stderr.
//
// ## Commands
//
// Команды сгруппированы по ресурсам:
//   - system.go: classification-systems, classification-system-description,
//     add-classification-system, delete-classification-system
//   - class.go: classes, class-describe, add-classes, delete-class
//   - mapping.go: available-mappings, mappings, add-mapping, delete-mapping
//   - style.go: style-formats, styles, style-file, add-style,
//     add-style-format, delete-style, delete-style-format
//
// Все ошибки возвращаются из RunE; main печатает "Error: ..." и
// завершается с кодом 1.
package cli
