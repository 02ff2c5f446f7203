package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// KindClassificationSystem — имя записи в ошибках и схемах.
const KindClassificationSystem = "classification_system"

// ClassificationSystem — система классификации земного покрова
// (например, "TerraClass_AMZ").
//
// Значение неизменяемо: чтобы получить свежие данные, запись
// нужно запросить у сервера заново.
type ClassificationSystem struct {
	record
	data classificationSystemJSON
}

type classificationSystemJSON struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Version       Text   `json:"version"`
	AuthorityName string `json:"authority_name"`
	Description   Text   `json:"description"`
	Links         Links  `json:"links"`
}

var classificationSystemRequired = []string{"id", "name", "version", "authority_name", "description"}

// ParseClassificationSystem создаёт запись из JSON объекта.
func ParseClassificationSystem(raw []byte) (*ClassificationSystem, error) {
	var v classificationSystemJSON
	if err := decode(KindClassificationSystem, raw, classificationSystemRequired, &v); err != nil {
		return nil, err
	}
	if v.Links == nil {
		v.Links = Links{}
	}
	return &ClassificationSystem{record: record{raw: compact(raw)}, data: v}, nil
}

// ParseClassificationSystems разбирает список систем: JSON массив
// или объект с массивом "classification_systems".
func ParseClassificationSystems(raw []byte) ([]*ClassificationSystem, error) {
	values, err := collection(KindClassificationSystem, raw, "classification_systems")
	if err != nil {
		return nil, err
	}

	systems := make([]*ClassificationSystem, 0, len(values))
	for _, value := range values {
		cs, err := ParseClassificationSystem([]byte(value.Raw))
		if err != nil {
			return nil, err
		}
		systems = append(systems, cs)
	}
	return systems, nil
}

// ID возвращает идентификатор системы.
func (cs *ClassificationSystem) ID() int { return cs.data.ID }

// Name возвращает имя системы.
func (cs *ClassificationSystem) Name() string { return cs.data.Name }

// Version возвращает версию системы в том виде, в каком её прислал сервер.
func (cs *ClassificationSystem) Version() string { return cs.data.Version.String() }

// AuthorityName возвращает организацию, ответственную за систему.
func (cs *ClassificationSystem) AuthorityName() string { return cs.data.AuthorityName }

// Description возвращает описание системы.
func (cs *ClassificationSystem) Description() string { return cs.data.Description.String() }

// Links возвращает копию ссылок системы.
func (cs *ClassificationSystem) Links() Links { return slices.Clone(cs.data.Links) }

// Matches сообщает, соответствует ли ключ имени или id системы.
func (cs *ClassificationSystem) Matches(key string) bool {
	return key == cs.data.Name || key == strconv.Itoa(cs.data.ID)
}

// String реализует fmt.Stringer.
func (cs *ClassificationSystem) String() string {
	return fmt.Sprintf("%s (v%s, %s)", cs.data.Name, cs.data.Version, cs.data.AuthorityName)
}
