package domain

import (
	"encoding/json"
	"slices"
)

// KindMappingGroup — имя записи группы маппингов в ошибках и схемах.
const KindMappingGroup = "mapping_group"

// Mapping — соответствие между классом исходной и целевой системы.
type Mapping struct {
	record
	data mappingJSON
}

type mappingJSON struct {
	SourceClass        Text     `json:"source_class"`
	TargetClass        Text     `json:"target_class"`
	DegreeOfSimilarity *float64 `json:"degree_of_similarity"`
	Description        Text     `json:"description"`
	Links              Links    `json:"links"`
}

var mappingRequired = []string{"source_class", "target_class"}

// ParseMapping создаёт запись маппинга из JSON объекта.
func ParseMapping(raw []byte) (*Mapping, error) {
	var v mappingJSON
	if err := decode("mapping", raw, mappingRequired, &v); err != nil {
		return nil, err
	}
	if v.Links == nil {
		v.Links = Links{}
	}
	return &Mapping{record: record{raw: compact(raw)}, data: v}, nil
}

// SourceClass возвращает класс исходной системы.
func (m *Mapping) SourceClass() string { return m.data.SourceClass.String() }

// TargetClass возвращает класс целевой системы.
func (m *Mapping) TargetClass() string { return m.data.TargetClass.String() }

// DegreeOfSimilarity возвращает степень сходства, если сервер её прислал.
func (m *Mapping) DegreeOfSimilarity() (float64, bool) {
	if m.data.DegreeOfSimilarity == nil {
		return 0, false
	}
	return *m.data.DegreeOfSimilarity, true
}

// Description возвращает описание маппинга.
func (m *Mapping) Description() string { return m.data.Description.String() }

// Links возвращает копию ссылок маппинга.
func (m *Mapping) Links() Links { return slices.Clone(m.data.Links) }

// MappingGroup — набор маппингов между двумя системами.
//
// Идентификаторы систем проставляет клиент из параметров запроса:
// сервер их в ответе не повторяет.
type MappingGroup struct {
	record
	sourceID string
	targetID string
	mappings []*Mapping
	links    Links
}

// ParseMappingGroup разбирает ответ /mappings/{source}/{target}.
func ParseMappingGroup(raw []byte, sourceID, targetID string) (*MappingGroup, error) {
	var v struct {
		Mappings []json.RawMessage `json:"mappings"`
		Links    Links             `json:"links"`
	}
	if err := decode(KindMappingGroup, raw, []string{"mappings"}, &v); err != nil {
		return nil, err
	}

	mappings := make([]*Mapping, 0, len(v.Mappings))
	for _, item := range v.Mappings {
		m, err := ParseMapping(item)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	if v.Links == nil {
		v.Links = Links{}
	}

	return &MappingGroup{
		record:   record{raw: compact(raw)},
		sourceID: sourceID,
		targetID: targetID,
		mappings: mappings,
		links:    v.Links,
	}, nil
}

// SourceID возвращает идентификатор исходной системы.
func (g *MappingGroup) SourceID() string { return g.sourceID }

// TargetID возвращает идентификатор целевой системы.
func (g *MappingGroup) TargetID() string { return g.targetID }

// Mappings возвращает копию списка маппингов в порядке сервера.
func (g *MappingGroup) Mappings() []*Mapping { return slices.Clone(g.mappings) }

// Links возвращает копию ссылок группы.
func (g *MappingGroup) Links() Links { return slices.Clone(g.links) }

// Map возвращает группу вместе с проставленными идентификаторами систем.
func (g *MappingGroup) Map() map[string]any {
	m := g.record.Map()
	m["source_classification_system"] = g.sourceID
	m["target_classification_system"] = g.targetID
	return m
}

// Each обходит поля группы, начиная с идентификаторов систем.
func (g *MappingGroup) Each(fn func(key, value string) bool) {
	if !fn("source_classification_system", g.sourceID) {
		return
	}
	if !fn("target_classification_system", g.targetID) {
		return
	}
	g.record.Each(fn)
}
