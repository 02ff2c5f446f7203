package mockws

import (
	"fmt"
	"slices"
	"strconv"
	"sync"
)

// System — система классификации в хранилище.
type System struct {
	ID            int
	Name          string
	AuthorityName string
	Description   string
	Version       string
	Classes       []Class
}

// Class — класс системы. ParentID = 0 — корневой класс.
type Class struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	ParentID    int    `json:"class_parent_id,omitempty"`
}

// Mapping — соответствие классов двух систем.
type Mapping struct {
	SourceClass        string   `json:"source_class"`
	TargetClass        string   `json:"target_class"`
	DegreeOfSimilarity *float64 `json:"degree_of_similarity,omitempty"`
	Description        string   `json:"description,omitempty"`
}

// StyleFormat — формат стиля.
type StyleFormat struct {
	ID   int
	Name string
}

// StyleFile — файл стиля.
type StyleFile struct {
	Name    string
	Content []byte
}

type mappingKey struct {
	source string
	target string
}

// Store — потокобезопасное in-memory хранилище сервиса.
type Store struct {
	mu sync.RWMutex

	systems  []*System
	mappings map[mappingKey][]Mapping
	formats  []StyleFormat
	styles   map[string]map[string]StyleFile // система -> формат -> файл

	nextSystemID int
	nextClassID  int
	nextFormatID int
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		mappings:     make(map[mappingKey][]Mapping),
		styles:       make(map[string]map[string]StyleFile),
		nextSystemID: 1,
		nextClassID:  1,
		nextFormatID: 1,
	}
}

// --- Системы ---

// Systems возвращает копии всех систем в порядке добавления.
func (s *Store) Systems() []System {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]System, 0, len(s.systems))
	for _, sys := range s.systems {
		result = append(result, copySystem(sys))
	}
	return result
}

// System возвращает систему по имени или id.
func (s *Store) System(key string) (System, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, err := s.findSystem(key)
	if err != nil {
		return System{}, err
	}
	return copySystem(sys), nil
}

// AddSystem добавляет систему и назначает id ей и её классам.
func (s *Store) AddSystem(sys System) (System, error) {
	if sys.Name == "" {
		return System{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findSystem(sys.Name); err == nil {
		return System{}, fmt.Errorf("classification system %s: %w", sys.Name, ErrAlreadyExists)
	}

	stored := &System{
		ID:            s.nextSystemID,
		Name:          sys.Name,
		AuthorityName: sys.AuthorityName,
		Description:   sys.Description,
		Version:       sys.Version,
	}
	s.nextSystemID++
	stored.Classes = s.assignClassIDs(sys.Classes)

	s.systems = append(s.systems, stored)
	return copySystem(stored), nil
}

// DeleteSystem удаляет систему вместе с её маппингами и стилями.
func (s *Store) DeleteSystem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(key)
	if err != nil {
		return err
	}

	s.systems = slices.DeleteFunc(s.systems, func(x *System) bool { return x == sys })
	for k := range s.mappings {
		if k.source == sys.Name || k.target == sys.Name {
			delete(s.mappings, k)
		}
	}
	delete(s.styles, sys.Name)
	return nil
}

// --- Классы ---

// Classes возвращает классы системы.
func (s *Store) Classes(system string) ([]Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sys.Classes), nil
}

// Class возвращает класс системы по id.
func (s *Store) Class(system, classID string) (Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return Class{}, err
	}
	i := slices.IndexFunc(sys.Classes, func(c Class) bool { return strconv.Itoa(c.ID) == classID })
	if i < 0 {
		return Class{}, fmt.Errorf("class %s: %w", classID, ErrNotFound)
	}
	return sys.Classes[i], nil
}

// AddClasses добавляет классы в систему.
func (s *Store) AddClasses(system string, classes []Class) ([]Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: class name is required", ErrInvalid)
		}
	}

	added := s.assignClassIDs(classes)
	sys.Classes = append(sys.Classes, added...)
	return added, nil
}

// SetParent делает класс parentID родителем класса classID.
func (s *Store) SetParent(system string, classID, parentID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(sys.Classes, func(c Class) bool { return c.ID == classID })
	if i < 0 || !slices.ContainsFunc(sys.Classes, func(c Class) bool { return c.ID == parentID }) {
		return fmt.Errorf("class %d: %w", classID, ErrNotFound)
	}
	sys.Classes[i].ParentID = parentID
	return nil
}

// DeleteClass удаляет класс системы по id.
func (s *Store) DeleteClass(system, classID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return err
	}
	n := len(sys.Classes)
	sys.Classes = slices.DeleteFunc(sys.Classes, func(c Class) bool { return strconv.Itoa(c.ID) == classID })
	if len(sys.Classes) == n {
		return fmt.Errorf("class %s: %w", classID, ErrNotFound)
	}
	return nil
}

// --- Маппинги ---

// Mappings возвращает маппинг source -> target.
func (s *Store) Mappings(source, target string) ([]Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, err := s.mappingKey(source, target)
	if err != nil {
		return nil, err
	}
	m, ok := s.mappings[key]
	if !ok {
		return nil, fmt.Errorf("mapping %s -> %s: %w", source, target, ErrNotFound)
	}
	return slices.Clone(m), nil
}

// MappingTargets возвращает имена систем, в которые есть маппинг из source.
func (s *Store) MappingTargets(source string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, err := s.findSystem(source)
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, sys := range s.systems {
		if _, ok := s.mappings[mappingKey{source: src.Name, target: sys.Name}]; ok {
			targets = append(targets, sys.Name)
		}
	}
	return targets, nil
}

// AddMappings добавляет соответствия в маппинг source -> target.
func (s *Store) AddMappings(source, target string, mappings []Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.mappingKey(source, target)
	if err != nil {
		return err
	}
	for _, m := range mappings {
		if m.SourceClass == "" || m.TargetClass == "" {
			return fmt.Errorf("%w: source_class and target_class are required", ErrInvalid)
		}
	}
	s.mappings[key] = append(s.mappings[key], mappings...)
	return nil
}

// DeleteMapping удаляет маппинг source -> target.
func (s *Store) DeleteMapping(source, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.mappingKey(source, target)
	if err != nil {
		return err
	}
	if _, ok := s.mappings[key]; !ok {
		return fmt.Errorf("mapping %s -> %s: %w", source, target, ErrNotFound)
	}
	delete(s.mappings, key)
	return nil
}

// --- Стили ---

// StyleFormats возвращает форматы стилей.
func (s *Store) StyleFormats() []StyleFormat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.formats)
}

// AddStyleFormat добавляет формат стиля.
func (s *Store) AddStyleFormat(name string) (StyleFormat, error) {
	if name == "" {
		return StyleFormat{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.formats, func(f StyleFormat) bool { return f.Name == name }) {
		return StyleFormat{}, fmt.Errorf("style format %s: %w", name, ErrAlreadyExists)
	}
	f := StyleFormat{ID: s.nextFormatID, Name: name}
	s.nextFormatID++
	s.formats = append(s.formats, f)
	return f, nil
}

// DeleteStyleFormat удаляет формат стиля и все стили в этом формате.
func (s *Store) DeleteStyleFormat(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.formats)
	s.formats = slices.DeleteFunc(s.formats, func(f StyleFormat) bool { return f.Name == name })
	if len(s.formats) == n {
		return fmt.Errorf("style format %s: %w", name, ErrNotFound)
	}
	for _, byFormat := range s.styles {
		delete(byFormat, name)
	}
	return nil
}

// Styles возвращает форматы, в которых у системы есть стиль,
// в порядке списка форматов.
func (s *Store) Styles(system string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, f := range s.formats {
		if _, ok := s.styles[sys.Name][f.Name]; ok {
			result = append(result, f.Name)
		}
	}
	return result, nil
}

// Style возвращает файл стиля системы.
func (s *Store) Style(system, format string) (StyleFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return StyleFile{}, err
	}
	f, ok := s.styles[sys.Name][format]
	if !ok {
		return StyleFile{}, fmt.Errorf("style %s/%s: %w", sys.Name, format, ErrNotFound)
	}
	return StyleFile{Name: f.Name, Content: slices.Clone(f.Content)}, nil
}

// AddStyle сохраняет файл стиля системы. Формат должен существовать.
func (s *Store) AddStyle(system, format string, file StyleFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(s.formats, func(f StyleFormat) bool { return f.Name == format }) {
		return fmt.Errorf("style format %s: %w", format, ErrNotFound)
	}

	if s.styles[sys.Name] == nil {
		s.styles[sys.Name] = make(map[string]StyleFile)
	}
	s.styles[sys.Name][format] = StyleFile{Name: file.Name, Content: slices.Clone(file.Content)}
	return nil
}

// DeleteStyle удаляет стиль системы.
func (s *Store) DeleteStyle(system, format string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sys, err := s.findSystem(system)
	if err != nil {
		return err
	}
	if _, ok := s.styles[sys.Name][format]; !ok {
		return fmt.Errorf("style %s/%s: %w", sys.Name, format, ErrNotFound)
	}
	delete(s.styles[sys.Name], format)
	return nil
}

// --- helpers (вызываются под блокировкой) ---

func (s *Store) findSystem(key string) (*System, error) {
	for _, sys := range s.systems {
		if sys.Name == key || strconv.Itoa(sys.ID) == key {
			return sys, nil
		}
	}
	return nil, fmt.Errorf("classification system %s: %w", key, ErrNotFound)
}

func (s *Store) mappingKey(source, target string) (mappingKey, error) {
	src, err := s.findSystem(source)
	if err != nil {
		return mappingKey{}, err
	}
	tgt, err := s.findSystem(target)
	if err != nil {
		return mappingKey{}, err
	}
	return mappingKey{source: src.Name, target: tgt.Name}, nil
}

func (s *Store) assignClassIDs(classes []Class) []Class {
	result := make([]Class, 0, len(classes))
	for _, c := range classes {
		c.ID = s.nextClassID
		s.nextClassID++
		result = append(result, c)
	}
	return result
}

func copySystem(sys *System) System {
	c := *sys
	c.Classes = slices.Clone(sys.Classes)
	return c
}
