package lccs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"github.com/shaiso/lccs/internal/file"
	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// Service — клиент LCCS-WS с реестром систем классификации.
//
// Реестр заполняется лениво: списком систем (один раз) и запросами
// отдельных систем. Service безопасен для конкурентного использования.
type Service struct {
	client    *transport.Client
	schema    *schema.Validator
	validator *domain.Validator
	files     *file.Handler
	logger    *slog.Logger

	mu      sync.RWMutex
	systems map[string]*domain.ClassificationSystem // по имени
	order   []string                                // имена в порядке сервера
	listed  bool
}

// New создаёт Service для сервиса по адресу baseURL.
func New(baseURL string, opts ...Option) (*Service, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	topts := []transport.Option{
		transport.WithAccessToken(o.accessToken),
		transport.WithLogger(logger),
	}
	topts = append(topts, o.transport...)

	client, err := transport.New(baseURL, topts...)
	if err != nil {
		return nil, fmt.Errorf("create transport: %w", err)
	}

	return &Service{
		client:    client,
		schema:    o.schema,
		validator: domain.NewValidator(),
		files:     file.New(o.fs),
		logger:    logger,
		systems:   make(map[string]*domain.ClassificationSystem),
	}, nil
}

// URL возвращает адрес сервиса без завершающего "/".
func (s *Service) URL() string {
	return s.client.BaseURL()
}

// String реализует fmt.Stringer.
func (s *Service) String() string {
	return fmt.Sprintf("<LCCS [%s]>", s.URL())
}

// ClassificationSystems возвращает имена систем в порядке сервера.
// Список запрашивается один раз, дальше берётся из реестра.
func (s *Service) ClassificationSystems(ctx context.Context) ([]string, error) {
	const op = "list classification systems"

	s.mu.RLock()
	if s.listed {
		names := slices.Clone(s.order)
		s.mu.RUnlock()
		return names, nil
	}
	s.mu.RUnlock()

	payload, err := s.client.Get(ctx, "classification_systems", nil)
	if err != nil {
		return nil, notFound(op, "", err)
	}

	systems, err := domain.ParseClassificationSystems(payload.Body)
	if err != nil {
		return nil, notFound(op, "", err)
	}
	for _, cs := range systems {
		if err := s.check(schema.KindClassificationSystem, cs.Raw()); err != nil {
			return nil, notFound(op, cs.Name(), err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	for _, cs := range systems {
		// Уже закэшированная запись сохраняется: повторный запрос системы
		// должен вернуть тот же объект.
		if _, ok := s.systems[cs.Name()]; !ok {
			s.systems[cs.Name()] = cs
		}
		s.order = append(s.order, cs.Name())
	}
	s.listed = true

	s.logger.Debug("classification systems listed", "count", len(systems))
	return slices.Clone(s.order), nil
}

// ClassificationSystem возвращает систему по имени или id.
// Закэшированная запись возвращается без запроса к серверу.
func (s *Service) ClassificationSystem(ctx context.Context, key string) (*domain.ClassificationSystem, error) {
	const op = "get classification system"

	if cs, ok := s.cached(key); ok {
		return cs, nil
	}

	payload, err := s.client.Get(ctx, systemPath(key), nil)
	if err != nil {
		return nil, notFound(op, key, err)
	}

	cs, err := s.parseSystem(payload.Body)
	if err != nil {
		return nil, notFound(op, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.systems[cs.Name()]; ok {
		return existing, nil
	}
	s.systems[cs.Name()] = cs
	return cs, nil
}

// AddClassificationSystem создаёт систему классификации. Если задан
// ClassesPath, классы загружаются вместе с системой.
func (s *Service) AddClassificationSystem(ctx context.Context, req domain.NewClassificationSystem) (*domain.ClassificationSystem, error) {
	const op = "add classification system"

	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(op, req.Name, err)
	}

	body := transport.PostBody{
		Form: url.Values{
			"name":           {req.Name},
			"authority_name": {req.AuthorityName},
			"description":    {req.Description},
			"version":        {req.Version},
		},
		Multipart: true,
	}
	if req.ClassesPath != "" {
		data, err := s.files.ReadJSON(req.ClassesPath)
		if err != nil {
			return nil, invalidInput(op, req.Name, err)
		}
		body.Files = []transport.File{jsonFile("classes", "classes.json", data)}
	}

	payload, err := s.client.Post(ctx, "classification_systems", body)
	if err != nil {
		return nil, insertFailed(op, req.Name, err)
	}

	cs, err := s.parseSystem(payload.Body)
	if err != nil {
		return nil, insertFailed(op, req.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.systems[cs.Name()]; !ok && s.listed {
		s.order = append(s.order, cs.Name())
	}
	s.systems[cs.Name()] = cs

	s.logger.Debug("classification system added", "name", cs.Name(), "id", cs.ID())
	return cs, nil
}

// DeleteClassificationSystem удаляет систему и убирает её из реестра.
func (s *Service) DeleteClassificationSystem(ctx context.Context, key string) error {
	const op = "delete classification system"

	if key == "" {
		return invalidInput(op, key, domain.ErrInvalidRequest)
	}

	if _, err := s.client.Delete(ctx, systemPath(key), nil); err != nil {
		return deleteFailed(op, key, err)
	}

	s.evict(key)
	s.logger.Debug("classification system deleted", "system", key)
	return nil
}

// --- Реестр ---

// cached ищет систему в реестре по имени, затем по id.
func (s *Service) cached(key string) (*domain.ClassificationSystem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cs, ok := s.systems[key]; ok {
		return cs, true
	}
	for _, cs := range s.systems {
		if cs.Matches(key) {
			return cs, true
		}
	}
	return nil, false
}

func (s *Service) evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, cs := range s.systems {
		if cs.Matches(key) {
			delete(s.systems, name)
			s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
		}
	}
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == key })
}

// --- Разбор и проверка ответов ---

func (s *Service) parseSystem(raw []byte) (*domain.ClassificationSystem, error) {
	cs, err := domain.ParseClassificationSystem(raw)
	if err != nil {
		return nil, err
	}
	if err := s.check(schema.KindClassificationSystem, cs.Raw()); err != nil {
		return nil, err
	}
	return cs, nil
}

// check проверяет документ по схеме, если валидация включена.
func (s *Service) check(kind string, raw []byte) error {
	if s.schema == nil {
		return nil
	}
	return s.schema.Validate(kind, raw)
}

// --- Пути ресурсов ---

func systemPath(key string) string {
	return "classification_system/" + url.PathEscape(key)
}

func jsonFile(field, name string, data []byte) transport.File {
	return transport.File{
		Field:       field,
		Name:        name,
		ContentType: transport.ContentJSON,
		Content:     bytes.NewReader(data),
	}
}
