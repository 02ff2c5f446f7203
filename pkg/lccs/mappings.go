package lccs

import (
	"context"
	"net/url"

	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
	"github.com/tidwall/gjson"
)

// Mappings возвращает маппинг классов системы source в классы target.
func (s *Service) Mappings(ctx context.Context, source, target string) (*domain.MappingGroup, error) {
	const op = "get mappings"
	resource := source + " -> " + target

	payload, err := s.client.Get(ctx, mappingPath(source, target), nil)
	if err != nil {
		return nil, notFound(op, resource, err)
	}

	group, err := s.parseMappingGroup(payload.Body, source, target)
	if err != nil {
		return nil, notFound(op, resource, err)
	}
	return group, nil
}

// AvailableMappings возвращает имена систем, в которые есть маппинг
// из source: заголовки child-ссылок ответа в порядке сервера.
func (s *Service) AvailableMappings(ctx context.Context, source string) ([]string, error) {
	const op = "get available mappings"

	payload, err := s.client.Get(ctx, "mappings/"+url.PathEscape(source), nil)
	if err != nil {
		return nil, notFound(op, source, err)
	}

	links, err := s.parseLinks(payload.Body)
	if err != nil {
		return nil, notFound(op, source, err)
	}
	return links.Titles(domain.RelChild), nil
}

// AddMapping загружает маппинг из JSON файла path.
func (s *Service) AddMapping(ctx context.Context, source, target, path string) (*domain.MappingGroup, error) {
	const op = "add mapping"
	resource := source + " -> " + target

	req := domain.NewMapping{Source: source, Target: target, Path: path}
	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(op, resource, err)
	}

	data, err := s.files.ReadJSON(path)
	if err != nil {
		return nil, invalidInput(op, resource, err)
	}

	payload, err := s.client.Post(ctx, mappingPath(source, target), transport.PostBody{
		Files: []transport.File{jsonFile("mappings", "mappings.json", data)},
	})
	if err != nil {
		return nil, insertFailed(op, resource, err)
	}

	s.logger.Debug("mapping added", "source", source, "target", target)

	// Сервер может ответить только статусом: тогда группа запрашивается заново.
	if !gjson.GetBytes(payload.Body, "mappings").Exists() {
		group, err := s.Mappings(ctx, source, target)
		if err != nil {
			return nil, insertFailed(op, resource, err)
		}
		return group, nil
	}

	group, err := s.parseMappingGroup(payload.Body, source, target)
	if err != nil {
		return nil, insertFailed(op, resource, err)
	}
	return group, nil
}

// DeleteMapping удаляет маппинг source -> target.
func (s *Service) DeleteMapping(ctx context.Context, source, target string) error {
	const op = "delete mapping"
	resource := source + " -> " + target

	if source == "" || target == "" {
		return invalidInput(op, resource, domain.ErrInvalidRequest)
	}

	if _, err := s.client.Delete(ctx, mappingPath(source, target), nil); err != nil {
		return deleteFailed(op, resource, err)
	}

	s.logger.Debug("mapping deleted", "source", source, "target", target)
	return nil
}

func (s *Service) parseMappingGroup(raw []byte, source, target string) (*domain.MappingGroup, error) {
	group, err := domain.ParseMappingGroup(raw, source, target)
	if err != nil {
		return nil, err
	}
	if err := s.check(schema.KindMappingGroup, group.Raw()); err != nil {
		return nil, err
	}
	return group, nil
}

// parseLinks разбирает гипермедиа-ответ. Отсутствие нужных ссылок
// не ошибка: результат просто пустой.
func (s *Service) parseLinks(raw []byte) (domain.Links, error) {
	if err := s.check(schema.KindHypermedia, raw); err != nil {
		return nil, err
	}
	return domain.ParseLinks(raw)
}

func mappingPath(source, target string) string {
	return "mappings/" + url.PathEscape(source) + "/" + url.PathEscape(target)
}
