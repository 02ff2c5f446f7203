package lccs

import (
	"context"
	"errors"
	"net/url"

	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// Classes возвращает классы системы.
func (s *Service) Classes(ctx context.Context, system string) (*domain.Classes, error) {
	return s.ClassesFiltered(ctx, system, nil)
}

// ClassesFiltered возвращает классы системы, передавая params серверу
// как параметры запроса. Система без ссылки "classes" не имеет классов.
func (s *Service) ClassesFiltered(ctx context.Context, system string, params url.Values) (*domain.Classes, error) {
	const op = "get classes"

	href, ok, err := s.classesHref(ctx, system)
	if err != nil {
		return nil, notFound(op, system, err)
	}
	if !ok {
		return domain.NewClasses(), nil
	}

	payload, err := s.client.Get(ctx, href, params)
	if err != nil {
		return nil, notFound(op, system, err)
	}

	classes, err := domain.ParseClasses(payload.Body)
	if err != nil {
		return nil, notFound(op, system, err)
	}
	for _, c := range classes.All() {
		if err := s.check(schema.KindClass, c.Raw()); err != nil {
			return nil, notFound(op, system, err)
		}
	}
	return classes, nil
}

// Class возвращает класс системы по id. Если класса с таким id нет,
// key ищется среди имён классов.
func (s *Service) Class(ctx context.Context, system, key string) (*domain.Class, error) {
	const op = "get class"
	resource := system + "/" + key

	href, ok, err := s.classesHref(ctx, system)
	if err != nil {
		return nil, notFound(op, resource, err)
	}
	if !ok {
		return nil, notFound(op, resource, domain.ErrClassNotFound)
	}

	c, err := s.fetchClass(ctx, href, key)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, transport.ErrNotFound) {
		return nil, notFound(op, resource, err)
	}

	classes, listErr := s.Classes(ctx, system)
	if listErr != nil {
		return nil, notFound(op, resource, err)
	}
	byName, found := classes.ByName(key)
	if !found {
		return nil, notFound(op, resource, domain.ErrClassNotFound)
	}
	if byName.ID() == key {
		return byName, nil
	}

	c, err = s.fetchClass(ctx, href, byName.ID())
	if err != nil {
		return nil, notFound(op, resource, err)
	}
	return c, nil
}

// AddClasses загружает классы из JSON файла path в систему.
// Возвращает сообщение сервера.
func (s *Service) AddClasses(ctx context.Context, system, path string) (string, error) {
	const op = "add classes"

	req := domain.NewClassesFile{System: system, Path: path}
	if err := s.validator.Validate(req); err != nil {
		return "", invalidInput(op, system, err)
	}

	data, err := s.files.ReadJSON(path)
	if err != nil {
		return "", invalidInput(op, system, err)
	}

	payload, err := s.client.Post(ctx, systemPath(system)+"/classes", transport.PostBody{
		Files: []transport.File{jsonFile("classes", "classes.json", data)},
	})
	if err != nil {
		return "", insertFailed(op, system, err)
	}

	s.logger.Debug("classes added", "system", system)
	return payload.Message(), nil
}

// DeleteClass удаляет класс системы. key — имя или id класса.
func (s *Service) DeleteClass(ctx context.Context, system, key string) error {
	const op = "delete class"
	resource := system + "/" + key

	classes, err := s.Classes(ctx, system)
	if err != nil {
		return deleteFailed(op, resource, err)
	}
	c, ok := classes.Resolve(key)
	if !ok {
		return deleteFailed(op, resource, domain.ErrClassNotFound)
	}

	ref := systemPath(system) + "/classes/" + url.PathEscape(c.ID())
	if _, err := s.client.Delete(ctx, ref, nil); err != nil {
		return deleteFailed(op, resource, err)
	}

	s.logger.Debug("class deleted", "system", system, "class", c.Name())
	return nil
}

// classesHref возвращает ссылку "classes" системы.
func (s *Service) classesHref(ctx context.Context, system string) (string, bool, error) {
	cs, err := s.ClassificationSystem(ctx, system)
	if err != nil {
		return "", false, err
	}
	link, ok := cs.Links().First(domain.RelClasses)
	if !ok {
		return "", false, nil
	}
	return link.Href(), true, nil
}

func (s *Service) fetchClass(ctx context.Context, href, id string) (*domain.Class, error) {
	payload, err := s.client.Get(ctx, href+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	c, err := domain.ParseClass(payload.Body)
	if err != nil {
		return nil, err
	}
	if err := s.check(schema.KindClass, c.Raw()); err != nil {
		return nil, err
	}
	return c, nil
}
