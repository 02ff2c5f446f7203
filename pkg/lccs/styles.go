package lccs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// StyleFormats возвращает форматы стилей, известные сервису.
//
// Сервер отдаёт либо массив форматов, либо гипермедиа-ответ,
// где каждый формат — child-ссылка с именем в title.
func (s *Service) StyleFormats(ctx context.Context) ([]*domain.StyleFormat, error) {
	const op = "get style formats"

	payload, err := s.client.Get(ctx, "style_formats", nil)
	if err != nil {
		return nil, notFound(op, "", err)
	}

	if payload.JSON().IsArray() {
		var formats []*domain.StyleFormat
		for _, item := range payload.JSON().Array() {
			f, err := s.parseStyleFormat([]byte(item.Raw))
			if err != nil {
				return nil, notFound(op, "", err)
			}
			formats = append(formats, f)
		}
		return formats, nil
	}

	links, err := s.parseLinks(payload.Body)
	if err != nil {
		return nil, notFound(op, "", err)
	}

	children := links.ByRelation(domain.RelChild)
	formats := make([]*domain.StyleFormat, 0, len(children))
	for _, l := range children {
		formats = append(formats, domain.StyleFormatFromLink(l))
	}
	return formats, nil
}

// Styles возвращает имена форматов, для которых у системы есть стиль.
func (s *Service) Styles(ctx context.Context, system string) ([]string, error) {
	const op = "get styles"

	payload, err := s.client.Get(ctx, systemPath(system)+"/styles", nil)
	if err != nil {
		return nil, notFound(op, system, err)
	}

	links, err := s.parseLinks(payload.Body)
	if err != nil {
		return nil, notFound(op, system, err)
	}
	return links.Titles(domain.RelChild), nil
}

// StyleFile скачивает стиль системы в формате format и записывает его:
//   - path пустой — в файл с именем из Content-Disposition
//   - path — каталог или оканчивается разделителем — в файл внутри него
//   - иначе — в сам path
//
// Возвращает путь записанного файла.
func (s *Service) StyleFile(ctx context.Context, system, format, path string) (string, error) {
	f, err := s.DownloadStyle(ctx, system, format)
	if err != nil {
		return "", err
	}

	target := s.files.Resolve(path, f.Name())
	if err := s.files.Write(target, f.Content()); err != nil {
		return "", fmt.Errorf("save style file: %w", err)
	}

	s.logger.Debug("style file saved", "system", system, "format", format, "path", target, "size", f.Size())
	return target, nil
}

// DownloadStyle скачивает стиль системы без записи на диск.
func (s *Service) DownloadStyle(ctx context.Context, system, format string) (*domain.StyleFile, error) {
	const op = "get style file"

	payload, err := s.client.Get(ctx, stylePath(system, format), nil)
	if err != nil {
		return nil, notFound(op, system+"/"+format, err)
	}
	if !payload.IsFile() {
		err := fmt.Errorf("%w: %s", transport.ErrUnexpectedContentType, payload.ContentType)
		return nil, notFound(op, system+"/"+format, err)
	}

	return domain.NewStyleFile(payload.FileName, payload.Body), nil
}

// AddStyle загружает файл стиля для системы. Файл отправляется под
// именем style_{system}_{format}.{extension}. Возвращает сообщение сервера.
func (s *Service) AddStyle(ctx context.Context, req domain.NewStyle) (string, error) {
	const op = "add style"
	resource := req.System + "/" + req.Format

	if req.Extension == "" {
		req.Extension = strings.TrimPrefix(filepath.Ext(req.Path), ".")
	}
	if err := s.validator.Validate(req); err != nil {
		return "", invalidInput(op, resource, err)
	}

	data, err := s.files.Read(req.Path)
	if err != nil {
		return "", invalidInput(op, resource, err)
	}

	name := "style_" + req.System + "_" + req.Format
	if req.Extension != "" {
		name += "." + req.Extension
	}

	payload, err := s.client.Post(ctx, systemPath(req.System)+"/styles", transport.PostBody{
		Form: url.Values{"style_format": {req.Format}},
		Files: []transport.File{{
			Field:       "style",
			Name:        name,
			ContentType: transport.ContentOctetStream,
			Content:     bytes.NewReader(data),
		}},
	})
	if err != nil {
		return "", insertFailed(op, resource, err)
	}

	s.logger.Debug("style added", "system", req.System, "format", req.Format, "file", name)
	return payload.Message(), nil
}

// AddStyleFormat создаёт формат стиля.
func (s *Service) AddStyleFormat(ctx context.Context, name string) (*domain.StyleFormat, error) {
	const op = "add style format"

	req := domain.NewStyleFormat{Name: name}
	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(op, name, err)
	}

	payload, err := s.client.Post(ctx, "style_formats", transport.PostBody{JSON: req})
	if err != nil {
		return nil, insertFailed(op, name, err)
	}

	raw := payload.Body
	// Сервер может вернуть только статус без записи формата.
	if !payload.JSON().Get("name").Exists() {
		if raw, err = json.Marshal(req); err != nil {
			return nil, insertFailed(op, name, err)
		}
	}

	f, err := s.parseStyleFormat(raw)
	if err != nil {
		return nil, insertFailed(op, name, err)
	}

	s.logger.Debug("style format added", "name", f.Name())
	return f, nil
}

// DeleteStyle удаляет стиль системы в формате format.
func (s *Service) DeleteStyle(ctx context.Context, system, format string) error {
	const op = "delete style"

	if system == "" || format == "" {
		return invalidInput(op, system+"/"+format, domain.ErrInvalidRequest)
	}

	if _, err := s.client.Delete(ctx, stylePath(system, format), nil); err != nil {
		return deleteFailed(op, system+"/"+format, err)
	}

	s.logger.Debug("style deleted", "system", system, "format", format)
	return nil
}

// DeleteStyleFormat удаляет формат стиля.
func (s *Service) DeleteStyleFormat(ctx context.Context, name string) error {
	const op = "delete style format"

	if name == "" {
		return invalidInput(op, name, domain.ErrInvalidRequest)
	}

	if _, err := s.client.Delete(ctx, "style_formats/"+url.PathEscape(name), nil); err != nil {
		return deleteFailed(op, name, err)
	}

	s.logger.Debug("style format deleted", "name", name)
	return nil
}

func (s *Service) parseStyleFormat(raw []byte) (*domain.StyleFormat, error) {
	f, err := domain.ParseStyleFormat(raw)
	if err != nil {
		return nil, err
	}
	if err := s.check(schema.KindStyleFormat, f.Raw()); err != nil {
		return nil, err
	}
	return f, nil
}

func stylePath(system, format string) string {
	return systemPath(system) + "/styles/" + url.PathEscape(format)
}
