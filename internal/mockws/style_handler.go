package mockws

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// ListStyleFormats возвращает форматы стилей child-ссылками.
// GET /style_formats
func (h *Handler) ListStyleFormats(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	links := []LinkResponse{
		link("self", base+"/style_formats", "Style formats"),
		rootLink(base),
	}
	for _, f := range h.store.StyleFormats() {
		links = append(links, link("child", base+"/style_formats/"+url.PathEscape(f.Name), f.Name))
	}

	Success(w, LinksResponse{Links: links})
}

// CreateStyleFormat создаёт формат стиля.
// POST /style_formats
func (h *Handler) CreateStyleFormat(w http.ResponseWriter, r *http.Request) {
	var req CreateStyleFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	f, err := h.store.AddStyleFormat(req.Name)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Created(w, StyleFormatFromStore(baseURL(r), f))
}

// DeleteStyleFormat удаляет формат стиля.
// DELETE /style_formats/{format}
func (h *Handler) DeleteStyleFormat(w http.ResponseWriter, r *http.Request) {
	if HandleStoreError(w, h.logger, h.store.DeleteStyleFormat(r.PathValue("format"))) {
		return
	}

	NoContent(w)
}

// ListStyles возвращает форматы, в которых у системы есть стиль.
// GET /classification_system/{system}/styles
func (h *Handler) ListStyles(w http.ResponseWriter, r *http.Request) {
	system := r.PathValue("system")
	formats, err := h.store.Styles(system)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	base := baseURL(r)
	links := []LinkResponse{
		link("self", stylesHref(base, system), "Styles of "+system),
		link("parent", systemHref(base, system), "Classification system"),
		rootLink(base),
	}
	for _, f := range formats {
		links = append(links, LinkResponse{
			Rel:   "child",
			Href:  stylesHref(base, system) + "/" + url.PathEscape(f),
			Title: f,
			Type:  "application/octet-stream",
		})
	}

	Success(w, LinksResponse{Links: links})
}

// GetStyle отдаёт файл стиля.
// GET /classification_system/{system}/styles/{format}
func (h *Handler) GetStyle(w http.ResponseWriter, r *http.Request) {
	f, err := h.store.Style(r.PathValue("system"), r.PathValue("format"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	File(w, f.Name, f.Content)
}

// CreateStyle сохраняет файл стиля.
// POST /classification_system/{system}/styles (multipart: style_format, файл style)
func (h *Handler) CreateStyle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		BadRequest(w, "invalid multipart form")
		return
	}

	format := r.FormValue("style_format")
	if format == "" {
		BadRequest(w, "style_format is required")
		return
	}

	file, header, err := r.FormFile("style")
	if err != nil {
		BadRequest(w, "file style is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	system := r.PathValue("system")
	err = h.store.AddStyle(system, format, StyleFile{Name: header.Filename, Content: content})
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Message(w, "style %s added to %s", format, system)
}

// DeleteStyle удаляет файл стиля.
// DELETE /classification_system/{system}/styles/{format}
func (h *Handler) DeleteStyle(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteStyle(r.PathValue("system"), r.PathValue("format"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	NoContent(w)
}
