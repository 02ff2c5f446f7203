package mockws

import (
	"net/http"
	"net/url"
)

// ListMappingTargets возвращает ссылки на маппинги системы.
// GET /mappings/{source}
func (h *Handler) ListMappingTargets(w http.ResponseWriter, r *http.Request) {
	source := r.PathValue("source")
	targets, err := h.store.MappingTargets(source)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	base := baseURL(r)
	links := []LinkResponse{
		link("self", mappingsHref(base, source), "Available mappings of "+source),
		rootLink(base),
	}
	for _, t := range targets {
		links = append(links, link("child", mappingsHref(base, source)+"/"+url.PathEscape(t), t))
	}

	Success(w, LinksResponse{Links: links})
}

// GetMapping возвращает маппинг source -> target.
// GET /mappings/{source}/{target}
func (h *Handler) GetMapping(w http.ResponseWriter, r *http.Request) {
	source, target := r.PathValue("source"), r.PathValue("target")
	mappings, err := h.store.Mappings(source, target)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Success(w, MappingGroupFromStore(baseURL(r), source, target, mappings))
}

// CreateMapping добавляет соответствия в маппинг.
// POST /mappings/{source}/{target} (multipart: файл mappings)
func (h *Handler) CreateMapping(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		BadRequest(w, "invalid multipart form")
		return
	}

	var mappings []Mapping
	if err := readJSONFile(r, "mappings", &mappings); err != nil {
		BadRequest(w, err.Error())
		return
	}

	source, target := r.PathValue("source"), r.PathValue("target")
	if HandleStoreError(w, h.logger, h.store.AddMappings(source, target, mappings)) {
		return
	}

	Message(w, "mappings %s -> %s added", source, target)
}

// DeleteMapping удаляет маппинг.
// DELETE /mappings/{source}/{target}
func (h *Handler) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteMapping(r.PathValue("source"), r.PathValue("target"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	NoContent(w)
}
