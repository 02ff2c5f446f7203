package mockws

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxUploadSize = 32 << 20 // 32 MB

// ListSystems возвращает все системы классификации.
// GET /classification_systems
func (h *Handler) ListSystems(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	systems := h.store.Systems()

	result := SystemsResponse{ClassificationSystems: make([]SystemResponse, 0, len(systems))}
	for _, s := range systems {
		result.ClassificationSystems = append(result.ClassificationSystems, SystemFromStore(base, s))
	}

	Success(w, result)
}

// CreateSystem создаёт систему классификации.
// POST /classification_systems (multipart: name, authority_name,
// description, version, необязательный файл classes)
func (h *Handler) CreateSystem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		BadRequest(w, "invalid multipart form")
		return
	}

	sys := System{
		Name:          r.FormValue("name"),
		AuthorityName: r.FormValue("authority_name"),
		Description:   r.FormValue("description"),
		Version:       r.FormValue("version"),
	}
	for _, field := range []string{"name", "authority_name", "description", "version"} {
		if r.FormValue(field) == "" {
			BadRequest(w, field+" is required")
			return
		}
	}

	if _, ok := r.MultipartForm.File["classes"]; ok {
		var classes []Class
		if err := readJSONFile(r, "classes", &classes); err != nil {
			BadRequest(w, err.Error())
			return
		}
		sys.Classes = classes
	}

	created, err := h.store.AddSystem(sys)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Created(w, SystemFromStore(baseURL(r), created))
}

// GetSystem возвращает систему по имени или id.
// GET /classification_system/{system}
func (h *Handler) GetSystem(w http.ResponseWriter, r *http.Request) {
	sys, err := h.store.System(r.PathValue("system"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Success(w, SystemFromStore(baseURL(r), sys))
}

// DeleteSystem удаляет систему.
// DELETE /classification_system/{system}
func (h *Handler) DeleteSystem(w http.ResponseWriter, r *http.Request) {
	if HandleStoreError(w, h.logger, h.store.DeleteSystem(r.PathValue("system"))) {
		return
	}

	NoContent(w)
}

// ListClasses возвращает классы системы.
// GET /classification_system/{system}/classes
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	system := r.PathValue("system")
	sys, err := h.store.System(system)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	// Фильтр ?name= поддерживается как у LCCS-WS.
	name := r.URL.Query().Get("name")

	base := baseURL(r)
	result := make([]ClassResponse, 0, len(sys.Classes))
	for _, c := range sys.Classes {
		if name != "" && c.Name != name {
			continue
		}
		result = append(result, ClassFromStore(base, sys.Name, c, sys.Classes))
	}

	Success(w, result)
}

// GetClass возвращает класс системы по id.
// GET /classification_system/{system}/classes/{class}
func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	sys, err := h.store.System(r.PathValue("system"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	c, err := h.store.Class(sys.Name, r.PathValue("class"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Success(w, ClassFromStore(baseURL(r), sys.Name, c, sys.Classes))
}

// CreateClasses добавляет классы в систему.
// POST /classification_system/{system}/classes (multipart: файл classes)
func (h *Handler) CreateClasses(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		BadRequest(w, "invalid multipart form")
		return
	}

	var classes []Class
	if err := readJSONFile(r, "classes", &classes); err != nil {
		BadRequest(w, err.Error())
		return
	}

	added, err := h.store.AddClasses(r.PathValue("system"), classes)
	if HandleStoreError(w, h.logger, err) {
		return
	}

	Message(w, "%d classes added", len(added))
}

// DeleteClass удаляет класс системы.
// DELETE /classification_system/{system}/classes/{class}
func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteClass(r.PathValue("system"), r.PathValue("class"))
	if HandleStoreError(w, h.logger, err) {
		return
	}

	NoContent(w)
}

// readJSONFile разбирает JSON файл из поля field multipart формы.
func readJSONFile(r *http.Request, field string, v any) error {
	f, _, err := r.FormFile(field)
	if err != nil {
		return fmt.Errorf("file %s is required", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read file %s: %w", field, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("file %s is not valid JSON", field)
	}
	return nil
}
