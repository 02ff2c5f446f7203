package mockws

import (
	"net/url"
	"strconv"
)

// LinkResponse — гиперссылка в ответе.
type LinkResponse struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// LinksResponse — гипермедиа-ответ без данных.
type LinksResponse struct {
	Links []LinkResponse `json:"links"`
}

// SystemResponse — система классификации.
type SystemResponse struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	AuthorityName string         `json:"authority_name"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	Links         []LinkResponse `json:"links"`
}

// SystemsResponse — список систем.
type SystemsResponse struct {
	ClassificationSystems []SystemResponse `json:"classification_systems"`
}

// ClassResponse — класс системы.
type ClassResponse struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Code          string         `json:"code"`
	Description   string         `json:"description"`
	ClassParentID *int           `json:"class_parent_id"`
	Links         []LinkResponse `json:"links"`
}

// MappingResponse — соответствие классов.
type MappingResponse struct {
	Mapping
	Links []LinkResponse `json:"links"`
}

// MappingGroupResponse — маппинг между двумя системами.
type MappingGroupResponse struct {
	Mappings []MappingResponse `json:"mappings"`
	Links    []LinkResponse    `json:"links"`
}

// StyleFormatResponse — формат стиля.
type StyleFormatResponse struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Links []LinkResponse `json:"links"`
}

// CreateStyleFormatRequest — запрос на создание формата.
type CreateStyleFormatRequest struct {
	Name string `json:"name"`
}

// --- Ссылки ---

func link(rel, href, title string) LinkResponse {
	return LinkResponse{Rel: rel, Href: href, Title: title, Type: "application/json"}
}

func rootLink(base string) LinkResponse {
	return link("root", base+"/", "API root")
}

func systemHref(base, system string) string {
	return base + "/classification_system/" + url.PathEscape(system)
}

func classesHref(base, system string) string {
	return systemHref(base, system) + "/classes"
}

func stylesHref(base, system string) string {
	return systemHref(base, system) + "/styles"
}

func mappingsHref(base, source string) string {
	return base + "/mappings/" + url.PathEscape(source)
}

// --- Конвертеры ---

// SystemFromStore конвертирует System в SystemResponse.
func SystemFromStore(base string, s System) SystemResponse {
	return SystemResponse{
		ID:            s.ID,
		Name:          s.Name,
		AuthorityName: s.AuthorityName,
		Description:   s.Description,
		Version:       s.Version,
		Links: []LinkResponse{
			link("self", systemHref(base, s.Name), "Classification system"),
			link("classes", classesHref(base, s.Name), "Classes of the classification system"),
			link("style", stylesHref(base, s.Name), "Styles of the classification system"),
			link("parent", base+"/classification_systems", "Classification systems"),
			rootLink(base),
		},
	}
}

// ClassFromStore конвертирует Class в ClassResponse. all — все классы
// системы, из них строятся ссылки parent/child.
func ClassFromStore(base, system string, c Class, all []Class) ClassResponse {
	href := classesHref(base, system)
	resp := ClassResponse{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Links: []LinkResponse{
			link("self", href+"/"+strconv.Itoa(c.ID), c.Name),
			link("classes", href, "Classes of the classification system"),
		},
	}

	if c.ParentID != 0 {
		parentID := c.ParentID
		resp.ClassParentID = &parentID
		resp.Links = append(resp.Links, link("parent", href+"/"+strconv.Itoa(c.ParentID), "Parent class"))
	}
	for _, child := range all {
		if child.ParentID == c.ID {
			resp.Links = append(resp.Links, link("child", href+"/"+strconv.Itoa(child.ID), child.Name))
		}
	}
	return resp
}

// MappingGroupFromStore конвертирует маппинг в MappingGroupResponse.
func MappingGroupFromStore(base, source, target string, mappings []Mapping) MappingGroupResponse {
	resp := MappingGroupResponse{
		Mappings: make([]MappingResponse, 0, len(mappings)),
		Links: []LinkResponse{
			link("self", mappingsHref(base, source)+"/"+url.PathEscape(target), "Mapping "+source+" -> "+target),
			link("parent", mappingsHref(base, source), "Available mappings of "+source),
			rootLink(base),
		},
	}
	for _, m := range mappings {
		resp.Mappings = append(resp.Mappings, MappingResponse{
			Mapping: m,
			Links: []LinkResponse{
				link("source_class", classesHref(base, source)+"/"+url.PathEscape(m.SourceClass), "Source class"),
				link("target_class", classesHref(base, target)+"/"+url.PathEscape(m.TargetClass), "Target class"),
			},
		})
	}
	return resp
}

// StyleFormatFromStore конвертирует StyleFormat в StyleFormatResponse.
func StyleFormatFromStore(base string, f StyleFormat) StyleFormatResponse {
	return StyleFormatResponse{
		ID:   f.ID,
		Name: f.Name,
		Links: []LinkResponse{
			link("self", base+"/style_formats/"+url.PathEscape(f.Name), f.Name),
			rootLink(base),
		},
	}
}
