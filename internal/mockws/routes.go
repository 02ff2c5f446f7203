package mockws

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		RequestID(h.logger),
		Recovery(h.logger),
		Logging(h.logger),
		Count(h.hits),
		Auth(h.authHeader, h.accessToken),
	)

	// Classification systems
	mux.Handle("GET /classification_systems", chain(http.HandlerFunc(h.ListSystems)))
	mux.Handle("POST /classification_systems", chain(http.HandlerFunc(h.CreateSystem)))
	mux.Handle("GET /classification_system/{system}", chain(http.HandlerFunc(h.GetSystem)))
	mux.Handle("DELETE /classification_system/{system}", chain(http.HandlerFunc(h.DeleteSystem)))

	// Classes
	mux.Handle("GET /classification_system/{system}/classes", chain(http.HandlerFunc(h.ListClasses)))
	mux.Handle("POST /classification_system/{system}/classes", chain(http.HandlerFunc(h.CreateClasses)))
	mux.Handle("GET /classification_system/{system}/classes/{class}", chain(http.HandlerFunc(h.GetClass)))
	mux.Handle("DELETE /classification_system/{system}/classes/{class}", chain(http.HandlerFunc(h.DeleteClass)))

	// Mappings
	mux.Handle("GET /mappings/{source}", chain(http.HandlerFunc(h.ListMappingTargets)))
	mux.Handle("GET /mappings/{source}/{target}", chain(http.HandlerFunc(h.GetMapping)))
	mux.Handle("POST /mappings/{source}/{target}", chain(http.HandlerFunc(h.CreateMapping)))
	mux.Handle("DELETE /mappings/{source}/{target}", chain(http.HandlerFunc(h.DeleteMapping)))

	// Styles
	mux.Handle("GET /style_formats", chain(http.HandlerFunc(h.ListStyleFormats)))
	mux.Handle("POST /style_formats", chain(http.HandlerFunc(h.CreateStyleFormat)))
	mux.Handle("DELETE /style_formats/{format}", chain(http.HandlerFunc(h.DeleteStyleFormat)))
	mux.Handle("GET /classification_system/{system}/styles", chain(http.HandlerFunc(h.ListStyles)))
	mux.Handle("POST /classification_system/{system}/styles", chain(http.HandlerFunc(h.CreateStyle)))
	mux.Handle("GET /classification_system/{system}/styles/{format}", chain(http.HandlerFunc(h.GetStyle)))
	mux.Handle("DELETE /classification_system/{system}/styles/{format}", chain(http.HandlerFunc(h.DeleteStyle)))
}

// NewServeMux возвращает ServeMux со всеми маршрутами h.
func NewServeMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}
