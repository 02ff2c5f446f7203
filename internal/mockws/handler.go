package mockws

import (
	"log/slog"
	"net/http"
	"sync"
)

// DefaultAuthHeader — заголовок с токеном доступа.
const DefaultAuthHeader = "x-api-key"

// Handler — обработчик API мок-сервиса.
type Handler struct {
	store       *Store
	logger      *slog.Logger
	accessToken string
	authHeader  string
	hits        *Hits
}

// Config — конфигурация для создания Handler.
type Config struct {
	Store       *Store
	Logger      *slog.Logger
	AccessToken string // пусто — токен не требуется
	AuthHeader  string // по умолчанию x-api-key
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Store == nil {
		cfg.Store = NewStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultAuthHeader
	}

	return &Handler{
		store:       cfg.Store,
		logger:      cfg.Logger,
		accessToken: cfg.AccessToken,
		authHeader:  cfg.AuthHeader,
		hits:        &Hits{counts: make(map[string]int)},
	}
}

// Store возвращает хранилище обработчика.
func (h *Handler) Store() *Store {
	return h.store
}

// Hits возвращает счётчик запросов.
func (h *Handler) Hits() *Hits {
	return h.hits
}

// Hits считает запросы по методу и пути.
type Hits struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *Hits) add(method, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[method+" "+path]++
}

// Count возвращает число запросов method path.
func (c *Hits) Count(method, path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[method+" "+path]
}

// Total возвращает общее число запросов.
func (c *Hits) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// baseURL возвращает адрес сервиса для ссылок в ответах.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
