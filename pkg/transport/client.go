package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"
)

const (
	// DefaultAuthHeader — заголовок, в котором передаётся access token.
	DefaultAuthHeader = "x-api-key"

	// HeaderRequestID — заголовок с идентификатором запроса.
	HeaderRequestID = "X-Request-ID"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "lccs-go"

	// DefaultMaxResponseSize — предельный размер тела ответа.
	DefaultMaxResponseSize int64 = 64 * 1024 * 1024 // 64 MB
)

// Client — HTTP-клиент для LCCS-WS.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	accessToken string
	authHeader  string
	userAgent   string
	maxBody     int64
	logger      *slog.Logger
	metrics     *metrics
}

// Option настраивает Client.
type Option func(*Client)

// WithAccessToken задаёт токен, который добавляется к каждому запросу.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// WithAuthHeader задаёт имя заголовка для токена (по умолчанию x-api-key).
func WithAuthHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.authHeader = name
		}
	}
}

// WithHTTPClient подменяет *http.Client (тесты, кастомный Transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger задаёт логгер для отладочных сообщений о запросах.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegisterer включает Prometheus метрики запросов.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg != nil {
			c.metrics = newMetrics(reg)
		}
	}
}

// WithUserAgent задаёт User-Agent запросов.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxResponseSize задаёт предельный размер тела ответа в байтах.
// Ответ больше предела — ошибка ErrResponseTooLarge, а не обрезанные данные.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New создаёт клиент для сервиса по адресу baseURL.
// Завершающий "/" в адресе отбрасывается.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not an absolute URL", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		authHeader: DefaultAuthHeader,
		userAgent:  defaultUserAgent,
		maxBody:    DefaultMaxResponseSize,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL возвращает адрес сервиса без завершающего "/".
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL строит абсолютный URL для ref. Абсолютные ссылки (href из
// ответов сервера) используются как есть, относительные — от базового URL.
func (c *Client) URL(ref string, params url.Values) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}

	if !u.IsAbs() {
		rel := *c.baseURL
		rel.Path = strings.TrimRight(rel.Path, "/") + "/" + strings.TrimLeft(u.Path, "/")
		rel.RawPath = ""
		if u.RawPath != "" {
			rel.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(u.RawPath, "/")
		}
		rel.RawQuery = u.RawQuery
		u = &rel
	}

	if len(params) > 0 {
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// File — файл для multipart запроса.
type File struct {
	Field       string    // имя поля формы
	Name        string    // имя файла
	ContentType string    // по умолчанию application/octet-stream
	Content     io.Reader // содержимое
}

// PostBody — тело POST запроса.
//
// Если заданы Files или Multipart, отправляется multipart/form-data
// вместе с Form. Иначе, если задан JSON, — application/json.
// Иначе — urlencoded Form.
type PostBody struct {
	Form      url.Values
	JSON      any
	Files     []File
	Multipart bool
}

// Get выполняет GET и разбирает ответ по Content-Type.
func (c *Client) Get(ctx context.Context, ref string, params url.Values) (*Payload, error) {
	resp, uri, err := c.do(ctx, http.MethodGet, ref, params, nil, "")
	if err != nil {
		return nil, err
	}

	mt := mediaType(resp.header.Get("Content-Type"))
	switch {
	case mt == ContentOctetStream:
		return &Payload{
			StatusCode:  resp.status,
			ContentType: mt,
			FileName:    fileName(resp.header.Get("Content-Disposition")),
			Body:        resp.body,
		}, nil
	case isJSON(mt):
		if !gjson.ValidBytes(resp.body) {
			return nil, &ResponseError{Method: http.MethodGet, URL: uri, StatusCode: resp.status, Err: ErrInvalidJSON}
		}
		return &Payload{StatusCode: resp.status, ContentType: mt, Body: resp.body}, nil
	default:
		return nil, &ResponseError{
			Method:     http.MethodGet,
			URL:        uri,
			StatusCode: resp.status,
			Message:    "Content-Type: " + resp.header.Get("Content-Type"),
			Err:        ErrUnexpectedContentType,
		}
	}
}

// Post выполняет POST и возвращает JSON ответ.
func (c *Client) Post(ctx context.Context, ref string, body PostBody) (*Payload, error) {
	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	resp, uri, err := c.do(ctx, http.MethodPost, ref, nil, reader, contentType)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return &Payload{StatusCode: resp.status}, nil
	}
	if !gjson.ValidBytes(resp.body) {
		return nil, &ResponseError{Method: http.MethodPost, URL: uri, StatusCode: resp.status, Err: ErrInvalidJSON}
	}

	return &Payload{
		StatusCode:  resp.status,
		ContentType: mediaType(resp.header.Get("Content-Type")),
		Body:        resp.body,
	}, nil
}

// Delete выполняет DELETE. Тело ответа не обязательно.
func (c *Client) Delete(ctx context.Context, ref string, params url.Values) (*Payload, error) {
	resp, _, err := c.do(ctx, http.MethodDelete, ref, params, nil, "")
	if err != nil {
		return nil, err
	}
	return &Payload{
		StatusCode:  resp.status,
		ContentType: mediaType(resp.header.Get("Content-Type")),
		Body:        resp.body,
	}, nil
}

// --- HTTP helpers ---

// response — прочитанный ответ сервера.
type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, ref string, params url.Values, body io.Reader, contentType string) (*response, string, error) {
	uri, err := c.URL(ref, params)
	if err != nil {
		return nil, ref, &RequestError{Method: method, URL: ref, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, uri, &RequestError{Method: method, URL: uri, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json, application/geo+json, application/octet-stream")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.accessToken != "" {
		req.Header.Set(c.authHeader, c.accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		c.logger.Debug("lccs request failed",
			"method", method,
			"url", uri,
			"request_id", requestID,
			"error", err,
		)
		return nil, uri, &RequestError{Method: method, URL: uri, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	elapsed := time.Since(start)
	c.metrics.observe(method, resp.StatusCode, elapsed)

	c.logger.Debug("lccs request",
		"method", method,
		"url", uri,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", elapsed,
	)

	if err != nil {
		return nil, uri, &ResponseError{Method: method, URL: uri, StatusCode: resp.StatusCode, Err: err}
	}
	if int64(len(respBody)) > c.maxBody {
		return nil, uri, &ResponseError{
			Method:     method,
			URL:        uri,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("body exceeds %d bytes", c.maxBody),
			Err:        ErrResponseTooLarge,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, uri, &ResponseError{
			Method:     method,
			URL:        uri,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
			Err:        ErrBadStatus,
		}
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: respBody}, uri, nil
}

// encodeBody сериализует тело POST запроса.
func encodeBody(body PostBody) (io.Reader, string, error) {
	switch {
	case len(body.Files) > 0 || body.Multipart:
		return encodeMultipart(body.Form, body.Files)
	case body.JSON != nil:
		data, err := json.Marshal(body.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		return bytes.NewReader(data), ContentJSON, nil
	case body.Form != nil:
		return strings.NewReader(body.Form.Encode()), ContentForm, nil
	default:
		return nil, "", nil
	}
}

func encodeMultipart(form url.Values, files []File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// Поля пишутся в порядке ключей.
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, v := range form[key] {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", key, err)
			}
		}
	}

	for _, f := range files {
		ct := f.ContentType
		if ct == "" {
			ct = ContentOctetStream
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
