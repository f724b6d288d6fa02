// Package pokeapi 远端图鉴 API 客户端
//
// 只实现 seed 所需的列表接口：GET {base}/pokemon?limit=N。
// 配置了缓存时，原始响应按 (base, limit) 缓存，命中时不发起请求。
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pokedex-admin/internal/config"
	"pokedex-admin/internal/shared/cache"
	"pokedex-admin/pkg/logging"
)

// maxBodySize 列表响应体上限
const maxBodySize = 16 << 20

// NamedResource 列表中的一条资源引用
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse 列表响应
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`

	// Raw 原始响应体，用于归档
	Raw []byte `json:"-"`

	// Cached 是否来自缓存
	Cached bool `json:"-"`
}

// StatusError 远端返回非 2xx 状态
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: GET %s returned status %d", e.URL, e.StatusCode)
}

// Client 远端图鉴 API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.ListingCache
	cacheTTL   time.Duration
	log        *logging.Logger
}

// Option 客户端可选项
type Option func(*Client)

// WithCache 启用列表缓存
func WithCache(c cache.ListingCache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = hc
	}
}

// WithLogger 设置日志器
func WithLogger(l *logging.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// NewClient 创建客户端
func NewClient(cfg config.PokeAPIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回去掉末尾斜杠的 base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPokemon 拉取前 limit 条图鉴列表
func (c *Client) ListPokemon(ctx context.Context, limit int) (*ListResponse, error) {
	key := cache.ListingKey(c.baseURL, limit)

	if c.cache != nil {
		data, err := c.cache.GetListing(ctx, key)
		if err != nil {
			c.log.WithError(err).Warn("Listing cache read failed", "key", key)
		} else if data != nil {
			resp, err := decodeList(data)
			if err == nil {
				resp.Cached = true
				return resp, nil
			}
			c.log.WithError(err).Warn("Discarding undecodable cached listing", "key", key)
		}
	}

	data, err := c.get(ctx, "/pokemon", url.Values{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return nil, err
	}
	resp, err := decodeList(data)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetListing(ctx, key, data, c.cacheTTL); err != nil {
			c.log.WithError(err).Warn("Listing cache write failed", "key", key)
		}
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	c.log.WithDuration(time.Since(start)).Debug("PokeAPI request", "url", target, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("pokeapi: read body: %w", err)
	}
	return data, nil
}

func decodeList(data []byte) (*ListResponse, error) {
	var resp ListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("pokeapi: decode listing: %w", err)
	}
	resp.Raw = data
	return &resp, nil
}

// NumberFromURL 取资源 URL 倒数第二个路径段作为图鉴编号
//
// 例如 https://pokeapi.co/api/v2/pokemon/25/ → 25。
func NumberFromURL(resourceURL string) (int, error) {
	segments := strings.Split(resourceURL, "/")
	if len(segments) < 2 {
		return 0, fmt.Errorf("pokeapi: resource url %q has no number segment", resourceURL)
	}
	seg := segments[len(segments)-2]
	no, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("pokeapi: resource url %q: invalid number segment %q", resourceURL, seg)
	}
	return no, nil
}
