package cache

import (
	"fmt"
	"time"
)

const (
	// KeyListing 远端列表缓存 Key 前缀
	KeyListing = "pokeapi_listing:"

	// TTLListing 默认缓存时长
	TTLListing = 24 * time.Hour
)

// ListingKey 生成远端列表缓存 Key，包含 base URL 与 limit
func ListingKey(baseURL string, limit int) string {
	return fmt.Sprintf("%s%s:%d", KeyListing, baseURL, limit)
}
