// Package config 统一配置管理
//
// 配置加载优先级（高→低）：
//  1. 环境变量（通过 .env 文件或 shell/systemd 注入）
//  2. YAML 配置文件（{env}.yaml，如 dev.yaml、test.yaml、prod.yaml）
//  3. 代码硬编码默认值
//
// 凭据单一数据源：
//
//	密码/密钥只存在 .env 文件或环境变量中（YAML 中不存储任何密码）。
//
// 配置路径确定策略：
//  1. --config 命令行参数（显式路径）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径：
//     - prod → /etc/pokedex-admin/
//     - dev/test → ./configs/
package config

import "time"

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test" // 测试环境（集成测试 + E2E 共用）
	EnvDevelopment Environment = "dev"
)

// YAMLConfig 统一 YAML 配置文件结构
type YAMLConfig struct {
	APIServer  APIServerConfig  `yaml:"api_server"` // API Server（端口）
	Database   DatabaseConfig   `yaml:"database"`   // 数据库
	Redis      RedisConfig      `yaml:"redis"`      // Redis（远程图鉴列表缓存）
	MinIO      MinIOConfig      `yaml:"minio"`      // MinIO（seed 快照归档）
	PokeAPI    PokeAPIConfig    `yaml:"pokeapi"`    // 远程图鉴 API
	Pagination PaginationConfig `yaml:"pagination"` // 分页默认值
	Log        LogConfig        `yaml:"log"`        // 日志

	loadedFrom string // 实际加载的配置文件路径（空表示仅使用默认值）
}

// APIServerConfig API Server 配置
type APIServerConfig struct {
	Port string `yaml:"port"` // 监听端口
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mongodb", "sqlite" 或 "postgres"（默认 mongodb）
	Path     string `yaml:"path"`   // SQLite 文件路径
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"` // 只从环境变量读取（DB_PASSWORD / MONGO_ROOT_PASSWORD）
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	URI      string `yaml:"uri"` // MongoDB 连接 URI（优先于 host/port，如 mongodb://localhost:27017）
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Password string `yaml:"-"`   // 只从 REDIS_PASSWORD 环境变量读取
	URL      string `yaml:"url"` // 直接指定 URL（优先于 host/port/db）
}

// MinIOConfig MinIO 对象存储配置
type MinIOConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"` // 例如 localhost:9000
	AccessKey string `yaml:"-"`        // 只从 MINIO_ROOT_USER 环境变量读取
	SecretKey string `yaml:"-"`        // 只从 MINIO_ROOT_PASSWORD 环境变量读取
	UseSSL    bool   `yaml:"use_ssl"`  // 是否使用 HTTPS
	Bucket    string `yaml:"bucket"`   // 默认 bucket 名称
}

// PokeAPIConfig 远程图鉴 API 配置
type PokeAPIConfig struct {
	BaseURL   string        `yaml:"base_url"`   // 例如 https://pokeapi.co/api/v2
	SeedLimit int           `yaml:"seed_limit"` // seed 时一次拉取的条目数
	Timeout   time.Duration `yaml:"timeout"`    // HTTP 请求超时
	CacheTTL  time.Duration `yaml:"cache_ttl"`  // 列表缓存有效期（启用 Redis 时生效）
}

// PaginationConfig 分页配置
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Format string `yaml:"format"` // json 或 text
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env            Environment
	APIPort        string
	DatabaseDriver string // mongodb / sqlite / postgres
	DatabaseURL    string
	DatabaseName   string // MongoDB 数据库名
	RedisURL       string // 为空表示未启用 Redis
	MinIO          MinIOConfig
	PokeAPI        PokeAPIConfig
	Pagination     PaginationConfig
	Log            LogConfig
}
