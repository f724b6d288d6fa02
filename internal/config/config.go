package config

import (
	"os"
	"strconv"
	"time"
)

// defaultYAMLConfig 代码硬编码默认值
func defaultYAMLConfig() *YAMLConfig {
	return &YAMLConfig{
		APIServer: APIServerConfig{Port: "3000"},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 27017,
			Name: "pokedex",
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, DB: 0},
		MinIO: MinIOConfig{Endpoint: "localhost:9000", Bucket: "pokedex-seeds"},
		PokeAPI: PokeAPIConfig{
			BaseURL:   "https://pokeapi.co/api/v2",
			SeedLimit: 650,
			Timeout:   30 * time.Second,
			CacheTTL:  24 * time.Hour,
		},
		Pagination: PaginationConfig{DefaultLimit: 10},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load 加载配置
//  1. 解析 APP_ENV，加载 .env.{env}（敏感信息）
//  2. 加载 {env}.yaml
//  3. 环境变量覆盖 YAML
//  4. 构建最终配置并填充缺省值
func Load() (*Config, error) {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)

	yamlCfg, err := loadYAMLConfig(env)
	if err != nil {
		return nil, err
	}

	// 凭据只从环境变量读取
	yamlCfg.Database.Password = firstEnv("DB_PASSWORD", "MONGO_ROOT_PASSWORD", "POSTGRES_PASSWORD")
	yamlCfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	yamlCfg.MinIO.AccessKey = os.Getenv("MINIO_ROOT_USER")
	yamlCfg.MinIO.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")

	applyEnvOverrides(yamlCfg)

	databaseURL := os.Getenv("DATABASE_URL")
	driver := detectDatabaseDriver(yamlCfg.Database.Driver, databaseURL)
	yamlCfg.Database.Driver = driver
	if databaseURL == "" {
		databaseURL = buildDatabaseURL(yamlCfg.Database, yamlCfg.Database.Password)
	}

	cfg := &Config{
		Env:            env,
		APIPort:        yamlCfg.APIServer.Port,
		DatabaseDriver: driver,
		DatabaseURL:    databaseURL,
		DatabaseName:   yamlCfg.Database.Name,
		MinIO:          yamlCfg.MinIO,
		PokeAPI:        yamlCfg.PokeAPI,
		Pagination:     yamlCfg.Pagination,
		Log:            yamlCfg.Log,
	}
	if yamlCfg.Redis.Enabled {
		cfg.RedisURL = buildRedisURL(yamlCfg.Redis)
	}

	cfg.validate()
	return cfg, nil
}

// applyEnvOverrides 非敏感配置的环境变量覆盖
func applyEnvOverrides(cfg *YAMLConfig) {
	if v := os.Getenv("API_PORT"); v != "" {
		cfg.APIServer.Port = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.URL = v
	}
	if v := os.Getenv("POKEAPI_BASE_URL"); v != "" {
		cfg.PokeAPI.BaseURL = v
	}
	if v, err := strconv.Atoi(os.Getenv("SEED_LIMIT")); err == nil {
		cfg.PokeAPI.SeedLimit = v
	}
	if v, err := strconv.Atoi(os.Getenv("DEFAULT_LIMIT")); err == nil {
		cfg.Pagination.DefaultLimit = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate 填充非法或缺失的配置项
func (c *Config) validate() {
	if c.APIPort == "" {
		c.APIPort = "3000"
	}
	if c.DatabaseName == "" {
		c.DatabaseName = "pokedex"
	}
	if c.PokeAPI.BaseURL == "" {
		c.PokeAPI.BaseURL = "https://pokeapi.co/api/v2"
	}
	if c.PokeAPI.SeedLimit <= 0 {
		c.PokeAPI.SeedLimit = 650
	}
	if c.PokeAPI.Timeout <= 0 {
		c.PokeAPI.Timeout = 30 * time.Second
	}
	if c.PokeAPI.CacheTTL <= 0 {
		c.PokeAPI.CacheTTL = 24 * time.Hour
	}
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = 10
	}
	if c.MinIO.Bucket == "" {
		c.MinIO.Bucket = "pokedex-seeds"
	}
}

// LoadedFrom 返回当前环境下实际加载的配置文件路径（未找到时为空）
func LoadedFrom() string {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	cfg, err := loadYAMLConfig(env)
	if err != nil {
		return ""
	}
	return cfg.loadedFrom
}
