package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// configDir 由外部通过 SetConfigDir 指定，优先级最高
var configDir string

// envSearchDirs .env 文件搜索目录（仅 dev/test 使用，生产环境由 systemd 注入）
var envSearchDirs = []string{
	".",
	"..",
}

// SetConfigDir 设置配置文件目录（用于 --config 命令行参数）
// 调用后 Load 将优先从该目录加载配置文件
func SetConfigDir(dir string) {
	configDir = dir
}

// configPathsForEnv 根据环境返回配置文件搜索路径
func configPathsForEnv(env Environment) []string {
	if env == EnvProduction {
		return []string{"/etc/pokedex-admin"}
	}
	// dev/test: 项目根目录的 configs/
	return []string{"configs", "../configs"}
}

// effectiveConfigPaths 返回实际搜索路径
//
// 优先级：
//  1. --config 命令行参数（SetConfigDir）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径
func effectiveConfigPaths(env Environment) []string {
	if configDir != "" {
		return []string{configDir}
	}
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return []string{dir}
	}
	return configPathsForEnv(env)
}

// loadEnvFiles 加载 .env 文件
//
// 生产环境不搜索 .env 文件（密码由 systemd EnvironmentFile 或 shell 环境注入）。
// dev/test 环境加载 .env.{env} 文件。
func loadEnvFiles(env Environment) {
	if env == EnvProduction {
		return
	}

	// godotenv.Load 不覆盖已有环境变量，优先级低于 shell 环境变量
	envFileName := fmt.Sprintf(".env.%s", string(env))
	for _, dir := range envSearchDirs {
		if err := godotenv.Load(filepath.Join(dir, envFileName)); err == nil {
			break
		}
	}
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → {env}.yaml（第一个存在的搜索路径）
func loadYAMLConfig(env Environment) (*YAMLConfig, error) {
	cfg := defaultYAMLConfig()

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range effectiveConfigPaths(env) {
		path := filepath.Join(base, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.loadedFrom = path
		break
	}

	return cfg, nil
}
