// Package config 加载客户端配置：yaml 配置文件加命令行参数覆盖。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/room-viewer/internal/room"
)

// DefaultServer 官方服务器 API 地址
const DefaultServer = "https://screeps.com/api/"

// 地形缓存后端
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config 客户端配置
type Config struct {
	Server string `yaml:"server"` // API 地址
	Token  string `yaml:"token"`  // 认证令牌
	Shard  string `yaml:"shard"`  // 分片，官方服务器必须指定
	Room   string `yaml:"room"`   // 房间名，为空时使用服务器给出的起始房间

	Log    LogConfig    `yaml:"log"`
	Cache  CacheConfig  `yaml:"cache"`
	Render RenderConfig `yaml:"render"`
	Sound  SoundConfig  `yaml:"sound"`

	// DryRun 不启动界面，只记录日志
	DryRun bool `yaml:"-"`
}

// LogConfig 日志配置
type LogConfig struct {
	Path      string `yaml:"path"`      // 为空时写到 ~/.room-viewer/debug.log
	Verbosity int    `yaml:"verbosity"` // 0 info，1 debug，2 debug 并记录源码位置
}

// CacheConfig 地形缓存配置
type CacheConfig struct {
	Backend       string `yaml:"backend"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTL           int    `yaml:"ttl"` // 过期时间（小时）
}

// RenderConfig 显示配置
type RenderConfig struct {
	// RankOrder 同一格子内对象的叠放顺序，从下到上；为空使用默认顺序
	RankOrder []string `yaml:"rank_order"`
}

// SoundConfig 提示音配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// TTLDuration 返回缓存过期时长
func (c *CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Hour
}

// DefaultPath 默认配置文件位置
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".room-viewer", "config.yaml"), nil
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	// 设置默认值
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheMemory
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * 7
	}

	return cfg, nil
}

// LoadOrDefault 加载 path；path 不存在时返回默认配置
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: DefaultServer,
		Cache: CacheConfig{
			Backend:   CacheMemory,
			RedisAddr: "localhost:6379",
			TTL:       24 * 7,
		},
	}
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("缺少认证令牌 (--token)")
	}
	if _, err := c.RoomName(); err != nil {
		return err
	}
	if _, err := c.RankOrder(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("未知的缓存后端 %q", c.Cache.Backend)
	}
	return nil
}

// RoomName 解析配置的房间，未配置时返回 nil
func (c *Config) RoomName() (*room.Name, error) {
	if c.Room == "" {
		return nil, nil
	}
	name, err := room.ParseName(c.Room)
	if err != nil {
		return nil, fmt.Errorf("无效的房间名 %q: %w", c.Room, err)
	}
	return &name, nil
}

// RankOrder 解析对象叠放顺序，未配置时返回 nil
func (c *Config) RankOrder() ([]room.ObjectType, error) {
	if len(c.Render.RankOrder) == 0 {
		return nil, nil
	}
	order, err := room.ParseRankOrder(c.Render.RankOrder)
	if err != nil {
		return nil, fmt.Errorf("无效的 render.rank_order: %w", err)
	}
	return order, nil
}
