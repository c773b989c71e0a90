package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 传输方式
const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

// 主题存储方式
const (
	ThemeStoreFile  = "file"
	ThemeStoreRedis = "redis"
)

// Config 客户端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Timing TimingConfig `yaml:"timing"`
	Theme  ThemeConfig  `yaml:"theme"`
	Sound  SoundConfig  `yaml:"sound"`
}

// ServerConfig 游戏服务器配置
type ServerConfig struct {
	URL            string `yaml:"url"`
	Transport      string `yaml:"transport"`       // http / websocket
	RequestTimeout int    `yaml:"request_timeout"` // 请求超时（秒）
}

// TimingConfig 动画节奏配置（毫秒）
type TimingConfig struct {
	DealDelay      int `yaml:"deal_delay"`      // 发牌后首个电脑动作的延迟
	MoveDelay      int `yaml:"move_delay"`      // 玩家出牌后首个电脑动作的延迟
	StepDelay      int `yaml:"step_delay"`      // 电脑动作之间的间隔
	SettleDelay    int `yaml:"settle_delay"`    // 最后一个动作之后到同步状态的额外延迟
	ResultDelay    int `yaml:"result_delay"`    // 同步后到显示结果的延迟
	MessageTimeout int `yaml:"message_timeout"` // 提示信息自动清除
}

// ThemeConfig 主题偏好存储
type ThemeConfig struct {
	Store string      `yaml:"store"` // file / redis
	File  string      `yaml:"file"`
	Key   string      `yaml:"key"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Mute bool `yaml:"mute"`
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// RequestTimeoutDuration 返回请求超时时长
func (c *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *TimingConfig) DealDelayDuration() time.Duration      { return ms(c.DealDelay) }
func (c *TimingConfig) MoveDelayDuration() time.Duration      { return ms(c.MoveDelay) }
func (c *TimingConfig) StepDelayDuration() time.Duration      { return ms(c.StepDelay) }
func (c *TimingConfig) SettleDelayDuration() time.Duration    { return ms(c.SettleDelay) }
func (c *TimingConfig) ResultDelayDuration() time.Duration    { return ms(c.ResultDelay) }
func (c *TimingConfig) MessageTimeoutDuration() time.Duration { return ms(c.MessageTimeout) }

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "http://localhost:5000"
	}
	if c.Server.Transport == "" {
		c.Server.Transport = TransportHTTP
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 10
	}
	if c.Timing.DealDelay == 0 {
		c.Timing.DealDelay = 600
	}
	if c.Timing.MoveDelay == 0 {
		c.Timing.MoveDelay = 700
	}
	if c.Timing.StepDelay == 0 {
		c.Timing.StepDelay = 1000
	}
	if c.Timing.SettleDelay == 0 {
		c.Timing.SettleDelay = 500
	}
	if c.Timing.ResultDelay == 0 {
		c.Timing.ResultDelay = 1000
	}
	if c.Timing.MessageTimeout == 0 {
		c.Timing.MessageTimeout = 4500
	}
	if c.Theme.Store == "" {
		c.Theme.Store = ThemeStoreFile
	}
	if c.Theme.File == "" {
		c.Theme.File = defaultThemeFile()
	}
	if c.Theme.Key == "" {
		c.Theme.Key = "pk-theme"
	}
	if c.Theme.Redis.Addr == "" {
		c.Theme.Redis.Addr = "localhost:6379"
	}
}

func defaultThemeFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".chudadi", "theme.yaml")
	}
	return filepath.Join(home, ".chudadi", "theme.yaml")
}

// Validate 校验枚举取值
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportHTTP, TransportWebSocket:
	default:
		return fmt.Errorf("未知的传输方式: %s", c.Server.Transport)
	}
	switch c.Theme.Store {
	case ThemeStoreFile, ThemeStoreRedis:
	default:
		return fmt.Errorf("未知的主题存储: %s", c.Theme.Store)
	}
	return nil
}

// LoadEnv 读取 .env 文件到环境变量，文件不存在时忽略
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv 用环境变量覆盖配置
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CHUDADI_SERVER"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("CHUDADI_TRANSPORT"); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv("CHUDADI_THEME_STORE"); v != "" {
		c.Theme.Store = v
	}
	if v := os.Getenv("CHUDADI_REDIS_ADDR"); v != "" {
		c.Theme.Redis.Addr = v
	}
	if v := os.Getenv("CHUDADI_MUTE"); v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHUDADI_MUTE 取值无效: %w", err)
		}
		c.Sound.Mute = mute
	}
	return c.Validate()
}
