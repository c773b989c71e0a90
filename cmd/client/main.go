package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/sound"
	"github.com/palemoky/chudadi/internal/theme"
	"github.com/palemoky/chudadi/internal/transport"
	"github.com/palemoky/chudadi/internal/ui"
)

var (
	configPath    string
	serverURL     string
	transportName string
	mute          bool
)

var rootCmd = &cobra.Command{
	Use:   "chudadi",
	Short: "锄大地终端客户端",
	Long: `锄大地终端客户端：你和三位电脑对手，先出完手牌的一方获胜。

操作:
  鼠标点击 / 拖过多张牌 - 选牌
  ←/→ + 空格            - 键盘选牌
  enter / p             - 出牌
  x                     - 不出
  n                     - 新局
  t                     - 切换明暗主题
  q                     - 退出`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (YAML)")
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "", "服务器地址，覆盖配置文件")
	rootCmd.Flags().StringVarP(&transportName, "transport", "t", "", "传输方式: http / websocket")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "关闭音效")
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(".env"); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// 命令行参数优先级最高
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if transportName != "" {
		cfg.Server.Transport = transportName
	}
	if mute {
		cfg.Sound.Mute = true
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context) error {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化日志: %v\n", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	logger.LogInfo("服务器: %s (%s)", cfg.Server.URL, cfg.Server.Transport)

	tr, err := transport.New(cfg.Server)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	themes, closeThemes, err := theme.NewStore(cfg.Theme)
	if err != nil {
		return err
	}
	defer func() { _ = closeThemes() }()

	player := sound.NewManager(sound.DefaultDir, cfg.Sound.Mute)
	if err := player.Init(); err != nil {
		logger.LogError("音效不可用: %v", err)
	}
	defer player.Close()

	return ui.Run(ui.Options{
		Context:   ctx,
		Config:    cfg,
		Transport: tr,
		Themes:    themes,
		Sound:     player,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
