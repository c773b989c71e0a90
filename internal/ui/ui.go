// Package ui is the terminal front end: one bubbletea model that owns the
// game session, feeds pointer and key input to it, replays opponent moves
// and renders the table.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/playback"
	"github.com/palemoky/chudadi/internal/sound"
	"github.com/palemoky/chudadi/internal/theme"
	"github.com/palemoky/chudadi/internal/transport"
)

// Options 外部依赖
type Options struct {
	Context   context.Context // 请求和主题读写使用，留空为 context.Background()
	Config    *config.Config
	Transport transport.Transport
	Themes    theme.Store
	Sound     sound.Player

	// 以下用于测试注入，留空使用默认值
	Delay          playback.DelayFunc
	DarkBackground func() bool
}

// ProgramOptions 运行时需要的 bubbletea 选项：全屏并上报所有鼠标移动
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}

// Run 启动界面并阻塞到退出
func Run(opts Options) error {
	if opts.DarkBackground == nil {
		opts.DarkBackground = lipgloss.HasDarkBackground
	}
	popts := ProgramOptions()
	if opts.Context != nil {
		popts = append(popts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(New(opts), popts...).Run()
	return err
}
