// Package playback replays a batch of opponent actions as a timed,
// strictly ordered sequence before the authoritative state is committed.
//
// Each step is only scheduled after the previous one has been applied, so
// there is never more than one pending timer per run; every timer message
// carries the session id and run number and is dropped when stale.
package playback

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/protocol"
)

// DelayFunc 在 d 之后投递 msg
type DelayFunc func(d time.Duration, msg tea.Msg) tea.Cmd

// Tick 基于 tea.Tick 的默认实现
func Tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Stage 负责把单个动作画到界面上，可以返回后续命令（比如清除提示）
type Stage interface {
	ApplyStep(index int, action protocol.ActionRecord) tea.Cmd
}

// StepMsg 到时间播放第 Index 个动作
type StepMsg struct {
	SessionID string
	Run       int
	Index     int
}

// DoneMsg 全部动作播放完毕，可以同步权威状态
type DoneMsg struct {
	SessionID string
	Run       int
}

// Plan 一次回放
type Plan struct {
	SessionID string
	Actions   []protocol.ActionRecord
	Base      time.Duration  // 第一个动作之前的等待
	Finish    func() tea.Cmd // 最后一个动作之后调用一次
}

// Scheduler 动作回放调度器
type Scheduler struct {
	stage  Stage
	step   time.Duration
	settle time.Duration
	delay  DelayFunc

	run     int
	plan    Plan
	next    int
	running bool
}

// New 创建调度器，delay 为 nil 时使用 Tick
func New(stage Stage, step, settle time.Duration, delay DelayFunc) *Scheduler {
	if delay == nil {
		delay = Tick
	}
	return &Scheduler{stage: stage, step: step, settle: settle, delay: delay}
}

// Running 是否有回放未结束
func (s *Scheduler) Running() bool { return s.running }

// Schedule 开始一次回放，替换进行中的回放。没有动作时返回 nil，
// 调用方应立即同步状态
func (s *Scheduler) Schedule(p Plan) tea.Cmd {
	s.run++
	s.plan = p
	s.next = 0
	if len(p.Actions) == 0 {
		s.running = false
		return nil
	}
	s.running = true
	logger.WithField("session", p.SessionID).Infof("playback: %d actions, run %d", len(p.Actions), s.run)
	return s.delay(p.Base, StepMsg{SessionID: p.SessionID, Run: s.run, Index: 0})
}

// Cancel 放弃进行中的回放，之后到达的定时消息都会被丢弃
func (s *Scheduler) Cancel() {
	s.run++
	s.running = false
	s.plan = Plan{}
	s.next = 0
}

func (s *Scheduler) current(sessionID string, run int) bool {
	return s.running && sessionID == s.plan.SessionID && run == s.run
}

// Update 处理调度消息，其它消息返回 nil
func (s *Scheduler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StepMsg:
		if !s.current(msg.SessionID, msg.Run) || msg.Index != s.next {
			return nil
		}
		staged := s.stage.ApplyStep(msg.Index, s.plan.Actions[msg.Index])
		s.next++
		var next tea.Cmd
		if s.next < len(s.plan.Actions) {
			next = s.delay(s.step, StepMsg{SessionID: msg.SessionID, Run: msg.Run, Index: s.next})
		} else {
			next = s.delay(s.step+s.settle, DoneMsg{SessionID: msg.SessionID, Run: msg.Run})
		}
		if staged == nil {
			return next
		}
		return tea.Batch(staged, next)

	case DoneMsg:
		if !s.current(msg.SessionID, msg.Run) || s.next != len(s.plan.Actions) {
			return nil
		}
		finish := s.plan.Finish
		s.running = false
		s.plan = Plan{}
		s.next = 0
		if finish != nil {
			return finish()
		}
	}
	return nil
}
