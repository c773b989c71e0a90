package protocol

import (
	"github.com/palemoky/chudadi/internal/apperrors"
)

func validSeat(i int) bool { return i >= 0 && i < SeatCount }

func validateCounts(counts []int, field string) error {
	if len(counts) != SeatCount {
		return apperrors.Malformed("%s 应有 %d 项，实际 %d 项", field, SeatCount, len(counts))
	}
	for i, n := range counts {
		if n < 0 {
			return apperrors.Malformed("%s[%d] 为负数: %d", field, i, n)
		}
	}
	return nil
}

// Validate 校验快照，缺失或越界字段直接报错
func (s *Snapshot) Validate() error {
	if err := validateCounts(s.OtherCounts, "other_counts"); err != nil {
		return err
	}
	if s.Winner != nil {
		if !validSeat(*s.Winner) {
			return apperrors.Malformed("winner 越界: %d", *s.Winner)
		}
	} else if !validSeat(s.CurrentPlayer) {
		return apperrors.Malformed("current_player 越界: %d", s.CurrentPlayer)
	}
	if s.LastPlayPlayer != nil && !validSeat(*s.LastPlayPlayer) {
		return apperrors.Malformed("last_play_player 越界: %d", *s.LastPlayPlayer)
	}
	seen := make(map[[2]string]bool, len(s.Hand))
	for _, c := range s.Hand {
		key := [2]string{string(c.Suit), string(c.Rank)}
		if seen[key] {
			return apperrors.Malformed("手牌重复: %s", c.Label())
		}
		seen[key] = true
	}
	return nil
}

// Validate 校验单条动作记录
func (a *ActionRecord) Validate() error {
	if !validSeat(a.Player) {
		return apperrors.Malformed("player 越界: %d", a.Player)
	}
	switch a.Action {
	case ActionPlay:
		if len(a.Cards) == 0 {
			return apperrors.Malformed("座位 %d 出牌但没有牌", a.Player)
		}
	case ActionPass:
		if len(a.Cards) != 0 {
			return apperrors.Malformed("座位 %d 不出却带了 %d 张牌", a.Player, len(a.Cards))
		}
	default:
		return apperrors.Malformed("未知动作: %q", a.Action)
	}
	if a.OtherCounts != nil {
		return validateCounts(a.OtherCounts, "other_counts")
	}
	return nil
}

func validateActions(actions []ActionRecord) error {
	for i := range actions {
		if err := actions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate 校验 new_game 响应
func (r *NewGameResponse) Validate() error {
	if r.GameID == "" {
		return apperrors.Malformed("缺少 game_id")
	}
	if err := r.Snapshot.Validate(); err != nil {
		return err
	}
	return validateActions(r.AIActions)
}

// Validate 校验 play / pass_turn 响应，带 error 的响应视为合法
func (r *TurnResponse) Validate() error {
	if r.Error != "" {
		return nil
	}
	if r.State == nil {
		return apperrors.Malformed("缺少 state")
	}
	if err := r.State.Validate(); err != nil {
		return err
	}
	if r.PlayerAction != nil {
		if err := r.PlayerAction.Validate(); err != nil {
			return err
		}
	}
	if r.Winner != nil && !validSeat(*r.Winner) {
		return apperrors.Malformed("winner 越界: %d", *r.Winner)
	}
	return validateActions(r.AIActions)
}
