package pomodoro

import (
	"testing"
	"time"

	"github.com/okuren/tt/internal/config"
)

func TestParseConfig(t *testing.T) {
	s, err := ParseConfig(config.DefaultConfig().Pomodoro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Length != 25*time.Minute || s.ShortBreak != 5*time.Minute || s.LongBreak != 15*time.Minute {
		t.Errorf("unexpected durations: %+v", s)
	}
	if s.Cycles != 4 || s.LongEvery != 4 {
		t.Errorf("unexpected cycle settings: %+v", s)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	cfg := config.DefaultConfig().Pomodoro
	cfg.Length = "soon"
	if _, err := ParseConfig(cfg); err == nil {
		t.Error("expected error for invalid length")
	}
}

func TestBlocks_Sequence(t *testing.T) {
	s := Settings{
		Length:     25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
		Cycles:     4,
		LongEvery:  2,
	}

	blocks := Blocks(s)

	want := []Block{
		{Work, 25 * time.Minute},
		{ShortBreak, 5 * time.Minute},
		{Work, 25 * time.Minute},
		{LongBreak, 15 * time.Minute},
		{Work, 25 * time.Minute},
		{ShortBreak, 5 * time.Minute},
		{Work, 25 * time.Minute},
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(blocks))
	}
	for i, b := range blocks {
		if b != want[i] {
			t.Errorf("block %d: expected %v %v, got %v %v", i, want[i].Kind, want[i].Duration, b.Kind, b.Duration)
		}
	}
}

func TestBlocks_NoBreakAfterLastCycle(t *testing.T) {
	s := Settings{Length: 25 * time.Minute, ShortBreak: 5 * time.Minute, LongBreak: 15 * time.Minute, Cycles: 1, LongEvery: 4}

	blocks := Blocks(s)
	if len(blocks) != 1 {
		t.Fatalf("expected a single work block, got %d", len(blocks))
	}
	if blocks[0].Kind != Work {
		t.Errorf("expected work block, got %v", blocks[0].Kind)
	}
}

func TestBlockKind_String(t *testing.T) {
	if Work.String() != "work" || ShortBreak.String() != "short break" || LongBreak.String() != "long break" {
		t.Error("unexpected block kind names")
	}
}
