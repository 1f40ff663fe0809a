package commands

import (
	"strings"
	"testing"
)

func TestParse_Add(t *testing.T) {
	cmd := Parse("!提醒 add 08:00 吃早餐")

	add, ok := cmd.(Add)
	if !ok {
		t.Fatalf("expected Add, got %T", cmd)
	}
	if add.FireAt != "08:00" {
		t.Errorf("FireAt = %q, want %q", add.FireAt, "08:00")
	}
	if add.Message != "吃早餐" {
		t.Errorf("Message = %q, want %q", add.Message, "吃早餐")
	}
}

func TestParse_AddMessageWithSpaces(t *testing.T) {
	cmd := Parse("!提醒 add 12:30 buy milk   and bread")

	add, ok := cmd.(Add)
	if !ok {
		t.Fatalf("expected Add, got %T", cmd)
	}
	// Trailing tokens are rejoined with single spaces.
	if add.Message != "buy milk and bread" {
		t.Errorf("Message = %q, want %q", add.Message, "buy milk and bread")
	}
}

func TestParse_AddMessageContainingTimeLikeText(t *testing.T) {
	cmd := Parse("!提醒 add 09:00 meeting at 10:30")

	add, ok := cmd.(Add)
	if !ok {
		t.Fatalf("expected Add, got %T", cmd)
	}
	if add.FireAt != "09:00" {
		t.Errorf("FireAt = %q, want %q", add.FireAt, "09:00")
	}
	if add.Message != "meeting at 10:30" {
		t.Errorf("Message = %q, want %q", add.Message, "meeting at 10:30")
	}
}

func TestParse_AddPeriodic(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		recurrence string
	}{
		{"daily", "!提醒 add-periodic daily 08:00 吃早餐", "daily"},
		{"weekly", "!提醒 add-periodic weekly 20:00 倒垃圾", "weekly"},
		{"case insensitive", "!提醒 add-periodic DAILY 08:00 吃早餐", "daily"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.input)

			ap, ok := cmd.(AddPeriodic)
			if !ok {
				t.Fatalf("expected AddPeriodic, got %T", cmd)
			}
			if ap.Recurrence != tt.recurrence {
				t.Errorf("Recurrence = %q, want %q", ap.Recurrence, tt.recurrence)
			}
		})
	}
}

func TestParse_AddPeriodicInvalidRecurrence(t *testing.T) {
	cmd := Parse("!提醒 add-periodic monthly 08:00 吃早餐")

	u, ok := cmd.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", cmd)
	}
	if u.Reply != "週期性提醒請輸入 daily 或 weekly" {
		t.Errorf("Reply = %q, want the recurrence rejection", u.Reply)
	}
}

func TestParse_InvalidFireTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"hour out of range", "!提醒 add 25:00 x"},
		{"minute out of range", "!提醒 add 08:60 x"},
		{"missing padding", "!提醒 add 8:00 x"},
		{"no colon", "!提醒 add 0800 x"},
		{"garbage", "!提醒 add noon x"},
		{"periodic bad time", "!提醒 add-periodic daily 24:00 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.input)

			u, ok := cmd.(Unrecognized)
			if !ok {
				t.Fatalf("expected Unrecognized, got %T", cmd)
			}
			if !strings.Contains(u.Reply, "時間格式錯誤") {
				t.Errorf("Reply = %q, want time-format rejection", u.Reply)
			}
		})
	}
}

func TestParse_Delete(t *testing.T) {
	cmd := Parse("!提醒 delete 42")

	del, ok := cmd.(Delete)
	if !ok {
		t.Fatalf("expected Delete, got %T", cmd)
	}
	if del.ID != 42 {
		t.Errorf("ID = %d, want 42", del.ID)
	}
}

func TestParse_DeleteNonNumericID(t *testing.T) {
	cmd := Parse("!提醒 delete abc")

	u, ok := cmd.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", cmd)
	}
	if u.Reply != "提醒 ID 必須是數字" {
		t.Errorf("Reply = %q, want the numeric-id rejection", u.Reply)
	}
}

func TestParse_DeleteWrongTokenCount(t *testing.T) {
	// delete requires exactly three tokens
	for _, input := range []string{"!提醒 delete", "!提醒 delete 1 2"} {
		cmd := Parse(input)
		if _, ok := cmd.(Unrecognized); !ok {
			t.Errorf("Parse(%q) = %T, want Unrecognized", input, cmd)
		}
	}
}

func TestParse_List(t *testing.T) {
	cmd := Parse("!提醒 list")
	if _, ok := cmd.(List); !ok {
		t.Fatalf("expected List, got %T", cmd)
	}

	// list tolerates trailing tokens
	cmd = Parse("!提醒 list extra tokens")
	if _, ok := cmd.(List); !ok {
		t.Fatalf("expected List with trailing tokens, got %T", cmd)
	}
}

func TestParse_UnknownSubcommand(t *testing.T) {
	cmd := Parse("!提醒 snooze 08:00 x")

	u, ok := cmd.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", cmd)
	}
	if !strings.Contains(u.Reply, "add|add-periodic|delete|list") {
		t.Errorf("Reply = %q, want help listing subcommands", u.Reply)
	}
	if !strings.Contains(u.Reply, "!提醒") {
		t.Errorf("Reply = %q, want help to echo the prefix", u.Reply)
	}
}

func TestParse_TooFewTokens(t *testing.T) {
	for _, input := range []string{"!提醒", "!提醒 add", "!提醒 add 08:00", "!提醒 add-periodic daily 08:00"} {
		cmd := Parse(input)
		u, ok := cmd.(Unrecognized)
		if !ok {
			t.Fatalf("Parse(%q) = %T, want Unrecognized", input, cmd)
		}
		if !strings.Contains(u.Reply, "指令格式錯誤") {
			t.Errorf("Parse(%q) reply = %q, want help text", input, u.Reply)
		}
	}
}
