package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"linebell/models"
)

// Command is a parsed reminder operation. The set is closed: the executor
// switches over it exhaustively.
type Command interface {
	isCommand()
}

type Add struct {
	FireAt  string
	Message string
}

type AddPeriodic struct {
	Recurrence string
	FireAt     string
	Message    string
}

type Delete struct {
	ID int64
}

type List struct{}

// Unrecognized carries the help or rejection text to show the user.
type Unrecognized struct {
	Reply string
}

func (Add) isCommand()          {}
func (AddPeriodic) isCommand()  {}
func (Delete) isCommand()       {}
func (List) isCommand()         {}
func (Unrecognized) isCommand() {}

const DefaultPrefix = "!提醒"

// Parse turns raw command text (prefix included) into a Command. It never
// fails: anything malformed comes back as Unrecognized with the text to show
// the user. Pure function, no side effects.
func Parse(text string) Command {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return Unrecognized{Reply: helpText(prefixOf(parts))}
	}

	prefix := parts[0]

	switch strings.ToLower(parts[1]) {
	case "add":
		if len(parts) < 4 {
			return Unrecognized{Reply: helpText(prefix)}
		}
		fireAt := parts[2]
		if !validFireTime(fireAt) {
			return Unrecognized{Reply: "時間格式錯誤，請使用 24 小時制 HH:MM"}
		}
		return Add{FireAt: fireAt, Message: strings.Join(parts[3:], " ")}

	case "add-periodic":
		if len(parts) < 5 {
			return Unrecognized{Reply: helpText(prefix)}
		}
		recurrence := strings.ToLower(parts[2])
		if recurrence != models.RecurrenceDaily && recurrence != models.RecurrenceWeekly {
			return Unrecognized{Reply: "週期性提醒請輸入 daily 或 weekly"}
		}
		fireAt := parts[3]
		if !validFireTime(fireAt) {
			return Unrecognized{Reply: "時間格式錯誤，請使用 24 小時制 HH:MM"}
		}
		return AddPeriodic{Recurrence: recurrence, FireAt: fireAt, Message: strings.Join(parts[4:], " ")}

	case "delete":
		if len(parts) != 3 {
			return Unrecognized{Reply: helpText(prefix)}
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return Unrecognized{Reply: "提醒 ID 必須是數字"}
		}
		return Delete{ID: id}

	case "list":
		return List{}
	}

	return Unrecognized{Reply: helpText(prefix)}
}

func prefixOf(parts []string) string {
	if len(parts) > 0 {
		return parts[0]
	}
	return DefaultPrefix
}

func helpText(prefix string) string {
	return fmt.Sprintf("指令格式錯誤。請使用：%s add|add-periodic|delete|list", prefix)
}

// validFireTime accepts exactly HH:MM with both components in range.
func validFireTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
