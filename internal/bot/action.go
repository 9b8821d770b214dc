package bot

import (
	"fmt"
	"strconv"
	"strings"
)

type Action int

const (
	ActionDone Action = iota
	ActionNotDone
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionDone:
		return "done"
	case ActionNotDone:
		return "notdone"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

type Callback struct {
	Action Action
	TaskID int64
}

func (c Callback) Data() string {
	return fmt.Sprintf("%s_%d", c.Action, c.TaskID)
}

func ParseCallback(data string) (Callback, error) {
	name, rawID, ok := strings.Cut(data, "_")
	if !ok || name == "" || rawID == "" {
		return Callback{}, fmt.Errorf("malformed callback data %q", data)
	}

	taskID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Callback{}, fmt.Errorf("malformed task id in callback data %q", data)
	}

	var action Action
	switch name {
	case "done":
		action = ActionDone
	case "notdone":
		action = ActionNotDone
	case "edit":
		action = ActionEdit
	case "delete":
		action = ActionDelete
	default:
		return Callback{}, fmt.Errorf("unknown callback action %q", name)
	}

	return Callback{Action: action, TaskID: taskID}, nil
}
