package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"notesbot/internal/db"
	"notesbot/internal/model"
	"notesbot/internal/session"
)

const (
	replyHelp = `Hi! I am your personal task manager bot.

Here is what I can do:
- Just send me a message to add a new task.
- Use /viewtasks to see all your tasks.
- Use /deletealltasks to delete all your tasks.

Every task has these buttons:
- "Done" / "Not done" to change the task status.
- "Edit" to edit the task.
- "Delete" to delete the task.`

	replyNoTasks      = "You have no saved tasks."
	replyTaskList     = "Your tasks:"
	replySaved        = "Task saved!"
	replyUpdated      = "Task updated!"
	replyDeleted      = "Task deleted!"
	replyAllDeleted   = "All your tasks have been deleted."
	replyNotFound     = "Task not found."
	replyEmptyContent = "Task content cannot be empty."
	replyEditPrompt   = "Send the new task description:"
	replyError        = "An error occurred, please try again."
)

type Button struct {
	Label string
	Data  string
}

type Transport interface {
	Send(chatID int64, text string, buttons []Button) (int, error)
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID string) error
}

type Controller struct {
	store     *db.Store
	sessions  *session.Store
	transport Transport
	log       *slog.Logger
}

func NewController(store *db.Store, sessions *session.Store, transport Transport, logger *slog.Logger) *Controller {
	return &Controller{store: store, sessions: sessions, transport: transport, log: logger}
}

func (c *Controller) HandleCommand(ctx context.Context, chatID, userID int64, command string) {
	switch command {
	case "start":
		c.reply(chatID, replyHelp)
	case "viewtasks":
		c.renderTasks(ctx, chatID, userID)
	case "deletealltasks":
		count, err := c.store.DeleteAll(ctx, userID)
		if err != nil {
			c.log.Error("delete all tasks", "user_id", userID, "error", err)
			c.reply(chatID, replyError)
			return
		}
		if count == 0 {
			c.reply(chatID, replyNoTasks)
			return
		}
		c.reply(chatID, replyAllDeleted)
	default:
		c.log.Info("ignoring unknown command", "user_id", userID, "command", command)
	}
}

func (c *Controller) HandleCallback(ctx context.Context, chatID, userID int64, callbackID, data string) {
	if err := c.transport.AnswerCallback(callbackID); err != nil {
		c.log.Error("answer callback", "user_id", userID, "error", err)
	}

	callback, err := ParseCallback(data)
	if err != nil {
		c.log.Error("parse callback", "user_id", userID, "data", data, "error", err)
		return
	}

	c.log.Info("callback", "user_id", userID, "action", callback.Action.String(), "task_id", callback.TaskID)

	switch callback.Action {
	case ActionDone:
		c.setDone(ctx, chatID, userID, callback.TaskID, model.MarkDone)
	case ActionNotDone:
		c.setDone(ctx, chatID, userID, callback.TaskID, model.MarkNotDone)
	case ActionEdit:
		c.sessions.SetPendingEdit(userID, callback.TaskID)
		c.reply(chatID, replyEditPrompt)
	case ActionDelete:
		if _, err := c.store.DeleteNote(ctx, callback.TaskID, userID); err != nil {
			c.log.Error("delete task", "user_id", userID, "task_id", callback.TaskID, "error", err)
			c.reply(chatID, replyError)
			return
		}
		c.reply(chatID, replyDeleted)
		c.renderTasks(ctx, chatID, userID)
	}
}

func (c *Controller) setDone(ctx context.Context, chatID, userID, taskID int64, mark func(string) string) {
	task, err := c.store.GetNote(ctx, userID, taskID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.reply(chatID, replyNotFound)
	case err != nil:
		c.log.Error("get task", "user_id", userID, "task_id", taskID, "error", err)
		c.reply(chatID, replyError)
		return
	default:
		// Stripping the marker from a marker-only task would leave nothing;
		// keep the stored content in that case.
		if content := mark(task.Content); content != "" {
			if _, err := c.store.UpdateContent(ctx, userID, taskID, content); err != nil {
				c.log.Error("update task status", "user_id", userID, "task_id", taskID, "error", err)
				c.reply(chatID, replyError)
				return
			}
		}
	}

	c.renderTasks(ctx, chatID, userID)
}

func (c *Controller) HandleText(ctx context.Context, chatID, userID int64, text string) {
	content := strings.TrimSpace(text)

	if taskID, ok := c.sessions.PendingEdit(userID); ok {
		c.applyEdit(ctx, chatID, userID, taskID, content)
	} else {
		c.saveTask(ctx, chatID, userID, content)
	}

	c.renderTasks(ctx, chatID, userID)
}

func (c *Controller) applyEdit(ctx context.Context, chatID, userID, taskID int64, content string) {
	if content == "" {
		// Keep the pending edit so stray empty input cannot abandon it.
		c.reply(chatID, replyEmptyContent)
		return
	}

	updated, err := c.store.UpdateContent(ctx, userID, taskID, content)
	if err != nil {
		c.log.Error("update task", "user_id", userID, "task_id", taskID, "error", err)
		c.reply(chatID, replyError)
		return
	}

	c.sessions.ClearPendingEdit(userID)
	if !updated {
		c.reply(chatID, replyNotFound)
		return
	}
	c.reply(chatID, replyUpdated)
}

func (c *Controller) saveTask(ctx context.Context, chatID, userID int64, content string) {
	_, err := c.store.CreateNote(ctx, userID, content)
	switch {
	case errors.Is(err, db.ErrEmptyContent):
		c.reply(chatID, replyEmptyContent)
	case err != nil:
		c.log.Error("save task", "user_id", userID, "error", err)
		c.reply(chatID, replyError)
	default:
		c.reply(chatID, replySaved)
	}
}

func (c *Controller) renderTasks(ctx context.Context, chatID, userID int64) {
	for _, messageID := range c.sessions.TakeRendered(userID) {
		if err := c.transport.DeleteMessage(chatID, messageID); err != nil {
			c.log.Error("delete rendered message", "user_id", userID, "message_id", messageID, "error", err)
		}
	}

	tasks, err := c.store.ListNotes(ctx, userID)
	if err != nil {
		c.log.Error("list tasks", "user_id", userID, "error", err)
		c.reply(chatID, replyError)
		return
	}

	if len(tasks) == 0 {
		c.send(chatID, userID, replyNoTasks, nil)
		return
	}

	c.send(chatID, userID, replyTaskList, nil)
	for _, task := range tasks {
		c.send(chatID, userID, task.Content, taskButtons(task))
	}
}

func taskButtons(task model.Task) []Button {
	toggle := Button{Label: "Done", Data: Callback{Action: ActionDone, TaskID: task.ID}.Data()}
	if task.Done() {
		toggle = Button{Label: "Not done", Data: Callback{Action: ActionNotDone, TaskID: task.ID}.Data()}
	}

	return []Button{
		toggle,
		{Label: "Edit", Data: Callback{Action: ActionEdit, TaskID: task.ID}.Data()},
		{Label: "Delete", Data: Callback{Action: ActionDelete, TaskID: task.ID}.Data()},
	}
}

func (c *Controller) send(chatID, userID int64, text string, buttons []Button) {
	messageID, err := c.transport.Send(chatID, text, buttons)
	if err != nil {
		c.log.Error("send message", "user_id", userID, "error", err)
		return
	}
	c.sessions.TrackMessage(userID, messageID)
}

func (c *Controller) reply(chatID int64, text string) {
	if _, err := c.transport.Send(chatID, text, nil); err != nil {
		c.log.Error("send reply", "chat_id", chatID, "error", err)
	}
}
