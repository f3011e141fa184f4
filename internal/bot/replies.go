package bot

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/studystreak/internal/model"
)

const WelcomeText = `Welcome to StudyStreakBot! 🎯

Use these commands to manage your study tasks:
• /addtask <task> - Add a new study task
• /tasks - View today's tasks
• /done <number> - Mark a task as complete (+10 points)
• /score - Check your points
• /terminate - Reset your points and tasks

Start building your study streak! 📚`

const (
	NoTasksText           = "No tasks added for today."
	InvalidTaskNumberText = "Invalid task number."
	ResetText             = "Your points have been reset, and all tasks have been deleted. You can start fresh!"
	NoDataText            = "No data found for you. You can start adding tasks!"
)

// FormatTasks renders today's list numbered from 1.
func FormatTasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return NoTasksText
	}
	var b strings.Builder
	b.WriteString("Today's tasks:\n")
	for i, task := range tasks {
		status := "❌"
		if task.Done {
			status = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, task.Text, status)
	}
	return b.String()
}
