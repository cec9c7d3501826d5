package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common review workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_review").
		Description("Review today's logged hours and fill in the gaps.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Review", `Help me review my day. Please:

1. Read the pytron://dashboard resource
2. Call log.day for today to see which hours are still empty

Then:
- Ask me how I spent each empty hour and record it with log.set
- Point out where distraction took time from deep work
- Tell me how far I am from today's deep work target
- Suggest one change for tomorrow`), nil
		})

	srv.Prompt("weekly_review").
		Description("Look back on the last week of hours, tasks and goals.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Weekly Review", `Let's review my week. Please read:

- pytron://analytics/week for totals, efficiency and insights
- pytron://goals for goal progress
- pytron://badges for recent unlocks

Summarize what went well and what did not. Name the hour of day where I do
my best deep work, and propose goals for next week using goal.create.`), nil
		})

	srv.Prompt("plan_focus").
		Description("Plan a pomodoro focus block around a task.").
		Argument("task", "The task to focus on", false).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			task := args["task"]
			if task == "" {
				task = "[pick the highest priority open task from pytron://tasks]"
			}
			return userPrompt("Focus Planning", fmt.Sprintf(`I want to focus on: %s

1. Check pomodoro.status for the current cycle
2. Estimate how many work sessions the task needs
3. Start the timer with pomodoro.start when I confirm

Completed work sessions of 50 minutes or more are logged as deep work.`, task)), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
