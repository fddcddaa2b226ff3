package cli

import (
	"context"
	"fmt"
	"strings"
)

func resolveBoardID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("board is required")
	}

	boards, err := app.Boards.List(ctx, true)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, b := range boards {
		if strings.EqualFold(b.Name, input) {
			return b.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, b := range boards {
		if b.ID == input {
			return b.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, b := range boards {
		if strings.HasPrefix(b.ID, input) {
			matches = append(matches, b.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("board not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("board ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task is required")
	}

	// 1. Exact UUID match
	if t, err := app.Tasks.GetByID(ctx, input); err == nil {
		return t.ID, nil
	}

	// 2. UUID prefix match across all boards
	boards, err := app.Boards.List(ctx, true)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, b := range boards {
		tasks, err := app.Tasks.ListByBoard(ctx, b.ID)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
