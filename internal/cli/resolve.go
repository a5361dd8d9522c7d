package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/kairos-gantt/internal/repository"
)

// resolveItemID resolves a full item id or a unique id prefix.
func resolveItemID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("item ID is required")
	}

	items, err := app.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return "", err
	}

	// 1. Exact match
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
	}

	// 2. Prefix match
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItemIDs resolves each input, failing on the first unknown id.
func resolveItemIDs(ctx context.Context, app *App, inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveItemID(ctx, app, in)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
