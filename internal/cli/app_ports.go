package cli

import "github.com/alexanderramin/kairos-gantt/internal/app"

func (a *App) timelineUseCase() app.TimelineUseCase {
	if a.TimelineView != nil {
		return a.TimelineView
	}
	return a.Timeline
}

func (a *App) importItemsUseCase() app.ImportItemsUseCase {
	if a.ImportItems != nil {
		return a.ImportItems
	}
	return a.Import
}
