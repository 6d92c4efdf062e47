package cli

import "github.com/alexanderramin/eap/internal/app"

func (a *App) treeUseCase() app.TreeUseCase {
	if a.TreeView != nil {
		return a.TreeView
	}
	return a.WBS
}

func (a *App) statusUseCase() app.StatusUseCase {
	if a.StatusView != nil {
		return a.StatusView
	}
	return a.WBS
}

func (a *App) scheduleUseCase() app.ScheduleUseCase {
	if a.ScheduleView != nil {
		return a.ScheduleView
	}
	return a.WBS
}

func (a *App) importEAPUseCase() app.ImportEAPUseCase {
	if a.ImportEAP != nil {
		return a.ImportEAP
	}
	return a.Imports
}
