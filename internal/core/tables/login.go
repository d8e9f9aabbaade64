package tables

import "github.com/JonMunkholm/hwinventory/internal/core"

func init() {
	registerLogin()
	registerUser()
}

func registerLogin() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetLogin,
			Order:   orderLogin,
			Columns: []string{"ID", "Date", "Time", "PC_ID", "User_ID", "FreeDiskSpace"},
		},
		Rows: func(_ *core.Registry, sel core.Selection) [][]any {
			rows := make([][]any, 0, len(sel.Logins))
			for _, l := range sel.Logins {
				rows = append(rows, []any{
					l.ID,
					core.CellDate(l.Date),
					core.CellClock(l.Time),
					core.CellID(l.PCID),
					core.CellID(l.UserID),
					core.CellText(l.FreeDiskSpace),
				})
			}
			return rows
		},
	})
}

func registerUser() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetUser,
			Order:   orderUser,
			Columns: []string{"ID", "Name"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.Users, reg.Users, func(u core.User) []any {
				return []any{u.ID, core.CellText(u.Name)}
			})
		},
	})
}
