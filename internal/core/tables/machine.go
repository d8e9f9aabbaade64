package tables

import "github.com/JonMunkholm/hwinventory/internal/core"

func init() {
	registerPC()
	registerDevice()
	registerModel()
	registerBrand()
	registerOperatingSystem()
}

func registerPC() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:  core.SheetPC,
			Order: orderPC,
			Columns: []string{
				"ID", "Name", "DeviceID", "ModelID", "RAM", "ProcessorID",
				"OperationSystemID", "OperationSystemInstallationDate", "Disk", "Note",
			},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.PCs, reg.PCs, func(pc core.PC) []any {
				return []any{
					pc.ID,
					core.CellText(pc.Name),
					core.CellID(pc.DeviceID),
					core.CellID(pc.ModelID),
					core.CellRAM(pc.RAM),
					core.CellID(pc.ProcessorID),
					core.CellID(pc.OperatingSystemID),
					core.CellDate(pc.OSInstallationDate),
					core.CellText(pc.Disk),
					core.CellText(pc.Note),
				}
			})
		},
	})
}

func registerDevice() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetDevice,
			Order:   orderDevice,
			Columns: []string{"ID", "Type"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.DeviceTypes, reg.DeviceTypes, func(d core.DeviceType) []any {
				return []any{d.ID, core.CellText(d.Type)}
			})
		},
	})
}

func registerModel() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetModel,
			Order:   orderModel,
			Columns: []string{"ID", "BrandID", "Name"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.Models, reg.Models, func(m core.Model) []any {
				return []any{m.ID, core.CellID(m.BrandID), core.CellText(m.Name)}
			})
		},
	})
}

func registerBrand() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetBrand,
			Order:   orderBrand,
			Columns: []string{"ID", "Name"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.Brands, reg.Brands, func(b core.Brand) []any {
				return []any{b.ID, core.CellText(b.Name)}
			})
		},
	})
}

func registerOperatingSystem() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetOperatingSystem,
			Order:   orderOperatingSystem,
			Columns: []string{"ID", "Name"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.OperatingSystems, reg.OperatingSystems, func(os core.OperatingSystem) []any {
				return []any{os.ID, core.CellText(os.Name)}
			})
		},
	})
}
