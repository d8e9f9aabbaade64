package tables

import "github.com/JonMunkholm/hwinventory/internal/core"

func init() {
	registerProcessorModel()
	registerProcessor()
}

func registerProcessorModel() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetProcessorModel,
			Order:   orderProcessorModel,
			Columns: []string{"ID", "Name"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.ProcessorModels, reg.ProcessorModels, func(pm core.ProcessorModel) []any {
				return []any{pm.ID, core.CellText(pm.Name)}
			})
		},
	})
}

func registerProcessor() {
	core.RegisterSheet(core.SheetDefinition{
		Info: core.SheetInfo{
			Name:    core.SheetProcessor,
			Order:   orderProcessor,
			Columns: []string{"ID", "ProcessorCode", "ProcessorModelID"},
		},
		Rows: func(reg *core.Registry, sel core.Selection) [][]any {
			return closureRows(sel.Closure.Processors, reg.Processors, func(p core.Processor) []any {
				return []any{p.ID, core.CellText(p.Code), core.CellID(p.ProcessorModelID)}
			})
		},
	})
}
