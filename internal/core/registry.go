package core

import "sort"

// Entity records. Optional references use 0 for "absent"; identifiers start at 1.

// User is a person seen logging in.
type User struct {
	ID   int
	Name string
}

// Brand is a hardware manufacturer.
type Brand struct {
	ID   int
	Name string
}

// Model is a hardware model, linked to the brand it was first seen with.
type Model struct {
	ID      int
	BrandID int
	Name    string
}

// OperatingSystem is an installed operating system name.
type OperatingSystem struct {
	ID   int
	Name string
}

// DeviceType is a device category label (laptop, desktop, ...).
type DeviceType struct {
	ID   int
	Type string
}

// ProcessorModel is a CPU code such as "i7-8650U".
type ProcessorModel struct {
	ID   int
	Name string
}

// Processor is the CPU fitted to one machine.
type Processor struct {
	ID               int
	Code             string
	ProcessorModelID int
}

// PC is a machine snapshot captured at its first observation.
type PC struct {
	ID                 int
	Name               string
	DeviceID           int
	ModelID            int
	RAM                RAM
	ProcessorID        int
	OperatingSystemID  int
	OSInstallationDate Date
	Disk               string
	Note               string
}

// Login is one processed event.
type Login struct {
	ID            int
	Date          Date
	Time          Clock
	PCID          int
	UserID        int
	FreeDiskSpace string
}

// Registry holds the normalized entity tables for one ingestion run.
// It is populated only through a Builder and read-only afterwards.
type Registry struct {
	Users            map[int]User
	Brands           map[int]Brand
	Models           map[int]Model
	OperatingSystems map[int]OperatingSystem
	DeviceTypes      map[int]DeviceType
	ProcessorModels  map[int]ProcessorModel
	Processors       map[int]Processor
	PCs              map[int]PC
	Logins           []Login
}

// NewRegistry returns a Registry with empty tables.
func NewRegistry() *Registry {
	return &Registry{
		Users:            make(map[int]User),
		Brands:           make(map[int]Brand),
		Models:           make(map[int]Model),
		OperatingSystems: make(map[int]OperatingSystem),
		DeviceTypes:      make(map[int]DeviceType),
		ProcessorModels:  make(map[int]ProcessorModel),
		Processors:       make(map[int]Processor),
		PCs:              make(map[int]PC),
	}
}

// TableCounts returns the row count of every table keyed by sheet name.
func (r *Registry) TableCounts() map[string]int {
	return map[string]int{
		SheetLogin:           len(r.Logins),
		SheetUser:            len(r.Users),
		SheetPC:              len(r.PCs),
		SheetDevice:          len(r.DeviceTypes),
		SheetModel:           len(r.Models),
		SheetBrand:           len(r.Brands),
		SheetOperatingSystem: len(r.OperatingSystems),
		SheetProcessorModel:  len(r.ProcessorModels),
		SheetProcessor:       len(r.Processors),
	}
}

// insertFirst stores v under id unless the id is absent or already taken.
func insertFirst[T any](table map[int]T, id int, v T) {
	if id == 0 {
		return
	}
	if _, exists := table[id]; exists {
		return
	}
	table[id] = v
}

// SortedIDs returns the members of set in ascending order. Entity sheets emit
// rows in this order.
func SortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
