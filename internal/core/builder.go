package core

// Lookups holds one NormalizingLookup per semantic domain.
type Lookups struct {
	Brand           *Lookup
	Model           *Lookup
	OS              *Lookup
	User            *Lookup
	PCName          *Lookup
	CPUModel        *Lookup
	CPUCode         *Lookup
	CPUCodeForModel *Lookup
	Device          *Lookup
	FreeTotal       *Lookup
	Date            *Lookup
	Time            *Lookup
	Notes           *Lookup
}

// NewLookups returns a fresh set of empty lookups.
func NewLookups() Lookups {
	return Lookups{
		Brand:           NewLookup(),
		Model:           NewLookup(),
		OS:              NewLookup(),
		User:            NewLookup(),
		PCName:          NewLookup(),
		CPUModel:        NewLookup(),
		CPUCode:         NewLookup(),
		CPUCodeForModel: NewLookup(),
		Device:          NewLookup(),
		FreeTotal:       NewLookup(),
		Date:            NewLookup(),
		Time:            NewLookup(),
		Notes:           NewLookup(),
	}
}

// Record is an Event together with the identifiers resolved for it.
// A zero identifier means the field was empty.
type Record struct {
	Event

	LoginID           int
	LoginDateID       int
	LoginTimeID       int
	UserID            int
	PCNameID          int
	BrandID           int
	ModelID           int
	OSID              int
	CPUModelID        int
	CPUCodeID         int
	CPUCodeForModelID int
	DeviceTypeID      int
	FreeTotalID       int
	NotesID           int
	ProcessorID       int
}

// Builder turns parsed events into registry rows.
//
// Per-table insertion policy:
//   - User, Brand, Model, OperatingSystem, DeviceType, ProcessorModel, PC: first write wins
//   - Processor: every event overwrites the row for its (machine, CPU model, CPU code) key
//   - Login: append only, one row per event
//
// The PC row is frozen at first observation while the Processor row follows the
// latest event for the same pairing. The asymmetry is kept on purpose.
type Builder struct {
	lookups   Lookups
	registry  *Registry
	display   *DisplayView
	nextLogin int
}

// NewBuilder returns a Builder writing into registry and display.
// display may be nil when no browsing view is needed.
func NewBuilder(registry *Registry, display *DisplayView) *Builder {
	return &Builder{
		lookups:   NewLookups(),
		registry:  registry,
		display:   display,
		nextLogin: 1,
	}
}

// Lookups exposes the builder's lookups for inspection.
func (b *Builder) Lookups() Lookups {
	return b.lookups
}

// IngestLine parses one source line and ingests it.
// Blank and malformed lines return an error and leave every table untouched.
func (b *Builder) IngestLine(line string) (Record, error) {
	ev, err := ParseLine(line)
	if err != nil {
		return Record{}, err
	}
	return b.Ingest(ev), nil
}

// Ingest resolves identifiers for ev, applies the insertion policies and
// registers the result with the display view.
func (b *Builder) Ingest(ev Event) Record {
	rec := b.resolve(ev)
	reg := b.registry

	insertFirst(reg.Users, rec.UserID, User{ID: rec.UserID, Name: ev.User})
	insertFirst(reg.Brands, rec.BrandID, Brand{ID: rec.BrandID, Name: ev.Brand})
	insertFirst(reg.Models, rec.ModelID, Model{ID: rec.ModelID, BrandID: rec.BrandID, Name: ev.Model})
	insertFirst(reg.OperatingSystems, rec.OSID, OperatingSystem{ID: rec.OSID, Name: ev.OperatingSystem})
	insertFirst(reg.DeviceTypes, rec.DeviceTypeID, DeviceType{ID: rec.DeviceTypeID, Type: ev.DeviceType})
	insertFirst(reg.ProcessorModels, rec.CPUCodeForModelID, ProcessorModel{ID: rec.CPUCodeForModelID, Name: ev.CPUCode})

	// The composite key is never empty, so every event writes a processor row.
	procKey := ev.PCName + "|" + ev.CPUModel + "|" + ev.CPUCode
	rec.ProcessorID, _ = b.lookups.CPUCode.GetOrCreate(procKey)
	reg.Processors[rec.ProcessorID] = Processor{
		ID:               rec.ProcessorID,
		Code:             ev.CPUModel,
		ProcessorModelID: rec.CPUCodeForModelID,
	}

	insertFirst(reg.PCs, rec.PCNameID, PC{
		ID:                 rec.PCNameID,
		Name:               ev.PCName,
		DeviceID:           rec.DeviceTypeID,
		ModelID:            rec.ModelID,
		RAM:                ev.InstalledRAM,
		ProcessorID:        rec.ProcessorID,
		OperatingSystemID:  rec.OSID,
		OSInstallationDate: ev.InstallationDate,
		Disk:               ev.Disk,
		Note:               ev.Notes,
	})

	rec.LoginID = b.nextLogin
	b.nextLogin++
	reg.Logins = append(reg.Logins, Login{
		ID:            rec.LoginID,
		Date:          ev.LoginDate,
		Time:          ev.LoginTime,
		PCID:          rec.PCNameID,
		UserID:        rec.UserID,
		FreeDiskSpace: ev.FreeTotalDiskSpace,
	})

	if b.display != nil {
		b.display.Register(rec)
	}
	return rec
}

// resolve assigns an identifier per domain.
func (b *Builder) resolve(ev Event) Record {
	l := b.lookups
	rec := Record{Event: ev}
	rec.LoginDateID, _ = l.Date.GetOrCreate(ev.LoginDate)
	rec.LoginTimeID, _ = l.Time.GetOrCreate(ev.LoginTime)
	rec.UserID, _ = l.User.GetOrCreate(ev.User)
	rec.PCNameID, _ = l.PCName.GetOrCreate(ev.PCName)
	rec.BrandID, _ = l.Brand.GetOrCreate(ev.Brand)
	rec.ModelID, _ = l.Model.GetOrCreate(ev.Model)
	rec.OSID, _ = l.OS.GetOrCreate(ev.OperatingSystem)
	rec.CPUModelID, _ = l.CPUModel.GetOrCreate(ev.CPUModel)
	rec.CPUCodeID, _ = l.CPUCode.GetOrCreate(ev.CPUCode)
	rec.CPUCodeForModelID, _ = l.CPUCodeForModel.GetOrCreate(ev.CPUCode)
	rec.DeviceTypeID, _ = l.Device.GetOrCreate(ev.DeviceType)
	rec.FreeTotalID, _ = l.FreeTotal.GetOrCreate(ev.FreeTotalDiskSpace)
	rec.NotesID, _ = l.Notes.GetOrCreate(ev.Notes)
	return rec
}
