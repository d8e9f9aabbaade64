package core

import (
	"fmt"
	"strings"
)

// FieldSeparator delimits fields within one source line.
const FieldSeparator = ";"

// SourceColumns lists the source record fields in line order.
var SourceColumns = []string{
	"LoginDate", "LoginTime", "DeviceType", "PCName", "User", "Brand", "Model",
	"InstalledRAM", "CPUModel", "CPUCode", "OperatingSystem", "InstallationDate",
	"Disk", "FreeTotalDiskSpace", "Notes",
}

// Event is one parsed source line. Text fields keep their raw content;
// LoginDate is always parsed, the other typed fields may carry raw text.
type Event struct {
	LoginDate          Date
	LoginTime          Clock
	DeviceType         string
	PCName             string
	User               string
	Brand              string
	Model              string
	InstalledRAM       RAM
	CPUModel           string
	CPUCode            string
	OperatingSystem    string
	InstallationDate   Date
	Disk               string
	FreeTotalDiskSpace string
	Notes              string
}

// ParseLine splits a source line into an Event.
//
// The line is trimmed, blank lines return ErrBlankLine, and a leading field
// that is not a valid YYYY.MM.DD date returns ErrMalformedLine. Missing
// trailing fields are treated as empty.
func ParseLine(line string) (Event, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, ErrBlankLine
	}

	fields := strings.Split(line, FieldSeparator)
	loginDate, ok := ParseLoginDate(fields[0])
	if !ok {
		return Event{}, fmt.Errorf("%w: invalid login date %q", ErrMalformedLine, fields[0])
	}

	cell := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	return Event{
		LoginDate:          loginDate,
		LoginTime:          FieldTime(cell(1)),
		DeviceType:         cell(2),
		PCName:             cell(3),
		User:               cell(4),
		Brand:              cell(5),
		Model:              cell(6),
		InstalledRAM:       FieldRAM(cell(7)),
		CPUModel:           cell(8),
		CPUCode:            cell(9),
		OperatingSystem:    cell(10),
		InstallationDate:   FieldDate(cell(11)),
		Disk:               cell(12),
		FreeTotalDiskSpace: cell(13),
		Notes:              cell(14),
	}, nil
}
