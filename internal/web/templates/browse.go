// Package templates renders the HTML pages of the web server as templ
// components. Edit the .templ files and regenerate with `templ generate`.
package templates

import (
	"net/url"
	"strconv"
)

// Row is one browse table row, already rendered as text.
type Row struct {
	Date  string
	Month string
	Time  string
	User  string
	PC    string
	Brand string
	Model string
	OS    string
}

// Cells returns the row's text columns in table order.
func (r Row) Cells() []string {
	return []string{r.Date, r.Time, r.User, r.PC, r.Brand, r.Model, r.OS}
}

// BrowseParams feeds BrowsePage.
type BrowseParams struct {
	Query      string
	CanExport  bool // Query is a month or date the export endpoint accepts
	Page       int  // one-based
	TotalPages int
	TotalRows  int
	Rows       []Row
}

var browseColumns = []string{"Date", "Time", "User", "PC", "Brand", "Model", "OS", ""}

func exportURL(date string) string {
	return "/api/export?date=" + url.QueryEscape(date)
}

func pageURL(q string, page int) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}
