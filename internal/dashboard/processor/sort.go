package processor

import (
	"strings"

	"referral-access/internal/clients/referralapi"
)

// Column identifies a sortable dashboard column.
type Column string

const (
	ColumnContactInFamily Column = "ContactInFamily"
	ColumnDateReceived    Column = "DateReceived"
	ColumnRequestNumber   Column = "RequestNumber"
	ColumnStatus          Column = "Status"
)

// DefaultColumn and descending order are the first-load view of the
// dashboard, and the silent fallback for anything unrecognised.
const DefaultColumn = ColumnDateReceived

// SortSpec is a resolved sort: a recognised column and a direction.
type SortSpec struct {
	Column    Column
	Ascending bool
}

// SortDefaultReason records why a resolved sort fell back to the default,
// so callers can tell a first load from a mangled URL. Both cases render
// identically; the distinction exists for telemetry.
type SortDefaultReason string

const (
	SortNotDefaulted       SortDefaultReason = ""
	SortDefaultedAbsent    SortDefaultReason = "absent"
	SortDefaultedMalformed SortDefaultReason = "malformed"
)

var columns = []Column{ColumnContactInFamily, ColumnDateReceived, ColumnRequestNumber, ColumnStatus}

// ParseColumn matches a raw column token case-insensitively against the
// known set.
func ParseColumn(raw string) (Column, bool) {
	for _, col := range columns {
		if strings.EqualFold(raw, string(col)) {
			return col, true
		}
	}
	return "", false
}

// ResolveSort turns raw caller input into a SortSpec. An absent or
// unrecognised column token resolves to (DateReceived, descending); this
// is defined first-load behaviour, never an error. A recognised column
// with an unrecognised direction keeps the column and sorts descending.
func ResolveSort(rawColumn, rawSort string) (SortSpec, SortDefaultReason) {
	if rawColumn == "" {
		return SortSpec{Column: DefaultColumn, Ascending: false}, SortDefaultedAbsent
	}

	column, ok := ParseColumn(rawColumn)
	if !ok {
		// User has manually changed the url, or a stale link.
		return SortSpec{Column: DefaultColumn, Ascending: false}, SortDefaultedMalformed
	}

	return SortSpec{Column: column, Ascending: strings.EqualFold(rawSort, "ascending")}, SortNotDefaulted
}

// OrderBy maps the column onto the backend's ordering parameter. The
// request-number column has no backend mapping; ordering is left to the
// service.
func (s SortSpec) OrderBy() (referralapi.OrderBy, bool) {
	switch s.Column {
	case ColumnContactInFamily:
		return referralapi.OrderByRecipientName, true
	case ColumnDateReceived:
		return referralapi.OrderByDateSent, true
	case ColumnStatus:
		return referralapi.OrderByStatus, true
	default:
		return "", false
	}
}

// ColumnHeader describes one dashboard column and whether it is the
// active sort, for rendering sort indicators.
type ColumnHeader struct {
	DisplayName string `json:"display_name"`
	SortKey     string `json:"sort_key,omitempty"`
	Sortable    bool   `json:"sortable"`
	Active      bool   `json:"active"`
	Ascending   bool   `json:"ascending"`
}

// ColumnHeaders returns the dashboard's column headers with the active
// sort marked.
func ColumnHeaders(active SortSpec) []ColumnHeader {
	headers := []ColumnHeader{
		{DisplayName: "Contact in family", SortKey: string(ColumnContactInFamily), Sortable: true},
		{DisplayName: "Date received", SortKey: string(ColumnDateReceived), Sortable: true},
		{DisplayName: "Request number"},
		{DisplayName: "Status", SortKey: string(ColumnStatus), Sortable: true},
	}

	for i := range headers {
		if headers[i].Sortable && headers[i].SortKey == string(active.Column) {
			headers[i].Active = true
			headers[i].Ascending = active.Ascending
		}
	}

	return headers
}
