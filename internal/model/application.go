package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field names accepted by Draft.Set. They match the JSON keys of the resource.
const (
	FieldCompanyName     = "company_name"
	FieldJobTitle        = "job_title"
	FieldApplicationDate = "application_date"
)

// ErrUnknownField is returned when a draft field name is not recognised.
var ErrUnknownField = errors.New("unknown draft field")

// ID is a server-assigned identifier. The server may send it as a JSON string
// or a JSON number; either way it is kept verbatim as text.
type ID string

// UnmarshalJSON accepts both string and number encodings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("application id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Application is a persisted entry as returned by the applications resource.
type Application struct {
	ID              ID     `json:"id"`
	CompanyName     string `json:"company_name"`
	JobTitle        string `json:"job_title"`
	ApplicationDate string `json:"application_date"`
	Status          string `json:"status,omitempty"`
	Source          string `json:"source,omitempty"`
	JobNumber       string `json:"job_number,omitempty"`
}

// Line renders the application as "company - title (date)".
func (a Application) Line() string {
	return fmt.Sprintf("%s - %s (%s)", a.CompanyName, a.JobTitle, a.ApplicationDate)
}

// Draft is the not-yet-submitted form state. The zero value is the empty draft.
type Draft struct {
	CompanyName     string `json:"company_name"`
	JobTitle        string `json:"job_title"`
	ApplicationDate string `json:"application_date"`
}

// Set updates exactly one field by its JSON name.
func (d *Draft) Set(name, value string) error {
	switch name {
	case FieldCompanyName:
		d.CompanyName = value
	case FieldJobTitle:
		d.JobTitle = value
	case FieldApplicationDate:
		d.ApplicationDate = value
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return nil
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}
