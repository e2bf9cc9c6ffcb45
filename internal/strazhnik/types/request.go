package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const RequestTypeIndividual = "individual"

// Sentinels a client may send for a document slot that was never filled.
const (
	NotSelected       = "not selected"
	NotSelectedLegacy = "Не выбрано"
)

// IsDocumentSelected reports whether name refers to an uploaded document
// rather than an empty slot.
func IsDocumentSelected(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && name != NotSelected && name != NotSelectedLegacy
}

type Validity struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

type Host struct {
	Department string `json:"department"`
	Employee   string `json:"employee"`
}

type Passport struct {
	Series string `json:"series"`
	Number string `json:"number"`
}

type Visitor struct {
	LastName     string   `json:"last_name"`
	FirstName    string   `json:"first_name"`
	MiddleName   string   `json:"middle_name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Organization string   `json:"organization"`
	BirthDate    Date     `json:"birth_date"`
	Passport     Passport `json:"passport"`
}

type Documents struct {
	Photo        string `json:"photo,omitempty"`
	PassportScan string `json:"passport_scan"`
}

// RequestForm is the full set of values entered for an individual pass.
// It is passed by value; nothing downstream mutates the caller's copy.
type RequestForm struct {
	Dates     Validity  `json:"dates"`
	Purpose   string    `json:"purpose"`
	Host      Host      `json:"host"`
	Visitor   Visitor   `json:"visitor"`
	Documents Documents `json:"documents"`
}

// VisitorPassRequest is the persisted record. One file per request.
type VisitorPassRequest struct {
	Type      string    `json:"type"`
	Dates     Validity  `json:"dates"`
	Purpose   string    `json:"purpose"`
	Host      Host      `json:"host"`
	Visitor   Visitor   `json:"visitor"`
	Documents Documents `json:"documents"`
	CreatedAt Timestamp `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

const requestIDLayout = "20060102_150405"

var requestIDPattern = regexp.MustCompile(`^request_\d{8}_\d{6}\.json$`)

// RequestID names the record created at t. Two requests in the same second
// share an ID.
func RequestID(t time.Time) string {
	return fmt.Sprintf("request_%s.json", t.Format(requestIDLayout))
}

func ValidRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}

type SubmitResponse struct {
	OK       bool        `json:"ok"`
	ID       string      `json:"id"`
	Defaults RequestForm `json:"defaults"`
}

type StoredRequest struct {
	ID      string             `json:"id"`
	Request VisitorPassRequest `json:"request"`
}

type RequestListResponse struct {
	IDs []string `json:"ids"`
}
