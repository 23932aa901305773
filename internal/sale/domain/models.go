// Package domain contains the canonical sale record and the contracts of the
// reconciliation engine.
package domain

import (
	"fmt"
	"time"
)

// Sale is one completed hotspot session sold to a customer. Remote-sourced
// records keep the device's own script id until persisted; the ledger copy is
// the system of record.
type Sale struct {
	ID           string    `gorm:"primaryKey;size:8" json:"id"`
	IDStamp      string    `gorm:"column:id_stamp;uniqueIndex:idx_sales_id_stamp;size:20" json:"idStamp"`
	SaleDate     time.Time `gorm:"not null;index" json:"saleDate"`
	Name         string    `gorm:"size:45" json:"name"`
	Price        int64     `gorm:"not null;default:0" json:"price"`
	AgenCode     string    `gorm:"size:45;index" json:"agenCode"`
	ProfileName  string    `gorm:"size:45" json:"profileName"`
	ProfileAlias string    `gorm:"size:45" json:"profileAlias"`
	Duration     string    `gorm:"size:45" json:"duration"`
	IP           string    `gorm:"column:ip;size:45" json:"ip"`
	MAC          string    `gorm:"column:mac;size:45" json:"mac"`
	Comment      string    `gorm:"size:100" json:"comment"`
	SampleName   string    `gorm:"size:500" json:"sampleName"`

	// Written by the external SMS notifier, never by this service.
	SmsSentDate *time.Time `gorm:"column:sms_sent_date" json:"smsSentDate,omitempty"`
}

// TableName sets the database table name.
func (Sale) TableName() string { return "sales" }

// Stamp derives the deduplication key: two records with the same stamp are the
// same real-world session.
func (s *Sale) Stamp() string {
	return fmt.Sprintf("%s-%d", s.Name, s.SaleDate.Unix())
}

// Source selects which side of the ledger a query reads from.
type Source int

const (
	SourceLocal  Source = 1
	SourceRemote Source = 2
	SourceBoth   Source = 3
)

func (s Source) Valid() bool {
	return s >= SourceLocal && s <= SourceBoth
}

func (s Source) IncludesLocal() bool {
	return s == SourceLocal || s == SourceBoth
}

func (s Source) IncludesRemote() bool {
	return s == SourceRemote || s == SourceBoth
}

// MonthCodes are the owner-tag month abbreviations written by the device-side
// provisioning scripts. December is "des", not "dec"; the scripts were
// authored that way and existing script owners on devices still carry it.
var MonthCodes = map[time.Month]string{
	time.January:   "jan",
	time.February:  "feb",
	time.March:     "mar",
	time.April:     "apr",
	time.May:       "may",
	time.June:      "jun",
	time.July:      "jul",
	time.August:    "aug",
	time.September: "sep",
	time.October:   "oct",
	time.November:  "nov",
	time.December:  "des",
}
