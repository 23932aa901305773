// Package parser decodes the two delimited script payloads the hotspot device
// reports completed sessions in.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
)

const (
	directDelim    = "-|-"
	generatedDelim = ".|."

	// vcTag marks a comment whose sub-fields carry the voucher alias and
	// agent code.
	vcTag = "vc"

	dateLayout = "1/2/06"
	timeLayout = "15:04:05"
)

var (
	ErrMalformed = errors.New("malformed_record")
	ErrBadDate   = errors.New("bad_sale_date")
)

// ParseDirect decodes a direct-session payload (tag "mikhmon"):
//
//	date-|-time-|-name-|-price-|-ip-|-mac-|-duration-|-profile-|-comment
//
// The comment is "-"-delimited; when its first sub-field is "vc", sub-field 3
// is the agent code and sub-field 5 the profile alias.
func ParseDirect(raw saledomain.RawScript) (*saledomain.Sale, error) {
	parts := strings.Split(raw.Name, directDelim)
	if len(parts) < 9 {
		return nil, fmt.Errorf("%w: direct payload has %d of 9 components", ErrMalformed, len(parts))
	}

	saleDate, err := parseSaleDate(parts[0], parts[1])
	if err != nil {
		return nil, err
	}

	comment := parts[8]
	sub := strings.Split(comment, "-")

	sale := &saledomain.Sale{
		ID:           raw.ID,
		SaleDate:     saleDate,
		Name:         parts[2],
		Price:        parsePrice(parts[3]),
		IP:           parts[4],
		MAC:          parts[5],
		Duration:     parts[6],
		ProfileName:  parts[7],
		AgenCode:     vcField(sub, 3),
		ProfileAlias: vcField(sub, 5),
		Comment:      comment,
		SampleName:   raw.Name,
	}
	sale.IDStamp = sale.Stamp()
	return sale, nil
}

// ParseGenerated decodes a generator-session payload (tag "mikhgen_sales"):
//
//	agen.|.date.|.time.|.name.|.profile.|.alias.|.price.|.comment
//
// Component 0 is ignored; the authoritative agent code comes from the comment
// sub-fields (".|."-delimited, same "vc" convention, agent at index 1 and
// alias at index 2).
func ParseGenerated(raw saledomain.RawScript) (*saledomain.Sale, error) {
	parts := strings.SplitN(raw.Name, generatedDelim, 8)
	if len(parts) < 8 {
		return nil, fmt.Errorf("%w: generated payload has %d of 8 components", ErrMalformed, len(parts))
	}

	saleDate, err := parseSaleDate(parts[1], parts[2])
	if err != nil {
		return nil, err
	}

	comment := parts[7]
	sub := strings.Split(comment, generatedDelim)

	sale := &saledomain.Sale{
		ID:           raw.ID,
		SaleDate:     saleDate,
		Name:         parts[3],
		Price:        parsePrice(parts[6]),
		ProfileName:  parts[4],
		AgenCode:     vcField(sub, 1),
		ProfileAlias: vcField(sub, 2),
		Comment:      comment,
		SampleName:   raw.Name,
	}
	sale.IDStamp = sale.Stamp()
	return sale, nil
}

func parseSaleDate(date, clock string) (time.Time, error) {
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	ts, err := time.ParseInLocation(dateLayout+" "+timeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
	}
	return ts, nil
}

// parsePrice mirrors the device scripts' lenient numeric coercion: garbage
// prices become zero instead of dropping the record.
func parsePrice(raw string) int64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return int64(value)
}

// vcField returns the comment sub-field at idx when the comment is
// vc-tagged. Out-of-range indexes yield an empty string.
func vcField(sub []string, idx int) string {
	if len(sub) == 0 || sub[0] != vcTag {
		return ""
	}
	if idx >= len(sub) {
		return ""
	}
	return sub[idx]
}
