// Package numbering formats human-readable document numbers.
//
// A number reads {PREFIX}-{TYPECODE}{YY}-{YY}-{MM}-{SEQ}, for example RX-VQ25-25-07-001.
// The year appears twice for compatibility with numbers issued by the previous system.
// The policy keeps no state: callers pass how many documents of the type were already
// created for the tenant on that day.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesdocs/internal/domain"
)

// DefaultPrefix is used when a company has not configured its own prefix.
const DefaultPrefix = "RX"

// JobTypeCode is the type code of manufacturing job numbers.
const JobTypeCode = "MJ"

// TypeCodes maps each document type to the code embedded in its numbers.
var TypeCodes = map[domain.DocumentType]string{
	domain.DocumentTypeQuotation:       "VQ",
	domain.DocumentTypeProforma:        "PI",
	domain.DocumentTypeOrder:           "SO",
	domain.DocumentTypeInvoice:         "IN",
	domain.DocumentTypePurchaseOrder:   "PO",
	domain.DocumentTypeDeliveryChallan: "DC",
}

// TypeCode returns the code for a document type.
func TypeCode(docType domain.DocumentType) (string, error) {
	code, ok := TypeCodes[docType]
	if !ok {
		return "", fmt.Errorf("numbering: unknown document type %q", docType)
	}
	return code, nil
}

// Stem returns everything before the sequence, e.g. "RX-VQ25-25-07-".
// Numbers sharing a stem belong to the same type and month.
func Stem(prefix, typeCode string, date time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	yy := date.Format("06")
	return fmt.Sprintf("%s-%s%s-%s-%s-", prefix, typeCode, yy, yy, date.Format("01"))
}

// Format renders the number with the given sequence, zero-padded to three digits.
func Format(prefix, typeCode string, date time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", Stem(prefix, typeCode, date), seq)
}

// NextNumber returns the number following existingForDay documents of docType created
// on date. The sequence starts at 001 every day.
func NextNumber(prefix string, docType domain.DocumentType, date time.Time, existingForDay int) (string, error) {
	code, err := TypeCode(docType)
	if err != nil {
		return "", err
	}
	return NextWithCode(prefix, code, date, existingForDay)
}

// NextWithCode is NextNumber for an explicit type code.
func NextWithCode(prefix, typeCode string, date time.Time, existingForDay int) (string, error) {
	if existingForDay < 0 {
		return "", fmt.Errorf("numbering: negative document count %d", existingForDay)
	}
	return Format(prefix, typeCode, date, existingForDay+1), nil
}

// Sequence extracts the trailing sequence of a number with the given stem.
func Sequence(stem, number string) (int, bool) {
	if !strings.HasPrefix(number, stem) {
		return 0, false
	}
	seq, err := strconv.Atoi(number[len(stem):])
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}

// FirstFree returns the first sequence at or after existingForDay+1 whose number is not in
// taken. The stem carries no day, so sequences reset on a new day may already exist from
// an earlier day of the same month.
func FirstFree(stem string, existingForDay int, taken []string) int {
	used := make(map[int]bool, len(taken))
	for _, n := range taken {
		if seq, ok := Sequence(stem, n); ok {
			used[seq] = true
		}
	}
	seq := existingForDay + 1
	if seq < 1 {
		seq = 1
	}
	for used[seq] {
		seq++
	}
	return seq
}

// DayBounds returns the start of date's day and the start of the next day in loc.
func DayBounds(date time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := date.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
