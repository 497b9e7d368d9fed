package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultServiceType is used when a maintenance record is created with a
// blank service type.
const DefaultServiceType = "unspecified service"

// Maintenance represents a single service event for a vehicle.
type Maintenance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID   primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType string             `json:"service_type" bson:"service_type"`
	Date        time.Time          `json:"date" bson:"date"`
	Cost        float64            `json:"cost" bson:"cost"` // in BRL
	Mileage     *float64           `json:"mileage,omitempty" bson:"mileage,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// FieldError reports a single invalid input field during strict parsing.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// parseDate accepts a calendar date ("2006-01-02") or an RFC 3339 timestamp
// and normalizes it to midnight UTC, so the calendar day never shifts with
// the server timezone.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(t.UTC()), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate strictly parses a maintenance date; failures come back as a
// FieldError on "date".
func ParseDate(s string) (time.Time, error) {
	d, err := parseDate(s)
	if err != nil {
		return time.Time{}, &FieldError{Field: "date", Reason: "not a valid calendar date"}
	}
	return d, nil
}

// ParseCost strictly parses a maintenance cost; non-numeric or negative
// values come back as a FieldError on "cost".
func ParseCost(s string) (float64, error) {
	c, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &FieldError{Field: "cost", Reason: "not a number"}
	}
	if c < 0 {
		return 0, &FieldError{Field: "cost", Reason: "must not be negative"}
	}
	return c, nil
}

// ParseServiceType strictly parses a service type; a blank value comes back
// as a FieldError on "service_type".
func ParseServiceType(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &FieldError{Field: "service_type", Reason: "must not be empty"}
	}
	return s, nil
}

// ParseMaintenance is the strict constructor: every malformed input is
// rejected with a FieldError naming the offending field. Use this at API
// boundaries where bad input must surface as a validation error.
func ParseMaintenance(date, serviceType, cost, description string) (Maintenance, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Maintenance{}, err
	}

	serviceType, err = ParseServiceType(serviceType)
	if err != nil {
		return Maintenance{}, err
	}

	c, err := ParseCost(cost)
	if err != nil {
		return Maintenance{}, err
	}

	return Maintenance{
		ServiceType: serviceType,
		Date:        d,
		Cost:        c,
		Description: strings.TrimSpace(description),
	}, nil
}

// NewMaintenance is the best-effort constructor: malformed input is absorbed
// by defaulting (bad date -> today, bad or negative cost -> 0, blank service
// type -> DefaultServiceType) and logged, never returned as an error. The
// result always satisfies Validate.
func NewMaintenance(date, serviceType, cost, description string) Maintenance {
	d, err := parseDate(date)
	if err != nil {
		log.WithField("date", date).Warn("maintenance: unparseable date, falling back to today")
		d = truncateDay(time.Now())
	}

	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		serviceType = DefaultServiceType
	}

	c, err := strconv.ParseFloat(strings.TrimSpace(cost), 64)
	if err != nil {
		log.WithField("cost", cost).Warn("maintenance: unparseable cost, coercing to 0")
		c = 0
	}
	if c < 0 {
		c = 0
	}

	return Maintenance{
		ServiceType: serviceType,
		Date:        d,
		Cost:        c,
		Description: strings.TrimSpace(description),
	}
}

// Validate reports whether the record satisfies the maintenance invariants:
// a valid calendar date, a non-empty service type and a non-negative cost.
// Pure, no side effects.
func (m Maintenance) Validate() bool {
	if m.Date.IsZero() {
		return false
	}
	if strings.TrimSpace(m.ServiceType) == "" {
		return false
	}
	return m.Cost >= 0
}

// Formatter renders maintenance records for display in a given locale.
type Formatter struct {
	printer        *message.Printer
	currencySymbol string
	dateLayout     string
}

// NewFormatter builds a Formatter for the given language tag.
func NewFormatter(tag language.Tag, currencySymbol, dateLayout string) *Formatter {
	return &Formatter{
		printer:        message.NewPrinter(tag),
		currencySymbol: currencySymbol,
		dateLayout:     dateLayout,
	}
}

// DefaultFormatter follows Brazilian Portuguese conventions: R$-prefixed
// decimal-comma currency and DD/MM/YYYY dates.
var DefaultFormatter = NewFormatter(language.BrazilianPortuguese, "R$", "02/01/2006")

// Format renders a single-line human readable summary, e.g.
// "Oil change on 10/03/2024 - R$ 150,50 (synthetic oil)".
func (f *Formatter) Format(m Maintenance) string {
	s := f.printer.Sprintf("%s on %s - %s %.2f",
		m.ServiceType, m.Date.UTC().Format(f.dateLayout), f.currencySymbol, m.Cost)
	if m.Description != "" {
		s += " (" + m.Description + ")"
	}
	return s
}

// Format renders the record with the package default locale.
func (m Maintenance) Format() string {
	return DefaultFormatter.Format(m)
}

// SortByDateDesc orders records for display, most recent first.
func SortByDateDesc(records []Maintenance) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

// PartitionByDate splits records into past-or-due (date on or before the
// day of now) and scheduled (strictly after), comparing UTC calendar days.
func PartitionByDate(records []Maintenance, now time.Time) (pastDue, scheduled []Maintenance) {
	today := truncateDay(now)
	for _, r := range records {
		if truncateDay(r.Date).After(today) {
			scheduled = append(scheduled, r)
		} else {
			pastDue = append(pastDue, r)
		}
	}
	return pastDue, scheduled
}
