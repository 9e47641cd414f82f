// Package airtable adapts the Airtable bookings sheet to the domain
// repository contract. Column names are the Spanish headers of the
// original sheet; values arrive as loosely-typed JSON and are coerced
// leniently, favoring a zero value over dropping the record.
package airtable

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mehanizm/airtable"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// Sheet column names.
const (
	fieldCreated     = "Creado"
	fieldCheckIn     = "Llegada"
	fieldCheckOut    = "Salida"
	fieldApartment   = "Apartamento"
	fieldGuest       = "Huésped"
	fieldAdults      = "Adultos"
	fieldChildren    = "Niños"
	fieldNights      = "noches"
	fieldStatus      = "Estado"
	fieldChannel     = "Portal de reserva"
	fieldPrice       = "Precio"
	fieldNightlyAvg  = "Media Ntss"
	fieldCleaningFee = "Limpieza"
	fieldCommission  = "Comisión 20%"
	fieldTotal       = "Total"
	fieldPaid        = "Pagado"
	fieldYear        = "Año"
	fieldMonth       = "Mes"
	fieldProfit      = "Beneficio"
	fieldNotes       = "Notas"
)

// BookingRepository implements domain.BookingRepository over an Airtable base.
type BookingRepository struct {
	table *airtable.Table
}

// NewBookingRepository creates a repository for the given base and table.
func NewBookingRepository(apiKey, baseID, tableName string) *BookingRepository {
	client := airtable.NewClient(apiKey)
	return &BookingRepository{
		table: client.GetTable(baseID, tableName),
	}
}

// GetAll fetches every booking record, following pagination offsets.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.fetch(ctx, "")
}

// GetByApartment fetches the bookings of a single apartment using a
// server-side filter formula.
func (r *BookingRepository) GetByApartment(ctx context.Context, apartment string) ([]*domain.Booking, error) {
	escaped := strings.ReplaceAll(apartment, "'", "\\'")
	formula := "{" + fieldApartment + "} = '" + escaped + "'"
	return r.fetch(ctx, formula)
}

// GetApartmentNames returns the sorted distinct apartment names.
func (r *BookingRepository) GetApartmentNames(ctx context.Context) ([]string, error) {
	bookings, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, b := range bookings {
		if b.Apartment == "" {
			continue
		}
		if _, ok := seen[b.Apartment]; ok {
			continue
		}
		seen[b.Apartment] = struct{}{}
		names = append(names, b.Apartment)
	}
	sort.Strings(names)
	return names, nil
}

func (r *BookingRepository) fetch(ctx context.Context, formula string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	offset := ""
	for {
		cfg := r.table.GetRecords().WithOffset(offset).PageSize(100)
		if formula != "" {
			cfg = cfg.WithFilterFormula(formula)
		}

		records, err := cfg.Do()
		if err != nil {
			return nil, err
		}
		for _, record := range records.Records {
			bookings = append(bookings, recordToBooking(record))
		}

		if records.Offset == "" {
			break
		}
		offset = records.Offset

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	log.Debug().Int("count", len(bookings)).Msg("Fetched bookings from Airtable")
	return bookings, nil
}

func recordToBooking(record *airtable.Record) *domain.Booking {
	f := record.Fields
	b := &domain.Booking{
		ID:             record.ID,
		CreatedAt:      parseDate(f[fieldCreated]),
		CheckIn:        parseDate(f[fieldCheckIn]),
		CheckOut:       parseDate(f[fieldCheckOut]),
		Apartment:      parseString(f[fieldApartment]),
		Guest:          parseString(f[fieldGuest]),
		Adults:         int(parseFloat(f[fieldAdults])),
		Children:       int(parseFloat(f[fieldChildren])),
		Nights:         int(parseFloat(f[fieldNights])),
		Status:         parseString(f[fieldStatus]),
		Channel:        parseString(f[fieldChannel]),
		Price:          parseDecimal(f[fieldPrice]),
		NightlyAverage: parseDecimal(f[fieldNightlyAvg]),
		CleaningFee:    parseDecimal(f[fieldCleaningFee]),
		Commission:     parseDecimal(f[fieldCommission]),
		Total:          parseDecimal(f[fieldTotal]),
		Paid:           parseBool(f[fieldPaid]),
		Year:           int(parseFloat(f[fieldYear])),
		Month:          parseString(f[fieldMonth]),
		Profit:         parseDecimal(f[fieldProfit]),
		Notes:          parseString(f[fieldNotes]),
	}
	if b.Year == 0 && !b.CheckIn.IsZero() {
		b.Year = b.CheckIn.Year()
	}
	return b
}

func parseString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func parseFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func parseDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// parseBool accepts the checkbox values plus the textual yes variants the
// sheet has accumulated over the years.
func parseBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "sí", "si", "yes", "true", "1":
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// parseDate tries the layouts seen in the sheet; an unparseable value is
// logged and becomes the zero time rather than failing the fetch.
func parseDate(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	log.Warn().Str("value", s).Msg("Unparseable date in Airtable record")
	return time.Time{}
}
