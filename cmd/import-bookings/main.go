// Command import-bookings seeds the Postgres mirror from a JSON export of
// the bookings sheet.
//
// Usage:
//
//	import-bookings -file bookings.json [-truncate]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/config"
	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/repository/postgres"
)

const insertBooking = `
	INSERT INTO bookings (
		id, created_at, check_in, check_out, apartment, guest,
		adults, children, nights, status, booking_portal,
		price, nightly_average, cleaning_fee, commission, total,
		paid, year, month, profit, notes
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21
	)
	ON CONFLICT (id) DO UPDATE SET
		created_at = EXCLUDED.created_at,
		check_in = EXCLUDED.check_in,
		check_out = EXCLUDED.check_out,
		apartment = EXCLUDED.apartment,
		guest = EXCLUDED.guest,
		adults = EXCLUDED.adults,
		children = EXCLUDED.children,
		nights = EXCLUDED.nights,
		status = EXCLUDED.status,
		booking_portal = EXCLUDED.booking_portal,
		price = EXCLUDED.price,
		nightly_average = EXCLUDED.nightly_average,
		cleaning_fee = EXCLUDED.cleaning_fee,
		commission = EXCLUDED.commission,
		total = EXCLUDED.total,
		paid = EXCLUDED.paid,
		year = EXCLUDED.year,
		month = EXCLUDED.month,
		profit = EXCLUDED.profit,
		notes = EXCLUDED.notes`

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	file := flag.String("file", "bookings.json", "path to the JSON export")
	truncate := flag.Bool("truncate", false, "delete existing bookings before importing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read export file")
	}

	var bookings []*domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse export file")
	}
	log.Info().Int("count", len(bookings)).Str("file", *file).Msg("Parsed export")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if *truncate {
		if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
			log.Fatal().Err(err).Msg("Failed to truncate bookings")
		}
		log.Info().Msg("Truncated existing bookings")
	}

	imported := 0
	for _, b := range bookings {
		// Exports straight from the sheet carry no stable identifier.
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.Month == "" {
			b.Month = b.MonthName()
		}
		if b.Year == 0 && !b.CheckIn.IsZero() {
			b.Year = b.CheckIn.Year()
		}

		if _, err := tx.Exec(ctx, insertBooking,
			b.ID, b.CreatedAt, b.CheckIn, b.CheckOut, b.Apartment, b.Guest,
			b.Adults, b.Children, b.Nights, b.Status, b.Channel,
			b.Price, b.NightlyAverage, b.CleaningFee, b.Commission, b.Total,
			b.Paid, b.Year, b.Month, b.Profit, b.Notes,
		); err != nil {
			log.Fatal().Err(err).Str("id", b.ID).Str("apartment", b.Apartment).Msg("Failed to insert booking")
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit transaction")
	}

	log.Info().Int("imported", imported).Msg("Import complete")
}
