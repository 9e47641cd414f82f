package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/testutil"
)

func TestActiveBookings_ExcludesCancellations(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3),
		testutil.NewBooking(2024, 3, testutil.WithStatus(domain.StatusCancelled)),
		testutil.NewBooking(2024, 3, testutil.WithStatus(domain.StatusCancelledAlt)),
		nil,
		testutil.NewBooking(2024, 4, testutil.WithStatus(domain.StatusBlocked)),
	}

	active := ActiveBookings(bookings)
	if len(active) != 2 {
		t.Fatalf("Expected 2 active bookings, got %d", len(active))
	}
	for _, b := range active {
		if b.IsCancelled() {
			t.Errorf("Cancelled booking %s leaked through", b.ID)
		}
	}
}

func TestFilterBookings_NilFilterReturnsInput(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 1),
		testutil.NewBooking(2023, 5),
	}

	got := FilterBookings(bookings, nil)
	if len(got) != len(bookings) {
		t.Errorf("Expected input returned unfiltered, got %d of %d", len(got), len(bookings))
	}
}

func TestFilterBookings_SkipsNilRecords(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 1),
		nil,
		testutil.NewBooking(2024, 2),
	}

	got := FilterBookings(bookings, &domain.BookingFilter{Year: 2024})
	if len(got) != 2 {
		t.Errorf("Expected 2 bookings after skipping nil, got %d", len(got))
	}
}

func TestMatches_Dimensions(t *testing.T) {
	b := testutil.NewBooking(2024, 3,
		testutil.WithApartment("Trindade 1"),
		testutil.WithChannel("Airbnb"),
		testutil.WithPaid(true),
	)

	cases := []struct {
		name   string
		filter domain.BookingFilter
		want   bool
	}{
		{"year match", domain.BookingFilter{Year: 2024}, true},
		{"year mismatch", domain.BookingFilter{Year: 2023}, false},
		{"month match", domain.BookingFilter{Year: 2024, Month: "Marzo"}, true},
		{"month mismatch", domain.BookingFilter{Year: 2024, Month: "Abril"}, false},
		{"apartment match", domain.BookingFilter{Year: 2024, Apartments: []string{"Trindade 1"}}, true},
		{"apartment mismatch", domain.BookingFilter{Year: 2024, Apartments: []string{"Trindade 2"}}, false},
		{"channel match", domain.BookingFilter{Year: 2024, Channel: "Airbnb"}, true},
		{"channel mismatch", domain.BookingFilter{Year: 2024, Channel: "Booking.com"}, false},
		{"paid match", domain.BookingFilter{Year: 2024, Paid: boolPtr(true)}, true},
		{"paid mismatch", domain.BookingFilter{Year: 2024, Paid: boolPtr(false)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(b, &tc.filter); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatches_DateRangeOverlap(t *testing.T) {
	// Stay March 10 to March 13.
	b := testutil.NewBooking(2024, 3)

	from := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	f := &domain.BookingFilter{Year: 2024, DateRange: domain.DateRange{From: &from, To: &to}}
	if !Matches(b, f) {
		t.Error("Overlapping stay must match the window")
	}

	// Window entirely after the stay.
	after := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	f = &domain.BookingFilter{Year: 2024, DateRange: domain.DateRange{From: &after}}
	if Matches(b, f) {
		t.Error("Stay ending before the window must not match")
	}

	// Window entirely before the stay.
	before := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	f = &domain.BookingFilter{Year: 2024, DateRange: domain.DateRange{To: &before}}
	if Matches(b, f) {
		t.Error("Stay starting after the window must not match")
	}
}

func TestMatches_DateRangeSkippedWithoutStayDates(t *testing.T) {
	b := testutil.NewBooking(2024, 3)
	b.CheckIn = time.Time{}
	b.CheckOut = time.Time{}

	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	f := &domain.BookingFilter{Year: 2024, DateRange: domain.DateRange{From: &from}}
	if !Matches(b, f) {
		t.Error("Missing stay dates must skip the range bound, not reject")
	}
}

func TestFilterBookings_Idempotent(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 3, testutil.WithApartment("Trindade 1")),
		testutil.NewBooking(2024, 5, testutil.WithApartment("Trindade 2")),
		testutil.NewBooking(2023, 3, testutil.WithApartment("Trindade 1")),
	}
	filter := &domain.BookingFilter{Year: 2024, Apartments: []string{"Trindade 1"}}
	filter.Normalize()

	once := FilterBookings(bookings, filter)
	twice := FilterBookings(once, filter)
	if !reflect.DeepEqual(once, twice) {
		t.Error("Filtering its own output must be a fixed point")
	}
}

func TestAvailableYears(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 1),
		testutil.NewBooking(2022, 6),
		testutil.NewBooking(2024, 8),
		testutil.NewBooking(2023, 2),
	}

	want := []int{2022, 2023, 2024}
	if got := AvailableYears(bookings); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAvailableMonths_CalendarOrder(t *testing.T) {
	bookings := []*domain.Booking{
		testutil.NewBooking(2024, 9),
		testutil.NewBooking(2024, 2),
		testutil.NewBooking(2024, 9),
		testutil.NewBooking(2023, 5), // other year, excluded
	}

	want := []string{"Febrero", "Septiembre"}
	if got := AvailableMonths(bookings, 2024); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func boolPtr(v bool) *bool { return &v }
