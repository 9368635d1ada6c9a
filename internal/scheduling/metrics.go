package scheduling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "clinic_bookings_total",
		Help: "Booking attempts that reached the conflict check, by outcome",
	},
	[]string{"outcome"},
)

func observeBooking(outcome string) {
	bookingsTotal.WithLabelValues(outcome).Inc()
}
