package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ReservationMetrics records counters for the reservation and sign-in flows.
type ReservationMetrics struct {
	logins          *prometheus.CounterVec
	verifierUpgrade *prometheus.CounterVec
	bookingsCreated prometheus.Counter
	intentsResumed  prometheus.Counter
	registrations   prometheus.Counter
}

// NewReservationMetrics registers the reservation metrics on the provided registerer.
func NewReservationMetrics(reg prometheus.Registerer) *ReservationMetrics {
	if reg == nil {
		return &ReservationMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	verifierUpgrade := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "password_verifier_upgrades_total",
		Help: "Legacy password verifier upgrades partitioned by outcome.",
	}, []string{"outcome"})
	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings successfully recorded.",
	})
	intentsResumed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_intents_resumed_total",
		Help: "Booking intents resumed after sign-in.",
	})
	registrations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "New accounts registered.",
	})
	reg.MustRegister(logins, verifierUpgrade, bookingsCreated, intentsResumed, registrations)
	return &ReservationMetrics{
		logins:          logins,
		verifierUpgrade: verifierUpgrade,
		bookingsCreated: bookingsCreated,
		intentsResumed:  intentsResumed,
		registrations:   registrations,
	}
}

// IncLogin increments the login counter for the given outcome ("success" or "failure").
func (m *ReservationMetrics) IncLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncVerifierUpgrade increments the verifier upgrade counter for the given outcome.
func (m *ReservationMetrics) IncVerifierUpgrade(outcome string) {
	if m == nil || m.verifierUpgrade == nil {
		return
	}
	m.verifierUpgrade.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncBookingCreated increments the bookings counter.
func (m *ReservationMetrics) IncBookingCreated() {
	if m == nil || m.bookingsCreated == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// IncIntentResumed increments the resumed intent counter.
func (m *ReservationMetrics) IncIntentResumed() {
	if m == nil || m.intentsResumed == nil {
		return
	}
	m.intentsResumed.Inc()
}

// IncRegistration increments the registration counter.
func (m *ReservationMetrics) IncRegistration() {
	if m == nil || m.registrations == nil {
		return
	}
	m.registrations.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
