package metrics

import "github.com/prometheus/client_golang/prometheus"

// DomainMetrics counts business events the operations team watches.
type DomainMetrics struct {
	bookingsCreated prometheus.Counter
	emailsSent      *prometheus.CounterVec
	emailsFailed    *prometheus.CounterVec
	mediaUploads    *prometheus.CounterVec
}

// NewDomainMetrics registers the business counters on the provided registerer.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings confirmed through the wizard.",
	})
	emailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outbound notification emails delivered to SMTP.",
	}, []string{"kind"})
	emailsFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_failed_total",
		Help: "Outbound notification emails that failed to send.",
	}, []string{"kind"})
	mediaUploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Media files uploaded through the admin proxy.",
	}, []string{"content_type"})
	reg.MustRegister(bookingsCreated, emailsSent, emailsFailed, mediaUploads)
	return &DomainMetrics{
		bookingsCreated: bookingsCreated,
		emailsSent:      emailsSent,
		emailsFailed:    emailsFailed,
		mediaUploads:    mediaUploads,
	}
}

// IncBookingCreated increments the confirmed bookings counter.
func (d *DomainMetrics) IncBookingCreated() {
	if d == nil || d.bookingsCreated == nil {
		return
	}
	d.bookingsCreated.Inc()
}

// IncEmailSent increments the delivered email counter for the given kind.
func (d *DomainMetrics) IncEmailSent(kind string) {
	if d == nil || d.emailsSent == nil {
		return
	}
	d.emailsSent.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncEmailFailed increments the failed email counter for the given kind.
func (d *DomainMetrics) IncEmailFailed(kind string) {
	if d == nil || d.emailsFailed == nil {
		return
	}
	d.emailsFailed.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncMediaUpload increments the upload counter for the given content type.
func (d *DomainMetrics) IncMediaUpload(contentType string) {
	if d == nil || d.mediaUploads == nil {
		return
	}
	d.mediaUploads.WithLabelValues(normalizeLabel(contentType)).Inc()
}
