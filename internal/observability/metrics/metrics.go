package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"service", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total number of tokens issued or refreshed.",
		},
		[]string{"service", "flow", "result"},
	)

	ConfirmationEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmation_emails_total",
			Help: "Total number of confirmation emails attempted.",
		},
		[]string{"service", "result"},
	)

	ImagesUploadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "images_uploaded_total",
			Help: "Total number of image uploads.",
		},
		[]string{"service", "kind", "result"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	RegistrationsTotal = RegistrationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	LoginsTotal = LoginsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	TokensIssuedTotal = TokensIssuedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	ConfirmationEmailsTotal = ConfirmationEmailsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	ImagesUploadedTotal = ImagesUploadedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		RegistrationsTotal,
		LoginsTotal,
		TokensIssuedTotal,
		ConfirmationEmailsTotal,
		ImagesUploadedTotal,
	)
}
