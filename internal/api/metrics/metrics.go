// Package metrics defines the custom Prometheus metrics of the leads API.
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leads"

// LeadsCreatedTotal counts leads accepted through the public contact form.
var LeadsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of leads created.",
	},
)

// LeadStatusUpdatesTotal counts successful status changes.
// Label:
//   - status: the status applied ("new", "contacted", "converted")
var LeadStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_updates_total",
		Help:      "Total number of lead status updates, by resulting status.",
	},
	[]string{"status"},
)

// LeadNotesAddedTotal counts notes appended to leads.
var LeadNotesAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_added_total",
		Help:      "Total number of notes added to leads.",
	},
)

// LoginAttemptsTotal counts admin login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)
