package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the operations the frontend cares about most.
type Metrics struct {
	InvoicesIssued  prometheus.Counter
	InvoicesVoided  prometheus.Counter
	BulkActions     prometheus.Counter
	BulkActionItems *prometheus.CounterVec
}

func newMetrics() *Metrics {
	return &Metrics{
		InvoicesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "somanager_invoices_issued_total",
			Help: "Invoices issued since process start.",
		}),
		InvoicesVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "somanager_invoices_voided_total",
			Help: "Invoices voided by reopening orders.",
		}),
		BulkActions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "somanager_bulk_actions_total",
			Help: "Bulk action batches applied.",
		}),
		BulkActionItems: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "somanager_bulk_action_items_total",
			Help: "Per-order bulk action outcomes.",
		}, []string{"result"}),
	}
}
