// Package metrics defines and registers all custom Prometheus metrics
// for the portfolio API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wealthvault"

// LedgerMutationsTotal counts accepted ledger mutations.
// Label:
//   - op: "add", "update", or "delete"
var LedgerMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_mutations_total",
		Help:      "Total number of accepted investment ledger mutations, by operation.",
	},
	[]string{"op"},
)

// HoldingsReconciledTotal counts reconciliation merge outcomes.
// Label:
//   - result: "added" or "updated"
var HoldingsReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "holdings_reconciled_total",
		Help:      "Total number of statement holdings merged into ledgers, by result.",
	},
	[]string{"result"},
)

// StatementFetchesTotal counts statement fetch attempts.
// Label:
//   - outcome: "ok", "unchanged", "fetch_failed", or "precondition_failed"
var StatementFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "statement_fetches_total",
		Help:      "Total number of statement-of-account fetches, by outcome.",
	},
	[]string{"outcome"},
)

// AccessDeniedTotal counts requests rejected by the access resolver.
// Label:
//   - op: the denied operation group (e.g. "profile", "ledger", "nominee")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the access resolver.",
	},
	[]string{"op"},
)
