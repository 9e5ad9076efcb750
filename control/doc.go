// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug probes for schedulers and execution hosts.
//
// Metrics are Prometheus collectors registered against a caller-supplied
// prometheus.Registerer. A nil *Metrics is valid and records nothing, so
// components accept it unconditionally.
//
// Probes is a registry of named state functions evaluated on demand.
package control
