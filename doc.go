// Package writerpool implements a caching writer pool for a columnar
// journal storage engine: it amortizes the cost of opening and closing
// append-only table writers while guaranteeing that at most one writer
// exists for a given journal at any moment.
//
// The pool itself lives in the pool sub-package. The rest of the module
// provides the ambient stack around it, carried over from the utility
// library this module grew out of:
//
//	import "oss.nandlabs.io/writerpool/pool"       // the caching writer pool core
//	import "oss.nandlabs.io/writerpool/journalstore" // demo base writer factory (SQLite-backed)
//	import "oss.nandlabs.io/writerpool/l3"         // logging
//	import "oss.nandlabs.io/writerpool/config"     // configuration
//	import "oss.nandlabs.io/writerpool/chrono"     // scheduler that drives the sweep job
//	import "oss.nandlabs.io/writerpool/lifecycle"  // component start/stop orchestration
//	import "oss.nandlabs.io/writerpool/errutils"   // multi-error aggregation
//	import "oss.nandlabs.io/writerpool/managers"   // generic named-item registry
//
// See cmd/writerpoold for a daemon that wires all of the above together.
package writerpool
