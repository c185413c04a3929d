// File: jitflags/doc.go

// Package jitflags is the process-wide configuration registry for the JIT
// compilation subsystem. It owns a fixed set of tunable flag groups (build
// behavior, clustering policy, device compilation mode, op-dispatch deferral,
// and floating-point jitter injection), initializes them exactly once from
// built-in defaults, overlays overrides parsed from the TF_XLA_FLAGS
// environment variable, and exposes read access to the rest of the system.
//
// Features:
//   - One-shot, thread-safe initialization via sync.Once
//   - Typed flag descriptors (bool, int32, int64, float64, string list)
//   - Environment overrides with fail-loud handling of unknown flags
//   - An append hook so a second command-line surface can reuse the
//     clustering flags without duplicating their defaults or storage
//   - Effective-value export to TOML, JSON, or YAML for debugging
//
// Quick Start:
//
//	if jitflags.Build().EnableLazyCompilation {
//	    // defer compilation of the cluster
//	}
//
//	min := jitflags.Clustering().MinClusterSize
//
// The first accessor call from any goroutine performs the full
// allocate-defaults-and-parse sequence; every other concurrent caller blocks
// until it completes. After that the groups are never mutated by this
// package, so reads need no further synchronization.
//
// Overrides are supplied through TF_XLA_FLAGS, e.g.:
//
//	TF_XLA_FLAGS="--tf_xla_auto_jit=2 --tf_xla_min_cluster_size=10"
//
// An unrecognized flag in TF_XLA_FLAGS terminates the process: a silently
// accepted typo in a JIT tuning variable is worse than a startup crash.
package jitflags
