// File: jitflags/flags.go
package jitflags

import (
	"math"
	"sync"
)

// EnvVar is the environment variable consulted for overrides on first use.
const EnvVar = "TF_XLA_FLAGS"

// BuildFlags controls lazy compilation and cluster-output debugging in the
// graph build pass. Read-only after initialization.
type BuildFlags struct {
	EnableLazyCompilation bool
	PrintClusterOutputs   bool
}

// ClusteringFlags controls which ops are grouped into compilable clusters.
// Clustering() exposes this group as a mutable pointer for in-process tuning;
// every other group is treated as immutable after initialization. Cross-field
// consistency (e.g. MinClusterSize <= MaxClusterSize) is not checked here.
type ClusteringFlags struct {
	AutoJit                     int32
	MinClusterSize              int32
	MaxClusterSize              int32
	ClusteringDebug             bool
	CPUGlobalJit                bool
	ClusteringFuel              int64
	DisableDeadnessSafetyChecks bool
}

// DeviceFlags controls per-device compilation mode.
type DeviceFlags struct {
	CompileOnDemand bool
}

// OpsFlags controls op-level dispatch. Read-only after initialization.
type OpsFlags struct {
	AlwaysDeferCompilation bool
}

// JitterFlags controls floating-point jitter injection for
// numerical-sensitivity testing. Read-only after initialization.
type JitterFlags struct {
	Amount      float64
	TensorNames []string
}

// registry bundles the five flag groups with the combined descriptor list
// bound to them.
type registry struct {
	build      BuildFlags
	clustering ClusteringFlags
	device     DeviceFlags
	ops        OpsFlags
	jitter     JitterFlags
	flags      []Flag
}

// newRegistry allocates the groups with their built-in defaults and builds
// the combined descriptor list. Defaults are assigned before any parsing so
// overrides always win over defaults.
func newRegistry() *registry {
	r := &registry{
		build: BuildFlags{
			EnableLazyCompilation: true,
		},
		clustering: ClusteringFlags{
			MinClusterSize: 4,
			MaxClusterSize: math.MaxInt32,
			ClusteringFuel: math.MaxInt64,
		},
		jitter: JitterFlags{
			Amount: 1e-5,
		},
	}
	r.flags = appendClusteringFlags(r.baseFlags(), &r.clustering)
	return r
}

// baseFlags builds the descriptors for the build, device, ops, and jitter
// groups, each bound directly to its field except the jitter tensor list,
// which goes through the comma-splitting setter.
func (r *registry) baseFlags() []Flag {
	return []Flag{
		BoolFlag("tf_xla_enable_lazy_compilation",
			&r.build.EnableLazyCompilation, ""),
		BoolFlag("tf_xla_print_cluster_outputs",
			&r.build.PrintClusterOutputs,
			"If true then insert print ops for the values produced by "+
				"JIT clusters."),

		BoolFlag("tf_xla_compile_on_demand",
			&r.device.CompileOnDemand,
			"Switch a device into 'on-demand' mode, where instead of "+
				"autoclustering ops are compiled one by one just-in-time."),

		BoolFlag("tf_xla_always_defer_compilation",
			&r.ops.AlwaysDeferCompilation, ""),

		StringListFlag("tf_introduce_floating_point_jitter_to_tensors",
			&r.jitter.TensorNames,
			"The tensors to add the jitter to. The tensors are named in "+
				"the TensorId format of <node name>:<output idx>."),
		Float64Flag("tf_introduce_floating_point_jitter_amount",
			&r.jitter.Amount,
			"The amount of jitter to introduce. This amount is added to "+
				"each element in the named tensors."),
	}
}

// appendClusteringFlags appends the seven clustering-policy descriptors bound
// to the given group. It is shared between initial descriptor-list assembly
// and the public AppendClusteringFlags hook.
func appendClusteringFlags(list []Flag, c *ClusteringFlags) []Flag {
	return append(list,
		Int32Flag("tf_xla_auto_jit", &c.AutoJit,
			"Control compilation of operators into JIT clusters on CPU and "+
				"GPU devices. 0 = use session setting; -1 = off; 1 = on for "+
				"things very likely to be improved; 2 = on for everything. "+
				"Experimental."),
		Int32Flag("tf_xla_min_cluster_size", &c.MinClusterSize,
			"Minimum number of operators in a compiled cluster. Ignored for "+
				"operators placed on a JIT device or operators explicitly "+
				"marked for compilation."),
		Int32Flag("tf_xla_max_cluster_size", &c.MaxClusterSize,
			"Maximum number of operators in a compiled cluster."),
		BoolFlag("tf_xla_clustering_debug", &c.ClusteringDebug,
			"Dump graphs during clustering."),
		BoolFlag("tf_xla_cpu_global_jit", &c.CPUGlobalJit,
			"Enables global JIT compilation for CPU via session options."),
		Int64Flag("tf_xla_clustering_fuel", &c.ClusteringFuel,
			"Places an artificial limit on the number of ops marked as "+
				"eligible for clustering."),
		BoolFlag("tf_xla_disable_deadness_safety_checks_for_debugging",
			&c.DisableDeadnessSafetyChecks,
			"Disable deadness related safety checks when clustering (this "+
				"is unsound)."),
	)
}

var (
	global   *registry
	initOnce sync.Once
)

// initialize runs exactly once, under initOnce: allocate default-valued
// groups, build the descriptor list, then apply environment overrides.
// Unknown flags in the environment variable terminate the process.
func initialize() {
	global = newRegistry()
	ParseFlagsFromEnv(EnvVar, global.flags)
}

// Build returns the build/lazy-compile flag group.
func Build() *BuildFlags {
	initOnce.Do(initialize)
	return &global.build
}

// Clustering returns the clustering-policy flag group. The pointer is
// mutable for advanced in-process tuning.
func Clustering() *ClusteringFlags {
	initOnce.Do(initialize)
	return &global.clustering
}

// Device returns the device compilation-mode flag group.
func Device() *DeviceFlags {
	initOnce.Do(initialize)
	return &global.device
}

// Ops returns the op-dispatch flag group.
func Ops() *OpsFlags {
	initOnce.Do(initialize)
	return &global.ops
}

// Jitter returns the floating-point jitter flag group.
func Jitter() *JitterFlags {
	initOnce.Do(initialize)
	return &global.jitter
}

// AppendClusteringFlags appends the seven clustering-policy descriptors,
// bound to the shared clustering group, to a caller-owned descriptor list.
// This lets a second, independent flag-parsing surface incorporate the same
// clustering flags without duplicating their defaults or target storage. The
// caller's existing list contents are preserved.
func AppendClusteringFlags(list *[]Flag) {
	initOnce.Do(initialize)
	*list = appendClusteringFlags(*list, &global.clustering)
}
