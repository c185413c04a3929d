// File: jitflags/flags_test.go
package jitflags

import (
	"math"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// The registry initializes once per process. Keep the override variable
	// out of the test environment so the built-in defaults are observable;
	// override behavior is tested against fresh registries with a
	// test-scoped variable name.
	os.Unsetenv(EnvVar)
	os.Exit(m.Run())
}

func TestDefaults(t *testing.T) {
	t.Run("Build", func(t *testing.T) {
		f := Build()
		assert.True(t, f.EnableLazyCompilation)
		assert.False(t, f.PrintClusterOutputs)
	})

	t.Run("Clustering", func(t *testing.T) {
		f := Clustering()
		assert.EqualValues(t, 0, f.AutoJit)
		assert.EqualValues(t, 4, f.MinClusterSize)
		assert.EqualValues(t, math.MaxInt32, f.MaxClusterSize)
		assert.False(t, f.ClusteringDebug)
		assert.False(t, f.CPUGlobalJit)
		assert.EqualValues(t, int64(math.MaxInt64), f.ClusteringFuel)
		assert.False(t, f.DisableDeadnessSafetyChecks)
	})

	t.Run("Device", func(t *testing.T) {
		assert.False(t, Device().CompileOnDemand)
	})

	t.Run("Ops", func(t *testing.T) {
		assert.False(t, Ops().AlwaysDeferCompilation)
	})

	t.Run("Jitter", func(t *testing.T) {
		f := Jitter()
		assert.Equal(t, 1e-5, f.Amount)
		assert.Empty(t, f.TensorNames)
	})
}

// TestAccessorIdentity verifies accessors return the same pointer every call,
// with no re-allocation after initialization.
func TestAccessorIdentity(t *testing.T) {
	assert.Same(t, Build(), Build())
	assert.Same(t, Clustering(), Clustering())
	assert.Same(t, Device(), Device())
	assert.Same(t, Ops(), Ops())
	assert.Same(t, Jitter(), Jitter())
}

// TestConcurrentFirstUse hammers the accessors and the append hook from many
// goroutines at once. Every caller must observe the same fully-initialized
// registry.
func TestConcurrentFirstUse(t *testing.T) {
	const goroutines = 32

	var wg sync.WaitGroup
	start := make(chan struct{})

	builds := make([]*BuildFlags, goroutines)
	clusterings := make([]*ClusteringFlags, goroutines)
	appended := make([][]Flag, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			builds[i] = Build()
			clusterings[i] = Clustering()
			var list []Flag
			AppendClusteringFlags(&list)
			appended[i] = list
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		assert.Same(t, Build(), builds[i])
		assert.Same(t, Clustering(), clusterings[i])
		require.Len(t, appended[i], 7)

		// No torn reads: every view is fully default-initialized.
		assert.True(t, builds[i].EnableLazyCompilation)
		assert.EqualValues(t, 4, clusterings[i].MinClusterSize)
		assert.EqualValues(t, math.MaxInt32, clusterings[i].MaxClusterSize)
	}
}

func TestAppendClusteringFlags(t *testing.T) {
	var extraOne, extraTwo bool
	listOne := []Flag{BoolFlag("surface_one_flag", &extraOne, "")}
	listTwo := []Flag{BoolFlag("surface_two_flag", &extraTwo, "")}

	AppendClusteringFlags(&listOne)
	AppendClusteringFlags(&listTwo)

	require.Len(t, listOne, 8)
	require.Len(t, listTwo, 8)

	// Prior contents survive the append.
	assert.Equal(t, "surface_one_flag", listOne[0].Name)
	assert.Equal(t, "surface_two_flag", listTwo[0].Name)

	wantNames := []string{
		"tf_xla_auto_jit",
		"tf_xla_min_cluster_size",
		"tf_xla_max_cluster_size",
		"tf_xla_clustering_debug",
		"tf_xla_cpu_global_jit",
		"tf_xla_clustering_fuel",
		"tf_xla_disable_deadness_safety_checks_for_debugging",
	}
	for i, name := range wantNames {
		assert.Equal(t, name, listOne[i+1].Name)
		assert.Equal(t, name, listTwo[i+1].Name)
	}

	// Both lists bind the single shared clustering group.
	t.Cleanup(func() { Clustering().AutoJit = 0 })

	require.NoError(t, Parse([]string{"--tf_xla_auto_jit=2"}, listOne))
	assert.EqualValues(t, 2, Clustering().AutoJit)

	require.NoError(t, Parse([]string{"--tf_xla_auto_jit=1"}, listTwo))
	assert.EqualValues(t, 1, Clustering().AutoJit)
}

// TestClusteringMutable checks the advanced-tuning path: writes through the
// Clustering pointer are visible to later readers.
func TestClusteringMutable(t *testing.T) {
	t.Cleanup(func() { Clustering().MinClusterSize = 4 })

	Clustering().MinClusterSize = 7
	assert.EqualValues(t, 7, Clustering().MinClusterSize)
}

func TestDescriptorListOrder(t *testing.T) {
	r := newRegistry()

	wantNames := []string{
		"tf_xla_enable_lazy_compilation",
		"tf_xla_print_cluster_outputs",
		"tf_xla_compile_on_demand",
		"tf_xla_always_defer_compilation",
		"tf_introduce_floating_point_jitter_to_tensors",
		"tf_introduce_floating_point_jitter_amount",
		"tf_xla_auto_jit",
		"tf_xla_min_cluster_size",
		"tf_xla_max_cluster_size",
		"tf_xla_clustering_debug",
		"tf_xla_cpu_global_jit",
		"tf_xla_clustering_fuel",
		"tf_xla_disable_deadness_safety_checks_for_debugging",
	}

	require.Len(t, r.flags, len(wantNames))
	for i, f := range r.flags {
		assert.Equal(t, wantNames[i], f.Name)
	}
}
