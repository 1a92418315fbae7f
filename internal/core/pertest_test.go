package core_test

import (
	"reflect"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impersonate/internal/core"
	"pgregory.net/rapid"
)

// TestFor_ConcurrentAccess_Rapid uses property-based testing to verify the per-test
// lookup is safe for concurrent access with randomized access patterns.
func TestFor_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		results := make([]*core.Impersonator, numGoroutines)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()
				results[idx] = core.For(t)
			}(i)
		}

		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			if results[i] != results[0] {
				rt.Fatalf("goroutine %d got different Impersonator", i)
			}
		}
	})
}

// TestFor_DifferentT_ReturnsDifferentImpersonator verifies that different
// *testing.T values get different instances, each with its own registry.
func TestFor_DifferentT_ReturnsDifferentImpersonator(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var imp1, imp2 *core.Impersonator

	t.Run("subtest1", func(t *testing.T) {
		imp1 = core.For(t)
		g.Expect(imp1.Provide(&fakeRepo{}, reflect.TypeFor[Repo]())).To(Succeed())
	})

	t.Run("subtest2", func(t *testing.T) {
		imp2 = core.For(t)
	})

	g.Expect(imp1).NotTo(BeIdenticalTo(imp2), "different t should return different Impersonator")
	g.Expect(imp2.Registry().Len()).To(BeZero())
}

// TestFor_SameT_ReturnsSameImpersonator verifies that calling For with the same
// *testing.T returns the same instance, and options only apply on creation.
func TestFor_SameT_ReturnsSameImpersonator(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := repoFactories()
	imp1 := core.For(t, core.WithSynthesizer(factories))
	imp2 := core.For(t, core.WithSynthesizer(core.NewFactories(nil)))

	g.Expect(imp1).To(BeIdenticalTo(imp2), "same t should return same Impersonator")
	g.Expect(imp2.Synthesizer()).To(BeIdenticalTo(factories))
}

func TestMakeAs_WrongResultType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := core.MakeAs[*Service](newImpersonator(t), NewReader)

	g.Expect(err).To(MatchError(core.ErrNotConstructible))
	g.Expect(err.Error()).To(ContainSubstring("*core_test.Reader"))
}

func TestMustMake_FailsTestOnError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &testCase{}

	svc := core.MustMake[*Service](reporter, newImpersonator(t), NewServiceWithRetries)

	g.Expect(svc).To(BeNil())
	g.Expect(reporter.failed).To(BeTrue())
	g.Expect(reporter.msg).To(ContainSubstring("unresolvable constructor parameter"))
}

func TestMustMake_ReturnsTypedInstance(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &testCase{}
	imp := newImpersonator(t)
	repo := &fakeRepo{name: "typed"}
	g.Expect(core.ProvideAs[Repo](imp, repo)).To(Succeed())

	reader := core.MustMake[*Reader](reporter, imp, NewReader)

	g.Expect(reporter.failed).To(BeFalse())
	g.Expect(reader.Repo).To(BeIdenticalTo(repo))
}
