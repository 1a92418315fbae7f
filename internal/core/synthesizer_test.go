package core_test

import (
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impersonate/internal/core"
)

func TestFactories_ConfigureRunsOnBuiltMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)

	mock, err := factories.Build(reflect.TypeFor[*Config](), func(m any) {
		m.(*Config).Name = "configured"
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mock).To(Equal(&Config{Name: "configured"}))
}

func TestFactories_DefaultsForObjectKinds(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)

	ptr, err := factories.Build(reflect.TypeFor[*Config](), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ptr).To(Equal(&Config{}))

	value, err := factories.Build(reflect.TypeFor[Config](), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(Config{}))

	fn, err := factories.Build(reflect.TypeFor[Hook](), nil)
	g.Expect(err).NotTo(HaveOccurred())

	hook, ok := fn.(Hook)
	g.Expect(ok).To(BeTrue())
	g.Expect(hook("started")).To(Succeed())
}

func TestFactories_EachBuildIsFresh(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)

	first, _ := factories.Build(reflect.TypeFor[*Config](), nil)
	second, _ := factories.Build(reflect.TypeFor[*Config](), nil)

	g.Expect(first).NotTo(BeIdenticalTo(second))
}

func TestFactories_InterfaceNeedsFactory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)

	_, err := factories.Build(reflect.TypeFor[Repo](), nil)

	g.Expect(err).To(MatchError(core.ErrUnsynthesizable))
	g.Expect(err.Error()).To(ContainSubstring("core_test.Repo"))
}

func TestFactories_RegisteredFactoryWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)
	core.RegisterFactory(factories, func() Repo { return &fakeRepo{name: "factory"} })

	mock, err := factories.Build(reflect.TypeFor[Repo](), nil)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mock).To(Equal(&fakeRepo{name: "factory"}))
	g.Expect(factories.Types()).To(ConsistOf(reflect.TypeFor[Repo]()))
}

func TestFactories_RejectsPrimitives(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	factories := core.NewFactories(nil)

	for _, typ := range []reflect.Type{reflect.TypeFor[int](), reflect.TypeFor[*int](), nil} {
		_, err := factories.Build(typ, nil)
		g.Expect(err).To(MatchError(core.ErrUnsynthesizable))
	}
}
