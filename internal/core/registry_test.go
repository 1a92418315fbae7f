package core_test

import (
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impersonate/internal/core"
	"pgregory.net/rapid"
)

func TestMockRegistry_InsertAndLookup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewMockRegistry()
	repo := &fakeRepo{name: "a"}

	err := registry.Insert(repo, []reflect.Type{reflect.TypeFor[Repo](), reflect.TypeOf(repo)})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(registry.Len()).To(Equal(2))

	found, ok := registry.Lookup(reflect.TypeFor[Repo]())
	g.Expect(ok).To(BeTrue())
	g.Expect(found).To(BeIdenticalTo(repo))
}

func TestMockRegistry_LookupMissIsNotAnError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	found, ok := core.NewMockRegistry().Lookup(reflect.TypeFor[Clock]())

	g.Expect(ok).To(BeFalse())
	g.Expect(found).To(BeNil())
}

func TestMockRegistry_RejectsPrimitives(t *testing.T) {
	t.Parallel()

	var nilRepo *fakeRepo

	cases := map[string]any{
		"nil":         nil,
		"string":      "repo",
		"list":        []string{"repo"},
		"map":         map[string]Repo{},
		"int":         42,
		"nil pointer": nilRepo,
	}

	for name, mock := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			registry := core.NewMockRegistry()

			err := registry.Insert(mock, []reflect.Type{reflect.TypeFor[Repo]()})

			g.Expect(err).To(MatchError(core.ErrInvalidMock))
			g.Expect(registry.Len()).To(BeZero())
		})
	}
}

func TestMockRegistry_RejectsUnsatisfiedTypeWithoutWriting(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewMockRegistry()

	err := registry.Insert(&fakeRepo{}, []reflect.Type{reflect.TypeFor[Repo](), reflect.TypeFor[Clock]()})

	g.Expect(err).To(MatchError(core.ErrInvalidMock))
	g.Expect(err.Error()).To(ContainSubstring("does not satisfy"))
	g.Expect(registry.Len()).To(BeZero())
}

func TestMockRegistry_LastWriteWins_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		registry := core.NewMockRegistry()
		repoType := reflect.TypeFor[Repo]()

		var last *fakeRepo

		for i := range count {
			last = &fakeRepo{name: rapid.StringN(1, 8, -1).Draw(rt, "name")}

			err := registry.Insert(last, []reflect.Type{repoType})
			if err != nil {
				rt.Fatalf("insert %d: %v", i, err)
			}
		}

		found, ok := registry.Lookup(repoType)
		if !ok || found != last {
			rt.Fatalf("expected the last inserted mock, got %v", found)
		}

		if registry.Len() != 1 {
			rt.Fatalf("expected one indexed type, got %d", registry.Len())
		}
	})
}

func TestMockRegistry_TypesAreSortedByName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewMockRegistry()
	g.Expect(registry.Insert(&fakeRepo{}, []reflect.Type{reflect.TypeFor[Repo]()})).To(Succeed())
	g.Expect(registry.Insert(&fakeClock{}, []reflect.Type{reflect.TypeFor[Clock]()})).To(Succeed())

	g.Expect(registry.Types()).To(Equal([]reflect.Type{reflect.TypeFor[Clock](), reflect.TypeFor[Repo]()}))
}
