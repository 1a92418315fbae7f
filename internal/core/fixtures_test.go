package core_test

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Clock is a dependency interface.
type Clock interface {
	Now() time.Time
}

// Config is a struct dependency, passed by pointer.
type Config struct {
	Name string
}

// Hook is a func-typed dependency.
type Hook func(event string) error

// Option is a functional option, used to check variadic tails.
type Option func(*Service)

// Reader depends on a single Repo.
type Reader struct {
	Repo Repo
}

// Repo is a dependency interface.
type Repo interface {
	Get(id string) (string, error)
}

// Service has one dependency of every object-like kind.
type Service struct {
	Clock  Clock
	Repo   Repo
	Config *Config
	Hook   Hook
	Opts   int
}

// TwoRepos takes the same interface twice.
type TwoRepos struct {
	First  Repo
	Second Repo
}

// unexported variables.
var (
	errBoom = errors.New("boom")
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeRepo struct {
	name string
}

func (r *fakeRepo) Get(id string) (string, error) {
	return fmt.Sprintf("%s:%s", r.name, id), nil
}

// memoryRepo is a second Repo implementation, distinct from fakeRepo.
type memoryRepo struct {
	items map[string]string
}

func (r *memoryRepo) Get(id string) (string, error) {
	return r.items[id], nil
}

// selfDeclaringRepo reports the interface it impersonates.
type selfDeclaringRepo struct {
	fakeRepo
}

func (*selfDeclaringRepo) Impersonates() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[Repo]()}
}

type testCase struct {
	msg    string
	failed bool
}

func (c *testCase) Fatalf(format string, args ...any) {
	c.failed = true
	c.msg = fmt.Sprintf(format, args...)
}

func (c *testCase) Helper() {}

// Functions - Constructors

func NewFailing(Repo) (*Reader, error) {
	return nil, errBoom
}

func NewReader(repo Repo) *Reader {
	return &Reader{Repo: repo}
}

func NewService(clock Clock, repo Repo, cfg *Config, hook Hook) *Service {
	return &Service{Clock: clock, Repo: repo, Config: cfg, Hook: hook}
}

func NewServiceChecked(clock Clock, repo Repo) (*Service, error) {
	return &Service{Clock: clock, Repo: repo}, nil
}

func NewServiceWithOptions(repo Repo, opts ...Option) *Service {
	svc := &Service{Repo: repo, Opts: len(opts)}
	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

func NewServiceWithRetries(repo Repo, retries int) *Service {
	return &Service{Repo: repo, Opts: retries}
}

func NewTimedRetries(clock Clock, retries int) *Service {
	return &Service{Clock: clock, Opts: retries}
}

func NewTwoRepos(first, second Repo) *TwoRepos {
	return &TwoRepos{First: first, Second: second}
}
