package store

import (
	"context"
	jsonv "encoding/json"
	"io"
	"time"
)

// Item is stored by Store.
type Item struct {
	ID string
}

// Getter reads items.
type Getter interface {
	Get(ctx context.Context, id string) (Item, error)
}

// Store is the full store API.
type Store interface {
	Getter
	Put(ctx context.Context, items ...Item) error
	Watch(ctx context.Context) <-chan Item
	Encode(v any) (jsonv.RawMessage, error)
	Touch(at time.Time)
	Len() int
}

// Closer embeds an interface from another package.
type Closer interface {
	io.Closer
}

// Failer embeds the builtin error.
type Failer interface {
	error
	Code() int
}

// Set is generic.
type Set[T any] interface {
	Add(item T)
}

// Clashing already declares Impersonates.
type Clashing interface {
	Impersonates()
}

// NotAnInterface is a struct.
type NotAnInterface struct{}
