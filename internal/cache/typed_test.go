// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTypedRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer func() { _ = c.Close() }()
	typed := NewTyped[payload](c, "test:")
	ctx := context.Background()

	if err := typed.Set(ctx, "k", payload{Name: "menu", Count: 3}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := typed.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("Get found = false, want true")
	}
	if got.Name != "menu" || got.Count != 3 {
		t.Errorf("Get = %+v, want {menu 3}", got)
	}
}

func TestTypedMissIsNotError(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer func() { _ = c.Close() }()
	typed := NewTyped[payload](c, "test:")

	_, found, err := typed.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("Get found = true, want false")
	}
}

func TestTypedDelete(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer func() { _ = c.Close() }()
	typed := NewTyped[payload](c, "test:")
	ctx := context.Background()

	_ = typed.Set(ctx, "k", payload{Name: "x"}, 0)
	if err := typed.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, found, err := typed.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("value survived Delete")
	}
}

func TestTypedKeysAreNamespaced(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	a := NewTyped[payload](c, "a:")
	b := NewTyped[payload](c, "b:")

	_ = a.Set(ctx, "k", payload{Name: "from-a"}, 0)
	_, found, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("prefixes leaked across typed views")
	}
}
