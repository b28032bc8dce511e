// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package menuable

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubProvider struct {
	entities map[int64]any
	options  []Option
	gotLimit int
}

func (p *stubProvider) Find(_ context.Context, id int64) (any, bool, error) {
	e, ok := p.entities[id]
	return e, ok, nil
}

func (p *stubProvider) Search(_ context.Context, _ string, limit int) ([]Option, error) {
	p.gotLimit = limit
	return p.options, nil
}

func TestRegistryTypesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("post", &stubProvider{})
	r.Register("category", &stubProvider{})
	r.Register("page", &stubProvider{})

	got := r.Types()
	want := []string{"category", "page", "post"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types = %v, want %v", got, want)
	}
}

func TestRegistryFind(t *testing.T) {
	r := NewRegistry()
	r.Register("page", &stubProvider{entities: map[int64]any{7: "entity"}})
	ctx := context.Background()

	entity, found, err := r.Find(ctx, "page", 7)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found || entity != "entity" {
		t.Errorf("Find = (%v, %v), want (entity, true)", entity, found)
	}

	_, found, err = r.Find(ctx, "page", 8)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found {
		t.Error("Find reported a missing entity as found")
	}
}

func TestRegistryFindUnknownType(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Find(context.Background(), "widget", 1)
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Find error = %v, want ErrUnknownType", err)
	}
}

func TestRegistrySearchCapsLimit(t *testing.T) {
	p := &stubProvider{options: []Option{{ID: 1, Label: "About"}}}
	r := NewRegistry()
	r.Register("page", p)

	got, err := r.Search(context.Background(), "page", "ab")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if p.gotLimit != SearchLimit {
		t.Errorf("limit = %d, want %d", p.gotLimit, SearchLimit)
	}
	if len(got) != 1 || got[0].Label != "About" {
		t.Errorf("Search = %v, want the provider's options", got)
	}
}

func TestRegistrySearchUnknownType(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Search(context.Background(), "widget", "x"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Search error = %v, want ErrUnknownType", err)
	}
}
