// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Params is a string key/value mapping persisted as a JSON object.
// It is used for route parameters and for the opaque extra parameters
// an item carries for custom rendering.
type Params map[string]string

// Pair is the key/value list element the edit form works with. The form
// submits parameters as an ordered pair list; storage uses the direct
// mapping representation.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParamsFromPairs converts a pair list to a mapping. For repeated keys
// the last pair wins, so the conversion is deterministic.
func ParamsFromPairs(pairs []Pair) Params {
	if len(pairs) == 0 {
		return nil
	}
	p := make(Params, len(pairs))
	for _, kv := range pairs {
		p[kv.Key] = kv.Value
	}
	return p
}

// Pairs converts the mapping back to a pair list ordered by key, so the
// form round-trip is deterministic. For unique keys the conversion is
// lossless in both directions.
func (p Params) Pairs() []Pair {
	if len(p) == 0 {
		return nil
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: p[k]})
	}
	return pairs
}

// MarshalText encodes the mapping as a JSON object for storage.
// An empty mapping encodes to the empty string so it stores as NULL.
func (p Params) MarshalText() (string, error) {
	if len(p) == 0 {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding params: %w", err)
	}
	return string(b), nil
}

// ParseParams decodes a stored JSON object into a Params mapping.
// Empty input yields a nil mapping.
func ParseParams(s string) (Params, error) {
	if s == "" {
		return nil, nil
	}
	var p Params
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return p, nil
}
