// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/biostate/menu-builder-go/internal/model"
)

// RouteExpander expands a named route with parameters into a path.
type RouteExpander interface {
	Expand(name string, params model.Params) (string, error)
}

// RouteNotFoundError reports expansion of an undefined route name.
type RouteNotFoundError struct {
	Route string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %q is not defined", e.Route)
}

// MissingRouteParamsError reports route parameters required by the route
// definition but absent from the supplied mapping.
type MissingRouteParamsError struct {
	Route  string
	Params []string
}

func (e *MissingRouteParamsError) Error() string {
	return fmt.Sprintf("Missing route parameters: %s", strings.Join(e.Params, ", "))
}

var routePlaceholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RouteMap is a static named-route table: route name to path pattern
// with {param} placeholders. It is the host application's route
// inventory handed to the resolver.
type RouteMap map[string]string

// Expand substitutes placeholders with the supplied parameters.
// Parameters without a matching placeholder become query parameters, in
// key order. Missing placeholders fail with MissingRouteParamsError.
func (m RouteMap) Expand(name string, params model.Params) (string, error) {
	pattern, ok := m[name]
	if !ok {
		return "", &RouteNotFoundError{Route: name}
	}

	var missing []string
	used := make(map[string]bool)
	path := routePlaceholder.ReplaceAllStringFunc(pattern, func(ph string) string {
		key := ph[1 : len(ph)-1]
		val, ok := params[key]
		if !ok {
			missing = append(missing, key)
			return ph
		}
		used[key] = true
		return url.PathEscape(val)
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &MissingRouteParamsError{Route: name, Params: missing}
	}

	// Leftover parameters travel as a query string.
	var extras []string
	for k := range params {
		if !used[k] {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		q := url.Values{}
		for _, k := range extras {
			q.Set(k, params[k])
		}
		path += "?" + q.Encode()
	}

	return path, nil
}
