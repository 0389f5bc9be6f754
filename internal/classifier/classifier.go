// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package classifier derives the route, entity and method of each tape and
// groups tapes for schema and operation generation.
package classifier

import (
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/api2spec/tape2spec/internal/params"
	"github.com/api2spec/tape2spec/internal/tape"
	"github.com/api2spec/tape2spec/internal/util"
	"github.com/api2spec/tape2spec/pkg/types"
)

// RootRoute is the route of tapes stored at the corpus root.
const RootRoute = "/"

// Record is a tape with everything derived from its location.
type Record struct {
	// Tape is the decoded exchange
	Tape *types.Tape

	// Source is the corpus-relative tape path
	Source string

	// Route is the route template used as the paths key, always starting with "/"
	Route string

	// Entity is the singular, capitalized resource name; empty for anonymous routes
	Entity string

	// Method is the lowercase HTTP method
	Method string

	// Params are the path parameter names of Route, without braces
	Params []string

	// Matches are the raw param matches of the route
	Matches []params.Match
}

var knownMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Classify derives the record of one tape. When the tape has no source
// path, the recorder's location for it is used.
func Classify(t *types.Tape, patterns params.PatternSet) Record {
	source := t.Source
	if source == "" {
		source = tape.Location(t)
	}

	rec := Record{
		Tape:   t,
		Source: source,
		Route:  RootRoute,
		Method: MethodFromFilename(path.Base(source), t.Request.Method),
	}

	dir := path.Dir(source)
	if dir == "." || dir == "/" {
		return rec
	}

	template, matches := params.Template(strings.TrimPrefix(dir, "/"), patterns)
	rec.Route = "/" + template
	rec.Matches = matches
	rec.Params = params.Tokens(template)
	rec.Entity = EntityFromTemplate(template)

	return rec
}

// ClassifyAll classifies tapes and returns the records sorted by source.
// Every fold over the records depends on this order.
func ClassifyAll(tapes []*types.Tape, patterns params.PatternSet) []Record {
	records := make([]Record, 0, len(tapes))
	for _, t := range tapes {
		records = append(records, Classify(t, patterns))
	}
	SortRecords(records)
	return records
}

// SortRecords sorts records by source path.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Source < records[j].Source
	})
}

// EntityFromTemplate returns the classified, singular form of the last
// segment of a template that is not a parameter token.
// "users/{userId}/ice-creams" becomes "IceCream".
func EntityFromTemplate(template string) string {
	segments := params.Split(template)
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || params.IsToken(seg) {
			continue
		}
		return util.Classify(util.Singularize(seg))
	}
	return ""
}

// MethodFromFilename reads the method from a tape file name such as
// "GET_page=2_200.json". When the leading token is not an HTTP method the
// recorded method is used, and "get" when that is empty too.
func MethodFromFilename(filename, recorded string) string {
	token := strings.SplitN(filename, ".", 2)[0]
	token = strings.SplitN(token, "_", 2)[0]

	method := strings.ToLower(token)
	if knownMethods[method] {
		return method
	}

	if recorded != "" {
		return strings.ToLower(recorded)
	}
	return strings.ToLower(http.MethodGet)
}

// Group is a set of records sharing a key, in source order.
type Group struct {
	Key     string
	Records []Record
}

// GroupByEntity groups records by entity, skipping anonymous routes.
// Groups are sorted by entity name.
func GroupByEntity(records []Record) []Group {
	return groupBy(records, func(r Record) (string, bool) {
		return r.Entity, r.Entity != ""
	})
}

// GroupByRoute groups records by route template, root route included.
// Groups are sorted by route.
func GroupByRoute(records []Record) []Group {
	return groupBy(records, func(r Record) (string, bool) {
		return r.Route, true
	})
}

func groupBy(records []Record, key func(Record) (string, bool)) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		i, exists := index[k]
		if !exists {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}
