// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds Canvas file references embedded in HTML bodies.
// Pages and assignment descriptions link attachments as
// /courses/<id>/files/<id>/download or /files/<id>; only the file id matters.
package extract

import (
	"regexp"
	"sort"
	"strconv"
)

// fileRefRe matches embedded file links, e.g. /files/123 or /FILES/123.
var fileRefRe = regexp.MustCompile(`(?i)/files/(\d+)`)

// FileIDs scans text for file references and returns the distinct ids in
// ascending numeric order, in canonical decimal form. Empty text yields
// nil. Matching is a plain pattern scan, so malformed HTML or binary data
// never causes a failure.
func FileIDs(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, m := range fileRefRe.FindAllStringSubmatch(text, -1) {
		id := canonical(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return lessNumeric(ids[i], ids[j])
	})
	return ids
}

// canonical strips leading zeros so "/files/007" and "/files/7" name the
// same file, matching the decimal form Canvas returns for file ids.
func canonical(id string) string {
	i := 0
	for i < len(id)-1 && id[i] == '0' {
		i++
	}
	return id[i:]
}

// lessNumeric orders digit strings by value. Ids too long for uint64 fall
// back to length-then-lexical order, which is the same ordering.
func lessNumeric(a, b string) bool {
	ai, aerr := strconv.ParseUint(a, 10, 64)
	bi, berr := strconv.ParseUint(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
