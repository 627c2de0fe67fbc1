package ghclient

import "strings"

// parseLinkHeader extracts the relation-tagged URLs from a Link header value,
// e.g. `<https://api.github.com/...?page=2>; rel="next", <...>; rel="last"`.
// It returns a rel -> URL mapping. Malformed segments are skipped.
func parseLinkHeader(header string) map[string]string {
	rels := make(map[string]string)
	if header == "" {
		return rels
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(strings.TrimSpace(part), ";")
		if len(segments) < 2 {
			continue
		}

		urlPart := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(urlPart, "<") || !strings.HasSuffix(urlPart, ">") {
			continue
		}
		url := strings.Trim(urlPart, "<>")

		for _, seg := range segments[1:] {
			seg = strings.TrimSpace(seg)
			if !strings.HasPrefix(seg, "rel=") {
				continue
			}
			rel := strings.Trim(strings.TrimPrefix(seg, "rel="), `"`)
			if rel != "" {
				rels[rel] = url
			}
		}
	}
	return rels
}

// hasNextPage reports whether a Link header advertises a "next" relation.
func hasNextPage(header string) bool {
	_, ok := parseLinkHeader(header)["next"]
	return ok
}
