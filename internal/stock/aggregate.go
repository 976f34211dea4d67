package stock

import (
	"sort"
	"strings"

	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// Layout selects how the aggregated variant names are rendered.
type Layout string

const (
	// LayoutFlat joins deduplicated names with ", " in first-seen order.
	LayoutFlat Layout = "flat"
	// LayoutGroupedLines renders "Family - a, b" groups, one per line.
	LayoutGroupedLines Layout = "grouped_lines"
	// LayoutGroupedInline renders the same groups joined with ", ".
	LayoutGroupedInline Layout = "grouped_inline"
)

const groupSeparator = " - "

// Config names the stock table columns the aggregator reads. Earlier
// variants of this logic hard-coded the names in several places;
// keeping them here is the single source of truth.
type Config struct {
	ProductKeyColumn string
	VariantColumn    string
}

// DisplayText filters the stock table to rows whose normalized product
// key matches and whose flag cell is non-empty, then renders the
// deduplicated variant names under the given layout. An empty result
// at any stage is an empty string, never an error.
func DisplayText(t *dataset.Table, cfg Config, productKey, flagColumn string, layout Layout) string {
	names := Variants(t, cfg, productKey, flagColumn)
	if len(names) == 0 {
		return ""
	}
	switch layout {
	case LayoutGroupedLines:
		return joinGrouped(names, "\n")
	case LayoutGroupedInline:
		return joinGrouped(names, ", ")
	default:
		return strings.Join(names, ", ")
	}
}

// Variants returns the variant names for a product key under a flag
// column, deduplicated in first-seen order.
func Variants(t *dataset.Table, cfg Config, productKey, flagColumn string) []string {
	key := util.Normalize(productKey)
	if key == "" {
		return nil
	}

	seen := map[string]bool{}
	out := []string{}
	for _, row := range t.Rows {
		if util.Normalize(row.Get(cfg.ProductKeyColumn)) != key {
			continue
		}
		if strings.TrimSpace(row.Get(flagColumn)) == "" {
			continue
		}
		name := strings.TrimSpace(row.Get(cfg.VariantColumn))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// joinGrouped splits "Family - Finish" names into per-family suffix
// sets (suffixes dedupe and sort within a group, families keep
// first-seen order) and renders each group as "Family - a, b". Names
// without the separator stand alone as their own group.
func joinGrouped(names []string, groupJoin string) string {
	order := []string{}
	suffixes := map[string]map[string]bool{}

	for _, name := range names {
		prefix, suffix := name, ""
		if i := strings.Index(name, groupSeparator); i >= 0 {
			prefix = name[:i]
			suffix = name[i+len(groupSeparator):]
		}
		if _, ok := suffixes[prefix]; !ok {
			suffixes[prefix] = map[string]bool{}
			order = append(order, prefix)
		}
		if suffix != "" {
			suffixes[prefix][suffix] = true
		}
	}

	groups := make([]string, 0, len(order))
	for _, prefix := range order {
		set := suffixes[prefix]
		if len(set) == 0 {
			groups = append(groups, prefix)
			continue
		}
		list := make([]string, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		sort.Strings(list)
		groups = append(groups, prefix+groupSeparator+strings.Join(list, ", "))
	}
	return strings.Join(groups, groupJoin)
}
