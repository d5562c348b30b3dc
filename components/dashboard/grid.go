package dashboard

import "sort"

// Grid geometry shared by every dashboard instance. Widgets are placed on a
// fixed column grid; rows map to a fixed pixel height at render time.
const (
	GridColumns   = 12
	GridRowHeight = 96

	defaultWidgetW = GridColumns
	defaultWidgetH = 4
)

func collides(a, b WidgetLayoutItem) bool {
	if a.I == b.I {
		return false
	}
	if a.X+a.W <= b.X || b.X+b.W <= a.X {
		return false
	}
	if a.Y+a.H <= b.Y || b.Y+b.H <= a.Y {
		return false
	}
	return true
}

func firstCollision(placed []WidgetLayoutItem, item WidgetLayoutItem) (WidgetLayoutItem, bool) {
	for _, other := range placed {
		if collides(other, item) {
			return other, true
		}
	}
	return WidgetLayoutItem{}, false
}

// sortedLayout returns a copy ordered top-to-bottom, left-to-right. Grid
// coordinates, not slice order, determine visual position; the sorted order
// only drives deterministic compaction.
func sortedLayout(items []WidgetLayoutItem) []WidgetLayoutItem {
	out := append([]WidgetLayoutItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].I < out[j].I
	})
	return out
}

// clampItem forces an item into the grid and its own min/max bounds.
func clampItem(item WidgetLayoutItem) WidgetLayoutItem {
	if item.W < 1 {
		item.W = defaultWidgetW
	}
	if item.H < 1 {
		item.H = defaultWidgetH
	}
	if item.MinW > 0 && item.W < item.MinW {
		item.W = item.MinW
	}
	if item.MaxW > 0 && item.W > item.MaxW {
		item.W = item.MaxW
	}
	if item.MinH > 0 && item.H < item.MinH {
		item.H = item.MinH
	}
	if item.MaxH > 0 && item.H > item.MaxH {
		item.H = item.MaxH
	}
	if item.W > GridColumns {
		item.W = GridColumns
	}
	if item.X < 0 {
		item.X = 0
	}
	if item.X+item.W > GridColumns {
		item.X = GridColumns - item.W
	}
	if item.Y < 0 {
		item.Y = 0
	}
	return item
}

// CompactLayout removes vertical gaps: every non-static item is moved as far
// up as it can go without overlapping another item. Static items never move.
// The input slice is not mutated; item order is preserved.
func CompactLayout(items []WidgetLayoutItem) []WidgetLayoutItem {
	return compactPinned(items, "")
}

// compactPinned compacts the layout while treating the item with the given id
// as a fixed obstacle placed before everything else. An empty id pins
// nothing.
func compactPinned(items []WidgetLayoutItem, pinnedID string) []WidgetLayoutItem {
	placed := make([]WidgetLayoutItem, 0, len(items))
	moved := make(map[string]WidgetLayoutItem, len(items))
	for _, item := range items {
		if item.Static || (pinnedID != "" && item.I == pinnedID) {
			placed = append(placed, item)
		}
	}
	for _, item := range sortedLayout(items) {
		if item.Static || (pinnedID != "" && item.I == pinnedID) {
			continue
		}
		for item.Y > 0 {
			candidate := item
			candidate.Y--
			if _, hit := firstCollision(placed, candidate); hit {
				break
			}
			item = candidate
		}
		for {
			if _, hit := firstCollision(placed, item); !hit {
				break
			}
			item.Y++
		}
		placed = append(placed, item)
		moved[item.I] = item
	}
	out := make([]WidgetLayoutItem, 0, len(items))
	for _, item := range items {
		if updated, ok := moved[item.I]; ok {
			out = append(out, updated)
			continue
		}
		out = append(out, item)
	}
	return out
}

// DefaultPlacement appends a new widget below the tallest existing item,
// spanning the full grid width.
func DefaultPlacement(items []WidgetLayoutItem, widgetID string) WidgetLayoutItem {
	bottom := 0
	for _, item := range items {
		if item.Y+item.H > bottom {
			bottom = item.Y + item.H
		}
	}
	return WidgetLayoutItem{
		I: widgetID,
		X: 0,
		Y: bottom,
		W: defaultWidgetW,
		H: defaultWidgetH,
	}
}

// NormalizeLayout reconciles a caller-supplied layout with the widget
// registry: entries for unknown widgets are dropped, duplicates collapse to
// their first occurrence, missing widgets receive a default placement, and
// the result is compacted. Malformed input never raises an error.
func NormalizeLayout(widgets map[string]WidgetConfig, items []WidgetLayoutItem) []WidgetLayoutItem {
	seen := make(map[string]bool, len(widgets))
	out := make([]WidgetLayoutItem, 0, len(widgets))
	for _, item := range items {
		if _, ok := widgets[item.I]; !ok {
			continue
		}
		if seen[item.I] {
			continue
		}
		seen[item.I] = true
		out = append(out, clampItem(item))
	}
	missing := make([]string, 0)
	for id := range widgets {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		out = append(out, DefaultPlacement(out, id))
	}
	return CompactLayout(out)
}

// MoveItem repositions a widget to the requested grid cell, pushing any
// overlapping non-static items out of the way, then compacts. Static or
// unknown ids yield an unchanged copy.
func MoveItem(items []WidgetLayoutItem, id string, x, y int) []WidgetLayoutItem {
	out := append([]WidgetLayoutItem(nil), items...)
	idx := layoutIndex(out, id)
	if idx < 0 || out[idx].Static {
		return out
	}
	item := out[idx]
	item.X = x
	item.Y = y
	item = clampItem(item)
	item = clearStatics(out, item)
	out[idx] = item
	return CompactLayout(compactPinned(out, id))
}

// ResizeItem changes a widget's span, bounded by its min/max constraints and
// the grid width, pushing overlapping items down before compacting.
func ResizeItem(items []WidgetLayoutItem, id string, w, h int) []WidgetLayoutItem {
	out := append([]WidgetLayoutItem(nil), items...)
	idx := layoutIndex(out, id)
	if idx < 0 || out[idx].Static {
		return out
	}
	item := out[idx]
	item.W = w
	item.H = h
	item = clampItem(item)
	item = clearStatics(out, item)
	out[idx] = item
	return CompactLayout(compactPinned(out, id))
}

func layoutIndex(items []WidgetLayoutItem, id string) int {
	for i, item := range items {
		if item.I == id {
			return i
		}
	}
	return -1
}

// clearStatics slides an item down until it no longer overlaps any static
// item. Statics are immovable obstacles, so the moved item yields.
func clearStatics(items []WidgetLayoutItem, item WidgetLayoutItem) WidgetLayoutItem {
	for {
		hit := false
		for _, other := range items {
			if other.Static && collides(other, item) {
				item.Y = other.Y + other.H
				hit = true
			}
		}
		if !hit {
			return item
		}
	}
}
