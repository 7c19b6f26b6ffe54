package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/explore/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	Name           string
	Tag            string
	Group          string
	Signature      ecs.Signature
	ComponentTypes []string
	Dying          bool
}

const (
	columnID = iota
	columnName
	columnTag
	columnGroup
	columnComponents
)

// EntityBrowser lists the registry's entities in a sortable, filterable
// table. The listing is rebuilt when the entity count changes or when
// Refresh is pressed.
type EntityBrowser struct {
	entities      []EntityInfo
	lastCount     int
	lastPending   int
	sortColumn    int
	sortAscending bool

	selected           ecs.Entity
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		sortColumn:         columnID,
		sortAscending:      true,
		lastCount:          -1,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// Selected returns the entity picked in the table, if any.
func (eb *EntityBrowser) Selected() (ecs.Entity, bool) {
	return eb.selected, eb.hasSelection
}

func (eb *EntityBrowser) Render(r *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildIfNeeded(r)

	imgui.InputTextWithHint("##search", "Search name, tag, group, component...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.Rebuild(r)
	}

	filtered := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Group")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.Filtered()
		}

		start := min(eb.currentPage*eb.maxEntitiesPerPage, len(filtered))
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", entity.ID)
			if entity.Dying {
				label += " (dying)"
			}
			isSelected := eb.hasSelection && eb.selected == entity.ID
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected, eb.hasSelection = entity.ID, true
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)
			imgui.TableNextColumn()
			imgui.Text(entity.Tag)
			imgui.TableNextColumn()
			imgui.Text(entity.Group)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowser) rebuildIfNeeded(r *ecs.Registry) {
	if eb.lastCount != r.EntityCount() || eb.lastPending != r.PendingCount() {
		eb.Rebuild(r)
	}
}

// Rebuild snapshots every allocated entity.
func (eb *EntityBrowser) Rebuild(r *ecs.Registry) {
	eb.entities = eb.entities[:0]
	r.Entities(func(e ecs.Entity) bool {
		sig := r.Signature(e)
		info := EntityInfo{
			ID:        e,
			Name:      r.EntityName(e),
			Signature: sig,
			Dying:     r.IsDying(e),
		}
		info.Tag, _ = r.TagOf(e)
		info.Group, _ = r.GroupOf(e)
		for _, id := range sig.IDs() {
			info.ComponentTypes = append(info.ComponentTypes, componentName(id))
		}
		eb.entities = append(eb.entities, info)
		return true
	})
	eb.lastCount = r.EntityCount()
	eb.lastPending = r.PendingCount()

	if eb.hasSelection && !eb.contains(eb.selected) {
		eb.hasSelection = false
	}
	eb.sortEntities()
}

func (eb *EntityBrowser) contains(e ecs.Entity) bool {
	for _, info := range eb.entities {
		if info.ID == e {
			return true
		}
	}
	return false
}

// SortBy orders the listing by one of the table's columns.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		if !eb.sortAscending {
			a, b = b, a
		}
		var less bool

		switch eb.sortColumn {
		case columnName:
			less = a.Name < b.Name
		case columnTag:
			less = a.Tag < b.Tag
		case columnGroup:
			less = a.Group < b.Group
		case columnComponents:
			less = a.Signature.Count() < b.Signature.Count()
		default:
			less = a.ID < b.ID
		}
		return less
	})
}

// Filtered returns the entities matching the search text. The text matches
// case-insensitively against the id, name, tag, group and component names.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		haystack := strings.ToLower(strings.Join([]string{
			fmt.Sprintf("%d", entity.ID),
			entity.Name,
			entity.Tag,
			entity.Group,
			strings.Join(entity.ComponentTypes, " "),
		}, " "))
		if strings.Contains(haystack, filterLower) {
			filtered = append(filtered, entity)
		}
	}

	return filtered
}

// SetFilter replaces the search text.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

func componentName(id ecs.ComponentID) string {
	if t := ecs.ComponentTypeOf(id); t != nil {
		return t.String()
	}
	return fmt.Sprintf("#%d", id)
}
