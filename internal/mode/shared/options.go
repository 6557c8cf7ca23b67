// Package shared holds option lists used by more than one page or command.
package shared

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/ui/shared/formmodal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
)

// PageSizeOptions returns picker options for the history page sizes and the
// index of current, 0 when current is not one of them.
func PageSizeOptions(current int) ([]picker.Option, int) {
	options := make([]picker.Option, len(history.PageSizes))
	selected := 0
	for i, size := range history.PageSizes {
		options[i] = picker.Option{Label: fmt.Sprintf("%d / page", size), Value: strconv.Itoa(size)}
		if size == current {
			options[i].Hint = "current"
			selected = i
		}
	}
	return options, selected
}

// SamplingOptions returns checkbox options for every sampling point, checked
// when listed in selected.
func SamplingOptions(selected []inspection.SamplingPoint) []formmodal.ListOption {
	points := inspection.SamplingPoints()
	options := make([]formmodal.ListOption, len(points))
	for i, p := range points {
		options[i] = formmodal.ListOption{
			Label:    string(p),
			Value:    string(p),
			Selected: slices.Contains(selected, p),
		}
	}
	return options
}

// StandardOptions returns select options for standards, labelled by name.
func StandardOptions(standards []inspection.Standard) []formmodal.ListOption {
	options := make([]formmodal.ListOption, len(standards))
	for i, s := range standards {
		options[i] = formmodal.ListOption{Label: s.Name, Value: s.ID}
	}
	return options
}
