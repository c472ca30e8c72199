package handlers

import (
	"finitefield.org/catalog-web/internal/carousel"
)

// RailView is the horizontally scrolling "Recommended for You" rail.
type RailView struct {
	Cards    []ProductCard
	Fallback bool
	// Retry is offered when the built-in catalog stands in for the API.
	Retry    bool
	Controls RailControls
}

// RailControls is the prev/next button state of a rail.
type RailControls struct {
	Offset     int
	PrevOffset int
	NextOffset int
	Content    int
	Viewport   int
	Step       int
	CanPrev    bool
	CanNext    bool
}

// NewRailControls derives button state from reported scroll geometry. With
// no measurement yet (content 0) prev is disabled and next is enabled when
// there is anything to scroll to.
func NewRailControls(offset, content, viewport, step, items int) RailControls {
	if step <= 0 {
		step = carousel.DefaultScrollStep
	}
	if content <= 0 {
		return RailControls{Step: step, NextOffset: step, CanNext: items > 1}
	}
	nav := carousel.NewOffset(content, viewport, step)
	nav.ScrollTo(offset)
	return railControlsFrom(nav, content, viewport, step)
}

// StepRail applies one button press to the reported geometry.
func StepRail(offset, content, viewport, step, items int, dir carousel.Direction) RailControls {
	if content <= 0 {
		return NewRailControls(offset, content, viewport, step, items)
	}
	if step <= 0 {
		step = carousel.DefaultScrollStep
	}
	nav := carousel.NewOffset(content, viewport, step)
	nav.ScrollTo(offset)
	nav.Step(dir)
	return railControlsFrom(nav, content, viewport, step)
}

func railControlsFrom(nav *carousel.OffsetNavigator, content, viewport, step int) RailControls {
	prev, next := *nav, *nav
	prev.StepPrev()
	next.StepNext()
	return RailControls{
		Offset:     nav.Offset(),
		PrevOffset: prev.Offset(),
		NextOffset: next.Offset(),
		Content:    content,
		Viewport:   viewport,
		Step:       step,
		CanPrev:    nav.CanStepPrev(),
		CanNext:    nav.CanStepNext(),
	}
}
