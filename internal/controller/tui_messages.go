package controller

import (
	"time"

	m "github.com/mouse-blink/undefender/internal/model"
)

// Message types.
type tickMsg time.Time

type concurrencyMsg struct {
	workers int
	chunks  int
	cores   int
}

type chunkStartedMsg struct {
	index int
	size  int
}

type chunkCompletedMsg struct {
	index    int
	resolved int
	failed   int
}

type signatureMsg struct {
	sig     m.Signature
	catalog m.Catalog
	err     error
}

type resolutionsMsg struct {
	items []resolutionItem
}

type summaryMsg struct {
	resolved int
	elapsed  time.Duration
	err      error
}

type finishedMsg struct{}

// List item types.
type resolutionItem struct {
	kind        m.FragmentKind
	fragment    string
	replacement string
}

func (r resolutionItem) FilterValue() string {
	return r.fragment + " " + r.replacement
}
