// Package quiz orchestrates a question-set run: selecting source locations
// from the active groups, shuffling the candidate list, fetching documents
// sequentially, and constructing the parsed set.
package quiz

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/quizmark/quizmark/internal/model"
	"github.com/quizmark/quizmark/internal/parser"
)

// DefaultCount is the question-set size when none is configured.
const DefaultCount = 5

// Config drives a Controller. Exactly one of Sources (flat list) or Groups
// (group name to list) should be populated.
type Config struct {
	Count    int
	Sources  []string
	Groups   map[string][]string
	StripRaw bool
}

// Controller owns the load pipeline. Group selection is the only mutable
// state; every run gets a fresh accumulator, so a selection change mid-fetch
// simply makes the in-flight run's result discardable.
type Controller struct {
	cfg      Config
	fetcher  Fetcher
	parser   *parser.Parser
	shuffler *Shuffler

	mu       sync.Mutex
	selected []string
}

// NewController creates a controller. A non-positive Count falls back to
// DefaultCount. With grouped sources, all groups start selected.
func NewController(cfg Config, f Fetcher, p *parser.Parser, s *Shuffler) *Controller {
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	c := &Controller{cfg: cfg, fetcher: f, parser: p, shuffler: s}
	if len(cfg.Groups) > 0 {
		c.selected = c.GroupNames()
	}
	return c
}

// Grouped reports whether sources are organized into named groups.
func (c *Controller) Grouped() bool { return len(c.cfg.Groups) > 0 }

// GroupNames returns all configured group names, sorted.
func (c *Controller) GroupNames() []string {
	names := make([]string, 0, len(c.cfg.Groups))
	for name := range c.cfg.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedGroups returns the currently active groups.
func (c *Controller) SelectedGroups() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.selected...)
}

// SetGroups replaces the active group selection. Unknown names are logged
// and skipped; an empty result is invalid and auto-corrects to all groups.
func (c *Controller) SetGroups(names []string) {
	var valid []string
	for _, name := range names {
		if _, ok := c.cfg.Groups[name]; !ok {
			slog.Warn("unknown question group", "group", name)
			continue
		}
		valid = append(valid, name)
	}
	if len(valid) == 0 {
		valid = c.GroupNames()
	}
	sort.Strings(valid)

	c.mu.Lock()
	c.selected = valid
	c.mu.Unlock()
}

// ToggleGroup flips one group on or off. Toggling off the last remaining
// active group is a no-op: at least one group must stay selected.
func (c *Controller) ToggleGroup(name string) {
	if _, ok := c.cfg.Groups[name]; !ok {
		slog.Warn("unknown question group", "group", name)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sel := range c.selected {
		if sel == name {
			if len(c.selected) == 1 {
				return
			}
			c.selected = append(append([]string(nil), c.selected[:i]...), c.selected[i+1:]...)
			return
		}
	}
	c.selected = append(c.selected, name)
	sort.Strings(c.selected)
}

// candidates concatenates the source locations of the active groups, or the
// flat list when ungrouped.
func (c *Controller) candidates() []string {
	if !c.Grouped() {
		return append([]string(nil), c.cfg.Sources...)
	}
	var out []string
	for _, name := range c.SelectedGroups() {
		out = append(out, c.cfg.Groups[name]...)
	}
	return out
}

// Run produces the working question set: shuffle the candidate list, then
// fetch and parse sequentially, stopping once Count documents have been
// accumulated. Fetches are strictly sequential so that documents past the
// target are never fetched at all. Failed fetches are skipped; authoring
// errors exclude only the offending document.
func (c *Controller) Run(ctx context.Context) []*model.QuestionDocument {
	candidates := c.candidates()
	c.shuffler.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	loaded := make([]*model.QuestionDocument, 0, c.cfg.Count)
	for _, location := range candidates {
		if ctx.Err() != nil {
			return loaded
		}

		raw, err := c.fetcher.Fetch(ctx, location)
		if err != nil {
			slog.Warn("skipping question document", "source", location, "error", err)
			continue
		}
		if c.cfg.StripRaw {
			raw = StripRawMarkers(raw)
		}

		doc, err := c.parser.Parse(raw, location)
		if err != nil {
			slog.Error("excluding question document", "source", location, "error", err)
			continue
		}

		loaded = append(loaded, doc)
		if len(loaded) >= c.cfg.Count {
			break
		}
	}

	if len(loaded) == 0 {
		slog.Warn("no questions available")
	}
	return loaded
}

var rawMarkerRE = regexp.MustCompile(`(?s)\{%\s*(end)?raw\s*%\}`)

// StripRawMarkers removes templating passthrough markers that static-site
// generators require around literal braces.
func StripRawMarkers(s string) string {
	return strings.TrimSpace(rawMarkerRE.ReplaceAllString(s, ""))
}
