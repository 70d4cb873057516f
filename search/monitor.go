package search

import "github.com/kbforge/kbforge/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, mode Mode)
	AfterScopeResolution(teamIDs []core.ID)
	AfterMatch(results []*core.ScoredResult)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Mode)              {}
func (n *noopMonitor) AfterScopeResolution(_ []core.ID)    {}
func (n *noopMonitor) AfterMatch(_ []*core.ScoredResult)   {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)       {}
