package recommend

import (
	"github.com/poiesic/recobot/core"
)

// Monitor provides hooks to observe a recommendation.
// Implement this interface to trace intermediate steps of a query.
type Monitor interface {
	Start(query string)
	AfterAnalysis(terms []core.SearchTerm)
	FilmSkipped(err *core.LocalDataError)
	AfterCatalogLoad(films []*core.FilmRecord)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterAnalysis(_ []core.SearchTerm)     {}
func (n *noopMonitor) FilmSkipped(_ *core.LocalDataError)    {}
func (n *noopMonitor) AfterCatalogLoad(_ []*core.FilmRecord) {}
func (n *noopMonitor) Finish(_ []core.RankedResult)          {}
