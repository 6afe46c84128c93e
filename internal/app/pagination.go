package app

import "github.com/arnokoehler/battleship-frontend/pkg/types"

// pager is a pure display window over the game list. It never wraps.
type pager struct {
	page int
	size int
}

// next advances one page iff another page exists.
func (p *pager) next(total int) bool {
	if (p.page+1)*p.size >= total {
		return false
	}
	p.page++
	return true
}

func (p *pager) prev() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	return true
}

// clamp pulls the page back into range after the list shrank.
func (p *pager) clamp(total int) {
	if max := p.maxPage(total); p.page > max {
		p.page = max
	}
}

func (p *pager) maxPage(total int) int {
	if total <= p.size {
		return 0
	}
	return (total - 1) / p.size
}

// slice returns the contiguous visible window, possibly a partial last page.
func (p *pager) slice(games []types.GameSummary) []types.GameSummary {
	start := p.page * p.size
	if start >= len(games) {
		return nil
	}
	end := start + p.size
	if end > len(games) {
		end = len(games)
	}
	return games[start:end]
}
