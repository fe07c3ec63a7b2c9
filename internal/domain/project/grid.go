package project

import "sort"

// Grid maps "<processID>-<episode>" keys to cell states. A missing key reads
// as the default {none, ""} cell.
type Grid map[string]CellState

// Get returns the stored cell or the default.
func (g Grid) Get(processID, episode int) CellState {
	if cell, ok := g[CellKey(processID, episode)]; ok {
		return cell
	}
	return DefaultCell()
}

// Set replaces the stored cell for a key.
func (g Grid) Set(processID, episode int, cell CellState) {
	g[CellKey(processID, episode)] = cell
}

// DeleteEpisode removes every key for one episode across the given processes.
func (g Grid) DeleteEpisode(episode int, processes []Process) {
	for _, proc := range processes {
		delete(g, CellKey(proc.ID, episode))
	}
}

// IsEpisodeFullyComplete reports whether every process in the current list
// has status done or final for the episode. A project with zero processes is
// never complete; vacuous truth is deliberately not assumed.
func IsEpisodeFullyComplete(g Grid, processes []Process, episode int) bool {
	if len(processes) == 0 {
		return false
	}
	for _, proc := range processes {
		if !g.Get(proc.ID, episode).Status.Complete() {
			return false
		}
	}
	return true
}

// HiddenSet is the per-project overlay of hidden episode numbers. It only
// suppresses display membership; grid data underneath is untouched.
type HiddenSet []int

// Hide adds episodes to the set. Hiding an already-hidden episode is a no-op
// (set union), keeping the operation idempotent.
func (h HiddenSet) Hide(episodes ...int) HiddenSet {
	present := make(map[int]bool, len(h))
	for _, e := range h {
		present[e] = true
	}
	out := append(HiddenSet(nil), h...)
	for _, e := range episodes {
		if !present[e] {
			present[e] = true
			out = append(out, e)
		}
	}
	sort.Ints(out)
	return out
}

// Contains reports set membership.
func (h HiddenSet) Contains(episode int) bool {
	for _, e := range h {
		if e == episode {
			return true
		}
	}
	return false
}

// DisplayEpisodes lists the visible episode numbers of a project in order:
// the [startEpisode, startEpisode+episodeCount-1] range minus the hidden set.
func DisplayEpisodes(p *Project) []int {
	hidden := HiddenSet(p.HiddenEpisodes)
	out := make([]int, 0, p.EpisodeCount)
	for e := p.StartEpisode; e <= p.LastEpisode(); e++ {
		if !hidden.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}
