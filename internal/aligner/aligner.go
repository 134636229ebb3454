// Package aligner attributes transcript segments to diarized speakers.
//
// A segment belongs to a speaker when its whole [start, end] span lies inside
// one of that speaker's turns (bounds inclusive). Segments are scanned in
// transcript order for every turn, so text within a speaker stays
// chronological. By default speakers come out in diarization discovery order
// and segments straddling two turns are dropped; Options can change both.
package aligner

import (
	"sort"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/diarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

const (
	OrderDiscovery     = "discovery"
	OrderChronological = "chronological"

	StraddleDrop    = "drop"
	StraddleOverlap = "overlap"
)

// Utterance is everything one speaker said.
type Utterance struct {
	Speaker string
	Text    string
}

func (u Utterance) String() string {
	return u.Speaker + ": " + u.Text
}

// Options selects how the two lossy corners of the join behave.
type Options struct {
	// Order is OrderDiscovery or OrderChronological.
	Order string
	// Straddle is StraddleDrop or StraddleOverlap.
	Straddle string
}

type speakerTurns struct {
	speaker string
	turns   []int // indexes into the diarization turns
	first   float64
}

// Align joins segments to diarization turns and returns one utterance per
// speaker that received any text.
func Align(res *diarizer.Result, segments []transcriber.Segment, opts Options) []Utterance {
	if res == nil || len(res.Turns) == 0 {
		return nil
	}
	turns := res.Turns

	groups := groupBySpeaker(turns)

	// extra[j] is the turn a non-contained segment is pinned to, -1 otherwise
	extra := make([]int, len(segments))
	for j := range extra {
		extra[j] = -1
	}
	if opts.Straddle == StraddleOverlap {
		for j, seg := range segments {
			if !containedInAny(seg, turns) {
				extra[j] = bestOverlap(seg, turns)
			}
		}
	}

	var out []Utterance
	for _, g := range groups {
		var b strings.Builder
		for _, ti := range g.turns {
			turn := turns[ti]
			for j, seg := range segments {
				if contains(turn, seg) || extra[j] == ti {
					b.WriteString(seg.Text)
					b.WriteByte(' ')
				}
			}
		}

		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		out = append(out, Utterance{Speaker: g.speaker, Text: text})
	}

	if opts.Order == OrderChronological {
		first := make(map[string]float64, len(groups))
		for _, g := range groups {
			first[g.speaker] = g.first
		}
		sort.SliceStable(out, func(a, b int) bool {
			return first[out[a].Speaker] < first[out[b].Speaker]
		})
	}

	return out
}

func groupBySpeaker(turns []diarizer.Turn) []*speakerTurns {
	index := make(map[string]*speakerTurns)
	var groups []*speakerTurns
	for i, t := range turns {
		g, ok := index[t.Speaker]
		if !ok {
			g = &speakerTurns{speaker: t.Speaker, first: t.Start}
			index[t.Speaker] = g
			groups = append(groups, g)
		}
		g.turns = append(g.turns, i)
		if t.Start < g.first {
			g.first = t.Start
		}
	}
	return groups
}

func contains(turn diarizer.Turn, seg transcriber.Segment) bool {
	return seg.Start >= turn.Start && seg.End <= turn.End
}

func containedInAny(seg transcriber.Segment, turns []diarizer.Turn) bool {
	for _, t := range turns {
		if contains(t, seg) {
			return true
		}
	}
	return false
}

// bestOverlap returns the turn sharing the most time with seg; ties go to the
// earlier turn. -1 when nothing overlaps.
func bestOverlap(seg transcriber.Segment, turns []diarizer.Turn) int {
	best, bestLen := -1, 0.0
	for i, t := range turns {
		overlap := min(seg.End, t.End) - max(seg.Start, t.Start)
		if overlap > bestLen {
			best, bestLen = i, overlap
		}
	}
	return best
}
