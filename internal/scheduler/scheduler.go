// Package scheduler finds free time in a day's waking window and places
// new entries into it.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/utils"
)

// DefaultMinBlock drops gaps too short to plan anything in.
const DefaultMinBlock = 5

type Scheduler struct {
	MinBlock int
}

func New() *Scheduler {
	return &Scheduler{MinBlock: DefaultMinBlock}
}

// Block is a free span in minutes from the day's midnight. End may pass
// 24:00 when the waking window runs past midnight.
type Block struct {
	Start int
	End   int
}

func (b Block) Minutes() int {
	return b.End - b.Start
}

func (b Block) StartTime() string {
	return utils.FormatMinutes(b.Start)
}

func (b Block) EndTime() string {
	return utils.FormatMinutes(b.End)
}

func (b Block) String() string {
	r := b.StartTime() + "-" + b.EndTime()
	if b.End > constants.MinutesPerDay {
		r += constants.OvernightSuffix
	}
	return r
}

// Window is the waking window of day: wake to sleep, with sleep moved to
// the next day when it is not after wake. Anchor times are used whether or
// not the anchors are shown.
func Window(day models.Day) (Block, error) {
	wake, ok := utils.ParseTime(day.Wake.Time)
	if !ok {
		return Block{}, fmt.Errorf("invalid wake time %q", day.Wake.Time)
	}
	sleep, ok := utils.ParseTime(day.Sleep.Time)
	if !ok {
		return Block{}, fmt.Errorf("invalid sleep time %q", day.Sleep.Time)
	}
	if sleep <= wake {
		sleep += constants.MinutesPerDay
	}
	return Block{Start: wake, End: sleep}, nil
}

// busy returns the day's entries as spans on the window's axis, sorted by
// start. Zero-length and unparsable entries are skipped.
func busy(day models.Day, window Block) []Block {
	spans := make([]Block, 0, len(day.Entries))
	for _, e := range day.Entries {
		start, ok := utils.ParseTime(e.Start)
		if !ok {
			continue
		}
		end, ok := utils.ParseTime(e.End)
		if !ok || end == start {
			continue
		}
		if end < start {
			end += constants.MinutesPerDay
		}
		shifted := onWindowAxis(start, window)
		spans = append(spans, Block{Start: shifted, End: end + shifted - start})
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

// FreeBlocks lists the gaps between entries inside the waking window.
func (s *Scheduler) FreeBlocks(day models.Day) ([]Block, error) {
	window, err := Window(day)
	if err != nil {
		return nil, err
	}
	return s.findFreeBlocks(window, busy(day, window)), nil
}

func (s *Scheduler) findFreeBlocks(window Block, spans []Block) []Block {
	var blocks []Block
	currentStart := window.Start

	for _, span := range spans {
		if span.End <= currentStart {
			continue
		}
		if span.Start >= window.End {
			break
		}
		if currentStart < span.Start {
			blocks = s.appendBlock(blocks, Block{Start: currentStart, End: span.Start})
		}
		currentStart = span.End
	}

	if currentStart < window.End {
		blocks = s.appendBlock(blocks, Block{Start: currentStart, End: window.End})
	}
	return blocks
}

func (s *Scheduler) appendBlock(blocks []Block, b Block) []Block {
	if b.Minutes() < s.MinBlock {
		return blocks
	}
	return append(blocks, b)
}

// Place finds the first free slot of duration minutes. earliest and latest
// are optional HH:MM bounds on the start and end.
func (s *Scheduler) Place(day models.Day, duration int, earliest, latest string) (Block, bool, error) {
	if duration <= 0 {
		return Block{}, false, fmt.Errorf("duration must be a positive number of minutes")
	}
	blocks, err := s.FreeBlocks(day)
	if err != nil {
		return Block{}, false, err
	}
	window, _ := Window(day)

	lo, hi := -1, -1
	if earliest != "" {
		m, ok := utils.ParseTime(earliest)
		if !ok {
			return Block{}, false, fmt.Errorf("invalid earliest time %q", earliest)
		}
		lo = onWindowAxis(m, window)
	}
	if latest != "" {
		m, ok := utils.ParseTime(latest)
		if !ok {
			return Block{}, false, fmt.Errorf("invalid latest time %q", latest)
		}
		hi = onWindowAxis(m, window)
	}

	for _, block := range blocks {
		if slot, ok := placeInBlock(block, duration, lo, hi); ok {
			return slot, true, nil
		}
	}
	return Block{}, false, nil
}

// onWindowAxis moves a clock minute past midnight when that puts it inside
// a window that itself runs past midnight.
func onWindowAxis(m int, window Block) int {
	if m < window.Start && m+constants.MinutesPerDay <= window.End {
		return m + constants.MinutesPerDay
	}
	return m
}

func placeInBlock(block Block, duration, earliest, latest int) (Block, bool) {
	start := block.Start
	if earliest >= 0 && earliest > start {
		start = earliest
	}
	end := start + duration
	if latest >= 0 && end > latest {
		return Block{}, false
	}
	if end > block.End {
		return Block{}, false
	}
	return Block{Start: start, End: end}, true
}
