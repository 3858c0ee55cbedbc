package state

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/vsheet/internal/journal"
	"github.com/kk-code-lab/vsheet/internal/match"
)

// relocate processes the batch range, moves each pair's files into the
// destination-key folder, then compacts the pair list and recomputes the
// selection. Per-file failures are counted and reported in the summary; the
// failing pair stays in the list so the operator can retry.
func (r *StateReducer) relocate(state *AppState, key string, includePreceding bool) error {
	if len(state.Pairs) == 0 {
		return nil
	}
	if !r.validKey(key) {
		return fmt.Errorf("unknown destination key %q", key)
	}

	lo := state.Selected
	if includePreceding {
		lo = 0
	}
	hi := state.Selected + 1

	videoDir := filepath.Join(state.RootPath, r.cfg.KeepRootName, key)
	imageDir := filepath.Join(videoDir, r.cfg.ScreensDirName)

	summary := BatchSummary{Destination: key}
	for _, pair := range state.Pairs[lo:hi] {
		if _, done := state.moved[pair.VideoPath]; done {
			continue
		}
		if r.relocatePair(state, pair, videoDir, imageDir, key) {
			state.moved[pair.VideoPath] = struct{}{}
			summary.Moved++
		} else {
			summary.Failed++
		}
	}

	r.remap(state)
	state.moved = make(map[string]struct{})
	state.LastSummary = &summary
	state.TotalMoved += summary.Moved
	state.TotalFailed += summary.Failed
	state.StatusMessage = ""
	r.ensureFitted(state)

	r.log.Info("batch relocation finished",
		"destination", key, "moved", summary.Moved, "failed", summary.Failed)
	return nil
}

// relocatePair moves one pair's two files and reports success. The video
// moves first; if the image move then fails the video move is rolled back so
// the pair stays whole and retryable. A rollback failure strands the video
// in the destination, which is logged loudly, and the pair still counts as
// failed.
func (r *StateReducer) relocatePair(state *AppState, pair Pair, videoDir, imageDir, key string) bool {
	if !match.ImageMatchesVideo(pair.VideoPath, pair.ImagePath, r.cfg.ImageExtensions) {
		r.log.Warn("image name does not match video, refusing to move",
			"video", pair.VideoPath, "image", pair.ImagePath)
		return false
	}

	if err := r.mover.Move(pair.VideoPath, videoDir); err != nil {
		r.log.Warn("video move failed", "video", pair.VideoPath, "error", err)
		return false
	}

	if err := r.mover.Move(pair.ImagePath, imageDir); err != nil {
		r.log.Warn("image move failed, rolling back video",
			"image", pair.ImagePath, "error", err)
		movedVideo := filepath.Join(videoDir, filepath.Base(pair.VideoPath))
		if rbErr := r.mover.Move(movedVideo, filepath.Dir(pair.VideoPath)); rbErr != nil {
			r.log.Error("rollback failed, video stranded in destination",
				"video", movedVideo, "error", rbErr)
		}
		return false
	}

	if r.recorder != nil {
		entry := journal.Entry{
			MovedAt:     time.Now(),
			VideoPath:   pair.VideoPath,
			ImagePath:   pair.ImagePath,
			Destination: key,
			Session:     state.Session.String(),
		}
		if err := r.recorder.Record(context.Background(), entry); err != nil {
			r.log.Warn("journal record failed", "video", pair.VideoPath, "error", err)
		}
	}
	return true
}

// remap drops every pair in the moved set from the list and recomputes the
// selection: the new selection is the surviving position of the first
// survivor whose original position was at or after the old selection, else
// the last survivor (0 when the list empties). The cache is keyed by pair
// identity, so surviving entries carry over untouched and removed entries
// are simply deleted.
func (r *StateReducer) remap(state *AppState) {
	if len(state.moved) == 0 {
		return
	}

	survivors := make([]Pair, 0, len(state.Pairs))
	newSelected := -1
	for i, pair := range state.Pairs {
		if _, gone := state.moved[pair.VideoPath]; gone {
			delete(state.cache, pair.VideoPath)
			continue
		}
		if newSelected == -1 && i >= state.Selected {
			newSelected = len(survivors)
		}
		survivors = append(survivors, pair)
	}
	if newSelected == -1 {
		newSelected = len(survivors) - 1
		if newSelected < 0 {
			newSelected = 0
		}
	}

	state.Pairs = survivors
	state.Selected = newSelected
}

func (r *StateReducer) validKey(key string) bool {
	for _, k := range r.cfg.DestinationKeys {
		if k == key {
			return true
		}
	}
	return false
}
