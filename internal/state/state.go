package state

import (
	"image"

	"github.com/google/uuid"

	"github.com/kk-code-lab/vsheet/internal/match"
)

// Pair mirrors match.Pair so UI/state code can rely on a stable type.
type Pair = match.Pair

// cacheEntry is the loaded form of one pair's image. raw is the decoded
// image; fitted is raw scaled for the box recorded in boxW/boxH and is
// dropped whenever the viewport box changes.
type cacheEntry struct {
	raw    image.Image
	fitted image.Image
	boxW   int
	boxH   int
}

// BatchSummary reports one relocation batch. Advisory only; partial failure
// is normal.
type BatchSummary struct {
	Destination string
	Moved       int
	Failed      int
}

// AppState is the single source of truth. It is mutated only by the
// interactive goroutine; the loader communicates exclusively through
// deliveries drained by that goroutine.
type AppState struct {
	RootPath   string
	ScreensDir string

	// Pairs shrinks monotonically as batches are relocated. Selected always
	// points at a present pair while Pairs is non-empty, 0 otherwise.
	Pairs        []Pair
	Selected     int
	InitialCount int

	// Session tags the active load; deliveries carrying any other id are
	// stale and discarded.
	Session     uuid.UUID
	LoadingDone bool
	LoadFailed  bool

	// Displayed flips once the first image is on screen, which happens as
	// soon as the current pair's delivery lands rather than after the whole
	// batch loads.
	Displayed bool

	// BoxW/BoxH is the image area in pixels; the screen fields are cells.
	BoxW         int
	BoxH         int
	ScreenWidth  int
	ScreenHeight int

	StatusMessage string
	QuitArmed     bool
	LastSummary   *BatchSummary

	// Running totals across all batches, reported once on exit.
	TotalMoved  int
	TotalFailed int

	cache map[string]*cacheEntry // keyed by VideoPath, the pair's identity
	moved map[string]struct{}    // videos relocated in the running batch
}

// NewAppState builds the state for one viewing session over pairs.
func NewAppState(rootPath, screensDir string, pairs []Pair) *AppState {
	return &AppState{
		RootPath:     rootPath,
		ScreensDir:   screensDir,
		Pairs:        pairs,
		InitialCount: len(pairs),
		cache:        make(map[string]*cacheEntry),
		moved:        make(map[string]struct{}),
	}
}

// BeginSession switches to a fresh load session, discarding every loaded
// image along with any in-flight state from the previous one. Deliveries
// tagged with an older session id are ignored from here on.
func (s *AppState) BeginSession(id uuid.UUID) {
	s.Session = id
	s.LoadingDone = false
	s.LoadFailed = false
	s.Displayed = false
	s.cache = make(map[string]*cacheEntry)
	s.moved = make(map[string]struct{})
}

// CurrentPair returns the selected pair, nil when the list is empty.
func (s *AppState) CurrentPair() *Pair {
	if len(s.Pairs) == 0 || s.Selected < 0 || s.Selected >= len(s.Pairs) {
		return nil
	}
	return &s.Pairs[s.Selected]
}

// Remaining counts the pairs not yet passed, the number shown in the status
// line.
func (s *AppState) Remaining() int {
	if len(s.Pairs) == 0 {
		return 0
	}
	return len(s.Pairs) - s.Selected
}

// CurrentImage returns the selected pair's image fitted for the current box,
// or nil while it is still loading or unfitted.
func (s *AppState) CurrentImage() image.Image {
	pair := s.CurrentPair()
	if pair == nil {
		return nil
	}
	entry := s.cache[pair.VideoPath]
	if entry == nil || entry.fitted == nil || entry.boxW != s.BoxW || entry.boxH != s.BoxH {
		return nil
	}
	return entry.fitted
}

// Loaded reports whether the pair identified by videoPath has a decoded
// image in the cache.
func (s *AppState) Loaded(videoPath string) bool {
	entry := s.cache[videoPath]
	return entry != nil && entry.raw != nil
}

// LoadedCount counts pairs with a decoded image.
func (s *AppState) LoadedCount() int {
	n := 0
	for _, entry := range s.cache {
		if entry.raw != nil {
			n++
		}
	}
	return n
}

func (s *AppState) entryFor(videoPath string) *cacheEntry {
	entry := s.cache[videoPath]
	if entry == nil {
		entry = &cacheEntry{}
		s.cache[videoPath] = entry
	}
	return entry
}

// pairIndex returns the current position of the pair identified by
// videoPath, or -1 when it has already been relocated. Position is only
// materialized here, at the display boundary; the cache itself is keyed by
// identity so removals never require re-keying entries.
func (s *AppState) pairIndex(videoPath string) int {
	for i, p := range s.Pairs {
		if p.VideoPath == videoPath {
			return i
		}
	}
	return -1
}
