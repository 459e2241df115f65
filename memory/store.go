package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/internal/textutil"
	"github.com/hupe1980/synapseflow/logging"
)

// DefaultRecencyWeight is the age-bonus factor applied during retrieval
// scoring. With a positive weight older records score marginally higher, the
// behavior this engine inherited; pass a negative weight to reward newer
// records instead.
const DefaultRecencyWeight = 1e-6

// Options configures a Store.
type Options struct {
	// Sink persists the full per-user mapping after every add. Optional;
	// without a sink the store is purely in-process.
	Sink core.Sink

	// Index receives a copy of every added record. Optional. Forwarding
	// failures are isolated from local durability.
	Index core.VectorIndex

	// RecencyWeight scales the (now - timestamp) age bonus added to the
	// lexical overlap score. Positive rewards older records, negative rewards
	// newer ones. Defaults to DefaultRecencyWeight.
	RecencyWeight float64

	// Logger receives persistence and forwarding warnings. Defaults to NoOpLogger.
	Logger logging.Logger

	// Now overrides the wall clock, for tests.
	Now func() time.Time
}

// Store is the context store: an append-only log of records per user.
// Records are immutable once added and never evicted. A user with no records
// maps to an empty sequence, not an error.
//
// Concurrency: the record map is guarded by an RWMutex so a Store may be
// shared between agents; a single agent's run flow remains sequential.
type Store struct {
	mu            sync.RWMutex
	records       map[string][]core.Record
	sink          core.Sink
	index         core.VectorIndex
	recencyWeight float64
	logger        logging.Logger
	now           func() time.Time
}

// NewStore creates a Store, loading existing records from the sink when one
// is configured. A sink that fails to load yields an empty store and a
// warning, not a construction failure.
func NewStore(optFns ...func(o *Options)) *Store {
	opts := Options{
		RecencyWeight: DefaultRecencyWeight,
		Logger:        logging.NoOpLogger{},
		Now:           time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Store{
		records:       make(map[string][]core.Record),
		sink:          opts.Sink,
		index:         opts.Index,
		recencyWeight: opts.RecencyWeight,
		logger:        opts.Logger,
		now:           opts.Now,
	}

	if s.sink != nil {
		loaded, err := s.sink.Load()
		if err != nil {
			s.logger.Warn("memory.load.failed", "error", err.Error())
		} else if loaded != nil {
			s.records = loaded
		}
	}

	return s
}

// Add appends a record with the current timestamp to the user's log, then
// persists the full mapping to the sink and forwards the record to the vector
// index. Both side effects are best-effort: failures are logged and absorbed
// independently of each other, so a broken index never costs local
// durability and vice versa.
func (s *Store) Add(ctx context.Context, userID, text string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}

	rec := core.Record{
		Timestamp: s.nowSeconds(),
		Text:      text,
		Metadata:  metadata,
	}

	s.mu.Lock()
	s.records[userID] = append(s.records[userID], rec)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.sink != nil {
		if err := s.sink.Save(snapshot); err != nil {
			s.logger.Warn("memory.persist.failed", "user", userID, "error", err.Error())
		}
	}

	if s.index != nil {
		if err := s.index.Upsert(ctx, userID, text, metadata, nil); err != nil {
			s.logger.Warn("memory.index.upsert_failed", "user", userID, "error", err.Error())
		}
	}
}

// Query returns up to topK records for the user, ranked by the count of
// distinct tokens shared with the query text plus the recency bonus. Ties
// keep insertion order. An unknown user yields an empty result.
func (s *Store) Query(userID, query string, topK int) []core.Record {
	if topK <= 0 {
		return nil
	}

	qset := textutil.TokenSet(query)
	now := s.nowSeconds()

	s.mu.RLock()
	items := s.records[userID]

	type scored struct {
		rec   core.Record
		score float64
	}

	ranked := make([]scored, 0, len(items))
	for _, rec := range items {
		overlap := textutil.Overlap(qset, textutil.TokenSet(rec.Text))
		score := float64(overlap) + s.recencyWeight*(now-rec.Timestamp)
		if score > 0 {
			ranked = append(ranked, scored{rec: rec, score: score})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topK > len(ranked) {
		topK = len(ranked)
	}

	out := make([]core.Record, topK)
	for i := range out {
		out[i] = ranked[i].rec
	}
	return out
}

// Records returns a snapshot of the user's full log in insertion order.
func (s *Store) Records(userID string) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, len(s.records[userID]))
	copy(out, s.records[userID])
	return out
}

// Users returns the ids of all users with at least one record.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.records))
	for u := range s.records {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func (s *Store) nowSeconds() float64 {
	return float64(s.now().UnixNano()) / float64(time.Second)
}

// snapshotLocked copies the record map for handoff to the sink. Record
// slices are copied shallowly; records themselves are immutable.
func (s *Store) snapshotLocked() map[string][]core.Record {
	snapshot := make(map[string][]core.Record, len(s.records))
	for user, recs := range s.records {
		cp := make([]core.Record, len(recs))
		copy(cp, recs)
		snapshot[user] = cp
	}
	return snapshot
}
