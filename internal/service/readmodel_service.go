package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/registry"
	"github.com/tanush-em/QWERTY/internal/repository"
	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
)

type recordReader interface {
	Page(ctx context.Context, collection string, limit, skip int64, sorted bool) ([]bson.M, int64, error)
	FindByID(ctx context.Context, collection, id string) (bson.M, error)
	FindByKeys(ctx context.Context, collection, key string, values []interface{}) (map[string]bson.M, error)
	CollectionNames(ctx context.Context) ([]string, error)
}

// ReadModelConfig tunes pagination bounds.
type ReadModelConfig struct {
	DefaultPageSize int64
	MaxPageSize     int64
}

// ReadModelService serves paginated, populated, and formatted views over
// the record collections. Every call re-queries the store; the service
// holds no per-request state.
type ReadModelService struct {
	store    recordReader
	registry *registry.Registry
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      ReadModelConfig
}

// NewReadModelService constructs a ReadModelService with sane defaults.
// metrics may be nil.
func NewReadModelService(store recordReader, reg *registry.Registry, metrics *MetricsService, logger *zap.Logger, cfg ReadModelConfig) *ReadModelService {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 100
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 1000
	}
	return &ReadModelService{store: store, registry: reg, metrics: metrics, logger: logger, cfg: cfg}
}

// ListResult is one page of formatted records plus the full collection
// count and the pagination actually applied.
type ListResult struct {
	Records []bson.M
	Count   int64
	Limit   int64
	Skip    int64
}

// CollectionInfo describes one collection the store currently holds.
type CollectionInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// List returns one page of a collection, newest first where the collection
// carries creation timestamps. Count is the total number of documents,
// independent of limit and skip. Negative or oversized pagination values
// are clamped, never rejected.
func (s *ReadModelService) List(ctx context.Context, name string, limit, skip int64) (*ListResult, error) {
	entry, ok := s.registry.Lookup(name)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownCollection, "unknown collection: "+name)
	}

	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if skip < 0 {
		skip = 0
	}

	start := time.Now()
	docs, total, err := s.store.Page(ctx, entry.Name, limit, skip, entry.Sorted)
	s.metrics.ObserveStoreQuery(entry.Name, time.Since(start))
	if err != nil {
		s.logger.Error("collection page query failed", zap.String("collection", entry.Name), zap.Error(err))
		return nil, storeError(err)
	}
	if docs == nil {
		// An empty page still serializes as an array, not null.
		docs = []bson.M{}
	}

	if err := s.populate(ctx, entry, docs); err != nil {
		s.logger.Error("reference population failed", zap.String("collection", entry.Name), zap.Error(err))
		return nil, storeError(err)
	}
	finalize(entry, docs)

	return &ListResult{Records: docs, Count: total, Limit: limit, Skip: skip}, nil
}

// Get returns a single formatted record by id.
func (s *ReadModelService) Get(ctx context.Context, name, id string) (bson.M, error) {
	entry, ok := s.registry.Lookup(name)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownCollection, "unknown collection: "+name)
	}

	doc, err := s.store.FindByID(ctx, entry.Name, id)
	if err != nil {
		return nil, storeError(err)
	}
	if doc == nil {
		return nil, appErrors.ErrNotFound
	}

	docs := []bson.M{doc}
	if err := s.populate(ctx, entry, docs); err != nil {
		return nil, storeError(err)
	}
	finalize(entry, docs)
	return docs[0], nil
}

// Collections enumerates the collections the store currently holds. This
// is a store-introspection call, distinct from the registry-driven typed
// read path.
func (s *ReadModelService) Collections(ctx context.Context) ([]CollectionInfo, error) {
	names, err := s.store.CollectionNames(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	infos := make([]CollectionInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, CollectionInfo{Name: name, Type: "collection"})
	}
	return infos, nil
}

// populate resolves each declared reference field for the whole page in
// one store round trip per field: gather the distinct keys, fetch the
// targets with a single $in query, then stitch the documents back in.
func (s *ReadModelService) populate(ctx context.Context, entry *registry.Entry, docs []bson.M) error {
	for _, ref := range entry.References {
		foreignKey := ref.ForeignKey
		if foreignKey == "" {
			foreignKey = "_id"
		}

		keys := make([]interface{}, 0, len(docs))
		seen := make(map[string]bool)
		collect := func(v interface{}) {
			k, ok := repository.KeyString(v)
			if !ok || seen[k] {
				return
			}
			seen[k] = true
			keys = append(keys, v)
		}

		if ref.InSlots {
			for _, doc := range docs {
				for _, slot := range slotsOf(doc) {
					collect(slot[ref.Field])
				}
			}
		} else {
			for _, doc := range docs {
				collect(doc[ref.Field])
			}
		}

		resolved, err := s.store.FindByKeys(ctx, ref.Collection, foreignKey, keys)
		if err != nil {
			return err
		}

		if ref.InSlots {
			for _, doc := range docs {
				for _, slot := range slotsOf(doc) {
					stitch(slot, ref, resolved)
				}
			}
		} else {
			for _, doc := range docs {
				stitch(doc, ref, resolved)
			}
		}
	}
	return nil
}

// stitch replaces one reference value with its resolved document, or null
// when the reference is absent or dangling.
func stitch(doc bson.M, ref registry.Reference, resolved map[string]bson.M) {
	target := ref.Field
	if ref.As != "" {
		target = ref.As
	}
	key, ok := repository.KeyString(doc[ref.Field])
	if !ok {
		if _, present := doc[ref.Field]; present && ref.As == "" {
			doc[target] = nil
		}
		return
	}
	if hit, found := resolved[key]; found {
		doc[target] = hit
	} else {
		doc[target] = nil
	}
}

func slotsOf(doc bson.M) []bson.M {
	raw, ok := doc["slots"].(bson.A)
	if !ok {
		return nil
	}
	slots := make([]bson.M, 0, len(raw))
	for _, item := range raw {
		if slot, ok := item.(bson.M); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// finalize applies the registry's display transform and rewrites
// driver-native values for the wire.
func finalize(entry *registry.Entry, docs []bson.M) {
	for _, doc := range docs {
		if entry.Format != nil {
			entry.Format(doc)
		}
		repository.Normalize(doc)
	}
}

// storeError classifies a store failure: unreachable stores surface as
// service unavailability, anything else as a failed query with connection
// details stripped from the message.
func storeError(err error) error {
	if repository.Unavailable(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, appErrors.Sanitize(err.Error()))
}
