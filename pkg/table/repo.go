package table

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pthm/surrealkit"
	"github.com/pthm/surrealkit/pkg/builder"
	"github.com/pthm/surrealkit/pkg/qb"
	"github.com/pthm/surrealkit/pkg/surql"
	"github.com/pthm/surrealkit/pkg/value"
)

// Repo runs record operations for the table of T.
//
// T is encoded with its json tags. A field tagged `json:"id"` holds the
// record id as "table:key" text; it is stripped from written content and
// filled from the database on read.
type Repo[T Table] struct {
	db    surrealkit.Querier
	meta  Meta
	cache Cache
	log   zerolog.Logger

	// cacheMu orders cache fills against invalidations. gen changes at the
	// start and end of every write, so a read that overlaps a write is not
	// cached.
	cacheMu sync.Mutex
	gen     uint64
}

// RepoOption configures a Repo.
type RepoOption func(*repoOptions)

type repoOptions struct {
	cache Cache
	log   zerolog.Logger
}

// WithCache serves Get from c. Update and Delete invalidate the record.
func WithCache(c Cache) RepoOption {
	return func(o *repoOptions) {
		o.cache = c
	}
}

// WithLogger sets the logger for statement tracing.
func WithLogger(log zerolog.Logger) RepoOption {
	return func(o *repoOptions) {
		o.log = log
	}
}

// NewRepo returns a repository for T. It fails when T's table name is
// invalid.
func NewRepo[T Table](db surrealkit.Querier, opts ...RepoOption) (*Repo[T], error) {
	meta, err := Describe[T]()
	if err != nil {
		return nil, err
	}
	o := repoOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repo[T]{
		db:    db,
		meta:  meta,
		cache: o.cache,
		log:   o.log.With().Str("table", meta.Name).Logger(),
	}, nil
}

// Meta returns the table description.
func (r *Repo[T]) Meta() Meta {
	return r.meta
}

// Create stores rec under a database generated id and returns the stored
// record. Any id already set on rec is ignored.
func (r *Repo[T]) Create(ctx context.Context, rec T) (T, error) {
	content, _, err := r.content(rec)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.create(ctx, surql.Table(r.meta.Name), content)
}

// CreateWithID stores rec under id. id is either a key or a full
// "table:key" record id of this table.
func (r *Repo[T]) CreateWithID(ctx context.Context, id any, rec T) (T, error) {
	var zero T
	thing, err := r.thing(id)
	if err != nil {
		return zero, err
	}
	content, _, err := r.content(rec)
	if err != nil {
		return zero, err
	}
	return r.create(ctx, thing, content)
}

func (r *Repo[T]) create(ctx context.Context, target surql.Value, content surql.Object) (T, error) {
	var zero T
	q, err := builder.Create().What(target).Content(content).Only().ToQuery()
	if err != nil {
		return zero, err
	}
	out, ok, err := r.one(ctx, q)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", r.meta.Name, err)
	}
	if !ok {
		return zero, fmt.Errorf("create %s: %w", r.meta.Name, surrealkit.ErrNoResult)
	}
	return out, nil
}

// Get returns the record with id. ok is false when it does not exist.
func (r *Repo[T]) Get(ctx context.Context, id any) (rec T, ok bool, err error) {
	thing, err := r.thing(id)
	if err != nil {
		return rec, false, err
	}
	key := thing.SQL()

	if r.cache != nil {
		if raw, hit := r.cache.Get(key); hit {
			r.log.Debug().Str("id", key).Msg("cache hit")
			rec, err = value.Decode[T](raw)
			return rec, err == nil, err
		}
	}

	q, err := builder.Select().What(thing).Field("*").ToQuery()
	if err != nil {
		return rec, false, err
	}
	gen := r.generation()
	results, err := r.run(ctx, q)
	if err != nil {
		return rec, false, fmt.Errorf("get %s: %w", key, err)
	}
	rec, ok, err = surrealkit.TakeOne[T](results, 0)
	if err != nil || !ok {
		return rec, ok, err
	}
	r.fill(gen, key, firstRow(results[0].Result))
	return rec, true, nil
}

// All returns every record of the table.
func (r *Repo[T]) All(ctx context.Context) ([]T, error) {
	q, err := builder.Select().What(surql.Table(r.meta.Name)).Field("*").ToQuery()
	if err != nil {
		return nil, err
	}
	results, err := r.run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.meta.Name, err)
	}
	return surrealkit.Take[[]T](results, 0)
}

// Update merges rec into the stored record named by rec's id and returns
// the merged record. rec must carry an id; ok is false when no such record
// exists.
func (r *Repo[T]) Update(ctx context.Context, rec T) (out T, ok bool, err error) {
	content, id, err := r.content(rec)
	if err != nil {
		return out, false, err
	}
	if id == nil {
		return out, false, fmt.Errorf("update %s: %w", r.meta.Name, surrealkit.ErrIDEmpty)
	}
	thing, err := r.thing(id)
	if err != nil {
		return out, false, err
	}

	q, err := builder.Update().What(thing).Merge(content).Only().Output(surql.OutputAfter).ToQuery()
	if err != nil {
		return out, false, err
	}
	r.invalidate(thing)
	defer r.invalidate(thing)
	out, ok, err = r.one(ctx, q)
	if err != nil {
		return out, false, fmt.Errorf("update %s: %w", thing.SQL(), err)
	}
	return out, ok, nil
}

// Delete removes the record with id and returns it as it was. ok is false
// when it did not exist.
func (r *Repo[T]) Delete(ctx context.Context, id any) (out T, ok bool, err error) {
	thing, err := r.thing(id)
	if err != nil {
		return out, false, err
	}
	q, err := builder.Delete().What(thing).Output(surql.OutputBefore).ToQuery()
	if err != nil {
		return out, false, err
	}
	r.invalidate(thing)
	defer r.invalidate(thing)
	out, ok, err = r.one(ctx, q)
	if err != nil {
		return out, false, fmt.Errorf("delete %s: %w", thing.SQL(), err)
	}
	return out, ok, nil
}

// Select starts a string query over the table, or over one record when id
// is non-nil.
func (r *Repo[T]) Select(id *string) *qb.Query {
	return qb.New().From(r.meta.Name, id)
}

func (r *Repo[T]) run(ctx context.Context, q *builder.Query) ([]surrealkit.Result, error) {
	r.log.Debug().Str("sql", q.SQL()).Msg("running statement")
	return q.Run(ctx, r.db)
}

func (r *Repo[T]) one(ctx context.Context, q *builder.Query) (T, bool, error) {
	results, err := r.run(ctx, q)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return surrealkit.TakeOne[T](results, 0)
}

func (r *Repo[T]) generation() uint64 {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	return r.gen
}

// fill caches row unless a write started or finished since gen was read.
func (r *Repo[T]) fill(gen uint64, key string, row any) {
	if r.cache == nil {
		return
	}
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if gen != r.gen {
		return
	}
	r.cache.Set(key, row)
}

// invalidate runs before and after each write.
func (r *Repo[T]) invalidate(thing surql.Thing) {
	if r.cache == nil {
		return
	}
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.gen++
	r.cache.Delete(thing.SQL())
}

// content encodes rec as an object without its id. The id, if set, is
// returned separately.
func (r *Repo[T]) content(rec T) (surql.Object, any, error) {
	v, err := value.ToValue(rec)
	if err != nil {
		return nil, nil, err
	}
	obj, ok := v.(surql.Object)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s record encodes to %T, want object",
			surql.ErrUnsupportedValue, r.meta.Name, v)
	}
	var id any
	switch x := obj["id"].(type) {
	case nil, surql.Null, surql.None:
	case surql.Strand:
		if x != "" {
			id = string(x)
		}
	case surql.Int:
		id = int64(x)
	default:
		id = x
	}
	out := make(surql.Object, len(obj))
	for k, v := range obj {
		if k != "id" {
			out[k] = v
		}
	}
	return out, id, nil
}

// thing resolves id into a record id of this table.
func (r *Repo[T]) thing(id any) (surql.Thing, error) {
	switch x := id.(type) {
	case nil:
		return surql.Thing{}, surrealkit.ErrIDEmpty
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return surql.Thing{}, surrealkit.ErrIDEmpty
		}
		if t, ok := surql.ParseThing(x); ok {
			return r.checkTable(t)
		}
		return surql.Thing{Table: r.meta.Name, ID: x}, nil
	case surql.Thing:
		return r.checkTable(x)
	case models.RecordID:
		return r.checkTable(surql.Thing{Table: x.Table, ID: x.ID})
	case *models.RecordID:
		if x == nil {
			return surql.Thing{}, surrealkit.ErrIDEmpty
		}
		return r.checkTable(surql.Thing{Table: x.Table, ID: x.ID})
	}
	return surql.Thing{Table: r.meta.Name, ID: id}, nil
}

func (r *Repo[T]) checkTable(t surql.Thing) (surql.Thing, error) {
	if t.Table != r.meta.Name {
		return surql.Thing{}, fmt.Errorf("%w: %s is not in %s", surrealkit.ErrTableNameMismatch, t.SQL(), r.meta.Name)
	}
	return t, nil
}

func firstRow(raw any) any {
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return raw
}
