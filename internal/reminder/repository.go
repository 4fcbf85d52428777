package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Store is the persistence contract the repository runs on: a key/value
// store mapping an origin to the JSON array of its reminders.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Repository owns the reminder lifecycle for every origin: validation,
// date stamping, and read-modify-write cycles against the store.
//
// Mutations for the same origin are serialized through a per-origin
// lock; the store has no transactions, so two interleaved
// read-modify-write cycles on one key would silently drop the first
// write. Different origins never contend. Reads are not serialized.
type Repository struct {
	store    Store
	maxLen   int
	log      *slog.Logger
	now      func() time.Time
	onChange func(origin string)

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithMaxLength overrides the maximum reminder text length. Values
// below MinLength fall back to the default.
func WithMaxLength(n int) Option {
	return func(r *Repository) {
		if n >= MinLength {
			r.maxLen = n
		}
	}
}

// WithLogger sets the logger used for absorbed store errors.
func WithLogger(log *slog.Logger) Option {
	return func(r *Repository) { r.log = log }
}

// WithClock overrides the time source for date stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func New(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		maxLen: DefaultMaxLength,
		log:    slog.Default(),
		now:    time.Now,
		locks:  map[string]*sync.Mutex{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// MaxLength returns the configured upper text bound.
func (r *Repository) MaxLength() int { return r.maxLen }

// SetOnChange installs a fire-and-forget callback invoked with the
// origin after every successful add, remove or clear, so badge surfaces
// can re-query. Install it before issuing mutations.
func (r *Repository) SetOnChange(fn func(origin string)) { r.onChange = fn }

func (r *Repository) notify(origin string) {
	if r.onChange != nil {
		r.onChange(origin)
	}
}

// originLock returns the mutex serializing mutations for one origin.
func (r *Repository) originLock(origin string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lk, ok := r.locks[origin]
	if !ok {
		lk = &sync.Mutex{}
		r.locks[origin] = lk
	}
	return lk
}

// List returns the origin's reminders in insertion order. It never
// fails: an empty origin or a store read error yields an empty list,
// with the error logged.
func (r *Repository) List(ctx context.Context, origin string) []Reminder {
	if origin == "" {
		return nil
	}
	list, err := r.load(ctx, origin)
	if err != nil {
		r.log.Error("read reminders", "origin", origin, "error", err)
		return nil
	}
	return list
}

// Count returns the number of reminders stored for the origin.
func (r *Repository) Count(ctx context.Context, origin string) int {
	return len(r.List(ctx, origin))
}

// OriginCount pairs an origin with its reminder count.
type OriginCount struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

// Origins lists every origin that has reminders, with counts.
func (r *Repository) Origins(ctx context.Context) ([]OriginCount, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list origins: %w", err)
	}
	out := make([]OriginCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, OriginCount{Origin: k, Count: r.Count(ctx, k)})
	}
	return out, nil
}

// Add validates text, stamps it with today's date, appends it to the
// origin's list and persists the list. The text is trimmed first; it
// must be within the length bounds and not already present verbatim.
func (r *Repository) Add(ctx context.Context, originKey, text string) (Reminder, error) {
	if originKey == "" {
		return Reminder{}, ErrNoOrigin
	}
	text, err := r.validate(text)
	if err != nil {
		return Reminder{}, err
	}

	lk := r.originLock(originKey)
	lk.Lock()
	defer lk.Unlock()

	list, err := r.load(ctx, originKey)
	if err != nil {
		return Reminder{}, fmt.Errorf("read reminders: %w", err)
	}
	for _, rem := range list {
		if rem.Text == text {
			return Reminder{}, ErrDuplicate
		}
	}

	rem := Reminder{ID: newID(), Text: text, Date: Stamp(r.now())}
	if err := r.save(ctx, originKey, append(list, rem)); err != nil {
		return Reminder{}, err
	}
	r.notify(originKey)
	return rem, nil
}

// Edit replaces the text of the reminder with the given ID and
// re-stamps its date. Length bounds apply as in Add; matching another
// reminder's text is allowed here, as it always has been.
func (r *Repository) Edit(ctx context.Context, originKey, id, newText string) (Reminder, error) {
	if originKey == "" {
		return Reminder{}, ErrNoOrigin
	}
	newText, err := r.validate(newText)
	if err != nil {
		return Reminder{}, err
	}

	lk := r.originLock(originKey)
	lk.Lock()
	defer lk.Unlock()

	list, err := r.load(ctx, originKey)
	if err != nil {
		return Reminder{}, fmt.Errorf("read reminders: %w", err)
	}
	idx := indexByID(list, id)
	if idx < 0 {
		return Reminder{}, ErrNotFound
	}

	list[idx].Text = newText
	list[idx].Date = Stamp(r.now())
	if err := r.save(ctx, originKey, list); err != nil {
		return Reminder{}, err
	}
	return list[idx], nil
}

// Remove deletes the reminder with the given ID. When the last reminder
// goes, the origin's store entry goes with it.
func (r *Repository) Remove(ctx context.Context, originKey, id string) error {
	if originKey == "" {
		return ErrNoOrigin
	}

	lk := r.originLock(originKey)
	lk.Lock()
	defer lk.Unlock()

	list, err := r.load(ctx, originKey)
	if err != nil {
		return fmt.Errorf("read reminders: %w", err)
	}
	idx := indexByID(list, id)
	if idx < 0 {
		return ErrNotFound
	}

	list = append(list[:idx], list[idx+1:]...)
	if err := r.save(ctx, originKey, list); err != nil {
		return err
	}
	r.notify(originKey)
	return nil
}

// ClearAll drops the origin's entire store entry. Clearing an origin
// with no entry is a logged no-op.
func (r *Repository) ClearAll(ctx context.Context, originKey string) error {
	if originKey == "" {
		return ErrNoOrigin
	}

	lk := r.originLock(originKey)
	lk.Lock()
	defer lk.Unlock()

	_, ok, err := r.store.Get(ctx, originKey)
	if err != nil {
		return fmt.Errorf("read reminders: %w", err)
	}
	if !ok {
		r.log.Info("no reminders to clear", "origin", originKey)
		return nil
	}
	if err := r.store.Remove(ctx, originKey); err != nil {
		return fmt.Errorf("clear reminders: %w", err)
	}
	r.notify(originKey)
	return nil
}

// FindByText returns the first reminder whose text matches exactly.
// Text is unique within an origin on add, so at most one can match.
func (r *Repository) FindByText(ctx context.Context, originKey, text string) (Reminder, bool) {
	for _, rem := range r.List(ctx, originKey) {
		if rem.Text == text {
			return rem, true
		}
	}
	return Reminder{}, false
}

func (r *Repository) validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	switch {
	case len([]rune(text)) < MinLength:
		return "", ErrTooShort
	case len([]rune(text)) > r.maxLen:
		return "", ErrTooLong
	}
	return text, nil
}

func (r *Repository) load(ctx context.Context, originKey string) ([]Reminder, error) {
	raw, ok, err := r.store.Get(ctx, originKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var list []Reminder
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return list, nil
}

func (r *Repository) save(ctx context.Context, originKey string, list []Reminder) error {
	if len(list) == 0 {
		if err := r.store.Remove(ctx, originKey); err != nil {
			return fmt.Errorf("write reminders: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}
	if err := r.store.Set(ctx, originKey, raw); err != nil {
		return fmt.Errorf("write reminders: %w", err)
	}
	return nil
}

func indexByID(list []Reminder, id string) int {
	for i, rem := range list {
		if rem.ID == id {
			return i
		}
	}
	return -1
}
