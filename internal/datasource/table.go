package datasource

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/set-night/travelhub/internal/store"
)

// table is a JSON list persisted under one store key. Ids are strings; new ids
// are one past the largest numeric id already present.
type table[T any] struct {
	store store.Store
	key   string
	id    func(*T) *string
	// onCreate fills defaults on a new record before it is stored.
	onCreate func(*T)
	mu       sync.Mutex
}

func (t *table[T]) all(ctx context.Context) ([]T, error) {
	return store.ReadList[T](ctx, t.store, t.key)
}

func (t *table[T]) find(ctx context.Context, id string) (*T, error) {
	list, err := t.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if *t.id(&list[i]) == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (t *table[T]) create(ctx context.Context, item T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.all(ctx)
	if err != nil {
		return nil, err
	}
	*t.id(&item) = nextID(list, t.id)
	if t.onCreate != nil {
		t.onCreate(&item)
	}
	list = append(list, item)
	if err := store.WriteList(ctx, t.store, t.key, list); err != nil {
		return nil, err
	}
	return &item, nil
}

// update merges patch over the stored record; it returns nil when id is unknown.
func (t *table[T]) update(ctx context.Context, id string, patch Patch) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if *t.id(&list[i]) != id {
			continue
		}
		merged, err := applyPatch(list[i], patch)
		if err != nil {
			return nil, err
		}
		*t.id(&merged) = id
		list[i] = merged
		if err := store.WriteList(ctx, t.store, t.key, list); err != nil {
			return nil, err
		}
		return &merged, nil
	}
	return nil, nil
}

func (t *table[T]) delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.all(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(list, func(item T) bool { return *t.id(&item) == id })
	return store.WriteList(ctx, t.store, t.key, kept)
}

func (t *table[T]) replaceAll(ctx context.Context, list []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return store.WriteList(ctx, t.store, t.key, list)
}

func nextID[T any](list []T, id func(*T) *string) string {
	maxID := 0
	for i := range list {
		if n, err := strconv.Atoi(*id(&list[i])); err == nil {
			maxID = max(maxID, n)
		}
	}
	return strconv.Itoa(maxID + 1)
}

// applyPatch overlays patch onto item through their JSON forms.
func applyPatch[T any](item T, patch Patch) (T, error) {
	var out T
	raw, err := json.Marshal(item)
	if err != nil {
		return out, fmt.Errorf("marshal record: %w", err)
	}
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return out, fmt.Errorf("unmarshal record: %w", err)
	}
	for k, v := range patch {
		fields[k] = v
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("marshal patched record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}

func sortBy[T any, K cmp.Ordered](list []T, desc bool, key func(*T) K) {
	slices.SortStableFunc(list, func(a, b T) int {
		c := cmp.Compare(key(&a), key(&b))
		if desc {
			return -c
		}
		return c
	})
}

// parseSort splits "-created_date" style orderings into field and direction.
func parseSort(order string) (field string, desc bool) {
	if len(order) > 0 && order[0] == '-' {
		return order[1:], true
	}
	return order, false
}
