package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Значения пагинации по умолчанию
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Entity is a resource with a server-assigned immutable id
type Entity interface {
	GetID() int64
}

// ResourceAPI is the CRUD capability of one collection.
// Implemented by *api.Resource.
type ResourceAPI[T any, In any] interface {
	Name() string
	List(ctx context.Context, q pkgapi.ListQuery) (*pkgapi.ListResponse[T], error)
	ListDeleted(ctx context.Context) (*pkgapi.ListResponse[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	ForceDelete(ctx context.Context, id int64) error
}

// Validator checks an input before it is sent. create is false for partial updates.
type Validator[In any] func(in In, create bool) error

// State is a snapshot of one collection
type State[T any] struct {
	Err     *Error
	Items   []T
	Deleted []T
	// Filters holds search/sort/direction/status of the last fetch. Page fields are unused.
	Filters pkgapi.ListQuery
	Total   int
	Page    int
	PerPage int
	Loading bool
}

// Store отслеживает одну коллекцию: элементы, пагинацию, загрузку и последнюю ошибку.
// Запросы не ставятся в очередь и не дедуплицируются: при двух одновременных FetchAll
// в состоянии остается ответ, пришедший последним.
type Store[T Entity, In any] struct {
	api      ResourceAPI[T, In]
	validate Validator[In]
	logger   *slog.Logger
	singular string
	state    State[T]
	mu       sync.RWMutex
}

// New создает хранилище коллекции. singular используется в сообщениях об ошибках ("post").
func New[T Entity, In any](api ResourceAPI[T, In], singular string, validate Validator[In], logger *slog.Logger) *Store[T, In] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T, In]{
		api:      api,
		validate: validate,
		logger:   logger.With("resource", api.Name()),
		singular: singular,
		state: State[T]{
			Page:    DefaultPage,
			PerPage: DefaultPerPage,
		},
	}
}

// Name returns the collection name
func (s *Store[T, In]) Name() string {
	return s.api.Name()
}

// State returns a copy of the current state
func (s *Store[T, In]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Items = slices.Clone(s.state.Items)
	st.Deleted = slices.Clone(s.state.Deleted)
	return st
}

// Items returns a copy of the loaded items
func (s *Store[T, In]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Items)
}

// Err returns the error of the last failed operation, nil if the last one succeeded
func (s *Store[T, In]) Err() *Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Err
}

// FetchAll загружает страницу коллекции. Page и PerPage из q (если заданы) запоминаются;
// фильтры из q заменяют сохраненные. При q == nil используются сохраненные значения.
// При ошибке прежние Items не меняются.
func (s *Store[T, In]) FetchAll(ctx context.Context, q *pkgapi.ListQuery) error {
	s.mu.Lock()
	if q != nil {
		if q.Page > 0 {
			s.state.Page = q.Page
		}
		if q.PerPage > 0 {
			s.state.PerPage = q.PerPage
		}
		s.state.Filters = pkgapi.ListQuery{
			Search:    q.Search,
			Sort:      q.Sort,
			Direction: q.Direction,
			Status:    q.Status,
		}
	}
	query := s.state.Filters
	query.Page = s.state.Page
	query.PerPage = s.state.PerPage
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()

	resp, err := s.api.List(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false

	if err != nil {
		return s.failLocked(ctx, "fetch", fmt.Sprintf("Failed to fetch %s.", s.api.Name()), err)
	}

	s.state.Items = resp.Data
	s.state.Total = resp.Total
	return nil
}

// ChangePage загружает страницу n с текущим размером страницы
func (s *Store[T, In]) ChangePage(ctx context.Context, n int) error {
	if n < 1 {
		n = DefaultPage
	}
	return s.FetchAll(ctx, s.queryWith(func(q *pkgapi.ListQuery) { q.Page = n }))
}

// ChangePerPage меняет размер страницы и возвращается на первую страницу
func (s *Store[T, In]) ChangePerPage(ctx context.Context, n int) error {
	if n < 1 {
		n = DefaultPerPage
	}
	return s.FetchAll(ctx, s.queryWith(func(q *pkgapi.ListQuery) {
		q.Page = DefaultPage
		q.PerPage = n
	}))
}

func (s *Store[T, In]) queryWith(fn func(q *pkgapi.ListQuery)) *pkgapi.ListQuery {
	s.mu.RLock()
	q := s.state.Filters
	s.mu.RUnlock()
	fn(&q)
	return &q
}

// FetchOne загружает один элемент. Items не меняются.
func (s *Store[T, In]) FetchOne(ctx context.Context, id int64) (*T, error) {
	s.clearErr()

	item, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "fetch one", fmt.Sprintf("Failed to fetch %s.", s.singular), err)
	}
	return item, nil
}

// Create создает элемент и добавляет его в начало Items без повторной загрузки
func (s *Store[T, In]) Create(ctx context.Context, in In) (*T, error) {
	s.clearErr()

	if s.validate != nil {
		if err := s.validate(in, true); err != nil {
			return nil, s.fail(ctx, "create", fmt.Sprintf("Failed to create %s.", s.singular), err)
		}
	}

	created, err := s.api.Create(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, "create", fmt.Sprintf("Failed to create %s.", s.singular), err)
	}

	s.prepend(*created)
	return created, nil
}

// Update обновляет элемент и заменяет его в Items по id.
// Если элемента нет среди загруженных, Items не меняются.
func (s *Store[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	s.clearErr()

	if s.validate != nil {
		if err := s.validate(in, false); err != nil {
			return nil, s.fail(ctx, "update", fmt.Sprintf("Failed to update %s.", s.singular), err)
		}
	}

	updated, err := s.api.Update(ctx, id, in)
	if err != nil {
		return nil, s.fail(ctx, "update", fmt.Sprintf("Failed to update %s.", s.singular), err)
	}

	s.Merge(*updated)
	return updated, nil
}

// SoftDelete переносит элемент в удаленные и убирает его из Items
func (s *Store[T, In]) SoftDelete(ctx context.Context, id int64) error {
	s.clearErr()

	if err := s.api.SoftDelete(ctx, id); err != nil {
		return s.fail(ctx, "delete", fmt.Sprintf("Failed to delete %s.", s.singular), err)
	}

	s.mu.Lock()
	s.state.Items = removeOne(s.state.Items, id)
	s.mu.Unlock()
	return nil
}

// Restore восстанавливает элемент и перезагружает список удаленных
func (s *Store[T, In]) Restore(ctx context.Context, id int64) error {
	s.clearErr()

	if err := s.api.Restore(ctx, id); err != nil {
		return s.fail(ctx, "restore", fmt.Sprintf("Failed to restore %s.", s.singular), err)
	}

	return s.FetchDeleted(ctx)
}

// ForceDelete удаляет элемент безвозвратно
func (s *Store[T, In]) ForceDelete(ctx context.Context, id int64) error {
	s.clearErr()

	if err := s.api.ForceDelete(ctx, id); err != nil {
		return s.fail(ctx, "force delete", fmt.Sprintf("Failed to permanently delete %s.", s.singular), err)
	}

	s.mu.Lock()
	s.state.Items = removeOne(s.state.Items, id)
	s.state.Deleted = removeOne(s.state.Deleted, id)
	s.mu.Unlock()
	return nil
}

// FetchDeleted загружает список мягко удаленных элементов
func (s *Store[T, In]) FetchDeleted(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()

	resp, err := s.api.ListDeleted(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false

	if err != nil {
		return s.failLocked(ctx, "fetch deleted", fmt.Sprintf("Failed to fetch deleted %s.", s.api.Name()), err)
	}

	s.state.Deleted = resp.Data
	return nil
}

// Merge заменяет загруженный элемент с тем же id. Отсутствующий элемент не добавляется.
func (s *Store[T, In]) Merge(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.Items, func(v T) bool { return v.GetID() == item.GetID() })
	if i < 0 {
		return
	}
	items := slices.Clone(s.state.Items)
	items[i] = item
	s.state.Items = items
}

// prepend добавляет элемент в начало; запись с тем же id (если была) убирается
func (s *Store[T, In]) prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]T, 0, len(s.state.Items)+1)
	items = append(items, item)
	for _, v := range s.state.Items {
		if v.GetID() != item.GetID() {
			items = append(items, v)
		}
	}
	s.state.Items = items
}

func (s *Store[T, In]) clearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = nil
}

func (s *Store[T, In]) fail(ctx context.Context, op, defaultMsg string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failLocked(ctx, op, defaultMsg, err)
}

// failLocked записывает ошибку в состояние; вызывается под s.mu
func (s *Store[T, In]) failLocked(ctx context.Context, op, defaultMsg string, err error) error {
	e := newError(op, defaultMsg, err)
	s.state.Err = e
	s.logger.WarnContext(ctx, "store operation failed", "op", op, "error", err)
	return e
}

// removeOne убирает первый элемент с данным id и возвращает новый срез
func removeOne[T Entity](items []T, id int64) []T {
	i := slices.IndexFunc(items, func(v T) bool { return v.GetID() == id })
	if i < 0 {
		return items
	}
	return slices.Delete(slices.Clone(items), i, i+1)
}
