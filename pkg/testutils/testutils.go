// Package testutils provides in-memory fakes for the persistence and gateway
// contracts so service behavior can be tested without Postgres or network.
package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// MemoryUoW is an in-memory repository.UnitOfWork. Do is not transactional:
// tests that assert rollback behavior should check that the failing path does
// not write at all.
type MemoryUoW struct {
	mu            sync.Mutex
	Users         map[uuid.UUID]*domain.User
	Transactions  map[int64]*domain.Transaction
	Beneficiaries map[int64]*domain.Beneficiary
}

// NewMemoryUoW creates an empty in-memory store.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		Users:         make(map[uuid.UUID]*domain.User),
		Transactions:  make(map[int64]*domain.Transaction),
		Beneficiaries: make(map[int64]*domain.Beneficiary),
	}
}

// AddUser seeds a user and returns it.
func (m *MemoryUoW) AddUser(u *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.Users[u.ID] = &cp
	return u
}

// Do runs fn against the same store.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

// UserRepository returns the in-memory user repository.
func (m *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	return &memoryUserRepo{store: m}, nil
}

// TransactionRepository returns the in-memory transaction repository.
func (m *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memoryTransactionRepo{store: m}, nil
}

// BeneficiaryRepository returns the in-memory beneficiary repository.
func (m *MemoryUoW) BeneficiaryRepository() (repository.BeneficiaryRepository, error) {
	return &memoryBeneficiaryRepo{store: m}, nil
}

type memoryUserRepo struct {
	store *MemoryUoW
}

func (r *memoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *u
	r.store.Users[u.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) Update(ctx context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.Users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	existing.Email = u.Email
	existing.Password = u.Password
	existing.FirstName = u.FirstName
	existing.LastName = u.LastName
	existing.Phone = u.Phone
	return nil
}

func (r *memoryUserRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Balance = balance
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.Users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.Users, id)
	for bid, b := range r.store.Beneficiaries {
		if b.UserID == id {
			delete(r.store.Beneficiaries, bid)
		}
	}
	return nil
}

type memoryTransactionRepo struct {
	store *MemoryUoW
}

func (r *memoryTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.Transactions {
		if existing.Reference == t.Reference {
			return domain.ErrDuplicateReference
		}
	}
	cp := *t
	r.store.Transactions[t.ID] = &cp
	return nil
}

func (r *memoryTransactionRepo) Upsert(ctx context.Context, t *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.Transactions[t.ID]; ok {
		existing.Status = t.Status
		existing.Amount = t.Amount
		existing.Currency = t.Currency
		existing.Narration = t.Narration
		return nil
	}
	cp := *t
	r.store.Transactions[t.ID] = &cp
	return nil
}

func (r *memoryTransactionRepo) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.Transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = status
	return nil
}

func (r *memoryTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTransactionRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryTransactionRepo) GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.Transactions[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Transaction, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var all []domain.Transaction
	for _, t := range r.store.Transactions {
		if t.UserID == userID {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type memoryBeneficiaryRepo struct {
	store *MemoryUoW
}

func (r *memoryBeneficiaryRepo) Create(ctx context.Context, b *domain.Beneficiary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *b
	r.store.Beneficiaries[b.ID] = &cp
	return nil
}

func (r *memoryBeneficiaryRepo) GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Beneficiary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.Beneficiaries[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBeneficiaryNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryBeneficiaryRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Beneficiary, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var all []domain.Beneficiary
	for _, b := range r.store.Beneficiaries {
		if b.UserID == userID {
			all = append(all, *b)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memoryBeneficiaryRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.Beneficiaries[id]; !ok {
		return domain.ErrBeneficiaryNotFound
	}
	delete(r.store.Beneficiaries, id)
	return nil
}
