package memory

import (
	"context"
	"sync"

	"gmail-reaper/internal/model"
	"gmail-reaper/internal/repository"
)

type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.users[user.ID]
	if !exists {
		return repository.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.users, id)
	return nil
}

// Prompt repository implementation
type InMemoryPromptRepository struct {
	prompts map[string]*model.Prompt // keyed by user ID
	order   []string                 // insertion order for FindFirst
	mutex   sync.RWMutex
}

func NewInMemoryPromptRepository() *InMemoryPromptRepository {
	return &InMemoryPromptRepository{
		prompts: make(map[string]*model.Prompt),
	}
}

func (r *InMemoryPromptRepository) Upsert(ctx context.Context, prompt *model.Prompt) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.prompts[prompt.UserID]; !exists {
		r.order = append(r.order, prompt.UserID)
	}
	r.prompts[prompt.UserID] = prompt
	return nil
}

func (r *InMemoryPromptRepository) FindByUserID(ctx context.Context, userID string) (*model.Prompt, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prompt, exists := r.prompts[userID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return prompt, nil
}

func (r *InMemoryPromptRepository) FindFirst(ctx context.Context) (*model.Prompt, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(r.order) == 0 {
		return nil, repository.ErrNotFound
	}
	return r.prompts[r.order[0]], nil
}

func (r *InMemoryPromptRepository) Delete(ctx context.Context, userID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.prompts[userID]; !exists {
		return repository.ErrNotFound
	}
	delete(r.prompts, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
