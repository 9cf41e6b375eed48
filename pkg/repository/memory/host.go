package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type hostRepository struct {
	mu       sync.RWMutex
	hosts    map[types.HostID]*model.AIHost
	byUserID map[types.UserID]types.HostID
}

func newHostRepository() *hostRepository {
	return &hostRepository{
		hosts:    make(map[types.HostID]*model.AIHost),
		byUserID: make(map[types.UserID]types.HostID),
	}
}

func copyHost(h *model.AIHost) *model.AIHost {
	copied := *h
	return &copied
}

func (r *hostRepository) Create(ctx context.Context, host *model.AIHost) (*model.AIHost, error) {
	if host.UserID == "" {
		return nil, goerr.New("host user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUserID[host.UserID]; exists {
		return nil, goerr.New("host already exists for user", goerr.V("userID", host.UserID))
	}

	created := copyHost(host)
	if created.ID == "" {
		created.ID = types.NewHostID()
	}
	created.CreatedAt = time.Now().UTC()

	r.hosts[created.ID] = created
	r.byUserID[created.UserID] = created.ID
	return copyHost(created), nil
}

func (r *hostRepository) Get(ctx context.Context, id types.HostID) (*model.AIHost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	host, exists := r.hosts[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "host not found", goerr.V("id", id))
	}

	return copyHost(host), nil
}

func (r *hostRepository) GetByUserID(ctx context.Context, userID types.UserID) (*model.AIHost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hostID, exists := r.byUserID[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "host not found for user", goerr.V("userID", userID))
	}

	return copyHost(r.hosts[hostID]), nil
}

func (r *hostRepository) List(ctx context.Context) ([]*model.AIHost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.AIHost, 0, len(r.hosts))
	for _, h := range r.hosts {
		result = append(result, copyHost(h))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
