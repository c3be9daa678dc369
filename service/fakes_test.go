package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)
	return l
}

type memUserRepo struct {
	users map[uuid.UUID]*dmn.User
	sync.Mutex
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.Lock()
	defer r.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

type memResultRepo struct {
	saved []*dmn.RoundResult
	err   error
	sync.Mutex
}

func (r *memResultRepo) Save(result *dmn.RoundResult) error {
	r.Lock()
	defer r.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, result)
	return nil
}

func (r *memResultRepo) ByUser(userID uuid.UUID, limit int64) ([]*dmn.RoundResult, error) {
	r.Lock()
	defer r.Unlock()
	var out []*dmn.RoundResult
	for idx := len(r.saved) - 1; idx >= 0 && int64(len(out)) < limit; idx-- {
		if r.saved[idx].UserID == userID {
			out = append(out, r.saved[idx])
		}
	}
	return out, nil
}

type memSortedStore struct {
	sets map[string]map[string]float64
	sync.Mutex
}

func newMemSortedStore() *memSortedStore {
	return &memSortedStore{sets: make(map[string]map[string]float64)}
}

func (s *memSortedStore) SetIfLower(_ context.Context, key, member string, score float64) (bool, error) {
	s.Lock()
	defer s.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]float64)
		s.sets[key] = set
	}
	if old, ok := set[member]; ok && old <= score {
		return false, nil
	}
	set[member] = score
	return true, nil
}

func (s *memSortedStore) Lowest(_ context.Context, key string, n int64) ([]dmn.ScoredMember, error) {
	s.Lock()
	defer s.Unlock()
	var members []dmn.ScoredMember
	for m, score := range s.sets[key] {
		members = append(members, dmn.ScoredMember{Member: m, Score: score})
	}
	sort.Slice(members, func(a, b int) bool { return members[a].Score < members[b].Score })
	if int64(len(members)) > n {
		members = members[:n]
	}
	return members, nil
}
