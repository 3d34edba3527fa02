// Package staticrepo provides the static in-memory client registry. Clients
// are loaded once at construction, either from a JSON file or from a literal
// slice, and never change afterwards.
package staticrepo

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/pkg/errors"
)

var _ clients.Repo = (*StaticClientRepo)(nil)

type StaticClientRepo struct {
	clients map[string]*clients.Client
}

// New creates a registry from a literal client slice.
func New(clientList []clients.Client) *StaticClientRepo {
	r := &StaticClientRepo{clients: make(map[string]*clients.Client)}
	for i := range clientList {
		c := clientList[i]
		r.clients[c.ID] = &c
	}
	return r
}

// NewFromFile creates a registry from a JSON file containing an array of
// client records.
func NewFromFile(path string) (*StaticClientRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[staticrepo.NewFromFile] read clients file")
	}
	var clientList []clients.Client
	if err := json.Unmarshal(data, &clientList); err != nil {
		return nil, errors.Wrap(err, "[staticrepo.NewFromFile] parse clients file")
	}
	return New(clientList), nil
}

func (r *StaticClientRepo) Get(clientID string) (*clients.Client, error) {
	client, ok := r.clients[clientID]
	if !ok {
		return nil, clients.ErrNotFound
	}
	// Return a copy to prevent external modifications
	c := *client
	return &c, nil
}

func (r *StaticClientRepo) List() ([]*clients.Client, error) {
	list := make([]*clients.Client, 0, len(r.clients))
	for _, client := range r.clients {
		c := *client
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}
