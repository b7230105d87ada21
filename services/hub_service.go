package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"

	"myapp/models"
)

var ErrHubStopped = errors.New("hub stopped")

// Member is a registered push channel that can receive group-wide messages.
type Member interface {
	ID() string
	Deliver(message []byte) error
}

// GroupRegistry tracks which channels belong to which named broadcast group.
type GroupRegistry interface {
	Add(ctx context.Context, group string, member Member) error
	Discard(ctx context.Context, group string, member Member) error
	Members(ctx context.Context, group string) ([]string, error)
	Broadcast(ctx context.Context, group string, message models.PushMessage) (int, error)
}

type subscription struct {
	group  string
	member Member
}

type membersQuery struct {
	group string
	reply chan []Member
}

// HubService is the in-process group registry. A single Run loop owns the
// membership map; every other method talks to it over channels.
type HubService struct {
	groups     map[string]map[string]Member
	register   chan subscription
	unregister chan subscription
	query      chan membersQuery
	quit       chan struct{}
}

func NewHubService() *HubService {
	service := &HubService{
		groups:     make(map[string]map[string]Member),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		query:      make(chan membersQuery),
		quit:       make(chan struct{}),
	}

	go service.Run()

	return service
}

func (h *HubService) Run() {
	for {
		select {
		case sub := <-h.register:
			h.registerMember(sub)

		case sub := <-h.unregister:
			h.unregisterMember(sub)

		case q := <-h.query:
			q.reply <- h.snapshot(q.group)

		case <-h.quit:
			return
		}
	}
}

// Stop ends the Run loop; later calls fail with ErrHubStopped.
func (h *HubService) Stop() {
	select {
	case <-h.quit:
	default:
		close(h.quit)
	}
}

func (h *HubService) registerMember(sub subscription) {
	members, ok := h.groups[sub.group]
	if !ok {
		members = make(map[string]Member)
		h.groups[sub.group] = members
	}
	members[sub.member.ID()] = sub.member
}

func (h *HubService) unregisterMember(sub subscription) {
	members, ok := h.groups[sub.group]
	if !ok {
		return
	}
	if _, ok := members[sub.member.ID()]; ok {
		delete(members, sub.member.ID())
		if len(members) == 0 {
			delete(h.groups, sub.group)
		}
	}
}

func (h *HubService) snapshot(group string) []Member {
	members := make([]Member, 0, len(h.groups[group]))
	for _, m := range h.groups[group] {
		members = append(members, m)
	}
	return members
}

func (h *HubService) send(ctx context.Context, ch chan subscription, sub subscription) error {
	select {
	case ch <- sub:
		return nil
	case <-h.quit:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *HubService) Add(ctx context.Context, group string, member Member) error {
	return h.send(ctx, h.register, subscription{group: group, member: member})
}

func (h *HubService) Discard(ctx context.Context, group string, member Member) error {
	return h.send(ctx, h.unregister, subscription{group: group, member: member})
}

func (h *HubService) members(ctx context.Context, group string) ([]Member, error) {
	q := membersQuery{group: group, reply: make(chan []Member, 1)}
	select {
	case h.query <- q:
	case <-h.quit:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return <-q.reply, nil
}

// Members returns the sorted ids registered in group.
func (h *HubService) Members(ctx context.Context, group string) ([]string, error) {
	members, err := h.members(ctx, group)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID())
	}
	sort.Strings(ids)
	return ids, nil
}

// Broadcast delivers message to every member of group. Members that fail to
// accept it are dropped from the group. Returns the number of deliveries.
func (h *HubService) Broadcast(ctx context.Context, group string, message models.PushMessage) (int, error) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return 0, err
	}

	members, err := h.members(ctx, group)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, m := range members {
		if err := m.Deliver(messageBytes); err != nil {
			log.Printf("Dropping channel %s from group %s: %v", m.ID(), group, err)
			_ = h.Discard(ctx, group, m)
			continue
		}
		delivered++
	}
	return delivered, nil
}
