package handler

import (
	"context"
	"sort"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/repository"
)

// In-memory store fakes backing the router tests. They reproduce the
// admission semantics of the pgx repositories closely enough to drive the
// HTTP layer end to end without a database.

type memUserStore struct {
	nextID int64
	users  map[int64]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: map[int64]*model.User{}}
}

func (s *memUserStore) put(u model.User) *model.User {
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	return &u
}

func (s *memUserStore) Create(_ context.Context, email, hashedPassword, fullName, phone string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	u := model.User{
		Email: email, HashedPassword: hashedPassword, FullName: fullName,
		Role: model.RoleUser, IsActive: true, IsApproved: true,
	}
	if phone != "" {
		u.Phone = &phone
	}
	return s.put(u), nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) List(_ context.Context, skip, limit int) ([]model.User, error) {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.User
	for i, id := range ids {
		if i < skip || len(out) >= limit {
			continue
		}
		out = append(out, *s.users[id])
	}
	return out, nil
}

func (s *memUserStore) ListPendingManagers(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range s.users {
		if u.Role == model.RoleManager && !u.IsApproved {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memUserStore) UpdateProfile(_ context.Context, id int64, req model.UpdateProfileRequest) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.AboutMe != nil {
		u.AboutMe = req.AboutMe
	}
	if req.City != nil {
		u.City = req.City
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) RequestUpgrade(_ context.Context, id int64, req model.UpgradeRequest) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = model.RoleManager
	u.IsApproved = false
	u.IsCompany = req.IsCompany
	if req.AdditionalDetails != "" {
		u.AdditionalDetails = &req.AdditionalDetails
	}
	if req.IDProofURL != "" {
		u.IDProofURL = &req.IDProofURL
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) ApproveManager(_ context.Context, id int64, comment *string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsApproved = true
	u.RejectionReason = nil
	u.AdminComment = comment
	copied := *u
	return &copied, nil
}

func (s *memUserStore) RejectManager(_ context.Context, id int64, reason string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsApproved = false
	u.RejectionReason = &reason
	u.AdminComment = nil
	copied := *u
	return &copied, nil
}

func (s *memUserStore) Deactivate(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsActive = false
	copied := *u
	return &copied, nil
}

type memEventStore struct {
	nextID int64
	events map[int64]*model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{nextID: 1, events: map[int64]*model.Event{}}
}

func (s *memEventStore) Create(_ context.Context, organizerID int64, req model.CreateEventRequest) (*model.Event, error) {
	e := model.Event{
		ID: s.nextID, Title: req.Title, Description: req.Description,
		StartTime: req.StartTime, EndTime: req.EndTime, Location: req.Location,
		EventType: req.EventType, Capacity: req.Capacity,
		Status: model.EventPublished, IsActive: true, OrganizerID: organizerID,
	}
	s.nextID++
	s.events[e.ID] = &e
	copied := e
	return &copied, nil
}

func (s *memEventStore) ListPublished(_ context.Context, skip, limit int) ([]model.Event, error) {
	ids := make([]int64, 0, len(s.events))
	for id, e := range s.events {
		if e.Status == model.EventPublished {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.Event
	for i, id := range ids {
		if i < skip || len(out) >= limit {
			continue
		}
		out = append(out, *s.events[id])
	}
	return out, nil
}

func (s *memEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *memEventStore) Update(_ context.Context, id int64, req model.UpdateEventRequest) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Capacity != nil {
		e.Capacity = *req.Capacity
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	copied := *e
	return &copied, nil
}

func (s *memEventStore) Deactivate(_ context.Context, id int64) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.IsActive = false
	copied := *e
	return &copied, nil
}

func (s *memEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type memRegistrationStore struct {
	nextID int64
	regs   map[int64]*model.Registration
	events *memEventStore
}

func newMemRegistrationStore(events *memEventStore) *memRegistrationStore {
	return &memRegistrationStore{nextID: 1, regs: map[int64]*model.Registration{}, events: events}
}

func (s *memRegistrationStore) approvedCount(eventID, exclude int64) int {
	n := 0
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.Status == model.RegistrationApproved && reg.ID != exclude {
			n++
		}
	}
	return n
}

func (s *memRegistrationStore) Register(_ context.Context, eventID, userID int64) (*model.Registration, error) {
	event, ok := s.events.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if event.OrganizerID == userID {
		return nil, repository.ErrOwnEvent
	}
	if s.approvedCount(eventID, 0) >= event.Capacity {
		return nil, repository.ErrCapacityExceeded
	}
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			return nil, repository.ErrAlreadyRegistered
		}
	}
	reg := model.Registration{
		ID: s.nextID, UserID: userID, EventID: eventID,
		Status:         model.RegistrationPending,
		ConfirmationID: repository.NewConfirmationID(eventID),
	}
	s.nextID++
	s.regs[reg.ID] = &reg
	copied := reg
	return &copied, nil
}

func (s *memRegistrationStore) Approve(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status == model.RegistrationCancelled {
		return nil, repository.ErrRegistrationClosed
	}
	event := s.events.events[reg.EventID]
	if s.approvedCount(reg.EventID, id) >= event.Capacity {
		return nil, repository.ErrCapacityExceeded
	}
	reg.Status = model.RegistrationApproved
	reg.RejectionReason = nil
	copied := *reg
	return &copied, nil
}

func (s *memRegistrationStore) Reject(_ context.Context, id int64, reason string) (*model.Registration, error) {
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status == model.RegistrationCancelled {
		return nil, repository.ErrRegistrationClosed
	}
	reg.Status = model.RegistrationRejected
	reg.RejectionReason = &reason
	copied := *reg
	return &copied, nil
}

func (s *memRegistrationStore) Cancel(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status != model.RegistrationPending && reg.Status != model.RegistrationApproved {
		return nil, repository.ErrNotFound
	}
	reg.Status = model.RegistrationCancelled
	copied := *reg
	return &copied, nil
}

func (s *memRegistrationStore) GetByID(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *reg
	return &copied, nil
}

func (s *memRegistrationStore) ListByEvent(_ context.Context, eventID int64) ([]model.Registration, error) {
	var out []model.Registration
	for _, reg := range s.regs {
		if reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (s *memRegistrationStore) ListByUser(_ context.Context, userID int64) ([]model.Registration, error) {
	var out []model.Registration
	for _, reg := range s.regs {
		if reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}
