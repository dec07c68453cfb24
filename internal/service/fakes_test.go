package service

import (
	"context"
	"time"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/repository"
)

// In-memory store fakes mirroring the repository contracts, including the
// admission checks the pgx implementation runs inside its transactions.

type memUserStore struct {
	seq   int64
	users map[int64]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, email, hashedPassword, fullName, phone string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	s.seq++
	u := &model.User{
		ID:             s.seq,
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		Role:           model.RoleUser,
		IsActive:       true,
		IsApproved:     true,
	}
	if phone != "" {
		u.Phone = &phone
	}
	s.users[u.ID] = u
	return copyUser(u), nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *memUserStore) List(_ context.Context, skip, limit int) ([]model.User, error) {
	var out []model.User
	for id := int64(1); id <= s.seq; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, *copyUser(u))
		}
	}
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memUserStore) ListPendingManagers(_ context.Context) ([]model.User, error) {
	var out []model.User
	for id := int64(1); id <= s.seq; id++ {
		if u, ok := s.users[id]; ok && u.Role == model.RoleManager && !u.IsApproved {
			out = append(out, *copyUser(u))
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
	applyIfSet(&u.Phone, req.Phone)
	applyIfSet(&u.City, req.City)
	applyIfSet(&u.State, req.State)
	applyIfSet(&u.Country, req.Country)
	applyIfSet(&u.LinkedinURL, req.LinkedinURL)
	applyIfSet(&u.YoutubeURL, req.YoutubeURL)
	applyIfSet(&u.FacebookURL, req.FacebookURL)
	applyIfSet(&u.TwitterURL, req.TwitterURL)
	applyIfSet(&u.InstagramURL, req.InstagramURL)
	applyIfSet(&u.AboutMe, req.AboutMe)
	applyIfSet(&u.Gender, req.Gender)
	applyIfSet(&u.DOB, req.DOB)
	return copyUser(u), nil
}

func (s *memUserStore) RequestUpgrade(_ context.Context, id int64, req model.UpgradeRequest) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = model.RoleManager
	u.IsApproved = false
	u.IsCompany = req.IsCompany
	u.AdditionalDetails = &req.AdditionalDetails
	u.IDProofURL = &req.IDProofURL
	return copyUser(u), nil
}

func (s *memUserStore) ApproveManager(_ context.Context, id int64, comment *string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsApproved = true
	u.RejectionReason = nil
	u.AdminComment = comment
	return copyUser(u), nil
}

func (s *memUserStore) RejectManager(_ context.Context, id int64, reason string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsApproved = false
	u.RejectionReason = &reason
	u.AdminComment = nil
	return copyUser(u), nil
}

func (s *memUserStore) Deactivate(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsActive = false
	return copyUser(u), nil
}

type memEventStore struct {
	seq    int64
	events map[int64]*model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: make(map[int64]*model.Event)}
}

func (s *memEventStore) Create(_ context.Context, organizerID int64, req model.CreateEventRequest) (*model.Event, error) {
	s.seq++
	e := &model.Event{
		ID:          s.seq,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		EventType:   req.EventType,
		Capacity:    req.Capacity,
		Status:      model.EventPublished,
		IsActive:    true,
		OrganizerID: organizerID,
	}
	s.events[e.ID] = e
	out := *e
	return &out, nil
}

func (s *memEventStore) ListPublished(_ context.Context, skip, limit int) ([]model.Event, error) {
	var out []model.Event
	for id := int64(1); id <= s.seq; id++ {
		if e, ok := s.events[id]; ok && e.Status == model.EventPublished {
			out = append(out, *e)
		}
	}
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *e
	return &out, nil
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
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.Capacity != nil {
		e.Capacity = *req.Capacity
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	out := *e
	return &out, nil
}

func (s *memEventStore) Deactivate(_ context.Context, id int64) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.IsActive = false
	out := *e
	return &out, nil
}

func (s *memEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type memRegistrationStore struct {
	seq           int64
	registrations map[int64]*model.Registration
	events        *memEventStore
}

func newMemRegistrationStore(events *memEventStore) *memRegistrationStore {
	return &memRegistrationStore{
		registrations: make(map[int64]*model.Registration),
		events:        events,
	}
}

func (s *memRegistrationStore) approvedCount(eventID int64, exclude int64) int {
	n := 0
	for _, reg := range s.registrations {
		if reg.EventID == eventID && reg.Status == model.RegistrationApproved && reg.ID != exclude {
			n++
		}
	}
	return n
}

func (s *memRegistrationStore) Register(_ context.Context, eventID, userID int64) (*model.Registration, error) {
	e, ok := s.events.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if userID == e.OrganizerID {
		return nil, repository.ErrOwnEvent
	}
	if s.approvedCount(eventID, 0) >= e.Capacity {
		return nil, repository.ErrCapacityExceeded
	}
	for _, reg := range s.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			return nil, repository.ErrAlreadyRegistered
		}
	}

	confirmation := repository.NewConfirmationID(eventID)
	for s.confirmationTaken(confirmation) {
		confirmation = repository.NewConfirmationID(eventID)
	}

	s.seq++
	reg := &model.Registration{
		ID:               s.seq,
		UserID:           userID,
		EventID:          eventID,
		Status:           model.RegistrationPending,
		RegistrationDate: time.Now().UTC(),
		ConfirmationID:   confirmation,
	}
	s.registrations[reg.ID] = reg
	out := *reg
	return &out, nil
}

func (s *memRegistrationStore) confirmationTaken(id string) bool {
	for _, reg := range s.registrations {
		if reg.ConfirmationID == id {
			return true
		}
	}
	return false
}

func (s *memRegistrationStore) Approve(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status == model.RegistrationCancelled {
		return nil, repository.ErrRegistrationClosed
	}
	e := s.events.events[reg.EventID]
	if s.approvedCount(reg.EventID, id) >= e.Capacity {
		return nil, repository.ErrCapacityExceeded
	}
	reg.Status = model.RegistrationApproved
	reg.RejectionReason = nil
	out := *reg
	return &out, nil
}

func (s *memRegistrationStore) Reject(_ context.Context, id int64, reason string) (*model.Registration, error) {
	reg, ok := s.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status == model.RegistrationCancelled {
		return nil, repository.ErrRegistrationClosed
	}
	reg.Status = model.RegistrationRejected
	reg.RejectionReason = &reason
	out := *reg
	return &out, nil
}

func (s *memRegistrationStore) Cancel(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reg.Status != model.RegistrationPending && reg.Status != model.RegistrationApproved {
		return nil, repository.ErrNotFound
	}
	reg.Status = model.RegistrationCancelled
	out := *reg
	return &out, nil
}

func (s *memRegistrationStore) GetByID(_ context.Context, id int64) (*model.Registration, error) {
	reg, ok := s.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *reg
	return &out, nil
}

func (s *memRegistrationStore) ListByEvent(_ context.Context, eventID int64) ([]model.Registration, error) {
	var out []model.Registration
	for id := int64(1); id <= s.seq; id++ {
		if reg, ok := s.registrations[id]; ok && reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (s *memRegistrationStore) ListByUser(_ context.Context, userID int64) ([]model.Registration, error) {
	var out []model.Registration
	for id := int64(1); id <= s.seq; id++ {
		if reg, ok := s.registrations[id]; ok && reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func copyUser(u *model.User) *model.User {
	out := *u
	return &out
}

func applyIfSet(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
