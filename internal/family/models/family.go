package models

import (
	"slices"
	"sort"
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

// Family is the aggregate root of a family tree.
//
// Invariants:
//   - AdminID never changes
//   - A linked user appears at most once in Members
//   - A member's link is set once, by a claim approval or an accepted
//     invitation, and is never cleared
//   - Members keep insertion order; the index is the member's position
type Family struct {
	ID          id.FamilyID
	Name        string
	Description string
	AdminID     id.UserID
	IsVisible   bool
	Members     []Member
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewFamily validates and builds an empty family administered by adminID.
func NewFamily(familyID id.FamilyID, adminID id.UserID, name, description string, visible bool, now time.Time) (*Family, error) {
	if familyID.IsNil() || adminID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "family requires an id and an admin")
	}
	name, err := validation.Name(name, "family_name")
	if err != nil {
		return nil, err
	}
	description, err = validation.Description(description)
	if err != nil {
		return nil, err
	}
	return &Family{
		ID:          familyID,
		Name:        name,
		Description: description,
		AdminID:     adminID,
		IsVisible:   visible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (f *Family) IsAdmin(userID id.UserID) bool {
	return f.AdminID == userID
}

// HasLinked reports whether userID is linked to any member of the family.
func (f *Family) HasLinked(userID id.UserID) bool {
	for i := range f.Members {
		if linked, ok := f.Members[i].LinkedUserID.Get(); ok && linked == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID may read the family: its admin or a linked member.
func (f *Family) CanView(userID id.UserID) bool {
	return f.IsAdmin(userID) || f.HasLinked(userID)
}

// Member returns a pointer into Members, or nil.
func (f *Family) Member(memberID id.MemberID) *Member {
	for i := range f.Members {
		if f.Members[i].ID == memberID {
			return &f.Members[i]
		}
	}
	return nil
}

// Position returns the member's index, or -1.
func (f *Family) Position(memberID id.MemberID) int {
	for i := range f.Members {
		if f.Members[i].ID == memberID {
			return i
		}
	}
	return -1
}

// AddGhost appends an unlinked member.
func (f *Family) AddGhost(memberID id.MemberID, fields MemberFields, createdBy id.UserID, now time.Time) (*Member, error) {
	m, err := newMember(memberID, f.ID, fields, createdBy, now)
	if err != nil {
		return nil, err
	}
	f.Members = append(f.Members, *m)
	f.UpdatedAt = now
	return &f.Members[len(f.Members)-1], nil
}

// AddLinkedMember appends a new member already linked to userID. It never
// merges with an existing ghost.
func (f *Family) AddLinkedMember(memberID id.MemberID, userID id.UserID, fields MemberFields, now time.Time) (*Member, error) {
	if f.HasLinked(userID) {
		return nil, dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonAlreadyLinked, "user is already a member of this family")
	}
	m, err := newMember(memberID, f.ID, fields, userID, now)
	if err != nil {
		return nil, err
	}
	m.LinkedUserID = optional.Some(userID)
	f.Members = append(f.Members, *m)
	f.UpdatedAt = now
	return &f.Members[len(f.Members)-1], nil
}

// CanLink checks that memberID is still a ghost and userID is not yet linked
// anywhere in the family.
func (f *Family) CanLink(memberID id.MemberID, userID id.UserID) error {
	m := f.Member(memberID)
	if m == nil {
		return dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	if !m.IsGhost() {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonAlreadyLinked, "member is already linked to a user")
	}
	if f.HasLinked(userID) {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonAlreadyLinked, "user is already a member of this family")
	}
	return nil
}

// LinkMember turns a ghost into a linked member. Call CanLink first.
func (f *Family) LinkMember(memberID id.MemberID, userID id.UserID, now time.Time) error {
	if err := f.CanLink(memberID, userID); err != nil {
		return err
	}
	f.Member(memberID).LinkedUserID = optional.Some(userID)
	f.UpdatedAt = now
	return nil
}

// UpdateGhost applies a partial update. Linked members are owned by their
// user's profile and cannot be edited here.
func (f *Family) UpdateGhost(memberID id.MemberID, u MemberUpdate, now time.Time) (*Member, error) {
	m := f.Member(memberID)
	if m == nil {
		return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	if !m.IsGhost() {
		return nil, dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotGhost, "only ghost profiles can be edited")
	}
	if err := m.applyUpdate(u); err != nil {
		return nil, err
	}
	f.UpdatedAt = now
	return m, nil
}

// RemoveMember deletes a member and its events.
func (f *Family) RemoveMember(memberID id.MemberID, now time.Time) error {
	pos := f.Position(memberID)
	if pos < 0 {
		return dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	f.Members = append(f.Members[:pos], f.Members[pos+1:]...)
	f.UpdatedAt = now
	return nil
}

// AddEvent attaches a life event to a member, keeping events ordered by date.
func (f *Family) AddEvent(memberID id.MemberID, e Event, now time.Time) (*Event, error) {
	m := f.Member(memberID)
	if m == nil {
		return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	e.MemberID = memberID
	m.Events = append(m.Events, e)
	sort.SliceStable(m.Events, func(i, j int) bool {
		return m.Events[i].Date < m.Events[j].Date
	})
	f.UpdatedAt = now
	for i := range m.Events {
		if m.Events[i].ID == e.ID {
			return &m.Events[i], nil
		}
	}
	return &e, nil
}

// UpdateEvent applies a partial update to one of a member's events and
// restores date order.
func (f *Family) UpdateEvent(memberID id.MemberID, eventID id.EventID, u EventUpdate, now time.Time) (*Event, error) {
	m := f.Member(memberID)
	if m == nil {
		return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	i := slices.IndexFunc(m.Events, func(e Event) bool { return e.ID == eventID })
	if i < 0 {
		return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "event not found")
	}
	if err := m.Events[i].applyUpdate(u); err != nil {
		return nil, err
	}
	sort.SliceStable(m.Events, func(i, j int) bool {
		return m.Events[i].Date < m.Events[j].Date
	})
	f.UpdatedAt = now
	return &m.Events[slices.IndexFunc(m.Events, func(e Event) bool { return e.ID == eventID })], nil
}

func (f *Family) SetVisibility(visible bool, now time.Time) {
	f.IsVisible = visible
	f.UpdatedAt = now
}

// Clone returns a deep copy so stores never share slices with callers.
func (f *Family) Clone() *Family {
	cp := *f
	cp.Members = make([]Member, len(f.Members))
	for i, m := range f.Members {
		cp.Members[i] = m
		cp.Members[i].Events = append([]Event(nil), m.Events...)
	}
	return &cp
}
