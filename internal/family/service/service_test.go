package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/family/models"
	"legatia/internal/family/service/mocks"
	familystore "legatia/internal/family/store/family"
	identitymodels "legatia/internal/identity/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	audit "legatia/pkg/platform/audit"
	"legatia/pkg/requestcontext"
	"legatia/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	db       *memtx.DB
	families *familystore.InMemory
	profiles *mocks.MockProfileLookup
	auditor  *mocks.MockAuditPublisher
	hook     *mocks.MockMemberRemovalHook
	service  *Service
	admin    id.UserID
	stranger id.UserID
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.db = memtx.New()
	s.families = familystore.NewInMemory(s.db)
	s.profiles = mocks.NewMockProfileLookup(ctrl)
	s.auditor = mocks.NewMockAuditPublisher(ctrl)
	s.hook = mocks.NewMockMemberRemovalHook(ctrl)
	s.service = New(s.families, s.profiles, s.db,
		WithAuditPublisher(s.auditor),
		WithMemberRemovalHook(s.hook),
	)
	s.admin = id.UserID(uuid.New())
	s.stranger = id.UserID(uuid.New())
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) as(userID id.UserID) context.Context {
	return requestcontext.WithTime(testutil.AsUser(context.Background(), userID), s.now)
}

func (s *ServiceSuite) expectAudit(action audit.AuditEvent) {
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			s.Equal(string(action), e.Action)
			return nil
		})
}

func (s *ServiceSuite) seedFamily() *models.Family {
	f, err := models.NewFamily(id.NewFamilyID(), s.admin, "The Does", "", true, s.now)
	s.Require().NoError(err)
	_, err = f.AddGhost(id.NewMemberID(), models.MemberFields{
		FullName: "Jane Doe", SurnameAtBirth: "Doe", Sex: "female", Relationship: "aunt",
	}, s.admin, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.families.Create(context.Background(), f))
	return f
}

func (s *ServiceSuite) TestCreateFamily() {
	s.Run("requires a profile", func() {
		s.profiles.EXPECT().Lookup(gomock.Any(), s.admin).
			Return(nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "profile not found"))

		_, err := s.service.CreateFamily(s.as(s.admin), "The Does", "", true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("creates a family administered by the caller", func() {
		s.profiles.EXPECT().Lookup(gomock.Any(), s.admin).Return(&identitymodels.Profile{UserID: s.admin}, nil)
		s.expectAudit(audit.EventFamilyCreated)

		f, err := s.service.CreateFamily(s.as(s.admin), "The Does", "Our tree", true)
		s.Require().NoError(err)
		s.Equal(s.admin, f.AdminID)
		s.True(f.IsVisible)

		listed, err := s.service.ListForUser(s.as(s.admin))
		s.Require().NoError(err)
		s.Require().Len(listed, 1)
		s.Equal(f.ID, listed[0].ID)
	})

	s.Run("rejects an invalid name", func() {
		s.profiles.EXPECT().Lookup(gomock.Any(), s.admin).Return(&identitymodels.Profile{UserID: s.admin}, nil)

		_, err := s.service.CreateFamily(s.as(s.admin), "<script>", "", true)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestGet() {
	f := s.seedFamily()

	s.Run("the admin can read", func() {
		got, err := s.service.Get(s.as(s.admin), f.ID)
		s.Require().NoError(err)
		s.Equal(f.ID, got.ID)
	})

	s.Run("a stranger is forbidden", func() {
		_, err := s.service.Get(s.as(s.stranger), f.ID)
		s.True(dErrors.HasReason(err, dErrors.ReasonNotMember))
	})

	s.Run("unknown families are not found", func() {
		_, err := s.service.Get(s.as(s.admin), id.NewFamilyID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestToggleVisibility() {
	f := s.seedFamily()

	s.Run("the admin hides the family", func() {
		s.expectAudit(audit.EventVisibilityChanged)

		result, err := s.service.ToggleVisibility(s.as(s.admin), f.ID, false)
		s.Require().NoError(err)
		s.Equal("Family visibility updated to hidden", result)

		got, err := s.families.FindByID(context.Background(), f.ID)
		s.Require().NoError(err)
		s.False(got.IsVisible)
	})

	s.Run("only the admin may toggle", func() {
		_, err := s.service.ToggleVisibility(s.as(s.stranger), f.ID, true)
		s.True(dErrors.HasReason(err, dErrors.ReasonNotAdmin))
	})

	s.Run("a failed audit write aborts the change", func() {
		s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := s.service.ToggleVisibility(s.as(s.admin), f.ID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))

		got, err := s.families.FindByID(context.Background(), f.ID)
		s.Require().NoError(err)
		s.False(got.IsVisible)
	})
}

func (s *ServiceSuite) TestMembers() {
	f := s.seedFamily()
	ghostID := f.Members[0].ID

	s.Run("adds a ghost", func() {
		s.expectAudit(audit.EventMemberAdded)

		m, err := s.service.AddMember(s.as(s.admin), f.ID, models.MemberFields{
			FullName: "John Doe", SurnameAtBirth: "Doe", Sex: "male", Relationship: "uncle",
		})
		s.Require().NoError(err)
		s.True(m.IsGhost())
		s.Equal(s.admin, m.CreatedBy)

		got, err := s.families.FindByID(context.Background(), f.ID)
		s.Require().NoError(err)
		s.Len(got.Members, 2)
	})

	s.Run("updates a ghost with tri-state fields", func() {
		s.expectAudit(audit.EventMemberUpdated)

		m, err := s.service.UpdateMember(s.as(s.admin), f.ID, ghostID, models.MemberUpdate{
			BirthCity: optional.Set("Lyon"),
			Birthday:  optional.Clear[string](),
		})
		s.Require().NoError(err)
		s.Equal(optional.Some("Lyon"), m.BirthCity)
		s.False(m.Birthday.IsSet())
		s.Equal("Jane Doe", m.FullName)
	})

	s.Run("refuses linked members", func() {
		s.Require().NoError(s.db.RunInFamilyTx(context.Background(), f.ID, func(ctx context.Context) error {
			got, err := s.families.FindByID(ctx, f.ID)
			s.Require().NoError(err)
			s.Require().NoError(got.LinkMember(ghostID, s.stranger, s.now))
			return s.families.Save(ctx, got)
		}))

		_, err := s.service.UpdateMember(s.as(s.admin), f.ID, ghostID, models.MemberUpdate{FullName: optional.Set("X")})
		s.True(dErrors.HasReason(err, dErrors.ReasonNotGhost))
	})

	s.Run("removal settles dependent workflows in the same unit", func() {
		s.hook.EXPECT().MemberRemoved(gomock.Any(), f.ID, ghostID).DoAndReturn(
			func(ctx context.Context, _ id.FamilyID, _ id.MemberID) error {
				s.True(s.db.InTx(ctx))
				return nil
			})
		s.expectAudit(audit.EventMemberRemoved)

		result, err := s.service.RemoveMember(s.as(s.admin), f.ID, ghostID)
		s.Require().NoError(err)
		s.Equal("Member removed successfully", result)

		got, err := s.families.FindByID(context.Background(), f.ID)
		s.Require().NoError(err)
		s.Nil(got.Member(ghostID))
	})

	s.Run("removal of an unknown member is not found", func() {
		_, err := s.service.RemoveMember(s.as(s.admin), f.ID, id.NewMemberID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestRemoveMemberRollsBackWhenHookFails() {
	f := s.seedFamily()
	ghostID := f.Members[0].ID
	s.hook.EXPECT().MemberRemoved(gomock.Any(), f.ID, ghostID).Return(errors.New("claims store down"))

	_, err := s.service.RemoveMember(s.as(s.admin), f.ID, ghostID)
	s.Require().Error(err)

	got, err := s.families.FindByID(context.Background(), f.ID)
	s.Require().NoError(err)
	s.NotNil(got.Member(ghostID))
}

func (s *ServiceSuite) TestEvents() {
	f := s.seedFamily()
	memberID := f.Members[0].ID

	s.expectAudit(audit.EventMemberEventAdded)
	s.expectAudit(audit.EventMemberEventAdded)

	_, err := s.service.AddEvent(s.as(s.admin), f.ID, memberID, EventInput{
		Title: "Wedding", Date: "1975-06-01", Type: models.EventMarriage,
	})
	s.Require().NoError(err)
	_, err = s.service.AddEvent(s.as(s.admin), f.ID, memberID, EventInput{
		Title: "Born", Date: "1950-01-01", Type: models.EventBirth,
	})
	s.Require().NoError(err)

	events, err := s.service.ListEvents(s.as(s.admin), f.ID, memberID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("Born", events[0].Title)
	s.Equal("Wedding", events[1].Title)

	_, err = s.service.ListEvents(s.as(s.stranger), f.ID, memberID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = s.service.AddEvent(s.as(s.admin), f.ID, memberID, EventInput{Title: "Undated", Type: models.EventOther})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestUpdateEvent() {
	f := s.seedFamily()
	memberID := f.Members[0].ID
	s.expectAudit(audit.EventMemberEventAdded)
	s.expectAudit(audit.EventMemberEventAdded)
	born, err := s.service.AddEvent(s.as(s.admin), f.ID, memberID, EventInput{
		Title: "Born", Date: "1950-01-01", Type: models.EventBirth,
	})
	s.Require().NoError(err)
	wedding, err := s.service.AddEvent(s.as(s.admin), f.ID, memberID, EventInput{
		Title: "Wedding", Description: "Lyon", Date: "1975-06-01", Type: models.EventMarriage,
	})
	s.Require().NoError(err)

	s.Run("the admin edits and the change is stored", func() {
		s.expectAudit(audit.EventMemberEventUpdated)

		got, err := s.service.UpdateEvent(s.as(s.admin), f.ID, memberID, wedding.ID, models.EventUpdate{
			Title:       optional.Set("Engagement"),
			Description: optional.Clear[string](),
			Date:        optional.Set("1949-12-24"),
		})
		s.Require().NoError(err)
		s.Equal("Engagement", got.Title)
		s.Empty(got.Description)
		s.Equal(models.EventMarriage, got.Type)

		events, err := s.service.ListEvents(s.as(s.admin), f.ID, memberID)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(wedding.ID, events[0].ID)
		s.Equal(born.ID, events[1].ID)
	})

	s.Run("only the admin may edit", func() {
		_, err := s.service.UpdateEvent(s.as(s.stranger), f.ID, memberID, born.ID, models.EventUpdate{
			Title: optional.Set("Hijacked"),
		})
		s.True(dErrors.HasReason(err, dErrors.ReasonNotAdmin))
	})

	s.Run("unknown events are not found", func() {
		_, err := s.service.UpdateEvent(s.as(s.admin), f.ID, memberID, id.NewEventID(), models.EventUpdate{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("invalid edits leave the event untouched", func() {
		_, err := s.service.UpdateEvent(s.as(s.admin), f.ID, memberID, born.ID, models.EventUpdate{
			Date: optional.Clear[string](),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		events, err := s.service.ListEvents(s.as(s.admin), f.ID, memberID)
		s.Require().NoError(err)
		s.Equal("1950-01-01", events[1].Date)
	})
}
