package client_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/client"
	"legatia/internal/client/mocks"
	familyhandler "legatia/internal/family/handler"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

type ReconcilerSuite struct {
	suite.Suite
	ctx context.Context
	api *mocks.MockAPI
	r   *client.Reconciler
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = mocks.NewMockAPI(gomock.NewController(s.T()))
	s.r = client.NewReconciler(s.api)
}

func pendingClaim(claimID, familyID, memberID string) client.Claim {
	return client.Claim{ID: claimID, FamilyID: familyID, MemberID: memberID, Status: "pending", CreatedAt: 1}
}

func family(familyID string, members ...string) client.Family {
	f := client.Family{ID: familyID, Name: "Doe"}
	for _, m := range members {
		f.Members = append(f.Members, familyhandler.MemberResponse{ID: m, FullName: m})
	}
	return f
}

func (s *ReconcilerSuite) seedPending(c client.Claim) {
	s.api.EXPECT().Families(gomock.Any()).Return([]client.Family{family(c.FamilyID, c.MemberID)}, nil)
	s.api.EXPECT().FindMatches(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().MyClaims(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().PendingClaims(gomock.Any()).Return([]client.Claim{c}, nil)
	s.api.EXPECT().SentInvitations(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().MyInvitations(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().Notifications(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().UnreadCount(gomock.Any()).Return(0, nil)
	s.Require().NoError(s.r.Refresh(s.ctx))
}

func (s *ReconcilerSuite) TestSubmitClaim() {
	s.Run("caches the confirmed claim", func() {
		c := pendingClaim("c1", "f1", "m1")
		s.api.EXPECT().SubmitClaim(gomock.Any(), "f1", "m1").Return(c, nil)

		got, err := s.r.SubmitClaim(s.ctx, "f1", "m1")
		s.Require().NoError(err)
		s.Equal(c, got)
		s.Equal(c, s.r.Snapshot().MyClaims["c1"])
	})

	s.Run("a failure leaves the cache untouched", func() {
		before := s.r.Snapshot()
		s.api.EXPECT().SubmitClaim(gomock.Any(), "f1", "m2").
			Return(client.Claim{}, dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicateClaim, "duplicate"))

		_, err := s.r.SubmitClaim(s.ctx, "f1", "m2")
		s.True(dErrors.HasReason(err, dErrors.ReasonDuplicateClaim))
		s.Equal(before, s.r.Snapshot())
	})
}

func (s *ReconcilerSuite) TestProcessClaim() {
	s.Run("approval re-fetches pending claims and the family", func() {
		s.SetupTest()
		s.seedPending(pendingClaim("c1", "f1", "m1"))

		linked := family("f1", "m1")
		linked.Members[0].LinkedUserID = optional.Some("u1")
		s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", true, optional.Some("Welcome")).Return("approved", nil)
		s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)
		s.api.EXPECT().Family(gomock.Any(), "f1").Return(linked, nil)

		result, err := s.r.ProcessClaim(s.ctx, "c1", true, optional.Some("  Welcome "))
		s.Require().NoError(err)
		s.Equal("approved", result)

		snap := s.r.Snapshot()
		s.Empty(snap.PendingClaims)
		s.Equal(optional.Some("u1"), snap.Families["f1"].Members[0].LinkedUserID)
	})

	s.Run("approving an uncached claim re-fetches every family", func() {
		s.SetupTest()
		linked := family("f1", "m1")
		linked.Members[0].LinkedUserID = optional.Some("u1")
		s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", true, optional.None[string]()).Return("approved", nil)
		s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)
		s.api.EXPECT().Families(gomock.Any()).Return([]client.Family{linked}, nil)

		_, err := s.r.ProcessClaim(s.ctx, "c1", true, optional.None[string]())
		s.Require().NoError(err)
		s.Equal(optional.Some("u1"), s.r.Snapshot().Families["f1"].Members[0].LinkedUserID)
	})

	s.Run("rejection does not touch the family", func() {
		s.SetupTest()
		s.seedPending(pendingClaim("c1", "f1", "m1"))
		s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", false, optional.None[string]()).Return("rejected", nil)
		s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)

		_, err := s.r.ProcessClaim(s.ctx, "c1", false, optional.Some("   "))
		s.Require().NoError(err)
		s.Empty(s.r.Snapshot().PendingClaims)
	})

	s.Run("an invalid admin message never reaches the server", func() {
		s.SetupTest()
		_, err := s.r.ProcessClaim(s.ctx, "c1", true, optional.Some(strings.Repeat("x", 1001)))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("a failed refresh is reported after the action succeeded", func() {
		s.SetupTest()
		s.seedPending(pendingClaim("c1", "f1", "m1"))
		s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", false, optional.None[string]()).Return("rejected", nil)
		s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, errors.New("connection reset"))

		result, err := s.r.ProcessClaim(s.ctx, "c1", false, optional.None[string]())
		s.Equal("rejected", result)
		s.ErrorIs(err, client.ErrRefreshFailed)
		s.NotContains(s.r.Snapshot().PendingClaims, "c1")
	})

	s.Run("not pending errors leave the claim cached", func() {
		s.SetupTest()
		s.seedPending(pendingClaim("c1", "f1", "m1"))
		s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", true, optional.None[string]()).
			Return("", dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "claim is no longer pending"))

		_, err := s.r.ProcessClaim(s.ctx, "c1", true, optional.None[string]())
		s.True(dErrors.HasReason(err, dErrors.ReasonNotPending))
		s.Contains(s.r.Snapshot().PendingClaims, "c1")
	})
}

func (s *ReconcilerSuite) TestActionInFlight() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.api.EXPECT().ProcessClaim(gomock.Any(), "c1", false, optional.None[string]()).
		DoAndReturn(func(context.Context, string, bool, optional.Value[string]) (string, error) {
			close(started)
			<-release
			return "rejected", nil
		})
	s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.r.ProcessClaim(s.ctx, "c1", false, optional.None[string]())
		errCh <- err
	}()
	<-started

	_, err := s.r.ProcessClaim(s.ctx, "c1", true, optional.None[string]())
	s.ErrorIs(err, client.ErrActionInFlight)

	close(release)
	s.NoError(<-errCh)
}

func (s *ReconcilerSuite) TestSendInvitation() {
	s.Run("validates locally before calling", func() {
		_, err := s.r.SendInvitation(s.ctx, "f1", "u2", "", optional.None[string]())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.r.SendInvitation(s.ctx, "f1", "u2", "cousin", optional.Some("<script>`"))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("re-fetches sent invitations", func() {
		inv := client.Invitation{ID: "i1", FamilyID: "f1", InviteeID: "u2", Status: "pending"}
		s.api.EXPECT().SendInvitation(gomock.Any(), "f1", "u2", "cousin", optional.Some("Hello")).Return("Invitation sent", nil)
		s.api.EXPECT().SentInvitations(gomock.Any()).Return([]client.Invitation{inv}, nil)

		result, err := s.r.SendInvitation(s.ctx, "f1", "u2", " cousin ", optional.Some("Hello"))
		s.Require().NoError(err)
		s.Equal("Invitation sent", result)
		s.Equal(inv, s.r.Snapshot().SentInvitations["i1"])
	})
}

func (s *ReconcilerSuite) TestProcessInvitation() {
	inv := client.Invitation{ID: "i1", FamilyID: "f1", Status: "pending"}
	s.api.EXPECT().Families(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().FindMatches(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().MyClaims(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().SentInvitations(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().MyInvitations(gomock.Any()).Return([]client.Invitation{inv}, nil)
	s.api.EXPECT().Notifications(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().UnreadCount(gomock.Any()).Return(1, nil)
	s.Require().NoError(s.r.Refresh(s.ctx))

	accepted := inv
	accepted.Status = "accepted"
	s.api.EXPECT().ProcessInvitation(gomock.Any(), "i1", true).Return("Invitation accepted", nil)
	s.api.EXPECT().MyInvitations(gomock.Any()).Return([]client.Invitation{accepted}, nil)
	s.api.EXPECT().Family(gomock.Any(), "f1").Return(family("f1", "m1", "m2"), nil)

	result, err := s.r.ProcessInvitation(s.ctx, "i1", true)
	s.Require().NoError(err)
	s.Equal("Invitation accepted", result)

	snap := s.r.Snapshot()
	s.Equal("accepted", snap.ReceivedInvitations["i1"].Status)
	s.Len(snap.Families["f1"].Members, 2)
}

func (s *ReconcilerSuite) TestProcessUncachedInvitationFallsBackToFamilies() {
	s.api.EXPECT().ProcessInvitation(gomock.Any(), "i9", true).Return("Invitation accepted", nil)
	s.api.EXPECT().MyInvitations(gomock.Any()).Return(nil, nil)
	s.api.EXPECT().Families(gomock.Any()).Return(nil, errors.New("connection reset"))

	result, err := s.r.ProcessInvitation(s.ctx, "i9", true)
	s.Equal("Invitation accepted", result)
	s.ErrorIs(err, client.ErrRefreshFailed)
}

func (s *ReconcilerSuite) TestNotifications() {
	s.api.EXPECT().Notifications(gomock.Any()).Return([]client.Notification{
		{ID: "n1", CreatedAt: 1},
		{ID: "n2", CreatedAt: 2},
	}, nil)
	s.api.EXPECT().UnreadCount(gomock.Any()).Return(2, nil)
	s.Require().NoError(s.r.RefreshNotifications(s.ctx))

	s.api.EXPECT().MarkNotificationRead(gomock.Any(), "n1").Return("Notification marked as read", nil)
	_, err := s.r.MarkNotificationRead(s.ctx, "n1")
	s.Require().NoError(err)

	snap := s.r.Snapshot()
	s.True(snap.Notifications["n1"].IsRead)
	s.Equal(1, snap.UnreadCount)
	s.Equal("n2", snap.NotificationsNewestFirst()[0].ID)

	s.api.EXPECT().MarkAllNotificationsRead(gomock.Any()).Return("Marked 1 notifications as read", nil)
	_, err = s.r.MarkAllNotificationsRead(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, s.r.Snapshot().UnreadCount)
	s.True(s.r.Snapshot().Notifications["n2"].IsRead)
}

func (s *ReconcilerSuite) TestSetVisibilityDropsFamilyGoneFromView() {
	s.api.EXPECT().SetVisibility(gomock.Any(), "f1", false).Return("Family is now hidden", nil)
	s.api.EXPECT().Family(gomock.Any(), "f1").Return(client.Family{}, dErrors.New(dErrors.CodeNotFound, "family not found"))

	_, err := s.r.SetVisibility(s.ctx, "f1", false)
	s.Require().NoError(err)
	s.NotContains(s.r.Snapshot().Families, "f1")
}

func (s *ReconcilerSuite) TestRemoveMember() {
	s.seedPending(pendingClaim("c1", "f1", "m1"))
	s.api.EXPECT().RemoveMember(gomock.Any(), "f1", "m1").Return("Member removed", nil)
	s.api.EXPECT().Family(gomock.Any(), "f1").Return(family("f1"), nil)
	s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)

	_, err := s.r.RemoveMember(s.ctx, "f1", "m1")
	s.Require().NoError(err)

	snap := s.r.Snapshot()
	s.Empty(snap.Families["f1"].Members)
	s.Empty(snap.PendingClaims)
}
