package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/invitations/handler/mocks"
	"legatia/internal/invitations/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service  *mocks.MockService
	router   chi.Router
	userID   id.UserID
	familyID id.FamilyID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.userID = id.UserID(uuid.New())
	s.familyID = id.NewFamilyID()
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = testutil.WithUserID(req, s.userID.String())
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) TestSend() {
	invitee := id.UserID(uuid.New())

	s.Run("sends an invitation", func() {
		s.service.EXPECT().Send(gomock.Any(), s.familyID, invitee, "cousin", optional.Some("Hi")).Return("Invitation sent", nil)

		rr := s.do(http.MethodPost, "/invitations",
			`{"family_id":"`+s.familyID.String()+`","user_id":"`+invitee.String()+`","relationship_to_admin":"cousin","message":["Hi"]}`)
		s.Require().Equal(http.StatusCreated, rr.Code)
		s.JSONEq(`{"result":"Invitation sent"}`, rr.Body.String())
	})

	s.Run("requires a relationship", func() {
		rr := s.do(http.MethodPost, "/invitations",
			`{"family_id":"`+s.familyID.String()+`","user_id":"`+invitee.String()+`"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("self invites are bad requests", func() {
		s.service.EXPECT().Send(gomock.Any(), s.familyID, s.userID, "cousin", optional.None[string]()).
			Return("", dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonSelfInvite, "you cannot invite yourself"))

		rr := s.do(http.MethodPost, "/invitations",
			`{"family_id":"`+s.familyID.String()+`","user_id":"`+s.userID.String()+`","relationship_to_admin":"cousin"}`)
		s.Equal(http.StatusBadRequest, rr.Code)

		var resp map[string]string
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
		s.Equal(string(dErrors.ReasonSelfInvite), resp["reason"])
	})
}

func (s *HandlerSuite) TestProcess() {
	invitationID := id.NewInvitationID()

	s.Run("declines", func() {
		s.service.EXPECT().Process(gomock.Any(), invitationID, false).Return("Invitation declined", nil)

		rr := s.do(http.MethodPost, "/invitations/process", `{"invitation_id":"`+invitationID.String()+`","accept":false}`)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"result":"Invitation declined"}`, rr.Body.String())
	})

	s.Run("accept is required", func() {
		rr := s.do(http.MethodPost, "/invitations/process", `{"invitation_id":"`+invitationID.String()+`"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("answering twice conflicts", func() {
		s.service.EXPECT().Process(gomock.Any(), invitationID, true).
			Return("", dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "invitation is no longer pending"))

		rr := s.do(http.MethodPost, "/invitations/process", `{"invitation_id":"`+invitationID.String()+`","accept":true}`)
		s.Equal(http.StatusConflict, rr.Code)
	})
}

func (s *HandlerSuite) TestLists() {
	inv := &models.Invitation{
		ID: id.NewInvitationID(), FamilyID: s.familyID, FamilyName: "The Does",
		InviterID: id.UserID(uuid.New()), InviterName: "Alice Doe", InviteeID: s.userID,
		Relationship: "cousin", Status: models.StatusPending,
		CreatedAt: time.Unix(0, 1_700_000_000_000_000_000),
	}
	s.service.EXPECT().ListMine(gomock.Any()).Return([]*models.Invitation{inv}, nil)
	s.service.EXPECT().ListSent(gomock.Any()).Return([]*models.Invitation{}, nil)

	rr := s.do(http.MethodGet, "/invitations/mine", "")
	s.Require().Equal(http.StatusOK, rr.Code)
	var received []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &received))
	s.Require().Len(received, 1)
	s.Equal("The Does", received[0]["family_name"])
	s.Equal([]any{}, received[0]["message"])
	s.Equal(float64(1_700_000_000_000_000_000), received[0]["created_at"])

	rr = s.do(http.MethodGet, "/invitations/sent", "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`[]`, rr.Body.String())
}
