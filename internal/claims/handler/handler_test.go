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

	"legatia/internal/claims/handler/mocks"
	"legatia/internal/claims/models"
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
	memberID id.MemberID
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
	s.memberID = id.NewMemberID()
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = testutil.WithUserID(req, s.userID.String())
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) claim() *models.Claim {
	return &models.Claim{
		ID:               id.NewClaimID(),
		RequesterID:      s.userID,
		FamilyID:         s.familyID,
		MemberID:         s.memberID,
		RequesterProfile: models.ProfileSnapshot{FullName: "Jane Doe", SurnameAtBirth: "Doe", Sex: "female"},
		Member:           models.MemberSnapshot{FullName: "Jane Doe", Relationship: "aunt"},
		Status:           models.StatusPending,
		CreatedAt:        time.Unix(0, 1_700_000_000_000_000_000),
	}
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("creates a claim", func() {
		c := s.claim()
		s.service.EXPECT().Submit(gomock.Any(), s.familyID, s.memberID).Return(c, nil)

		rr := s.do(http.MethodPost, "/claims",
			`{"family_id":"`+s.familyID.String()+`","member_id":"`+s.memberID.String()+`"}`)
		s.Require().Equal(http.StatusCreated, rr.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
		s.Equal(c.ID.String(), resp["id"])
		s.Equal("pending", resp["status"])
		s.Equal([]any{}, resp["decided_at"])
		s.Equal("aunt", resp["ghost_profile"].(map[string]any)["relationship_to_admin"])
	})

	s.Run("malformed ids are invalid input", func() {
		rr := s.do(http.MethodPost, "/claims", `{"family_id":"nope","member_id":"`+s.memberID.String()+`"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("missing ids fail validation", func() {
		rr := s.do(http.MethodPost, "/claims", `{}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("duplicate claims conflict", func() {
		s.service.EXPECT().Submit(gomock.Any(), s.familyID, s.memberID).
			Return(nil, dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicateClaim, "you already have a pending claim for this member"))

		rr := s.do(http.MethodPost, "/claims",
			`{"family_id":"`+s.familyID.String()+`","member_id":"`+s.memberID.String()+`"}`)
		testutil.AssertErrorReason(s.T(), rr, http.StatusConflict, string(dErrors.ReasonDuplicateClaim))
	})
}

func (s *HandlerSuite) TestProcess() {
	claimID := id.NewClaimID()

	s.Run("passes the optional admin message through", func() {
		s.service.EXPECT().Process(gomock.Any(), claimID, true, optional.Some("Welcome")).
			Return("Ghost profile claim approved. User has been linked to the family member.", nil)

		rr := s.do(http.MethodPost, "/claims/process",
			`{"claim_id":"`+claimID.String()+`","approve":true,"admin_message":["Welcome"]}`)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"result":"Ghost profile claim approved. User has been linked to the family member."}`, rr.Body.String())
	})

	s.Run("an absent message is none", func() {
		s.service.EXPECT().Process(gomock.Any(), claimID, false, optional.None[string]()).
			Return("Ghost profile claim rejected.", nil)

		rr := s.do(http.MethodPost, "/claims/process", `{"claim_id":"`+claimID.String()+`","approve":false,"admin_message":[]}`)
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("approve is required", func() {
		rr := s.do(http.MethodPost, "/claims/process", `{"claim_id":"`+claimID.String()+`"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("non-admins are forbidden", func() {
		s.service.EXPECT().Process(gomock.Any(), claimID, true, optional.None[string]()).
			Return("", dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotAdmin, "only the family admin can process claims"))

		rr := s.do(http.MethodPost, "/claims/process", `{"claim_id":"`+claimID.String()+`","approve":true}`)
		s.Equal(http.StatusForbidden, rr.Code)
	})
}

func (s *HandlerSuite) TestLists() {
	c := s.claim()
	s.service.EXPECT().ListMine(gomock.Any()).Return([]*models.Claim{c}, nil)
	s.service.EXPECT().ListPendingForAdmin(gomock.Any()).Return([]*models.Claim{}, nil)

	rr := s.do(http.MethodGet, "/claims/mine", "")
	s.Require().Equal(http.StatusOK, rr.Code)
	mine := testutil.DecodeJSON[[]map[string]any](s.T(), rr)
	s.Require().Len(mine, 1)
	s.Equal(c.ID.String(), mine[0]["id"])

	rr = s.do(http.MethodGet, "/claims/pending", "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`[]`, rr.Body.String())
}

func (s *HandlerSuite) TestCancel() {
	claimID := id.NewClaimID()
	s.service.EXPECT().Cancel(gomock.Any(), claimID).Return("Ghost profile claim cancelled.", nil)

	rr := s.do(http.MethodDelete, "/claims/"+claimID.String(), "")
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodDelete, "/claims/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, rr.Code)
}
