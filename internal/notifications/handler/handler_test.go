package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/notifications/handler/mocks"
	"legatia/internal/notifications/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	userID  id.UserID
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
}

func (s *HandlerSuite) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req = testutil.WithUserID(req, s.userID.String())
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) TestList() {
	created := time.Unix(0, 1_700_000_000_000_000_000)
	s.service.EXPECT().List(gomock.Any()).Return([]*models.Notification{{
		ID:          id.NewNotificationID(),
		RecipientID: s.userID,
		Title:       "Family Invitation from Does",
		Type:        models.TypeFamilyInvitation,
		ActionURL:   optional.Some("/invitations/abc"),
		CreatedAt:   created,
	}}, nil)

	rr := s.do(http.MethodGet, "/notifications")
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal("family_invitation", resp[0]["notification_type"])
	s.Equal([]any{"/invitations/abc"}, resp[0]["action_url"])
	s.Equal([]any{}, resp[0]["metadata"])
	s.Equal(false, resp[0]["is_read"])
}

func (s *HandlerSuite) TestUnreadCount() {
	s.service.EXPECT().UnreadCount(gomock.Any()).Return(7, nil)

	rr := s.do(http.MethodGet, "/notifications/unread-count")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"count":7}`, rr.Body.String())
}

func (s *HandlerSuite) TestMarkRead() {
	notificationID := id.NewNotificationID()

	s.Run("marks the notification", func() {
		s.service.EXPECT().MarkRead(gomock.Any(), notificationID).Return(nil)

		rr := s.do(http.MethodPost, "/notifications/"+notificationID.String()+"/read")
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("not found for someone else's id", func() {
		s.service.EXPECT().MarkRead(gomock.Any(), notificationID).
			Return(dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "notification not found"))

		rr := s.do(http.MethodPost, "/notifications/"+notificationID.String()+"/read")
		s.Equal(http.StatusNotFound, rr.Code)
	})

	s.Run("rejects a malformed id before calling the service", func() {
		rr := s.do(http.MethodPost, "/notifications/not-a-uuid/read")
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestMarkAllRead() {
	s.service.EXPECT().MarkAllRead(gomock.Any()).Return("Marked 2 notifications as read", nil)

	rr := s.do(http.MethodPost, "/notifications/read-all")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"result":"Marked 2 notifications as read"}`, rr.Body.String())
}
