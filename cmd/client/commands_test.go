package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/client"
	"legatia/internal/client/mocks"
	"legatia/internal/client/store"
	"legatia/internal/platform/logger"
	"legatia/pkg/optional"
)

type CommandsSuite struct {
	suite.Suite
	ctx context.Context
	api *mocks.MockAPI
	r   *client.Reconciler
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsSuite))
}

func (s *CommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = mocks.NewMockAPI(gomock.NewController(s.T()))
	s.r = client.NewReconciler(s.api)
}

func (s *CommandsSuite) TestUsageErrors() {
	for _, args := range [][]string{
		nil,
		{"teleport"},
		{"claim", "only-family"},
		{"read-all", "extra"},
		{"visibility", "fam-1", "maybe"},
	} {
		_, err := runCommand(s.ctx, s.r, args)
		s.Error(err, "args %v", args)
	}
}

func (s *CommandsSuite) TestRejectPassesMessage() {
	s.api.EXPECT().ProcessClaim(gomock.Any(), "claim-1", false, optional.Some("not family")).
		Return("Claim rejected", nil)
	s.api.EXPECT().PendingClaims(gomock.Any()).Return(nil, nil)

	out, err := runCommand(s.ctx, s.r, []string{"reject", "claim-1", "not family"})
	s.Require().NoError(err)
	s.Equal(resultResponse{Result: "Claim rejected"}, out)
}

func (s *CommandsSuite) TestCancelWithoutMessage() {
	s.api.EXPECT().CancelClaim(gomock.Any(), "claim-1").Return("Claim cancelled", nil)
	s.api.EXPECT().MyClaims(gomock.Any()).Return(nil, nil)

	out, err := runCommand(s.ctx, s.r, []string{"cancel", "claim-1"})
	s.Require().NoError(err)
	s.Equal(resultResponse{Result: "Claim cancelled"}, out)
}

func (s *CommandsSuite) TestReadAllClearsUnread() {
	s.api.EXPECT().MarkAllNotificationsRead(gomock.Any()).Return("All notifications marked as read", nil)

	_, err := runCommand(s.ctx, s.r, []string{"read-all"})
	s.Require().NoError(err)
	s.Zero(s.r.Snapshot().UnreadCount)
}

func (s *CommandsSuite) TestVisibilityParsesFlag() {
	s.api.EXPECT().SetVisibility(gomock.Any(), "fam-1", false).Return("Family hidden", nil)
	s.api.EXPECT().Family(gomock.Any(), "fam-1").Return(client.Family{ID: "fam-1"}, nil)

	out, err := runCommand(s.ctx, s.r, []string{"visibility", "fam-1", "false"})
	s.Require().NoError(err)
	s.Equal(resultResponse{Result: "Family hidden"}, out)
}

func (s *CommandsSuite) TestOfflinePrintsSavedSnapshot() {
	path := filepath.Join(s.T().TempDir(), "snapshot.db")
	s.T().Setenv("LEGATIA_TOKEN", "token")
	s.T().Setenv("LEGATIA_SNAPSHOT", path)

	saved := client.NewCache()
	saved.UnreadCount = 3
	snapshots, err := store.Open(path)
	s.Require().NoError(err)
	s.Require().NoError(snapshots.Save(s.ctx, saved))
	s.Require().NoError(snapshots.Close())

	var out bytes.Buffer
	err = run(logger.NewWithWriter(io.Discard, "error"), []string{"-offline"}, &out)
	s.Require().NoError(err)
	s.Contains(out.String(), `"unread_count": 3`)
}
