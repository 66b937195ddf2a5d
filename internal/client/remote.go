package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	claimshandler "legatia/internal/claims/handler"
	familyhandler "legatia/internal/family/handler"
	invitationshandler "legatia/internal/invitations/handler"
	notificationshandler "legatia/internal/notifications/handler"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

const defaultTimeout = 10 * time.Second

// Remote is the HTTP implementation of API against a server's /api/v1 root.
type Remote struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type RemoteOption func(*Remote)

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		r.http = c
	}
}

func NewRemote(baseURL string, tokens TokenSource, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Remote) FindMatches(ctx context.Context) ([]Match, error) {
	var out []Match
	return out, r.do(ctx, http.MethodGet, "/ghost-profiles/matches", nil, &out)
}

func (r *Remote) SubmitClaim(ctx context.Context, familyID, memberID string) (Claim, error) {
	var out Claim
	body := claimshandler.SubmitClaimRequest{FamilyID: familyID, MemberID: memberID}
	return out, r.do(ctx, http.MethodPost, "/claims", body, &out)
}

func (r *Remote) MyClaims(ctx context.Context) ([]Claim, error) {
	var out []Claim
	return out, r.do(ctx, http.MethodGet, "/claims/mine", nil, &out)
}

func (r *Remote) PendingClaims(ctx context.Context) ([]Claim, error) {
	var out []Claim
	return out, r.do(ctx, http.MethodGet, "/claims/pending", nil, &out)
}

func (r *Remote) ProcessClaim(ctx context.Context, claimID string, approve bool, adminMessage optional.Value[string]) (string, error) {
	body := claimshandler.ProcessClaimRequest{ClaimID: claimID, Approve: &approve, AdminMessage: adminMessage}
	return r.result(ctx, http.MethodPost, "/claims/process", body)
}

func (r *Remote) CancelClaim(ctx context.Context, claimID string) (string, error) {
	return r.result(ctx, http.MethodDelete, "/claims/"+url.PathEscape(claimID), nil)
}

func (r *Remote) SendInvitation(ctx context.Context, familyID, userID, relationship string, message optional.Value[string]) (string, error) {
	body := invitationshandler.SendInvitationRequest{
		FamilyID:     familyID,
		UserID:       userID,
		Relationship: relationship,
		Message:      message,
	}
	return r.result(ctx, http.MethodPost, "/invitations", body)
}

func (r *Remote) MyInvitations(ctx context.Context) ([]Invitation, error) {
	var out []Invitation
	return out, r.do(ctx, http.MethodGet, "/invitations/mine", nil, &out)
}

func (r *Remote) SentInvitations(ctx context.Context) ([]Invitation, error) {
	var out []Invitation
	return out, r.do(ctx, http.MethodGet, "/invitations/sent", nil, &out)
}

func (r *Remote) ProcessInvitation(ctx context.Context, invitationID string, accept bool) (string, error) {
	body := invitationshandler.ProcessInvitationRequest{InvitationID: invitationID, Accept: &accept}
	return r.result(ctx, http.MethodPost, "/invitations/process", body)
}

func (r *Remote) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	return out, r.do(ctx, http.MethodGet, "/notifications", nil, &out)
}

func (r *Remote) UnreadCount(ctx context.Context) (int, error) {
	var out notificationshandler.CountResponse
	if err := r.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (r *Remote) MarkNotificationRead(ctx context.Context, notificationID string) (string, error) {
	return r.result(ctx, http.MethodPost, "/notifications/"+url.PathEscape(notificationID)+"/read", nil)
}

func (r *Remote) MarkAllNotificationsRead(ctx context.Context) (string, error) {
	return r.result(ctx, http.MethodPost, "/notifications/read-all", nil)
}

func (r *Remote) Families(ctx context.Context) ([]Family, error) {
	var out []Family
	return out, r.do(ctx, http.MethodGet, "/families", nil, &out)
}

func (r *Remote) Family(ctx context.Context, familyID string) (Family, error) {
	var out Family
	return out, r.do(ctx, http.MethodGet, "/families/"+url.PathEscape(familyID), nil, &out)
}

func (r *Remote) SetVisibility(ctx context.Context, familyID string, visible bool) (string, error) {
	body := familyhandler.VisibilityRequest{IsVisible: &visible}
	return r.result(ctx, http.MethodPost, "/families/"+url.PathEscape(familyID)+"/visibility", body)
}

func (r *Remote) RemoveMember(ctx context.Context, familyID, memberID string) (string, error) {
	path := "/families/" + url.PathEscape(familyID) + "/members/" + url.PathEscape(memberID)
	return r.result(ctx, http.MethodDelete, path, nil)
}

func (r *Remote) result(ctx context.Context, method, path string, body any) (string, error) {
	var out httputil.ResultResponse
	if err := r.do(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := r.tokens.Token(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "failed to obtain access token")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode response")
	}
	return nil
}

// decodeError turns an ErrorResponse body back into a typed domain error so
// callers can branch on code and reason exactly as the server does.
func decodeError(resp *http.Response) error {
	var body httputil.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil || body.Error == "" {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	msg := body.ErrorDescription
	if msg == "" {
		msg = body.Error
	}
	return dErrors.NewWithReason(dErrors.Code(body.Error), dErrors.Reason(body.Reason), msg)
}
