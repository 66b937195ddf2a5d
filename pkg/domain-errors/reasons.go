package domainerrors

// Reason names a workflow precondition failure. Reasons travel on the wire
// next to the code so clients can render each failure kind distinctly.
type Reason string

const (
	ReasonNotAuthenticated           Reason = "not_authenticated"
	ReasonNotAdmin                   Reason = "not_admin"
	ReasonNotInvitee                 Reason = "not_invitee"
	ReasonNotRequester               Reason = "not_requester"
	ReasonNotMember                  Reason = "not_member"
	ReasonNotPending                 Reason = "not_pending"
	ReasonDuplicateClaim             Reason = "duplicate_claim"
	ReasonDuplicatePendingInvitation Reason = "duplicate_pending_invitation"
	ReasonAlreadyLinked              Reason = "already_linked"
	ReasonSelfInvite                 Reason = "self_invite"
	ReasonProfileExists              Reason = "profile_exists"
	ReasonNotGhost                   Reason = "not_ghost"
	ReasonNotFound                   Reason = "not_found"
)

// ReasonOf returns the first reason found in the chain, or "" if none.
func ReasonOf(err error) Reason {
	for err != nil {
		de, ok := As(err)
		if !ok {
			return ""
		}
		if de.Reason != "" {
			return de.Reason
		}
		err = de.Err
	}
	return ""
}

// HasReason reports whether err carries the given reason.
func HasReason(err error, reason Reason) bool {
	return reason != "" && ReasonOf(err) == reason
}
