package main

import (
	"context"
	"fmt"
	"strconv"

	"legatia/internal/client"
	"legatia/pkg/optional"
)

type resultResponse struct {
	Result string `json:"result"`
}

// runCommand dispatches one command against an already refreshed reconciler.
func runCommand(ctx context.Context, r *client.Reconciler, args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing command\n%s", usage)
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "sync":
		if err := want(cmd, args, 0, 0); err != nil {
			return nil, err
		}
		return r.Snapshot(), nil
	case "matches":
		if err := want(cmd, args, 0, 0); err != nil {
			return nil, err
		}
		return r.Snapshot().Matches, nil
	case "claim":
		if err := want(cmd, args, 2, 2); err != nil {
			return nil, err
		}
		return r.SubmitClaim(ctx, args[0], args[1])
	case "approve", "reject":
		if err := want(cmd, args, 1, 2); err != nil {
			return nil, err
		}
		return result(r.ProcessClaim(ctx, args[0], cmd == "approve", optionalArg(args, 1)))
	case "cancel":
		if err := want(cmd, args, 1, 1); err != nil {
			return nil, err
		}
		return result(r.CancelClaim(ctx, args[0]))
	case "invite":
		if err := want(cmd, args, 3, 4); err != nil {
			return nil, err
		}
		return result(r.SendInvitation(ctx, args[0], args[1], args[2], optionalArg(args, 3)))
	case "accept", "decline":
		if err := want(cmd, args, 1, 1); err != nil {
			return nil, err
		}
		return result(r.ProcessInvitation(ctx, args[0], cmd == "accept"))
	case "notifications":
		if err := want(cmd, args, 0, 0); err != nil {
			return nil, err
		}
		return r.Snapshot().NotificationsNewestFirst(), nil
	case "read":
		if err := want(cmd, args, 1, 1); err != nil {
			return nil, err
		}
		return result(r.MarkNotificationRead(ctx, args[0]))
	case "read-all":
		if err := want(cmd, args, 0, 0); err != nil {
			return nil, err
		}
		return result(r.MarkAllNotificationsRead(ctx))
	case "visibility":
		if err := want(cmd, args, 2, 2); err != nil {
			return nil, err
		}
		visible, err := strconv.ParseBool(args[1])
		if err != nil {
			return nil, fmt.Errorf("visibility: %q is not a boolean", args[1])
		}
		return result(r.SetVisibility(ctx, args[0], visible))
	case "remove-member":
		if err := want(cmd, args, 2, 2); err != nil {
			return nil, err
		}
		return result(r.RemoveMember(ctx, args[0], args[1]))
	default:
		return nil, fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func want(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%s: wrong number of arguments\n%s", cmd, usage)
	}
	return nil
}

func optionalArg(args []string, i int) optional.Value[string] {
	if i < len(args) {
		return optional.Some(args[i])
	}
	return optional.None[string]()
}

func result(s string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return resultResponse{Result: s}, nil
}
