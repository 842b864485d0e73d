package meeting

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"gatherly/internal/app/identity"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
)

// JoinFlow sends a signed-in user to an existing meeting's room.
type JoinFlow struct {
	nav   Navigator
	modal *Coordinator

	logger zerolog.Logger
}

// NewJoinFlow creates a JoinFlow.
func NewJoinFlow(nav Navigator, modal *Coordinator) *JoinFlow {
	return &JoinFlow{
		nav:    nav,
		modal:  modal,
		logger: logx.Component("JoinFlow"),
	}
}

// JoinMeeting navigates to the room of meetingID. Without an identity it opens the login
// modal instead and returns nil. No credential is requested here.
func (f *JoinFlow) JoinMeeting(ctx context.Context, id *identity.Identity, meetingID string) error {
	if id == nil {
		return f.modal.RequestAuth(AuthModeLogin)
	}

	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return errs.NewError(errs.ErrMeetingIDRequired)
	}

	if err := f.nav.Commit(ctx, RoomPath(meetingID), nil); err != nil {
		return err
	}
	f.modal.Close()

	f.logger.Info().
		Str("meeting_id", meetingID).
		Str("uid", id.UID).
		Msg("Joining meeting.")

	return nil
}
