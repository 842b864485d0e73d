package meeting

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"gatherly/internal/app/credential"
	"gatherly/internal/app/handoff"
	"gatherly/internal/app/identity"
	"gatherly/internal/app/notify"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/randx"
)

// ErrAbandoned is returned when the page navigated away before the workflow finished.
// Nothing is stored, shown or navigated after it.
var ErrAbandoned = errors.New("meeting workflow abandoned by navigation")

const loadingMessage = "Creating meeting..."

// Navigator moves the page a workflow was started on to another location.
type Navigator interface {
	// Commit runs land and then navigates to path, atomically with respect to other
	// navigations. It returns ErrAbandoned without running land once ctx's page is gone.
	Commit(ctx context.Context, path string, land func() error) error
}

// SessionStore receives the session handed to the room view. handoff.Slot satisfies it.
type SessionStore interface {
	Store(ctx context.Context, session *handoff.MeetingSession) error
}

// RoomPath is the location of a meeting's room view.
func RoomPath(meetingID string) string {
	return "/room/" + url.PathEscape(meetingID)
}

// Initiator starts new meetings.
type Initiator struct {
	requester credential.Requester
	sessions  SessionStore
	nav       Navigator
	notifier  notify.Notifier
	modal     *Coordinator

	newMeetingID func() (string, error)

	logger zerolog.Logger
}

// NewInitiator wires the workflow to its collaborators.
func NewInitiator(requester credential.Requester, sessions SessionStore, nav Navigator, notifier notify.Notifier, modal *Coordinator) *Initiator {
	return &Initiator{
		requester:    requester,
		sessions:     sessions,
		nav:          nav,
		notifier:     notifier,
		modal:        modal,
		newMeetingID: randx.MeetingID,
		logger:       logx.Component("MeetingInitiator"),
	}
}

// WithMeetingIDs replaces the meeting id source.
func (in *Initiator) WithMeetingIDs(next func() (string, error)) *Initiator {
	in.newMeetingID = next
	return in
}

// StartMeeting creates a meeting for id and sends the page to its room.
//
// Every failure is shown as a single error notification and returned. Callers may ignore
// the returned error. If ctx ends, or the page is left before the result lands, the
// workflow stops silently with ErrAbandoned.
func (in *Initiator) StartMeeting(ctx context.Context, id *identity.Identity) error {
	if id == nil {
		err := errs.NewError(errs.ErrIdentityRequired)
		in.notifier.Error(err.Message)
		if authErr := in.modal.RequestAuth(AuthModeLogin); authErr != nil {
			in.logger.Error().Err(authErr).Msg("Failed to open sign-in modal.")
		}
		return err
	}

	snapshot := id.Snapshot()

	meetingID, err := in.newMeetingID()
	if err != nil {
		return in.fail("", errs.Wrap(errs.ErrUnknown, err))
	}

	logger := in.logger.With().Str("meeting_id", meetingID).Str("uid", snapshot.UID).Logger()
	if !randx.IsGeneratedMeetingID(meetingID) {
		logger.Debug().Msg("Meeting id source returned an id outside the generated format.")
	}
	logger.Info().Msg("Starting meeting.")

	loadingID := in.notifier.Loading(loadingMessage)

	cred, err := in.requester.RequestToken(ctx, snapshot.Label(), meetingID)
	if ctx.Err() != nil {
		in.notifier.Dismiss(loadingID)
		logger.Info().Err(ctx.Err()).Msg("Meeting start abandoned before the credential arrived.")
		return ErrAbandoned
	}
	if err != nil {
		return in.fail(meetingID, err)
	}

	session, err := handoff.NewMeetingSession(cred, snapshot)
	if err != nil {
		return in.fail(meetingID, err)
	}

	var storeErr error
	err = in.nav.Commit(ctx, RoomPath(meetingID), func() error {
		if storeErr = in.sessions.Store(ctx, session); storeErr != nil {
			return storeErr
		}
		in.notifier.Success(fmt.Sprintf("Meeting started! ID: %s", meetingID))
		return nil
	})

	switch {
	case errors.Is(err, ErrAbandoned), err != nil && ctx.Err() != nil:
		in.notifier.Dismiss(loadingID)
		logger.Info().Msg("Meeting start abandoned before it could land.")
		return ErrAbandoned
	case storeErr != nil:
		return in.fail(meetingID, errs.Wrap(errs.ErrStorageFailed, storeErr))
	case err != nil:
		return in.fail(meetingID, err)
	}

	logger.Info().Str("room_name", session.RoomName).Msg("Meeting started.")
	return nil
}

func (in *Initiator) fail(meetingID string, err error) error {
	message := errs.NewError(errs.ErrUnknown).Message
	if customErr := errs.As(err); customErr != nil {
		message = customErr.Message
	}

	in.notifier.Error(message)

	event := in.logger.Warn()
	if errs.HasCode(err, errs.ErrStorageFailed) || errs.HasCode(err, errs.ErrUnknown) {
		event = in.logger.Error()
	}
	event.Err(err).
		Str("meeting_id", meetingID).
		Msg("Failed to start meeting.")

	return err
}
