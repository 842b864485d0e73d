/*
Package handler provides HTTP handler functions for starting and joining meetings and for
the room view's session handoff.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"gatherly/internal/app/handoff"
	"gatherly/internal/app/meeting"
	"gatherly/internal/app/page"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/req"
	"gatherly/internal/pkg/resp"
)

type JoinMeetingInput struct {
	MeetingID string `json:"meetingId"`
}

// HandleStartMeeting runs the start-meeting workflow for the caller's identity.
// Failures come back in the envelope together with the tab view, which already shows the error.
func HandleStartMeeting(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		err := tab.StartMeeting(r.Context(), sessionFor(deps, r).Current())

		switch {
		case err == nil, errors.Is(err, meeting.ErrAbandoned):
			resp.RespondSuccess(w, r, tabViewData(tab))
		default:
			customErr := errs.As(err)
			if customErr == nil {
				customErr = errs.NewError(errs.ErrUnknown, err)
			}
			resp.RespondErrorWithData(w, r, customErr, tabViewData(tab))
		}
	})
}

// HandleJoinMeeting sends the tab to an existing meeting's room.
func HandleJoinMeeting(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		var input JoinMeetingInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		meetingID := strings.TrimSpace(input.MeetingID)
		if meetingID == "" {
			resp.RespondErrorWithData(w, r, errs.NewError(errs.ErrInvalidParams), tabViewData(tab))
			return
		}

		err := tab.JoinMeeting(r.Context(), sessionFor(deps, r).Current(), meetingID)
		if err != nil && !errors.Is(err, meeting.ErrAbandoned) {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleConsumeHandoff returns the tab's pending meeting session and removes it.
func HandleConsumeHandoff(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		session, err := tab.Slot().Consume(r.Context())
		if err != nil {
			if errors.Is(err, handoff.ErrEmpty) {
				resp.RespondError(w, r, errs.NewError(errs.ErrNoPendingSession))
				return
			}

			logx.Error(err, "Failed to consume meeting session", "tab_id", tab.ID)
			resp.RespondError(w, r, errs.Wrap(errs.ErrStorageFailed, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{handoff.Key: session})
	})
}
