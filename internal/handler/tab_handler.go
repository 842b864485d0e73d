/*
Package handler provides HTTP handler functions for browser tabs and their modals.

Every tab endpoint answers with the tab's view, so the browser can render the modal,
notification, form drafts and location from a single response.
*/
package handler

import (
	"net/http"

	"gatherly/internal/app/meeting"
	"gatherly/internal/app/page"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/req"
	"gatherly/internal/pkg/resp"
)

type AuthModalInput struct {
	Mode string `json:"mode"`
}

type AuthFormInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type JoinFormInput struct {
	MeetingID string `json:"meetingId"`
}

type FormsInput struct {
	Auth *AuthFormInput `json:"auth"`
	Join *JoinFormInput `json:"join"`
}

// tabViewData wraps a tab view in the response payload shape.
func tabViewData(tab *page.Tab) map[string]any {
	return map[string]any{"tab": tab.View()}
}

// withTab resolves {tab} and hands it to fn.
func withTab(deps *AppDeps, fn func(w http.ResponseWriter, r *http.Request, tab *page.Tab)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, customErr := tabFromURL(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		fn(w, r, tab)
	}
}

// HandleOpenTab registers a new tab at the home page.
func HandleOpenTab(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := deps.Tabs.Open()
		resp.RespondSuccess(w, r, tabViewData(tab))
	}
}

// HandleCloseTab closes a tab and drops its pending meeting session.
func HandleCloseTab(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		if err := deps.Tabs.Close(tab.ID); err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		logx.Info("Tab closed by client", "tab_id", tab.ID)
		resp.RespondSuccess(w, r, nil)
	})
}

// HandleGetTab returns the tab's view.
func HandleGetTab(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleOpenJoinModal opens the join modal, or the login modal for signed-out callers.
func HandleOpenJoinModal(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		tab.Modal().RequestJoin(sessionFor(deps, r))
		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleOpenAuthModal opens the auth modal in the requested mode (login by default).
func HandleOpenAuthModal(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		var input AuthModalInput
		if customErr := req.BindOptionalJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if input.Mode == "" {
			input.Mode = string(meeting.AuthModeLogin)
		}

		mode, err := meeting.ParseAuthMode(input.Mode)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		if err := tab.Modal().RequestAuth(mode); err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleSwitchAuthMode flips the open auth modal between login and signup.
func HandleSwitchAuthMode(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		if err := tab.Modal().SwitchAuthMode(); err != nil {
			resp.RespondErrorWithData(w, r, errs.As(err), tabViewData(tab))
			return
		}

		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleCloseModal closes whatever modal is open.
func HandleCloseModal(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		tab.Modal().Close()
		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}

// HandleUpdateForms replaces the drafts present in the body.
func HandleUpdateForms(deps *AppDeps) http.HandlerFunc {
	return withTab(deps, func(w http.ResponseWriter, r *http.Request, tab *page.Tab) {
		var input FormsInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Auth != nil {
			tab.Modal().SetAuthForm(meeting.AuthForm{
				Email:       input.Auth.Email,
				DisplayName: input.Auth.DisplayName,
			})
		}
		if input.Join != nil {
			tab.Modal().SetJoinMeetingID(input.Join.MeetingID)
		}

		resp.RespondSuccess(w, r, tabViewData(tab))
	})
}
