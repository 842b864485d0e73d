/*
Package page tracks the browser tabs that drive the meeting workflow.

This file defines the Tab struct. A Tab owns one page's modal state, notification,
handoff slot and current location, and shuts itself down after a period of inactivity.
Navigating a tab abandons whatever workflow was running on the previous page.
*/
package page

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gatherly/internal/app/credential"
	"gatherly/internal/app/handoff"
	"gatherly/internal/app/identity"
	"gatherly/internal/app/meeting"
	"gatherly/internal/app/notify"
	"gatherly/internal/pkg/logx"
)

// HomePath is the location every tab starts at.
const HomePath = "/"

const slotClearTimeout = 5 * time.Second

// CleanupMsg asks the Manager to forget a tab.
type CleanupMsg struct {
	TabID string
}

// TabDeps are the collaborators shared by every tab.
type TabDeps struct {
	Requester            credential.Requester
	Store                handoff.Store
	InactivityTimeout    time.Duration
	NotificationDuration time.Duration
}

// View is the renderable state of a tab.
type View struct {
	TabID        string               `json:"tabId"`
	Location     string               `json:"location"`
	Modal        meeting.ModalState   `json:"modal"`
	Forms        meeting.Forms        `json:"forms"`
	Notification *notify.Notification `json:"notification"`
}

// Tab is a single browser tab.
type Tab struct {
	// ID is the tab's UUID, sent by the browser in every request.
	ID string

	// mu protects location and the page context.
	mu         sync.Mutex
	location   string
	pageCtx    context.Context
	cancelPage context.CancelFunc

	modal     *meeting.Coordinator
	notices   *notify.Center
	slot      handoff.Slot
	initiator *meeting.Initiator
	join      *meeting.JoinFlow

	// touch resets the inactivity timer.
	touch chan struct{}

	// a write-only channel used to notify the Manager to clean up this tab.
	cleanupChan chan<- CleanupMsg

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	inactivityTimeout time.Duration

	logger zerolog.Logger
}

// NewTab creates a tab at HomePath. Call Run to start its lifecycle.
func NewTab(tabID string, deps TabDeps, cleanupChan chan<- CleanupMsg) *Tab {
	pageCtx, cancel := context.WithCancel(context.Background())

	t := &Tab{
		ID:                tabID,
		location:          HomePath,
		pageCtx:           pageCtx,
		cancelPage:        cancel,
		modal:             meeting.NewCoordinator(tabID),
		notices:           notify.NewCenter(deps.NotificationDuration),
		slot:              handoff.NewSlot(deps.Store, tabID),
		touch:             make(chan struct{}, 1),
		cleanupChan:       cleanupChan,
		stopChan:          make(chan struct{}),
		done:              make(chan struct{}),
		inactivityTimeout: deps.InactivityTimeout,
		logger:            logx.Component("Tab").With().Str("tab_id", tabID).Logger(),
	}

	t.initiator = meeting.NewInitiator(deps.Requester, t.slot, t, t.notices, t.modal)
	t.join = meeting.NewJoinFlow(t, t.modal)

	return t
}

// Run blocks until the tab is stopped or stays idle for the inactivity timeout.
// On exit the page context is cancelled, the handoff slot cleared and the Manager notified.
func (t *Tab) Run() {
	shutdownTimer := time.NewTimer(t.inactivityTimeout)

	defer func() {
		shutdownTimer.Stop()

		t.mu.Lock()
		t.cancelPage()
		t.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), slotClearTimeout)
		if err := t.slot.Clear(ctx); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to clear handoff slot.")
		}
		cancel()

		func() {
			defer func() {
				if r := recover(); r != nil {
					logx.Warn("Recovered from panic during Manager cleanup notification (channel likely closed).")
				}
			}()

			select {
			case t.cleanupChan <- CleanupMsg{TabID: t.ID}:
			default:
				t.logger.Warn().Msg("Manager cleanup channel blocked/full. Skipping cleanup notification.")
			}
		}()

		close(t.done)
		t.logger.Info().Msg("Tab closed.")
	}()

	for {
		select {
		case <-t.touch:
			if !shutdownTimer.Stop() {
				select {
				case <-shutdownTimer.C:
				default:
				}
			}
			shutdownTimer.Reset(t.inactivityTimeout)

		case <-shutdownTimer.C:
			t.logger.Info().Msgf("Tab inactivity timeout (%s) reached.", t.inactivityTimeout)
			return

		case <-t.stopChan:
			return
		}
	}
}

// Stop ends the tab's Run loop. It is safe to call more than once.
func (t *Tab) Stop() {
	t.stopOnce.Do(func() { close(t.stopChan) })
}

// Done is closed once the tab has finished shutting down.
func (t *Tab) Done() <-chan struct{} {
	return t.done
}

// Touch marks the tab as active.
func (t *Tab) Touch() {
	select {
	case t.touch <- struct{}{}:
	default:
	}
}

// Navigate moves the tab to path. The previous page's context is cancelled, which
// abandons any workflow still running on it.
func (t *Tab) Navigate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.navigateLocked(path)
}

func (t *Tab) navigateLocked(path string) {
	t.cancelPage()
	t.pageCtx, t.cancelPage = context.WithCancel(context.Background())

	t.logger.Info().
		Str("from", t.location).
		Str("to", path).
		Msg("Tab navigated.")

	t.location = path
}

// Commit lands a workflow started on the page ctx was bound to. While holding the tab,
// it runs land and then moves to path. If that page has already been left, nothing runs
// and meeting.ErrAbandoned is returned.
func (t *Tab) Commit(ctx context.Context, path string, land func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ctx.Err() != nil {
		return meeting.ErrAbandoned
	}

	if land != nil {
		if err := land(); err != nil {
			return err
		}
	}

	t.navigateLocked(path)
	return nil
}

// Location returns the tab's current path.
func (t *Tab) Location() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.location
}

// Bind returns a context that ends when either parent or the current page ends.
// Navigation cancels it before Navigate returns.
func (t *Tab) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	t.mu.Lock()
	ctx, cancel := context.WithCancel(t.pageCtx)
	t.mu.Unlock()

	stop := context.AfterFunc(parent, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

// Modal returns the tab's modal coordinator.
func (t *Tab) Modal() *meeting.Coordinator {
	return t.modal
}

// Notices returns the tab's notification center.
func (t *Tab) Notices() *notify.Center {
	return t.notices
}

// Slot returns the tab's handoff slot.
func (t *Tab) Slot() handoff.Slot {
	return t.slot
}

// StartMeeting runs the start-meeting workflow on the current page.
func (t *Tab) StartMeeting(ctx context.Context, id *identity.Identity) error {
	ctx, cancel := t.Bind(ctx)
	defer cancel()

	return t.initiator.StartMeeting(ctx, id)
}

// JoinMeeting runs the join workflow on the current page.
func (t *Tab) JoinMeeting(ctx context.Context, id *identity.Identity, meetingID string) error {
	ctx, cancel := t.Bind(ctx)
	defer cancel()

	return t.join.JoinMeeting(ctx, id, meetingID)
}

// View snapshots the tab for rendering.
func (t *Tab) View() View {
	return View{
		TabID:        t.ID,
		Location:     t.Location(),
		Modal:        t.modal.State(),
		Forms:        t.modal.Forms(),
		Notification: t.notices.Current(),
	}
}
