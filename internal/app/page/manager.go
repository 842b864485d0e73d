/*
Package page tracks the browser tabs that drive the meeting workflow.

This file defines the Manager struct, which creates, tracks, retrieves and cleans up
all live Tab instances.
*/
package page

import (
	"sync"

	"github.com/rs/zerolog"

	"gatherly/internal/app/credential"
	"gatherly/internal/app/handoff"
	"gatherly/internal/configs"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/randx"
)

// Manager coordinates all live tabs.
type Manager struct {
	// tabs stores every live Tab, keyed by tab ID.
	tabs map[string]*Tab

	deps TabDeps

	// mu protects concurrent access to the tabs map.
	mu sync.RWMutex

	// the channel used by Tabs to notify the Manager to clean up and remove them.
	cleanup chan CleanupMsg

	// wg is used to wait for the runCleanupLoop goroutine to finish during shutdown.
	wg sync.WaitGroup

	logger zerolog.Logger
}

// NewManager constructs a Manager and starts its cleanup loop.
func NewManager(cfg *configs.AppConfig, requester credential.Requester, store handoff.Store) *Manager {
	m := &Manager{
		tabs: make(map[string]*Tab),
		deps: TabDeps{
			Requester:            requester,
			Store:                store,
			InactivityTimeout:    cfg.TabInactivityTimeout,
			NotificationDuration: cfg.NotificationDuration,
		},
		cleanup: make(chan CleanupMsg, 64),
		logger:  logx.Component("TabManager"),
	}

	m.wg.Add(1)

	go m.runCleanupLoop()

	return m
}

func (m *Manager) runCleanupLoop() {
	defer m.wg.Done()

	m.logger.Info().Msg("Cleanup loop started.")

	for msg := range m.cleanup {
		m.deleteTab(msg.TabID)
	}

	m.logger.Info().Msg("Cleanup loop stopped.")
}

func (m *Manager) deleteTab(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[tabID]; ok {
		delete(m.tabs, tabID)
		m.logger.Info().Str("tab_id", tabID).Msg("Tab successfully removed.")
	}
}

// Open registers a new tab and starts its Run loop.
func (m *Manager) Open() *Tab {
	tab := NewTab(randx.TabID(), m.deps, m.cleanup)

	m.mu.Lock()
	m.tabs[tab.ID] = tab
	m.mu.Unlock()

	go tab.Run()

	m.logger.Info().Str("tab_id", tab.ID).Msg("New Tab opened.")
	return tab
}

// Get returns a live tab and marks it active.
func (m *Manager) Get(tabID string) (*Tab, error) {
	m.mu.RLock()
	tab, ok := m.tabs[tabID]
	m.mu.RUnlock()

	if !ok {
		return nil, errs.NewError(errs.ErrTabNotFound)
	}

	tab.Touch()
	return tab, nil
}

// Close stops a tab and forgets it.
func (m *Manager) Close(tabID string) error {
	m.mu.Lock()
	tab, ok := m.tabs[tabID]
	delete(m.tabs, tabID)
	m.mu.Unlock()

	if !ok {
		return errs.NewError(errs.ErrTabNotFound)
	}

	tab.Stop()
	<-tab.Done()
	return nil
}

// Count returns the number of live tabs.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tabs)
}

// Shutdown stops every tab, closes the cleanup channel and waits for the cleanup loop to exit.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down Manager cleanup loop...")

	m.mu.Lock()
	tabs := m.tabs
	m.tabs = make(map[string]*Tab)
	m.mu.Unlock()

	for _, tab := range tabs {
		tab.Stop()
		<-tab.Done()
	}

	close(m.cleanup)
	m.wg.Wait()

	m.logger.Info().Msg("Manager shutdown complete.")
}
