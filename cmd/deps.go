package cmd

import (
	"time"

	"github.com/cristianoliveira/activity-tray/internal/config"
	"github.com/cristianoliveira/activity-tray/internal/restapi"
	"github.com/cristianoliveira/activity-tray/internal/unread"
)

var unreadStore, _ = unread.NewStoreFromConfig()
var unreadBus = unread.NewBus()
var unreadCache = unread.NewCache(unreadStore, unreadBus)
var apiClient = newAPIClient()

func newAPIClient() *restapi.Client {
	config.Load()
	return restapi.NewClient(config.Get("server_url", "http://localhost:8000/api"))
}

// resolveActor prefers the command flag over the configured actor id.
func resolveActor(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.Get("actor_id", "")
}

func toastDurations() (visibleFor, exitFor time.Duration) {
	visibleFor = time.Duration(config.GetInt("toast_visible_ms", 5000)) * time.Millisecond
	exitFor = time.Duration(config.GetInt("toast_exit_ms", 300)) * time.Millisecond
	return visibleFor, exitFor
}

// cliRows adapts the unread cache to the reconciler's row interface for
// one-shot commands, where no page of rows is held in memory.
type cliRows struct {
	cache *unread.Cache
}

func (r cliRows) ApplyRead([]string, time.Time, string) {}
func (r cliRows) LoadedIDs() []string                   { return r.cache.IDs() }
func (r cliRows) UnreadLoadedIDs() []string             { return r.cache.IDs() }
