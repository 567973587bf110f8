// Package app wires configuration, storage and the domain stores together
// and owns the session of one client.
package app

import (
	"fmt"
	"log"
	"os"

	"github.com/notepid/roomielink/internal/catalog"
	"github.com/notepid/roomielink/internal/config"
	"github.com/notepid/roomielink/internal/conversation"
	"github.com/notepid/roomielink/internal/db"
	"github.com/notepid/roomielink/internal/landing"
	"github.com/notepid/roomielink/internal/saved"
	"github.com/notepid/roomielink/internal/scripting"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/user"
)

type App struct {
	ConfigPath string
	Config     *config.Config
	DBPath     string
	DB         *db.DB
	Store      *storage.Store

	Users     *user.Directory
	Catalog   *catalog.Catalog
	Saved     *saved.Tracker
	Landing   *landing.Preferences
	Responder *scripting.Responder

	Session *user.Session
}

// New loads the config at configPath and opens the app. When explicit is
// false a missing file falls back to the built-in defaults.
func New(configPath string, explicit bool) (*App, func(), error) {
	cfg, err := config.LoadOrDefault(configPath, explicit)
	if err != nil {
		return nil, nil, err
	}
	a, cleanup, err := Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	a.ConfigPath = configPath
	return a, cleanup, nil
}

// Open builds an App from an already loaded config.
func Open(cfg *config.Config) (*App, func(), error) {
	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	database, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.New(database.DB, storage.Options{
		Prefix:      cfg.Storage.Prefix,
		Codec:       cfg.Storage.Codec,
		Compression: cfg.Storage.Compression,
		Debug:       cfg.App.Debug,
	})
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	users := user.NewDirectory(store, user.Options{
		BcryptCost:  cfg.Auth.BcryptCost,
		MinPassword: cfg.Auth.MinPassword,
		Debug:       cfg.App.Debug,
	})
	if err := users.Initialize(); err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	responder, err := scripting.NewResponder(cfg.Paths.ReplyScript)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	a := &App{
		Config:    cfg,
		DBPath:    cfg.Paths.Database,
		DB:        database,
		Store:     store,
		Users:     users,
		Catalog:   catalog.New(store, users, catalog.Options{Debug: cfg.App.Debug}),
		Saved:     saved.New(users, cfg.App.Debug),
		Landing:   landing.New(store),
		Responder: responder,
		Session:   user.NewSession(),
	}

	if cfg.App.Debug {
		log.Printf("roomielink: opened %s (codec %s, compression %s)", cfg.Paths.Database, cfg.Storage.Codec, cfg.Storage.Compression)
	}

	cleanup := func() {
		responder.Close()
		_ = database.Close()
	}

	return a, cleanup, nil
}

// CurrentUser returns the logged-in user, or nil.
func (a *App) CurrentUser() *user.User {
	return a.Users.CurrentUser(a.Session)
}

// Conversations opens the conversation store of the logged-in user.
// onReply may be nil. The caller must Close the returned store.
func (a *App) Conversations(onReply func(conversation.Conversation)) (*conversation.Store, error) {
	u, err := a.Users.Require(a.Session)
	if err != nil {
		return nil, err
	}
	return conversation.New(a.Store, conversation.Options{
		Partition:   string(u.Partition()),
		Username:    u.Username,
		DisplayName: u.Name,
		Replier:     a.Responder,
		ReplyDelay:  a.Config.Chat.ReplyDelay,
		Debug:       a.Config.App.Debug,
		OnReply:     onReply,
	}), nil
}

// Stats returns the dashboard counters of the logged-in landlord.
func (a *App) Stats() (catalog.Stats, error) {
	convs, err := a.Conversations(nil)
	if err != nil {
		return catalog.Stats{}, err
	}
	defer convs.Close()

	unread, err := convs.UnreadCount()
	if err != nil {
		return catalog.Stats{}, err
	}
	return a.Catalog.Stats(a.Session, unread)
}
