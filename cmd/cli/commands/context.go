package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ChefStevePopp/ChefLife-sub003/internal/config"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/clients/sheetsclient"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// The sheets client and database are initialized lazily: most runs analyze
// local CSV files and never need either.
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Env    string

	sheetsClient *sheetsclient.Client
	database     *postgres.DB
}

// SheetsClient returns the Google Sheets client, running the OAuth flow on
// first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Initializing sheets client")
	oauthCfg, err := config.LoadOAuthClient(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.sheetsClient = client
	return client, nil
}

// Database returns the Postgres store, connecting and running migrations on
// first use
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}

	if app.Cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("databaseURL is not configured")
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.database = database
	return database, nil
}

// Close releases any lazily acquired resources
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
	}
}
