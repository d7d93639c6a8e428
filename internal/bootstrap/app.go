package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docquery-backend/internal/documents"
	"docquery-backend/internal/extract"
	"docquery-backend/internal/llm"
	openai "docquery-backend/internal/llm/openai"
	"docquery-backend/internal/queries"
	"docquery-backend/internal/shared/config"
	"docquery-backend/internal/shared/server"
	"docquery-backend/internal/shared/storage/db"
	"docquery-backend/internal/shared/storage/object"
	localstore "docquery-backend/internal/shared/storage/object/local"
	s3store "docquery-backend/internal/shared/storage/object/s3"
	"docquery-backend/internal/shared/storage/search"
	searches "docquery-backend/internal/shared/storage/search/es"
	searchmemory "docquery-backend/internal/shared/storage/search/memory"
	"docquery-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store
	Index  search.Index

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	QueriesService   *queries.Service

	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	QueriesHandler   *queries.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	index, err := buildIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Index:  index,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Store:            app.Store,
		UsersHandler:     app.UsersHandler,
		DocumentsHandler: app.DocumentsHandler,
		QueriesHandler:   app.QueriesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.LocalStoreURL), nil
	}
}

func buildIndex(ctx context.Context, cfg config.Config) (search.Index, error) {
	if len(cfg.SearchAddresses) == 0 {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: ELASTICSEARCH_ADDRESSES empty; using in-memory search index")
			return searchmemory.New(), nil
		}
		return nil, fmt.Errorf("ELASTICSEARCH_ADDRESSES is required")
	}

	index, err := searches.New(cfg.SearchAddresses, cfg.SearchAPIKey, cfg.SearchIndexName)
	if err != nil {
		return nil, err
	}
	if err := index.Ensure(ctx); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: search index unreachable; using in-memory search index: %v", err)
			return searchmemory.New(), nil
		}
		return nil, fmt.Errorf("ensure search index: %w", err)
	}
	return index, nil
}

func buildServices(app *App) {
	var userRepo users.Repo
	var docRepo documents.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	var embedder llm.Embedder = llm.Placeholder{}
	var generator llm.Generator = llm.Placeholder{}
	if strings.TrimSpace(app.Config.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.EmbeddingModel, app.Config.LLMModel)
		if err != nil {
			log.Printf("bootstrap: openai client unavailable; semantic queries disabled: %v", err)
		} else {
			embedder = client
			generator = client
		}
	}

	pipeline := &documents.Pipeline{
		Store:     app.Store,
		Extractor: extract.PDFExtractor{},
		Repo:      docRepo,
		Index:     app.Index,
	}

	app.UsersRepo = userRepo
	app.DocumentsRepo = docRepo
	app.UsersService = users.NewService(userRepo)
	app.DocumentsService = documents.NewService(docRepo, pipeline)
	app.QueriesService = queries.NewService(docRepo, app.Index, embedder, generator)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.QueriesHandler = queries.NewHandler(app.QueriesService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
