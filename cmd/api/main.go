package main

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"showhome/internal/config"
	"showhome/internal/database"
	"showhome/internal/domain/access"
	"showhome/internal/domain/auth"
	"showhome/internal/domain/content"
	"showhome/internal/domain/gallery"
	"showhome/internal/domain/uploads"
	"showhome/internal/graph"
	"showhome/internal/middleware"
	jwtsvc "showhome/internal/pkg/jwt"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if config.ProdLike(cfg.AppEnv) {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	tablesSvc, err := newTablesClient(cfg)
	if err != nil {
		log.Fatalf("tables client: %v", err)
	}

	graphCred, err := azidentity.NewClientSecretCredential(
		cfg.GraphTenantID, cfg.GraphClientID, cfg.GraphClientSecret, nil)
	if err != nil {
		log.Fatalf("graph credential: %v", err)
	}

	// Registry
	accessRepo := access.NewTableRepository(tablesSvc, cfg.TableName)
	accessService := access.NewService(accessRepo, log)
	accessHandler := access.NewHandler(accessService)

	// Gallery
	graphClient := graph.NewClient(graphCred, graph.Options{
		SiteID:  cfg.GraphSiteID,
		DriveID: cfg.GraphDriveID,
	}, log)
	resolver := gallery.NewResolver(graphClient, cfg.LibraryPrefixes, log)
	galleryService := gallery.NewService(graphClient, resolver, accessService, cfg.DefaultFolderPath, log)
	galleryHandler := gallery.NewHandler(galleryService)

	// CMS content
	contentService := content.NewService(content.NewRepository(db))
	contentHandler := content.NewHandler(contentService)

	// Admin auth
	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	authHandler := auth.NewHandler(auth.NewService(cfg.AdminPasswordHash, jwtService))

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		galleryHandler.RegisterRoutes(v1)
		contentHandler.RegisterPublicRoutes(v1)

		// admin
		admin := v1.Group("/")
		admin.Use(middleware.AdminAuth(jwtService))
		{
			accessHandler.RegisterRoutes(admin)
			contentHandler.RegisterAdminRoutes(admin)

			// SAS issuance needs the storage account key; without it
			// the route is simply absent.
			if cfg.StorageAccountKey != "" {
				uploadsService, err := uploads.NewService(
					cfg.StorageAccountName, cfg.StorageAccountKey,
					cfg.UploadContainer, cfg.SASExpiry, log)
				if err != nil {
					log.Fatalf("uploads service: %v", err)
				}
				uploads.NewHandler(uploadsService).RegisterRoutes(admin)
			} else {
				log.Warn("STORAGE_ACCOUNT_KEY not set, upload SAS issuance disabled")
			}
		}
	}

	log.WithField("addr", cfg.ListenAddr).Info("starting api server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

// newTablesClient prefers shared-key auth and falls back to the
// ambient Azure credential chain (managed identity, CLI).
func newTablesClient(cfg *config.Config) (*aztables.ServiceClient, error) {
	if cfg.StorageAccountKey != "" {
		cred, err := aztables.NewSharedKeyCredential(cfg.StorageAccountName, cfg.StorageAccountKey)
		if err != nil {
			return nil, err
		}
		return aztables.NewServiceClientWithSharedKey(cfg.TablesServiceURL, cred, nil)
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return aztables.NewServiceClient(cfg.TablesServiceURL, cred, nil)
}
