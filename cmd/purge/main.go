package main

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/sirupsen/logrus"

	"showhome/internal/config"
	"showhome/internal/domain/access"
)

// Removes expired access codes. Meant to run unattended on a daily
// timer; shares the purge implementation with the admin endpoint so
// the expiry math cannot drift.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	svc, err := newTablesClient(cfg)
	if err != nil {
		log.Fatalf("tables client: %v", err)
	}

	service := access.NewService(access.NewTableRepository(svc, cfg.TableName), log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := service.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("purge failed after removing %d rows: %v", purged, err)
	}
	log.WithField("purged", purged).Info("purge completed")
}

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
