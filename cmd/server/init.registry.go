package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"sparkle_cms/config"
	"sparkle_cms/internal/database"
	"sparkle_cms/internal/global"
)

// InitRegistry đăng ký database và các collection vào registry toàn cục,
// rồi tạo index cho các collection CMS.
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_CMS)
	if err := database.CreateCmsIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to create CMS indexes: %v", err)
	}
	logrus.Info("CMS indexes created")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_CMS)

	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName_CMS, db); err != nil {
		logrus.Errorf("Failed to register database %s: %v", cfg.MongoDB_DBName_CMS, err)
		return err
	}

	colNames := []string{
		global.MongoDB_ColNames.CmsSections,
		global.MongoDB_ColNames.CmsLocations,
		global.MongoDB_ColNames.CmsServices,
		global.MongoDB_ColNames.CmsFaqQuestions,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
