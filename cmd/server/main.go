package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	cmssvc "sparkle_cms/internal/api/cms/service"
	"sparkle_cms/internal/api/events"
	"sparkle_cms/internal/global"
	"sparkle_cms/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// buildContentStack chọn content backend theo cấu hình và tạo resolver.
// Backend được chọn một lần ở đây, resolver không đổi backend giữa chừng.
// MongoBackend luôn được tạo vì admin CRUD và provisioning đi thẳng vào Mongo.
func buildContentStack() (*cmssvc.Resolver, *cmssvc.MongoBackend) {
	log := logger.GetAppLogger()

	mongoBackend, err := cmssvc.NewMongoBackend()
	if err != nil {
		log.Fatalf("Failed to create Mongo content backend: %v", err)
	}

	cfg := global.MongoDB_ServerConfig
	var backend cmssvc.ContentBackend = mongoBackend
	if cfg.CMS_UseHeadless {
		if cfg.HeadlessCMS_BaseURL == "" {
			log.Fatal("CMS_USE_HEADLESS=true nhưng thiếu HEADLESS_CMS_BASE_URL")
		}
		backend = cmssvc.NewHeadlessBackend(cfg.HeadlessCMS_BaseURL, cfg.HeadlessCMS_Token, cfg.Media_BaseURL)
		log.WithField("baseURL", cfg.HeadlessCMS_BaseURL).Info("Content backend: headless CMS")
	} else {
		log.Info("Content backend: MongoDB")
	}

	return cmssvc.NewResolver(backend), mongoBackend
}

// registerDataChangeAudit ghi audit log cho mọi thay đổi dữ liệu qua base service
func registerDataChangeAudit() {
	auditLog := logger.GetAuditLogger()
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		auditLog.WithFields(logrus.Fields{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}).Info("Data changed")
	})
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper function để resolve đường dẫn tương đối từ thư mục gốc dự án
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	// Kiểm tra xem có bật TLS không
	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		listenConfig := fiber.ListenConfig{}
		if err := app.Listen(address, listenConfig); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Đăng ký audit log cho các thay đổi dữ liệu
	registerDataChangeAudit()

	// Chọn content backend và tạo resolver
	resolver, mongoBackend := buildContentStack()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData(mongoBackend)

	// Khởi tạo app với cấu hình và chạy trên main thread
	app := InitFiberApp(resolver, mongoBackend)
	main_thread(app)
}
