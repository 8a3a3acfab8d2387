package main

import (
	"github.com/sirupsen/logrus"

	"sparkle_cms/config"
	"sparkle_cms/internal/database"
	"sparkle_cms/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// initValidator đăng ký validator và các custom rule (no_xss, slug, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Validator initialized")
}

// initConfig đọc file env và parse cấu hình server
func initConfig() {
	cfg := config.NewConfig()
	if cfg == nil {
		logrus.Fatal("Failed to load configuration")
	}
	global.MongoDB_ServerConfig = cfg
	logrus.Info("Configuration loaded")
}

// initDatabase_MongoDB mở kết nối MongoDB và lưu session toàn cục
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	logrus.Info("MongoDB connected")
}
