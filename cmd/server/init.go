package main

import (
	"github.com/sirupsen/logrus"

	"github.com/PhuocTran96/store-inspector-sub000/config"
	"github.com/PhuocTran96/store-inspector-sub000/internal/database"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục: validator, cấu hình server và
// kết nối MongoDB.
func InitGlobal() {
	initValidator()
	initConfig()
	initDatabaseMongoDB()
}

func initValidator() {
	global.InitValidator()
	logrus.Info("Đã khởi tạo validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Không thể khởi tạo cấu hình: config là nil")
	}
	logrus.Info("Đã khởi tạo cấu hình server")
}

func initDatabaseMongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Không thể kết nối MongoDB: %v", err)
	}
}
