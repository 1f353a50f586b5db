package app

import (
	"context"
	"log"

	"github.com/codelieche/modelbench/backend/common/datasources"
)

// 处理control/CMD + c关闭的时候
func handleAppOnInterrupt(master *Master) {
	log.Println("程序即将退出")

	// 停止心跳监控
	if master.Monitor != nil {
		master.Monitor.Stop()
	}

	// 关闭mongodb的连接
	if mongoDB := datasources.GetMongoDB(); mongoDB != nil && mongoDB.Client != nil {
		mongoDB.Client.Disconnect(context.TODO())
	}

	// 关闭mysql的连接
	if db := datasources.GetDb(); db != nil {
		db.Close()
	}
}
