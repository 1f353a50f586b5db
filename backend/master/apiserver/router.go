package apiserver

import (
	"github.com/codelieche/modelbench/backend/master/handlers"
	"github.com/julienschmidt/httprouter"
)

func newApiRouter() *httprouter.Router {
	router := httprouter.New()

	// 开始添加路由等
	// Pages
	router.GET("/", handlers.IndexPage)

	// Worker相关
	router.POST("/worker/register", handlers.WorkerRegister)
	router.POST("/worker/heartbeat", handlers.WorkerHeartbeat)
	router.GET("/worker/list", handlers.WorkerList)
	router.GET("/worker/detail/:name", handlers.WorkerDetail)
	router.GET("/worker/detail/:name/models", handlers.WorkerModels)
	router.GET("/worker/detail/:name/hardware", handlers.WorkerHardware)

	// 模型相关
	router.GET("/models", handlers.ModelsList)

	// benchmark相关
	router.POST("/benchmark/create", handlers.BenchmarkCreate)
	router.GET("/benchmark/detail/:id", handlers.BenchmarkDetail)
	router.GET("/benchmark/running", handlers.BenchmarkRunning)

	// 生成的socket接口
	router.GET("/ws/generate/:model", handlers.GenerateSocket)

	return router
}
