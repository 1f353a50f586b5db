package worker

import "github.com/julienschmidt/httprouter"

// 实例化router
func newWebRouter() *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", healthHandler)
	router.GET("/models", modelsHandler)
	router.GET("/hardware", hardwareHandler)
	// 生成的socket接口
	router.GET("/ws/generate/:model", generateSocketHandler)

	return router
}
