package app

import (
	"github.com/codelieche/modelbench/backend/common/datasources"
	"github.com/codelieche/modelbench/backend/common/repositories"
	"github.com/codelieche/modelbench/backend/master/web/controllers"
	"github.com/codelieche/modelbench/backend/master/web/services"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"
)

func setAppRoute(app *iris.Application, master *Master) {
	// 首页
	mvc.Configure(app.Party("/"), func(app *mvc.Application) {
		// 注册控制器需要Session和StartTime
		app.Register(
			sess.Start,
			master.TimeStart,
		)
		app.Handle(new(controllers.IndexController))
	})

	// /api/v1相关的路由
	apiV1 := app.Party("/api/v1")

	// worker相关的api
	mvc.Configure(apiV1.Party("/worker"), func(app *mvc.Application) {
		// 实例化worker的Service：数据来自注册表
		service := services.NewWorkerService(workerRegistry)
		// 注册service
		app.Register(service, sess.Start)
		// 添加Controller
		app.Handle(new(controllers.WorkerController))
	})

	// benchmark结果相关的api
	mvc.Configure(apiV1.Party("/benchmark"), func(app *mvc.Application) {
		// 实例化benchmark的Service：结果保存在mongodb中
		service := services.NewBenchmarkService(benchmarkRepo)
		app.Register(service, sess.Start)
		app.Handle(new(controllers.BenchmarkController))
	})

	// 提示词相关的api
	db := datasources.GetDb()
	mvc.Configure(apiV1.Party("/prompt"), func(app *mvc.Application) {
		// 实例化prompt的Repository和Service
		repo := repositories.NewPromptRepository(db)
		service := services.NewPromptService(repo)
		app.Register(service, sess.Start)
		app.Handle(new(controllers.PromptController))
	})
}
