package app

import (
	"fmt"
	"log"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/kataras/iris/v12"
)

// 启动管理端的web服务
func runWebApp(master *Master) {
	app := iris.New()

	// 配置应用
	appConfigure(app)

	// session
	useSessionMiddleware(app)

	// 设置路由
	setAppRoute(app, master)

	// 处理退出
	iris.RegisterOnInterrupt(func() {
		handleAppOnInterrupt(master)
	})

	config := common.GetConfig()
	addr := fmt.Sprintf("%s:%d", config.Master.Web.Host, config.Master.Web.Port)
	log.Printf("master web server: http://%s\n", addr)

	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Println("启动web出错：", err.Error())
	}
}
