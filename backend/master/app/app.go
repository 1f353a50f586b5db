package app

import (
	"fmt"
	"log"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datasources"
	"github.com/codelieche/modelbench/backend/common/repositories"
	"github.com/codelieche/modelbench/backend/master/apiserver"
	"github.com/codelieche/modelbench/backend/master/benchmarks"
	"github.com/codelieche/modelbench/backend/master/handlers"
	"github.com/codelieche/modelbench/backend/master/registry"
)

// 整个master共用的注册表和repo：web的路由也要用
var workerRegistry *registry.Registry
var benchmarkRepo repositories.BenchmarkRepository

type Master struct {
	TimeStart time.Time            // 启动时间
	ApiServer *apiserver.ApiServer // worker对接的api服务
	Monitor   *registry.Monitor    // 心跳监控器
}

func (master *Master) Run() {
	config := common.GetConfig()

	// 启动心跳监控的协程
	master.Monitor.Start()

	// 启动worker对接的api服务协程
	addr := fmt.Sprintf("%s:%d", config.Master.Http.Host, config.Master.Http.Port)
	log.Printf("master api server: http://%s\n", addr)
	go master.ApiServer.Run(addr)

	// 管理端的web服务：阻塞在这里
	runWebApp(master)
}

// 实例化Master
func NewMasterApp() *Master {
	config := common.GetConfig()
	heartbeat := config.Master.Heartbeat

	// 实例化worker的注册表
	workerRegistry = registry.NewRegistry(
		time.Duration(heartbeat.Interval)*time.Second,
		heartbeat.MaxMissed,
	)

	// 心跳监控器
	monitor := registry.NewMonitor(
		workerRegistry,
		time.Duration(heartbeat.CheckInterval)*time.Second,
	)

	// benchmark的结果保存在mongodb中
	benchmarkRepo = repositories.NewBenchmarkRepository(datasources.GetMongoDB())

	// benchmark引擎
	engine := benchmarks.NewEngine(workerRegistry, benchmarkRepo, config.Master.Benchmark)

	// handlers需要的依赖
	handlers.Setup(workerRegistry, engine, benchmarkRepo)

	apiServer := apiserver.NewApiServer()

	return &Master{
		TimeStart: time.Now(),
		ApiServer: apiServer,
		Monitor:   monitor,
	}
}
