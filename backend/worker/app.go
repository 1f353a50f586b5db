package worker

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
)

// 定义个全局的app
var app *Worker

type Worker struct {
	TimeStart time.Time            // 启动时间
	Name      string               // worker的标识
	Address   string               // 本机的http地址，注册的时候上报给master
	Client    *ollama.Client       // 本机的ollama客户端
	Hardware  *datamodels.Hardware // 本机的硬件信息
	Register  *Register            // 注册和心跳
}

func (w *Worker) Run() {
	// 启动worker程序
	log.Println("worker run ...")

	// 启动worker的web服务协程
	go runWeb()

	// 注册到master，周期性的上报心跳：阻塞在这里
	w.Register.keepAlive()
}

// 实例化Worker
func NewWorkerApp() *Worker {
	if app != nil {
		return app
	}

	var (
		config    *common.WorkerConfig
		name      string
		address   string
		ipAddress string
		err       error
	)

	config = common.GetConfig().Worker

	// worker的标识：不配置的话用 Ip:Port
	if ipAddress, err = common.GetFirstLocalIpAddress(); err != nil {
		log.Println("获取本机的IP出错：", err.Error())
		ipAddress = "127.0.0.1"
	}
	if name = config.Name; name == "" {
		name = fmt.Sprintf("%s:%d", ipAddress, config.Http.Port)
	}
	address = fmt.Sprintf("http://%s:%d", ipAddress, config.Http.Port)

	// 本机的ollama客户端
	// 短请求用web的超时；生成是流式的，默认不限制时长，要限制的话单独配置
	client := ollama.NewClient(config.OllamaUrl, time.Duration(config.Http.Timeout)*time.Millisecond)
	client.GenerateTimeout = time.Duration(config.GenerationTimeout) * time.Second

	// 采集本机的硬件信息：采集不到也不影响启动
	hardware := common.CollectHardwareInfo()

	// 注册器
	register := &Register{
		masterUrl: strings.TrimSuffix(config.MasterUrl, "/"),
		interval:  time.Duration(config.HeartbeatInterval) * time.Second,
		info: &datamodels.RegisterRequest{
			Name:     name,
			Version:  common.VERSION,
			Address:  address,
			Hardware: hardware,
		},
		client: client,
	}

	app = &Worker{
		TimeStart: time.Now(),
		Name:      name,
		Address:   address,
		Client:    client,
		Hardware:  hardware,
		Register:  register,
	}
	return app
}
