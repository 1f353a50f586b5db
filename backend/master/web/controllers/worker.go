package controllers

import (
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/master/web/services"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
)

type WorkerController struct {
	Session *sessions.Session
	Ctx     iris.Context
	Service services.WorkerService
}

// 获取worker的详情：不健康的也是404
func (c *WorkerController) GetBy(name string) (worker *datamodels.Worker, success bool) {
	if worker, err := c.Service.Get(name); err != nil {
		return nil, false
	} else {
		return worker, true
	}
}

// 健康的worker列表
func (c *WorkerController) GetList() (summaries []*datamodels.WorkerSummary, success bool) {
	if summaries, err := c.Service.List(); err != nil {
		return nil, false
	} else {
		return summaries, true
	}
}

// worker上安装的模型列表：数据来自心跳上报的内容
// url: /api/v1/worker/models/{name}
func (c *WorkerController) GetModelsBy(name string) (models []*datamodels.Model, success bool) {
	if worker, err := c.Service.Get(name); err != nil {
		return nil, false
	} else {
		return worker.Models, true
	}
}

// worker的硬件信息
// url: /api/v1/worker/hardware/{name}
func (c *WorkerController) GetHardwareBy(name string) (hardware *datamodels.Hardware, success bool) {
	if worker, err := c.Service.Get(name); err != nil {
		return nil, false
	} else {
		return worker.Hardware, true
	}
}
