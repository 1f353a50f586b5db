package controllers

import (
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/master/web/services"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"
	"github.com/kataras/iris/v12/sessions"
)

type BenchmarkController struct {
	Session *sessions.Session
	Ctx     iris.Context
	Service services.BenchmarkService
}

// 根据ID获取benchmark的结果
func (c *BenchmarkController) GetBy(id string) (result *datamodels.BenchmarkResult, success bool) {
	if result, err := c.Service.Get(id); err != nil {
		return nil, false
	} else {
		if result == nil {
			return nil, false
		}
		return result, true
	}
}

// 获取benchmark的结果列表
// 可以根据model、worker筛选，不传的时候返回最近的
func (c *BenchmarkController) GetList(ctx iris.Context) (results []*datamodels.BenchmarkResult, success bool) {
	// 定义变量
	var (
		modelName string
		worker    string
		limit     int
		err       error
	)

	// 获取变量
	modelName = ctx.URLParam("model")
	worker = ctx.URLParam("worker")
	limit = ctx.URLParamIntDefault("limit", 20)

	// 获取结果列表
	if results, err = c.Service.List(modelName, worker, limit); err != nil {
		return nil, false
	} else {
		return results, true
	}
}

// 按时间段查询benchmark的结果
// start和end是RFC3339格式的时间
func (c *BenchmarkController) GetTimerange(ctx iris.Context) (results []*datamodels.BenchmarkResult, success bool) {
	var (
		startTime time.Time
		endTime   time.Time
		err       error
	)

	if startTime, err = time.Parse(time.RFC3339, ctx.URLParam("start")); err != nil {
		return nil, false
	}
	if endTime, err = time.Parse(time.RFC3339, ctx.URLParam("end")); err != nil {
		return nil, false
	}

	if results, err = c.Service.ListByTimeRange(startTime, endTime); err != nil {
		return nil, false
	} else {
		return results, true
	}
}

// 删除benchmark的结果
func (c *BenchmarkController) DeleteBy(id string) mvc.Result {
	if success, err := c.Service.Delete(id); err != nil {
		return mvc.Response{
			Err: err,
		}
	} else {
		if success {
			return mvc.Response{
				Code: 204,
			}
		} else {
			return mvc.Response{
				Code: 400,
			}
		}
	}
}
