package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/julienschmidt/httprouter"
)

// 获取健康的worker列表
// url: /worker/list
// Method: GET
func WorkerList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		summaries []*datamodels.WorkerSummary
		err       error

		responseData []byte
	)

	// 从注册表中获取健康的worker
	summaries = workerRegistry.ListHealthy()

	// 返回列表
	if len(summaries) > 0 {
		if responseData, err = json.Marshal(summaries); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	} else {
		responseData = []byte("[]")
	}

	// 写入响应数据
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return
}

// worker的详情
// 不存在或者不健康的worker都是404
// url: /worker/detail/:name
// Method: GET
func WorkerDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		name   string
		worker *datamodels.Worker
		err    error

		responseData []byte
	)

	name = ps.ByName("name")
	if worker = workerRegistry.Get(name); worker == nil {
		http.Error(w, "worker不存在或者不健康："+name, 404)
		return
	}

	if responseData, err = json.Marshal(worker); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return
}

// worker上安装的模型列表
// 数据来自worker心跳上报的内容，不会去worker上现查
// url: /worker/detail/:name/models
// Method: GET
func WorkerModels(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		name   string
		worker *datamodels.Worker
		err    error

		responseData []byte
	)

	name = ps.ByName("name")
	if worker = workerRegistry.Get(name); worker == nil {
		http.Error(w, "worker不存在或者不健康："+name, 404)
		return
	}

	if len(worker.Models) > 0 {
		if responseData, err = json.Marshal(worker.Models); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	} else {
		responseData = []byte("[]")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return
}

// worker的硬件信息
// url: /worker/detail/:name/hardware
// Method: GET
func WorkerHardware(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		name   string
		worker *datamodels.Worker
		err    error

		responseData []byte
	)

	name = ps.ByName("name")
	if worker = workerRegistry.Get(name); worker == nil {
		http.Error(w, "worker不存在或者不健康："+name, 404)
		return
	}

	if worker.Hardware == nil {
		responseData = []byte("{}")
	} else if responseData, err = json.Marshal(worker.Hardware); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return
}
