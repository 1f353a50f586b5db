package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/julienschmidt/httprouter"
)

// 创建benchmark
// 执行是异步的，这里只校验参数、解析好目标就返回ID
// url: /benchmark/create
// Method: POST
func BenchmarkCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		err     error
		request *BenchmarkCreateRequest
		config  *datamodels.BenchmarkConfig
		runID   string

		responseData []byte
	)

	// 1. 解析请求的内容
	request = &BenchmarkCreateRequest{}
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		goto ERR
	}

	// worker不传就是本机执行
	if request.Worker == "" {
		request.Worker = common.LOCAL_WORKER_NAME
	}

	// 2. 实例化配置：取值范围的校验在这里面
	if config, err = datamodels.NewBenchmarkConfig(
		request.ModelName, request.Prompt, request.Iterations,
		request.Temperature, request.TopP, request.TopK, request.RepeatPenalty,
		request.Hardware,
	); err != nil {
		goto ERR
	}

	// 3. 创建并开始执行
	if runID, err = benchmarkEngine.Start(request.Worker, config); err != nil {
		// 目标worker不存在或者不健康
		if common.IsNotFound(err) {
			http.Error(w, err.Error(), 404)
			return
		}
		goto ERR
	}
	log.Println("benchmark开始执行：", runID, request.Worker, request.ModelName)

	// 4. 返回本次执行的ID：刚创建还没进入迭代，状态是pending
	if responseData, err = json.Marshal(&BenchmarkCreateResponse{
		ID:     runID,
		Status: common.BENCHMARK_STATUS_PENDING,
	}); err != nil {
		goto ERR
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
		return
	}

	// 错误处理
ERR:
	log.Println(err.Error())
	http.Error(w, err.Error(), 400)
	return
}

// 查询benchmark的状态
// 执行中：只返回running的状态
// 已结束：返回终态的结果；engine里没有的再去mongodb中查
// url: /benchmark/detail/:id
// Method: GET
func BenchmarkDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		id        string
		result    *datamodels.BenchmarkResult
		isRunning bool
		err       error

		responseData []byte
	)

	id = ps.ByName("id")

	// 1. 先问engine
	result, isRunning = benchmarkEngine.GetStatus(id)
	if isRunning {
		if responseData, err = json.Marshal(&BenchmarkStatusResponse{
			ID:     id,
			Status: common.BENCHMARK_STATUS_RUNNING,
		}); err != nil {
			goto ERR
		} else {
			w.Header().Set("Content-Type", "application/json")
			w.Write(responseData)
			return
		}
	}

	// 2. engine里没有：去mongodb中查
	if result == nil && benchmarkRepo != nil {
		if result, err = benchmarkRepo.Get(id); err != nil {
			goto ERR
		}
	}
	if result == nil {
		http.Error(w, fmt.Sprintf("benchmark不存在：%s", id), 404)
		return
	}

	// 3. 返回终态的结果
	if responseData, err = json.Marshal(result); err != nil {
		goto ERR
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
		return
	}

ERR:
	log.Println(err.Error())
	http.Error(w, err.Error(), 500)
	return
}

// 获取执行中的benchmark列表
// url: /benchmark/running
// Method: GET
func BenchmarkRunning(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		runIDs []string
		err    error

		responseData []byte
	)

	runIDs = benchmarkEngine.ListRunning()

	if len(runIDs) > 0 {
		if responseData, err = json.Marshal(runIDs); err != nil {
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
