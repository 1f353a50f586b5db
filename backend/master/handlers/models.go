package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
	"github.com/julienschmidt/httprouter"
	"github.com/levigross/grequests"
)

// 获取模型的列表
// worker参数不传就是local：直接查master本机的ollama
// 传了worker就代理到对应worker的models接口，现查一次
// url: /models?worker=xxx
// Method: GET
func ModelsList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		worker string
		models []*datamodels.Model
		err    error

		responseData []byte
	)

	worker = r.URL.Query().Get("worker")
	if worker == "" {
		worker = common.LOCAL_WORKER_NAME
	}

	if worker == common.LOCAL_WORKER_NAME {
		// 本机的ollama
		settings := common.GetConfig().Master.Benchmark
		client := ollama.NewClient(settings.OllamaUrl, time.Second*10)
		if models, err = client.ListModels(); err != nil {
			goto ERR
		}
	} else {
		// 代理到worker的models接口
		if models, err = fetchWorkerModels(worker); err != nil {
			if common.IsNotFound(err) {
				http.Error(w, err.Error(), 404)
				return
			}
			goto ERR
		}
	}

	if len(models) > 0 {
		if responseData, err = json.Marshal(models); err != nil {
			goto ERR
		}
	} else {
		responseData = []byte("[]")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return

ERR:
	log.Println(err.Error())
	http.Error(w, err.Error(), 500)
	return
}

// 去worker上现查一次模型的列表
func fetchWorkerModels(name string) (models []*datamodels.Model, err error) {
	var (
		record   *datamodels.Worker
		url      string
		response *grequests.Response
	)

	if record = workerRegistry.Get(name); record == nil {
		return nil, common.WorkerUnavailableError
	}

	url = strings.TrimSuffix(record.Address, "/") + "/models"
	if response, err = grequests.Get(url, &grequests.RequestOptions{
		RequestTimeout: time.Second * 10,
	}); err != nil {
		return nil, err
	}
	defer response.Close()

	if !response.Ok {
		return nil, fmt.Errorf("查询worker的模型列表出错：%s %d", name, response.StatusCode)
	}

	if err = response.JSON(&models); err != nil {
		return nil, err
	}
	return models, nil
}
