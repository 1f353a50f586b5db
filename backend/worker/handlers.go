package worker

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/julienschmidt/httprouter"
)

// web handlers

// worker的健康状态
// ollama不可用的时候available是false，http本身还是200
func healthHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		responseData []byte
		err          error
		info         map[string]interface{}
	)

	info = make(map[string]interface{})
	info["name"] = app.Name
	info["version"] = common.VERSION
	info["available"] = app.Client.CheckConnection()
	info["uptime"] = int(time.Now().Sub(app.TimeStart).Seconds())

	if responseData, err = json.Marshal(info); err != nil {
		goto ERR
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
		return
	}
ERR:
	http.Error(w, err.Error(), 500)
	return
}

// 本机安装的模型列表：每次都现查ollama
func modelsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		models       []*datamodels.Model
		responseData []byte
		err          error
	)

	if models, err = app.Client.ListModels(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if len(models) > 0 {
		if responseData, err = json.Marshal(models); err != nil {
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

// 本机的硬件信息
// 启动的时候采集的快照，每次请求重新采集太慢了
func hardwareHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		responseData []byte
		err          error
	)

	if app.Hardware == nil {
		responseData = []byte("{}")
	} else if responseData, err = json.Marshal(app.Hardware); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
	return
}
