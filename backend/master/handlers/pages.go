package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/julienschmidt/httprouter"
)

// 首页：返回服务的基本信息
func IndexPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	info := map[string]interface{}{
		"app":     "modelbench master",
		"version": common.VERSION,
		"time":    time.Now().Format("2006-01-02 15:04:05"),
		"workers": len(workerRegistry.ListHealthy()),
		"running": len(benchmarkEngine.ListRunning()),
	}

	if responseData, err := json.Marshal(info); err != nil {
		http.Error(w, err.Error(), 500)
		return
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
		return
	}
}
