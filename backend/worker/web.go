package worker

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/codelieche/modelbench/backend/common"
)

// 启动worker的web服务
// master的models、hardware代理接口和生成的socket接口都打到这里
func runWeb() {
	config := common.GetConfig().Worker
	address := fmt.Sprintf("%s:%d", config.Http.Host, config.Http.Port)
	log.Println("worker web address:", address)

	router := newWebRouter()
	if err := http.ListenAndServe(address, router); err != nil {
		log.Println("启动web失败：", err.Error())
		os.Exit(1)
	} else {
		log.Println("worker web exit")
	}
}
