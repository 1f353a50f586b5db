package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/julienschmidt/httprouter"
)

// worker注册
// url: /worker/register
// Method: POST
func WorkerRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		err     error
		request *datamodels.RegisterRequest
		token   string

		responseData []byte
	)

	// 1. 解析注册的请求内容
	request = &datamodels.RegisterRequest{}
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		goto ERR
	}

	// 2. 校验必传的字段
	if request.Name == "" {
		err = fmt.Errorf("worker的name不能为空")
		goto ERR
	}
	if request.Address == "" {
		err = fmt.Errorf("worker的address不能为空")
		goto ERR
	}

	// 3. 写入注册表：重复注册会生成新的token
	token = workerRegistry.Register(request.Name, request.Version, request.Address, request.Hardware)
	log.Println("worker注册成功：", request.Name, request.Address)

	// 4. 返回注册的凭证
	if responseData, err = json.Marshal(&datamodels.RegisterResponse{
		Status: "success",
		Token:  token,
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

// worker上报心跳
// url: /worker/heartbeat
// Method: POST
func WorkerHeartbeat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		err     error
		request *datamodels.HeartbeatRequest

		responseData []byte
	)

	// 1. 解析心跳的请求内容
	request = &datamodels.HeartbeatRequest{}
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		goto ERR
	}

	if request.Name == "" {
		err = fmt.Errorf("worker的name不能为空")
		goto ERR
	}

	// 2. 更新注册表：worker不存在的时候会隐式的注册一条
	if !workerRegistry.Heartbeat(request) {
		err = fmt.Errorf("处理心跳出错：%s", request.Name)
		goto ERR
	}

	// 3. 返回正常应答
	if responseData, err = json.Marshal(&datamodels.BaseResponse{
		Status:  "success",
		Message: "heartbeat ok",
	}); err != nil {
		goto ERR
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
		return
	}

ERR:
	log.Println(err.Error())
	http.Error(w, err.Error(), 400)
	return
}
