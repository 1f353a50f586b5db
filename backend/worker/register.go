package worker

import (
	"fmt"
	"log"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
	"github.com/levigross/grequests"
)

// 注册worker信息到master
// 注册成功后周期性的上报心跳，心跳出错就重新注册
type Register struct {
	masterUrl string                      // master的地址
	interval  time.Duration               // 上报心跳的间隔
	info      *datamodels.RegisterRequest // 注册的时候上报的信息
	client    *ollama.Client              // 本机的ollama客户端
	token     string                      // 注册的凭证
}

// 注册到master并保持心跳
func (register *Register) keepAlive() {
	var (
		err error
	)

	for {
		// 注册到master
		if err = register.register(); err != nil {
			log.Println("注册到master出错：", err.Error())
			goto RETRY
		}
		log.Println("注册到master成功：", register.info.Name)

		// 周期性的上报心跳
		for {
			if err = register.heartbeat(); err != nil {
				// 心跳出错：可能master重启了，重新注册
				log.Println("上报心跳出错：", err.Error())
				goto RETRY
			}
			time.Sleep(register.interval)
		}

	RETRY:
		time.Sleep(register.interval)
	}
}

// 注册到master
func (register *Register) register() (err error) {
	var (
		url              string
		response         *grequests.Response
		registerResponse *datamodels.RegisterResponse
	)

	url = register.masterUrl + "/worker/register"
	if response, err = grequests.Post(url, &grequests.RequestOptions{
		JSON:           register.info,
		RequestTimeout: time.Second * 10,
	}); err != nil {
		return err
	}
	defer response.Close()

	if !response.Ok {
		return fmt.Errorf("注册接口返回了%d：%s", response.StatusCode, response.String())
	}

	// 保存注册的凭证
	registerResponse = &datamodels.RegisterResponse{}
	if err = response.JSON(registerResponse); err != nil {
		return err
	}
	register.token = registerResponse.Token

	return nil
}

// 上报一次心跳
// 心跳带上本机ollama的可用状态和模型列表
func (register *Register) heartbeat() (err error) {
	var (
		url      string
		request  *datamodels.HeartbeatRequest
		response *grequests.Response
	)

	request = register.buildHeartbeatRequest()

	url = register.masterUrl + "/worker/heartbeat"
	if response, err = grequests.Post(url, &grequests.RequestOptions{
		JSON:           request,
		RequestTimeout: time.Second * 10,
	}); err != nil {
		return err
	}
	defer response.Close()

	if !response.Ok {
		return fmt.Errorf("心跳接口返回了%d：%s", response.StatusCode, response.String())
	}
	return nil
}

// 组装心跳的内容
// ollama不可用的时候available是false，模型列表是空的
func (register *Register) buildHeartbeatRequest() *datamodels.HeartbeatRequest {
	var (
		available bool
		models    []*datamodels.Model
		err       error
	)

	if available = register.client.CheckConnection(); available {
		if models, err = register.client.ListModels(); err != nil {
			// 拿不到模型列表：本机的ollama状态不对
			log.Println("获取模型列表出错：", err.Error())
			available = false
			models = nil
		}
	}

	return &datamodels.HeartbeatRequest{
		Name:      register.info.Name,
		Version:   register.info.Version,
		Address:   register.info.Address,
		Available: available,
		Models:    models,
	}
}
