package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
	"github.com/codelieche/modelbench/backend/master/sockets"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// 升级http连接为websocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 生成的socket接口：调用方连上来之后发一条生成的请求
// worker参数不传就是local（master本机的ollama），传了就中继到对应的worker
// stream参数是false的时候只在结束后返回一条完整的消息
// url: /ws/generate/:model?worker=xxx&stream=true
func GenerateSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		err        error
		model      string
		workerName string
		stream     bool

		caller  *websocket.Conn
		request *datamodels.GenerateRequest
	)

	model = ps.ByName("model")
	workerName = r.URL.Query().Get("worker")
	if workerName == "" {
		workerName = common.LOCAL_WORKER_NAME
	}
	// socket接口默认就是流式的
	stream = r.URL.Query().Get("stream") != "false"

	// 1. 升级连接
	if caller, err = upgrader.Upgrade(w, r, nil); err != nil {
		log.Println("升级websocket出错：", err.Error())
		return
	}
	defer caller.Close()

	// 2. 读调用方的生成请求
	request = &datamodels.GenerateRequest{}
	if err = caller.ReadJSON(request); err != nil {
		sockets.CloseWithError(caller, "解析生成的请求出错："+err.Error())
		return
	}

	// 3. 执行生成
	if workerName == common.LOCAL_WORKER_NAME {
		err = generateFromLocalOllama(caller, model, request, stream)
	} else {
		err = generateFromWorker(caller, workerName, model, request, stream)
	}

	if err != nil {
		log.Println("生成出错：", workerName, model, err.Error())
		sockets.CloseWithError(caller, err.Error())
		return
	}

	// 正常结束
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	caller.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	return
}

// 中继到worker的socket
func generateFromWorker(caller *websocket.Conn, workerName string, model string,
	request *datamodels.GenerateRequest, stream bool) (err error) {

	var (
		record *datamodels.Worker
		worker *websocket.Conn
	)

	// worker必须是注册过且健康的
	if record = workerRegistry.Get(workerName); record == nil {
		return common.WorkerUnavailableError
	}

	if worker, err = sockets.DialWorker(record.Address, model); err != nil {
		return err
	}
	defer worker.Close()

	settings := common.GetConfig().Master.Benchmark
	timeout := time.Duration(settings.IterationTimeout) * time.Second

	relay := sockets.NewRelay(stream, timeout)
	_, err = relay.Run(caller, worker, request)
	return err
}

// 本机的ollama直接生成，不经过worker
// 流式的片段原样转发；结束后和中继一样提取思考的过程
func generateFromLocalOllama(caller *websocket.Conn, model string,
	request *datamodels.GenerateRequest, stream bool) (err error) {

	var (
		fullResponse string
		handler      func(response string, done bool) error
	)

	settings := common.GetConfig().Master.Benchmark
	timeout := time.Duration(settings.IterationTimeout) * time.Second
	client := ollama.NewClient(settings.OllamaUrl, timeout)
	client.GenerateTimeout = timeout

	if stream {
		handler = func(response string, done bool) error {
			if done {
				// 结束的消息统一在最后发
				return nil
			}
			return caller.WriteJSON(&datamodels.GenerateMessage{Response: response})
		}
	}

	if fullResponse, err = client.Generate(model, request.Prompt, request.Options, handler); err != nil {
		return err
	}

	reasoning, visible := sockets.ExtractReasoning(
		fullResponse, common.REASONING_START_MARK, common.REASONING_END_MARK)

	// 流式的时候内容都已经发过了，结束的消息不用再带一遍
	message := &datamodels.GenerateMessage{
		Reasoning: reasoning,
		Done:      true,
	}
	if !stream {
		message.Response = visible
	}
	return caller.WriteJSON(message)
}
