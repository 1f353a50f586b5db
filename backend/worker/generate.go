package worker

import (
	"log"
	"net/http"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
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

// 生成的socket接口：master连上来之后发一条生成的请求
// ollama流式返回的每个片段都转成一条消息发回去，done为true表示生成结束
// url: /ws/generate/:model
func generateSocketHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		err     error
		model   string
		conn    *websocket.Conn
		request *datamodels.GenerateRequest
	)

	model = ps.ByName("model")

	// 1. 升级连接
	if conn, err = upgrader.Upgrade(w, r, nil); err != nil {
		log.Println("升级websocket出错：", err.Error())
		return
	}
	defer conn.Close()

	// 2. 读生成的请求
	request = &datamodels.GenerateRequest{}
	if err = conn.ReadJSON(request); err != nil {
		closeWithError(conn, "解析生成的请求出错："+err.Error())
		return
	}

	// 3. 调ollama流式生成，片段逐条发回去
	handler := func(response string, done bool) error {
		return conn.WriteJSON(&datamodels.GenerateMessage{
			Response: response,
			Done:     done,
		})
	}

	if _, err = app.Client.Generate(model, request.Prompt, request.Options, handler); err != nil {
		log.Println("生成出错：", model, err.Error())
		closeWithError(conn, err.Error())
		return
	}

	// 正常结束
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	return
}

// 出错的时候关闭连接：带上非正常的关闭码和原因
func closeWithError(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason)
	conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
}
