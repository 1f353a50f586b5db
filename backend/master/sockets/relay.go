package sockets

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/gorilla/websocket"
)

// 调用方的socket连接：中继只需要往它写消息
type FrameWriter interface {
	WriteJSON(v interface{}) error
}

// 一次生成请求的中继
// 调用方 <--> master <--> worker，worker流式返回的片段经由这里转发
type Relay struct {
	stream  bool          // 是否流式转发：false的时候只在结束后发一条完整的
	timeout time.Duration // 读worker单条消息的超时，0表示不限制
}

// 实例化Relay
func NewRelay(stream bool, timeout time.Duration) *Relay {
	return &Relay{
		stream:  stream,
		timeout: timeout,
	}
}

// 连接worker的生成接口
func DialWorker(address string, model string) (conn *websocket.Conn, err error) {
	var socketUrl string

	if socketUrl, err = common.GetGenerateSocketUrl(address, model); err != nil {
		return nil, err
	}

	if conn, _, err = websocket.DefaultDialer.Dial(socketUrl, nil); err != nil {
		log.Println("连接worker的socket出错：", socketUrl, err.Error())
		return nil, err
	}
	return conn, nil
}

// 执行一次生成的中继
// 1. 把请求发给worker
// 2. 不断读worker返回的片段：流式的时候立刻转给调用方，同时都会累积起来
// 3. 收到done之后结束；非流式的时候这时候才发一条完整的消息给调用方
func (relay *Relay) Run(caller FrameWriter, worker *websocket.Conn, request *datamodels.GenerateRequest) (result *datamodels.GenerateResult, err error) {
	// 把请求发给worker
	if err = worker.WriteJSON(request); err != nil {
		return nil, err
	}

	return relay.Read(caller, worker)
}

// 读worker返回的片段直到done
// 单条解析不了的消息只跳过，不中断整个会话；连接层面的错误才会返回err
func (relay *Relay) Read(caller FrameWriter, worker *websocket.Conn) (result *datamodels.GenerateResult, err error) {
	var builder strings.Builder

	for {
		if relay.timeout > 0 {
			worker.SetReadDeadline(time.Now().Add(relay.timeout))
		}

		_, data, readErr := worker.ReadMessage()
		if readErr != nil {
			// 连接层面的错误，中继结束
			return nil, readErr
		}

		message := &datamodels.GenerateMessage{}
		if unmarshalErr := json.Unmarshal(data, message); unmarshalErr != nil {
			// 单条消息格式不对：记录一下，继续读后面的
			log.Println("worker返回的消息解析出错，跳过：", string(data))
			continue
		}

		if relay.stream {
			if err = caller.WriteJSON(message); err != nil {
				return nil, err
			}
		}

		// 不管流式与否都累积内容
		builder.WriteString(message.Response)

		if message.Done {
			break
		}
	}

	// 提取思考的过程
	fullResponse := builder.String()
	reasoning, visible := ExtractReasoning(fullResponse, common.REASONING_START_MARK, common.REASONING_END_MARK)

	result = &datamodels.GenerateResult{
		Response:  visible,
		Reasoning: reasoning,
	}

	if !relay.stream {
		// 非流式：结束后发一条完整的消息
		message := &datamodels.GenerateMessage{
			Response:  visible,
			Reasoning: reasoning,
			Done:      true,
		}
		if err = caller.WriteJSON(message); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// 出错的时候关闭连接：带上非正常的关闭码和原因
func CloseWithError(conn *websocket.Conn, reason string) {
	if conn == nil {
		return
	}
	message := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason)
	conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	conn.Close()
}
