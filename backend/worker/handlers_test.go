package worker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
	"github.com/gorilla/websocket"
)

// 起一个假的ollama服务
func newFakeOllamaServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"models": [
			{"name": "qwen2:7b", "size": 4431400000, "modified_at": "2025-06-01T10:00:00.000000000Z"},
			{"name": "llama3:8b", "size": 4661200000, "modified_at": "2025-05-20T08:30:00.000000000Z"}
		]}`)
	})

	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, `{"response": "你好", "done": false}`)
		fmt.Fprintln(w, `{"response": "，我是模型", "done": false}`)
		fmt.Fprintln(w, `{"response": "", "done": true}`)
	})

	return httptest.NewServer(mux)
}

// 测试用的worker app和web服务
func newTestWorker(ollamaUrl string) *httptest.Server {
	app = &Worker{
		TimeStart: time.Now(),
		Name:      "worker-test",
		Client:    ollama.NewClient(ollamaUrl, time.Second*5),
		Hardware:  &datamodels.Hardware{CpuCores: 4},
	}
	return httptest.NewServer(newWebRouter())
}

// 测试health接口
func TestHealthHandler(t *testing.T) {
	ollamaServer := newFakeOllamaServer()
	defer ollamaServer.Close()
	server := newTestWorker(ollamaServer.URL)
	defer server.Close()

	response, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		t.Fatal("health接口应该返回200：", response.StatusCode)
	}

	info := make(map[string]interface{})
	if err = json.NewDecoder(response.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info["name"] != "worker-test" {
		t.Error("worker的名字不对：", info["name"])
	}
	if info["available"] != true {
		t.Error("ollama可用的时候available应该是true")
	}
}

// 测试ollama不可用的时候health接口
func TestHealthHandlerUnavailable(t *testing.T) {
	// 指向一个没有服务的地址
	server := newTestWorker("http://127.0.0.1:1")
	defer server.Close()

	response, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		t.Fatal("ollama不可用的时候health也应该返回200：", response.StatusCode)
	}

	info := make(map[string]interface{})
	if err = json.NewDecoder(response.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info["available"] != false {
		t.Error("ollama不可用的时候available应该是false")
	}
}

// 测试models接口
func TestModelsHandler(t *testing.T) {
	ollamaServer := newFakeOllamaServer()
	defer ollamaServer.Close()
	server := newTestWorker(ollamaServer.URL)
	defer server.Close()

	response, err := http.Get(server.URL + "/models")
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()

	var models []*datamodels.Model
	if err = json.NewDecoder(response.Body).Decode(&models); err != nil {
		t.Fatal(err)
	}
	if len(models) != 2 {
		t.Fatal("应该有2个模型：", len(models))
	}
	if models[0].Name != "qwen2:7b" {
		t.Error("模型的名字不对：", models[0].Name)
	}
}

// 测试hardware接口
func TestHardwareHandler(t *testing.T) {
	ollamaServer := newFakeOllamaServer()
	defer ollamaServer.Close()
	server := newTestWorker(ollamaServer.URL)
	defer server.Close()

	response, err := http.Get(server.URL + "/hardware")
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()

	hardware := &datamodels.Hardware{}
	if err = json.NewDecoder(response.Body).Decode(hardware); err != nil {
		t.Fatal(err)
	}
	if hardware.CpuCores != 4 {
		t.Error("硬件信息不对：", hardware.CpuCores)
	}
}

// 测试生成的socket接口：片段逐条返回，最后一条done是true
func TestGenerateSocketHandler(t *testing.T) {
	ollamaServer := newFakeOllamaServer()
	defer ollamaServer.Close()
	server := newTestWorker(ollamaServer.URL)
	defer server.Close()

	socketUrl := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/generate/qwen2:7b"
	conn, _, err := websocket.DefaultDialer.Dial(socketUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// 发送生成的请求
	if err = conn.WriteJSON(&datamodels.GenerateRequest{Prompt: "说点什么"}); err != nil {
		t.Fatal(err)
	}

	// 读返回的片段
	var builder strings.Builder
	var count int
	for {
		message := &datamodels.GenerateMessage{}
		if err = conn.ReadJSON(message); err != nil {
			t.Fatal(err)
		}
		count++
		builder.WriteString(message.Response)
		if message.Done {
			break
		}
	}

	if count != 3 {
		t.Error("应该收到3条消息：", count)
	}
	if builder.String() != "你好，我是模型" {
		t.Error("累积的内容不对：", builder.String())
	}
}
