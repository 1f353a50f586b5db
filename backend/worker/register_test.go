package worker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
)

// 起一个假的master服务：记录收到的注册和心跳
func newFakeMasterServer(t *testing.T) (*httptest.Server, *[]*datamodels.HeartbeatRequest) {
	heartbeats := &[]*datamodels.HeartbeatRequest{}
	mux := http.NewServeMux()

	mux.HandleFunc("/worker/register", func(w http.ResponseWriter, r *http.Request) {
		request := &datamodels.RegisterRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if request.Name == "" || request.Address == "" {
			http.Error(w, "name和address不能为空", 400)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "success", "token": "token-123"}`)
	})

	mux.HandleFunc("/worker/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		request := &datamodels.HeartbeatRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		*heartbeats = append(*heartbeats, request)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "success", "message": "heartbeat ok"}`)
	})

	return httptest.NewServer(mux), heartbeats
}

func newTestRegister(masterUrl string, ollamaUrl string) *Register {
	return &Register{
		masterUrl: masterUrl,
		interval:  time.Second,
		info: &datamodels.RegisterRequest{
			Name:    "worker-test",
			Version: "0.1.0",
			Address: "http://192.168.1.101:9100",
		},
		client: ollama.NewClient(ollamaUrl, time.Second*5),
	}
}

// 测试注册到master
func TestRegisterToMaster(t *testing.T) {
	masterServer, _ := newFakeMasterServer(t)
	defer masterServer.Close()

	register := newTestRegister(masterServer.URL, "http://127.0.0.1:1")
	if err := register.register(); err != nil {
		t.Fatal(err)
	}
	if register.token != "token-123" {
		t.Error("应该保存注册返回的token：", register.token)
	}
}

// 测试master不可达的时候注册报错
func TestRegisterMasterUnreachable(t *testing.T) {
	register := newTestRegister("http://127.0.0.1:1", "http://127.0.0.1:1")
	if err := register.register(); err == nil {
		t.Error("master不可达的时候注册应该报错")
	}
}

// 测试上报心跳：ollama可用的时候带上模型列表
func TestHeartbeatWithModels(t *testing.T) {
	masterServer, heartbeats := newFakeMasterServer(t)
	defer masterServer.Close()
	ollamaServer := newFakeOllamaServer()
	defer ollamaServer.Close()

	register := newTestRegister(masterServer.URL, ollamaServer.URL)
	if err := register.heartbeat(); err != nil {
		t.Fatal(err)
	}

	if len(*heartbeats) != 1 {
		t.Fatal("master应该收到1条心跳：", len(*heartbeats))
	}
	request := (*heartbeats)[0]
	if !request.Available {
		t.Error("ollama可用的时候available应该是true")
	}
	if len(request.Models) != 2 {
		t.Error("心跳应该带上模型列表：", len(request.Models))
	}
	if request.Name != "worker-test" {
		t.Error("worker的名字不对：", request.Name)
	}
}

// 测试ollama不可用的时候的心跳内容
func TestHeartbeatUnavailable(t *testing.T) {
	masterServer, heartbeats := newFakeMasterServer(t)
	defer masterServer.Close()

	register := newTestRegister(masterServer.URL, "http://127.0.0.1:1")
	if err := register.heartbeat(); err != nil {
		t.Fatal(err)
	}

	request := (*heartbeats)[0]
	if request.Available {
		t.Error("ollama不可用的时候available应该是false")
	}
	if len(request.Models) != 0 {
		t.Error("ollama不可用的时候模型列表应该是空的")
	}
}
