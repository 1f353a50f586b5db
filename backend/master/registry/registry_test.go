package registry

import (
	"testing"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
)

// 创建个用假时钟的注册表，方便控制时间
func newTestRegistry(interval time.Duration, maxMissed int) (*Registry, *time.Time) {
	registry := NewRegistry(interval, maxMissed)

	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time {
		return now
	}
	return registry, &now
}

func sendHeartbeat(registry *Registry, name string, available bool, models []*datamodels.Model) bool {
	return registry.Heartbeat(&datamodels.HeartbeatRequest{
		Name:      name,
		Version:   "v1",
		Address:   "http://192.168.1.101:9100",
		Available: available,
		Models:    models,
	})
}

// 重复注册：会生成新的token，并且记录是第二次注册的内容
func TestRegistryRegisterTwice(t *testing.T) {
	registry, _ := newTestRegistry(5*time.Second, 3)

	token1 := registry.Register("worker-a", "v1", "http://192.168.1.101:9100", nil)
	token2 := registry.Register("worker-a", "v2", "http://192.168.1.101:9100", nil)

	if token1 == "" || token2 == "" {
		t.Error("注册的token不能为空")
		return
	}
	if token1 == token2 {
		t.Error("两次注册的token应该不同")
	}

	// 注册后还没心跳，Get应该是nil
	if worker := registry.Get("worker-a"); worker != nil {
		t.Error("注册后还没心跳，worker不应该是健康的")
	}

	// 记录里只保留了第二次注册的内容
	if entry := registry.workers["worker-a"]; entry.worker.Version != "v2" {
		t.Error("记录中的版本应该是第二次注册的：", entry.worker.Version)
	}

	// 心跳后能获取到，且版本是第二次注册之后心跳上报的
	sendHeartbeat(registry, "worker-a", true, nil)
	if worker := registry.Get("worker-a"); worker == nil {
		t.Error("心跳后应该能获取到worker")
	} else {
		if worker.Token != token2 {
			t.Error("记录中的token应该是第二次注册的")
		}
	}
}

// 未知worker的心跳：自动的隐式注册
func TestRegistryHeartbeatImplicitRegister(t *testing.T) {
	registry, _ := newTestRegistry(5*time.Second, 3)

	if success := sendHeartbeat(registry, "new-id", true, []*datamodels.Model{}); !success {
		t.Error("心跳应该成功")
		return
	}

	worker := registry.Get("new-id")
	if worker == nil {
		t.Error("心跳后应该能获取到worker")
		return
	}
	if !worker.Available {
		t.Error("worker的available应该是true")
	}
	if worker.Token == "" {
		t.Error("隐式注册也应该有token")
	}
}

// 健康状态只会随着时间流逝变成不健康，没有主动标记不健康的操作
func TestRegistryHealthByElapsedTime(t *testing.T) {
	registry, now := newTestRegistry(5*time.Second, 3)

	registry.Register("worker-a", "v1", "http://192.168.1.101:9100", nil)
	sendHeartbeat(registry, "worker-a", true, nil)

	if !registry.IsHealthy("worker-a") {
		t.Error("刚心跳完应该是健康的")
	}

	// 14秒后还在阈值内
	*now = now.Add(14 * time.Second)
	if !registry.IsHealthy("worker-a") {
		t.Error("14秒内应该还是健康的")
	}

	// 超过 interval * maxMissed = 15秒 就不健康了
	*now = now.Add(2 * time.Second)
	if registry.IsHealthy("worker-a") {
		t.Error("16秒后应该是不健康的")
	}
	if worker := registry.Get("worker-a"); worker != nil {
		t.Error("不健康的worker，Get应该返回nil")
	}
}

// available是false的时候，心跳再新也是不健康的
func TestRegistryUnavailableIsUnhealthy(t *testing.T) {
	registry, _ := newTestRegistry(5*time.Second, 3)

	sendHeartbeat(registry, "worker-a", false, nil)

	if registry.IsHealthy("worker-a") {
		t.Error("available是false的时候应该不健康")
	}
	if worker := registry.Get("worker-a"); worker != nil {
		t.Error("不健康的worker，Get应该返回nil")
	}
}

// 心跳中的模型列表是整体替换的
func TestRegistryHeartbeatReplaceModels(t *testing.T) {
	registry, _ := newTestRegistry(5*time.Second, 3)

	models1 := []*datamodels.Model{
		{Name: "llama2:7b"},
		{Name: "qwen:14b"},
	}
	sendHeartbeat(registry, "worker-a", true, models1)

	models2 := []*datamodels.Model{
		{Name: "mistral:7b"},
	}
	sendHeartbeat(registry, "worker-a", true, models2)

	worker := registry.Get("worker-a")
	if worker == nil {
		t.Error("应该能获取到worker")
		return
	}
	if len(worker.Models) != 1 {
		t.Error("模型列表应该被整体替换：", len(worker.Models))
		return
	}
	if worker.Models[0].Name != "mistral:7b" {
		t.Error("模型列表的内容不对：", worker.Models[0].Name)
	}
}

// 健康worker列表：丢失的心跳次数是读取的时候算出来的
func TestRegistryListHealthy(t *testing.T) {
	registry, now := newTestRegistry(5*time.Second, 3)

	sendHeartbeat(registry, "worker-a", true, nil)
	sendHeartbeat(registry, "worker-b", true, nil)
	sendHeartbeat(registry, "worker-c", false, nil)

	// worker-c不健康，列表中应该只有a和b
	summaries := registry.ListHealthy()
	if len(summaries) != 2 {
		t.Error("健康的worker应该有2个：", len(summaries))
	}

	// 12秒后：丢了两次心跳但还健康
	*now = now.Add(12 * time.Second)
	summaries = registry.ListHealthy()
	if len(summaries) != 2 {
		t.Error("12秒后健康的worker应该还有2个：", len(summaries))
		return
	}
	for _, summary := range summaries {
		if summary.MissedHeartbeats != 2 {
			t.Error("丢失的心跳次数应该是2：", summary.Name, summary.MissedHeartbeats)
		}
		if summary.SecondsSinceHeartbeat != 12 {
			t.Error("据上次心跳的秒数应该是12：", summary.SecondsSinceHeartbeat)
		}
	}
}
