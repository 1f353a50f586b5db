package datamodels

import "time"

// Worker节点的信息
// 由worker注册的时候上报，心跳的时候更新
type Worker struct {
	Name              string     `json:"name"`               // worker的标识，注册的时候传入（唯一）
	Token             string     `json:"token"`              // 注册的凭证，每次注册都会生成个新的
	Version           string     `json:"version"`            // worker程序的版本
	Address           string     `json:"address"`            // worker的http地址，比如: http://192.168.1.101:9100
	Available         bool       `json:"available"`          // worker自己上报的是否可提供推理服务
	LastHeartbeatTime time.Time  `json:"last_heartbeat_at"`  // 最近一次心跳的时间
	MissedHeartbeats  int        `json:"missed_heartbeats"`  // 丢失的心跳次数：根据时间算出来的，仅做展示
	Models            []*Model   `json:"models"`             // worker上安装的模型列表，每次心跳整体替换
	Hardware          *Hardware  `json:"hardware,omitempty"` // 硬件信息，注册的时候上报
}

// worker列表接口返回的摘要信息
// MissedHeartbeats和SecondsSinceHeartbeat都是读取的时候根据时间算出来的
type WorkerSummary struct {
	Name                  string `json:"name"`                     // worker的标识
	Version               string `json:"version"`                  // worker程序的版本
	Address               string `json:"address"`                  // worker的http地址
	Available             bool   `json:"available"`                // 是否可提供推理服务
	ModelCount            int    `json:"model_count"`              // 模型的个数
	MissedHeartbeats      int    `json:"missed_heartbeats"`        // 丢失的心跳次数
	SecondsSinceHeartbeat int    `json:"seconds_since_heartbeat"`  // 距离上次心跳过去了多少秒
}

// worker注册的请求内容
type RegisterRequest struct {
	Name     string    `json:"name"`               // worker的标识
	Version  string    `json:"version"`            // worker程序的版本
	Address  string    `json:"address"`            // worker的http地址
	Hardware *Hardware `json:"hardware,omitempty"` // 硬件信息，获取不到可不传
}

// worker注册的响应内容
type RegisterResponse struct {
	Status string `json:"status"` // 状态
	Token  string `json:"token"`  // 本次注册的凭证
}

// worker心跳的请求内容
type HeartbeatRequest struct {
	Name      string   `json:"name"`      // worker的标识
	Version   string   `json:"version"`   // worker程序的版本
	Address   string   `json:"address"`   // worker的http地址
	Available bool     `json:"available"` // 本机的ollama是否可用
	Models    []*Model `json:"models"`    // 本机安装的模型列表
}
