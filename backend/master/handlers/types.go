package handlers

import "github.com/codelieche/modelbench/backend/common/datamodels"

// 创建benchmark的请求内容
type BenchmarkCreateRequest struct {
	Worker        string                       `json:"worker"`         // 执行的worker标识，不传就是local
	ModelName     string                       `json:"model_name"`     // 模型的名字
	Prompt        string                       `json:"prompt"`         // 提示词的内容
	Iterations    int                          `json:"iterations"`     // 迭代执行的次数
	Temperature   float64                      `json:"temperature"`    // 采样温度
	TopP          float64                      `json:"top_p"`          // top_p
	TopK          int                          `json:"top_k"`          // top_k
	RepeatPenalty float64                      `json:"repeat_penalty"` // 重复惩罚
	Hardware      datamodels.HardwareSelection `json:"hardware"`       // 硬件选择
}

// 创建benchmark的响应内容
type BenchmarkCreateResponse struct {
	ID     string `json:"id"`     // 本次执行的ID
	Status string `json:"status"` // 状态
}

// 查询benchmark状态的响应：执行中的时候没有结果
type BenchmarkStatusResponse struct {
	ID     string `json:"id"`     // 本次执行的ID
	Status string `json:"status"` // running
}
