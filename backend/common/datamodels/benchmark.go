package datamodels

import (
	"errors"
	"time"
)

// 硬件选择：benchmark的时候用GPU还是CPU
type HardwareSelection struct {
	UseGpu bool `json:"use_gpu" bson:"use_gpu"`                 // 是否使用GPU
	GpuID  *int `json:"gpu_id,omitempty" bson:"gpu_id,omitempty"` // 指定的GPU序号，可不填
}

// Benchmark的配置：创建好了之后不再修改
type BenchmarkConfig struct {
	ModelName     string            `json:"model_name" bson:"model_name"`         // 模型的名字
	Prompt        string            `json:"prompt" bson:"prompt"`                 // 提示词的内容（已解析好的文本）
	Iterations    int               `json:"iterations" bson:"iterations"`         // 迭代执行的次数
	Temperature   float64           `json:"temperature" bson:"temperature"`       // 采样温度 [0, 1]
	TopP          float64           `json:"top_p" bson:"top_p"`                   // top_p [0, 1]
	TopK          int               `json:"top_k" bson:"top_k"`                   // top_k >= 0
	RepeatPenalty float64           `json:"repeat_penalty" bson:"repeat_penalty"` // 重复惩罚 >= 0
	Hardware      HardwareSelection `json:"hardware" bson:"hardware"`             // 硬件选择
}

// 实例化BenchmarkConfig：在这里做取值范围的校验
func NewBenchmarkConfig(modelName string, prompt string, iterations int,
	temperature float64, topP float64, topK int, repeatPenalty float64,
	hardware HardwareSelection) (config *BenchmarkConfig, err error) {

	if modelName == "" {
		return nil, errors.New("模型的名字不能为空")
	}
	if iterations < 1 {
		return nil, errors.New("迭代次数不能小于1")
	}
	if temperature < 0 || temperature > 1 {
		return nil, errors.New("temperature需要在[0, 1]之间")
	}
	if topP < 0 || topP > 1 {
		return nil, errors.New("top_p需要在[0, 1]之间")
	}
	if topK < 0 {
		return nil, errors.New("top_k不能小于0")
	}
	if repeatPenalty < 0 {
		return nil, errors.New("repeat_penalty不能小于0")
	}

	config = &BenchmarkConfig{
		ModelName:     modelName,
		Prompt:        prompt,
		Iterations:    iterations,
		Temperature:   temperature,
		TopP:          topP,
		TopK:          topK,
		RepeatPenalty: repeatPenalty,
		Hardware:      hardware,
	}
	return config, nil
}

// 每轮迭代的性能指标
type BenchmarkMetrics struct {
	LatencyMs       float64  `json:"latency_ms" bson:"latency_ms"`                             // 本轮的耗时 毫秒
	TokensPerSecond float64  `json:"tokens_per_second" bson:"tokens_per_second"`               // 每秒生成的token数
	MemoryUsageMb   float64  `json:"memory_usage_mb" bson:"memory_usage_mb"`                   // 进程占用的内存 MB
	CpuUsagePercent float64  `json:"cpu_usage_percent" bson:"cpu_usage_percent"`               // CPU使用率
	GpuUsagePercent *float64 `json:"gpu_usage_percent,omitempty" bson:"gpu_usage_percent,omitempty"` // GPU使用率，CPU模式下为空
	GpuMemoryUsedMb *float64 `json:"gpu_memory_used_mb,omitempty" bson:"gpu_memory_used_mb,omitempty"` // GPU显存占用 MB
}

// Benchmark的执行结果
// 执行过程中往Metrics里追加，结束后写入mongodb
type BenchmarkResult struct {
	ID        string              `json:"id" bson:"id"`                       // 结果的ID
	Worker    string              `json:"worker" bson:"worker"`               // 执行的worker标识，本地执行是local
	Config    *BenchmarkConfig    `json:"config" bson:"config"`               // 本次的配置
	Hardware  *Hardware           `json:"hardware,omitempty" bson:"hardware,omitempty"` // 硬件信息的快照
	Metrics   []*BenchmarkMetrics `json:"metrics" bson:"metrics"`             // 每轮迭代的指标
	StartTime time.Time           `json:"start_time" bson:"start_time"`       // 开始时间
	EndTime   time.Time           `json:"end_time" bson:"end_time"`           // 结束时间
	Status    string              `json:"status" bson:"status"`               // pending、running、completed、failed
	Error     string              `json:"error,omitempty" bson:"error,omitempty"` // 失败的原因
}
