package datamodels

// GPU的信息
type GPUInfo struct {
	ID          int     `json:"id" bson:"id"`                     // GPU的序号
	Name        string  `json:"name" bson:"name"`                 // GPU的名字
	MemoryTotal int     `json:"memory_total" bson:"memory_total"` // 显存总量 MB
	MemoryFree  int     `json:"memory_free" bson:"memory_free"`   // 空闲显存 MB
	Utilization float64 `json:"utilization" bson:"utilization"`   // 使用率 百分比
}

// 节点的硬件信息
// worker注册的时候上报，master这边只负责保存和透传
type Hardware struct {
	CpuModel   string     `json:"cpu_model" bson:"cpu_model"`     // CPU的型号
	CpuCores   int        `json:"cpu_cores" bson:"cpu_cores"`     // 物理核心数
	CpuThreads int        `json:"cpu_threads" bson:"cpu_threads"` // 逻辑核心数
	RamTotal   uint64     `json:"ram_total" bson:"ram_total"`     // 内存总量 MB
	Gpus       []*GPUInfo `json:"gpus" bson:"gpus"`               // GPU的列表
}
