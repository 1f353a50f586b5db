package benchmarks

import (
	"os"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/process"
)

// 采集当前的资源使用情况
// cpu、内存采集失败的时候对应的值就是0；GPU的指标只在useGpu的时候采集
func SampleMetrics(useGpu bool, gpuID *int) (metrics *datamodels.BenchmarkMetrics) {
	metrics = &datamodels.BenchmarkMetrics{}

	// CPU使用率：取上一次调用以来的使用率
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.CpuUsagePercent = percents[0]
	}

	// 当前进程的内存使用
	if currentProcess, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if memoryInfo, err := currentProcess.MemoryInfo(); err == nil {
			metrics.MemoryUsageMb = float64(memoryInfo.RSS) / 1024 / 1024
		}
	}

	if useGpu {
		sampleGpuMetrics(metrics, gpuID)
	}

	return metrics
}

// 采集GPU的使用率和显存占用
// 指定了gpuID就找对应的卡，没指定就取第一张；找不到卡的时候指标保持nil
func sampleGpuMetrics(metrics *datamodels.BenchmarkMetrics, gpuID *int) {
	gpus := common.ListNvidiaGpus()
	if len(gpus) == 0 {
		return
	}

	gpu := gpus[0]
	if gpuID != nil {
		for _, item := range gpus {
			if item.ID == *gpuID {
				gpu = item
				break
			}
		}
	}

	utilization := gpu.Utilization
	memoryUsed := float64(gpu.MemoryTotal - gpu.MemoryFree)
	metrics.GpuUsagePercent = &utilization
	metrics.GpuMemoryUsedMb = &memoryUsed
}
