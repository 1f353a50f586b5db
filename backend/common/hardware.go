package common

import (
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// 收集本机的硬件信息
// 采集失败的时候降级返回空的信息，不会报错
func CollectHardwareInfo() (hardware *datamodels.Hardware) {
	hardware = &datamodels.Hardware{}

	// CPU的信息
	if cpuInfos, err := cpu.Info(); err != nil {
		log.Println("获取CPU信息出错：", err.Error())
	} else {
		if len(cpuInfos) > 0 {
			hardware.CpuModel = cpuInfos[0].ModelName
		}
	}
	if cores, err := cpu.Counts(false); err == nil {
		hardware.CpuCores = cores
	}
	if threads, err := cpu.Counts(true); err == nil {
		hardware.CpuThreads = threads
	}

	// 内存的信息
	if virtualMemory, err := mem.VirtualMemory(); err != nil {
		log.Println("获取内存信息出错：", err.Error())
	} else {
		hardware.RamTotal = virtualMemory.Total / 1024 / 1024 // MB
	}

	// GPU的信息
	hardware.Gpus = ListNvidiaGpus()

	return hardware
}

// 通过nvidia-smi获取GPU的列表
// 没装nvidia-smi或者执行出错的时候返回空列表
func ListNvidiaGpus() (gpus []*datamodels.GPUInfo) {
	var (
		output []byte
		err    error
	)

	cmd := exec.Command(
		"nvidia-smi",
		"--query-gpu=index,name,memory.total,memory.free,utilization.gpu",
		"--format=csv,noheader,nounits",
	)
	if output, err = cmd.Output(); err != nil {
		return nil
	}

	return ParseNvidiaSmiOutput(string(output))
}

// 解析nvidia-smi的csv输出
// 每行的格式：index, name, memory.total, memory.free, utilization.gpu
// 解析不了的行直接跳过
func ParseNvidiaSmiOutput(output string) (gpus []*datamodels.GPUInfo) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			log.Println("nvidia-smi的输出格式不对：", line)
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		gpu := &datamodels.GPUInfo{Name: fields[1]}
		gpu.ID, _ = strconv.Atoi(fields[0])
		if memoryTotal, err := strconv.Atoi(fields[2]); err == nil {
			gpu.MemoryTotal = memoryTotal
		}
		if memoryFree, err := strconv.Atoi(fields[3]); err == nil {
			gpu.MemoryFree = memoryFree
		}
		if utilization, err := strconv.ParseFloat(fields[4], 64); err == nil {
			gpu.Utilization = utilization
		}

		gpus = append(gpus, gpu)
	}
	return gpus
}
