package common

import "testing"

// 测试nvidia-smi输出的解析
func TestParseNvidiaSmiOutput(t *testing.T) {
	output := `0, NVIDIA GeForce RTX 4090, 24564, 20480, 35
1, NVIDIA GeForce RTX 3080, 10240, 8192, 12
`
	gpus := ParseNvidiaSmiOutput(output)
	if len(gpus) != 2 {
		t.Fatal("应该解析出2张卡：", len(gpus))
	}

	gpu := gpus[0]
	if gpu.ID != 0 {
		t.Error("GPU的序号不对：", gpu.ID)
	}
	if gpu.Name != "NVIDIA GeForce RTX 4090" {
		t.Error("GPU的名字不对：", gpu.Name)
	}
	if gpu.MemoryTotal != 24564 {
		t.Error("显存的大小不对：", gpu.MemoryTotal)
	}
	if gpu.MemoryFree != 20480 {
		t.Error("空闲的显存不对：", gpu.MemoryFree)
	}
	if gpu.Utilization != 35 {
		t.Error("使用率不对：", gpu.Utilization)
	}
}

// 测试解析不了的行会被跳过
func TestParseNvidiaSmiOutputSkipMalformed(t *testing.T) {
	output := `0, NVIDIA GeForce RTX 4090, 24564, 20480, 35
这是一行乱七八糟的内容
1, NVIDIA GeForce RTX 3080, 10240
`
	gpus := ParseNvidiaSmiOutput(output)
	if len(gpus) != 1 {
		t.Error("格式不对的行应该跳过：", len(gpus))
	}
}

// 测试空的输出
func TestParseNvidiaSmiOutputEmpty(t *testing.T) {
	if gpus := ParseNvidiaSmiOutput(""); len(gpus) != 0 {
		t.Error("空的输出应该返回空列表")
	}
}
