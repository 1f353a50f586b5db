package benchmarks

import (
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/ollama"
	"github.com/codelieche/modelbench/backend/master/sockets"
)

// 把benchmark配置中的采样参数整理成ollama的options
func buildOptions(config *datamodels.BenchmarkConfig) map[string]interface{} {
	options := map[string]interface{}{
		"temperature":    config.Temperature,
		"top_p":          config.TopP,
		"top_k":          config.TopK,
		"repeat_penalty": config.RepeatPenalty,
		"use_gpu":        config.Hardware.UseGpu,
	}
	if config.Hardware.GpuID != nil {
		options["gpu_id"] = *config.Hardware.GpuID
	}
	return options
}

// 本地的生成器：直接调本机的ollama
type ollamaGenerator struct {
	client *ollama.Client
}

func NewOllamaGenerator(ollamaUrl string, timeout time.Duration) Generator {
	client := ollama.NewClient(ollamaUrl, timeout)
	// 生成的超时就是单轮迭代的超时，0表示不限制
	client.GenerateTimeout = timeout
	return &ollamaGenerator{
		client: client,
	}
}

func (generator *ollamaGenerator) Generate(config *datamodels.BenchmarkConfig) (response string, err error) {
	return generator.client.Generate(config.ModelName, config.Prompt, buildOptions(config), nil)
}

// 远程的生成器：通过worker的socket通道执行生成
// 复用中继的非流式模式：把worker返回的片段累积成完整的结果
type socketGenerator struct {
	address string        // worker的http地址
	timeout time.Duration // 读单条消息的超时
}

func NewSocketGenerator(address string, timeout time.Duration) Generator {
	return &socketGenerator{
		address: address,
		timeout: timeout,
	}
}

// 丢弃消息的writer：benchmark不需要把片段转发给谁
type discardWriter struct{}

func (writer *discardWriter) WriteJSON(v interface{}) error {
	return nil
}

func (generator *socketGenerator) Generate(config *datamodels.BenchmarkConfig) (response string, err error) {
	conn, err := sockets.DialWorker(generator.address, config.ModelName)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	// 把采样参数也发给worker
	request := &datamodels.GenerateRequest{
		Prompt:  config.Prompt,
		Options: buildOptions(config),
	}

	relay := sockets.NewRelay(false, generator.timeout)
	result, err := relay.Run(&discardWriter{}, conn, request)
	if err != nil {
		return "", err
	}
	return result.Response, nil
}
