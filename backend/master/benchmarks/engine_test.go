package benchmarks

import (
	"errors"
	"testing"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
)

// 假的生成器：固定返回或者在某一轮开始报错
type fakeGenerator struct {
	response string
	failAt   int // 第几轮开始报错，0表示不报错
	calls    int
}

func (generator *fakeGenerator) Generate(config *datamodels.BenchmarkConfig) (string, error) {
	generator.calls++
	if generator.failAt > 0 && generator.calls >= generator.failAt {
		return "", errors.New("生成出错了")
	}
	return generator.response, nil
}

// 实例化测试用的engine：目标解析和指标采集都换成假的
func newTestEngine(generator Generator) *Engine {
	engine := NewEngine(nil, nil, &common.BenchmarkSettings{Cooldown: 0})
	engine.resolveTarget = func(worker string) (Generator, *datamodels.Hardware, error) {
		if worker == "worker-unknown" {
			return nil, nil, common.WorkerUnavailableError
		}
		return generator, &datamodels.Hardware{CpuCores: 4}, nil
	}
	engine.sampleMetrics = func(useGpu bool, gpuID *int) *datamodels.BenchmarkMetrics {
		return &datamodels.BenchmarkMetrics{CpuUsagePercent: 12.5}
	}
	return engine
}

func newTestConfig(t *testing.T, iterations int) *datamodels.BenchmarkConfig {
	config, err := datamodels.NewBenchmarkConfig(
		"qwen2:7b", "你好，介绍下自己", iterations,
		0.7, 0.9, 40, 1.1,
		datamodels.HardwareSelection{UseGpu: false},
	)
	if err != nil {
		t.Fatal(err)
	}
	return config
}

// 轮询等到执行结束拿到终态的结果
func waitForResult(t *testing.T, engine *Engine, runID string) *datamodels.BenchmarkResult {
	for i := 0; i < 100; i++ {
		result, isRunning := engine.GetStatus(runID)
		if result != nil {
			return result
		}
		if !isRunning {
			t.Fatal("句柄不见了：", runID)
		}
		time.Sleep(time.Millisecond * 10)
	}
	t.Fatal("等待benchmark结束超时：", runID)
	return nil
}

// 测试正常跑完的benchmark
func TestEngineCompletedRun(t *testing.T) {
	generator := &fakeGenerator{response: "这是模型生成的回复"}
	engine := newTestEngine(generator)

	runID, err := engine.Start("worker-a", newTestConfig(t, 3))
	if err != nil {
		t.Fatal(err)
	}

	result := waitForResult(t, engine, runID)
	if result.Status != common.BENCHMARK_STATUS_COMPLETED {
		t.Error("状态应该是completed：", result.Status)
	}
	if len(result.Metrics) != 3 {
		t.Error("应该有3轮的指标：", len(result.Metrics))
	}
	for _, metrics := range result.Metrics {
		if metrics.LatencyMs <= 0 {
			t.Error("延迟应该大于0：", metrics.LatencyMs)
		}
		if metrics.TokensPerSecond <= 0 {
			t.Error("每秒token数应该大于0：", metrics.TokensPerSecond)
		}
		if metrics.CpuUsagePercent != 12.5 {
			t.Error("CPU使用率应该来自采集函数：", metrics.CpuUsagePercent)
		}
	}
	if result.EndTime.Before(result.StartTime) {
		t.Error("结束时间不该早于开始时间")
	}
}

// 测试中途出错的benchmark：后面的迭代不再执行
func TestEngineFailedRun(t *testing.T) {
	generator := &fakeGenerator{response: "回复", failAt: 2}
	engine := newTestEngine(generator)

	runID, err := engine.Start("worker-a", newTestConfig(t, 5))
	if err != nil {
		t.Fatal(err)
	}

	result := waitForResult(t, engine, runID)
	if result.Status != common.BENCHMARK_STATUS_FAILED {
		t.Error("状态应该是failed：", result.Status)
	}
	if result.Error == "" {
		t.Error("失败的原因不能为空")
	}
	if len(result.Metrics) != 1 {
		t.Error("出错前只跑完了1轮：", len(result.Metrics))
	}
	if generator.calls != 2 {
		t.Error("出错后就不该再执行了：", generator.calls)
	}
}

// 测试状态查询：结束后的结果只能拿到一次
func TestEngineGetStatusOnce(t *testing.T) {
	generator := &fakeGenerator{response: "回复"}
	engine := newTestEngine(generator)

	runID, err := engine.Start("worker-a", newTestConfig(t, 1))
	if err != nil {
		t.Fatal(err)
	}

	result := waitForResult(t, engine, runID)
	if result == nil {
		t.Fatal("应该拿到终态的结果")
	}

	// 句柄已经回收了，再查就是not found
	if result, isRunning := engine.GetStatus(runID); result != nil || isRunning {
		t.Error("结果只能从这里拿到一次")
	}
}

// 最后一轮之后不再等待间隔：间隔设置得很长，单轮的执行也应该很快结束
func TestEngineNoCooldownAfterLastIteration(t *testing.T) {
	generator := &fakeGenerator{response: "回复"}
	engine := newTestEngine(generator)
	engine.cooldown = 10 * time.Second

	runID, err := engine.Start("worker-a", newTestConfig(t, 1))
	if err != nil {
		t.Fatal(err)
	}

	// waitForResult最多等1秒：最后一轮之后还歇10秒的话这里会超时
	result := waitForResult(t, engine, runID)
	if result.Status != common.BENCHMARK_STATUS_COMPLETED {
		t.Error("状态应该是completed：", result.Status)
	}
	if elapsed := result.EndTime.Sub(result.StartTime); elapsed >= engine.cooldown {
		t.Error("结束时间不该包含最后一轮之后的间隔：", elapsed)
	}
}

// 阻塞的生成器：收到信号才返回
type blockingGenerator struct {
	releaseChan chan bool
}

func (generator *blockingGenerator) Generate(config *datamodels.BenchmarkConfig) (string, error) {
	<-generator.releaseChan
	return "回复", nil
}

// 执行中的列表只包含还在跑的：
// 跑完但结果还没被读走的句柄不算执行中
func TestEngineListRunning(t *testing.T) {
	generator := &blockingGenerator{releaseChan: make(chan bool)}
	engine := newTestEngine(generator)

	runID, err := engine.Start("worker-a", newTestConfig(t, 1))
	if err != nil {
		t.Fatal(err)
	}

	// 还阻塞着：列表里有它
	runIDs := engine.ListRunning()
	if len(runIDs) != 1 || runIDs[0] != runID {
		t.Fatal("执行中的列表应该只有这一个：", runIDs)
	}

	// 放行，等它执行结束；这期间不调用GetStatus
	close(generator.releaseChan)
	for i := 0; i < 100; i++ {
		if len(engine.ListRunning()) == 0 {
			break
		}
		time.Sleep(time.Millisecond * 10)
	}
	if runIDs = engine.ListRunning(); len(runIDs) != 0 {
		t.Error("跑完的benchmark不该出现在执行中的列表里：", runIDs)
	}

	// 结果还在，依然可以读走一次
	result, isRunning := engine.GetStatus(runID)
	if isRunning {
		t.Error("执行已经结束了")
	}
	if result == nil || result.Status != common.BENCHMARK_STATUS_COMPLETED {
		t.Error("应该拿到completed的结果")
	}
}

// 测试不存在的runID
func TestEngineGetStatusUnknown(t *testing.T) {
	engine := newTestEngine(&fakeGenerator{response: "回复"})
	if result, isRunning := engine.GetStatus("不存在的id"); result != nil || isRunning {
		t.Error("不存在的runID应该返回nil和false")
	}
}

// 测试worker不可用的时候创建失败
func TestEngineStartWorkerUnavailable(t *testing.T) {
	engine := newTestEngine(&fakeGenerator{response: "回复"})
	if _, err := engine.Start("worker-unknown", newTestConfig(t, 1)); err == nil {
		t.Error("worker不可用的时候应该报错")
	} else if !common.IsNotFound(err) {
		t.Error("应该是not found类的错误：", err.Error())
	}
}

// 测试配置的取值范围校验
func TestNewBenchmarkConfigValidate(t *testing.T) {
	hardware := datamodels.HardwareSelection{}

	if _, err := datamodels.NewBenchmarkConfig("", "p", 1, 0.5, 0.5, 10, 1.0, hardware); err == nil {
		t.Error("模型名字为空应该报错")
	}
	if _, err := datamodels.NewBenchmarkConfig("m", "p", 0, 0.5, 0.5, 10, 1.0, hardware); err == nil {
		t.Error("迭代次数为0应该报错")
	}
	if _, err := datamodels.NewBenchmarkConfig("m", "p", 1, 1.5, 0.5, 10, 1.0, hardware); err == nil {
		t.Error("temperature超出范围应该报错")
	}
	if _, err := datamodels.NewBenchmarkConfig("m", "p", 1, 0.5, -0.1, 10, 1.0, hardware); err == nil {
		t.Error("top_p超出范围应该报错")
	}
	if _, err := datamodels.NewBenchmarkConfig("m", "p", 1, 0.5, 0.5, -1, 1.0, hardware); err == nil {
		t.Error("top_k为负应该报错")
	}
	if _, err := datamodels.NewBenchmarkConfig("m", "p", 1, 0.5, 0.5, 10, -1.0, hardware); err == nil {
		t.Error("repeat_penalty为负应该报错")
	}

	config, err := datamodels.NewBenchmarkConfig("qwen2:7b", "你好", 3, 0.7, 0.9, 40, 1.1, hardware)
	if err != nil {
		t.Fatal(err)
	}
	if config.Iterations != 3 {
		t.Error("迭代次数不对：", config.Iterations)
	}
}
