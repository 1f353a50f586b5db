package benchmarks

import (
	"log"
	"sync"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/repositories"
	"github.com/codelieche/modelbench/backend/master/registry"
	"github.com/google/uuid"
)

// 生成的原语：engine只依赖这个形状
// 本地的实现直接调ollama，远程的实现走worker的socket
type Generator interface {
	Generate(config *datamodels.BenchmarkConfig) (response string, err error)
}

// 一次benchmark执行的句柄
// 执行结束后close(done)，结果被读取一次后句柄就回收了
type runHandle struct {
	result *datamodels.BenchmarkResult
	done   chan bool
}

// Benchmark引擎
// 负责创建、异步执行、查询benchmark；执行完的结果写入mongodb后就不再持有
type Engine struct {
	mux     sync.Mutex
	running map[string]*runHandle

	registry *registry.Registry
	repo     repositories.BenchmarkRepository
	cooldown time.Duration // 每轮迭代之间的间隔
	timeout  time.Duration // 单轮迭代的超时，0表示不限制

	// 根据执行目标解析出Generator和硬件快照：测试的时候可替换
	resolveTarget func(worker string) (Generator, *datamodels.Hardware, error)
	// 采集资源的使用情况：测试的时候可替换
	sampleMetrics func(useGpu bool, gpuID *int) *datamodels.BenchmarkMetrics

	localOllamaUrl string // 本地benchmark用的ollama地址
}

// 实例化Engine
func NewEngine(reg *registry.Registry, repo repositories.BenchmarkRepository,
	settings *common.BenchmarkSettings) *Engine {

	engine := &Engine{
		running:        make(map[string]*runHandle),
		registry:       reg,
		repo:           repo,
		cooldown:       time.Second,
		localOllamaUrl: "http://127.0.0.1:11434",
		sampleMetrics:  SampleMetrics,
	}

	if settings != nil {
		if settings.Cooldown >= 0 {
			engine.cooldown = time.Duration(settings.Cooldown) * time.Second
		}
		if settings.IterationTimeout > 0 {
			engine.timeout = time.Duration(settings.IterationTimeout) * time.Second
		}
		if settings.OllamaUrl != "" {
			engine.localOllamaUrl = settings.OllamaUrl
		}
	}

	engine.resolveTarget = engine.defaultResolveTarget
	return engine
}

// 默认的目标解析：
// local 直接调本机的ollama；其它的从注册表里找健康的worker
// worker不存在或者不健康，返回的是not found类的错误
func (engine *Engine) defaultResolveTarget(worker string) (Generator, *datamodels.Hardware, error) {
	if worker == common.LOCAL_WORKER_NAME {
		return NewOllamaGenerator(engine.localOllamaUrl, engine.timeout), common.CollectHardwareInfo(), nil
	}

	record := engine.registry.Get(worker)
	if record == nil {
		return nil, nil, common.WorkerUnavailableError
	}
	return NewSocketGenerator(record.Address, engine.timeout), record.Hardware, nil
}

// 创建并开始一次benchmark
// 校验只有config构造的时候做过的取值范围检查；这里解析好目标就立刻返回
// 迭代的执行在单独的协程里，不会阻塞调用方
func (engine *Engine) Start(worker string, config *datamodels.BenchmarkConfig) (runID string, err error) {
	var (
		generator Generator
		hardware  *datamodels.Hardware
	)

	if generator, hardware, err = engine.resolveTarget(worker); err != nil {
		return "", err
	}

	runID = uuid.New().String()
	result := &datamodels.BenchmarkResult{
		ID:        runID,
		Worker:    worker,
		Config:    config,
		Hardware:  hardware,
		Metrics:   []*datamodels.BenchmarkMetrics{},
		StartTime: time.Now(),
		Status:    common.BENCHMARK_STATUS_PENDING,
	}

	handle := &runHandle{
		result: result,
		done:   make(chan bool),
	}

	engine.mux.Lock()
	engine.running[runID] = handle
	engine.mux.Unlock()

	go engine.runLoop(handle, generator)

	return runID, nil
}

// 迭代执行的循环
// 每轮：计时执行生成 -> 算延迟和每秒token数 -> 采集资源使用 -> 歇一下再继续
// 任何一轮出错就中止后面的迭代，状态置为failed，结束时间照样会记录
func (engine *Engine) runLoop(handle *runHandle, generator Generator) {
	var (
		result = handle.result
		config = result.Config
	)

	// 协程跑起来了，pending变成running
	result.Status = common.BENCHMARK_STATUS_RUNNING

	for i := 0; i < config.Iterations; i++ {
		startTime := time.Now()
		response, err := generator.Generate(config)
		endTime := time.Now()

		if err != nil {
			result.Status = common.BENCHMARK_STATUS_FAILED
			result.Error = err.Error()
			break
		}

		elapsed := endTime.Sub(startTime).Seconds()
		metrics := engine.sampleMetrics(config.Hardware.UseGpu, config.Hardware.GpuID)
		metrics.LatencyMs = elapsed * 1000
		if elapsed > 0 {
			metrics.TokensPerSecond = float64(len(response)) / elapsed
		}
		result.Metrics = append(result.Metrics, metrics)

		// 每轮之间歇一下，避免上一轮的残余负载影响下一轮
		// 最后一轮之后没有下一轮了，不用歇
		if i < config.Iterations-1 {
			time.Sleep(engine.cooldown)
		}
	}

	if result.Status != common.BENCHMARK_STATUS_FAILED {
		result.Status = common.BENCHMARK_STATUS_COMPLETED
	}
	result.EndTime = time.Now()

	// 保存到mongodb：写完就不管了，保存失败只记录日志
	if engine.repo != nil {
		if _, err := engine.repo.Save(result); err != nil {
			log.Println("保存benchmark结果出错：", result.ID, err.Error())
		}
	}

	close(handle.done)
}

// 查询一次benchmark的状态
// 还在执行中：返回nil和true
// 已结束：返回终态的结果，同时句柄会被回收（结果只会从这里拿到一次，之后去mongodb查）
// 句柄不存在：返回nil和false
func (engine *Engine) GetStatus(runID string) (result *datamodels.BenchmarkResult, isRunning bool) {
	engine.mux.Lock()
	defer engine.mux.Unlock()

	handle, isExist := engine.running[runID]
	if !isExist {
		return nil, false
	}

	select {
	case <-handle.done:
		// 已经结束了：返回结果并回收句柄
		delete(engine.running, runID)
		return handle.result, false
	default:
		return nil, true
	}
}

// 获取执行中的runID列表
// 已结束但结果还没被读走的句柄不算执行中
func (engine *Engine) ListRunning() (runIDs []string) {
	engine.mux.Lock()
	defer engine.mux.Unlock()

	for runID, handle := range engine.running {
		select {
		case <-handle.done:
			// 已结束，等着被GetStatus读走
		default:
			runIDs = append(runIDs, runID)
		}
	}
	return runIDs
}
