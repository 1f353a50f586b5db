package common

// 程序的版本号
const VERSION = "0.1.0"

// Benchmark的执行状态
const BENCHMARK_STATUS_PENDING = "pending"     // 已创建还未执行
const BENCHMARK_STATUS_RUNNING = "running"     // 执行中
const BENCHMARK_STATUS_COMPLETED = "completed" // 全部迭代执行完毕
const BENCHMARK_STATUS_FAILED = "failed"       // 执行出错，终态

// 本地推理的目标标识：benchmark不发给worker，直接调用本机的ollama
const LOCAL_WORKER_NAME = "local"

// 推理内容中 思考过程的标记
const REASONING_START_MARK = "<think>"
const REASONING_END_MARK = "</think>"
