package handlers

import (
	"github.com/codelieche/modelbench/backend/common/repositories"
	"github.com/codelieche/modelbench/backend/master/benchmarks"
	"github.com/codelieche/modelbench/backend/master/registry"
)

var workerRegistry *registry.Registry
var benchmarkEngine *benchmarks.Engine
var benchmarkRepo repositories.BenchmarkRepository

// 初始化handlers需要的依赖
// app启动的时候调用，注册表和engine是整个master共用的
func Setup(reg *registry.Registry, engine *benchmarks.Engine, repo repositories.BenchmarkRepository) {
	workerRegistry = reg
	benchmarkEngine = engine
	benchmarkRepo = repo
}
