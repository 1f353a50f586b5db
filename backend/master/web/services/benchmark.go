package services

import (
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/repositories"
)

// Benchmark Service Interface
type BenchmarkService interface {
	// 根据ID获取benchmark的结果
	Get(id string) (result *datamodels.BenchmarkResult, err error)
	// 最近的benchmark结果列表
	ListLatest(limit int) (results []*datamodels.BenchmarkResult, err error)
	// 根据模型和worker筛选结果：两个条件都可以为空
	List(modelName string, worker string, limit int) (results []*datamodels.BenchmarkResult, err error)
	// 按时间段查询
	ListByTimeRange(startTime time.Time, endTime time.Time) (results []*datamodels.BenchmarkResult, err error)
	// 删除benchmark的结果
	Delete(id string) (success bool, err error)
}

// 实例化Benchmark Service
func NewBenchmarkService(repo repositories.BenchmarkRepository) BenchmarkService {
	return &benchmarkService{repo: repo}
}

type benchmarkService struct {
	repo repositories.BenchmarkRepository
}

func (s *benchmarkService) Get(id string) (result *datamodels.BenchmarkResult, err error) {
	return s.repo.Get(id)
}

func (s *benchmarkService) ListLatest(limit int) (results []*datamodels.BenchmarkResult, err error) {
	return s.repo.ListLatest(limit)
}

// 根据模型和worker筛选结果
// 都不传的时候返回最近的
func (s *benchmarkService) List(modelName string, worker string, limit int) (results []*datamodels.BenchmarkResult, err error) {
	if modelName != "" && worker != "" {
		return s.repo.ListByModelAndWorker(modelName, worker)
	}
	if modelName != "" {
		return s.repo.ListByModel(modelName)
	}
	if worker != "" {
		return s.repo.ListByWorker(worker)
	}
	return s.repo.ListLatest(limit)
}

func (s *benchmarkService) ListByTimeRange(startTime time.Time, endTime time.Time) (results []*datamodels.BenchmarkResult, err error) {
	return s.repo.ListByTimeRange(startTime, endTime)
}

func (s *benchmarkService) Delete(id string) (success bool, err error) {
	return s.repo.Delete(id)
}
