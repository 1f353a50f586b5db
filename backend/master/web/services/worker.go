package services

import (
	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/master/registry"
)

// Worker Service Interface
type WorkerService interface {
	// 获取Worker：不存在或者不健康都是not found
	Get(name string) (worker *datamodels.Worker, err error)
	// 健康的工作节点的列表
	List() (summaries []*datamodels.WorkerSummary, err error)
	// 判断worker是否健康
	IsHealthy(name string) bool
}

// 实例化Worker Service
func NewWorkerService(reg *registry.Registry) WorkerService {
	return &workerService{registry: reg}
}

type workerService struct {
	registry *registry.Registry
}

func (s *workerService) Get(name string) (worker *datamodels.Worker, err error) {
	if worker = s.registry.Get(name); worker == nil {
		return nil, common.WorkerUnavailableError
	}
	return worker, nil
}

func (s *workerService) List() (summaries []*datamodels.WorkerSummary, err error) {
	return s.registry.ListHealthy(), nil
}

func (s *workerService) IsHealthy(name string) bool {
	return s.registry.IsHealthy(name)
}
