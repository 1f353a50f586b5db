package services

import (
	"strconv"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/repositories"
)

// Prompt Service Interface
type PromptService interface {
	// 创建Prompt
	Create(prompt *datamodels.Prompt) (*datamodels.Prompt, error)
	// 根据ID获取Prompt
	GetByID(id int64) (prompt *datamodels.Prompt, err error)
	// 根据Name获取Prompt
	GetByName(name string) (prompt *datamodels.Prompt, err error)
	// 根据ID或者Name获取Prompt
	GetByIdOrName(idOrName string) (prompt *datamodels.Prompt, err error)
	// 获取Prompt的列表
	List(offset int, limit int) (prompts []*datamodels.Prompt, err error)
	// 删除Prompt
	Delete(id int64) (success bool, err error)
	// 从目录中导入markdown文件
	ImportFromDir(dir string) (imported int, err error)
}

// 实例化Prompt Service
func NewPromptService(repo repositories.PromptRepository) PromptService {
	return &promptService{repo: repo}
}

type promptService struct {
	repo repositories.PromptRepository
}

func (s *promptService) Create(prompt *datamodels.Prompt) (*datamodels.Prompt, error) {
	return s.repo.Create(prompt)
}

func (s *promptService) GetByID(id int64) (prompt *datamodels.Prompt, err error) {
	return s.repo.Get(id)
}

func (s *promptService) GetByName(name string) (prompt *datamodels.Prompt, err error) {
	return s.repo.GetByName(name)
}

// 传入的是数字就按ID查，否则按名字查
func (s *promptService) GetByIdOrName(idOrName string) (prompt *datamodels.Prompt, err error) {
	if id, parseErr := strconv.ParseInt(idOrName, 10, 64); parseErr == nil {
		return s.repo.Get(id)
	}
	return s.repo.GetByName(idOrName)
}

func (s *promptService) List(offset int, limit int) (prompts []*datamodels.Prompt, err error) {
	return s.repo.List(offset, limit)
}

func (s *promptService) Delete(id int64) (success bool, err error) {
	return s.repo.Delete(id)
}

func (s *promptService) ImportFromDir(dir string) (imported int, err error) {
	return s.repo.ImportFromDir(dir)
}
