package repositories

import (
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path"
	"strings"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/jinzhu/gorm"
)

type PromptRepository interface {
	// 创建Prompt
	Create(prompt *datamodels.Prompt) (*datamodels.Prompt, error)
	// 根据ID获取Prompt
	Get(id int64) (prompt *datamodels.Prompt, err error)
	// 根据名字获取Prompt
	GetByName(name string) (prompt *datamodels.Prompt, err error)
	// 获取Prompt的列表
	List(offset int, limit int) (prompts []*datamodels.Prompt, err error)
	// 根据ID删除
	Delete(id int64) (success bool, err error)
	// 从目录中导入.md的提示词文件
	ImportFromDir(dir string) (imported int, err error)
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

type promptRepository struct {
	db *gorm.DB
}

func (r *promptRepository) Create(prompt *datamodels.Prompt) (*datamodels.Prompt, error) {
	// 判断是否有ID
	if prompt.ID > 0 {
		err := errors.New("不可创建设置了ID的对象")
		return nil, err
	} else {
		if err := r.db.Create(prompt).Error; err != nil {
			return nil, err
		} else {
			return prompt, nil
		}
	}
}

func (r *promptRepository) Get(id int64) (prompt *datamodels.Prompt, err error) {
	prompt = &datamodels.Prompt{}
	if err = r.db.First(prompt, "id = ?", id).Error; err != nil {
		return nil, err
	} else {
		if prompt.ID > 0 {
			return prompt, nil
		} else {
			return nil, common.NotFountError
		}
	}
}

func (r *promptRepository) GetByName(name string) (prompt *datamodels.Prompt, err error) {
	prompt = &datamodels.Prompt{}
	if err = r.db.First(prompt, "name = ?", name).Error; err != nil {
		return nil, err
	} else {
		if prompt.ID > 0 {
			return prompt, nil
		} else {
			return nil, common.NotFountError
		}
	}
}

func (r *promptRepository) List(offset int, limit int) (prompts []*datamodels.Prompt, err error) {
	query := r.db.Model(&datamodels.Prompt{}).Offset(offset).Limit(limit).Find(&prompts)

	if err = query.Error; err != nil {
		return nil, err
	} else {
		return prompts, nil
	}
}

func (r *promptRepository) Delete(id int64) (success bool, err error) {
	if err = r.db.Delete(&datamodels.Prompt{}, "id = ?", id).Error; err != nil {
		return false, err
	} else {
		return true, nil
	}
}

// 从目录中导入.md的文件作为提示词
// 文件名（不含后缀）作为提示词的名字，已存在的名字跳过
func (r *promptRepository) ImportFromDir(dir string) (imported int, err error) {
	var fileInfos []os.FileInfo

	if fileInfos, err = ioutil.ReadDir(dir); err != nil {
		return 0, err
	}

	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !strings.HasSuffix(fileInfo.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(fileInfo.Name(), ".md")
		// 名字已经存在的跳过
		if prompt, _ := r.GetByName(name); prompt != nil {
			continue
		}

		filePath := path.Join(dir, fileInfo.Name())
		content, readErr := ioutil.ReadFile(filePath)
		if readErr != nil {
			log.Println("读取提示词文件出错：", filePath, readErr.Error())
			continue
		}

		prompt := &datamodels.Prompt{
			Name:    name,
			Content: string(content),
			Source:  fileInfo.Name(),
		}
		if _, createErr := r.Create(prompt); createErr != nil {
			log.Println("导入提示词出错：", name, createErr.Error())
			continue
		}
		imported++
	}

	return imported, nil
}
