package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/master/web/services"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"
	"github.com/kataras/iris/v12/sessions"
)

type PromptController struct {
	Session *sessions.Session
	Ctx     iris.Context
	Service services.PromptService
}

// 根据ID或者Name获取提示词
func (c *PromptController) GetBy(idOrName string) (prompt *datamodels.Prompt, success bool) {
	if prompt, err := c.Service.GetByIdOrName(idOrName); err != nil {
		return nil, false
	} else {
		return prompt, true
	}
}

// 创建提示词
func (c *PromptController) PostCreate(ctx iris.Context) (prompt *datamodels.Prompt, err error) {
	// 定义变量
	var (
		name    string // 提示词的名字
		content string // 提示词的内容
		source  string // 来源
	)

	// 获取变量
	name = ctx.FormValue("name")
	content = ctx.FormValue("content")
	source = ctx.FormValue("source")

	if name == "" || content == "" {
		return nil, fmt.Errorf("name和content不能为空")
	}

	// 先判断是否存在
	if prompt, err = c.Service.GetByName(name); err != nil {
		if err != common.NotFountError {
			return nil, err
		}
	} else {
		if prompt.ID > 0 {
			log.Println("提示词已经存在：", name)
			return nil, fmt.Errorf("提示词已经存在")
		}
	}

	// 创建提示词
	prompt = &datamodels.Prompt{
		Name:    name,
		Content: content,
		Source:  source,
	}

	return c.Service.Create(prompt)
}

// 从配置的目录中导入markdown文件的提示词
func (c *PromptController) PostImport(ctx iris.Context) {
	dir := common.GetConfig().Master.Prompts

	if imported, err := c.Service.ImportFromDir(dir); err != nil {
		ctx.StatusCode(500)
		ctx.JSON(iris.Map{"status": "error", "message": err.Error()})
	} else {
		ctx.JSON(iris.Map{"status": "success", "imported": imported})
	}
}

func (c *PromptController) GetList(ctx iris.Context) (prompts []*datamodels.Prompt, success bool) {
	return c.GetListBy(1, ctx)
}

func (c *PromptController) GetListBy(page int, ctx iris.Context) (prompts []*datamodels.Prompt, success bool) {
	// 定义变量
	var (
		pageSize int
		offset   int
		limit    int
		err      error
	)

	// 获取变量
	pageSize = ctx.URLParamIntDefault("pageSize", 10)
	limit = pageSize
	if page > 1 {
		offset = (page - 1) * pageSize
	}

	// 获取提示词列表
	if prompts, err = c.Service.List(offset, limit); err != nil {
		return nil, false
	} else {
		return prompts, true
	}
}

// 删除提示词
func (c *PromptController) DeleteBy(id string) mvc.Result {
	idValue, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return mvc.Response{
			Code: 400,
		}
	}

	if success, err := c.Service.Delete(idValue); err != nil {
		return mvc.Response{
			Err: err,
		}
	} else {
		if success {
			return mvc.Response{
				Code: 204,
			}
		} else {
			return mvc.Response{
				Code: 400,
			}
		}
	}
}
