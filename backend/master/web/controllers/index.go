package controllers

import (
	"time"

	"github.com/codelieche/modelbench/backend/common"

	"github.com/kataras/iris/v12/sessions"

	"github.com/kataras/iris/v12"
)

type IndexController struct {
	Ctx       iris.Context
	StartTime time.Time
}

func (c *IndexController) Get(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"app":     "modelbench",
		"version": common.VERSION,
		"time":    time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (c *IndexController) GetInfo(ctx iris.Context) {
	// 通过session获取visits
	sess := sessions.Get(ctx)
	visits := sess.Increment("visits", 1)
	sinces := time.Now().Sub(c.StartTime).Seconds()

	ctx.JSON(iris.Map{
		"path":    ctx.Path(),
		"session": sess.ID(),
		"time":    time.Now(),
		"visits":  visits,
		"sinces":  sinces,
	})
}

func (c *IndexController) GetPing(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"message": "pong",
	})
}
