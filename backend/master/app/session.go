package app

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
)

var sess *sessions.Sessions

// 实例化session：保存在内存中，重启后失效
func initSession() {
	sess = sessions.New(sessions.Config{
		Cookie:                      "sessionid",
		CookieSecureTLS:             false,
		AllowReclaim:                true,
		Encode:                      nil,
		Decode:                      nil,
		Encoding:                    nil,
		Expires:                     time.Minute * 60,
		SessionIDGenerator:          nil,
		DisableSubdomainPersistence: false,
	})
}

func useSessionMiddleware(app *iris.Application) {
	if sess == nil {
		initSession()
	}

	app.Use(sess.Handler())
}
