package common

import "github.com/juju/errors"

// 通用的错误
var (
	// 对象不存在
	NotFountError = errors.NotFoundf("对象")
	// worker不存在或者不健康：对外统一当做not found处理
	WorkerUnavailableError = errors.NotFoundf("worker不存在或者不健康")
)

// 判断是否是not found类的错误
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}
