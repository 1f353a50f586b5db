package datamodels

// 通用的响应消息
type BaseResponse struct {
	Status  string `json:"status"`  // 状态
	Message string `json:"message"` // 消息内容
}
