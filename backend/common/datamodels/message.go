package datamodels

// 生成请求：调用方通过socket发送
// Options是透传给ollama的采样参数，benchmark的时候会带上
type GenerateRequest struct {
	Prompt  string                 `json:"prompt"`            // 提示词
	Options map[string]interface{} `json:"options,omitempty"` // 采样参数
}

// 生成过程中的一条消息
// worker流式返回的每个片段，done为true表示生成结束
type GenerateMessage struct {
	Response  string  `json:"response"`            // 片段的内容，非流式的时候是完整的内容
	Reasoning *string `json:"reasoning,omitempty"` // 思考的过程，提取到了才有
	Done      bool    `json:"done"`                // 是否结束
}

// 一次生成的完整结果
type GenerateResult struct {
	Response  string  `json:"response"`            // 完整的响应内容（已去掉思考的部分）
	Reasoning *string `json:"reasoning,omitempty"` // 思考的过程
}
